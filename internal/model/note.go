package model

import (
	"strings"
	"time"
)

// Default strings used when creating and copying notes
const (
	DefaultNoteTitle = "Nova nota"
	UntitledNote     = "Sem título"
	CopySuffix       = " (cópia)"
)

// Note is a single card on the board
type Note struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Content    string    `json:"content" yaml:"content"`
	CategoryID string    `json:"category_id" yaml:"category_id"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// Copy returns a duplicate of the note with a new identity.
// Category and content are carried over, the title gets the copy suffix.
func (n Note) Copy(id string, at time.Time) Note {
	n.ID = id
	n.Title = n.Title + CopySuffix
	n.CreatedAt = at
	return n
}

// Preview returns up to max non-empty lines of content
func (n Note) Preview(max int) []string {
	var lines []string
	for _, line := range strings.Split(n.Content, "\n") {
		if len(lines) >= max {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
