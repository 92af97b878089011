// Package board holds the canonical notes and categories of the note board
// and every mutation on them.
//
// A Board is owned by a single goroutine (the UI event loop). Every mutation
// swaps in a new slice, so a slice returned by Notes or Categories is never
// modified afterwards.
package board

import (
	"errors"
	"strings"
	"time"

	"github.com/dori/quadro/internal/model"
	"github.com/dori/quadro/internal/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultNoteLimit is the number of notes a category may hold before its
// add action goes inert
const DefaultNoteLimit = 5

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryFull         = errors.New("category is full")
	ErrCategoryHasNotes     = errors.New("category still has notes")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrNoteNotFound         = errors.New("note not found")
)

// Board owns the notes and categories
type Board struct {
	notes      []model.Note
	categories []model.Category
	drag       DragState

	newID    func() string
	now      func() time.Time
	notifier notify.Sender
	logger   *zap.Logger
	limit    int
}

// Option configures a Board
type Option func(*Board)

// WithIDs replaces the id generator
func WithIDs(newID func() string) Option {
	return func(b *Board) {
		b.newID = newID
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// WithNotifier sets where board notifications go
func WithNotifier(s notify.Sender) Option {
	return func(b *Board) {
		if s != nil {
			b.notifier = s
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithNoteLimit sets how many notes a category may hold
func WithNoteLimit(limit int) Option {
	return func(b *Board) {
		if limit > 0 {
			b.limit = limit
		}
	}
}

// WithCategories replaces the seeded categories
func WithCategories(categories []model.Category) Option {
	return func(b *Board) {
		seeded := make([]model.Category, 0, len(categories))
		for _, c := range categories {
			seeded = append(seeded, c.Normalized())
		}
		b.categories = seeded
	}
}

// New creates a board seeded with the default categories
func New(opts ...Option) *Board {
	b := &Board{
		categories: model.DefaultCategories(),
		newID:      uuid.NewString,
		now:        time.Now,
		notifier:   notify.Discard,
		logger:     zap.NewNop(),
		limit:      DefaultNoteLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Categories returns the categories in display order
func (b *Board) Categories() []model.Category {
	return b.categories
}

// Notes returns every note in list order
func (b *Board) Notes() []model.Note {
	return b.notes
}

// NoteLimit returns the per-category note limit
func (b *Board) NoteLimit() int {
	return b.limit
}

// Category looks up a category by id
func (b *Board) Category(id string) (model.Category, bool) {
	for _, c := range b.categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// Note looks up a note by id
func (b *Board) Note(id string) (model.Note, bool) {
	for _, n := range b.notes {
		if n.ID == id {
			return n, true
		}
	}
	return model.Note{}, false
}

// NotesIn returns the notes of a category in list order
func (b *Board) NotesIn(categoryID string) []model.Note {
	var notes []model.Note
	for _, n := range b.notes {
		if n.CategoryID == categoryID {
			notes = append(notes, n)
		}
	}
	return notes
}

func (b *Board) countIn(categoryID string) int {
	count := 0
	for _, n := range b.notes {
		if n.CategoryID == categoryID {
			count++
		}
	}
	return count
}

// CanAdd reports whether the add action of a category is live
func (b *Board) CanAdd(categoryID string) bool {
	if _, ok := b.Category(categoryID); !ok {
		return false
	}
	return b.countIn(categoryID) < b.limit
}

// AddNote returns a fresh, unsaved draft for the category. Nothing is stored
// until SaveNote is called with it.
func (b *Board) AddNote(categoryID string) (model.Note, error) {
	if _, ok := b.Category(categoryID); !ok {
		return model.Note{}, ErrCategoryNotFound
	}
	if b.countIn(categoryID) >= b.limit {
		return model.Note{}, ErrCategoryFull
	}
	return model.Note{
		ID:         b.newID(),
		Title:      model.DefaultNoteTitle,
		CategoryID: categoryID,
		CreatedAt:  b.now(),
	}, nil
}

// SaveNote replaces the note with the same id, or appends it
func (b *Board) SaveNote(note model.Note) {
	notes := make([]model.Note, 0, len(b.notes)+1)
	replaced := false
	for _, n := range b.notes {
		if n.ID == note.ID {
			notes = append(notes, note)
			replaced = true
			continue
		}
		notes = append(notes, n)
	}
	if !replaced {
		notes = append(notes, note)
	}
	b.notes = notes
	b.logger.Debug("note saved",
		zap.String("id", note.ID),
		zap.String("category", note.CategoryID),
		zap.Bool("replaced", replaced))
}

// DeleteNote removes a note. It reports whether anything was removed.
func (b *Board) DeleteNote(id string) bool {
	notes := make([]model.Note, 0, len(b.notes))
	for _, n := range b.notes {
		if n.ID != id {
			notes = append(notes, n)
		}
	}
	removed := len(notes) != len(b.notes)
	b.notes = notes
	if b.drag.NoteID() == id {
		b.drag = Idle
	}
	b.logger.Debug("note deleted", zap.String("id", id), zap.Bool("removed", removed))
	return removed
}

// DuplicateNote appends a copy of the note and returns it
func (b *Board) DuplicateNote(id string) (model.Note, error) {
	original, ok := b.Note(id)
	if !ok {
		return model.Note{}, ErrNoteNotFound
	}
	dup := original.Copy(b.newID(), b.now())
	notes := make([]model.Note, 0, len(b.notes)+1)
	notes = append(notes, b.notes...)
	b.notes = append(notes, dup)
	b.logger.Debug("note duplicated", zap.String("from", id), zap.String("id", dup.ID))
	return dup, nil
}

// SaveCategory stores a category. The background colour is always recomputed
// from the colour and a new id is generated when the category has none.
func (b *Board) SaveCategory(c model.Category) (model.Category, error) {
	c = c.Normalized()
	if c.Name == "" {
		return model.Category{}, ErrCategoryNameRequired
	}
	if strings.TrimSpace(c.ID) == "" {
		c.ID = b.newID()
	}

	categories := make([]model.Category, 0, len(b.categories)+1)
	replaced := false
	for _, existing := range b.categories {
		if existing.ID == c.ID {
			categories = append(categories, c)
			replaced = true
			continue
		}
		categories = append(categories, existing)
	}
	if !replaced {
		categories = append(categories, c)
	}
	b.categories = categories
	b.logger.Debug("category saved",
		zap.String("id", c.ID),
		zap.String("name", c.Name),
		zap.Bool("replaced", replaced))
	return c, nil
}

// DeleteCategory removes a category that no note references. When notes
// still reference it nothing changes and an error notification is sent.
func (b *Board) DeleteCategory(id string) error {
	if _, ok := b.Category(id); !ok {
		return ErrCategoryNotFound
	}
	if b.countIn(id) > 0 {
		b.notifier.Send(notify.Error("Erro", "Não é possível excluir uma categoria com notas"))
		b.logger.Debug("category delete rejected", zap.String("id", id))
		return ErrCategoryHasNotes
	}

	categories := make([]model.Category, 0, len(b.categories))
	for _, c := range b.categories {
		if c.ID != id {
			categories = append(categories, c)
		}
	}
	b.categories = categories
	b.logger.Debug("category deleted", zap.String("id", id))
	return nil
}

// Snapshot returns copies of both containers
func (b *Board) Snapshot() ([]model.Category, []model.Note) {
	categories := append([]model.Category(nil), b.categories...)
	notes := append([]model.Note(nil), b.notes...)
	return categories, notes
}
