package board

import (
	"fmt"

	"github.com/dori/quadro/internal/model"
	"github.com/dori/quadro/internal/notify"
	"go.uber.org/zap"
)

// DragState is either Idle or Dragging(noteID)
type DragState struct {
	noteID string
}

// Idle is the state outside of a drag gesture
var Idle = DragState{}

// Dragging returns the state of a gesture carrying the given note
func Dragging(noteID string) DragState {
	return DragState{noteID: noteID}
}

// Active reports whether a drag is in progress
func (d DragState) Active() bool {
	return d.noteID != ""
}

// NoteID returns the dragged note id, empty when idle
func (d DragState) NoteID() string {
	return d.noteID
}

// String implements fmt.Stringer
func (d DragState) String() string {
	if !d.Active() {
		return "Idle"
	}
	return fmt.Sprintf("Dragging(%s)", d.noteID)
}

// DropTarget is what the pointer was released over. A note target resolves
// to the category owning that note; a bare category target (the empty part
// of a column) resolves to itself. The zero value means "no target".
type DropTarget struct {
	NoteID     string
	CategoryID string
}

// IsZero reports whether the target is empty
func (t DropTarget) IsZero() bool {
	return t.NoteID == "" && t.CategoryID == ""
}

// Drag returns the current drag state
func (b *Board) Drag() DragState {
	return b.drag
}

// StartDrag marks a note as the active drag source
func (b *Board) StartDrag(noteID string) error {
	if _, ok := b.Note(noteID); !ok {
		return ErrNoteNotFound
	}
	b.drag = Dragging(noteID)
	b.logger.Debug("drag started", zap.String("note", noteID))
	return nil
}

// ActiveNote returns the note being dragged
func (b *Board) ActiveNote() (model.Note, bool) {
	if !b.drag.Active() {
		return model.Note{}, false
	}
	return b.Note(b.drag.NoteID())
}

// ResolveTarget returns the category a drop target lands in
func (b *Board) ResolveTarget(target DropTarget) (model.Category, bool) {
	if target.NoteID != "" {
		over, ok := b.Note(target.NoteID)
		if !ok {
			return model.Category{}, false
		}
		return b.Category(over.CategoryID)
	}
	if target.CategoryID != "" {
		return b.Category(target.CategoryID)
	}
	return model.Category{}, false
}

// EndDrag finishes the gesture. When the target resolves to a category other
// than the dragged note's, the note is moved there and a success notification
// is sent. The drag state is cleared in every case. It reports whether a note
// moved.
func (b *Board) EndDrag(target DropTarget) bool {
	active := b.drag
	b.drag = Idle

	if !active.Active() || target.IsZero() {
		b.logger.Debug("drag ended without target", zap.String("state", active.String()))
		return false
	}

	note, ok := b.Note(active.NoteID())
	if !ok {
		return false
	}
	dest, ok := b.ResolveTarget(target)
	if !ok || dest.ID == note.CategoryID {
		return false
	}

	notes := make([]model.Note, len(b.notes))
	for i, n := range b.notes {
		if n.ID == note.ID {
			n.CategoryID = dest.ID
		}
		notes[i] = n
	}
	b.notes = notes

	b.notifier.Send(notify.Success("Nota movida", fmt.Sprintf("Nota movida para %s", dest.Name)))
	b.logger.Debug("note moved",
		zap.String("note", note.ID),
		zap.String("from", note.CategoryID),
		zap.String("to", dest.ID))
	return true
}

// CancelDrag abandons the gesture without a drop
func (b *Board) CancelDrag() {
	b.drag = Idle
}
