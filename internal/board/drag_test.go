package board

import (
	"testing"

	"github.com/dori/quadro/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragOntoNoteOfOtherCategory(t *testing.T) {
	b, rec := newTestBoard(t)
	x := addSaved(t, b, "roteiros", "X")
	other := addSaved(t, b, "roteiros", "other")
	y := addSaved(t, b, "prompts", "Y")

	require.NoError(t, b.StartDrag(x.ID))
	assert.Equal(t, Dragging(x.ID), b.Drag())
	active, ok := b.ActiveNote()
	require.True(t, ok)
	assert.Equal(t, x.ID, active.ID)

	moved := b.EndDrag(DropTarget{NoteID: y.ID})

	assert.True(t, moved)
	got, _ := b.Note(x.ID)
	assert.Equal(t, "prompts", got.CategoryID)
	o, _ := b.Note(other.ID)
	assert.Equal(t, "roteiros", o.CategoryID)
	yy, _ := b.Note(y.ID)
	assert.Equal(t, "prompts", yy.CategoryID)

	assert.Equal(t, Idle, b.Drag())
	require.Len(t, rec.All(), 1)
	assert.Equal(t, notify.KindSuccess, rec.All()[0].Kind)
	assert.Equal(t, "Nota movida para Prompts", rec.All()[0].Description)
}

func TestDragOntoOwnCategoryIsNoop(t *testing.T) {
	b, rec := newTestBoard(t)
	x := addSaved(t, b, "roteiros", "X")
	sibling := addSaved(t, b, "roteiros", "S")
	before := b.Notes()

	require.NoError(t, b.StartDrag(x.ID))
	assert.False(t, b.EndDrag(DropTarget{NoteID: sibling.ID}))

	assert.Equal(t, before, b.Notes())
	assert.Empty(t, rec.All())
	assert.False(t, b.Drag().Active())
}

func TestDragOntoItselfIsNoop(t *testing.T) {
	b, _ := newTestBoard(t)
	x := addSaved(t, b, "roteiros", "X")

	require.NoError(t, b.StartDrag(x.ID))
	assert.False(t, b.EndDrag(DropTarget{NoteID: x.ID}))
}

func TestDragWithoutTargetClearsState(t *testing.T) {
	b, rec := newTestBoard(t)
	x := addSaved(t, b, "roteiros", "X")

	require.NoError(t, b.StartDrag(x.ID))
	assert.False(t, b.EndDrag(DropTarget{}))

	assert.Equal(t, Idle, b.Drag())
	got, _ := b.Note(x.ID)
	assert.Equal(t, "roteiros", got.CategoryID)
	assert.Empty(t, rec.All())
}

func TestDragOntoUnknownTargetClearsState(t *testing.T) {
	b, _ := newTestBoard(t)
	x := addSaved(t, b, "roteiros", "X")

	require.NoError(t, b.StartDrag(x.ID))
	assert.False(t, b.EndDrag(DropTarget{NoteID: "ghost"}))
	assert.Equal(t, Idle, b.Drag())
}

func TestDragOntoEmptyColumn(t *testing.T) {
	b, rec := newTestBoard(t)
	x := addSaved(t, b, "roteiros", "X")

	require.NoError(t, b.StartDrag(x.ID))
	assert.True(t, b.EndDrag(DropTarget{CategoryID: "outros"}))

	got, _ := b.Note(x.ID)
	assert.Equal(t, "outros", got.CategoryID)
	assert.Equal(t, 1, rec.Count(notify.KindSuccess))
}

func TestDragIntoFullCategoryIsAllowed(t *testing.T) {
	b, _ := newTestBoard(t)
	var last string
	for i := 0; i < DefaultNoteLimit; i++ {
		last = addSaved(t, b, "prompts", "p").ID
	}
	x := addSaved(t, b, "roteiros", "X")

	require.NoError(t, b.StartDrag(x.ID))
	assert.True(t, b.EndDrag(DropTarget{NoteID: last}))
	assert.Len(t, b.NotesIn("prompts"), DefaultNoteLimit+1)
}

func TestStartDragUnknownNote(t *testing.T) {
	b, _ := newTestBoard(t)

	assert.ErrorIs(t, b.StartDrag("ghost"), ErrNoteNotFound)
	assert.False(t, b.Drag().Active())
}

func TestEndDragWhileIdle(t *testing.T) {
	b, _ := newTestBoard(t)
	y := addSaved(t, b, "prompts", "Y")

	assert.False(t, b.EndDrag(DropTarget{NoteID: y.ID}))
}

func TestCancelDrag(t *testing.T) {
	b, _ := newTestBoard(t)
	x := addSaved(t, b, "roteiros", "X")

	require.NoError(t, b.StartDrag(x.ID))
	b.CancelDrag()

	assert.Equal(t, "Idle", b.Drag().String())
	_, ok := b.ActiveNote()
	assert.False(t, ok)
}

func TestDeletingDraggedNoteClearsDrag(t *testing.T) {
	b, _ := newTestBoard(t)
	x := addSaved(t, b, "roteiros", "X")

	require.NoError(t, b.StartDrag(x.ID))
	b.DeleteNote(x.ID)

	assert.False(t, b.Drag().Active())
}

func TestScenarioDeletePromptsWithNote(t *testing.T) {
	b, rec := newTestBoard(t)
	addSaved(t, b, "prompts", "p")

	assert.ErrorIs(t, b.DeleteCategory("prompts"), ErrCategoryHasNotes)
	assert.Len(t, b.Categories(), 3)
	assert.Equal(t, 1, rec.Count(notify.KindError))
	assert.Len(t, rec.All(), 1)
}

func TestResolveTarget(t *testing.T) {
	b, _ := newTestBoard(t)
	y := addSaved(t, b, "prompts", "Y")

	c, ok := b.ResolveTarget(DropTarget{NoteID: y.ID, CategoryID: "outros"})
	require.True(t, ok)
	assert.Equal(t, "prompts", c.ID, "note target wins over column")

	c, ok = b.ResolveTarget(DropTarget{CategoryID: "outros"})
	require.True(t, ok)
	assert.Equal(t, "outros", c.ID)

	_, ok = b.ResolveTarget(DropTarget{CategoryID: "ghost"})
	assert.False(t, ok)
}
