package views

import (
	"github.com/dori/quadro/internal/board"
	"github.com/dori/quadro/internal/model"
)

// Board geometry, in rows relative to the top of the notes view:
// row 0 holds the column headers, row 1 the top border of the column boxes,
// cards start at row 2. The last row is the hint line.
const (
	minColumnWidth = 28
	headerRow      = 0
	cardsTop       = 2
	footerRows     = 1
	// header action cells, from the right edge of a column: " + " then " ≡ "
	headerButtonWidth = 3
)

// boardLayout is the column geometry for the current size
type boardLayout struct {
	start    int // first visible category index
	visible  int // number of visible columns
	colWidth int
	rows     int // cards that fit in a column
}

func (l boardLayout) end() int {
	return l.start + l.visible
}

func (v NotesView) layout() boardLayout {
	n := len(v.board.Categories())
	if n == 0 || v.width <= 0 {
		return boardLayout{}
	}
	visible := v.width / minColumnWidth
	if visible < 1 {
		visible = 1
	}
	if visible > n {
		visible = n
	}
	start := v.colOffset
	if start > n-visible {
		start = n - visible
	}
	if start < 0 {
		start = 0
	}

	// box borders plus the add line
	contentRows := v.height - cardsTop - footerRows - 1
	rows := (contentRows - 1) / cardHeight
	if rows < 1 {
		rows = 1
	}
	return boardLayout{
		start:    start,
		visible:  visible,
		colWidth: v.width / visible,
		rows:     rows,
	}
}

// columnRows returns how many rows the column box content has
func (v NotesView) columnRows() int {
	rows := v.height - cardsTop - footerRows - 1
	if rows < 2 {
		rows = 2
	}
	return rows
}

// visibleNotes returns the slice of a column's notes currently on screen
func (v NotesView) visibleNotes(categoryID string, l boardLayout) []model.Note {
	notes := v.board.NotesIn(categoryID)
	offset := v.scroll[categoryID]
	if offset > len(notes) {
		offset = len(notes)
	}
	end := offset + l.rows
	if end > len(notes) {
		end = len(notes)
	}
	return notes[offset:end]
}

// hitKind is what lies under a point of the notes view
type hitKind int

const (
	hitNone hitKind = iota
	hitHeader
	hitAddButton
	hitSettingsButton
	hitColumn
	hitCard
)

type hit struct {
	kind       hitKind
	column     int
	categoryID string
	noteID     string
}

// dropTarget converts a hit into a drop target. A card hit targets the note,
// anything else inside a column targets the column's category.
func (h hit) dropTarget() board.DropTarget {
	switch h.kind {
	case hitNone:
		return board.DropTarget{}
	case hitCard:
		return board.DropTarget{NoteID: h.noteID}
	default:
		return board.DropTarget{CategoryID: h.categoryID}
	}
}

// hitTest resolves a point relative to the top-left of the notes view
func (v NotesView) hitTest(x, y int) hit {
	l := v.layout()
	if l.visible == 0 || x < 0 || y < 0 || l.colWidth == 0 {
		return hit{}
	}
	if y >= v.height-footerRows {
		return hit{}
	}
	col := l.start + x/l.colWidth
	if col >= l.end() {
		return hit{}
	}
	categories := v.board.Categories()
	c := categories[col]
	h := hit{kind: hitColumn, column: col, categoryID: c.ID}

	if y == headerRow {
		xin := x - (col-l.start)*l.colWidth
		switch {
		case xin >= l.colWidth-headerButtonWidth:
			h.kind = hitSettingsButton
		case xin >= l.colWidth-2*headerButtonWidth:
			h.kind = hitAddButton
		default:
			h.kind = hitHeader
		}
		return h
	}

	r := y - cardsTop
	if r < 0 {
		return h
	}
	notes := v.visibleNotes(c.ID, l)
	if len(notes) == 0 {
		// "Criar primeira nota" sits on the second content row
		if r == 1 {
			h.kind = hitAddButton
		}
		return h
	}
	idx := r / cardHeight
	if idx < len(notes) && r%cardHeight != cardHeight-1 {
		h.kind = hitCard
		h.noteID = notes[idx].ID
		return h
	}
	if r == len(notes)*cardHeight {
		h.kind = hitAddButton
	}
	return h
}

// cardOrigin returns the top-left cell of a visible note's card
func (v NotesView) cardOrigin(noteID string) (int, int, bool) {
	l := v.layout()
	categories := v.board.Categories()
	for col := l.start; col < l.end(); col++ {
		for i, n := range v.visibleNotes(categories[col].ID, l) {
			if n.ID == noteID {
				return (col-l.start)*l.colWidth + 1, cardsTop + i*cardHeight, true
			}
		}
	}
	return 0, 0, false
}
