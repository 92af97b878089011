package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/quadro/internal/board"
	"github.com/dori/quadro/internal/export"
	"github.com/dori/quadro/internal/model"
	"github.com/dori/quadro/internal/notify"
	"github.com/dori/quadro/internal/ui/theme"
)

// ExportDoneMsg reports the result of a snapshot export
type ExportDoneMsg struct {
	path string
	err  error
}

// NotesMode represents the current input mode of the notes view
type NotesMode int

const (
	NotesModeNormal NotesMode = iota
	NotesModeMenu
	NotesModeNoteDialog
	NotesModeCategoryDialog
	NotesModeGrab
)

type point struct{ x, y int }

// pointerPress is a left button press on a card that has not turned into a
// drag yet
type pointerPress struct {
	noteID string
	at     point
}

// NotesView is the notes board page
type NotesView struct {
	board     *board.Board
	notifier  notify.Sender
	exportDir string
	now       func() time.Time
	width     int
	height    int

	// Navigation state
	currentColumn int
	cursorRow     int
	colOffset     int

	// Per-category scroll offset
	scroll map[string]int

	mode           NotesMode
	menu           cardMenu
	noteDialog     NoteDialog
	categoryDialog CategoryDialog

	// Mouse drag state
	press   *pointerPress
	pointer point
	hover   hit

	// Keyboard grab target: column index and row, -1 meaning the column itself
	grabColumn int
	grabRow    int
}

// NewNotesView creates a notes view over b. Toasts go to n and snapshot
// exports are written into exportDir.
func NewNotesView(b *board.Board, n notify.Sender, exportDir string) NotesView {
	if n == nil {
		n = notify.Discard
	}
	return NotesView{
		board:          b,
		notifier:       n,
		exportDir:      exportDir,
		now:            time.Now,
		scroll:         make(map[string]int),
		noteDialog:     NewNoteDialog(),
		categoryDialog: NewCategoryDialog(n),
	}
}

// Init initializes the notes view
func (v NotesView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v NotesView) SetSize(width, height int) NotesView {
	v.width = width
	v.height = height
	v.noteDialog = v.noteDialog.SetSize(width, height)
	v.categoryDialog = v.categoryDialog.SetSize(width, height)
	return v
}

// SetExportDir changes where snapshots are written
func (v NotesView) SetExportDir(dir string) NotesView {
	v.exportDir = dir
	return v
}

// Mode returns the current input mode
func (v NotesView) Mode() NotesMode {
	return v.mode
}

// NoteDialog returns the note dialog
func (v NotesView) NoteDialog() NoteDialog {
	return v.noteDialog
}

// CategoryDialog returns the category dialog
func (v NotesView) CategoryDialog() CategoryDialog {
	return v.categoryDialog
}

// currentCategory returns the focused column's category
func (v NotesView) currentCategory() (model.Category, bool) {
	categories := v.board.Categories()
	if v.currentColumn < 0 || v.currentColumn >= len(categories) {
		return model.Category{}, false
	}
	return categories[v.currentColumn], true
}

// currentNote returns the focused note
func (v NotesView) currentNote() (model.Note, bool) {
	c, ok := v.currentCategory()
	if !ok {
		return model.Note{}, false
	}
	notes := v.board.NotesIn(c.ID)
	if v.cursorRow < 0 || v.cursorRow >= len(notes) {
		return model.Note{}, false
	}
	return notes[v.cursorRow], true
}

// focusNote moves the cursor onto a note wherever it is
func (v *NotesView) focusNote(noteID string) {
	note, ok := v.board.Note(noteID)
	if !ok {
		return
	}
	for i, c := range v.board.Categories() {
		if c.ID != note.CategoryID {
			continue
		}
		v.currentColumn = i
		for j, n := range v.board.NotesIn(c.ID) {
			if n.ID == noteID {
				v.cursorRow = j
			}
		}
	}
	v.ensureVisible()
}

// clampCursor keeps the cursor on an existing column and row
func (v *NotesView) clampCursor() {
	n := len(v.board.Categories())
	if v.currentColumn >= n {
		v.currentColumn = n - 1
	}
	if v.currentColumn < 0 {
		v.currentColumn = 0
	}
	c, ok := v.currentCategory()
	if !ok {
		v.cursorRow = 0
		return
	}
	count := len(v.board.NotesIn(c.ID))
	if v.cursorRow >= count {
		v.cursorRow = count - 1
	}
	if v.cursorRow < 0 {
		v.cursorRow = 0
	}
	v.ensureVisible()
}

// ensureVisible scrolls so the focused column and card are on screen
func (v *NotesView) ensureVisible() {
	l := v.layout()
	if l.visible == 0 {
		return
	}
	if v.currentColumn < l.start {
		v.colOffset = v.currentColumn
	} else if v.currentColumn >= l.end() {
		v.colOffset = v.currentColumn - l.visible + 1
	} else {
		v.colOffset = l.start
	}

	c, ok := v.currentCategory()
	if !ok {
		return
	}
	offset := v.scroll[c.ID]
	if v.cursorRow >= offset+l.rows {
		offset = v.cursorRow - l.rows + 1
	}
	if v.cursorRow < offset {
		offset = v.cursorRow
	}
	if offset < 0 {
		offset = 0
	}
	v.scroll[c.ID] = offset
}

// Update handles messages
func (v NotesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NoteSavedMsg:
		v.board.SaveNote(msg.Note)
		v.mode = NotesModeNormal
		v.focusNote(msg.Note.ID)
		return v, nil

	case CategorySavedMsg:
		saved, err := v.board.SaveCategory(msg.Category)
		if err != nil {
			v.notifier.Send(notify.Error("Erro", "O nome da categoria é obrigatório"))
			return v, nil
		}
		v.mode = NotesModeNormal
		v.notifier.Send(notify.Success("Sucesso", "Categoria salva com sucesso"))
		for i, c := range v.board.Categories() {
			if c.ID == saved.ID {
				v.currentColumn = i
				v.cursorRow = 0
			}
		}
		v.ensureVisible()
		return v, nil

	case CategoryDeleteMsg:
		if err := v.board.DeleteCategory(msg.ID); err != nil {
			// the board already told the user why
			return v, nil
		}
		v.categoryDialog = v.categoryDialog.Close()
		v.mode = NotesModeNormal
		v.notifier.Send(notify.Success("Sucesso", "Categoria excluída com sucesso"))
		delete(v.scroll, msg.ID)
		v.clampCursor()
		return v, nil

	case ExportDoneMsg:
		switch {
		case errors.Is(msg.err, export.ErrLocked):
			v.notifier.Send(notify.Error("Exportação em andamento", "Tente novamente em instantes"))
		case msg.err != nil:
			v.notifier.Send(notify.Error("Erro ao exportar", msg.err.Error()))
		default:
			v.notifier.Send(notify.Success("Notas exportadas", msg.path))
		}
		return v, nil

	case tea.MouseMsg:
		return v.handleMouse(msg)

	case tea.KeyMsg:
		switch v.mode {
		case NotesModeNoteDialog:
			return v.updateNoteDialog(msg)
		case NotesModeCategoryDialog:
			return v.updateCategoryDialog(msg)
		case NotesModeMenu:
			return v.handleMenuMode(msg)
		case NotesModeGrab:
			return v.handleGrabMode(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	// cursor blink and friends
	switch v.mode {
	case NotesModeNoteDialog:
		return v.updateNoteDialog(msg)
	case NotesModeCategoryDialog:
		return v.updateCategoryDialog(msg)
	}
	return v, nil
}

func (v NotesView) updateNoteDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	v.noteDialog, cmd = v.noteDialog.Update(msg)
	if !v.noteDialog.IsOpen() {
		v.mode = NotesModeNormal
	}
	return v, cmd
}

func (v NotesView) updateCategoryDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	v.categoryDialog, cmd = v.categoryDialog.Update(msg)
	if !v.categoryDialog.IsOpen() {
		v.mode = NotesModeNormal
	}
	return v, cmd
}

// handleNormalMode handles keys in normal mode
func (v NotesView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	// Column navigation
	case "h", "left":
		if v.currentColumn > 0 {
			v.currentColumn--
			v.clampCursor()
		}
		return v, nil

	case "l", "right":
		if v.currentColumn < len(v.board.Categories())-1 {
			v.currentColumn++
			v.clampCursor()
		}
		return v, nil

	// Row navigation
	case "j", "down":
		if c, ok := v.currentCategory(); ok && v.cursorRow < len(v.board.NotesIn(c.ID))-1 {
			v.cursorRow++
			v.ensureVisible()
		}
		return v, nil

	case "k", "up":
		if v.cursorRow > 0 {
			v.cursorRow--
			v.ensureVisible()
		}
		return v, nil

	case "g":
		v.cursorRow = 0
		v.ensureVisible()
		return v, nil

	case "G":
		if c, ok := v.currentCategory(); ok {
			v.cursorRow = len(v.board.NotesIn(c.ID)) - 1
			v.clampCursor()
		}
		return v, nil

	case "a":
		if c, ok := v.currentCategory(); ok {
			return v.addNote(c.ID)
		}
		return v, nil

	case "enter":
		if note, ok := v.currentNote(); ok {
			return v.openNote(DialogViewing{Note: note})
		}
		return v, nil

	case "e":
		return v.applyAction(actionEdit)
	case "c":
		return v.applyAction(actionDuplicate)
	case "y":
		return v.applyAction(actionCopy)
	case "d":
		return v.applyAction(actionDelete)

	case ".":
		if note, ok := v.currentNote(); ok {
			v.menu = newCardMenu(note.ID)
			v.mode = NotesModeMenu
		}
		return v, nil

	case "s":
		if c, ok := v.currentCategory(); ok {
			return v.openCategory(c)
		}
		return v, nil

	case "n":
		v.categoryDialog = v.categoryDialog.OpenNew()
		v.mode = NotesModeCategoryDialog
		return v, nil

	case " ":
		if note, ok := v.currentNote(); ok {
			if err := v.board.StartDrag(note.ID); err == nil {
				v.mode = NotesModeGrab
				v.grabColumn = v.currentColumn
				v.grabRow = v.cursorRow
			}
		}
		return v, nil

	case "ctrl+e":
		return v, v.exportSnapshot()
	}

	return v, nil
}

// addNote opens a draft in the note dialog. It is inert on a full category.
func (v NotesView) addNote(categoryID string) (tea.Model, tea.Cmd) {
	draft, err := v.board.AddNote(categoryID)
	if err != nil {
		return v, nil
	}
	return v.openNote(DialogCreating{Draft: draft})
}

func (v NotesView) openNote(state DialogState) (tea.Model, tea.Cmd) {
	v.noteDialog = v.noteDialog.Open(state)
	v.mode = NotesModeNoteDialog
	return v, nil
}

func (v NotesView) openCategory(c model.Category) (tea.Model, tea.Cmd) {
	v.categoryDialog = v.categoryDialog.OpenEdit(c)
	v.mode = NotesModeCategoryDialog
	return v, nil
}

// applyAction runs a card action on the focused note
func (v NotesView) applyAction(action cardAction) (tea.Model, tea.Cmd) {
	note, ok := v.currentNote()
	if !ok {
		return v, nil
	}
	switch action {
	case actionEdit:
		return v.openNote(DialogEditing{Note: note})
	case actionDuplicate:
		if _, err := v.board.DuplicateNote(note.ID); err != nil {
			return v, nil
		}
	case actionCopy:
		text := note.Title
		if note.Content != "" {
			text += "\n\n" + note.Content
		}
		if err := copyToClipboard(text); err != nil {
			v.notifier.Send(notify.Error("Erro ao copiar", err.Error()))
		} else {
			v.notifier.Send(notify.Success("Copiado", "Nota copiada para a área de transferência"))
		}
	case actionDelete:
		v.board.DeleteNote(note.ID)
		v.clampCursor()
	}
	return v, nil
}

// handleMenuMode handles keys while the card menu is open
func (v NotesView) handleMenuMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		action cardAction
		done   bool
	)
	v.menu, action, done = v.menu.update(msg)
	if !done {
		return v, nil
	}
	v.mode = NotesModeNormal
	if action == actionNone {
		return v, nil
	}
	v.focusNote(v.menu.noteID)
	return v.applyAction(action)
}

// grabTarget returns the drop target under the keyboard grab cursor
func (v NotesView) grabTarget() board.DropTarget {
	categories := v.board.Categories()
	if v.grabColumn < 0 || v.grabColumn >= len(categories) {
		return board.DropTarget{}
	}
	c := categories[v.grabColumn]
	notes := v.board.NotesIn(c.ID)
	if v.grabRow >= 0 && v.grabRow < len(notes) {
		return board.DropTarget{NoteID: notes[v.grabRow].ID}
	}
	return board.DropTarget{CategoryID: c.ID}
}

// handleGrabMode moves a grabbed note with the keyboard
func (v NotesView) handleGrabMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	categories := v.board.Categories()
	switch msg.String() {
	case "h", "left":
		if v.grabColumn > 0 {
			v.grabColumn--
			v.grabRow = -1
		}
	case "l", "right":
		if v.grabColumn < len(categories)-1 {
			v.grabColumn++
			v.grabRow = -1
		}
	case "j", "down":
		if v.grabColumn < len(categories) && v.grabRow < len(v.board.NotesIn(categories[v.grabColumn].ID))-1 {
			v.grabRow++
		}
	case "k", "up":
		if v.grabRow > -1 {
			v.grabRow--
		}
	case " ", "enter":
		dragged := v.board.Drag().NoteID()
		v.board.EndDrag(v.grabTarget())
		v.mode = NotesModeNormal
		v.focusNote(dragged)
	case "esc":
		v.board.CancelDrag()
		v.mode = NotesModeNormal
	}
	return v, nil
}

// handleMouse implements click to view and press-drag-release to move
func (v NotesView) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if v.mode != NotesModeNormal && !(v.mode == NotesModeMenu && msg.Action == tea.MouseActionPress) {
		return v, nil
	}
	v.mode = NotesModeNormal
	at := point{msg.X, msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonRight {
			return v, nil
		}
		h := v.hitTest(at.x, at.y)
		if h.kind != hitNone {
			v.currentColumn = h.column
			v.cursorRow = 0
		}
		switch h.kind {
		case hitCard:
			v.focusNote(h.noteID)
			if msg.Button == tea.MouseButtonRight {
				v.menu = newCardMenu(h.noteID)
				v.mode = NotesModeMenu
				return v, nil
			}
			v.press = &pointerPress{noteID: h.noteID, at: at}
			v.pointer = at
		case hitAddButton:
			return v.addNote(h.categoryID)
		case hitSettingsButton:
			if c, ok := v.board.Category(h.categoryID); ok {
				return v.openCategory(c)
			}
		}
		return v, nil

	case tea.MouseActionMotion:
		if v.press == nil {
			return v, nil
		}
		if !v.board.Drag().Active() && at != v.press.at {
			if err := v.board.StartDrag(v.press.noteID); err != nil {
				v.press = nil
				return v, nil
			}
		}
		v.pointer = at
		v.hover = v.hitTest(at.x, at.y)
		return v, nil

	case tea.MouseActionRelease:
		press := v.press
		v.press = nil
		v.hover = hit{}
		if v.board.Drag().Active() {
			dragged := v.board.Drag().NoteID()
			v.board.EndDrag(v.hitTest(at.x, at.y).dropTarget())
			v.focusNote(dragged)
			return v, nil
		}
		if press != nil {
			h := v.hitTest(at.x, at.y)
			if h.kind == hitCard && h.noteID == press.noteID {
				if note, ok := v.board.Note(h.noteID); ok {
					return v.openNote(DialogViewing{Note: note})
				}
			}
		}
		return v, nil
	}
	return v, nil
}

// exportSnapshot writes the board to the export directory off the UI loop
func (v NotesView) exportSnapshot() tea.Cmd {
	categories, notes := v.board.Snapshot()
	snap := export.NewSnapshot(v.now(), categories, notes)
	dir := v.exportDir
	return func() tea.Msg {
		path, err := export.Write(dir, snap)
		return ExportDoneMsg{path: path, err: err}
	}
}

// View renders the notes board
func (v NotesView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}
	t := theme.Current.Theme
	s := theme.Current.Styles

	l := v.layout()
	categories := v.board.Categories()
	if l.visible == 0 {
		empty := s.Muted.Render("Nenhuma categoria. n: nova categoria")
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, empty)
	}

	drag := v.board.Drag()
	var dropCategory string
	switch {
	case v.mode == NotesModeGrab:
		if c, ok := v.board.ResolveTarget(v.grabTarget()); ok {
			dropCategory = c.ID
		}
	case drag.Active():
		if c, ok := v.board.ResolveTarget(v.hover.dropTarget()); ok {
			dropCategory = c.ID
		}
	}

	var headers, cols []string
	for i := l.start; i < l.end(); i++ {
		c := categories[i]
		headers = append(headers, v.renderHeader(c, i == v.currentColumn, l.colWidth))
		cols = append(cols, v.renderColumn(c, i, l, dropCategory == c.ID))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, headers...)
	columnsRow := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	footer := lipgloss.NewStyle().Foreground(t.Subtle).Render(truncate(v.hints(l, len(categories)), v.width))
	out := lipgloss.JoinVertical(lipgloss.Left, headerRow, columnsRow, footer)

	switch {
	case v.mode == NotesModeMenu:
		if x, y, ok := v.cardOrigin(v.menu.noteID); ok {
			out = PlaceOverlay(x+l.colWidth/3, y+1, v.menu.view(), out)
		}
	case v.mode == NotesModeNoteDialog:
		out = placeCenter(v.noteDialog.View(), out, v.width, v.height)
	case v.mode == NotesModeCategoryDialog:
		out = placeCenter(v.categoryDialog.View(), out, v.width, v.height)
	case drag.Active() && v.mode != NotesModeGrab:
		if note, ok := v.board.ActiveNote(); ok {
			color := model.DefaultCategoryColor
			if c, ok := v.board.Category(note.CategoryID); ok {
				color = c.Color
			}
			out = PlaceOverlay(v.pointer.x+1, v.pointer.y, renderDragClone(note, color, l.colWidth-2), out)
		}
	}
	return out
}

func (v NotesView) renderHeader(c model.Category, active bool, width int) string {
	count := len(v.board.NotesIn(c.ID))
	marker := " "
	if active {
		marker = "▸"
	}
	label := truncate(fmt.Sprintf("%s%s (%d/%d)", marker, c.Name, count, v.board.NoteLimit()), width-2*headerButtonWidth)

	base := lipgloss.NewStyle().
		Background(lipgloss.Color(c.Color)).
		Foreground(lipgloss.Color("#ffffff"))
	if active {
		base = base.Bold(true)
	}
	add := " + "
	if !v.board.CanAdd(c.ID) {
		add = "   "
	}
	left := base.Width(width - 2*headerButtonWidth).Render(label)
	return left + base.Render(add) + base.Render(" ≡ ")
}

func (v NotesView) renderColumn(c model.Category, index int, l boardLayout, dropTarget bool) string {
	t := theme.Current.Theme
	s := theme.Current.Styles
	inner := l.colWidth - 2

	drag := v.board.Drag()
	notes := v.visibleNotes(c.ID, l)
	var items []string
	if len(notes) == 0 {
		items = append(items,
			s.Muted.Render(truncate("Nenhuma nota criada", inner)),
			lipgloss.NewStyle().Foreground(t.Primary).Underline(true).Render(truncate("Criar primeira nota", inner)),
		)
	}
	for i, n := range notes {
		state := cardNormal
		row := i + v.scroll[c.ID]
		switch {
		case drag.NoteID() == n.ID:
			state = cardDragSource
		case v.mode == NotesModeGrab && index == v.grabColumn && row == v.grabRow:
			state = cardFocused
		case v.mode != NotesModeGrab && index == v.currentColumn && row == v.cursorRow:
			state = cardFocused
		}
		items = append(items, renderCard(n, c.Color, inner, state))
	}
	if len(notes) > 0 {
		total := len(v.board.NotesIn(c.ID))
		line := lipgloss.NewStyle().Foreground(t.Primary).Render("+ Adicionar nota")
		if !v.board.CanAdd(c.ID) {
			line = s.Muted.Render(fmt.Sprintf("Limite de %d notas", v.board.NoteLimit()))
		}
		if total > len(notes) {
			first := v.scroll[c.ID] + 1
			line += s.Muted.Render(fmt.Sprintf("  %d-%d/%d", first, first+len(notes)-1, total))
		}
		items = append(items, line)
	}

	border := lipgloss.Color(c.Color)
	switch {
	case dropTarget:
		border = t.DropTarget
	case index == v.currentColumn:
		border = t.Primary
	}
	return lipgloss.NewStyle().
		Width(inner).
		Height(v.columnRows()).
		MaxHeight(v.columnRows() + 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Background(columnTint(c, t.Background)).
		Render(strings.Join(items, "\n"))
}

func (v NotesView) hints(l boardLayout, total int) string {
	switch v.mode {
	case NotesModeGrab:
		return "h/l: categoria • j/k: posição • space/enter: soltar • esc: cancelar"
	case NotesModeMenu:
		return "j/k: navegar • enter: escolher • esc: fechar"
	}
	hints := "h/l: coluna • j/k: nota • a: nova • enter: ver • e: editar • c: duplicar • y: copiar • d: excluir • space: mover • s: categoria • n: nova categoria • ctrl+e: exportar"
	if l.visible < total {
		hints = fmt.Sprintf("[%d-%d/%d] ", l.start+1, l.end(), total) + hints
	}
	return hints
}

// IsInputMode returns whether the view is capturing keys
func (v NotesView) IsInputMode() bool {
	return v.mode != NotesModeNormal
}
