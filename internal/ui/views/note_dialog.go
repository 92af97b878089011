package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/quadro/internal/model"
	"github.com/dori/quadro/internal/ui/theme"
)

// DialogState is what the note dialog is showing. It is exactly one of
// DialogClosed, DialogCreating, DialogEditing or DialogViewing.
type DialogState interface {
	dialogState()
}

// DialogClosed means no note dialog is open
type DialogClosed struct{}

// DialogCreating holds a draft that is not on the board yet
type DialogCreating struct{ Draft model.Note }

// DialogEditing holds the stored note being edited
type DialogEditing struct{ Note model.Note }

// DialogViewing holds the note shown read-only
type DialogViewing struct{ Note model.Note }

func (DialogClosed) dialogState()   {}
func (DialogCreating) dialogState() {}
func (DialogEditing) dialogState()  {}
func (DialogViewing) dialogState()  {}

// NoteSavedMsg carries the note produced by the dialog's save action
type NoteSavedMsg struct {
	Note model.Note
}

// NoteDialog creates, edits and shows a single note
type NoteDialog struct {
	state   DialogState
	title   textinput.Model
	content textarea.Model
	focus   int
	width   int
	height  int
}

// NewNoteDialog returns a closed dialog
func NewNoteDialog() NoteDialog {
	ti := textinput.New()
	ti.Placeholder = "Título"
	ti.Prompt = ""
	ti.CharLimit = 0

	ta := textarea.New()
	ta.Placeholder = "Conteúdo"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0

	return NoteDialog{
		state:   DialogClosed{},
		title:   ti,
		content: ta,
	}
}

// SetSize sets the space the dialog may use
func (d NoteDialog) SetSize(width, height int) NoteDialog {
	d.width = width
	d.height = height
	w := d.innerWidth()
	d.title.Width = w
	d.content.SetWidth(w)
	h := height - 14
	if h < 3 {
		h = 3
	}
	if h > 16 {
		h = 16
	}
	d.content.SetHeight(h)
	return d
}

func (d NoteDialog) innerWidth() int {
	w := d.width - 12
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Open shows the dialog in the given state and seeds the working copy
func (d NoteDialog) Open(state DialogState) NoteDialog {
	d.state = state
	note, ok := d.note()
	if !ok {
		return d.Close()
	}
	d.title.SetValue(note.Title)
	d.title.CursorEnd()
	d.content.SetValue(note.Content)
	d.focus = 0

	if _, viewing := state.(DialogViewing); viewing {
		d.title.Blur()
		d.content.Blur()
		return d
	}
	d.title.Focus()
	d.content.Blur()
	return d
}

// Close discards the working copy
func (d NoteDialog) Close() NoteDialog {
	d.state = DialogClosed{}
	d.title.Blur()
	d.content.Blur()
	d.title.SetValue("")
	d.content.SetValue("")
	return d
}

// State returns the current dialog state
func (d NoteDialog) State() DialogState {
	return d.state
}

// IsOpen reports whether the dialog is showing
func (d NoteDialog) IsOpen() bool {
	_, closed := d.state.(DialogClosed)
	return !closed
}

func (d NoteDialog) note() (model.Note, bool) {
	switch s := d.state.(type) {
	case DialogCreating:
		return s.Draft, true
	case DialogEditing:
		return s.Note, true
	case DialogViewing:
		return s.Note, true
	}
	return model.Note{}, false
}

// merged applies the working copy to the note being created or edited.
// Identity, category and creation time always come from the original.
func (d NoteDialog) merged() (model.Note, bool) {
	var note model.Note
	switch s := d.state.(type) {
	case DialogCreating:
		note = s.Draft
	case DialogEditing:
		note = s.Note
	default:
		return model.Note{}, false
	}
	note.Title = strings.TrimSpace(d.title.Value())
	if note.Title == "" {
		note.Title = model.UntitledNote
	}
	note.Content = strings.TrimSpace(d.content.Value())
	return note, true
}

// Update handles input while the dialog is open
func (d NoteDialog) Update(msg tea.Msg) (NoteDialog, tea.Cmd) {
	if !d.IsOpen() {
		return d, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		if _, viewing := d.state.(DialogViewing); viewing {
			return d.handleViewKey(key)
		}
		switch key.String() {
		case "esc":
			return d.Close(), nil
		case "ctrl+s":
			note, ok := d.merged()
			d = d.Close()
			if !ok {
				return d, nil
			}
			return d, func() tea.Msg { return NoteSavedMsg{Note: note} }
		case "tab", "shift+tab":
			d.focus = 1 - d.focus
			if d.focus == 0 {
				d.content.Blur()
				return d, d.title.Focus()
			}
			d.title.Blur()
			return d, d.content.Focus()
		case "enter":
			if d.focus == 0 {
				d.focus = 1
				d.title.Blur()
				return d, d.content.Focus()
			}
		}
	}

	var cmd tea.Cmd
	if d.focus == 0 {
		d.title, cmd = d.title.Update(msg)
	} else {
		d.content, cmd = d.content.Update(msg)
	}
	return d, cmd
}

func (d NoteDialog) handleViewKey(msg tea.KeyMsg) (NoteDialog, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		return d.Close(), nil
	case "e":
		if s, ok := d.state.(DialogViewing); ok {
			return d.Open(DialogEditing{Note: s.Note}), nil
		}
	}
	return d, nil
}

// View renders the dialog box
func (d NoteDialog) View() string {
	if !d.IsOpen() {
		return ""
	}
	t := theme.Current.Theme
	s := theme.Current.Styles
	w := d.innerWidth()

	var heading, desc string
	switch d.state.(type) {
	case DialogViewing:
		heading, desc = "Visualizar nota", "Visualize os detalhes da sua nota"
	case DialogEditing:
		heading, desc = "Editar nota", "Adicione ou edite os detalhes da sua nota"
	default:
		heading, desc = "Nova nota", "Adicione ou edite os detalhes da sua nota"
	}

	var body []string
	body = append(body, s.PanelTitle.Render(heading), s.Subtitle.Render(desc), "")

	if _, viewing := d.state.(DialogViewing); viewing {
		note, _ := d.note()
		body = append(body, s.CardTitle.Render(truncate(note.Title, w)), "")
		content := renderMarkdown(note.Content, w)
		if content == "" {
			content = s.Muted.Render("(sem conteúdo)")
		}
		body = append(body, content, "")
		body = append(body, lipgloss.NewStyle().Foreground(t.Subtle).Render("esc: Fechar • e: editar"))
		return s.Dialog.Render(strings.Join(body, "\n"))
	}

	titleBox := s.Input
	contentBox := s.Input
	if d.focus == 0 {
		titleBox = s.InputFocused
	} else {
		contentBox = s.InputFocused
	}
	body = append(body,
		titleBox.Width(w+2).Render(d.title.View()),
		contentBox.Width(w+2).Render(d.content.View()),
		"",
		lipgloss.NewStyle().Foreground(t.Subtle).Render("ctrl+s: Salvar • tab: campo • esc: Cancelar"),
	)
	return s.Dialog.Render(strings.Join(body, "\n"))
}
