package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/quadro/internal/model"
	"github.com/dori/quadro/internal/notify"
	"github.com/dori/quadro/internal/ui/theme"
)

// CategorySavedMsg carries the category produced by the dialog's save action.
// ID is empty for a new category.
type CategorySavedMsg struct {
	Category model.Category
}

// CategoryDeleteMsg asks the board to delete a category. The dialog stays
// open until the board accepts.
type CategoryDeleteMsg struct {
	ID string
}

// CategoryDialogMode is what the category dialog is doing
type CategoryDialogMode int

const (
	CategoryDialogClosed CategoryDialogMode = iota
	CategoryDialogCreating
	CategoryDialogEditing
)

// focusable fields, the three picker sliders follow the two inputs
const (
	fieldName = iota
	fieldHex
	fieldPicker
)

// CategoryDialog creates, edits and deletes a category
type CategoryDialog struct {
	mode     CategoryDialogMode
	original model.Category
	name     textinput.Model
	hex      textinput.Model
	picker   ColorPicker
	focus    int
	notifier notify.Sender
	width    int
}

// NewCategoryDialog returns a closed dialog that reports validation errors
// to n
func NewCategoryDialog(n notify.Sender) CategoryDialog {
	if n == nil {
		n = notify.Discard
	}
	name := textinput.New()
	name.Placeholder = "Digite o nome da categoria"
	name.Prompt = ""
	name.CharLimit = 0

	hex := textinput.New()
	hex.Placeholder = model.DefaultCategoryColor
	hex.Prompt = ""
	hex.CharLimit = 7

	return CategoryDialog{
		name:     name,
		hex:      hex,
		picker:   NewColorPicker(model.DefaultCategoryColor),
		notifier: n,
	}
}

// SetSize sets the space the dialog may use
func (d CategoryDialog) SetSize(width, _ int) CategoryDialog {
	d.width = width
	w := d.innerWidth()
	d.name.Width = w
	d.hex.Width = w
	d.picker = d.picker.SetWidth(w - 10)
	return d
}

func (d CategoryDialog) innerWidth() int {
	w := d.width - 12
	if w > 48 {
		w = 48
	}
	if w < 24 {
		w = 24
	}
	return w
}

// OpenNew opens the dialog for a new category
func (d CategoryDialog) OpenNew() CategoryDialog {
	return d.open(CategoryDialogCreating, model.Category{}.WithColor(model.DefaultCategoryColor))
}

// OpenEdit opens the dialog on an existing category
func (d CategoryDialog) OpenEdit(c model.Category) CategoryDialog {
	return d.open(CategoryDialogEditing, c)
}

func (d CategoryDialog) open(mode CategoryDialogMode, c model.Category) CategoryDialog {
	d.mode = mode
	d.original = c
	d.name.SetValue(c.Name)
	d.name.CursorEnd()
	d.hex.SetValue(c.Color)
	d.picker = NewColorPicker(c.Color).SetWidth(d.innerWidth() - 10)
	d.focus = fieldName
	d.name.Focus()
	d.hex.Blur()
	return d
}

// Close discards the working copy
func (d CategoryDialog) Close() CategoryDialog {
	d.mode = CategoryDialogClosed
	d.original = model.Category{}
	d.name.Blur()
	d.hex.Blur()
	return d
}

// Mode returns the dialog mode
func (d CategoryDialog) Mode() CategoryDialogMode {
	return d.mode
}

// IsOpen reports whether the dialog is showing
func (d CategoryDialog) IsOpen() bool {
	return d.mode != CategoryDialogClosed
}

// Editing returns the stored category being edited
func (d CategoryDialog) Editing() (model.Category, bool) {
	return d.original, d.mode == CategoryDialogEditing
}

func (d CategoryDialog) setFocus(focus int) (CategoryDialog, tea.Cmd) {
	last := fieldPicker + sliderCount - 1
	if focus < 0 {
		focus = last
	}
	if focus > last {
		focus = fieldName
	}
	d.focus = focus
	d.name.Blur()
	d.hex.Blur()
	switch {
	case focus == fieldName:
		return d, d.name.Focus()
	case focus == fieldHex:
		return d, d.hex.Focus()
	default:
		d.picker = d.picker.Focus(focus - fieldPicker)
		return d, nil
	}
}

// save validates the working copy and emits it
func (d CategoryDialog) save() (CategoryDialog, tea.Cmd) {
	name := strings.TrimSpace(d.name.Value())
	if name == "" {
		d.notifier.Send(notify.Error("Erro", "O nome da categoria é obrigatório"))
		return d, nil
	}
	color, ok := normalizeHex(d.hex.Value())
	if !ok {
		d.notifier.Send(notify.Error("Cor inválida", "Use o formato #rrggbb"))
		return d, nil
	}

	c := d.original
	c.Name = name
	c = c.WithColor(color)
	d = d.Close()
	return d, func() tea.Msg { return CategorySavedMsg{Category: c} }
}

// Update handles input while the dialog is open
func (d CategoryDialog) Update(msg tea.Msg) (CategoryDialog, tea.Cmd) {
	if !d.IsOpen() {
		return d, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d.updateInputs(msg)
	}

	switch key.String() {
	case "esc":
		return d.Close(), nil
	case "ctrl+s", "enter":
		return d.save()
	case "ctrl+d":
		if d.mode != CategoryDialogEditing {
			return d, nil
		}
		id := d.original.ID
		return d, func() tea.Msg { return CategoryDeleteMsg{ID: id} }
	case "tab", "down":
		return d.setFocus(d.focus + 1)
	case "shift+tab", "up":
		return d.setFocus(d.focus - 1)
	}

	if d.focus >= fieldPicker {
		var changed bool
		d.picker, changed = d.picker.Update(key)
		if changed {
			d.hex.SetValue(d.picker.Hex())
		}
		return d, nil
	}
	return d.updateInputs(msg)
}

func (d CategoryDialog) updateInputs(msg tea.Msg) (CategoryDialog, tea.Cmd) {
	var cmd tea.Cmd
	switch d.focus {
	case fieldName:
		d.name, cmd = d.name.Update(msg)
	case fieldHex:
		d.hex, cmd = d.hex.Update(msg)
		if p, ok := d.picker.SetHex(d.hex.Value()); ok {
			d.picker = p
		}
	}
	return d, cmd
}

// View renders the dialog box
func (d CategoryDialog) View() string {
	if !d.IsOpen() {
		return ""
	}
	t := theme.Current.Theme
	s := theme.Current.Styles
	w := d.innerWidth()

	heading := "Nova categoria"
	if d.mode == CategoryDialogEditing {
		heading = "Editar categoria"
	}

	box := func(field int) lipgloss.Style {
		if d.focus == field {
			return s.InputFocused.Width(w + 2)
		}
		return s.Input.Width(w + 2)
	}

	swatchColor := d.picker.Hex()
	if hex, ok := normalizeHex(d.hex.Value()); ok {
		swatchColor = hex
	}
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(swatchColor)).Render("  ")

	hints := "ctrl+s: Salvar • tab: campo • ←/→: ajustar cor • esc: Cancelar"
	if d.mode == CategoryDialogEditing {
		hints += " • ctrl+d: Excluir categoria"
	}

	body := []string{
		s.PanelTitle.Render(heading),
		s.Subtitle.Render("Personalize sua categoria com um nome e cor"),
		"",
		s.Label.Render("Nome da categoria"),
		box(fieldName).Render(d.name.View()),
		s.Label.Render("Cor da categoria"),
		d.picker.View(d.focus >= fieldPicker),
		box(fieldHex).Render(swatch + " " + d.hex.View()),
		"",
		lipgloss.NewStyle().Foreground(t.Subtle).Render(hints),
	}
	return s.Dialog.Render(strings.Join(body, "\n"))
}
