package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/quadro/internal/model"
	"github.com/dori/quadro/internal/ui/theme"
	"github.com/mattn/go-runewidth"
)

const (
	cardPreviewLines = 3
	// title + preview + spacer
	cardHeight = cardPreviewLines + 2
)

// cardState is how a card is drawn in its column
type cardState int

const (
	cardNormal cardState = iota
	cardFocused
	cardDragSource
)

// truncate cuts s to width cells, adding an ellipsis when it had to cut
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// renderCard draws one note in exactly cardHeight lines of the given width
func renderCard(note model.Note, color string, width int, state cardState) string {
	t := theme.Current.Theme
	s := theme.Current.Styles

	inner := width - 2
	if inner < 1 {
		inner = 1
	}

	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("▌")
	titleStyle := s.CardTitle
	bodyStyle := s.CardBody
	line := lipgloss.NewStyle().Width(inner)

	switch state {
	case cardFocused:
		line = s.CardSelected.Width(inner)
		titleStyle = titleStyle.Foreground(t.Primary)
	case cardDragSource:
		bar = s.CardGhost.Render("┊")
		titleStyle = s.CardGhost.Italic(true)
		bodyStyle = s.CardGhost
	}

	rows := make([]string, 0, cardHeight)
	rows = append(rows, bar+" "+line.Render(titleStyle.Render(truncate(note.Title, inner))))
	preview := note.Preview(cardPreviewLines)
	for i := 0; i < cardPreviewLines; i++ {
		text := ""
		if i < len(preview) {
			text = truncate(preview[i], inner)
		}
		rows = append(rows, bar+" "+line.Render(bodyStyle.Render(text)))
	}
	rows = append(rows, "")
	return strings.Join(rows, "\n")
}

// renderDragClone draws the floating copy of the dragged note
func renderDragClone(note model.Note, color string, width int) string {
	s := theme.Current.Styles
	inner := width - 4
	if inner < 8 {
		inner = 8
	}

	lines := []string{s.CardTitle.Foreground(lipgloss.Color(color)).Render(truncate(note.Title, inner))}
	for _, p := range note.Preview(cardPreviewLines) {
		lines = append(lines, s.CardBody.Render(truncate(p, inner)))
	}
	return s.CardDragged.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

// cardAction is an entry of the card action menu
type cardAction int

const (
	actionNone cardAction = iota
	actionEdit
	actionDuplicate
	actionCopy
	actionDelete
)

type menuItem struct {
	action cardAction
	key    string
	label  string
}

var cardMenuItems = []menuItem{
	{actionEdit, "e", "Editar"},
	{actionDuplicate, "c", "Duplicar"},
	{actionCopy, "y", "Copiar"},
	{actionDelete, "d", "Excluir"},
}

// cardMenu is the per-card action menu
type cardMenu struct {
	noteID string
	cursor int
}

func newCardMenu(noteID string) cardMenu {
	return cardMenu{noteID: noteID}
}

// update handles a key and reports the chosen action. done is true once the
// menu should close, with or without an action.
func (m cardMenu) update(msg tea.KeyMsg) (cardMenu, cardAction, bool) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(cardMenuItems)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		return m, cardMenuItems[m.cursor].action, true
	case "esc", ".":
		return m, actionNone, true
	default:
		for _, item := range cardMenuItems {
			if msg.String() == item.key {
				return m, item.action, true
			}
		}
	}
	return m, actionNone, false
}

func (m cardMenu) view() string {
	s := theme.Current.Styles
	var lines []string
	for i, item := range cardMenuItems {
		label := s.HelpKey.Render(item.key) + " " + item.label
		style := s.MenuItem
		if item.action == actionDelete {
			style = s.MenuDanger
		}
		if i == m.cursor {
			style = s.MenuSelected
			label = item.key + " " + item.label
		}
		lines = append(lines, style.Render(" "+label+" "))
	}
	return s.Menu.Render(strings.Join(lines, "\n"))
}
