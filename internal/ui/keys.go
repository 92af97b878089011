package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	// Note actions
	Add       key.Binding
	View      key.Binding
	Edit      key.Binding
	Duplicate key.Binding
	Copy      key.Binding
	Delete    key.Binding
	Menu      key.Binding
	Grab      key.Binding

	// Categories
	CategorySettings key.Binding
	NewCategory      key.Binding

	// Pages
	NotesPage   key.Binding
	AccountPage key.Binding

	// General
	Export        key.Binding
	Notifications key.Binding
	DismissToast  key.Binding
	ThemeCycle    key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "coluna anterior"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "próxima coluna"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "nota acima"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "nota abaixo"),
		),

		// Note actions
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "nova nota"),
		),
		View: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "visualizar"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "editar"),
		),
		Duplicate: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "duplicar"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copiar"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "excluir"),
		),
		Menu: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "ações"),
		),
		Grab: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "mover nota"),
		),

		// Categories
		CategorySettings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "editar categoria"),
		),
		NewCategory: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "nova categoria"),
		),

		// Pages
		NotesPage: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "notas"),
		),
		AccountPage: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "conta"),
		),

		// General
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "exportar"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "notificações"),
		),
		DismissToast: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "fechar aviso"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "tema"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ajuda"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "sair"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NotesPage, k.AccountPage, k.Notifications, k.ThemeCycle, k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Add, k.View, k.Edit, k.Duplicate},
		{k.Copy, k.Delete, k.Menu, k.Grab},
		{k.CategorySettings, k.NewCategory, k.Export},
		{k.Notifications, k.DismissToast, k.ThemeCycle},
		{k.NotesPage, k.AccountPage, k.Help, k.Quit},
	}
}
