package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/quadro/internal/config"
)

// toastTickInterval is how often expired toasts are swept
const toastTickInterval = 500 * time.Millisecond

// Page represents the current page
type Page int

const (
	PageNotes Page = iota
	PageAccount
)

// String returns the display name for a page
func (p Page) String() string {
	switch p {
	case PageNotes:
		return "Notas"
	case PageAccount:
		return "Conta"
	default:
		return "Unknown"
	}
}

// PageFromConfig maps a start_view value to a page
func PageFromConfig(view string) Page {
	if view == config.ViewAccount {
		return PageAccount
	}
	return PageNotes
}

// Messages for inter-component communication

// ConfigReloadedMsg carries a configuration reloaded from disk
type ConfigReloadedMsg struct {
	Config config.Config
	Err    error
}

// toastTickMsg drives toast expiry
type toastTickMsg time.Time

func toastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}
