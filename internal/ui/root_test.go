package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/quadro/internal/app"
	"github.com/dori/quadro/internal/board"
	"github.com/dori/quadro/internal/config"
	"github.com/dori/quadro/internal/notify"
	"github.com/dori/quadro/internal/ui/theme"
	"github.com/dori/quadro/internal/ui/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestRoot(t *testing.T) (RootModel, *app.App, *testClock) {
	t.Helper()

	original := theme.Current.Theme
	t.Cleanup(func() { theme.SetTheme(original) })

	clock := &testClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	toasts := notify.NewQueue(notify.WithQueueClock(clock.Now))
	notifier := notify.NewNotifier(toasts)

	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.ExportDir = cfg.DataDir

	a := &app.App{
		Board:    board.New(board.WithNotifier(notifier)),
		Notifier: notifier,
		Toasts:   toasts,
		Config:   cfg,
		Logger:   zap.NewNop(),
	}
	m := NewRootModel(a)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 34})
	return next.(RootModel), a, clock
}

func update(t *testing.T, m RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(RootModel), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestRootSwitchesPages(t *testing.T) {
	m, _, _ := newTestRoot(t)
	assert.Equal(t, PageNotes, m.CurrentPage())

	m, _ = update(t, m, runes("2"))
	assert.Equal(t, PageAccount, m.CurrentPage())
	assert.Contains(t, m.View(), "Minha Conta")

	m, _ = update(t, m, runes("1"))
	assert.Equal(t, PageNotes, m.CurrentPage())
	assert.Contains(t, m.View(), "Roteiros")
}

func TestRootStartsOnConfiguredPage(t *testing.T) {
	cfg := config.Default()
	cfg.StartView = config.ViewAccount
	a := &app.App{
		Board:    board.New(),
		Notifier: notify.NewNotifier(),
		Toasts:   notify.NewQueue(),
		Config:   cfg,
		Logger:   zap.NewNop(),
	}
	assert.Equal(t, PageAccount, NewRootModel(a).CurrentPage())
}

func TestRootQuitRespectsInputMode(t *testing.T) {
	m, _, _ := newTestRoot(t)

	_, cmd := update(t, m, runes("q"))
	assert.True(t, isQuit(cmd))

	// typing into the note dialog must not quit
	m, _ = update(t, m, runes("a"))
	require.True(t, m.isInputMode())
	m, cmd = update(t, m, runes("q"))
	assert.False(t, isQuit(cmd))
	assert.Equal(t, PageNotes, m.CurrentPage())

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
}

func TestRootPageKeysIgnoredWhileTyping(t *testing.T) {
	m, _, _ := newTestRoot(t)

	m, _ = update(t, m, runes("a"))
	m, _ = update(t, m, runes("2"))
	assert.Equal(t, PageNotes, m.CurrentPage())
}

func TestRootHelpToggle(t *testing.T) {
	m, _, _ := newTestRoot(t)

	m, _ = update(t, m, runes("?"))
	assert.True(t, m.helpVisible)
	assert.Contains(t, m.View(), "Ajuda")

	// page keys are swallowed while help is up
	m, _ = update(t, m, runes("2"))
	assert.Equal(t, PageNotes, m.CurrentPage())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.helpVisible)
}

func TestRootCyclesTheme(t *testing.T) {
	m, a, _ := newTestRoot(t)
	before := theme.Current.Theme.Name

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.NotEqual(t, before, theme.Current.Theme.Name)
	assert.Contains(t, m.View(), theme.Current.Theme.Name)
	assert.Equal(t, theme.Current.Styles.HelpKey, m.help.Styles.ShortKey, "key hints follow the theme")
	assert.Equal(t, theme.Current.Styles.HelpDesc, m.help.Styles.FullDesc)

	active := a.Toasts.Active()
	require.Len(t, active, 1)
	assert.Equal(t, theme.Current.Theme.Name, active[0].Description)
}

func TestRootShowsAndExpiresToasts(t *testing.T) {
	m, a, clock := newTestRoot(t)

	a.Notifier.Send(notify.Success("Sucesso", "Categoria salva com sucesso"))
	assert.Contains(t, m.View(), "Categoria salva com sucesso")

	clock.now = clock.now.Add(time.Minute)
	m, cmd := update(t, m, toastTickMsg(clock.now))
	assert.NotNil(t, cmd, "the tick re-arms itself")
	assert.Zero(t, a.Toasts.Len())
	assert.NotContains(t, m.View(), "Categoria salva com sucesso")
}

func TestRootAppliesReloadedConfig(t *testing.T) {
	m, a, _ := newTestRoot(t)
	a.Desktop = notify.NewDesktop(nil)

	cfg := config.Default()
	cfg.Theme = "dracula"
	cfg.Account.Name = "Bia"
	cfg.DesktopNotifications = true
	m, _ = update(t, m, ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, "dracula", theme.Current.Theme.Name)
	assert.Equal(t, "Bia", m.accountView.Account().Name)
	assert.Equal(t, "dracula", a.Config.Theme)
	assert.True(t, a.Desktop.IsEnabled())
}

func TestRootReportsReloadError(t *testing.T) {
	m, a, _ := newTestRoot(t)
	before := theme.Current.Theme.Name

	update(t, m, ConfigReloadedMsg{Err: errors.New("parsing config.toml: bad")})

	assert.Equal(t, before, theme.Current.Theme.Name)
	active := a.Toasts.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notify.KindError, active[0].Kind)
}

func TestRootRoutesNotesResultsAfterPageSwitch(t *testing.T) {
	m, a, _ := newTestRoot(t)

	m, _ = update(t, m, runes("a"))
	m, save := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, save)
	m, _ = update(t, m, runes("2"))
	require.Equal(t, PageAccount, m.CurrentPage())

	m, _ = update(t, m, save())
	assert.Len(t, a.Board.Notes(), 1)
	assert.Equal(t, PageAccount, m.CurrentPage())
}

func TestRootRoutesExportResultAfterPageSwitch(t *testing.T) {
	m, a, _ := newTestRoot(t)

	m, export := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	require.NotNil(t, export)
	m, _ = update(t, m, runes("2"))

	update(t, m, export())
	active := a.Toasts.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Notas exportadas", active[0].Title)
}

func TestRootHeaderGreetsUser(t *testing.T) {
	m, _, _ := newTestRoot(t)
	header := strings.Split(m.View(), "\n")[0]
	assert.Contains(t, header, "Bem-vindo, João Silva")
	assert.Contains(t, header, "🔔")

	cfg := config.Default()
	cfg.Account.Name = "Bia"
	m, _ = update(t, m, ConfigReloadedMsg{Config: cfg})
	assert.Contains(t, strings.Split(m.View(), "\n")[0], "Bem-vindo, Bia")
}

func TestRootInboxToggle(t *testing.T) {
	m, _, _ := newTestRoot(t)
	assert.NotContains(t, m.View(), "Novo recurso disponível!")

	m, _ = update(t, m, runes("b"))
	require.True(t, m.inboxVisible)
	out := m.View()
	assert.Contains(t, out, "Notificações")
	assert.Contains(t, out, "Novo recurso disponível!")
	assert.Contains(t, out, "Limite atingido")

	// the panel swallows page keys
	m, _ = update(t, m, runes("2"))
	assert.Equal(t, PageNotes, m.CurrentPage())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.inboxVisible)
	assert.NotContains(t, m.View(), "Limite atingido")
	assert.True(t, m.inboxSeen)
}

func TestRootInboxIgnoredWhileTyping(t *testing.T) {
	m, _, _ := newTestRoot(t)

	m, _ = update(t, m, runes("a"))
	m, _ = update(t, m, runes("b"))
	assert.False(t, m.inboxVisible)
}

func TestRootBellClickTogglesInbox(t *testing.T) {
	m, _, _ := newTestRoot(t)

	bellX := -1
	for x := 0; x < m.width; x++ {
		if m.onBell(x) {
			bellX = x
			break
		}
	}
	require.GreaterOrEqual(t, bellX, 0)

	click := tea.MouseMsg{X: bellX, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(t, m, click)
	assert.True(t, m.inboxVisible)
	m, _ = update(t, m, click)
	assert.False(t, m.inboxVisible)

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.inboxVisible)
}

func TestRootDismissesNewestToast(t *testing.T) {
	m, a, _ := newTestRoot(t)
	a.Notifier.Send(notify.Info("Primeiro", ""))
	a.Notifier.Send(notify.Info("Segundo", ""))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	active := a.Toasts.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Primeiro", active[0].Title)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Empty(t, a.Toasts.Active())
}

func TestRootMouseIsOffsetByHeader(t *testing.T) {
	m, a, _ := newTestRoot(t)
	draft, err := a.Board.AddNote("roteiros")
	require.NoError(t, err)
	a.Board.SaveNote(draft)

	// cards start two rows into the page, the page starts below the header
	y := headerHeight + 2
	m, _ = update(t, m, tea.MouseMsg{X: 4, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 4, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})

	assert.Equal(t, views.NotesModeNoteDialog, m.notesView.Mode())
}
