package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/quadro/internal/app"
	"github.com/dori/quadro/internal/notify"
	"github.com/dori/quadro/internal/ui/theme"
	"github.com/dori/quadro/internal/ui/views"
	"go.uber.org/zap"
)

// Rows taken by the root around the page content
const (
	headerHeight = 1
	toastLines   = 2
	footerHeight = 1
)

// inbox is the fixed list behind the header bell
var inbox = []notify.Notification{
	notify.Info("Novo recurso disponível!", "Experimente nossa nova ferramenta de geração de imagens com IA."),
	notify.Info("Limite atingido", "Você atingiu seu limite diário de transcrições."),
}

const inboxWidth = 44

// RootModel is the main application model that manages pages
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentPage Page
	notesView   views.NotesView
	accountView views.AccountView
	helpVisible bool

	inboxVisible bool
	inboxSeen    bool
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	if t, ok := theme.ByName(application.Config.Theme); ok {
		theme.SetTheme(t)
	}

	return RootModel{
		app:         application,
		keys:        DefaultKeyMap(),
		help:        styleHelp(h),
		currentPage: PageFromConfig(application.Config.StartView),
		notesView:   views.NewNotesView(application.Board, application.Notifier, application.Config.ExportDir),
		accountView: views.NewAccountView(application.Notifier, application.Config.AccountModel(), application.Config.UsageModels()),
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.notesView.Init(), m.accountView.Init(), toastTick())
}

// CurrentPage returns the page on screen
func (m RootModel) CurrentPage() Page {
	return m.currentPage
}

func (m RootModel) contentHeight() int {
	h := m.height - headerHeight - toastLines - footerHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (m RootModel) isInputMode() bool {
	switch m.currentPage {
	case PageAccount:
		return m.accountView.IsInputMode()
	default:
		return m.notesView.IsInputMode()
	}
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// the footer style pads one cell on each side
		m.help.Width = msg.Width - 2
		m.notesView = m.notesView.SetSize(m.width, m.contentHeight())
		m.accountView = m.accountView.SetSize(m.width, m.contentHeight())
		return m, nil

	case toastTickMsg:
		m.app.Toasts.Expire()
		return m, toastTick()

	case ConfigReloadedMsg:
		return m.applyConfig(msg), nil

	// results of notes page commands belong to the board whatever page is up
	case views.NoteSavedMsg, views.CategorySavedMsg, views.CategoryDeleteMsg, views.ExportDoneMsg:
		next, cmd := m.notesView.Update(msg)
		m.notesView = next.(views.NotesView)
		return m, cmd

	case tea.MouseMsg:
		if msg.Y < headerHeight && m.onBell(msg.X) &&
			msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if !m.isInputMode() && !m.helpVisible {
				m = m.toggleInbox()
			}
			return m, nil
		}
		if m.helpVisible || m.inboxVisible || m.currentPage != PageNotes {
			return m, nil
		}
		// page coordinates start below the header
		msg.Y -= headerHeight
		return m.delegate(msg)

	case tea.KeyMsg:
		inputMode := m.isInputMode()

		// Global keybindings
		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !inputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil

		case key.Matches(msg, m.keys.DismissToast):
			m.dismissNewestToast()
			return m, nil
		}

		if inputMode {
			break
		}

		if m.helpVisible {
			if msg.String() == "esc" || key.Matches(msg, m.keys.Help) {
				m.helpVisible = false
			}
			return m, nil
		}

		if m.inboxVisible {
			if msg.String() == "esc" || key.Matches(msg, m.keys.Notifications) {
				m.inboxVisible = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = true
			return m, nil
		case key.Matches(msg, m.keys.Notifications):
			m = m.toggleInbox()
			return m, nil
		case key.Matches(msg, m.keys.NotesPage):
			m.currentPage = PageNotes
			return m, nil
		case key.Matches(msg, m.keys.AccountPage):
			m.currentPage = PageAccount
			return m, nil
		}
	}

	return m.delegate(msg)
}

// delegate passes a message to the current page
func (m RootModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentPage {
	case PageAccount:
		var next tea.Model
		next, cmd = m.accountView.Update(msg)
		m.accountView = next.(views.AccountView)
	default:
		var next tea.Model
		next, cmd = m.notesView.Update(msg)
		m.notesView = next.(views.NotesView)
	}
	return m, cmd
}

// applyConfig re-applies the parts of the configuration that can change at
// runtime
func (m RootModel) applyConfig(msg ConfigReloadedMsg) RootModel {
	if msg.Err != nil {
		m.app.Logger.Warn("config reload failed", zap.Error(msg.Err))
		m.app.Notifier.Send(notify.Error("Configuração inválida", msg.Err.Error()))
		return m
	}
	cfg := msg.Config
	if t, ok := theme.ByName(cfg.Theme); ok {
		theme.SetTheme(t)
		m.help = styleHelp(m.help)
	}
	if m.app.Desktop != nil {
		m.app.Desktop.SetEnabled(cfg.DesktopNotifications)
	}
	m.app.Config = cfg
	m.notesView = m.notesView.SetExportDir(cfg.ExportDir)
	m.accountView = m.accountView.SetProfile(cfg.AccountModel(), cfg.UsageModels())
	m.app.Logger.Info("config reloaded", zap.String("theme", cfg.Theme))
	m.app.Notifier.Send(notify.Info("Configuração recarregada", cfg.Path()))
	return m
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	contentHeight := m.contentHeight()
	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentPage {
		case PageAccount:
			content = m.accountView.View()
		default:
			content = m.notesView.View()
		}
	}
	content = lipgloss.NewStyle().MaxHeight(contentHeight).Render(content)
	if lines := strings.Count(content, "\n") + 1; lines < contentHeight {
		content += strings.Repeat("\n", contentHeight-lines)
	}
	if m.inboxVisible {
		panel := m.renderInbox()
		content = views.PlaceOverlay(m.width-lipgloss.Width(panel)-1, 0, panel, content)
	}

	sections := []string{m.renderHeader(), content, m.renderToasts(), m.renderFooter()}
	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	left, greeting, bell, status := m.headerParts()
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(greeting) - lipgloss.Width(bell) - lipgloss.Width(status)
	if gap < 0 {
		gap += lipgloss.Width(greeting)
		greeting = ""
	}
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + greeting + bell + status
}

// headerParts returns the header pieces: app name with page tabs, the
// greeting, the notifications bell and the theme indicator
func (m RootModel) headerParts() (left, greeting, bell, status string) {
	styles := theme.Current.Styles

	tabs := []string{styles.Header.Render("quadro")}
	for _, p := range []Page{PageNotes, PageAccount} {
		label := fmt.Sprintf("%d %s", int(p)+1, p.String())
		if p == m.currentPage {
			tabs = append(tabs, styles.TabActive.Render(label))
			continue
		}
		tabs = append(tabs, styles.Tab.Render(label))
	}
	left = lipgloss.JoinHorizontal(lipgloss.Center, tabs...)

	greeting = styles.Label.Render("Bem-vindo")
	if name := m.accountView.Account().Name; name != "" {
		greeting = styles.Label.Render("Bem-vindo, ") + styles.StatusKey.Render(name)
	}

	badge := " "
	if !m.inboxSeen {
		badge = styles.Badge.Render("•")
	}
	bell = "  🔔" + badge + " "

	status = lipgloss.NewStyle().Padding(0, 1).Render(
		styles.Label.Render("tema:") + " " + styles.StatusValue.Render(theme.Current.Theme.Name))
	return left, greeting, bell, status
}

// onBell reports whether header column x falls on the bell
func (m RootModel) onBell(x int) bool {
	_, _, bell, status := m.headerParts()
	end := m.width - lipgloss.Width(status)
	return x >= end-lipgloss.Width(bell) && x < end
}

func (m RootModel) toggleInbox() RootModel {
	m.inboxVisible = !m.inboxVisible
	if m.inboxVisible {
		m.inboxSeen = true
	}
	return m
}

// renderInbox renders the notifications panel opened from the bell
func (m RootModel) renderInbox() string {
	s := theme.Current.Styles
	// border and horizontal padding of the panel style
	inner := inboxWidth - 6

	lines := []string{s.PanelTitle.Render("Notificações")}
	for _, n := range inbox {
		lines = append(lines, "",
			s.CardTitle.Render(n.Title),
			s.HelpDesc.Width(inner).Render(n.Description))
	}
	lines = append(lines, "", s.HelpDesc.Render("b ou esc para fechar"))
	return s.Panel.Width(inboxWidth - 2).Render(strings.Join(lines, "\n"))
}

func (m RootModel) dismissNewestToast() {
	active := m.app.Toasts.Active()
	if len(active) == 0 {
		return
	}
	m.app.Toasts.Dismiss(active[len(active)-1].ID)
}

// renderToasts renders the newest active toasts, one per line
func (m RootModel) renderToasts() string {
	styles := theme.Current.Styles
	active := m.app.Toasts.Active()
	if len(active) > toastLines {
		active = active[len(active)-toastLines:]
	}

	lines := make([]string, 0, toastLines)
	for _, toast := range active {
		text := toast.Title
		if toast.Description != "" {
			text += ": " + toast.Description
		}
		style := styles.ToastStyle(toast.Kind)
		lines = append(lines, style.MaxWidth(m.width).Render(toastIcon(toast.Kind)+" "+text))
	}
	for len(lines) < toastLines {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func toastIcon(kind notify.Kind) string {
	switch kind {
	case notify.KindSuccess:
		return "✓"
	case notify.KindError:
		return "✗"
	default:
		return "•"
	}
}

// renderFooter renders the global key hints
func (m RootModel) renderFooter() string {
	return theme.Current.Styles.Footer.Render(m.help.View(m.keys))
}

// styleHelp applies the current theme to the key hints
func styleHelp(h help.Model) help.Model {
	s := theme.Current.Styles
	h.Styles.ShortKey = s.HelpKey
	h.Styles.ShortDesc = s.HelpDesc
	h.Styles.ShortSeparator = s.HelpSeparator
	h.Styles.FullKey = s.HelpKey
	h.Styles.FullDesc = s.HelpDesc
	h.Styles.FullSeparator = s.HelpSeparator
	h.Styles.Ellipsis = s.HelpSeparator
	return h
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	s := theme.Current.Styles

	titleStyle := s.Title
	sectionStyle := s.PanelTitle.Padding(0).MarginTop(1)
	keyStyle := s.HelpKey.Width(14)
	descStyle := s.HelpDesc

	var b strings.Builder
	b.WriteString(titleStyle.Render("Ajuda"))
	b.WriteString("\n")

	sections := []struct {
		title string
		keys  [][]string
	}{
		{"Quadro de notas", [][]string{
			{"h/l j/k", "Navegar entre colunas e notas"},
			{"a", "Nova nota (inativo com a categoria cheia)"},
			{"enter / clique", "Visualizar nota"},
			{"e c y d", "Editar, duplicar, copiar, excluir"},
			{".", "Menu de ações da nota"},
			{"space", "Pegar nota, h/l/j/k para escolher o destino, space para soltar"},
			{"arrastar", "Arraste uma nota com o mouse até outra categoria"},
			{"s / n", "Editar categoria / nova categoria"},
			{"ctrl+e", "Exportar notas em YAML"},
		}},
		{"Diálogos", [][]string{
			{"ctrl+s", "Salvar"},
			{"tab", "Próximo campo"},
			{"ctrl+d", "Excluir categoria"},
			{"esc", "Cancelar / fechar"},
		}},
		{"Conta", [][]string{
			{"e", "Editar perfil"},
			{"tab", "Trocar aba de configurações"},
			{"p o x", "Pagamento, sair, excluir conta"},
		}},
		{"Sistema", [][]string{
			{"1 / 2", "Notas / Conta"},
			{"b", "Notificações"},
			{"ctrl+x", "Fechar o aviso mais recente"},
			{"ctrl+t", "Trocar tema"},
			{"q / ctrl+c", "Sair"},
		}},
	}
	for _, section := range sections {
		b.WriteString(sectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, kv := range section.keys {
			b.WriteString(keyStyle.Render(kv[0]))
			b.WriteString(descStyle.Render(kv[1]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(descStyle.Render("Pressione ? ou esc para fechar"))
	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	next := theme.Next()
	theme.SetTheme(next)
	m.help = styleHelp(m.help)
	m.app.Notifier.Send(notify.Info("Tema", next.Name))
}
