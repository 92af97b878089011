package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/quadro/internal/model"
	"github.com/dori/quadro/internal/notify"
	"github.com/dori/quadro/internal/ui/theme"
)

// AccountMode represents the current input mode of the account page
type AccountMode int

const (
	AccountModeView AccountMode = iota
	AccountModeEdit
	AccountModeConfirmDelete
)

// SettingsTab is a tab of the settings card
type SettingsTab int

const (
	TabGeneral SettingsTab = iota
	TabSecurity
	TabNotifications
	tabCount
)

func (t SettingsTab) String() string {
	switch t {
	case TabGeneral:
		return "Geral"
	case TabSecurity:
		return "Segurança"
	case TabNotifications:
		return "Notificações"
	default:
		return "?"
	}
}

// accountItem is a selectable row of the settings and actions cards
type accountItem int

const (
	itemEmailNotifications accountItem = iota
	itemTwoFactor
	itemChangePassword
	itemPush
	itemPayment
	itemLogout
	itemDelete
)

// AccountView is the account page. It is a local shell: nothing it does
// leaves the process.
type AccountView struct {
	notifier notify.Sender
	account  model.Account
	usage    []model.UsageStat
	width    int
	height   int

	// configured is the last profile handed in from configuration
	configured model.Account

	mode  AccountMode
	name  textinput.Model
	email textinput.Model
	focus int

	tab      SettingsTab
	cursor   int
	switches map[accountItem]bool

	bar progress.Model
}

// NewAccountView creates the account page for the given profile
func NewAccountView(n notify.Sender, account model.Account, usage []model.UsageStat) AccountView {
	if n == nil {
		n = notify.Discard
	}
	name := textinput.New()
	name.Prompt = ""
	name.CharLimit = 0
	email := textinput.New()
	email.Prompt = ""
	email.CharLimit = 0

	return AccountView{
		notifier:   n,
		account:    account,
		configured: account,
		usage:      usage,
		name:     name,
		email:    email,
		switches: make(map[accountItem]bool),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Init initializes the account view
func (v AccountView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v AccountView) SetSize(width, height int) AccountView {
	v.width = width
	v.height = height
	w := v.cardWidth() - 6
	if w < 10 {
		w = 10
	}
	v.bar.Width = w
	v.name.Width = w
	v.email.Width = w
	return v
}

// SetProfile applies a profile and usage coming from configuration. Usage is
// always replaced. The profile only replaces what is on screen when it differs
// from the previously configured one and the user is not editing, so changes
// saved on the page survive unrelated reloads.
func (v AccountView) SetProfile(account model.Account, usage []model.UsageStat) AccountView {
	v.usage = usage
	if v.mode == AccountModeEdit || sameProfile(account, v.configured) {
		return v
	}
	v.configured = account
	v.account = account
	return v
}

func sameProfile(a, b model.Account) bool {
	return a.Name == b.Name &&
		a.Email == b.Email &&
		a.Plan == b.Plan &&
		a.ExpiresAt.Equal(b.ExpiresAt)
}

// Account returns the current profile
func (v AccountView) Account() model.Account {
	return v.account
}

// Mode returns the current input mode
func (v AccountView) Mode() AccountMode {
	return v.mode
}

// Switch reports whether a settings switch is on
func (v AccountView) Switch(item accountItem) bool {
	return v.switches[item]
}

// items returns the selectable rows for the current tab followed by the
// account actions
func (v AccountView) items() []accountItem {
	var items []accountItem
	switch v.tab {
	case TabGeneral:
		items = append(items, itemEmailNotifications, itemTwoFactor)
	case TabSecurity:
		items = append(items, itemChangePassword)
	case TabNotifications:
		items = append(items, itemPush)
	}
	return append(items, itemPayment, itemLogout, itemDelete)
}

// Update handles messages
func (v AccountView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if v.mode == AccountModeEdit {
			return v.updateInputs(msg)
		}
		return v, nil
	}

	switch v.mode {
	case AccountModeEdit:
		return v.handleEditMode(key)
	case AccountModeConfirmDelete:
		return v.handleConfirmDeleteMode(key)
	default:
		return v.handleViewMode(key)
	}
}

func (v AccountView) handleViewMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e":
		v.mode = AccountModeEdit
		v.name.SetValue(v.account.Name)
		v.name.CursorEnd()
		v.email.SetValue(v.account.Email)
		v.email.CursorEnd()
		v.focus = 0
		v.email.Blur()
		v.notifier.Send(notify.Info("Modo de edição", "Você pode editar suas informações agora"))
		return v, v.name.Focus()

	case "f":
		v.notifier.Send(notify.Info("Editar foto", "Funcionalidade em desenvolvimento"))
		return v, nil

	case "tab", "l", "right":
		v.tab = (v.tab + 1) % tabCount
		v.cursor = 0
		return v, nil

	case "shift+tab", "h", "left":
		v.tab = (v.tab + tabCount - 1) % tabCount
		v.cursor = 0
		return v, nil

	case "j", "down":
		if v.cursor < len(v.items())-1 {
			v.cursor++
		}
		return v, nil

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case "enter", " ":
		return v.activate(v.items()[v.cursor])

	case "p":
		return v.activate(itemPayment)
	case "o":
		return v.activate(itemLogout)
	case "x":
		return v.activate(itemDelete)
	}
	return v, nil
}

// activate runs the action of a settings or account row
func (v AccountView) activate(item accountItem) (tea.Model, tea.Cmd) {
	switch item {
	case itemEmailNotifications, itemTwoFactor, itemPush:
		v.switches[item] = !v.switches[item]
	case itemChangePassword:
		v.notifier.Send(notify.Info("Alterar senha", "Um email foi enviado com instruções").WithIcon("shield"))
	case itemPayment:
		v.notifier.Send(notify.Info("Pagamento", "Redirecionando para a página de pagamento").WithIcon("wallet"))
	case itemLogout:
		v.notifier.Send(notify.Info("Logout", "Você será desconectado em instantes").WithIcon("log-out"))
	case itemDelete:
		v.mode = AccountModeConfirmDelete
	}
	return v, nil
}

func (v AccountView) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s", "enter":
		v.account.Name = strings.TrimSpace(v.name.Value())
		v.account.Email = strings.TrimSpace(v.email.Value())
		v.mode = AccountModeView
		v.name.Blur()
		v.email.Blur()
		v.notifier.Send(notify.Success("Alterações salvas", "Suas informações foram atualizadas com sucesso"))
		return v, nil
	case "esc":
		v.mode = AccountModeView
		v.name.Blur()
		v.email.Blur()
		return v, nil
	case "tab", "shift+tab", "up", "down":
		v.focus = 1 - v.focus
		if v.focus == 0 {
			v.email.Blur()
			return v, v.name.Focus()
		}
		v.name.Blur()
		return v, v.email.Focus()
	}
	return v.updateInputs(msg)
}

func (v AccountView) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if v.focus == 0 {
		v.name, cmd = v.name.Update(msg)
	} else {
		v.email, cmd = v.email.Update(msg)
	}
	return v, cmd
}

func (v AccountView) handleConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		v.mode = AccountModeView
		v.notifier.Send(notify.Error("Conta excluída", "Sua conta foi excluída permanentemente"))
	case "n", "N", "esc":
		v.mode = AccountModeView
	}
	return v, nil
}

func (v AccountView) cardWidth() int {
	w := v.width / 2
	if w < 40 {
		w = v.width
	}
	if w > 70 {
		w = 70
	}
	return w
}

// formatAmount renders a usage number, grouping thousands with commas
func formatAmount(f float64) string {
	if f != float64(int64(f)) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	digits := strconv.FormatInt(int64(f), 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatUsage(u model.UsageStat) string {
	if u.Unit != "" {
		return fmt.Sprintf("%s %s / %s %s", formatAmount(u.Used), u.Unit, formatAmount(u.Limit), u.Unit)
	}
	return fmt.Sprintf("%s / %s", formatAmount(u.Used), formatAmount(u.Limit))
}

// View renders the account page
func (v AccountView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}
	t := theme.Current.Theme
	s := theme.Current.Styles
	w := v.cardWidth()
	inner := w - 6

	// Profile card
	var profile []string
	profile = append(profile, s.PanelTitle.Render("Informações do Usuário"))
	if v.mode == AccountModeEdit {
		nameBox, emailBox := s.Input, s.Input
		if v.focus == 0 {
			nameBox = s.InputFocused
		} else {
			emailBox = s.InputFocused
		}
		profile = append(profile,
			nameBox.Width(inner).Render(v.name.View()),
			emailBox.Width(inner).Render(v.email.View()),
		)
	} else {
		profile = append(profile,
			s.CardTitle.Render(v.account.Name),
			s.Label.Render(v.account.Email),
		)
	}
	expires := "-"
	if !v.account.ExpiresAt.IsZero() {
		expires = v.account.ExpiresAt.Format("02/01/2006")
	}
	plan := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(inner/2).Render(s.Label.Render("Plano Atual")+"\n"+
			lipgloss.NewStyle().Foreground(t.Warning).Render("♛ ")+s.CardTitle.Render(v.account.Plan)),
		s.Label.Render("Expira em")+"\n"+s.CardTitle.Render(expires),
	)
	profile = append(profile, "", plan)

	// Usage card
	usage := []string{s.PanelTitle.Render("Estatísticas de Uso")}
	for _, u := range v.usage {
		label := s.Value.Render(u.Label)
		amount := s.Label.Render(formatUsage(u))
		gap := inner - lipgloss.Width(label) - lipgloss.Width(amount)
		if gap < 1 {
			gap = 1
		}
		usage = append(usage, label+strings.Repeat(" ", gap)+amount, v.bar.ViewAs(u.Percent()))
	}

	// Settings card
	var tabs []string
	for i := SettingsTab(0); i < tabCount; i++ {
		if i == v.tab {
			tabs = append(tabs, s.TabActive.Render(i.String()))
			continue
		}
		tabs = append(tabs, s.Tab.Render(i.String()))
	}
	settings := []string{s.PanelTitle.Render("Configurações"), lipgloss.JoinHorizontal(lipgloss.Top, tabs...), ""}
	actions := []string{s.PanelTitle.Render("Ações da Conta")}
	for i, item := range v.items() {
		row := v.renderItem(item, i == v.cursor && v.mode == AccountModeView, inner)
		if item >= itemPayment {
			actions = append(actions, row)
		} else {
			settings = append(settings, row)
		}
	}

	card := s.Panel.Width(w)
	left := lipgloss.JoinVertical(lipgloss.Left,
		card.Render(strings.Join(profile, "\n")),
		card.Render(strings.Join(usage, "\n")),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		card.Render(strings.Join(settings, "\n")),
		card.Render(strings.Join(actions, "\n")),
	)

	var body string
	if v.width >= 2*w+2 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}

	header := s.Title.Render("Minha Conta")
	hints := "e: editar • f: foto • tab: aba • j/k: navegar • enter: alternar/executar • p: pagamento • o: sair • x: excluir conta"
	if v.mode == AccountModeEdit {
		hints = "tab: campo • enter/ctrl+s: Salvar • esc: cancelar"
	}
	footer := lipgloss.NewStyle().Foreground(t.Subtle).Render(truncate(hints, v.width))

	out := lipgloss.JoinVertical(lipgloss.Left, header, body)
	out = lipgloss.NewStyle().MaxHeight(v.height - 1).Render(out)
	out = lipgloss.PlaceVertical(v.height-1, lipgloss.Top, out) + "\n" + footer

	if v.mode == AccountModeConfirmDelete {
		confirm := s.Dialog.BorderForeground(t.Error).Render(strings.Join([]string{
			s.ToastError.Render("Você tem certeza que deseja excluir sua conta?"),
			s.Label.Render("Esta ação não pode ser desfeita. Isso excluirá permanentemente"),
			s.Label.Render("sua conta e removerá seus dados de nossos servidores."),
			"",
			s.MenuDanger.Render("y: Sim, excluir minha conta") + "   " + s.Label.Render("n: Cancelar"),
		}, "\n"))
		out = placeCenter(confirm, out, v.width, v.height)
	}
	return out
}

func (v AccountView) renderItem(item accountItem, selected bool, width int) string {
	s := theme.Current.Styles

	var title, desc string
	switchable := false
	switch item {
	case itemEmailNotifications:
		title, desc, switchable = "Notificações por Email", "Receba atualizações sobre sua conta", true
	case itemTwoFactor:
		title, desc, switchable = "Autenticação em Duas Etapas", "Adicione uma camada extra de segurança", true
	case itemPush:
		title, desc, switchable = "Notificações Push", "Receba notificações em tempo real", true
	case itemChangePassword:
		title = "Alterar Senha"
	case itemPayment:
		title = "Gerenciar Pagamento"
	case itemLogout:
		title = "Sair"
	case itemDelete:
		title = "Excluir Conta"
	}

	label := title
	if switchable {
		state := "[ ]"
		if v.switches[item] {
			state = "[x]"
		}
		label = state + " " + title
	}
	style := s.MenuItem
	if item == itemDelete {
		style = s.MenuDanger
	}
	if selected {
		style = s.MenuSelected
	}
	row := style.Render(truncate(label, width))
	if desc != "" {
		row += "\n    " + s.Label.Render(truncate(desc, width-4))
	}
	return row
}

// IsInputMode returns whether the view is capturing keys
func (v AccountView) IsInputMode() bool {
	return v.mode != AccountModeView
}
