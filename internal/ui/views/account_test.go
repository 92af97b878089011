package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/quadro/internal/model"
	"github.com/dori/quadro/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(t *testing.T) (AccountView, *notify.Recorder) {
	t.Helper()

	rec := &notify.Recorder{}
	account := model.Account{
		Name:      "Ana Souza",
		Email:     "ana@example.com",
		Plan:      "Pro",
		ExpiresAt: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	usage := []model.UsageStat{
		{Label: "Notas", Used: 1234, Limit: 5000},
		{Label: "Armazenamento", Used: 2.5, Limit: 10, Unit: "GB"},
	}
	return NewAccountView(rec, account, usage).SetSize(testWidth, testHeight), rec
}

func sendAccount(v AccountView, msg tea.Msg) AccountView {
	m, _ := v.Update(msg)
	return m.(AccountView)
}

func TestAccountEditSavesProfile(t *testing.T) {
	v, rec := newTestAccount(t)

	v = sendAccount(v, keyMsg("e"))
	require.Equal(t, AccountModeEdit, v.Mode())
	assert.True(t, v.IsInputMode())
	require.Len(t, rec.All(), 1)
	assert.Equal(t, notify.Info("Modo de edição", "Você pode editar suas informações agora"), rec.All()[0])

	v = sendAccount(v, keyMsg(" Lima"))
	v = sendAccount(v, keyMsg("enter"))

	assert.Equal(t, AccountModeView, v.Mode())
	assert.Equal(t, "Ana Souza Lima", v.Account().Name)
	assert.Equal(t, "ana@example.com", v.Account().Email)
	require.Len(t, rec.All(), 2)
	assert.Equal(t, notify.KindSuccess, rec.All()[1].Kind)
	assert.Equal(t, "Alterações salvas", rec.All()[1].Title)
}

func TestAccountEditCancelKeepsProfile(t *testing.T) {
	v, _ := newTestAccount(t)

	v = sendAccount(v, keyMsg("e"))
	v = sendAccount(v, keyMsg("xyz"))
	v = sendAccount(v, keyMsg("esc"))

	assert.Equal(t, AccountModeView, v.Mode())
	assert.Equal(t, "Ana Souza", v.Account().Name)
}

func TestAccountSetProfileIgnoredWhileEditing(t *testing.T) {
	v, _ := newTestAccount(t)
	other := model.Account{Name: "Outra"}

	v = sendAccount(v, keyMsg("e"))
	v = v.SetProfile(other, nil)
	assert.Equal(t, "Ana Souza", v.Account().Name)

	v = sendAccount(v, keyMsg("esc"))
	v = v.SetProfile(other, nil)
	assert.Equal(t, "Outra", v.Account().Name)
}

func TestAccountReloadKeepsSavedProfile(t *testing.T) {
	v, _ := newTestAccount(t)
	configured := v.Account()

	v = sendAccount(v, keyMsg("e"))
	v = sendAccount(v, keyMsg(" Lima"))
	v = sendAccount(v, keyMsg("enter"))
	require.Equal(t, "Ana Souza Lima", v.Account().Name)

	usage := []model.UsageStat{{Label: "Notas", Used: 10, Limit: 20}}
	v = v.SetProfile(configured, usage)
	assert.Equal(t, "Ana Souza Lima", v.Account().Name)
	assert.Equal(t, usage, v.usage)

	changed := configured
	changed.Email = "ana@novo.com"
	v = v.SetProfile(changed, usage)
	assert.Equal(t, "ana@novo.com", v.Account().Email)
	assert.Equal(t, "Ana Souza", v.Account().Name)
}

func TestAccountReloadAppliesUsageWhileEditing(t *testing.T) {
	v, _ := newTestAccount(t)
	usage := []model.UsageStat{{Label: "Imagens", Used: 1, Limit: 2}}

	v = sendAccount(v, keyMsg("e"))
	v = v.SetProfile(model.Account{Name: "Outra"}, usage)

	assert.Equal(t, "Ana Souza", v.Account().Name)
	assert.Equal(t, usage, v.usage)
	assert.Contains(t, sendAccount(v, keyMsg("esc")).View(), "Imagens")
}

func TestAccountActionsToast(t *testing.T) {
	tests := []struct {
		key   string
		title string
	}{
		{"f", "Editar foto"},
		{"p", "Pagamento"},
		{"o", "Logout"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, rec := newTestAccount(t)
			v = sendAccount(v, keyMsg(tt.key))

			assert.Equal(t, AccountModeView, v.Mode())
			require.Len(t, rec.All(), 1)
			assert.Equal(t, notify.KindInfo, rec.All()[0].Kind)
			assert.Equal(t, tt.title, rec.All()[0].Title)
		})
	}
}

func TestAccountDeleteNeedsConfirmation(t *testing.T) {
	v, rec := newTestAccount(t)

	v = sendAccount(v, keyMsg("x"))
	require.Equal(t, AccountModeConfirmDelete, v.Mode())
	assert.Contains(t, v.View(), "Você tem certeza")
	v = sendAccount(v, keyMsg("n"))
	assert.Equal(t, AccountModeView, v.Mode())
	assert.Empty(t, rec.All())

	v = sendAccount(v, keyMsg("x"))
	v = sendAccount(v, keyMsg("y"))
	assert.Equal(t, AccountModeView, v.Mode())
	require.Len(t, rec.All(), 1)
	assert.Equal(t, notify.Error("Conta excluída", "Sua conta foi excluída permanentemente"), rec.All()[0])
}

func TestAccountSwitchesAndTabs(t *testing.T) {
	v, rec := newTestAccount(t)

	assert.False(t, v.Switch(itemEmailNotifications))
	v = sendAccount(v, keyMsg("enter"))
	assert.True(t, v.Switch(itemEmailNotifications))
	v = sendAccount(v, keyMsg("enter"))
	assert.False(t, v.Switch(itemEmailNotifications))

	v = sendAccount(v, keyMsg("tab"))
	assert.Equal(t, []accountItem{itemChangePassword, itemPayment, itemLogout, itemDelete}, v.items())
	sendAccount(v, keyMsg("enter"))
	require.Len(t, rec.All(), 1)
	assert.Equal(t, "Alterar senha", rec.All()[0].Title)
	assert.Equal(t, "shield", rec.All()[0].Icon)

	v = sendAccount(v, keyMsg("tab"))
	v = sendAccount(v, keyMsg("tab"))
	assert.Equal(t, TabGeneral, v.tab, "tabs wrap around")
}

func TestAccountViewShowsProfile(t *testing.T) {
	v, _ := newTestAccount(t)
	out := v.View()

	assert.Contains(t, out, "Minha Conta")
	assert.Contains(t, out, "Ana Souza")
	assert.Contains(t, out, "31/12/2025")
	assert.Contains(t, out, "1,234 / 5,000")
	assert.Contains(t, out, "2.5 GB / 10 GB")
}

func TestFormatUsage(t *testing.T) {
	tests := []struct {
		in   model.UsageStat
		want string
	}{
		{model.UsageStat{Used: 0, Limit: 100}, "0 / 100"},
		{model.UsageStat{Used: 1234567, Limit: 2000000}, "1,234,567 / 2,000,000"},
		{model.UsageStat{Used: 2.5, Limit: 10, Unit: "GB"}, "2.5 GB / 10 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatUsage(tt.in))
	}
}
