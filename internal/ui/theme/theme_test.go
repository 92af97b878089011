package theme

import (
	"testing"

	"github.com/dori/quadro/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, want := range []string{"nord", "dracula", "gruvbox", "catppuccin"} {
		th, ok := ByName(want)
		require.True(t, ok, want)
		assert.Equal(t, want, th.Name)
		assert.NotEmpty(t, th.DropTarget)
		assert.NotEmpty(t, th.Ghost)
	}
	_, ok := ByName("solarized")
	assert.False(t, ok)
}

func TestNextCycles(t *testing.T) {
	orig := Current.Theme
	t.Cleanup(func() { SetTheme(orig) })

	SetTheme(Nord)
	seen := []string{Current.Theme.Name}
	for range Available() {
		SetTheme(Next())
		seen = append(seen, Current.Theme.Name)
	}
	assert.Equal(t, []string{"nord", "dracula", "gruvbox", "catppuccin", "nord"}, seen)
}

func TestToastStyle(t *testing.T) {
	s := NewStyles(Dracula)
	assert.Equal(t, s.ToastError.GetForeground(), s.ToastStyle(notify.KindError).GetForeground())
	assert.Equal(t, s.ToastSuccess.GetForeground(), s.ToastStyle(notify.KindSuccess).GetForeground())
	assert.Equal(t, s.ToastInfo.GetForeground(), s.ToastStyle(notify.KindInfo).GetForeground())
}
