package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dori/quadro/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "quadro v"+version+"\n", out)
}

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadro", "config.toml")

	out, err := execute(t, "config", "init", "--config", path, "--env-file", "")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Theme, cfg.Theme)

	_, err = execute(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")
}

func TestConfigShowsFileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = \"dracula\"\nnote_limit = 7\n"), 0o644))

	out, err := execute(t, "config", "--config", path, "--env-file", filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Contains(t, out, "theme:       dracula")
	assert.Contains(t, out, "note_limit:  7")
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()

	got, err := applyFlags(cfg, options{view: config.ViewAccount, theme: "gruvbox"})
	require.NoError(t, err)
	assert.Equal(t, config.ViewAccount, got.StartView)
	assert.Equal(t, "gruvbox", got.Theme)

	_, err = applyFlags(cfg, options{theme: "solarized"})
	assert.ErrorContains(t, err, "unknown theme")

	_, err = applyFlags(cfg, options{view: "calendar"})
	assert.ErrorContains(t, err, "invalid start_view")
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := execute(t, "extra")
	assert.Error(t, err)
}
