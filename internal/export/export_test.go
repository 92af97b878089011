package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dori/quadro/internal/model"
	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	at := time.Date(2025, 5, 4, 13, 14, 15, 0, time.UTC)
	notes := []model.Note{{ID: "n1", Title: "A", Content: "linha 1\nlinha 2", CategoryID: "roteiros", CreatedAt: at}}

	path, err := Write(dir, NewSnapshot(at, model.DefaultCategories(), notes))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quadro-20250504-131415.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "background_color: '#2563eb10'") ||
		strings.Contains(string(data), `background_color: "#2563eb10"`))

	snap, err := readSnapshot(path)
	require.NoError(t, err)
	assert.Len(t, snap.Categories, 3)
	require.Len(t, snap.Notes, 1)
	assert.Equal(t, "linha 1\nlinha 2", snap.Notes[0].Content)
	assert.True(t, snap.ExportedAt.Equal(at))
}

func TestWriteLocked(t *testing.T) {
	dir := t.TempDir()
	held := flock.New(filepath.Join(dir, lockName))
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer held.Unlock()

	_, err = Write(dir, NewSnapshot(time.Now(), nil, nil))
	assert.ErrorIs(t, err, ErrLocked)
}

func TestWriteNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2025, 5, 4, 13, 14, 15, 0, time.UTC)

	first, err := Write(dir, NewSnapshot(at, nil, []model.Note{{ID: "a"}}))
	require.NoError(t, err)
	second, err := Write(dir, NewSnapshot(at, nil, []model.Note{{ID: "b"}}))
	require.NoError(t, err)
	third, err := Write(dir, NewSnapshot(at, nil, nil))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "quadro-20250504-131415.yaml"), first)
	assert.Equal(t, filepath.Join(dir, "quadro-20250504-131415-2.yaml"), second)
	assert.Equal(t, filepath.Join(dir, "quadro-20250504-131415-3.yaml"), third)

	snap, err := readSnapshot(first)
	require.NoError(t, err)
	require.Len(t, snap.Notes, 1)
	assert.Equal(t, "a", snap.Notes[0].ID)
}

func readSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	err = yaml.Unmarshal(data, &snap)
	return snap, err
}
