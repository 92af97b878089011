// Package export writes one-way YAML snapshots of the board. Snapshots are
// never read back by quadro.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dori/quadro/internal/model"
	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

const lockName = ".quadro-export.lock"

// ErrLocked is returned when another export into the same directory is running
var ErrLocked = errors.New("another export is in progress")

// Snapshot is the exported document
type Snapshot struct {
	ExportedAt time.Time        `yaml:"exported_at"`
	Categories []model.Category `yaml:"categories"`
	Notes      []model.Note     `yaml:"notes"`
}

// NewSnapshot builds a snapshot taken at the given time
func NewSnapshot(at time.Time, categories []model.Category, notes []model.Note) Snapshot {
	return Snapshot{
		ExportedAt: at,
		Categories: categories,
		Notes:      notes,
	}
}

// maxSameSecond bounds the suffixed names tried for one snapshot time
const maxSameSecond = 100

// FileName returns the export file name for a snapshot time. Exports taken in
// the same second get a counter suffix starting at 2.
func FileName(at time.Time, n int) string {
	stamp := at.Format("20060102-150405")
	if n < 2 {
		return fmt.Sprintf("quadro-%s.yaml", stamp)
	}
	return fmt.Sprintf("quadro-%s-%d.yaml", stamp, n)
}

// Write encodes the snapshot into a new file in dir and returns its path.
// Existing exports are never overwritten. The directory is locked for the
// duration of the write.
func Write(dir string, snap Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockName))
	locked, err := lock.TryLock()
	if err != nil {
		return "", fmt.Errorf("failed to acquire export lock: %w", err)
	}
	if !locked {
		return "", ErrLocked
	}
	defer lock.Unlock()

	f, path, err := create(dir, snap.ExportedAt)
	if err != nil {
		return "", err
	}

	if err := encode(f, snap); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// create opens the first free export file name for the given time
func create(dir string, at time.Time) (*os.File, string, error) {
	for n := 1; n <= maxSameSecond; n++ {
		path := filepath.Join(dir, FileName(at, n))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to create export file: %w", err)
		}
		return f, path, nil
	}
	return nil, "", fmt.Errorf("failed to create export file: too many exports at %s", at.Format(time.DateTime))
}

func encode(w io.Writer, snap Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}
