package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newDetachedWatcher returns a watcher whose channels are driven by the test
// instead of a live fsnotify goroutine.
func newDetachedWatcher(t *testing.T, cb func()) (*Watcher, chan fsnotify.Event, chan error) {
	t.Helper()
	fsw, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	_ = fsw.Close()

	events := make(chan fsnotify.Event)
	errs := make(chan error, 1)
	fsw.Events = events
	fsw.Errors = errs

	return &Watcher{fsw: fsw, name: "config.toml", callback: cb, debounce: 10 * time.Millisecond}, events, errs
}

func TestRunDebouncesBursts(t *testing.T) {
	var calls atomic.Int32
	w, events, _ := newDetachedWatcher(t, func() { calls.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx, nil)
		close(done)
	}()

	for i := 0; i < 5; i++ {
		events <- fsnotify.Event{Name: "/tmp/x/config.toml", Op: fsnotify.Write}
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	<-done
}

func TestRunIgnoresOtherFiles(t *testing.T) {
	var calls atomic.Int32
	w, events, _ := newDetachedWatcher(t, func() { calls.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx, nil)
		close(done)
	}()

	events <- fsnotify.Event{Name: "/tmp/x/other.toml", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "/tmp/x/config.toml", Op: fsnotify.Chmod}
	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, calls.Load())

	cancel()
	<-done
}

func TestRunReportsErrors(t *testing.T) {
	w, _, errs := newDetachedWatcher(t, func() {})

	got := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx, func(err error) { got <- err })
		close(done)
	}()

	errs <- errors.New("boom")
	select {
	case err := <-got:
		assert.EqualError(t, err, "boom")
	case <-time.After(time.Second):
		t.Fatal("error callback not invoked")
	}

	cancel()
	<-done
}

func TestRunExitsWhenEventsClose(t *testing.T) {
	w, events, _ := newDetachedWatcher(t, func() {})

	done := make(chan struct{})
	go func() {
		w.Run(context.Background(), nil)
		close(done)
	}()
	close(events)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Events closed")
	}
}

func TestWatchesRealFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`theme = "nord"`), 0o644))

	changed := make(chan struct{}, 4)
	w, err := New(path, func() { changed <- struct{}{} })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx, nil)
		close(done)
	}()

	require.NoError(t, os.WriteFile(path, []byte(`theme = "dracula"`), 0o644))
	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change observed")
	}

	cancel()
	<-done
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "config.toml"), func() {})
	assert.Error(t, err)
}
