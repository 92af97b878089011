package notify

import (
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Urgency levels for desktop notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Desktop sends notifications through notify-send. Each notification is
// delivered on its own goroutine so the UI never blocks on the helper.
// A new Desktop is disabled.
type Desktop struct {
	appName string
	logger  *zap.Logger
	run     func(name string, args ...string) error
	enabled atomic.Bool
	wg      sync.WaitGroup
}

// NewDesktop creates a desktop sender
func NewDesktop(logger *zap.Logger) *Desktop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Desktop{
		appName: "quadro",
		logger:  logger,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// SetEnabled turns desktop delivery on or off
func (d *Desktop) SetEnabled(enabled bool) {
	d.enabled.Store(enabled)
}

// IsEnabled reports whether notifications reach the desktop
func (d *Desktop) IsEnabled() bool {
	return d.enabled.Load()
}

// Send delivers the notification asynchronously
func (d *Desktop) Send(n Notification) {
	if !d.enabled.Load() {
		return
	}
	args := d.args(n)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.run("notify-send", args...); err != nil {
			d.logger.Debug("desktop notification failed",
				zap.String("title", n.Title),
				zap.Error(err))
		}
	}()
}

// Wait blocks until every pending notification has been handed to notify-send
func (d *Desktop) Wait() {
	d.wg.Wait()
}

func urgencyFor(kind Kind) Urgency {
	switch kind {
	case KindError:
		return UrgencyCritical
	case KindSuccess:
		return UrgencyNormal
	default:
		return UrgencyLow
	}
}

func timeoutFor(kind Kind) time.Duration {
	if kind == KindError {
		return DefaultErrorTTL
	}
	return DefaultTTL
}

// args builds the notify-send command line
func (d *Desktop) args(n Notification) []string {
	args := []string{}

	switch urgencyFor(n.Kind) {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// Timeout in milliseconds
	args = append(args, "-t", strconv.Itoa(int(timeoutFor(n.Kind).Milliseconds())))

	if n.Icon != "" {
		args = append(args, "-i", n.Icon)
	}

	args = append(args, "-a", d.appName)

	args = append(args, n.Title)
	if n.Description != "" {
		args = append(args, n.Description)
	}
	return args
}
