package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dori/quadro/internal/board"
	"github.com/dori/quadro/internal/config"
	"github.com/dori/quadro/internal/notify"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugLogName is the log file written inside the data directory when debug
// logging is on
const DebugLogName = "quadro-debug.log"

// App holds the application state and dependencies
type App struct {
	Board    *board.Board
	Notifier *notify.Notifier
	Toasts   *notify.Queue
	Desktop  *notify.Desktop
	Config   config.Config
	Logger   *zap.Logger
}

// NewLogger builds the application logger. The terminal belongs to the TUI,
// so logs only go to a file in the data directory, and only in debug mode.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	if !cfg.Debug {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	zc.OutputPaths = []string{filepath.Join(cfg.DataDir, DebugLogName)}
	zc.ErrorOutputPaths = []string{filepath.Join(cfg.DataDir, DebugLogName)}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// New creates a new application instance
func New(cfg config.Config) (*App, error) {
	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	ttl := cfg.ToastTTL()
	toasts := notify.NewQueue(notify.WithTTL(ttl, ttl*3/2))
	desktop := notify.NewDesktop(logger.Named("desktop"))
	desktop.SetEnabled(cfg.DesktopNotifications)
	notifier := notify.NewNotifier(toasts, desktop)

	app := &App{
		Notifier: notifier,
		Toasts:   toasts,
		Desktop:  desktop,
		Config:   cfg,
		Logger:   logger,
	}

	opts := []board.Option{
		board.WithNotifier(notifier),
		board.WithLogger(logger.Named("board")),
		board.WithNoteLimit(cfg.NoteLimit),
	}
	if len(cfg.Categories) > 0 {
		opts = append(opts, board.WithCategories(cfg.CategoryModels()))
	}
	app.Board = board.New(opts...)

	logger.Info("application started",
		zap.String("config", cfg.Path()),
		zap.String("theme", cfg.Theme),
		zap.Bool("desktop_notifications", cfg.DesktopNotifications))

	return app, nil
}

// Close cleans up application resources
func (a *App) Close() error {
	if a.Desktop != nil {
		a.Desktop.Wait()
	}
	// Sync fails on some file descriptors (e.g. /dev/stderr); nothing to do about it
	_ = a.Logger.Sync()
	return nil
}
