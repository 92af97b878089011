// quadro is a terminal notes board with categories, drag and drop and a
// placeholder account page.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/quadro/internal/app"
	"github.com/dori/quadro/internal/config"
	"github.com/dori/quadro/internal/ui"
	"github.com/dori/quadro/internal/ui/theme"
	"github.com/dori/quadro/internal/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "0.1.0"

// options are the command line overrides applied on top of the config file
type options struct {
	configPath string
	envPath    string
	view       string
	theme      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "quadro",
		Short: "A notes board for the terminal",
		Long: `quadro organizes short notes into coloured categories.

Move notes between categories with the mouse or with space and h/j/k/l,
press ? inside the app for the full list of keys.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	root.Flags().StringVar(&opts.view, "view", "", "starting page (notes, account)")
	root.Flags().StringVar(&opts.theme, "theme", "", "theme name (nord, dracula, gruvbox, catppuccin)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.toml")
	root.PersistentFlags().StringVar(&opts.envPath, "env-file", ".env", "dotenv file loaded before the config")

	root.AddCommand(newVersionCmd(), newConfigCmd(&opts))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quadro v%s\n", version)
		},
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:      %s\n", cfg.Path())
			fmt.Fprintf(out, "theme:       %s\n", cfg.Theme)
			fmt.Fprintf(out, "start_view:  %s\n", cfg.StartView)
			fmt.Fprintf(out, "note_limit:  %d\n", cfg.NoteLimit)
			fmt.Fprintf(out, "toast:       %s\n", cfg.ToastTTL())
			fmt.Fprintf(out, "desktop:     %t\n", cfg.DesktopNotifications)
			fmt.Fprintf(out, "export_dir:  %s\n", cfg.ExportDir)
			fmt.Fprintf(out, "data_dir:    %s\n", cfg.DataDir)
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Default().WithPath(path).Save(); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	cmd.AddCommand(initCmd)
	return cmd
}

// loadConfig loads the dotenv file and the config file, then applies the
// command line overrides
func loadConfig(opts options) (config.Config, error) {
	if err := config.LoadDotEnv(opts.envPath); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	return applyFlags(cfg, opts)
}

func applyFlags(cfg config.Config, opts options) (config.Config, error) {
	if opts.view != "" {
		cfg.StartView = opts.view
	}
	if opts.theme != "" {
		if _, ok := theme.ByName(opts.theme); !ok {
			return config.Config{}, fmt.Errorf("unknown theme %q", opts.theme)
		}
		cfg.Theme = opts.theme
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runTUI(ctx context.Context, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer application.Close()

	model := ui.NewRootModel(application)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go startWatcher(ctx, application.Logger, cfg.Path(), opts, p)

	_, err = p.Run()
	return err
}

// startWatcher reloads the config file whenever it changes on disk and hands
// the result to the running program
func startWatcher(ctx context.Context, logger *zap.Logger, path string, opts options, p *tea.Program) {
	w, err := watcher.New(path, func() {
		cfg, err := config.Load(path)
		if err == nil {
			cfg, err = applyFlags(cfg, opts)
		}
		p.Send(ui.ConfigReloadedMsg{Config: cfg, Err: err})
	})
	if err != nil {
		// non-fatal: the app works without live reload
		logger.Debug("config watcher disabled", zap.Error(err))
		return
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		logger.Warn("config watcher", zap.Error(err))
	})
}
