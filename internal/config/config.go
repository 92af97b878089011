package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dori/quadro/internal/model"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Start pages accepted by start_view
const (
	ViewNotes   = "notes"
	ViewAccount = "account"
)

const defaultTheme = "nord"

// Config holds application configuration
type Config struct {
	Theme                string        `toml:"theme"`
	StartView            string        `toml:"start_view"`
	NoteLimit            int           `toml:"note_limit"`
	DesktopNotifications bool          `toml:"desktop_notifications"`
	DataDir              string        `toml:"data_dir"`
	ExportDir            string        `toml:"export_dir"`
	Debug                bool          `toml:"debug"`
	ToastSeconds         int           `toml:"toast_seconds"`
	Account              AccountConfig `toml:"account"`
	Usage                []UsageConfig `toml:"usage"`

	// Categories replaces the seeded board columns when set
	Categories []CategoryConfig `toml:"categories,omitempty"`

	path string
}

// AccountConfig is the placeholder profile shown on the account page
type AccountConfig struct {
	Name      string `toml:"name"`
	Email     string `toml:"email"`
	Plan      string `toml:"plan"`
	ExpiresAt string `toml:"expires_at"` // YYYY-MM-DD
}

// UsageConfig is one static usage bar
type UsageConfig struct {
	Label string  `toml:"label"`
	Used  float64 `toml:"used"`
	Limit float64 `toml:"limit"`
	Unit  string  `toml:"unit"`
}

// CategoryConfig is one seeded board column
type CategoryConfig struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Color string `toml:"color"`
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quadro"
	}
	return filepath.Join(home, ".local", "share", "quadro")
}

// DefaultPath returns the default config file path
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".quadro", "config.toml")
	}
	return filepath.Join(dir, "quadro", "config.toml")
}

// Default returns the built-in configuration
func Default() Config {
	dataDir := DefaultDataDir()
	account := model.DefaultAccount()

	var usage []UsageConfig
	for _, u := range model.DefaultUsage() {
		usage = append(usage, UsageConfig{Label: u.Label, Used: u.Used, Limit: u.Limit, Unit: u.Unit})
	}

	return Config{
		Theme:     defaultTheme,
		StartView: ViewNotes,
		NoteLimit:    5,
		ToastSeconds: 4,
		DataDir:   dataDir,
		ExportDir: filepath.Join(dataDir, "exports"),
		Account: AccountConfig{
			Name:      account.Name,
			Email:     account.Email,
			Plan:      account.Plan,
			ExpiresAt: account.ExpiresAt.Format(time.DateOnly),
		},
		Usage: usage,
	}
}

// LoadDotEnv loads KEY=VALUE pairs from the given .env file into the process
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads the config file at path on top of the defaults and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("reading config: %w", err)
	default:
		defaults := cfg.Usage
		cfg.Usage = nil
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		if cfg.Usage == nil {
			cfg.Usage = defaults
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv applies QUADRO_* environment overrides
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("QUADRO_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("QUADRO_VIEW")); v != "" {
		c.StartView = v
	}
	if v := strings.TrimSpace(os.Getenv("QUADRO_EXPORT_DIR")); v != "" {
		c.ExportDir = v
	}
	if v := strings.TrimSpace(os.Getenv("QUADRO_DEBUG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	switch c.StartView {
	case ViewNotes, ViewAccount:
	default:
		return fmt.Errorf("invalid start_view %q: must be %q or %q", c.StartView, ViewNotes, ViewAccount)
	}
	if c.NoteLimit < 1 {
		return fmt.Errorf("invalid note_limit %d: must be at least 1", c.NoteLimit)
	}
	if c.ToastSeconds < 1 {
		return fmt.Errorf("invalid toast_seconds %d: must be at least 1", c.ToastSeconds)
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if strings.TrimSpace(cat.ID) == "" || strings.TrimSpace(cat.Name) == "" {
			return errors.New("invalid category: id and name are required")
		}
		if seen[cat.ID] {
			return fmt.Errorf("duplicate category id %q", cat.ID)
		}
		seen[cat.ID] = true
	}
	if c.Account.ExpiresAt != "" {
		if _, err := time.Parse(time.DateOnly, c.Account.ExpiresAt); err != nil {
			return fmt.Errorf("invalid account.expires_at %q: %w", c.Account.ExpiresAt, err)
		}
	}
	for _, u := range c.Usage {
		if u.Limit < 0 || u.Used < 0 {
			return fmt.Errorf("invalid usage %q: values must not be negative", u.Label)
		}
	}
	return nil
}

// Path returns the file the config was loaded from
func (c Config) Path() string {
	return c.path
}

// Save writes the config to its path
func (c Config) Save() error {
	if c.path == "" {
		return errors.New("config has no path")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(c.path, data, 0o644)
}

// WithPath returns the config bound to another file
func (c Config) WithPath(path string) Config {
	c.path = path
	return c
}

// AccountModel converts the account section to the model type
func (c Config) AccountModel() model.Account {
	a := model.Account{
		Name:  c.Account.Name,
		Email: c.Account.Email,
		Plan:  c.Account.Plan,
	}
	if t, err := time.Parse(time.DateOnly, c.Account.ExpiresAt); err == nil {
		a.ExpiresAt = t
	}
	return a
}

// UsageModels converts the usage section to model types
func (c Config) UsageModels() []model.UsageStat {
	stats := make([]model.UsageStat, 0, len(c.Usage))
	for _, u := range c.Usage {
		stats = append(stats, model.UsageStat{Label: u.Label, Used: u.Used, Limit: u.Limit, Unit: u.Unit})
	}
	return stats
}

// ToastTTL returns how long info and success toasts stay up
func (c Config) ToastTTL() time.Duration {
	return time.Duration(c.ToastSeconds) * time.Second
}

// CategoryModels converts the categories section to model types. Missing
// colours fall back to the default category colour.
func (c Config) CategoryModels() []model.Category {
	categories := make([]model.Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		color := cat.Color
		if color == "" {
			color = model.DefaultCategoryColor
		}
		categories = append(categories, model.Category{ID: cat.ID, Name: cat.Name, Color: color})
	}
	return categories
}
