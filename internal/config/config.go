package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no tasklist data directory found (run 'tasklist init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Config is the contents of config.yml.
type Config struct {
	Version     int           `yaml:"version"`
	Storage     StorageConfig `yaml:"storage"`
	TUI         TUIConfig     `yaml:"tui"`
	ActivityLog *bool         `yaml:"activity_log,omitempty"`

	// dir is the absolute path to the data directory (not serialized).
	dir string `yaml:"-"`
}

// StorageConfig selects where the task list is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	// Path is relative to the data directory unless absolute. Empty means the
	// data directory itself for the file backend, tasklist.db for sqlite.
	Path string `yaml:"path,omitempty"`
	Key  string `yaml:"key"`
}

// TUIConfig holds TUI display settings.
type TUIConfig struct {
	DetailLines int  `yaml:"detail_lines"`
	Markdown    bool `yaml:"markdown"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:     CurrentVersion,
		Storage:     StorageConfig{Backend: DefaultBackend, Key: DefaultKey},
		TUI:         TUIConfig{DetailLines: DefaultDetailLines, Markdown: true},
		ActivityLog: boolPtr(true),
	}
}

// Dir returns the absolute path to the data directory.
func (c *Config) Dir() string { return c.dir }

// SetDir sets the data directory path on the config.
func (c *Config) SetDir(dir string) { c.dir = dir }

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// StoragePath resolves storage.path against the data directory.
func (c *Config) StoragePath() string {
	p := c.Storage.Path
	if p == "" {
		if c.Storage.Backend == "sqlite" {
			return filepath.Join(c.dir, DefaultSQLiteFile)
		}
		return c.dir
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// StorageKey returns the configured key, or DefaultKey when unset.
func (c *Config) StorageKey() string {
	if c.Storage.Key == "" {
		return DefaultKey
	}
	return c.Storage.Key
}

// ActivityLogEnabled reports whether dispatched actions are logged. The log
// is on unless explicitly disabled.
func (c *Config) ActivityLogEnabled() bool {
	return c.ActivityLog == nil || *c.ActivityLog
}

// SetActivityLog enables or disables the activity log.
func (c *Config) SetActivityLog(on bool) { c.ActivityLog = boolPtr(on) }

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if !slices.Contains(Backends, c.Storage.Backend) {
		return fmt.Errorf("%w: storage.backend must be one of %v, got %q", ErrInvalid, Backends, c.Storage.Backend)
	}
	if !validKey.MatchString(c.StorageKey()) {
		return fmt.Errorf("%w: storage.key %q may only contain letters, digits, '.', '_' and '-'", ErrInvalid, c.Storage.Key)
	}
	return c.validateTUI()
}

func (c *Config) validateTUI() error {
	const maxDetailLines = 3
	if c.TUI.DetailLines < 0 || c.TUI.DetailLines > maxDetailLines {
		return fmt.Errorf("%w: tui.detail_lines must be between 0 and %d", ErrInvalid, maxDetailLines)
	}
	return nil
}

// Init creates a data directory in dir with default settings.
func Init(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates the config in the given data directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(absDir, ConfigFileName)) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = absDir

	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindDir walks upward from startDir looking for a data directory containing
// config.yml. Returns the absolute path to the data directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the data directory itself.
		if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.DataDirNotFound, ErrNotFound.Error())
		}
		dir = parent
	}
}

// UserDir returns the per-user fallback data directory,
// e.g. ~/.config/tasklist.
func UserDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}
