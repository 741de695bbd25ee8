// Package config loads the vault layout and reporting defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/spf13/viper"
)

// ErrMissingVault is returned when no vault path is configured.
var ErrMissingVault = errors.New("vault_path is not set")

const (
	envPrefix   = "TALLY"
	fileName    = "config.yaml"
	homeDirName = ".tally"
)

// Config describes where notes live and how reports are built. It is passed
// explicitly to the components that need it.
type Config struct {
	VaultPath      string `mapstructure:"vault_path" yaml:"vault_path"`
	DailyNotesPath string `mapstructure:"daily_notes_path" yaml:"daily_notes_path"`
	ProjectPath    string `mapstructure:"project_path" yaml:"project_path"`

	// Year and Week pin the reported sprint. Zero means the current ISO week.
	Year int `mapstructure:"year" yaml:"year,omitempty"`
	Week int `mapstructure:"week" yaml:"week,omitempty"`

	Workers  int    `mapstructure:"workers" yaml:"workers"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults and no vault.
func DefaultConfig() Config {
	return Config{
		DailyNotesPath: "daily",
		ProjectPath:    "projects",
		Workers:        4,
		LogLevel:       "warn",
	}
}

// Load reads configuration from path, or from the first config.yaml found in
// the working directory or ~/.tally when path is empty. TALLY_* environment
// variables override file values. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = discover()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.VaultPath = expandHome(cfg.VaultPath)
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("vault_path", cfg.VaultPath)
	v.SetDefault("daily_notes_path", cfg.DailyNotesPath)
	v.SetDefault("project_path", cfg.ProjectPath)
	v.SetDefault("year", cfg.Year)
	v.SetDefault("week", cfg.Week)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("log_level", cfg.LogLevel)
}

// discover returns ./config.yaml, then ~/.tally/config.yaml, whichever exists.
func discover() string {
	candidates := []string{fileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, homeDirName, fileName))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// GlobalConfigPath returns the path to the per-user config file.
func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, homeDirName, fileName)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks that the config can locate notes.
func (c Config) Validate() error {
	if strings.TrimSpace(c.VaultPath) == "" {
		return ErrMissingVault
	}
	if c.Week < 0 || c.Week > 53 {
		return fmt.Errorf("week must be between 1 and 53, got %d", c.Week)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// DailyNotesDir is where day-planner notes named YYYY-MM-DD.md live.
func (c Config) DailyNotesDir() string {
	return c.resolve(c.DailyNotesPath)
}

// ProjectDir is the root searched for task notes.
func (c Config) ProjectDir() string {
	return c.resolve(c.ProjectPath)
}

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.VaultPath, p)
}

// ActiveWeek returns the configured ISO year and week, falling back to the
// week containing today.
func (c Config) ActiveWeek(today domain.Date) (year, week int) {
	year, week = today.ISOWeek()
	if c.Week > 0 {
		week = c.Week
	}
	if c.Year > 0 {
		year = c.Year
	}
	return year, week
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
