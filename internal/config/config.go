// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Library  LibraryConfig  `toml:"library"`
	Metadata MetadataConfig `toml:"metadata"`
	Scan     ScanConfig     `toml:"scan"`
	Events   EventsConfig   `toml:"events"`
}

type DatabaseConfig struct {
	Path        string        `toml:"path"`
	LockTimeout time.Duration `toml:"lock_timeout"`
}

// LogConfig controls the slog handler. An empty File logs to stderr.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// LibraryConfig holds the auto-add policy per mediatype: never, always,
// with_metadata or with_episode_id.
type LibraryConfig struct {
	MoviesAutoAdd  string `toml:"movies_auto_add"`
	TVShowsAutoAdd string `toml:"tvshows_auto_add"`
}

// MetadataConfig locates .nfo files. An empty Root disables metadata checks.
type MetadataConfig struct {
	Root            string `toml:"root"`
	MovieTemplate   string `toml:"movie_template"`
	ShowTemplate    string `toml:"show_template"`
	EpisodeTemplate string `toml:"episode_template"`
}

type ScanConfig struct {
	Interval       time.Duration `toml:"interval"`
	Workers        int           `toml:"workers"`
	MatchThreshold float64       `toml:"match_threshold"`
}

type EventsConfig struct {
	Retention time.Duration `toml:"retention"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, substitutes and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads the configuration file and applies defaults
// but skips Validate.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath()
	}
	if c.Database.LockTimeout == 0 {
		c.Database.LockTimeout = 5 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 28
	}
	if c.Library.MoviesAutoAdd == "" {
		c.Library.MoviesAutoAdd = "never"
	}
	if c.Library.TVShowsAutoAdd == "" {
		c.Library.TVShowsAutoAdd = "never"
	}
	if c.Scan.Interval == 0 {
		c.Scan.Interval = 15 * time.Minute
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = 4
	}
	if c.Scan.MatchThreshold == 0 {
		c.Scan.MatchThreshold = 0.85
	}
	if c.Events.Retention == 0 {
		c.Events.Retention = 30 * 24 * time.Hour
	}
}

// DefaultDatabasePath returns the XDG data location of the catalog database.
func DefaultDatabasePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./data/managed.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mediacat", "managed.db")
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars expands environment references. Unresolved references
// are left in place and reported in missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+strings.TrimSpace(arg))
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return result, missing
}
