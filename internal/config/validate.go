package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validAutoAdd = map[string]bool{
	"never": true, "always": true, "with_metadata": true, "with_episode_id": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		errs = append(errs, "log: rotation limits must not be negative")
	}

	for name, v := range map[string]string{
		"library.movies_auto_add":  c.Library.MoviesAutoAdd,
		"library.tvshows_auto_add": c.Library.TVShowsAutoAdd,
	} {
		if !validAutoAdd[strings.ToLower(strings.TrimSpace(v))] && v != "" {
			errs = append(errs, fmt.Sprintf("%s: must be one of never, always, with_metadata, with_episode_id; got %q", name, v))
		}
	}

	if c.Scan.Interval != 0 && c.Scan.Interval < time.Second {
		errs = append(errs, fmt.Sprintf("scan.interval: must be at least 1s, got %s", c.Scan.Interval))
	}
	if c.Scan.Workers < 0 || c.Scan.Workers > 64 {
		errs = append(errs, fmt.Sprintf("scan.workers: must be between 1 and 64, got %d", c.Scan.Workers))
	}
	if c.Scan.MatchThreshold < 0 || c.Scan.MatchThreshold > 1 {
		errs = append(errs, fmt.Sprintf("scan.match_threshold: must be between 0 and 1, got %g", c.Scan.MatchThreshold))
	}

	if c.Events.Retention < 0 {
		errs = append(errs, "events.retention: must not be negative")
	}

	if c.Metadata.Root != "" {
		if _, err := os.Stat(c.Metadata.Root); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("metadata.root: directory %q does not exist", c.Metadata.Root))
		}
	}

	return errs
}
