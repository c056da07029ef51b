package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig names the environment variable that overrides discovery.
const EnvConfig = "MEDIACAT_CONFIG"

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./config.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mediacat", "config.toml")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. MEDIACAT_CONFIG environment variable
//  2. ./config.toml (current directory)
//  3. $XDG_CONFIG_HOME/mediacat/config.toml
//  4. /etc/mediacat/config.toml
func Discover() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./config.toml",
		DefaultPath(),
		"/etc/mediacat/config.toml",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}
