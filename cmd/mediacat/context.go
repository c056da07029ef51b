package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediacat/internal/config"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) json() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// configPath returns the explicit --config value or the discovered file.
// An empty path with a nil error means no config file exists.
func (c *commandContext) configPath() (string, error) {
	if c.configFlag != nil {
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			return path, nil
		}
	}
	path, err := config.Discover()
	if errors.Is(err, config.ErrNotFound) {
		return "", nil
	}
	return path, err
}

func (c *commandContext) loadConfig() (*config.Config, error) {
	path, err := c.configPath()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// withApp opens the catalog for the duration of fn.
func (c *commandContext) withApp(cmd *cobra.Command, fn func(*app) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}
