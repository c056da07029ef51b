package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediacat/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (defaults and environment applied)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			if ctx.json() {
				return printJSON(cmd.OutOrStdout(), cfg)
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}

	var force bool
	writeCmd := &cobra.Command{
		Use:   "write <path>",
		Short: "Save the effective configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			if _, err := os.Stat(args[0]); err == nil && !force {
				return fmt.Errorf("%s exists (use --force to overwrite)", args[0])
			}
			if err := cfg.Write(args[0]); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			cmd.Printf("Wrote config: %s\n", args[0])
			return nil
		},
	}
	writeCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	testCmd := &cobra.Command{
		Use:   "test",
		Short: "Validate the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.configPath()
			if err != nil {
				return err
			}
			if path == "" {
				cmd.Println("No config file found; defaults apply")
				return nil
			}
			if _, err := config.Load(path); err != nil {
				var cfgErr *config.ConfigError
				if errors.As(err, &cfgErr) {
					for _, m := range cfgErr.Missing {
						cmd.Printf("  missing: %s\n", m)
					}
					for _, e := range cfgErr.Errors {
						cmd.Printf("  invalid: %s\n", e)
					}
					return fmt.Errorf("configuration invalid: %s", path)
				}
				return err
			}
			cmd.Printf("Configuration valid: %s\n", path)
			return nil
		},
	}

	cmd.AddCommand(showCmd, writeCmd, testCmd)
	return cmd
}
