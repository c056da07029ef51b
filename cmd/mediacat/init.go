package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediacat/internal/config"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and create the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if ctx.configFlag != nil && strings.TrimSpace(*ctx.configFlag) != "" {
				path = strings.TrimSpace(*ctx.configFlag)
			}

			if _, err := os.Stat(path); err == nil && !force {
				cmd.Printf("Config exists: %s (use --force to overwrite)\n", path)
			} else {
				if err := config.WriteDefault(path); err != nil {
					return fmt.Errorf("write config: %w", err)
				}
				cmd.Printf("Wrote config: %s\n", path)
			}

			*ctx.configFlag = path
			return ctx.withApp(cmd, func(a *app) error {
				cmd.Printf("Catalog ready: %s\n", a.store.Path())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
