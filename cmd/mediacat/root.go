package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag string
	var jsonFlag bool

	ctx := newCommandContext(&configFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:   "mediacat",
		Short: "Catalog of staged and managed movies and TV episodes",
		Long: `mediacat - content catalog for a media library

Items found in synced directories are staged, then managed once they
are added to the host library. Blocked titles are never staged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("mediacat {{.Version}}\n")

	rootCmd.AddCommand(newInitCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newStageCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newShowsCommand(ctx))
	rootCmd.AddCommand(newSeasonsCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newRenameCommand(ctx))
	rootCmd.AddCommand(newManageCommand(ctx))
	rootCmd.AddCommand(newUnstageCommand(ctx))
	rootCmd.AddCommand(newManageAllCommand(ctx))
	rootCmd.AddCommand(newUnstageAllCommand(ctx))
	rootCmd.AddCommand(newRemoveCommand(ctx))
	rootCmd.AddCommand(newBlockedCommand(ctx))
	rootCmd.AddCommand(newSyncedCommand(ctx))
	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newEventsCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("mediacat %s\n", version)
		},
	}
}
