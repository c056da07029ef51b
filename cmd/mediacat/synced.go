package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

func newSyncedCommand(ctx *commandContext) *cobra.Command {
	syncedCmd := &cobra.Command{
		Use:   "synced",
		Short: "Manage synced source directories",
	}

	var label, syncedType string
	addCmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Sync a directory",
		Long: `Sync a directory. Types: movies (a folder of movies), movie,
tvshows (a folder of show folders) or tvshow (one show, named by --label).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if label == "" {
				label = filepath.Base(path)
			}
			return ctx.withApp(cmd, func(a *app) error {
				if err := a.catalog.AddSynced(cmd.Context(), path, label, syncedType); err != nil {
					return err
				}
				cmd.Printf("Synced %s (%s): %s\n", label, syncedType, path)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&label, "label", "", "Display label (default: directory name)")
	addCmd.Flags().StringVarP(&syncedType, "type", "t", "movies", "Content type: movies, movie, tvshows or tvshow")

	removeCmd := &cobra.Command{
		Use:   "remove <path>",
		Short: "Stop syncing a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(a *app) error {
				if err := a.catalog.RemoveSynced(cmd.Context(), path); err != nil {
					return err
				}
				cmd.Printf("Removed synced directory: %s\n", path)
				return nil
			})
		},
	}

	var listType string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List synced directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				dirs, err := a.catalog.GetSyncedDirectories(cmd.Context(), listType)
				if err != nil {
					return err
				}
				if ctx.json() {
					type view struct {
						Directory string `json:"directory"`
						Label     string `json:"label"`
						Type      string `json:"type"`
					}
					views := make([]view, 0, len(dirs))
					for _, d := range dirs {
						views = append(views, view{d.Directory, d.Label, d.Type})
					}
					return printJSON(cmd.OutOrStdout(), views)
				}
				if len(dirs) == 0 {
					cmd.Println("No synced directories")
					return nil
				}
				rows := make([][]string, 0, len(dirs))
				for _, d := range dirs {
					rows = append(rows, []string{d.Label, d.Type, d.Directory})
				}
				renderTable(cmd.OutOrStdout(), []string{"LABEL", "TYPE", "DIRECTORY"}, rows)
				return nil
			})
		},
	}
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "Only this content type")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Stop syncing every directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				if err := a.catalog.RemoveAllSynced(cmd.Context()); err != nil {
					return err
				}
				cmd.Println("Cleared synced directories")
				return nil
			})
		},
	}

	syncedCmd.AddCommand(addCmd, removeCmd, listCmd, clearCmd)
	return syncedCmd
}
