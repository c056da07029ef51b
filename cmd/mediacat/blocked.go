package main

import (
	"github.com/spf13/cobra"

	"github.com/vmunix/mediacat/internal/catalog"
)

func newBlockedCommand(ctx *commandContext) *cobra.Command {
	blockedCmd := &cobra.Command{
		Use:   "blocked",
		Short: "Manage blocked titles",
	}

	var blockType string
	typeFlag := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&blockType, "type", "t", catalog.BlockMovie, "Blocked type: movie, tvshow or episode")
	}

	addCmd := &cobra.Command{
		Use:   "add <value>",
		Short: "Block a title (or an episode directory)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				if err := a.catalog.AddBlocked(cmd.Context(), args[0], blockType); err != nil {
					return err
				}
				cmd.Printf("Blocked %s: %s\n", blockType, args[0])
				return nil
			})
		},
	}
	typeFlag(addCmd)

	var itemType string
	itemCmd := &cobra.Command{
		Use:   "item <directory>",
		Short: "Block a movie title or an episode directory and remove the item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				item, err := lookupItem(cmd.Context(), a.catalog, itemType, args[0])
				if err != nil {
					return err
				}
				if err := a.catalog.Block(cmd.Context(), item); err != nil {
					return err
				}
				key, _ := catalog.BlockKey(item)
				cmd.Printf("Blocked %s: %s\n", key.Type, key.Value)
				return nil
			})
		},
	}
	itemCmd.Flags().StringVar(&itemType, "item-type", "", "Mediatype: movie or tvshow (default: try both)")

	removeCmd := &cobra.Command{
		Use:   "remove <value>",
		Short: "Unblock a title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				if err := a.catalog.RemoveBlocked(cmd.Context(), args[0], blockType); err != nil {
					return err
				}
				cmd.Printf("Unblocked %s: %s\n", blockType, args[0])
				return nil
			})
		},
	}
	typeFlag(removeCmd)

	checkCmd := &cobra.Command{
		Use:   "check <value>",
		Short: "Report whether a title is blocked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				blocked, err := a.catalog.IsBlocked(cmd.Context(), args[0], blockType)
				if err != nil {
					return err
				}
				if ctx.json() {
					return printJSON(cmd.OutOrStdout(), map[string]bool{"blocked": blocked})
				}
				if blocked {
					cmd.Printf("%s %q is blocked\n", blockType, args[0])
				} else {
					cmd.Printf("%s %q is not blocked\n", blockType, args[0])
				}
				return nil
			})
		},
	}
	typeFlag(checkCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List blocked titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				items, err := a.catalog.BlockedItems(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.json() {
					type view struct {
						Value string `json:"value"`
						Type  string `json:"type"`
					}
					views := make([]view, 0, len(items))
					for _, b := range items {
						views = append(views, view{b.Value, b.Type})
					}
					return printJSON(cmd.OutOrStdout(), views)
				}
				if len(items) == 0 {
					cmd.Println("Nothing blocked")
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, b := range items {
					rows = append(rows, []string{b.Type, b.Value})
				}
				renderTable(cmd.OutOrStdout(), []string{"TYPE", "VALUE"}, rows)
				return nil
			})
		},
	}

	blockedCmd.AddCommand(addCmd, itemCmd, removeCmd, checkCmd, listCmd)
	return blockedCmd
}
