package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediacat/internal/catalog"
)

type itemFunc func(*catalog.Catalog, context.Context, catalog.Item) error

type batchFunc func(*catalog.Catalog, context.Context, catalog.Query) (*catalog.BatchResult, error)

func newManageCommand(ctx *commandContext) *cobra.Command {
	return newItemTransition(ctx, "manage <directory>", "Add a staged item to the library",
		"Managed", (*catalog.Catalog).Manage)
}

func newUnstageCommand(ctx *commandContext) *cobra.Command {
	return newItemTransition(ctx, "unstage <directory>", "Take a managed item out of the library and stage it",
		"Staged", (*catalog.Catalog).MoveToStaged)
}

func newItemTransition(ctx *commandContext, use, short, verb string, fn itemFunc) *cobra.Command {
	var mediaType string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				item, err := lookupItem(cmd.Context(), a.catalog, mediaType, args[0])
				if err != nil {
					return err
				}
				if err := fn(a.catalog, cmd.Context(), item); err != nil {
					return err
				}
				cmd.Printf("%s: %s\n", verb, describe(item))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&mediaType, "type", "t", "", "Mediatype: movie or tvshow (default: try both)")
	return cmd
}

func newManageAllCommand(ctx *commandContext) *cobra.Command {
	return newBatchTransition(ctx, "manage-all", "Add every matching staged item to the library",
		catalog.StatusStaged, (*catalog.Catalog).ManageAll)
}

func newUnstageAllCommand(ctx *commandContext) *cobra.Command {
	return newBatchTransition(ctx, "unstage-all", "Stage every matching managed item again",
		catalog.StatusManaged, (*catalog.Catalog).MoveAllToStaged)
}

func newBatchTransition(ctx *commandContext, use, short string, from catalog.Status, fn batchFunc) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := flags.query(cmd)
			if err != nil {
				return err
			}
			q.Status = from
			return ctx.withApp(cmd, func(a *app) error {
				result, err := fn(a.catalog, cmd.Context(), q)
				if result == nil {
					return err
				}
				if perr := printBatch(cmd, ctx, result); perr != nil {
					return errors.Join(err, perr)
				}
				return err
			})
		},
	}
	flags.register(cmd, string(from))
	_ = cmd.Flags().MarkHidden("status")
	return cmd
}

func printBatch(cmd *cobra.Command, ctx *commandContext, r *catalog.BatchResult) error {
	if ctx.json() {
		errs := make([]string, 0, len(r.Errors))
		for _, e := range r.Errors {
			errs = append(errs, e.Error())
		}
		return printJSON(cmd.OutOrStdout(), struct {
			ID        string   `json:"id"`
			Operation string   `json:"operation"`
			Total     int      `json:"total"`
			Succeeded int      `json:"succeeded"`
			Failed    int      `json:"failed"`
			Aborted   bool     `json:"aborted"`
			Errors    []string `json:"errors,omitempty"`
		}{r.ID.String(), r.Operation, r.Total, r.Succeeded, r.Failed, r.Aborted, errs})
	}

	cmd.Printf("%d of %d succeeded", r.Succeeded, r.Total)
	if r.Failed > 0 {
		cmd.Printf(", %d failed", r.Failed)
	}
	if r.Aborted {
		cmd.Print(" (aborted)")
	}
	cmd.Println()
	for _, e := range r.Errors {
		cmd.Printf("  - %v\n", e)
	}
	return nil
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var (
		mediaType string
		status    string
		show      string
		season    int
	)
	cmd := &cobra.Command{
		Use:   "remove [directory]",
		Short: "Remove items from the catalog",
		Long: `Remove one item by directory, or many by --show, --season or --status.

Managed items are taken out of the library first. Staged items are
deleted directly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return ctx.withApp(cmd, func(a *app) error {
					item, err := lookupItem(cmd.Context(), a.catalog, mediaType, args[0])
					if err != nil {
						return err
					}
					if err := a.catalog.Remove(cmd.Context(), item); err != nil {
						return err
					}
					cmd.Printf("Removed: %s\n", describe(item))
					return nil
				})
			}

			if mediaType == "" {
				mediaType = string(catalog.MediaMovie)
				if show != "" {
					mediaType = string(catalog.MediaTVShow)
				}
			}
			m, err := catalog.ParseMediaType(mediaType)
			if err != nil {
				return err
			}
			st, err := catalog.ParseStatus(status)
			if err != nil {
				return err
			}
			req := catalog.RemoveRequest{MediaType: m, Status: st, ShowTitle: show}
			if cmd.Flags().Changed("season") {
				req.Season = &season
			}

			return ctx.withApp(cmd, func(a *app) error {
				if st == catalog.StatusManaged {
					return removeManaged(cmd, ctx, a, req)
				}
				n, err := a.catalog.RemoveContent(cmd.Context(), req)
				if err != nil {
					return err
				}
				cmd.Printf("Removed %d %s item(s) (%s)\n", n, st, req.Mode())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&mediaType, "type", "t", "", "Mediatype: movie or tvshow")
	cmd.Flags().StringVarP(&status, "status", "s", string(catalog.StatusStaged), "Status: staged or managed")
	cmd.Flags().StringVar(&show, "show", "", "Remove one show")
	cmd.Flags().IntVar(&season, "season", 0, "Remove one season of --show")
	return cmd
}

// removeManaged removes managed items one by one so each leaves the
// library before its row is deleted.
func removeManaged(cmd *cobra.Command, ctx *commandContext, a *app, req catalog.RemoveRequest) error {
	q := catalog.Query{Status: req.Status, MediaType: req.MediaType, Order: catalog.OrderByTitle}
	if req.ShowTitle != "" {
		q.Order, q.ShowTitle, q.Season = catalog.OrderByShowTitle, req.ShowTitle, req.Season
	} else if req.Season != nil {
		return fmt.Errorf("%w: --season needs --show", catalog.ErrInvalidQuery)
	}

	result, err := a.catalog.RemoveAllItems(cmd.Context(), q)
	if result == nil {
		return err
	}
	if perr := printBatch(cmd, ctx, result); perr != nil {
		return errors.Join(err, perr)
	}
	return err
}
