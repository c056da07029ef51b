package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediacat/internal/events"
)

func newEventsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var entityType, entityKey string
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recent catalog events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				var (
					raw []events.RawEvent
					err error
				)
				switch {
				case entityKey != "":
					raw, err = a.eventLog.ForEntity(cmd.Context(), entityType, entityKey)
				case since > 0:
					raw, err = a.eventLog.Since(cmd.Context(), time.Now().Add(-since))
				default:
					raw, err = a.eventLog.Recent(cmd.Context(), limit)
				}
				if err != nil {
					return err
				}

				if ctx.json() {
					registry := events.DefaultRegistry()
					decoded := make([]events.Event, 0, len(raw))
					for _, r := range raw {
						e, err := registry.Unmarshal(r)
						if err != nil {
							a.logger.Warn("skip undecodable event", "id", r.ID, "error", err)
							continue
						}
						decoded = append(decoded, e)
					}
					return printJSON(cmd.OutOrStdout(), decoded)
				}

				if len(raw) == 0 {
					cmd.Println("No events")
					return nil
				}
				rows := make([][]string, 0, len(raw))
				for _, e := range raw {
					rows = append(rows, []string{formatTimeAgo(e.OccurredAt), e.EventType, e.EntityType, e.EntityKey})
				}
				renderTable(cmd.OutOrStdout(), []string{"TIME", "TYPE", "ENTITY", "KEY"}, rows)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events to show")
	cmd.Flags().DurationVar(&since, "since", 0, "Only events newer than this (e.g. 2h), oldest first")
	cmd.Flags().StringVar(&entityType, "entity-type", "movie", "Entity type for --entity")
	cmd.Flags().StringVar(&entityKey, "entity", "", "Only events for this entity (directory, blocked value, batch ID)")
	return cmd
}
