package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediacat/internal/events"
	"github.com/vmunix/mediacat/internal/scanner"
	"github.com/vmunix/mediacat/internal/server"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Stage new files from the synced directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				report, err := a.scanner().Scan(cmd.Context())
				if err != nil {
					return err
				}
				return printReport(cmd, ctx, report)
			})
		},
	}
}

func printReport(cmd *cobra.Command, ctx *commandContext, r scanner.Report) error {
	if ctx.json() {
		return printJSON(cmd.OutOrStdout(), struct {
			Directories int    `json:"directories"`
			Found       int    `json:"found"`
			Added       int    `json:"added"`
			Existing    int    `json:"existing"`
			Blocked     int    `json:"blocked"`
			Skipped     int    `json:"skipped"`
			Failed      int    `json:"failed"`
			Duration    string `json:"duration"`
		}{r.Directories, r.Found, r.Added, r.Existing, r.Blocked, r.Skipped, r.Failed, r.Duration.String()})
	}
	cmd.Printf("Scanned %d directories: %d found, %d added, %d existing, %d blocked, %d skipped, %d failed\n",
		r.Directories, r.Found, r.Added, r.Existing, r.Blocked, r.Skipped, r.Failed)
	return nil
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var follow, followType string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Scan the synced directories periodically until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return ctx.withApp(cmd, func(a *app) error {
				runner := server.NewRunner(a.scanner(), a.bus, server.Config{
					Interval:       a.cfg.Scan.Interval,
					EventRetention: a.cfg.Events.Retention,
				}, a.logger)
				runner.SetPruner(a.eventLog)

				if follow != "" {
					followCtx, cancel := context.WithCancel(sigCtx)
					done := followEntity(followCtx, cmd.OutOrStdout(), a.bus.SubscribeEntity(followType, follow, 16))
					defer func() {
						cancel()
						<-done
					}()
				}

				err := runner.Run(sigCtx)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&follow, "follow", "", "Print events for this entity (directory or blocked value) as they happen")
	cmd.Flags().StringVar(&followType, "follow-type", events.EntityMovie, "Entity type for --follow")
	return cmd
}

// followEntity prints events from ch until ctx ends or ch closes. The
// returned channel closes when it stops.
func followEntity(ctx context.Context, w io.Writer, ch <-chan events.Event) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case e, ok := <-ch:
				if !ok {
					return
				}
				_, _ = fmt.Fprintf(w, "%s  %-24s %s\n", e.OccurredAt().Format(time.TimeOnly), e.EventType(), e.EntityKey())
			case <-ctx.Done():
				return
			}
		}
	}()
	return done
}
