package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vmunix/mediacat/internal/catalog"
	"github.com/vmunix/mediacat/internal/config"
	"github.com/vmunix/mediacat/internal/events"
	"github.com/vmunix/mediacat/internal/hostlib"
	"github.com/vmunix/mediacat/internal/metadata"
	"github.com/vmunix/mediacat/internal/scanner"
	"github.com/vmunix/mediacat/internal/storage"
)

// app is the wired catalog: storage, event bus and log, collaborators.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *storage.Store
	eventLog *events.EventLog
	bus      *events.Bus
	catalog  *catalog.Catalog
	logFile  io.Closer
}

func openApp(ctx context.Context, cfg *config.Config, stderr io.Writer) (*app, error) {
	logger, logFile := newLogger(cfg.Log, stderr)

	policy, err := policyFrom(cfg.Library)
	if err != nil {
		_ = closeQuietly(logFile)
		return nil, err
	}

	store, err := storage.Open(ctx, storage.Options{
		Path:        cfg.Database.Path,
		LockTimeout: cfg.Database.LockTimeout,
		Logger:      logger.With("component", "storage"),
	})
	if err != nil {
		_ = closeQuietly(logFile)
		return nil, err
	}

	eventLog := events.NewEventLog(store)
	bus := events.NewBus(eventLog, logger)

	cat := catalog.New(store, policy, logger)
	cat.SetNotifier(bus)
	cat.SetLibrary(hostlib.NewBridge(bus, logger))
	if cfg.Metadata.Root != "" {
		cat.SetMetadata(metadata.NewResolver(cfg.Metadata.Root, layoutFrom(cfg.Metadata), logger))
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		eventLog: eventLog,
		bus:      bus,
		catalog:  cat,
		logFile:  logFile,
	}, nil
}

func (a *app) scanner() *scanner.Scanner {
	s := scanner.New(a.catalog, a.logger, scanner.Options{
		Workers:        a.cfg.Scan.Workers,
		MatchThreshold: a.cfg.Scan.MatchThreshold,
	})
	s.SetNotifier(a.bus)
	return s
}

func (a *app) Close() error {
	busErr := a.bus.Close()
	storeErr := a.store.Close()
	return errors.Join(busErr, storeErr, closeQuietly(a.logFile))
}

func closeQuietly(c io.Closer) error {
	if c == nil {
		return nil
	}
	return c.Close()
}

func policyFrom(cfg config.LibraryConfig) (catalog.Policy, error) {
	movies, err := catalog.ParseAutoAdd(cfg.MoviesAutoAdd)
	if err != nil {
		return catalog.Policy{}, fmt.Errorf("library.movies_auto_add: %w", err)
	}
	tvshows, err := catalog.ParseAutoAdd(cfg.TVShowsAutoAdd)
	if err != nil {
		return catalog.Policy{}, fmt.Errorf("library.tvshows_auto_add: %w", err)
	}
	return catalog.Policy{Movies: movies, TVShows: tvshows}, nil
}

func layoutFrom(cfg config.MetadataConfig) metadata.Layout {
	layout := metadata.DefaultLayout()
	if cfg.MovieTemplate != "" {
		layout.Movie = cfg.MovieTemplate
	}
	if cfg.ShowTemplate != "" {
		layout.Show = cfg.ShowTemplate
	}
	if cfg.EpisodeTemplate != "" {
		layout.Episode = cfg.EpisodeTemplate
	}
	return layout
}
