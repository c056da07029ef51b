// Package scanner walks the synced directories and stages the video files
// it finds as catalog items.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/mediacat/internal/catalog"
	"github.com/vmunix/mediacat/internal/events"
	"github.com/vmunix/mediacat/pkg/release"
)

// Catalog is the part of *catalog.Catalog the scanner uses.
type Catalog interface {
	GetSyncedDirectories(ctx context.Context, syncedType string) ([]catalog.SyncedDirectory, error)
	GetAllShowTitles(ctx context.Context, status catalog.Status) ([]string, error)
	IsBlocked(ctx context.Context, value, blockType string) (bool, error)
	AddContentItem(ctx context.Context, item catalog.Item) (bool, error)
}

// Options tunes a scan.
type Options struct {
	Workers        int     // directories walked at once; default 4
	MatchThreshold float64 // minimum show-title similarity to snap; default 0.85
}

// Report counts what a scan did.
type Report struct {
	Directories int
	Found       int // video files seen
	Added       int
	Existing    int
	Blocked     int
	Skipped     int // files that did not parse into an item
	Failed      int
	Duration    time.Duration
}

// Scanner stages new files from synced directories.
type Scanner struct {
	catalog  Catalog
	notifier catalog.Notifier
	opts     Options
	logger   *slog.Logger
}

// New creates a scanner.
func New(c Catalog, logger *slog.Logger, opts Options) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.MatchThreshold <= 0 {
		opts.MatchThreshold = 0.85
	}
	return &Scanner{
		catalog: c,
		opts:    opts,
		logger:  logger.With("component", "scanner"),
	}
}

// SetNotifier attaches the sink for scan.completed events.
func (s *Scanner) SetNotifier(n catalog.Notifier) { s.notifier = n }

// file is a video found under a synced directory.
type file struct {
	path   string
	synced catalog.SyncedDirectory
	show   string // show folder for tvshows collections
}

// Scan walks every synced directory concurrently, then stages the files
// one at a time. A directory that cannot be read is logged and counted as
// failed; a cancelled context aborts the scan.
func (s *Scanner) Scan(ctx context.Context) (Report, error) {
	start := time.Now()
	var report Report

	dirs, err := s.catalog.GetSyncedDirectories(ctx, "")
	if err != nil {
		return report, fmt.Errorf("list synced directories: %w", err)
	}
	report.Directories = len(dirs)

	found := make([][]file, len(dirs))
	walkErrs := make([]error, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, d := range dirs {
		g.Go(func() error {
			files, err := walk(gctx, d)
			if gctx.Err() != nil {
				return gctx.Err()
			}
			found[i], walkErrs[i] = files, err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, fmt.Errorf("walk synced directories: %w", err)
	}

	shows, err := s.knownShows(ctx)
	if err != nil {
		return report, err
	}

	for i, files := range found {
		if walkErrs[i] != nil {
			s.logger.Warn("walk failed", "directory", dirs[i].Directory, "error", walkErrs[i])
			report.Failed++
			continue
		}
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			report.Found++
			shows = s.stage(ctx, f, shows, &report)
		}
	}

	report.Duration = time.Since(start)
	s.logger.Info("scan complete",
		"directories", report.Directories,
		"found", report.Found,
		"added", report.Added,
		"existing", report.Existing,
		"blocked", report.Blocked,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"duration", report.Duration)

	if s.notifier != nil {
		e := &events.ScanCompleted{
			BaseEvent:   events.NewBaseEvent(events.EventScanCompleted, events.EntityScan, start.UTC().Format(time.RFC3339)),
			Directories: report.Directories,
			Found:       report.Found,
			Added:       report.Added,
			Existing:    report.Existing,
			Blocked:     report.Blocked,
			Skipped:     report.Skipped,
			Failed:      report.Failed,
		}
		if err := s.notifier.Publish(ctx, e); err != nil {
			s.logger.Debug("publish scan event", "error", err)
		}
	}
	return report, nil
}

// stage adds one file and returns the (possibly grown) show list.
func (s *Scanner) stage(ctx context.Context, f file, shows []string, report *Report) []string {
	item, ok := s.itemFor(f, shows)
	if !ok {
		s.logger.Debug("skipping unparseable file", "path", f.path)
		report.Skipped++
		return shows
	}

	key, blocked, err := catalog.BlockedBy(ctx, s.catalog, item)
	if err != nil {
		s.logger.Warn("blocked check failed", "path", f.path, "error", err)
		report.Failed++
		return shows
	}
	if blocked {
		s.logger.Debug("skipping blocked file", "path", f.path, "type", key.Type, "value", key.Value)
		report.Blocked++
		return shows
	}

	created, err := s.catalog.AddContentItem(ctx, item)
	switch {
	case errors.Is(err, catalog.ErrLibraryAction):
		// The row exists; only the auto-add failed.
		s.logger.Warn("auto-add failed", "path", f.path, "error", err)
		report.Added++
	case err != nil:
		s.logger.Warn("stage failed", "path", f.path, "error", err)
		report.Failed++
		return shows
	case created:
		report.Added++
	default:
		report.Existing++
	}

	if ep, isEpisode := item.(*catalog.Episode); isEpisode && created {
		shows = appendShow(shows, ep.ShowTitle)
	}
	return shows
}

// itemFor builds the catalog item a file stands for. Episodes take their
// show title from the synced label (single show) or the show folder
// (collection), snapped to a known show when close enough.
func (s *Scanner) itemFor(f file, shows []string) (catalog.Item, bool) {
	info := release.Parse(f.path)

	switch f.synced.Type {
	case "movie", "movies":
		if info.Title == "" || info.HasEpisode {
			return nil, false
		}
		return &catalog.Movie{Directory: f.path, Title: info.Title, Year: info.Year}, true

	case "tvshow", "tvshows":
		if !info.HasEpisode {
			return nil, false
		}
		show := f.show
		if show == "" {
			show = info.Title
		}
		if show == "" {
			return nil, false
		}
		show, _ = release.Snap(show, shows, s.opts.MatchThreshold)
		return &catalog.Episode{
			Directory:     f.path,
			Title:         info.EpisodeTitle,
			Year:          info.Year,
			ShowTitle:     show,
			Season:        strconv.Itoa(info.Season),
			EpisodeNumber: strconv.Itoa(info.Episode),
		}, true
	}
	return nil, false
}

func (s *Scanner) knownShows(ctx context.Context) ([]string, error) {
	var shows []string
	for _, status := range []catalog.Status{catalog.StatusManaged, catalog.StatusStaged} {
		titles, err := s.catalog.GetAllShowTitles(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("list show titles: %w", err)
		}
		for _, t := range titles {
			shows = appendShow(shows, t)
		}
	}
	return shows, nil
}

func appendShow(shows []string, title string) []string {
	for _, s := range shows {
		if s == title {
			return shows
		}
	}
	return append(shows, title)
}

// walk collects the video files below a synced directory, skipping hidden
// entries and samples.
func walk(ctx context.Context, d catalog.SyncedDirectory) ([]file, error) {
	var files []file
	root := filepath.Clean(d.Directory)

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := entry.Name()
		if path != root && strings.HasPrefix(name, ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !release.IsVideoFile(path) {
			return nil
		}
		if strings.Contains(strings.ToLower(name), "sample") {
			return nil
		}

		files = append(files, file{path: path, synced: d, show: showFor(root, path, d)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// showFor names the show a file belongs to: the label of a single-show
// directory, or the first folder below a collection root.
func showFor(root, path string, d catalog.SyncedDirectory) string {
	switch d.Type {
	case "tvshow":
		if d.Label != "" {
			return d.Label
		}
		return filepath.Base(root)
	case "tvshows":
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return ""
		}
		if first, _, ok := strings.Cut(filepath.ToSlash(rel), "/"); ok {
			return first
		}
	}
	return ""
}
