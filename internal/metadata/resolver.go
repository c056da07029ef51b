package metadata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vmunix/mediacat/internal/catalog"
)

// Resolver checks the metadata folder for an item's .nfo file.
type Resolver struct {
	root   string
	layout Layout
	logger *slog.Logger
}

var _ catalog.MetadataResolver = (*Resolver)(nil)

// NewResolver creates a resolver rooted at root.
func NewResolver(root string, layout Layout, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{root: root, layout: layout, logger: logger.With("component", "metadata")}
}

// Candidates returns the files, any of which counts as metadata for item.
// Episodes accept either their own .nfo or the show's.
func (r *Resolver) Candidates(item catalog.Item) ([]string, error) {
	switch v := item.(type) {
	case *catalog.Movie:
		return []string{filepath.Join(r.root, r.layout.MoviePath(v.Title, v.Year))}, nil
	case *catalog.Episode:
		return []string{
			filepath.Join(r.root, r.layout.EpisodePath(v.ShowTitle, v.Season, v.EpisodeNumber)),
			filepath.Join(r.root, r.layout.ShowPath(v.ShowTitle)),
		}, nil
	default:
		return nil, fmt.Errorf("%w: no metadata for %T", catalog.ErrInvalidItem, item)
	}
}

// HasMetadata reports whether any candidate file exists.
func (r *Resolver) HasMetadata(ctx context.Context, item catalog.Item) (bool, error) {
	if r.root == "" {
		return false, nil
	}
	paths, err := r.Candidates(item)
	if err != nil {
		return false, err
	}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		info, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			r.logger.Debug("metadata found", "directory", item.Key(), "path", p)
			return true, nil
		}
	}
	return false, nil
}
