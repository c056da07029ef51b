// Package metadata answers whether metadata files already exist for a
// catalog item, using the folder layout the metadata generator writes.
package metadata

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Default layout templates, relative to the metadata root.
const (
	DefaultMovieTemplate   = "movies/{title} ({year})/{title} ({year}).nfo"
	DefaultShowTemplate    = "tvshows/{show}/tvshow.nfo"
	DefaultEpisodeTemplate = "tvshows/{show}/Season {season:02}/{show} - S{season:02}E{episode:02}.nfo"
)

// Layout maps items to metadata file paths.
type Layout struct {
	Movie   string
	Show    string
	Episode string
}

// DefaultLayout returns the layout written by the metadata generator.
func DefaultLayout() Layout {
	return Layout{Movie: DefaultMovieTemplate, Show: DefaultShowTemplate, Episode: DefaultEpisodeTemplate}
}

// MoviePath returns the movie's .nfo path relative to the root. Movies
// without a year drop the " ({year})" part.
func (l Layout) MoviePath(title string, year int) string {
	tmpl := l.Movie
	if year <= 0 {
		tmpl = strings.ReplaceAll(tmpl, " ({year})", "")
	}
	return filepath.FromSlash(applyTemplate(tmpl, map[string]any{
		"title": SanitizeName(title),
		"year":  year,
	}))
}

// ShowPath returns the show-level .nfo path relative to the root.
func (l Layout) ShowPath(show string) string {
	return filepath.FromSlash(applyTemplate(l.Show, map[string]any{"show": SanitizeName(show)}))
}

// EpisodePath returns the episode .nfo path relative to the root. Season
// and episode are zero-padded when numeric.
func (l Layout) EpisodePath(show, season, episode string) string {
	return filepath.FromSlash(applyTemplate(l.Episode, map[string]any{
		"show":    SanitizeName(show),
		"season":  numberOrText(season),
		"episode": numberOrText(episode),
	}))
}

func numberOrText(s string) any {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	return SanitizeName(s)
}

// placeholder matches {name} or {name:02}.
var placeholder = regexp.MustCompile(`\{(\w+)(?::(\d+))?\}`)

func applyTemplate(tmpl string, vars map[string]any) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		parts := placeholder.FindStringSubmatch(match)
		val, ok := vars[parts[1]]
		if !ok {
			return match
		}
		if n, isInt := val.(int); isInt && parts[2] != "" {
			if width, err := strconv.Atoi(parts[2]); err == nil {
				return fmt.Sprintf("%0*d", width, n)
			}
		}
		return fmt.Sprintf("%v", val)
	})
}

var (
	unsafeChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	spaceRuns   = regexp.MustCompile(`\s+`)
	dotRuns     = regexp.MustCompile(`\.{2,}`)
)

// SanitizeName turns a title into a single safe path element. Path
// separators become spaces, so a title can never escape its folder.
func SanitizeName(name string) string {
	name = unsafeChars.ReplaceAllString(name, " ")
	name = dotRuns.ReplaceAllString(name, ".")
	name = spaceRuns.ReplaceAllString(name, " ")
	return strings.Trim(name, " .")
}
