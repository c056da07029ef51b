// Package catalog is the content catalog: movies and TV episodes moving
// between the staged and managed states, plus the blocked and synced
// registries.
package catalog

import (
	"database/sql"
	"fmt"
	"strconv"
)

// MediaType selects the record set an item lives in.
type MediaType string

const (
	MediaMovie  MediaType = "movie"
	MediaTVShow MediaType = "tvshow"
	MediaMusic  MediaType = "music"
)

// ParseMediaType validates a mediatype discriminator.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case MediaMovie, MediaTVShow:
		return MediaType(s), nil
	case MediaMusic:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, s)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedMediaType, s)
	}
}

func (m MediaType) table() (string, error) {
	if _, err := ParseMediaType(string(m)); err != nil {
		return "", err
	}
	if m == MediaMovie {
		return "movies", nil
	}
	return "tvshows", nil
}

// Status is the lifecycle state of a content item.
type Status string

const (
	StatusStaged  Status = "staged"
	StatusManaged Status = "managed"
)

// Valid reports whether s is staged or managed.
func (s Status) Valid() bool {
	return s == StatusStaged || s == StatusManaged
}

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	if st := Status(s); st.Valid() {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Item is a decoded catalog row: *Movie, *Episode or Season.
type Item interface {
	MediaType() MediaType
	// Key is the directory identifying the row; empty for projections.
	Key() string
	isItem()
}

// Movie is one row of the movies set.
type Movie struct {
	Directory string
	Title     string
	Year      int
	Status    Status
}

func (m *Movie) MediaType() MediaType { return MediaMovie }
func (m *Movie) Key() string          { return m.Directory }
func (*Movie) isItem()                {}

// DisplayTitle returns "Title (Year)", or just the title when the year is unknown.
func (m *Movie) DisplayTitle() string {
	if m.Year <= 0 {
		return m.Title
	}
	return fmt.Sprintf("%s (%d)", m.Title, m.Year)
}

// Episode is one row of the tvshows set. Season and EpisodeNumber keep
// their stored text so placeholders survive a round trip.
type Episode struct {
	Directory     string
	Title         string
	Year          int
	Status        Status
	ShowTitle     string
	Season        string
	EpisodeNumber string
}

func (e *Episode) MediaType() MediaType { return MediaTVShow }
func (e *Episode) Key() string          { return e.Directory }
func (*Episode) isItem()                {}

// EpisodeID formats the season and episode as S02E10. Non-numeric parts
// are used verbatim.
func (e *Episode) EpisodeID() string {
	return "S" + pad2(e.Season) + "E" + pad2(e.EpisodeNumber)
}

// TitleWithID returns "S02E10 - Title", or only the ID when the episode
// has no title.
func (e *Episode) TitleWithID() string {
	if e.Title == "" {
		return e.EpisodeID()
	}
	return e.EpisodeID() + " - " + e.Title
}

func pad2(s string) string {
	n, err := strconv.Atoi(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%02d", n)
}

// Season is a distinct season number of a show, returned by OrderBySeason
// queries. It is passed through without decoding.
type Season int

func (Season) MediaType() MediaType { return MediaTVShow }
func (Season) Key() string          { return "" }
func (Season) isItem()              {}

// TitleOf returns the title used for display and blocking: the movie
// title, or the show title for episodes.
func TitleOf(item Item) string {
	switch v := item.(type) {
	case *Movie:
		return v.Title
	case *Episode:
		return v.ShowTitle
	case Season:
		return strconv.Itoa(int(v))
	default:
		return ""
	}
}

// row is the raw column set shared by both content tables. Movies select
// NULL for the episode columns.
type row struct {
	directory     string
	title         string
	mediatype     string
	status        string
	year          sql.NullInt64
	showTitle     sql.NullString
	season        sql.NullString
	episodeNumber sql.NullString
}

const (
	movieColumns   = "directory, title, mediatype, status, year, NULL, NULL, NULL"
	episodeColumns = "directory, title, mediatype, status, year, show_title, season, episode_number"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(s rowScanner) (row, error) {
	var r row
	err := s.Scan(&r.directory, &r.title, &r.mediatype, &r.status, &r.year,
		&r.showTitle, &r.season, &r.episodeNumber)
	return r, err
}

// decode builds the variant selected by the row's mediatype.
func decode(r row) (Item, error) {
	switch MediaType(r.mediatype) {
	case MediaMovie:
		return &Movie{
			Directory: r.directory,
			Title:     r.title,
			Year:      int(r.year.Int64),
			Status:    Status(r.status),
		}, nil
	case MediaTVShow:
		return &Episode{
			Directory:     r.directory,
			Title:         r.title,
			Year:          int(r.year.Int64),
			Status:        Status(r.status),
			ShowTitle:     r.showTitle.String,
			Season:        r.season.String,
			EpisodeNumber: r.episodeNumber.String,
		}, nil
	case MediaMusic:
		return nil, fmt.Errorf("decode %s: %w", r.directory, ErrUnsupportedMediaType)
	default:
		return nil, fmt.Errorf("decode %s: %w: %q", r.directory, ErrUnrecognizedMediaType, r.mediatype)
	}
}
