package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/vmunix/mediacat/internal/catalog"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderTable writes a rounded table on a terminal and a borderless one
// otherwise, so piped output stays easy to cut.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		style := table.StyleDefault
		style.Options = table.OptionsNoBordersAndSeparators
		tw.SetStyle(style)
	}

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	tw.Render()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// itemView is the JSON shape of a catalog item.
type itemView struct {
	Type      string `json:"type"`
	Directory string `json:"directory,omitempty"`
	Title     string `json:"title,omitempty"`
	Year      int    `json:"year,omitempty"`
	Status    string `json:"status,omitempty"`
	ShowTitle string `json:"show_title,omitempty"`
	Season    string `json:"season,omitempty"`
	Episode   string `json:"episode,omitempty"`
}

func viewOf(item catalog.Item) itemView {
	switch v := item.(type) {
	case *catalog.Movie:
		return itemView{Type: string(catalog.MediaMovie), Directory: v.Directory, Title: v.Title, Year: v.Year, Status: string(v.Status)}
	case *catalog.Episode:
		return itemView{
			Type: string(catalog.MediaTVShow), Directory: v.Directory, Title: v.Title, Year: v.Year, Status: string(v.Status),
			ShowTitle: v.ShowTitle, Season: v.Season, Episode: v.EpisodeNumber,
		}
	case catalog.Season:
		return itemView{Type: "season", Season: strconv.Itoa(int(v))}
	}
	return itemView{}
}

func viewsOf(items []catalog.Item) []itemView {
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, viewOf(item))
	}
	return views
}

// describe is the one-line human name of an item.
func describe(item catalog.Item) string {
	switch v := item.(type) {
	case *catalog.Movie:
		return v.DisplayTitle()
	case *catalog.Episode:
		return fmt.Sprintf("%s %s", v.ShowTitle, v.TitleWithID())
	case catalog.Season:
		return fmt.Sprintf("Season %d", int(v))
	}
	return ""
}

func formatTimeAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	ago := time.Since(t)
	switch {
	case ago < time.Minute:
		return "just now"
	case ago < time.Hour:
		return fmt.Sprintf("%dm ago", int(ago.Minutes()))
	case ago < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(ago.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(ago.Hours()/24))
	}
}
