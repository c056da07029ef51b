// Package release parses media file names into a title, year, season and
// episode, and fuzzy-matches titles against a known list.
package release

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Info is what a file name says about its content.
type Info struct {
	Title        string
	Year         int
	Season       int
	Episode      int
	EpisodeTitle string
	HasEpisode   bool   // an SxxEyy or NxNN marker was found
	Quality      string // 2160p, 1080p, 720p, 480p
	Ext          string // lower-case video extension, if any
}

var videoExtensions = map[string]bool{
	".mkv": true, ".mp4": true, ".avi": true, ".m4v": true, ".ts": true,
	".strm": true, ".mov": true, ".wmv": true, ".mpg": true, ".mpeg": true,
}

// IsVideoFile reports whether path has a video (or stream link) extension.
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

var (
	seasonEpisodeRe = regexp.MustCompile(`(?i)\bS(\d{1,2})[ -]?E(\d{1,3})\b`)
	crossEpisodeRe  = regexp.MustCompile(`(?i)\b(\d{1,2})x(\d{2,3})\b`)
	yearRe          = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	junkRe          = regexp.MustCompile(`(?i)\b(?:2160p|1080p|720p|480p|4k|uhd|bluray|blu-ray|bdrip|brrip|web-dl|webdl|webrip|hdtv|dvdrip|x264|x265|h264|h265|hevc|xvid|proper|repack|remux|extended)\b`)
	separators      = strings.NewReplacer(".", " ", "_", " ")
)

// Parse reads a file name (or path). Dots and underscores count as spaces.
// The title is whatever precedes the first year, episode marker or
// quality tag. A year at the very start belongs to the title ("1917").
func Parse(name string) *Info {
	info := &Info{}

	base := filepath.Base(name)
	if ext := filepath.Ext(base); videoExtensions[strings.ToLower(ext)] {
		info.Ext = strings.ToLower(ext)
		base = strings.TrimSuffix(base, ext)
	}
	s := separators.Replace(base)
	info.Quality = parseQuality(s)

	end := len(s)
	if m := seasonEpisodeRe.FindStringSubmatchIndex(s); m != nil {
		info.setEpisode(s, m)
		end = m[0]
	} else if m := crossEpisodeRe.FindStringSubmatchIndex(s); m != nil {
		info.setEpisode(s, m)
		end = m[0]
	}

	for _, loc := range yearRe.FindAllStringIndex(s[:end], -1) {
		if loc[0] == 0 {
			continue
		}
		info.Year, _ = strconv.Atoi(s[loc[0]:loc[1]])
		end = loc[0]
	}
	if loc := junkRe.FindStringIndex(s[:end]); loc != nil && loc[0] > 0 {
		end = loc[0]
	}
	info.Title = trimTitle(s[:end])

	return info
}

func (i *Info) setEpisode(s string, m []int) {
	i.HasEpisode = true
	i.Season, _ = strconv.Atoi(s[m[2]:m[3]])
	i.Episode, _ = strconv.Atoi(s[m[4]:m[5]])

	rest := s[m[1]:]
	if loc := junkRe.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	if loc := yearRe.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	i.EpisodeTitle = trimTitle(rest)
}

func trimTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " -([")
}

func parseQuality(name string) string {
	name = strings.ToLower(name)
	switch {
	case strings.Contains(name, "2160p"), strings.Contains(name, "4k"), strings.Contains(name, "uhd"):
		return "2160p"
	case strings.Contains(name, "1080p"):
		return "1080p"
	case strings.Contains(name, "720p"):
		return "720p"
	case strings.Contains(name, "480p"):
		return "480p"
	default:
		return ""
	}
}
