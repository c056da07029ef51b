package release

import (
	"regexp"
	"slices"

	"github.com/hbollon/go-edlib"
)

var digitsRe = regexp.MustCompile(`\b\d+\b`)

// MatchConfidence buckets a similarity score.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // below 0.70
	ConfidenceLow                           // 0.70 and up
	ConfidenceMedium                        // 0.85 and up
	ConfidenceHigh                          // 0.95 and up
)

func (c MatchConfidence) String() string {
	if c < ConfidenceNone || c > ConfidenceHigh {
		return "none"
	}
	return [...]string{"none", "low", "medium", "high"}[c]
}

func confidenceOf(score float64) MatchConfidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	}
	return ConfidenceNone
}

// MatchResult is the best candidate for a title.
type MatchResult struct {
	Title      string
	Score      float64 // Jaro-Winkler similarity, 0 to 1
	Confidence MatchConfidence
}

// MatchTitle finds the candidate closest to parsed by Jaro-Winkler
// similarity of the cleaned titles. Shared sequence numbers ("Part 2")
// raise the score and mismatched ones lower it. Below the low threshold
// the result has no Title.
func MatchTitle(parsed string, candidates []string) MatchResult {
	var best MatchResult

	want := CleanTitle(parsed)
	wantNums := digitsRe.FindAllString(want, -1)

	for _, c := range candidates {
		have := CleanTitle(c)
		score := float64(edlib.JaroWinklerSimilarity(want, have))
		score = weighNumbers(score, wantNums, digitsRe.FindAllString(have, -1))
		if score > best.Score {
			best = MatchResult{Title: c, Score: score}
		}
	}

	best.Confidence = confidenceOf(best.Score)
	if best.Confidence == ConfidenceNone {
		best.Title = ""
	}
	return best
}

// weighNumbers nudges a score by whether the candidate carries the same
// sequence numbers as the parsed title.
func weighNumbers(score float64, want, have []string) float64 {
	switch {
	case len(want) == 0:
		return score
	case len(have) == 0:
		return score * 0.85
	}
	for _, n := range want {
		if slices.Contains(have, n) {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}

// Snap returns the candidate matching parsed with at least minScore, or
// parsed itself when nothing is close enough. An exact candidate always
// wins over a fuzzy one.
func Snap(parsed string, candidates []string, minScore float64) (string, bool) {
	if slices.Contains(candidates, parsed) {
		return parsed, true
	}
	m := MatchTitle(parsed, candidates)
	if m.Title == "" || m.Score < minScore {
		return parsed, false
	}
	return m.Title, true
}
