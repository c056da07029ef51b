package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchConfidenceString(t *testing.T) {
	tests := []struct {
		conf     MatchConfidence
		expected string
	}{
		{ConfidenceHigh, "high"},
		{ConfidenceMedium, "medium"},
		{ConfidenceLow, "low"},
		{ConfidenceNone, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.conf.String())
		})
	}
}

func TestMatchTitle(t *testing.T) {
	shows := []string{"Breaking Bad", "Better Call Saul", "The Office", "Fast & Furious", "Rocky III"}

	tests := []struct {
		parsed string
		want   string
	}{
		{"breaking bad", "Breaking Bad"},
		{"Office", "The Office"},
		{"Fast and Furious", "Fast & Furious"},
		{"Rocky 3", "Rocky III"},
	}
	for _, tt := range tests {
		t.Run(tt.parsed, func(t *testing.T) {
			result := MatchTitle(tt.parsed, shows)
			assert.Equal(t, tt.want, result.Title)
			assert.Equal(t, ConfidenceHigh, result.Confidence)
		})
	}
}

func TestMatchTitle_NoMatch(t *testing.T) {
	result := MatchTitle("zzzz", []string{"Breaking Bad"})
	assert.Empty(t, result.Title)
	assert.Equal(t, ConfidenceNone, result.Confidence)

	result = MatchTitle("Breaking Bad", nil)
	assert.Equal(t, ConfidenceNone, result.Confidence)
}

func TestSnap(t *testing.T) {
	shows := []string{"Rocky III", "rocky iii"}

	got, ok := Snap("rocky iii", shows, 0.9)
	assert.True(t, ok)
	assert.Equal(t, "rocky iii", got, "exact candidate wins")

	got, ok = Snap("Rocky 3", shows, 0.9)
	assert.True(t, ok)
	assert.Equal(t, "Rocky III", got)

	got, ok = Snap("Zzzz", shows, 0.9)
	assert.False(t, ok)
	assert.Equal(t, "Zzzz", got)
}
