package release

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// romans maps II-IX to digits. "i" and "x" are left alone: "I, Robot",
// "American History X".
var romans = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9",
}

var punctuation = strings.NewReplacer("&", " and ", "-", " ", "'", "", ".", " ")

var articles = []string{"the ", "a ", "an "}

// CleanTitle reduces a title to its matching form: lower case, no
// articles or accents, punctuation dropped, Roman numerals as digits.
// "Léon: The Professional" and "Leon - Professional" both clean to
// "leon professional".
func CleanTitle(title string) string {
	s := punctuation.Replace(stripAccents(strings.ToLower(title)))

	// Subtitles after a colon lose their article too.
	parts := strings.Split(s, ":")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		for _, a := range articles {
			if rest, ok := strings.CutPrefix(part, a); ok {
				part = rest
				break
			}
		}
		parts[i] = part
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.Join(parts, " "))

	words := strings.Fields(s)
	// A leading numeral is part of the name ("VII Days").
	for i := 1; i < len(words); i++ {
		if n, ok := romans[words[i]]; ok {
			words[i] = n
		}
	}
	return strings.Join(words, " ")
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
