package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize normalizes text into index terms: lowercase, keep word
// characters (letters, digits, underscore), turn everything else into
// a space, split on whitespace, and drop tokens of two runes or fewer.
// Deterministic and pure; empty or punctuation-only input yields no
// terms.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	words := strings.Fields(cleaned)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) > 2 {
			terms = append(terms, w)
		}
	}
	return terms
}
