// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"
	"unicode"
)

// stopwords are common words excluded from matching.
var stopwords = map[string]bool{
	"and": true, "the": true, "is": true, "of": true, "or": true,
	"in": true, "to": true, "it": true, "that": true, "was": true,
	"with": true, "for": true, "on": true, "as": true, "by": true,
	"at": true, "an": true, "but": true, "not": true, "are": true,
	"you": true, "we": true, "can": true, "have": true, "has": true,
	"this": true,
}

// IsStopword reports whether word is excluded from keyword sets.
func IsStopword(word string) bool {
	return stopwords[word]
}

// ExtractKeywords lowercases text, splits it into runs of letters, numbers,
// and underscores, and drops stopwords. Order is preserved and duplicates
// are kept. Empty input yields an empty (nil) slice.
func ExtractKeywords(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	var keywords []string
	for _, w := range words {
		if stopwords[w] {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
