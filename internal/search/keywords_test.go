package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \t\n ", nil},
		{"case folded and stopwords removed", "The Cat and THE Hat", []string{"cat", "hat"}},
		{"punctuation separates tokens", "water-filtration, sand!", []string{"water", "filtration", "sand"}},
		{"underscores and digits kept", "snake_case v2 2024", []string{"snake_case", "v2", "2024"}},
		{"duplicates kept in order", "rain water rain", []string{"rain", "water", "rain"}},
		{"only stopwords", "this is not what you have", []string{"what"}},
		{"unicode letters", "Café über", []string{"café", "über"}},
		{"delimiter is a separator", "Jane - Title", []string{"jane", "title"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeywords(tt.text))
		})
	}
}

func TestStopwordList(t *testing.T) {
	want := []string{
		"and", "the", "is", "of", "or", "in", "to", "it", "that", "was",
		"with", "for", "on", "as", "by", "at", "an", "but", "not", "are",
		"you", "we", "can", "have", "has", "this",
	}
	assert.Len(t, stopwords, len(want))
	for _, w := range want {
		assert.True(t, IsStopword(w), "%q should be a stopword", w)
	}
	assert.False(t, IsStopword("a"), "single letters are not stopwords")
	assert.False(t, IsStopword("The"), "lookup is on lowercased tokens")
}
