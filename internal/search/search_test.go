package search

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ps-search/pkg/types"
)

func waterFilter() types.Record {
	return types.Record{
		Author:           "Jane Doe",
		Title:            "Water Filter",
		ProblemStatement: "purify water using sand filtration",
		Contributor:      "X",
	}
}

func sampleCorpus() []types.Record {
	return []types.Record{
		{Author: "A. Smith", Title: "Zebra", ProblemStatement: "track zebra migration with drones"},
		waterFilter(),
		{Author: "B. Jones", Title: "Apple", ProblemStatement: "detect apple disease with drones", Contributor: "Y"},
		{Author: "C. Lee", Title: "Rain", ProblemStatement: "harvest rain water for irrigation"},
	}
}

// --- Search ---

func TestSearchEndToEnd(t *testing.T) {
	results := Search("water filtration", []types.Record{waterFilter()}, DefaultOptions())

	require.Len(t, results, 1)
	assert.Equal(t, types.MatchResult{
		Percentage:       100,
		Title:            "Water Filter",
		Author:           "Jane Doe",
		ProblemStatement: "purify water using sand filtration",
		Contributor:      "X",
	}, results[0])
}

func TestSearchNoOverlap(t *testing.T) {
	results := Search("unrelated topic", []types.Record{waterFilter()}, DefaultOptions())
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "the and of", "!!!"} {
		results := Search(text, sampleCorpus(), DefaultOptions())
		assert.Empty(t, results, "input %q", text)
	}
}

func TestSearchEmptyCorpus(t *testing.T) {
	assert.Empty(t, Search("water", nil, DefaultOptions()))
}

func TestSearchSortsByTitle(t *testing.T) {
	// Zebra scores 100, Apple scores 50: order is by title, not score.
	records := []types.Record{
		{Title: "Zebra", ProblemStatement: "drones detect zebra"},
		{Title: "Apple", ProblemStatement: "drones only"},
	}
	results := Search("drones zebra", records, DefaultOptions())

	require.Len(t, results, 2)
	assert.Equal(t, "Apple", results[0].Title)
	assert.Equal(t, "Zebra", results[1].Title)
	assert.Equal(t, 50.0, results[0].Percentage)
	assert.Equal(t, 100.0, results[1].Percentage)
}

func TestSearchSortIsCaseSensitive(t *testing.T) {
	records := []types.Record{
		{Title: "apple", ProblemStatement: "drones"},
		{Title: "Banana", ProblemStatement: "drones"},
	}
	results := Search("drones", records, DefaultOptions())

	require.Len(t, results, 2)
	assert.Equal(t, "Banana", results[0].Title)
	assert.Equal(t, "apple", results[1].Title)
}

func TestSearchStableForEqualTitles(t *testing.T) {
	records := []types.Record{
		{Author: "first", Title: "Same", ProblemStatement: "drones"},
		{Author: "second", Title: "Same", ProblemStatement: "drones"},
		{Author: "third", Title: "Same", ProblemStatement: "drones"},
	}
	results := Search("drones", records, DefaultOptions())

	require.Len(t, results, 3)
	for i, want := range []string{"first", "second", "third"} {
		assert.Equal(t, want, results[i].Author)
	}
}

func TestSearchThresholdIsStrict(t *testing.T) {
	// "water" matches, "telescope" does not: 50%.
	records := []types.Record{waterFilter()}

	opts := DefaultOptions()
	opts.MinPercentage = 50
	assert.Empty(t, Search("water telescope", records, opts))

	opts.MinPercentage = 49.99
	assert.Len(t, Search("water telescope", records, opts), 1)
}

func TestSearchThresholdIsMonotonic(t *testing.T) {
	corpus := sampleCorpus()
	query := "drones water zebra irrigation"

	prev := -1
	for _, min := range []float64{0, 10, 20, 25, 33.33, 50, 75, 99.99, 100} {
		opts := DefaultOptions()
		opts.MinPercentage = min
		n := len(Search(query, corpus, opts))
		if prev >= 0 {
			assert.LessOrEqual(t, n, prev, "threshold %.2f grew the result set", min)
		}
		prev = n
	}
}

func TestSearchIsIdempotent(t *testing.T) {
	corpus := sampleCorpus()
	first := Search("drones water", corpus, DefaultOptions())
	second := Search("drones water", corpus, DefaultOptions())
	assert.Equal(t, first, second)
	assert.Equal(t, sampleCorpus(), corpus, "corpus must not be mutated")
}

func TestSearchIgnoresPaging(t *testing.T) {
	var corpus []types.Record
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		corpus = append(corpus, types.Record{Title: title, ProblemStatement: "drones"})
	}
	opts := Options{MinPercentage: 20, Page: 3, ResultsPerPage: 1}
	assert.Len(t, Search("drones", corpus, opts), 5)
}

func TestSearchMatchesAuthorAndContributor(t *testing.T) {
	// Keywords come from the joined record, not the statement alone.
	results := Search("jane", []types.Record{waterFilter()}, DefaultOptions())
	require.Len(t, results, 1)
	assert.Equal(t, 100.0, results[0].Percentage)
}

func TestSearchRepeatedInputKeyword(t *testing.T) {
	// ["water","water","telescope"] shares {water}: 1/3.
	results := Search("water water telescope", []types.Record{waterFilter()}, DefaultOptions())
	require.Len(t, results, 1)
	assert.Equal(t, 33.33, results[0].Percentage)
}

// --- Formatting ---

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(Search("water", sampleCorpus(), DefaultOptions()), &buf)

	out := buf.String()
	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, "Water Filter")
	assert.Contains(t, out, "Rain")
	assert.Contains(t, out, "2 results")
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Equal(t, types.NoMatchesMessage+"\n", buf.String())
}

func TestFormatTableTruncatesLongTitles(t *testing.T) {
	var buf bytes.Buffer
	FormatTable([]types.MatchResult{{Percentage: 100, Title: strings.Repeat("x", 60)}}, &buf)
	assert.Contains(t, buf.String(), strings.Repeat("x", 37)+"...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 41))
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(Search("water filtration", []types.Record{waterFilter()}, DefaultOptions()), &buf))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 100.0, decoded[0]["percentage"])
	assert.Equal(t, "Water Filter", decoded[0]["title"])
	assert.Equal(t, "X", decoded[0]["contributor"])
}

func TestFormatJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestTruncateCutsOnRunes(t *testing.T) {
	title := strings.Repeat("é", 45)
	got := truncate(title, 40)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 37)+"...", got)
	assert.Equal(t, "Água", truncate("Água", 40))
}
