// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search ranks problem-statement records against free text by
// keyword overlap. Extraction, scoring, and ranking are pure functions of
// their inputs; the corpus is passed in by the caller and never mutated.
package search

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/pdiddy/ps-search/pkg/types"
)

// Options holds the per-query parameters. Page and ResultsPerPage are
// accepted for API compatibility and do not slice the result set.
type Options struct {
	MinPercentage  float64
	Page           int
	ResultsPerPage int
}

// DefaultOptions returns a 20% threshold, page 1, and 10 results per page.
func DefaultOptions() Options {
	return Options{
		MinPercentage:  types.DefaultMinPercentage,
		Page:           types.DefaultPage,
		ResultsPerPage: types.DefaultResultsPerPage,
	}
}

// Search scans records linearly and returns every record that shares at
// least one keyword with inputText and scores strictly above
// opts.MinPercentage. Results are stably sorted by title, so records with
// equal titles keep their corpus order. The full list is always returned.
func Search(inputText string, records []types.Record, opts Options) []types.MatchResult {
	inputKeywords := ExtractKeywords(inputText)
	if len(inputKeywords) == 0 {
		return []types.MatchResult{}
	}

	matches := []types.MatchResult{}
	for _, rec := range records {
		recordKeywords := ExtractKeywords(rec.Key())
		if !containsAny(recordKeywords, inputKeywords) {
			continue
		}

		pct := ScoreMatch(inputKeywords, recordKeywords)
		if pct <= opts.MinPercentage {
			continue
		}
		matches = append(matches, types.MatchResult{
			Percentage:       pct,
			Title:            rec.Title,
			Author:           rec.Author,
			ProblemStatement: rec.ProblemStatement,
			Contributor:      rec.Contributor,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Title < matches[j].Title
	})
	return matches
}

// containsAny reports whether any of needles appears in haystack.
func containsAny(haystack, needles []string) bool {
	set := make(map[string]bool, len(haystack))
	for _, t := range haystack {
		set[t] = true
	}
	for _, n := range needles {
		if set[n] {
			return true
		}
	}
	return false
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []types.MatchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, types.NoMatchesMessage)
		return
	}

	header := color.New(color.Bold)
	header.Fprintf(w, "%-4s  %-7s  %-40s  %-20s  %s\n",
		"Rank", "Match", "Title", "Author", "Contributor")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %6.2f%%  %-40s  %-20s  %s\n",
			i+1, r.Percentage, truncate(r.Title, 40), truncate(r.Author, 20), r.Contributor)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as an indented JSON array to w. No results
// encode as [].
func FormatJSON(results []types.MatchResult, w io.Writer) error {
	if results == nil {
		results = []types.MatchResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
