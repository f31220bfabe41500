// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the ps-search service:
// the problem-statement Record, the ranked MatchResult, the HTTP wire
// envelope, and configuration.
package types

import "strings"

// RecordDelimiter separates fields in the joined representation of a Record.
const RecordDelimiter = " - "

// Record is one problem-statement entry loaded from the corpus. Records are
// immutable once loaded and shared read-only across requests.
type Record struct {
	// Author is the person or organization that wrote the problem statement.
	Author string `json:"author" yaml:"author"`

	// Title is the short problem title. Results are sorted by this field.
	Title string `json:"title" yaml:"title"`

	// ProblemStatement is the free-text body of the record.
	ProblemStatement string `json:"problem_statement" yaml:"problem_statement"`

	// Contributor is optional and defaults to the empty string.
	Contributor string `json:"contributor" yaml:"contributor"`
}

// Key returns the joined representation
// "{author} - {title} - {problem_statement} - {contributor}".
// Two records with the same Key are duplicates of each other, and keyword
// extraction runs over this string.
func (r Record) Key() string {
	return strings.Join([]string{r.Author, r.Title, r.ProblemStatement, r.Contributor}, RecordDelimiter)
}

// DelimiterFields returns the names of fields that contain RecordDelimiter.
// Such fields would be misaligned by any split of Key back into fields.
func (r Record) DelimiterFields() []string {
	var names []string
	for _, f := range []struct{ name, value string }{
		{"author", r.Author},
		{"title", r.Title},
		{"problem_statement", r.ProblemStatement},
		{"contributor", r.Contributor},
	} {
		if strings.Contains(f.value, RecordDelimiter) {
			names = append(names, f.name)
		}
	}
	return names
}

// MatchResult is a Record that matched a query, with its overlap percentage.
type MatchResult struct {
	// Percentage is the keyword-overlap score in [0, 100], rounded to 2 decimals.
	Percentage float64 `json:"percentage" yaml:"percentage"`

	Title            string `json:"title" yaml:"title"`
	Author           string `json:"author" yaml:"author"`
	ProblemStatement string `json:"problem_statement" yaml:"problem_statement"`
	Contributor      string `json:"contributor" yaml:"contributor"`
}
