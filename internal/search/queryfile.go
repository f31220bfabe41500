// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ps-search/pkg/types"
)

// ErrEmptyQueryFile is returned when a query file has no content.
var ErrEmptyQueryFile = errors.New("query file is empty")

// QueryFile is the on-disk representation of a search and its results.
// A saved search can be reloaded and rerun against a newer corpus.
type QueryFile struct {
	Query   QueryParams         `yaml:"query"`
	Results []types.MatchResult `yaml:"results"`
	Summary QuerySummary        `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	InputText      string  `yaml:"input_text"`
	MinPercentage  float64 `yaml:"min_percentage"`
	Page           int     `yaml:"page,omitempty"`
	ResultsPerPage int     `yaml:"results_per_page,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total         int       `yaml:"total"`
	InputKeywords []string  `yaml:"input_keywords,omitempty"`
	CorpusSize    int       `yaml:"corpus_size"`
	Timestamp     time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves query parameters and results to a YAML file.
func WriteQueryFile(path, inputText string, opts Options, corpusSize int, results []types.MatchResult) error {
	qf := QueryFile{
		Query: QueryParams{
			InputText:      inputText,
			MinPercentage:  opts.MinPercentage,
			Page:           opts.Page,
			ResultsPerPage: opts.ResultsPerPage,
		},
		Results: results,
		Summary: QuerySummary{
			Total:         len(results),
			InputKeywords: ExtractKeywords(inputText),
			CorpusSize:    corpusSize,
			Timestamp:     time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyQueryFile)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Options converts stored QueryParams back into search Options. Zero
// paging fields fall back to the defaults.
func (p QueryParams) Options() Options {
	opts := DefaultOptions()
	opts.MinPercentage = p.MinPercentage
	if p.Page > 0 {
		opts.Page = p.Page
	}
	if p.ResultsPerPage > 0 {
		opts.ResultsPerPage = p.ResultsPerPage
	}
	return opts
}
