// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads problem-statement records from tabular files and
// holds the loaded corpus for the lifetime of the process.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/ps-search/pkg/types"
)

// Column names expected in the CSV header row.
const (
	ColumnAuthor           = "Author"
	ColumnTitle            = "Title"
	ColumnProblemStatement = "Problem Statement"
	ColumnContributor      = "Contributor"
)

// ErrMissingColumns is returned when the header has none of the known columns.
var ErrMissingColumns = errors.New("csv header has no Author, Title, Problem Statement, or Contributor column")

// LoadReport summarizes a load.
type LoadReport struct {
	// Rows is the number of data rows read.
	Rows int

	// Duplicates is the number of rows dropped because an earlier row had
	// the same joined key.
	Duplicates int

	// MissingColumns lists known columns absent from the header. Their
	// fields load as empty strings.
	MissingColumns []string

	// DelimiterFields maps a record title to the fields containing the
	// " - " delimiter. Records are kept intact; the entries flag data that
	// a joined-string consumer would misparse.
	DelimiterFields map[string][]string
}

// LoadCSVFile opens path and loads it with LoadCSV.
func LoadCSVFile(path string) ([]types.Record, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("opening corpus %s: %w", path, err)
	}
	defer f.Close()

	records, report, err := LoadCSV(f)
	if err != nil {
		return nil, report, fmt.Errorf("loading corpus %s: %w", path, err)
	}
	return records, report, nil
}

// LoadCSV reads a header row followed by data rows and returns one Record
// per unique joined key, in first-seen order. Absent columns and short rows
// yield empty fields.
func LoadCSV(r io.Reader) ([]types.Record, LoadReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []types.Record{}, LoadReport{}, nil
	}
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("reading header: %w", err)
	}

	index := columnIndex(header)
	var report LoadReport
	found := 0
	for _, col := range []string{ColumnAuthor, ColumnTitle, ColumnProblemStatement, ColumnContributor} {
		if _, ok := index[col]; ok {
			found++
		} else {
			report.MissingColumns = append(report.MissingColumns, col)
		}
	}
	if found == 0 {
		return nil, report, ErrMissingColumns
	}

	var rows []types.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, fmt.Errorf("reading row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, types.Record{
			Author:           field(row, index, ColumnAuthor),
			Title:            field(row, index, ColumnTitle),
			ProblemStatement: field(row, index, ColumnProblemStatement),
			Contributor:      field(row, index, ColumnContributor),
		})
	}

	records := Dedupe(rows)
	report.Rows = len(rows)
	report.Duplicates = len(rows) - len(records)
	for _, rec := range records {
		if names := rec.DelimiterFields(); len(names) > 0 {
			if report.DelimiterFields == nil {
				report.DelimiterFields = make(map[string][]string)
			}
			report.DelimiterFields[rec.Title] = names
		}
	}
	return records, report, nil
}

// Dedupe returns records with later duplicates (same joined key) removed.
func Dedupe(records []types.Record) []types.Record {
	seen := make(map[string]bool, len(records))
	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		key := rec.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}

func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		// A repeated column name maps to its last occurrence.
		index[name] = i
	}
	return index
}

func field(row []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
