// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Defaults applied when a search request omits a field.
const (
	DefaultMinPercentage  = 20.0
	DefaultPage           = 1
	DefaultResultsPerPage = 10
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NoMatchesMessage is returned when a search yields no results.
const NoMatchesMessage = "No matching problem statements found."

// SearchRequest is the JSON body of POST /search. Pointer fields distinguish
// an omitted value from an explicit zero.
type SearchRequest struct {
	InputText      string   `json:"input_text"`
	MinPercentage  *float64 `json:"min_percentage,omitempty"`
	Page           *int     `json:"page,omitempty"`
	ResultsPerPage *int     `json:"results_per_page,omitempty"`
}

// SearchResponse is the JSON envelope returned by POST /search. A success
// carries Results; "no matches" and failures carry Message.
type SearchResponse struct {
	Status  string        `json:"status"`
	Results []MatchResult `json:"results,omitempty"`
	Message string        `json:"message,omitempty"`
}
