package db

import "github.com/mahendramedapati27/unimatch/internal/domain/search/filter"

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	Collection string
	Filters    filter.Expression
	Vector     []float32
	K          int
}

// SearchResult is the output of a search operation. Entries are ordered by
// descending similarity as the backend returned them.
type SearchResult struct {
	Entries []SearchEntry
}

// SearchEntry is a single point hit. Payload values keep the backend's native
// types (numbers may arrive as strings, lists as delimited text).
type SearchEntry struct {
	ID      string
	Score   float64
	Payload map[string]any
}
