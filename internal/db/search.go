package db

import "github.com/storelens/shopsearch/internal/domain/search/constraint"

// KNNQuery is the input for vector similarity search with constraint pre-filtering.
type KNNQuery struct {
	IndexName    string
	Filters      constraint.Set
	Vector       []float32
	K            int
	ReturnFields []string
}

// ListQuery is the input for a constraint-only listing (no vector).
type ListQuery struct {
	IndexName    string
	Filters      constraint.Set
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
