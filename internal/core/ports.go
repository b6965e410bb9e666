package core

import (
	"context"
)

// HistoryRepository stores the ordered analysis history owned by one
// analyzer instance. Implementations must preserve insertion order.
type HistoryRepository interface {
	// Append adds a result to the end of the history
	Append(ctx context.Context, result *AnalysisResult) error

	// All returns the history in insertion order
	All(ctx context.Context) ([]*AnalysisResult, error)
}

// Exporter serializes an analysis history to a file
type Exporter interface {
	// Export writes the history to the file at path
	Export(path string, history []*AnalysisResult) error
}

// SpeciesRepository provides lookups against the on-disk species database
type SpeciesRepository interface {
	// List returns the full database keyed by fossil type
	List(ctx context.Context) (map[string][]string, error)

	// Search returns the entries matching the query
	Search(ctx context.Context, query string) (map[string][]string, error)
}
