package history

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/paleotools/fossilscan/internal/core"
)

// MemoryHistory is an in-memory implementation of the HistoryRepository
// interface. It is the default backend: results live only for the run,
// matching the analyzer's original in-process history semantics.
type MemoryHistory struct {
	mu      sync.Mutex
	results []*core.AnalysisResult
	logger  *zap.Logger
}

// NewMemoryHistory creates a new in-memory history
func NewMemoryHistory(logger *zap.Logger) *MemoryHistory {
	return &MemoryHistory{
		logger: logger,
	}
}

// Append adds a result to the end of the history
func (h *MemoryHistory) Append(ctx context.Context, result *core.AnalysisResult) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.results = append(h.results, result)
	return nil
}

// All returns a copy of the history in insertion order
func (h *MemoryHistory) All(ctx context.Context) ([]*core.AnalysisResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*core.AnalysisResult, len(h.results))
	copy(out, h.results)
	return out, nil
}
