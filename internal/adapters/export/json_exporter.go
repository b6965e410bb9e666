package export

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/paleotools/fossilscan/internal/core"
)

// JSONExporter writes the full history as a pretty-printed array of result
// records. Degraded records are included as their {error, image_path} shape.
type JSONExporter struct {
	logger *zap.Logger
}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter(logger *zap.Logger) *JSONExporter {
	return &JSONExporter{logger: logger}
}

// Export writes the history to the file at path. An empty history still
// produces a file containing an empty array.
func (e *JSONExporter) Export(path string, history []*core.AnalysisResult) error {
	if history == nil {
		history = []*core.AnalysisResult{}
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	e.logger.Info("Results exported",
		zap.String("path", path),
		zap.String("format", "json"),
		zap.Int("count", len(history)))
	return nil
}
