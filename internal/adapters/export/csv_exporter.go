package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/paleotools/fossilscan/internal/core"
)

// csvColumns is the fixed tabular export schema.
var csvColumns = []string{"timestamp", "image_path", "fossil_type", "age", "quality"}

// CSVExporter writes one row per successfully analyzed history entry.
// Degraded records carry none of the columns and are skipped silently.
type CSVExporter struct {
	logger *zap.Logger
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter(logger *zap.Logger) *CSVExporter {
	return &CSVExporter{logger: logger}
}

// Export writes the history to the file at path. An empty history writes
// nothing at all: any pre-existing file at path is left untouched rather
// than truncated.
func (e *CSVExporter) Export(path string, history []*core.AnalysisResult) error {
	if len(history) == 0 {
		e.logger.Info("History is empty, skipping CSV export", zap.String("path", path))
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	rowCount := 0
	for _, result := range history {
		if result.IsDegraded() || result.Classification == nil ||
			result.AgeEstimation == nil || result.Preservation == nil {
			continue
		}
		row := []string{
			result.Timestamp,
			result.ImagePath,
			result.Classification.PrimaryType,
			result.AgeEstimation.EstimatedAgeMillionYears,
			result.Preservation.QualityRating,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		rowCount++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush results: %w", err)
	}

	e.logger.Info("Results exported",
		zap.String("path", path),
		zap.String("format", "csv"),
		zap.Int("count", rowCount))
	return nil
}
