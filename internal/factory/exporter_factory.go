package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/paleotools/fossilscan/internal/adapters/export"
	"github.com/paleotools/fossilscan/internal/core"
)

// ExporterFactory creates result exporters by format name
type ExporterFactory struct {
	logger *zap.Logger
}

// NewExporterFactory creates a new exporter factory
func NewExporterFactory(logger *zap.Logger) *ExporterFactory {
	return &ExporterFactory{logger: logger}
}

// CreateExporter creates an exporter for the given format
func (f *ExporterFactory) CreateExporter(format string) (core.Exporter, error) {
	switch format {
	case "json":
		return export.NewJSONExporter(f.logger), nil
	case "csv":
		return export.NewCSVExporter(f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}
