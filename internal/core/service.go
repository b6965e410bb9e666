package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/paleotools/fossilscan/internal/classify"
	"github.com/paleotools/fossilscan/internal/imaging"
)

// Confidence placeholders reported by the heuristic pipeline.
const (
	detectionConfidence      = 0.75
	classificationConfidence = 0.68
)

// imageExtensions lists the file types batch analysis picks up.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
}

// AnalyzerService runs the fossil analysis pipeline and owns its history.
//
// AnalyzeImage is safe for concurrent use: each call works off its own
// buffer and the history append is serialized by the repository.
type AnalyzerService struct {
	history        HistoryRepository
	logger         *zap.Logger
	skipDuplicates bool
}

// NewAnalyzerService creates a new analyzer service
func NewAnalyzerService(history HistoryRepository, logger *zap.Logger, skipDuplicates bool) *AnalyzerService {
	return &AnalyzerService{
		history:        history,
		logger:         logger,
		skipDuplicates: skipDuplicates,
	}
}

// AnalyzeImage decodes the image at path and produces exactly one result.
// Decode failures are captured into a degraded record instead of being
// returned as errors; the pipeline always continues.
func (s *AnalyzerService) AnalyzeImage(ctx context.Context, path string) *AnalysisResult {
	buf, _, err := imaging.Load(path)
	if err != nil {
		s.logger.Warn("Image analysis failed",
			zap.String("path", path),
			zap.Error(err))
		result := &AnalysisResult{Error: err.Error(), ImagePath: path}
		s.appendHistory(ctx, result)
		return result
	}
	return s.analyzeBuffer(ctx, path, buf)
}

// analyzeBuffer runs every extractor once over the buffer, assembles the
// nested result record, and appends it to the history.
func (s *AnalyzerService) analyzeBuffer(ctx context.Context, path string, buf *imaging.Buffer) *AnalysisResult {
	brightness := imaging.Brightness(buf)
	variance := imaging.ColorVariance(buf)

	classification := classify.ClassifyFossil(brightness)
	preservation := classify.AssessPreservation(variance)
	age := classify.EstimateAge()

	result := &AnalysisResult{
		Timestamp: time.Now().Format(time.RFC3339),
		ImagePath: path,
		Dimensions: &Dimensions{
			Width:  buf.Width,
			Height: buf.Height,
		},
		Properties: &ImageProperties{
			Brightness:    brightness,
			ColorVariance: variance,
		},
		Detection: &FossilDetection{
			TextureScore:           imaging.TextureScore(buf),
			MineralizationDetected: imaging.MineralizationDetected(buf),
			BoneStructureVisible:   imaging.BoneStructureVisible(buf),
			Confidence:             detectionConfidence,
		},
		Classification: &FossilClassification{
			PrimaryType:      classification.FossilType,
			GeologicalPeriod: classification.Period,
			PossibleSpecies:  classify.SuggestSpecies(classification.FossilType),
			Confidence:       classificationConfidence,
		},
		AgeEstimation: &AgeEstimation{
			EstimatedAgeMillionYears: age.RangeMillionYears,
			GeologicalEra:            age.Era,
			Confidence:               age.Confidence,
			Notes:                    age.Notes,
		},
		Preservation: &PreservationQuality{
			QualityRating:           preservation.Quality,
			PreservationScore:       preservation.Score,
			Completeness:            classify.PreservationCompleteness,
			RecommendedPreservation: classify.PreservationAdvice,
		},
	}

	s.logger.Debug("Image analyzed",
		zap.String("path", path),
		zap.Float64("brightness", brightness),
		zap.Float64("color_variance", variance),
		zap.String("fossil_type", classification.FossilType))

	s.appendHistory(ctx, result)
	return result
}

// BatchAnalyze analyzes every recognized image in a directory
// (non-recursive). A missing directory yields a one-element degraded list
// rather than an error.
func (s *AnalyzerService) BatchAnalyze(ctx context.Context, dir string) []*AnalysisResult {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("Batch analysis failed", zap.String("directory", dir), zap.Error(err))
		return []*AnalysisResult{{Error: fmt.Sprintf("Directory not found: %s", dir)}}
	}

	var dedup *imaging.DedupFilter
	if s.skipDuplicates {
		dedup = imaging.NewDedupFilter()
	}

	var results []*AnalysisResult
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		s.logger.Info("Analyzing image", zap.String("path", path))

		if dedup == nil {
			results = append(results, s.AnalyzeImage(ctx, path))
			continue
		}

		buf, frame, err := imaging.Load(path)
		if err != nil {
			result := &AnalysisResult{Error: err.Error(), ImagePath: path}
			s.appendHistory(ctx, result)
			results = append(results, result)
			continue
		}
		if dedup.Seen(frame) {
			s.logger.Info("Skipping perceptual duplicate", zap.String("path", path))
			continue
		}
		results = append(results, s.analyzeBuffer(ctx, path, buf))
	}
	return results
}

// History returns the accumulated analysis history in insertion order.
func (s *AnalyzerService) History(ctx context.Context) ([]*AnalysisResult, error) {
	return s.history.All(ctx)
}

// Export serializes the accumulated history with the given exporter.
func (s *AnalyzerService) Export(ctx context.Context, exporter Exporter, path string) error {
	history, err := s.history.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	return exporter.Export(path, history)
}

func (s *AnalyzerService) appendHistory(ctx context.Context, result *AnalysisResult) {
	if err := s.history.Append(ctx, result); err != nil {
		s.logger.Error("Failed to append to history", zap.Error(err))
	}
}
