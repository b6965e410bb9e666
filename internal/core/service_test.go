package core_test

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/paleotools/fossilscan/internal/adapters/export"
	"github.com/paleotools/fossilscan/internal/adapters/history"
	"github.com/paleotools/fossilscan/internal/core"
)

func newTestService(t *testing.T) *core.AnalyzerService {
	t.Helper()
	return core.NewAnalyzerService(history.NewMemoryHistory(zap.NewNop()), zap.NewNop(), false)
}

// writeImage encodes a uniform test image into dir with the encoder matching ext.
func writeImage(t *testing.T, dir, name string, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

func TestAnalyzeImageSuccess(t *testing.T) {
	svc := newTestService(t)
	path := writeImage(t, t.TempDir(), "fossil.png", 6, 4, color.RGBA{R: 120, G: 120, B: 120, A: 255})

	result := svc.AnalyzeImage(context.Background(), path)

	if result.IsDegraded() {
		t.Fatalf("unexpected degraded result: %s", result.Error)
	}
	if result.ImagePath != path {
		t.Errorf("ImagePath = %q, want %q", result.ImagePath, path)
	}
	if result.Timestamp == "" {
		t.Error("Timestamp is empty")
	}
	if result.Dimensions == nil || result.Dimensions.Width != 6 || result.Dimensions.Height != 4 {
		t.Errorf("Dimensions = %+v, want 6x4", result.Dimensions)
	}
	if result.Properties == nil {
		t.Fatal("Properties missing")
	}
	// A uniform 120-gray image sits in the petrified wood bracket with
	// zero variance.
	if result.Properties.Brightness != 120 {
		t.Errorf("Brightness = %v, want 120", result.Properties.Brightness)
	}
	if result.Classification == nil || result.Classification.PrimaryType != "Petrified Wood" {
		t.Errorf("Classification = %+v, want Petrified Wood", result.Classification)
	}
	if result.Preservation == nil || result.Preservation.QualityRating != "Fair" {
		t.Errorf("Preservation = %+v, want Fair", result.Preservation)
	}
	if result.Detection == nil || result.Detection.Confidence != 0.75 {
		t.Errorf("Detection = %+v, want confidence 0.75", result.Detection)
	}
	if result.Classification.Confidence != 0.68 {
		t.Errorf("Classification.Confidence = %v, want 0.68", result.Classification.Confidence)
	}
	if result.AgeEstimation == nil || result.AgeEstimation.EstimatedAgeMillionYears != "65-230" {
		t.Errorf("AgeEstimation = %+v, want 65-230", result.AgeEstimation)
	}
}

func TestAnalyzeImageMissingPath(t *testing.T) {
	svc := newTestService(t)
	path := filepath.Join(t.TempDir(), "nope.png")

	result := svc.AnalyzeImage(context.Background(), path)

	if !result.IsDegraded() {
		t.Fatal("expected degraded result for missing file")
	}
	if result.ImagePath != path {
		t.Errorf("ImagePath = %q, want %q", result.ImagePath, path)
	}

	// The degraded wire shape carries exactly error and image_path.
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(m) != 2 {
		t.Errorf("degraded record has keys %v, want exactly error and image_path", m)
	}
	if _, ok := m["error"]; !ok {
		t.Error("degraded record missing error key")
	}
	if _, ok := m["image_path"]; !ok {
		t.Error("degraded record missing image_path key")
	}
}

func TestBatchAnalyzeCountsOnlyImages(t *testing.T) {
	svc := newTestService(t)
	dir := t.TempDir()
	writeImage(t, dir, "a.png", 3, 3, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	writeImage(t, dir, "b.JPG", 3, 3, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("field notes"), 0644); err != nil {
		t.Fatalf("failed to write notes: %v", err)
	}

	results := svc.BatchAnalyze(context.Background(), dir)

	if len(results) != 2 {
		t.Fatalf("BatchAnalyze returned %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.IsDegraded() {
			t.Errorf("unexpected degraded result: %s", r.Error)
		}
	}
}

func TestBatchAnalyzeMissingDirectory(t *testing.T) {
	svc := newTestService(t)
	dir := filepath.Join(t.TempDir(), "missing")

	results := svc.BatchAnalyze(context.Background(), dir)

	if len(results) != 1 {
		t.Fatalf("BatchAnalyze returned %d results, want 1", len(results))
	}
	if !results[0].IsDegraded() {
		t.Fatal("expected degraded result for missing directory")
	}
	if !strings.Contains(results[0].Error, "Directory not found") {
		t.Errorf("Error = %q, want directory-not-found message", results[0].Error)
	}
	if results[0].ImagePath != "" {
		t.Errorf("ImagePath = %q, want empty for directory error", results[0].ImagePath)
	}
}

func TestHistoryPreservesInsertionOrder(t *testing.T) {
	svc := newTestService(t)
	dir := t.TempDir()
	first := writeImage(t, dir, "first.png", 2, 2, color.RGBA{R: 50, G: 50, B: 50, A: 255})
	second := filepath.Join(dir, "second.png") // never written, degrades

	svc.AnalyzeImage(context.Background(), first)
	svc.AnalyzeImage(context.Background(), second)

	got, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("History() returned %d entries, want 2", len(got))
	}
	if got[0].ImagePath != first || got[0].IsDegraded() {
		t.Errorf("first entry = %+v, want successful result for %s", got[0], first)
	}
	if got[1].ImagePath != second || !got[1].IsDegraded() {
		t.Errorf("second entry = %+v, want degraded result for %s", got[1], second)
	}
}

func TestExportJSONRoundTrip(t *testing.T) {
	svc := newTestService(t)
	dir := t.TempDir()
	writeImage(t, dir, "ok.png", 4, 4, color.RGBA{R: 160, G: 170, B: 180, A: 255})

	ctx := context.Background()
	svc.AnalyzeImage(ctx, filepath.Join(dir, "ok.png"))
	svc.AnalyzeImage(ctx, filepath.Join(dir, "gone.png"))

	out := filepath.Join(t.TempDir(), "results.json")
	if err := svc.Export(ctx, export.NewJSONExporter(zap.NewNop()), out); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	var reloaded []*core.AnalysisResult
	if err := json.Unmarshal(data, &reloaded); err != nil {
		t.Fatalf("failed to parse export: %v", err)
	}

	want, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if !reflect.DeepEqual(reloaded, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", reloaded, want)
	}
}
