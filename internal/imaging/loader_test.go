package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage writes a PNG with the given fill color and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestLoadDecodesImage(t *testing.T) {
	path := createTestImage(t, 4, 3, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	buf, frame, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if frame == nil {
		t.Fatal("Load() returned nil frame")
	}
	if buf.Width != 4 || buf.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 4x3", buf.Width, buf.Height)
	}
	if got, want := buf.Samples(), 4*3*3; got != want {
		t.Errorf("Samples() = %d, want %d", got, want)
	}

	r, g, b := buf.At(0, 0)
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("At(0,0) = (%d,%d,%d), want (10,20,30)", r, g, b)
	}
}

func TestLoadForcesThreeChannels(t *testing.T) {
	// A translucent source still decodes to exactly three channels per pixel.
	path := createTestImage(t, 2, 2, color.RGBA{R: 200, G: 100, B: 50, A: 128})

	buf, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := buf.Samples(), 2*2*3; got != want {
		t.Errorf("Samples() = %d, want %d", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.png"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestLoadInvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.png")
	if err := os.WriteFile(path, []byte("definitely not pixels"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, _, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error for invalid image data")
	}
}
