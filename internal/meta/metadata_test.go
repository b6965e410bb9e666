package meta

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"
)

func TestExtractEmptyData(t *testing.T) {
	if got := Extract(nil); got != nil {
		t.Errorf("Extract(nil) = %+v, want nil", got)
	}
	if got := Extract([]byte{}); got != nil {
		t.Errorf("Extract(empty) = %+v, want nil", got)
	}
}

func TestExtractGarbageData(t *testing.T) {
	if got := Extract([]byte("not an image at all")); got != nil {
		t.Errorf("Extract(garbage) = %+v, want nil", got)
	}
}

func TestExtractImageWithoutMetadata(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	if got := Extract(buf.Bytes()); got != nil {
		t.Errorf("Extract(plain png) = %+v, want nil", got)
	}
}

func TestExtractFileMissing(t *testing.T) {
	if _, err := ExtractFile(filepath.Join(t.TempDir(), "absent.jpg")); err == nil {
		t.Error("ExtractFile() expected error for missing file")
	}
}

func TestTagValueString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "Museum Scanner", "Museum Scanner"},
		{"string slice", []string{"first", "second"}, "first"},
		{"empty string slice", []string{}, ""},
		{"any slice", []any{"first"}, "first"},
		{"any slice non-string", []any{42}, ""},
		{"unsupported type", 42, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tagValueString(tt.in); got != tt.want {
				t.Errorf("tagValueString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
