// Package meta extracts EXIF provenance fields from image files for the
// inspect command. Extraction is best effort: files without metadata are
// normal, not an error.
package meta

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bep/imagemeta"
)

// Provenance holds the EXIF fields surfaced for an image file.
type Provenance struct {
	Artist      string
	Copyright   string
	Make        string
	Model       string
	CapturedAt  string
	Description string
}

// wantedTags lists the EXIF tags extraction cares about.
var wantedTags = map[string]bool{
	"Artist":           true,
	"Copyright":        true,
	"Make":             true,
	"Model":            true,
	"DateTimeOriginal": true,
	"DateTime":         true,
	"ImageDescription": true,
}

// Extract parses EXIF metadata from raw image bytes. Returns nil when the
// data carries none of the wanted tags or cannot be parsed.
func Extract(data []byte) *Provenance {
	if len(data) == 0 {
		return nil
	}

	prov := &Provenance{}
	found := false

	err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return wantedTags[ti.Tag]
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			handleTag(prov, ti, &found)
			return nil
		},
	})

	if err != nil || !found {
		return nil
	}
	return prov
}

// ExtractFile reads the file at path and extracts its provenance.
func ExtractFile(path string) (*Provenance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return Extract(data), nil
}

func handleTag(prov *Provenance, ti imagemeta.TagInfo, found *bool) {
	s := tagValueString(ti.Value)
	if s == "" {
		return
	}

	switch ti.Tag {
	case "Artist":
		prov.Artist = s
	case "Copyright":
		prov.Copyright = s
	case "Make":
		prov.Make = s
	case "Model":
		prov.Model = s
	case "DateTimeOriginal":
		prov.CapturedAt = s
	case "DateTime":
		// DateTimeOriginal wins when both are present.
		if prov.CapturedAt == "" {
			prov.CapturedAt = s
		}
	case "ImageDescription":
		prov.Description = s
	default:
		return
	}

	*found = true
}

// tagValueString extracts a string from a tag value, unwrapping the list
// forms some writers produce.
func tagValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
		return ""
	default:
		return ""
	}
}
