package imaging

import (
	"fmt"
	"image"

	disint "github.com/disintegration/imaging"
)

// Load decodes the image file at path and returns it as a forced-RGB buffer
// together with the decoded frame. The frame is kept around for perceptual
// hashing in batch mode; everything else works off the buffer.
//
// Supported formats are JPEG, PNG, GIF, BMP and TIFF.
func Load(path string) (*Buffer, image.Image, error) {
	img, err := disint.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return NewBuffer(img), img, nil
}
