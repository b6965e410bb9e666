package imaging

import (
	"image"

	disint "github.com/disintegration/imaging"
)

// Buffer is a decoded pixel grid forced to three RGB channels with one byte
// per sample. It exists only for the duration of a single analysis pass.
type Buffer struct {
	Width  int
	Height int
	// Pix holds row-major RGB triples, len = Width*Height*3.
	Pix []uint8
}

// NewBuffer converts any decoded image into a forced-RGB buffer, dropping
// the alpha channel.
func NewBuffer(img image.Image) *Buffer {
	nrgba := disint.Clone(img)
	w := nrgba.Rect.Dx()
	h := nrgba.Rect.Dy()

	buf := &Buffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, 0, w*h*3),
	}
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w; x++ {
			buf.Pix = append(buf.Pix, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return buf
}

// Samples returns the total number of channel samples in the buffer.
func (b *Buffer) Samples() int {
	return len(b.Pix)
}

// At returns the RGB triple at pixel (x, y).
func (b *Buffer) At(x, y int) (r, g, bl uint8) {
	i := (y*b.Width + x) * 3
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// grayscale averages the three channels per pixel into a float grid.
// This is the channel-mean grayscale the texture and edge measures are
// defined over, not a luminance-weighted conversion.
func (b *Buffer) grayscale() [][]float64 {
	gray := make([][]float64, b.Height)
	for y := 0; y < b.Height; y++ {
		gray[y] = make([]float64, b.Width)
		for x := 0; x < b.Width; x++ {
			r, g, bl := b.At(x, y)
			gray[y][x] = (float64(r) + float64(g) + float64(bl)) / 3.0
		}
	}
	return gray
}
