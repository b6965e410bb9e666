package imaging

import "math"

// Detection thresholds. These are fixed so results stay comparable across
// runs; there is no calibration mechanism.
const (
	// mineralizationStdThreshold is the per-channel spatial standard
	// deviation above which color spread counts as mineralization.
	mineralizationStdThreshold = 50.0

	// boneEdgeMeanThreshold is the mean absolute row-to-row grayscale
	// difference above which linear structure counts as visible bone.
	boneEdgeMeanThreshold = 0.3
)

// Brightness returns the mean over every channel sample in the buffer.
func Brightness(b *Buffer) float64 {
	if b.Samples() == 0 {
		return 0
	}
	var sum float64
	for _, v := range b.Pix {
		sum += float64(v)
	}
	return sum / float64(b.Samples())
}

// ColorVariance returns the population variance over every channel sample.
func ColorVariance(b *Buffer) float64 {
	n := b.Samples()
	if n == 0 {
		return 0
	}
	mean := Brightness(b)
	var sum float64
	for _, v := range b.Pix {
		d := float64(v) - mean
		sum += d * d
	}
	return sum / float64(n)
}

// TextureScore is the standard deviation of the channel-averaged grayscale
// grid. Rough, high-contrast surfaces score high; flat ones score near zero.
func TextureScore(b *Buffer) float64 {
	n := b.Width * b.Height
	if n == 0 {
		return 0
	}
	gray := b.grayscale()

	var sum float64
	for _, row := range gray {
		for _, v := range row {
			sum += v
		}
	}
	mean := sum / float64(n)

	var sq float64
	for _, row := range gray {
		for _, v := range row {
			d := v - mean
			sq += d * d
		}
	}
	return math.Sqrt(sq / float64(n))
}

// MineralizationDetected reports whether the spatial standard deviation of
// any single channel exceeds the mineralization threshold.
func MineralizationDetected(b *Buffer) bool {
	n := b.Width * b.Height
	if n == 0 {
		return false
	}

	var sums, sqSums [3]float64
	for i, v := range b.Pix {
		f := float64(v)
		sums[i%3] += f
		sqSums[i%3] += f * f
	}

	maxStd := 0.0
	for c := 0; c < 3; c++ {
		mean := sums[c] / float64(n)
		variance := sqSums[c]/float64(n) - mean*mean
		if variance < 0 {
			variance = 0
		}
		if std := math.Sqrt(variance); std > maxStd {
			maxStd = std
		}
	}
	return maxStd > mineralizationStdThreshold
}

// BoneStructureVisible reports whether the mean absolute first difference of
// the grayscale grid along the vertical axis exceeds the edge threshold.
// Images with fewer than two rows have no difference map and never match.
func BoneStructureVisible(b *Buffer) bool {
	if b.Height < 2 || b.Width == 0 {
		return false
	}
	gray := b.grayscale()

	var sum float64
	for y := 1; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			sum += math.Abs(gray[y][x] - gray[y-1][x])
		}
	}
	mean := sum / float64((b.Height-1)*b.Width)
	return mean > boneEdgeMeanThreshold
}
