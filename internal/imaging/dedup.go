package imaging

import (
	"image"
	"sync"

	"github.com/corona10/goimagehash"
)

// dedupDistance is the maximum Hamming distance between two dHash values
// below which images are considered perceptually identical.
const dedupDistance = 10

// DedupFilter skips perceptually identical frames during batch analysis.
// It is safe for concurrent use.
type DedupFilter struct {
	mu     sync.Mutex
	hashes []*goimagehash.ImageHash
}

// NewDedupFilter returns an empty filter scoped to one batch run.
func NewDedupFilter() *DedupFilter {
	return &DedupFilter{}
}

// Seen returns true if img is perceptually identical to a previously accepted
// frame. If hashing fails the frame is accepted; a hash failure must never
// drop an analyzable image. Accepted frames have their hash stored for
// future comparisons.
func (d *DedupFilter) Seen(img image.Image) bool {
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, h := range d.hashes {
		dist, err := hash.Distance(h)
		if err == nil && dist < dedupDistance {
			return true
		}
	}

	d.hashes = append(d.hashes, hash)
	return false
}
