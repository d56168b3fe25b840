package band

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/lshdedup/internal/hash"
)

// ConfigError reports an invalid seed/band combination.
type ConfigError struct {
	NumSeeds int
	NumBands int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("number of seeds (%d) must be divisible by the number of bands (%d)", e.NumSeeds, e.NumBands)
}

// Index maps, per band, bucket signatures to the set of documents in that bucket.
type Index struct {
	numSeeds  int
	numBands  int
	bandWidth int
	bins      []map[uint64]*roaring.Bitmap
}

// New creates an empty index for fingerprints of numSeeds values split into numBands bands.
func New(numSeeds, numBands int) (*Index, error) {
	if numSeeds <= 0 || numBands <= 0 || numSeeds%numBands != 0 {
		return nil, &ConfigError{NumSeeds: numSeeds, NumBands: numBands}
	}

	ix := &Index{
		numSeeds:  numSeeds,
		numBands:  numBands,
		bandWidth: numSeeds / numBands,
	}
	ix.Clear()

	return ix, nil
}

// NumBands returns the number of bands.
func (ix *Index) NumBands() int { return ix.numBands }

// NumSeeds returns the expected fingerprint length.
func (ix *Index) NumSeeds() int { return ix.numSeeds }

// BandWidth returns the number of values per band.
func (ix *Index) BandWidth() int { return ix.bandWidth }

// Bands splits fp into NumBands contiguous windows, in order.
//
// A fingerprint of the configured length yields equal-width windows. Any other
// length is partitioned into near-equal windows, the first len(fp)%NumBands of
// them one value longer. The returned slices alias fp.
func (ix *Index) Bands(fp []uint64) [][]uint64 {
	out := make([][]uint64, ix.numBands)

	if len(fp) == ix.numSeeds {
		for b := range out {
			lo := b * ix.bandWidth
			out[b] = fp[lo : lo+ix.bandWidth : lo+ix.bandWidth]
		}
		return out
	}

	base, extra := len(fp)/ix.numBands, len(fp)%ix.numBands
	lo := 0
	for b := range out {
		n := base
		if b < extra {
			n++
		}
		out[b] = fp[lo : lo+n : lo+n]
		lo += n
	}

	return out
}

// Signatures returns the bucket signature of every band of fp.
func (ix *Index) Signatures(fp []uint64) []uint64 {
	bands := ix.Bands(fp)
	sigs := make([]uint64, len(bands))
	for b, values := range bands {
		sigs[b] = hash.BandSignature(values)
	}
	return sigs
}

// Insert adds doc to the bucket of every band of fp. Re-inserting is a no-op.
func (ix *Index) Insert(doc uint32, fp []uint64) {
	for b, sig := range ix.Signatures(fp) {
		ix.add(b, sig, doc)
	}
}

// Restore adds docs to bucket (band, sig) directly. Used when loading snapshots.
func (ix *Index) Restore(band int, sig uint64, docs ...uint32) error {
	if band < 0 || band >= ix.numBands {
		return fmt.Errorf("band %d out of range [0, %d)", band, ix.numBands)
	}
	for _, d := range docs {
		ix.add(band, sig, d)
	}
	return nil
}

func (ix *Index) add(band int, sig uint64, doc uint32) {
	bm, ok := ix.bins[band][sig]
	if !ok {
		bm = roaring.New()
		ix.bins[band][sig] = bm
	}
	bm.Add(doc)
}

// Members returns the documents in bucket (band, sig).
// A hit returns the bitmap owned by the index, which must not be modified.
// A miss returns a new empty bitmap.
func (ix *Index) Members(band int, sig uint64) *roaring.Bitmap {
	if band < 0 || band >= ix.numBands {
		return roaring.New()
	}
	if bm, ok := ix.bins[band][sig]; ok {
		return bm
	}
	return roaring.New()
}

// Candidates returns the union of bucket memberships across all bands of fp.
func (ix *Index) Candidates(fp []uint64) *roaring.Bitmap {
	sigs := ix.Signatures(fp)

	hits := make([]*roaring.Bitmap, 0, len(sigs))
	for b, sig := range sigs {
		if bm, ok := ix.bins[b][sig]; ok {
			hits = append(hits, bm)
		}
	}

	switch len(hits) {
	case 0:
		return roaring.New()
	case 1:
		return hits[0].Clone()
	default:
		return roaring.FastOr(hits...)
	}
}

// Buckets iterates over the non-empty buckets of one band.
func (ix *Index) Buckets(band int) iter.Seq2[uint64, *roaring.Bitmap] {
	return func(yield func(uint64, *roaring.Bitmap) bool) {
		if band < 0 || band >= ix.numBands {
			return
		}
		for sig, bm := range ix.bins[band] {
			if !yield(sig, bm) {
				return
			}
		}
	}
}

// Len returns the total number of non-empty buckets across all bands.
func (ix *Index) Len() int {
	n := 0
	for _, bin := range ix.bins {
		n += len(bin)
	}
	return n
}

// Clear empties every band.
func (ix *Index) Clear() {
	ix.bins = make([]map[uint64]*roaring.Bitmap, ix.numBands)
	for b := range ix.bins {
		ix.bins[b] = make(map[uint64]*roaring.Bitmap)
	}
}
