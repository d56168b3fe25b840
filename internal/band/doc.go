// Package band implements the banded bucket index behind the LSH cache.
//
// A fingerprint of NumSeeds values is cut into NumBands contiguous windows of
// BandWidth values each. Every window is hashed to a bucket signature, and the
// document's dense index is added to that bucket's bitmap. Two documents that
// agree on all values of any one window share a bucket and become candidates.
//
// Bucket members are dense uint32 indices held in Roaring bitmaps; mapping
// them back to caller ids is the job of the docid package.
//
// The index holds no locks. Callers serialize mutation.
package band
