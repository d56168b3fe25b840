package lshdedup

import "github.com/hupe1980/lshdedup/internal/docid"

// DocID is the set of document id types a Cache can be keyed by.
type DocID = docid.ID

// Fingerprint is a fixed-length signature of a document. Position i of two
// fingerprints from the same fingerprinter is comparable.
type Fingerprint = []uint64

// Fingerprinter turns documents into fingerprints and estimates similarity
// between them. minhash.Hasher is the standard implementation.
type Fingerprinter interface {
	// Fingerprint returns the fingerprint of doc. It must be deterministic and
	// safe for concurrent use.
	Fingerprint(doc []byte) Fingerprint
	// Jaccard estimates the Jaccard similarity of the documents behind a and b.
	Jaccard(a, b Fingerprint) float64
	// NumSeeds is the fingerprint length. It never changes.
	NumSeeds() int
	// ResetCache drops memoized fingerprints.
	ResetCache()
	// ExportConfig returns a JSON document from which a FingerprinterFactory
	// rebuilds an equivalent fingerprinter.
	ExportConfig() ([]byte, error)
}

// FingerprinterFactory rebuilds a Fingerprinter from ExportConfig output.
type FingerprinterFactory func(config []byte) (Fingerprinter, error)

// Document pairs content with the id it is registered under.
type Document[ID DocID] struct {
	ID      ID
	Content []byte
}

// Pair is an unordered pair of candidate duplicates with A < B.
type Pair[ID DocID] struct {
	A ID
	B ID
}
