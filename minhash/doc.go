// Package minhash computes MinHash fingerprints of documents.
//
// A Hasher holds NumSeeds murmur3 seeds. A document is cut into overlapping
// byte n-grams (shingles); component i of its fingerprint is the minimum
// murmur3 hash of any shingle under seed i. The fraction of equal components
// between two fingerprints estimates the Jaccard similarity of the two
// shingle sets.
//
//	h, _ := minhash.New(128, minhash.WithRandomState(42))
//	fp := h.Fingerprint([]byte("the quick brown fox"))
//	sim := h.Jaccard(fp, h.Fingerprint([]byte("the quick brown dog")))
//
// The seeds and the n-gram width fully determine the output, so a Hasher
// rebuilt from ExportConfig produces identical fingerprints.
package minhash
