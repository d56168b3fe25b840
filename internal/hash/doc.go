// Package hash provides the deterministic hashing used to key LSH buckets.
//
// # Band signatures
//
// A band signature is a 64-bit FNV-1a digest over the little-endian bytes of
// the band's values, prefixed with the band length and mixed with a fixed
// seed. The digest depends only on the ordered values, never on process state,
// so signatures survive restarts and snapshot round-trips.
//
// Persisted snapshots key their buckets by signature. Changing the algorithm,
// the seed, or the byte layout invalidates every snapshot written before, so
// any such change must bump SignatureVersion.
//
// # Usage
//
//	sig := hash.BandSignature(fingerprint[0:4])
package hash
