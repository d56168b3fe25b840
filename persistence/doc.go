// Package persistence defines the snapshot format of an LSH cache.
//
// A Snapshot is an explicit, JSON-compatible record assembled from a live
// cache. Its layout is independent of the cache's in-memory structures:
//
//	{
//	  "hasher":            { ...fingerprinter config... },
//	  "num_bands":         10,
//	  "bins":              [ { "<signature>": [id, ...] }, ... ],
//	  "fingerprints":      { "<id>": [v0, v1, ...] },
//	  "id_key_type":       "int" | "str",
//	  "signature_version": 1
//	}
//
// Encoded snapshots may be wrapped in a zstd or lz4 frame. Decode recognises
// both by their frame magic, so uncompressed snapshots remain plain JSON files.
//
// Decode validates the whole record before returning it; a snapshot missing
// a required field is rejected, never partially applied.
package persistence
