// Package lshdedup finds near-duplicate documents with locality-sensitive hashing.
//
// Documents are reduced to fixed-length fingerprints by a Fingerprinter
// (minhash.Hasher by default). Each fingerprint is split into bands and every
// band is hashed into a bucket. Documents that share at least one bucket are
// candidate duplicates. Candidates can optionally be re-scored with the exact
// Jaccard estimate of their stored fingerprints.
//
// # Quick Start
//
//	hasher, _ := minhash.New(100)
//	c, _ := lshdedup.New[int](hasher, lshdedup.WithNumBands(10))
//
//	_ = c.Update([]byte("the quick brown fox"), 1)
//	_ = c.Update([]byte("the quick brown fox!"), 2)
//
//	pairs, _ := c.GetAllDuplicates(lshdedup.WithMinJaccard(0.8))
//	id := 1
//	ids, _ := c.GetDuplicatesOf(nil, &id)
//	dup, _ := c.IsDuplicate([]byte("the quick brown fox?"), nil)
//
// # Choosing Bands
//
// With b bands of width r, two documents with Jaccard similarity s become
// candidates with probability 1-(1-s^r)^b. More bands favour recall, wider
// bands favour precision. The number of bands must divide the fingerprint
// length.
//
// # Persistence
//
// The full state can be written to any blobstore.BlobStore:
//
//	_ = c.Save(ctx, blobstore.NewLocalStore("./data"), "cache.json",
//	    lshdedup.WithCompression(persistence.CompressionZstd))
//	c, _ = lshdedup.Load[int](ctx, blobstore.NewLocalStore("./data"), "cache.json")
//
// Snapshots are JSON documents, optionally wrapped in a zstd or lz4 frame.
// Local saves are atomic. S3 and MinIO backends live in blobstore/s3 and
// blobstore/minio.
//
// # Concurrency
//
// A Cache has a single writer. Queries may run concurrently with each other
// but not with Update, AddFingerprint, UpdateBatch or Clear.
package lshdedup
