// Package blobstore provides whole-object storage for cache snapshots.
//
// A snapshot is written with a single Put and read with a single Get, so every
// implementation must make Put atomic: a concurrent or later Get observes
// either the previous object or the complete new one.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, temp file + fsync + rename
//   - MemoryStore: in-process map, for tests
//   - Throttled: wraps any store and limits bytes per second
//   - s3.Store: Amazon S3 via the transfer managers
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Put(ctx, name, data) error
//	    Get(ctx, name) ([]byte, error)
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Get must return an error satisfying errors.Is(err, ErrNotFound) for missing
// objects.
package blobstore
