// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("dedup/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = cache.Save(ctx, store, "corpus.json")
//
// # Features
//
//   - Multipart uploads for large snapshots (transfer manager)
//   - Parallel ranged downloads (transfer manager)
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
