// Package fs provides the filesystem seam used by the local blob store.
//
//   - [FileSystem]: the operations the store needs (open, rename, remove, ...)
//   - [LocalFS]: production implementation on top of package os
//   - [FaultyFS]: test wrapper that injects write, sync, close and rename failures
//   - [WriteFileAtomic]: temp file + fsync + rename + directory sync
//
// Snapshots are written with WriteFileAtomic so a reader sees either the old
// file or the complete new one, never a torn write.
//
// The package takes no context.Context. Local filesystem calls are not
// interruptible at the syscall level; remote backends live in blobstore.
package fs
