// Package blobstore provides the storage abstraction that datasets are read
// from and reports are written to.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, memory-mapped reads
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3, parallel ranged downloads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
// Implement BlobStore to read datasets from another backend:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Stores that can fetch a whole object faster than a single ranged read may
// also implement Downloader; OpenReader prefers it.
package blobstore
