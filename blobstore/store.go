package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

// BlobStore reads and writes named immutable blobs.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
	// List returns the sorted names that start with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a stored blob.
type Blob interface {
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
	// ReadAt reads len(p) bytes starting at off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange returns a reader for length bytes starting at off.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
}

// Mappable is implemented by blobs backed by memory the process can read
// directly.
type Mappable interface {
	// Bytes returns the blob contents. The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// Downloader is implemented by stores that fetch a whole blob more
// efficiently than a single ranged read.
type Downloader interface {
	Download(ctx context.Context, name string) ([]byte, error)
}

// OpenReader returns a sequential reader over the whole blob. The caller
// must close it.
func OpenReader(ctx context.Context, store BlobStore, name string) (io.ReadCloser, error) {
	if d, ok := store.(Downloader); ok {
		data, err := d.Download(ctx, name)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		return &blobReader{Reader: bytes.NewReader(data), blob: b}, nil
	}

	if b.Size() == 0 {
		return &blobReader{Reader: bytes.NewReader(nil), blob: b}, nil
	}
	rc, err := b.ReadRange(ctx, 0, b.Size())
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return &blobReader{Reader: rc, body: rc, blob: b}, nil
}

type blobReader struct {
	io.Reader
	body io.Closer
	blob Blob
}

func (r *blobReader) Close() error {
	var err error
	if r.body != nil {
		err = r.body.Close()
	}
	if cerr := r.blob.Close(); err == nil {
		err = cerr
	}
	return err
}

// readAt implements Blob.ReadAt over an in-memory slice.
func readAt(data []byte, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off < 0 || off >= int64(len(data)) {
		return 0, io.EOF
	}
	n := copy(p, data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// readRange implements Blob.ReadRange over an in-memory slice.
func readRange(data []byte, off, length int64) (io.ReadCloser, error) {
	if off < 0 || off >= int64(len(data)) {
		return nil, io.EOF
	}
	end := min(off+length, int64(len(data)))
	return io.NopCloser(bytes.NewReader(data[off:end])), nil
}
