package dataset

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/hupe1980/cohort/blobstore"
	"github.com/hupe1980/cohort/record"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a stored dataset is compressed.
type Compression int

const (
	// CompressionNone reads the blob as plain CSV.
	CompressionNone Compression = iota
	// CompressionZstd decodes a zstd stream.
	CompressionZstd
	// CompressionLZ4 decodes an LZ4 frame.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// CompressionFor picks the compression from the file extension.
func CompressionFor(name string) Compression {
	switch path.Ext(name) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Load reads the named dataset from store.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...ReadOption) (*record.Dataset, error) {
	t, err := LoadTable(ctx, store, name, optFns...)
	if err != nil {
		return nil, err
	}
	return t.Dataset, nil
}

// LoadTable reads the named dataset from store and keeps the header names.
func LoadTable(ctx context.Context, store blobstore.BlobStore, name string, optFns ...ReadOption) (*Table, error) {
	rc, err := blobstore.OpenReader(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	r, closeFn, err := decompress(rc, CompressionFor(name))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}
	defer closeFn()

	t, err := ReadTable(r, optFns...)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return t, nil
}

func decompress(r io.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	case CompressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	default:
		return r, func() {}, nil
	}
}
