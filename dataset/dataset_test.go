package dataset

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hupe1980/cohort/blobstore"
	"github.com/hupe1980/cohort/core"
	"github.com/hupe1980/cohort/record"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const patients = `age,bmi,glucose,diagnosis
61,27.5,148,1
45, 31.2 ,85,0
33,22.0,183,1
`

func TestReadTable(t *testing.T) {
	table, err := ReadTable(strings.NewReader(patients))
	require.NoError(t, err)

	assert.Equal(t, []string{"age", "bmi", "glucose"}, table.Features)
	assert.Equal(t, "diagnosis", table.Label)

	ds := table.Dataset
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, 3, ds.Dim())
	assert.Equal(t, []float64{45, 31.2, 85}, ds.At(1).Features)
	assert.Equal(t, []uint8{1, 0, 1}, ds.Labels())
}

func TestRead_Delimiter(t *testing.T) {
	ds, err := Read(strings.NewReader("x;y;label\n1;2;3\n"), WithDelimiter(';'))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, ds.At(0).Features)
	assert.Equal(t, uint8(3), ds.At(0).Label)
}

func TestRead_LabelOnly(t *testing.T) {
	ds, err := Read(strings.NewReader("label\n0\n1\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Dim())
	assert.Equal(t, []uint8{0, 1}, ds.Labels())
}

func TestRead_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"Text", "a,label\nx,1\n", 2, 1},
		{"EmptyCell", "a,b,label\n1,,1\n", 2, 2},
		{"NaNFeature", "a,label\n1,0\nNaN,1\n", 3, 1},
		{"Inf", "a,label\n+Inf,1\n", 2, 1},
		{"NegativeLabel", "a,label\n1,-1\n", 2, 2},
		{"LabelTooLarge", "a,label\n1,256\n", 2, 2},
		{"FractionalLabel", "a,label\n1,1.5\n", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.ErrorIs(t, err, core.ErrInvalidInput)

			var mr *ErrMalformedRecord
			require.True(t, errors.As(err, &mr))
			assert.Equal(t, tt.line, mr.Line)
			assert.Equal(t, tt.column, mr.Column)
		})
	}
}

func TestRead_RaggedRow(t *testing.T) {
	_, err := Read(strings.NewReader("a,b,label\n1,2,0\n1,0\n"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, record.ErrEmptyDataset)

	_, err = Read(strings.NewReader("a,label\n"))
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func lz4Bytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, store.Put(ctx, "p.csv", []byte(patients)))
	require.NoError(t, store.Put(ctx, "p.csv.zst", zstdBytes(t, []byte(patients))))
	require.NoError(t, store.Put(ctx, "p.csv.lz4", lz4Bytes(t, []byte(patients))))

	want, err := Read(strings.NewReader(patients))
	require.NoError(t, err)

	for _, name := range []string{"p.csv", "p.csv.zst", "p.csv.lz4"} {
		t.Run(name, func(t *testing.T) {
			ds, err := Load(ctx, store, name)
			require.NoError(t, err)
			assert.Equal(t, want.Entities(), ds.Entities())
		})
	}
}

func TestLoad_LocalStore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(ctx, "p.csv", []byte(patients)))

	table, err := LoadTable(ctx, store, "p.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, table.Dataset.Len())
	assert.Equal(t, "diagnosis", table.Label)
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	_, err := Load(ctx, store, "missing.csv")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "bad.csv.zst", []byte("not zstd")))
	_, err = Load(ctx, store, "bad.csv.zst")
	assert.Error(t, err)

	require.NoError(t, store.Put(ctx, "bad.csv", []byte("a,label\nx,0\n")))
	_, err = Load(ctx, store, "bad.csv")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCompressionFor(t *testing.T) {
	assert.Equal(t, CompressionZstd, CompressionFor("a/b.csv.zst"))
	assert.Equal(t, CompressionLZ4, CompressionFor("b.lz4"))
	assert.Equal(t, CompressionNone, CompressionFor("b.csv"))
	assert.Equal(t, "zstd", CompressionZstd.String())
	assert.Equal(t, "Unknown(9)", Compression(9).String())
}
