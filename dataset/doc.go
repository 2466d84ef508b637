// Package dataset loads record datasets from CSV.
//
// The first row is a header. Every column but the last holds a numeric
// feature; the last holds the outcome label, an integer in [0, 255].
// Cells are trimmed of surrounding whitespace. Names ending in .zst or
// .lz4 are decompressed transparently by Load.
//
// Any cell that cannot be parsed yields an *ErrMalformedRecord carrying the
// line and column; errors.Is(err, ErrMalformed) holds for it.
package dataset
