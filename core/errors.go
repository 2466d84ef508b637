package core

import "errors"

// ErrInvalidInput is the root of every caller-side input error: empty
// datasets, out-of-range parameters and vectors of the wrong length.
//
// Packages return more specific errors that satisfy errors.Is(err, ErrInvalidInput).
var ErrInvalidInput = errors.New("invalid input")
