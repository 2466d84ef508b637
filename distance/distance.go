package distance

import (
	"fmt"

	"github.com/hupe1980/cohort/core"
	"gonum.org/v1/gonum/floats"
)

// ErrDimensionMismatch indicates that two vectors have different lengths.
//
// It satisfies errors.Is(err, core.ErrInvalidInput).
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return core.ErrInvalidInput }

// CheckDimensions returns *ErrDimensionMismatch if a and b differ in length.
func CheckDimensions(a, b []float64) error {
	if len(a) != len(b) {
		return &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}
	return nil
}

// Euclidean returns the Euclidean (L2) distance between a and b.
func Euclidean(a, b []float64) (float64, error) {
	if err := CheckDimensions(a, b); err != nil {
		return 0, err
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, 2), nil
}

// MeanAbsoluteDeviation returns the L1 distance between a and b divided by
// the number of dimensions. Zero-length vectors have a deviation of 0.
func MeanAbsoluteDeviation(a, b []float64) (float64, error) {
	if err := CheckDimensions(a, b); err != nil {
		return 0, err
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, 1) / float64(len(a)), nil
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricMeanAbsolute
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricMeanAbsolute:
		return "MeanAbsolute"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) (float64, error)

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricMeanAbsolute:
		return MeanAbsoluteDeviation, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
