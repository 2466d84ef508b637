package graph

import (
	"fmt"
	"math"

	"github.com/hupe1980/cohort/core"
	"github.com/hupe1980/cohort/distance"
	"github.com/hupe1980/cohort/internal/conv"
	"github.com/hupe1980/cohort/record"
)

const (
	// DefaultThreshold is the minimum similarity for two entities to be joined.
	DefaultThreshold = 0.5
	// DefaultEpsilon is the per-dimension tolerance below which two values coincide.
	DefaultEpsilon = 0.001
)

// ErrInvalidEpsilon is returned for a non-positive or NaN epsilon.
var ErrInvalidEpsilon = fmt.Errorf("%w: epsilon must be positive", core.ErrInvalidInput)

type buildOptions struct {
	threshold float64
	epsilon   float64
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

// WithThreshold sets the minimum similarity for an edge.
func WithThreshold(t float64) BuildOption {
	return func(o *buildOptions) {
		o.threshold = t
	}
}

// WithEpsilon sets the per-dimension coincidence tolerance.
func WithEpsilon(eps float64) BuildOption {
	return func(o *buildOptions) {
		o.epsilon = eps
	}
}

// Similarity returns the fraction of dimensions on which a and b differ by
// less than epsilon. Zero-dimensional vectors have similarity 0.
func Similarity(a, b []float64, epsilon float64) (float64, error) {
	if err := distance.CheckDimensions(a, b); err != nil {
		return 0, err
	}
	if len(a) == 0 {
		return 0, nil
	}
	matches := 0
	for i := range a {
		if math.Abs(a[i]-b[i]) < epsilon {
			matches++
		}
	}
	return float64(matches) / float64(len(a)), nil
}

// Build joins every pair of entities whose similarity reaches the threshold.
// Node i of the returned graph is entities[i].
func Build(entities []record.Entity, optFns ...BuildOption) (*Graph, error) {
	opts := buildOptions{
		threshold: DefaultThreshold,
		epsilon:   DefaultEpsilon,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if math.IsNaN(opts.epsilon) || opts.epsilon <= 0 {
		return nil, ErrInvalidEpsilon
	}
	if math.IsNaN(opts.threshold) {
		return nil, fmt.Errorf("%w: threshold is NaN", core.ErrInvalidInput)
	}
	if err := conv.CheckEntityCount(len(entities)); err != nil {
		return nil, err
	}
	if err := record.ValidateDimensions(entities); err != nil {
		return nil, err
	}

	g := New(len(entities))
	for i := range entities {
		for j := i + 1; j < len(entities); j++ {
			sim, err := Similarity(entities[i].Features, entities[j].Features, opts.epsilon)
			if err != nil {
				return nil, fmt.Errorf("entities %d and %d: %w", i, j, err)
			}
			if sim >= opts.threshold {
				g.adj[i].Add(uint32(j))
				g.adj[j].Add(uint32(i))
			}
		}
	}
	return g, nil
}
