package kmeans

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/hupe1980/cohort/core"
	"github.com/hupe1980/cohort/distance"
	"github.com/hupe1980/cohort/record"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrInvalidK is returned when k is zero or larger than the number of entities.
	ErrInvalidK = fmt.Errorf("%w: k must be in [1, len(entities)]", core.ErrInvalidInput)

	// ErrInvalidIterations is returned for a negative iteration budget.
	ErrInvalidIterations = fmt.Errorf("%w: max iterations must not be negative", core.ErrInvalidInput)

	// ErrNilRand is returned when no random source is supplied.
	ErrNilRand = fmt.Errorf("%w: random source is nil", core.ErrInvalidInput)

	// ErrInitialCentroids is returned when WithInitialCentroids does not match k or the dimensionality.
	ErrInitialCentroids = fmt.Errorf("%w: initial centroids do not match k or dimensionality", core.ErrInvalidInput)
)

var (
	// assignDistance places entities in the cluster of their nearest centroid.
	assignDistance = mustDistance(distance.MetricEuclidean)

	// deviation ranks cluster members when selecting representatives.
	deviation = mustDistance(distance.MetricMeanAbsolute)
)

func mustDistance(m distance.Metric) distance.Func {
	fn, err := distance.Provider(m)
	if err != nil {
		panic(err)
	}
	return fn
}

// EmptyClusterPolicy decides what happens to the centroid of a cluster that
// received no members in an assignment pass.
type EmptyClusterPolicy int

const (
	// CloneLargest copies the centroid of the cluster with the most members
	// (lowest index on ties). This is the default.
	CloneLargest EmptyClusterPolicy = iota
	// KeepPrevious leaves the empty cluster's centroid where it was.
	KeepPrevious
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case CloneLargest:
		return "clone-largest"
	case KeepPrevious:
		return "keep-previous"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// ParseEmptyClusterPolicy parses the String form of a policy.
func ParseEmptyClusterPolicy(s string) (EmptyClusterPolicy, error) {
	switch s {
	case "", "clone-largest":
		return CloneLargest, nil
	case "keep-previous":
		return KeepPrevious, nil
	default:
		return 0, fmt.Errorf("%w: unknown empty cluster policy %q", core.ErrInvalidInput, s)
	}
}

type options struct {
	policy    EmptyClusterPolicy
	tolerance float64
	initial   [][]float64
}

// Option configures Cluster.
type Option func(*options)

// WithEmptyClusterPolicy selects the empty-cluster policy.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithTolerance treats a centroid coordinate as unchanged when it moved by at
// most eps. The default of 0 requires exact equality for convergence.
func WithTolerance(eps float64) Option {
	return func(o *options) {
		if eps < 0 {
			eps = 0
		}
		o.tolerance = eps
	}
}

// WithInitialCentroids skips random initialization and starts from a copy of
// the given centroids. The random source is not consumed.
func WithInitialCentroids(centroids [][]float64) Option {
	return func(o *options) {
		o.initial = centroids
	}
}

// Result is the outcome of a clustering run.
type Result struct {
	// Centroids holds exactly k centroids.
	Centroids [][]float64
	// Assignments maps each entity index to its nearest centroid in Centroids.
	Assignments []int
	// Sizes holds the member count of each cluster under Assignments.
	Sizes []int
	// Iterations is the number of assignment/update passes performed.
	Iterations int
	// Converged is true when the last update left every centroid unchanged.
	Converged bool
	// Inertia is the sum of squared distances from entities to their centroid.
	Inertia float64
}

// Cluster partitions entities into k clusters and returns the final centroids.
//
// entities must be non-empty and of equal dimensionality, 1 <= k <= len(entities),
// maxIterations >= 0 and rng non-nil. With maxIterations == 0 the initial
// centroids are returned unchanged.
func Cluster(ctx context.Context, k int, entities []record.Entity, maxIterations int, rng *rand.Rand, optFns ...Option) (*Result, error) {
	o := options{policy: CloneLargest}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	if len(entities) == 0 {
		return nil, record.ErrEmptyDataset
	}
	if k < 1 || k > len(entities) {
		return nil, fmt.Errorf("k=%d, entities=%d: %w", k, len(entities), ErrInvalidK)
	}
	if maxIterations < 0 {
		return nil, fmt.Errorf("max iterations=%d: %w", maxIterations, ErrInvalidIterations)
	}
	if err := record.ValidateDimensions(entities); err != nil {
		return nil, err
	}

	dim := len(entities[0].Features)

	var centroids [][]float64
	if o.initial != nil {
		if len(o.initial) != k {
			return nil, fmt.Errorf("got %d initial centroids for k=%d: %w", len(o.initial), k, ErrInitialCentroids)
		}
		centroids = make([][]float64, k)
		for i, c := range o.initial {
			if len(c) != dim {
				return nil, fmt.Errorf("initial centroid %d: %w", i, ErrInitialCentroids)
			}
			centroids[i] = slices.Clone(c)
		}
	} else {
		if rng == nil {
			return nil, ErrNilRand
		}
		centroids = initCentroids(k, entities, rng)
	}

	n := len(entities)
	assignments := make([]int, n)
	sizes := make([]int, k)
	sums := make([][]float64, k)
	for i := range sums {
		sums[i] = make([]float64, dim)
	}

	res := &Result{}
	for iter := 0; iter < maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Assignment step
		if err := assignInto(assignments, entities, centroids); err != nil {
			return nil, err
		}
		res.Iterations++

		// Update step
		clear(sizes)
		for i := range sums {
			clear(sums[i])
		}
		for i, e := range entities {
			c := assignments[i]
			floats.Add(sums[c], e.Features)
			sizes[c]++
		}

		changed := false
		for j := 0; j < k; j++ {
			if sizes[j] == 0 {
				continue
			}
			floats.Scale(1/float64(sizes[j]), sums[j])
			if moved(centroids[j], sums[j], o.tolerance) {
				changed = true
			}
			copy(centroids[j], sums[j])
		}

		if o.policy == CloneLargest {
			largest := largestCluster(sizes)
			for j := 0; j < k; j++ {
				if sizes[j] != 0 {
					continue
				}
				if moved(centroids[j], centroids[largest], o.tolerance) {
					changed = true
				}
				copy(centroids[j], centroids[largest])
			}
		}

		if !changed {
			res.Converged = true
			break
		}
	}

	// Final assignment against the returned centroids.
	if err := assignInto(assignments, entities, centroids); err != nil {
		return nil, err
	}
	clear(sizes)
	for i, e := range entities {
		sizes[assignments[i]]++
		d, _ := assignDistance(e.Features, centroids[assignments[i]])
		res.Inertia += d * d
	}

	res.Centroids = centroids
	res.Assignments = assignments
	res.Sizes = slices.Clone(sizes)
	return res, nil
}

// initCentroids draws every coordinate of every centroid independently from
// the closed range observed in that dimension.
func initCentroids(k int, entities []record.Entity, rng *rand.Rand) [][]float64 {
	dim := len(entities[0].Features)
	lo := slices.Clone(entities[0].Features)
	hi := slices.Clone(entities[0].Features)
	for _, e := range entities[1:] {
		for j, v := range e.Features {
			lo[j] = math.Min(lo[j], v)
			hi[j] = math.Max(hi[j], v)
		}
	}

	centroids := make([][]float64, k)
	for i := range centroids {
		c := make([]float64, dim)
		for j := range c {
			c[j] = lo[j] + uniformClosed(rng)*(hi[j]-lo[j])
		}
		centroids[i] = c
	}
	return centroids
}

const closedSteps = 1 << 53

// uniformClosed returns a value uniformly distributed on [0, 1].
func uniformClosed(rng *rand.Rand) float64 {
	return float64(rng.Int63n(closedSteps+1)) / closedSteps
}

func moved(old, updated []float64, tolerance float64) bool {
	if tolerance == 0 {
		return !floats.Equal(old, updated)
	}
	return !floats.EqualApprox(old, updated, tolerance)
}

// largestCluster returns the index of the cluster with the most members,
// the lowest index winning ties.
func largestCluster(sizes []int) int {
	best := 0
	for j := 1; j < len(sizes); j++ {
		if sizes[j] > sizes[best] {
			best = j
		}
	}
	return best
}

// Assign returns, for each entity, the index of its nearest centroid.
// Ties go to the lowest centroid index.
func Assign(entities []record.Entity, centroids [][]float64) ([]int, error) {
	if len(centroids) == 0 {
		return nil, fmt.Errorf("%w: no centroids", core.ErrInvalidInput)
	}
	out := make([]int, len(entities))
	if err := assignInto(out, entities, centroids); err != nil {
		return nil, err
	}
	return out, nil
}

func assignInto(dst []int, entities []record.Entity, centroids [][]float64) error {
	for i, e := range entities {
		best, _, err := Nearest(e.Features, centroids)
		if err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
		dst[i] = best
	}
	return nil
}

// Nearest finds the closest centroid for a feature vector and its distance.
// Ties go to the lowest centroid index.
func Nearest(features []float64, centroids [][]float64) (int, float64, error) {
	bestCluster := -1
	minDist := math.Inf(1)

	for j, center := range centroids {
		d, err := assignDistance(features, center)
		if err != nil {
			return -1, 0, err
		}
		if d < minDist || bestCluster == -1 {
			minDist = d
			bestCluster = j
		}
	}

	if bestCluster == -1 {
		return -1, 0, fmt.Errorf("%w: no centroids", core.ErrInvalidInput)
	}
	return bestCluster, minDist, nil
}

// Group collects entities into k clusters according to assignments,
// preserving load order within each cluster.
func Group(entities []record.Entity, assignments []int, k int) ([][]record.Entity, error) {
	if len(entities) != len(assignments) {
		return nil, fmt.Errorf("%w: %d entities but %d assignments", core.ErrInvalidInput, len(entities), len(assignments))
	}
	clusters := make([][]record.Entity, k)
	for i, c := range assignments {
		if c < 0 || c >= k {
			return nil, fmt.Errorf("%w: assignment %d of entity %d out of range", core.ErrInvalidInput, c, i)
		}
		clusters[c] = append(clusters[c], entities[i])
	}
	return clusters, nil
}
