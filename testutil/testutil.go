package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/cohort/distance"
	"github.com/hupe1980/cohort/record"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Rand returns a fresh *rand.Rand seeded with the initial seed.
// The returned generator is not shared with r.
func (r *RNG) Rand() *rand.Rand {
	return rand.New(rand.NewSource(r.seed))
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformEntities generates num entities with features in [0, 1) and labels
// in [0, labels).
func (r *RNG) UniformEntities(num, dim, labels int) []record.Entity {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]record.Entity, num)
	for i := range out {
		f := make([]float64, dim)
		for j := range f {
			f[j] = r.rand.Float64()
		}
		out[i] = record.Entity{Features: f, Label: uint8(r.rand.Intn(labels))}
	}
	return out
}

// Blobs generates perCenter entities around every center with Gaussian noise
// of the given spread. Entities around center c carry label c, in center order.
func (r *RNG) Blobs(centers [][]float64, perCenter int, spread float64) []record.Entity {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]record.Entity, 0, len(centers)*perCenter)
	for c, center := range centers {
		for range perCenter {
			f := make([]float64, len(center))
			for j := range f {
				f[j] = center[j] + r.rand.NormFloat64()*spread
			}
			out = append(out, record.Entity{Features: f, Label: uint8(c)})
		}
	}
	return out
}

// DiscreteEntities generates entities whose features are integers in
// [0, levels). Few levels produce many exact coordinate matches, which is
// what the similarity graph keys on.
func (r *RNG) DiscreteEntities(num, dim, levels, labels int) []record.Entity {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]record.Entity, num)
	for i := range out {
		f := make([]float64, dim)
		for j := range f {
			f[j] = float64(r.rand.Intn(levels))
		}
		out[i] = record.Entity{Features: f, Label: uint8(r.rand.Intn(labels))}
	}
	return out
}

// BruteForceNearest returns the index of the centroid closest to features by
// Euclidean distance, scanning every centroid. Ties go to the lowest index.
// It returns -1 when no centroid has the features' dimensionality.
func BruteForceNearest(features []float64, centroids [][]float64) int {
	best := -1
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		d, err := distance.Euclidean(features, centroid)
		if err != nil {
			continue
		}
		if best == -1 || d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
