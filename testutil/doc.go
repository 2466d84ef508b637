// Package testutil provides testing utilities for cohort.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and generators for synthetic
// entity populations.
//
// # Random Data Generation
//
//	rng := testutil.NewRNG(seed)
//	entities := rng.UniformEntities(100, 4, 2)    // features in [0, 1), labels in [0, 2)
//	blobs := rng.Blobs(centers, 50, 0.1)          // Gaussian blobs around centers
//	grid := rng.DiscreteEntities(100, 6, 3, 2)    // small-integer features, many exact matches
//
// # Ground Truth
//
//	best := testutil.BruteForceNearest(features, centroids)
package testutil
