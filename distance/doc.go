// Package distance provides dimension-checked distance calculations over
// float64 feature vectors.
//
// # Supported Metrics
//
//   - MetricEuclidean: square root of the summed squared differences
//   - MetricMeanAbsolute: L1 distance divided by the dimension count
//
// Every function validates that both vectors have the same length and
// returns *ErrDimensionMismatch otherwise; vectors are never truncated.
//
// # Usage
//
//	d, err := distance.Euclidean(a, b)
//	mad, err := distance.MeanAbsoluteDeviation(member, centroid)
package distance
