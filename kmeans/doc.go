// Package kmeans implements k-means clustering over record entities and the
// selection of one representative entity per cluster.
//
// Cluster runs Lloyd's algorithm:
//
//   - centroids start at values drawn independently per dimension from the
//     closed [min, max] range observed in the data
//   - every entity is assigned to its nearest centroid by Euclidean distance,
//     ties going to the lowest centroid index
//   - non-empty clusters move to the mean of their members; an empty cluster
//     copies the centroid of the largest cluster (CloneLargest) unless
//     KeepPrevious is selected
//   - iteration stops when no centroid changed or the budget is spent
//
// Randomness comes only from the *rand.Rand passed to Cluster, so a fixed
// seed reproduces the exact centroid trajectory.
//
// SelectRepresentatives picks, per cluster, the member with the smallest mean
// absolute deviation from the cluster centroid.
package kmeans
