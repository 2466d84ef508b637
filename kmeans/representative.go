package kmeans

import (
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/cohort/core"
	"github.com/hupe1980/cohort/record"
)

// Representative is the member of a cluster closest to its centroid by mean
// absolute deviation.
type Representative struct {
	// Cluster is the index of the cluster (and centroid) this entity represents.
	Cluster   int       `json:"cluster"`
	Features  []float64 `json:"features"`
	Label     uint8     `json:"label"`
	Deviation float64   `json:"deviation"`
}

// SelectRepresentatives picks one member per cluster: the one whose mean
// absolute deviation from the cluster's centroid is smallest, the first member
// winning ties.
//
// Empty clusters produce no representative, so the result may be shorter than
// clusters; Representative.Cluster keeps the alignment.
func SelectRepresentatives(centroids [][]float64, clusters [][]record.Entity) ([]Representative, error) {
	if len(centroids) != len(clusters) {
		return nil, fmt.Errorf("%w: %d centroids for %d clusters", core.ErrInvalidInput, len(centroids), len(clusters))
	}

	reps := make([]Representative, 0, len(clusters))
	for i, members := range clusters {
		best := -1
		minDev := math.Inf(1)
		for m, member := range members {
			dev, err := deviation(member.Features, centroids[i])
			if err != nil {
				return nil, fmt.Errorf("cluster %d member %d: %w", i, m, err)
			}
			if dev < minDev || best == -1 {
				minDev = dev
				best = m
			}
		}
		if best == -1 {
			continue
		}
		reps = append(reps, Representative{
			Cluster:   i,
			Features:  slices.Clone(members[best].Features),
			Label:     members[best].Label,
			Deviation: minDev,
		})
	}
	return reps, nil
}
