package cohort

import (
	"math"
	"strconv"
	"time"

	"github.com/hupe1980/cohort/core"
	"github.com/hupe1980/cohort/graph"
	"github.com/hupe1980/cohort/kmeans"
)

// Number is a float64 that encodes NaN and infinities as JSON null.
//
// Medians of empty groups and correlations of constant columns are NaN,
// which plain JSON cannot represent.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler. null decodes to NaN.
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Number(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

func numbers(values []float64) []Number {
	out := make([]Number, len(values))
	for i, v := range values {
		out[i] = Number(v)
	}
	return out
}

// Segmentation is the result of clustering a dataset.
type Segmentation struct {
	K          int     `json:"k"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	Inertia    float64 `json:"inertia"`
	Policy     string  `json:"policy"`
	// Seed is the seed centroids were drawn with. It is nil when a caller
	// supplied random source was used.
	Seed     *int64    `json:"seed,omitempty"`
	Clusters []Cluster `json:"clusters"`
	// Assignments maps every entity index to its cluster index.
	Assignments     []int                   `json:"assignments"`
	Representatives []kmeans.Representative `json:"representatives"`
}

// Cluster summarizes one k-means cluster.
type Cluster struct {
	Index    int           `json:"index"`
	Centroid []float64     `json:"centroid"`
	Size     int           `json:"size"`
	Labels   map[uint8]int `json:"labels"`
}

// Communities is the result of building the similarity graph and peeling it
// into k-cores.
type Communities struct {
	Nodes      int         `json:"nodes"`
	Edges      int         `json:"edges"`
	Threshold  float64     `json:"threshold"`
	Epsilon    float64     `json:"epsilon"`
	CoreK      int         `json:"core_k"`
	Degeneracy int         `json:"degeneracy"`
	Stats      graph.Stats `json:"stats"`
	Cores      []Community `json:"cores"`

	// Graph is the similarity graph the cores were extracted from.
	Graph *graph.Graph `json:"-"`
}

// Community describes one extracted core.
type Community struct {
	Members []core.EntityID `json:"members"`
	Labels  map[uint8]int   `json:"labels"`
	// LabelJaccard holds, per label, the Jaccard similarity between the core
	// and the set of entities carrying that label.
	LabelJaccard map[uint8]float64 `json:"label_jaccard"`
}

// Description holds per-label descriptive statistics.
type Description struct {
	Entities int     `json:"entities"`
	Dim      int     `json:"dim"`
	Groups   []Group `json:"groups"`
	// Correlations holds the Pearson correlation of each feature with the label.
	Correlations []Number `json:"correlations"`
}

// Group summarizes the entities sharing one label.
type Group struct {
	Label   uint8    `json:"label"`
	Count   int      `json:"count"`
	Medians []Number `json:"medians"`
}

// Report bundles the results of Analyze.
type Report struct {
	RunID        string        `json:"run_id"`
	CreatedAt    time.Time     `json:"created_at"`
	Features     []string      `json:"features,omitempty"`
	Segmentation *Segmentation `json:"segmentation"`
	Communities  *Communities  `json:"communities"`
	Description  *Description  `json:"description"`
}
