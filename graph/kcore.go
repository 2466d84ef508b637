package graph

import (
	"encoding/json"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/cohort/core"
)

// ErrInvalidCoreK is returned for a negative core order.
var ErrInvalidCoreK = fmt.Errorf("%w: core k must not be negative", core.ErrInvalidInput)

// Core is a set of nodes extracted by KCore.
type Core struct {
	nodes *roaring.Bitmap
}

// Len returns the number of nodes in the core.
func (c Core) Len() int {
	if c.nodes == nil {
		return 0
	}
	return int(c.nodes.GetCardinality())
}

// Contains reports whether v belongs to the core.
func (c Core) Contains(v core.EntityID) bool {
	return c.nodes != nil && c.nodes.Contains(uint32(v))
}

// Nodes returns the members in ascending order.
func (c Core) Nodes() []core.EntityID {
	if c.nodes == nil {
		return nil
	}
	return toIDs(c.nodes)
}

// Bitmap returns a copy of the member set.
func (c Core) Bitmap() *roaring.Bitmap {
	if c.nodes == nil {
		return roaring.New()
	}
	return c.nodes.Clone()
}

// MarshalJSON encodes the core as its sorted member list.
func (c Core) MarshalJSON() ([]byte, error) {
	nodes := c.Nodes()
	if nodes == nil {
		nodes = []core.EntityID{}
	}
	return json.Marshal(nodes)
}

// Stats describes the work done by a decomposition.
type Stats struct {
	// Passes counts peel/extract cycles, including the final empty one.
	Passes int `json:"passes"`
	// PeelRounds counts simultaneous removal rounds that removed at least one node.
	PeelRounds int `json:"peel_rounds"`
	// Peeled counts nodes removed for having degree below k.
	Peeled int `json:"peeled"`
}

// KCore decomposes g into cores of order k. g is not modified.
func KCore(g *Graph, k int) ([]Core, error) {
	cores, _, err := KCoreWithStats(g, k)
	return cores, err
}

// KCoreWithStats is KCore and additionally reports decomposition statistics.
func KCoreWithStats(g *Graph, k int) ([]Core, Stats, error) {
	var stats Stats
	if g == nil {
		return nil, stats, fmt.Errorf("%w: graph is nil", core.ErrInvalidInput)
	}
	if k < 0 {
		return nil, stats, fmt.Errorf("k=%d: %w", k, ErrInvalidCoreK)
	}

	work := g.Clone()
	live := roaring.New()
	live.AddRange(0, uint64(work.NumNodes()))

	var cores []Core
	for !live.IsEmpty() {
		stats.Passes++

		for {
			marked := roaring.New()
			it := live.Iterator()
			for it.HasNext() {
				v := it.Next()
				if work.adj[v].GetCardinality() < uint64(k) {
					marked.Add(v)
				}
			}
			if marked.IsEmpty() {
				break
			}
			stats.PeelRounds++
			stats.Peeled += int(marked.GetCardinality())
			work.detach(marked)
			live.AndNot(marked)
		}

		extracted := roaring.New()
		it := live.Iterator()
		for it.HasNext() {
			v := it.Next()
			if !work.adj[v].IsEmpty() {
				extracted.Add(v)
			}
		}
		if extracted.IsEmpty() {
			break
		}
		cores = append(cores, Core{nodes: extracted})

		work.detach(extracted)
		live.AndNot(extracted)
	}
	return cores, stats, nil
}

// CoreNumbers returns, for every node, the largest k such that the node
// belongs to the k-core of g. Isolated nodes have core number 0.
func CoreNumbers(g *Graph) []int {
	n := g.NumNodes()
	deg := make([]int, n)
	maxDeg := 0
	for v := range n {
		deg[v] = int(g.adj[v].GetCardinality())
		maxDeg = max(maxDeg, deg[v])
	}

	// Bucket sort nodes by degree: bin[d] is the first position of degree d.
	bin := make([]int, maxDeg+1)
	for _, d := range deg {
		bin[d]++
	}
	start := 0
	for d := range bin {
		num := bin[d]
		bin[d] = start
		start += num
	}
	pos := make([]int, n)
	vert := make([]int, n)
	for v, d := range deg {
		pos[v] = bin[d]
		vert[pos[v]] = v
		bin[d]++
	}
	for d := maxDeg; d >= 1; d-- {
		bin[d] = bin[d-1]
	}
	bin[0] = 0

	for i := range n {
		v := vert[i]
		it := g.adj[v].Iterator()
		for it.HasNext() {
			u := int(it.Next())
			if deg[u] <= deg[v] {
				continue
			}
			du, pu := deg[u], pos[u]
			pw := bin[du]
			if w := vert[pw]; w != u {
				pos[u], vert[pu] = pw, w
				pos[w], vert[pw] = pu, u
			}
			bin[du]++
			deg[u]--
		}
	}
	return deg
}

// Degeneracy returns the largest core number in g.
func Degeneracy(g *Graph) int {
	best := 0
	for _, c := range CoreNumbers(g) {
		best = max(best, c)
	}
	return best
}
