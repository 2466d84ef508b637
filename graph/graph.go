package graph

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/cohort/core"
)

var (
	// ErrSelfLoop is returned when an edge would connect a node to itself.
	ErrSelfLoop = fmt.Errorf("%w: self-loop", core.ErrInvalidInput)

	// ErrNodeOutOfRange is returned for a node id outside [0, NumNodes).
	ErrNodeOutOfRange = fmt.Errorf("%w: node out of range", core.ErrInvalidInput)
)

// Edge is an undirected edge with U < V.
type Edge struct {
	U core.EntityID `json:"u"`
	V core.EntityID `json:"v"`
}

// Graph is an undirected simple graph over the nodes 0..n-1.
type Graph struct {
	adj []*roaring.Bitmap
}

// New creates a graph with n isolated nodes.
func New(n int) *Graph {
	adj := make([]*roaring.Bitmap, n)
	for i := range adj {
		adj[i] = roaring.New()
	}
	return &Graph{adj: adj}
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return len(g.adj) }

// NumEdges returns the number of undirected edges.
func (g *Graph) NumEdges() int {
	var sum uint64
	for _, nb := range g.adj {
		sum += nb.GetCardinality()
	}
	return int(sum / 2)
}

func (g *Graph) check(v core.EntityID) error {
	if int(v) >= len(g.adj) {
		return fmt.Errorf("node %d of %d: %w", v, len(g.adj), ErrNodeOutOfRange)
	}
	return nil
}

// AddEdge connects u and v. Adding an existing edge is a no-op.
func (g *Graph) AddEdge(u, v core.EntityID) error {
	if err := g.check(u); err != nil {
		return err
	}
	if err := g.check(v); err != nil {
		return err
	}
	if u == v {
		return fmt.Errorf("node %d: %w", u, ErrSelfLoop)
	}
	g.adj[u].Add(uint32(v))
	g.adj[v].Add(uint32(u))
	return nil
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v core.EntityID) bool {
	if g.check(u) != nil || g.check(v) != nil {
		return false
	}
	return g.adj[u].Contains(uint32(v))
}

// Degree returns the number of neighbours of v, or 0 for an unknown node.
func (g *Graph) Degree(v core.EntityID) int {
	if g.check(v) != nil {
		return 0
	}
	return int(g.adj[v].GetCardinality())
}

// Neighbors returns the neighbours of v in ascending order.
func (g *Graph) Neighbors(v core.EntityID) []core.EntityID {
	if g.check(v) != nil {
		return nil
	}
	return toIDs(g.adj[v])
}

// Edges returns every edge once, sorted by (U, V).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.NumEdges())
	for u, nb := range g.adj {
		it := nb.Iterator()
		for it.HasNext() {
			v := it.Next()
			if v > uint32(u) {
				edges = append(edges, Edge{U: core.EntityID(u), V: core.EntityID(v)})
			}
		}
	}
	return edges
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	adj := make([]*roaring.Bitmap, len(g.adj))
	for i, nb := range g.adj {
		adj[i] = nb.Clone()
	}
	return &Graph{adj: adj}
}

// Equal reports whether both graphs have the same nodes and edges.
func (g *Graph) Equal(other *Graph) bool {
	if other == nil || len(g.adj) != len(other.adj) {
		return false
	}
	for i, nb := range g.adj {
		if !nb.Equals(other.adj[i]) {
			return false
		}
	}
	return true
}

// detach removes every edge incident to the nodes in set. Degrees are not
// consulted, so all nodes in set are detached as one batch.
func (g *Graph) detach(set *roaring.Bitmap) {
	it := set.Iterator()
	for it.HasNext() {
		v := it.Next()
		nb := g.adj[v].Iterator()
		for nb.HasNext() {
			g.adj[nb.Next()].Remove(v)
		}
		g.adj[v].Clear()
	}
}

func toIDs(b *roaring.Bitmap) []core.EntityID {
	raw := b.ToArray()
	out := make([]core.EntityID, len(raw))
	for i, v := range raw {
		out[i] = core.EntityID(v)
	}
	return out
}
