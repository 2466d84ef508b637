package graph

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/cohort/core"
	"github.com/hupe1980/cohort/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphOf(t *testing.T, n int, edges ...Edge) *Graph {
	t.Helper()
	g := New(n)
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e.U, e.V))
	}
	return g
}

// triangle 0-1-2, pendant 3 on 0, isolated 4
func trianglePlusPendant(t *testing.T) *Graph {
	return graphOf(t, 5, Edge{0, 1}, Edge{1, 2}, Edge{0, 2}, Edge{0, 3})
}

func TestKCore(t *testing.T) {
	g := trianglePlusPendant(t)

	tests := []struct {
		name  string
		k     int
		want  [][]core.EntityID
		stats Stats
	}{
		{"Zero", 0, [][]core.EntityID{{0, 1, 2, 3}}, Stats{Passes: 2}},
		{"One", 1, [][]core.EntityID{{0, 1, 2, 3}}, Stats{Passes: 1, PeelRounds: 1, Peeled: 1}},
		{"Two", 2, [][]core.EntityID{{0, 1, 2}}, Stats{Passes: 1, PeelRounds: 1, Peeled: 2}},
		{"Three", 3, nil, Stats{Passes: 1, PeelRounds: 2, Peeled: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cores, stats, err := KCoreWithStats(g, tt.k)
			require.NoError(t, err)
			require.Len(t, cores, len(tt.want))
			for i, c := range cores {
				assert.Equal(t, tt.want[i], c.Nodes())
				assert.Equal(t, len(tt.want[i]), c.Len())
			}
			assert.Equal(t, tt.stats, stats)
		})
	}
}

func TestKCore_SimultaneousPeel(t *testing.T) {
	// Path 0-1-2-3: the ends go in round one, the middle in round two.
	g := graphOf(t, 4, Edge{0, 1}, Edge{1, 2}, Edge{2, 3})

	cores, stats, err := KCoreWithStats(g, 2)
	require.NoError(t, err)
	assert.Empty(t, cores)
	assert.Equal(t, 2, stats.PeelRounds)
	assert.Equal(t, 4, stats.Peeled)
}

func TestKCore_DoesNotMutateInput(t *testing.T) {
	g := trianglePlusPendant(t)
	before := g.Clone()

	_, err := KCore(g, 2)
	require.NoError(t, err)
	assert.True(t, g.Equal(before))
}

func TestKCore_Errors(t *testing.T) {
	_, err := KCore(New(2), -1)
	assert.ErrorIs(t, err, ErrInvalidCoreK)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = KCore(nil, 1)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	cores, err := KCore(New(0), 1)
	require.NoError(t, err)
	assert.Empty(t, cores)
}

func TestKCore_Properties(t *testing.T) {
	rng := testutil.NewRNG(3)
	g := New(80)
	for range 240 {
		u, v := rng.Intn(80), rng.Intn(80)
		if u != v {
			require.NoError(t, g.AddEdge(core.EntityID(u), core.EntityID(v)))
		}
	}
	numbers := CoreNumbers(g)

	for k := 0; k <= Degeneracy(g)+1; k++ {
		cores, err := KCore(g, k)
		require.NoError(t, err)

		seen := roaring.New()
		remaining := g.NumNodes()
		for _, c := range cores {
			require.NotZero(t, c.Len())
			assert.False(t, seen.Intersects(c.Bitmap()), "cores must be disjoint")
			seen.Or(c.Bitmap())
			assert.Less(t, remaining-c.Len(), remaining)
			remaining -= c.Len()
			for _, v := range c.Nodes() {
				assert.Less(t, int(v), g.NumNodes())
			}
		}

		want := roaring.New()
		for v, cn := range numbers {
			if cn >= k && g.Degree(core.EntityID(v)) > 0 {
				want.Add(uint32(v))
			}
		}
		if want.IsEmpty() {
			assert.Empty(t, cores, "k=%d", k)
			continue
		}
		require.NotEmpty(t, cores, "k=%d", k)
		assert.True(t, want.Equals(cores[0].Bitmap()), "k=%d", k)

		// Every member of a k-core keeps at least k neighbours inside it.
		if k > 0 {
			for _, v := range cores[0].Nodes() {
				inside := 0
				for _, u := range g.Neighbors(v) {
					if cores[0].Contains(u) {
						inside++
					}
				}
				assert.GreaterOrEqual(t, inside, k)
			}
		}
	}
}

func TestCoreNumbers(t *testing.T) {
	g := trianglePlusPendant(t)
	assert.Equal(t, []int{2, 2, 2, 1, 0}, CoreNumbers(g))
	assert.Equal(t, 2, Degeneracy(g))

	// K4 plus a tail: 0..3 form a 3-core.
	k4 := graphOf(t, 5,
		Edge{0, 1}, Edge{0, 2}, Edge{0, 3}, Edge{1, 2}, Edge{1, 3}, Edge{2, 3}, Edge{3, 4})
	assert.Equal(t, []int{3, 3, 3, 3, 1}, CoreNumbers(k4))

	assert.Empty(t, CoreNumbers(New(0)))
	assert.Zero(t, Degeneracy(New(0)))
}

func TestCore_JSON(t *testing.T) {
	c := Core{nodes: roaring.BitmapOf(4, 1)}
	b, err := c.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[1,4]`, string(b))

	b, err = Core{}.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
	assert.False(t, Core{}.Contains(0))
}
