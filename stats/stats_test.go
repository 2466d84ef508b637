package stats

import (
	"math"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/cohort/core"
	"github.com/hupe1980/cohort/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"Single", []float64{4}, 4},
		{"Odd", []float64{3, 1, 2}, 2},
		{"Even", []float64{4, 1, 3, 2}, 2.5},
		{"Duplicates", []float64{5, 5, 1}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Median(tt.values), 1e-12)
		})
	}

	assert.True(t, math.IsNaN(Median(nil)))
}

func TestMedian_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestMedians(t *testing.T) {
	ds, err := record.NewDataset([]record.Entity{
		{Features: []float64{1, 10}},
		{Features: []float64{2, 30}},
		{Features: []float64{3, 20}},
		{Features: []float64{4, 40}},
	})
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 25}, Medians(ds), 1e-12)
	assert.Nil(t, Medians(nil))
}

func TestCorrelation(t *testing.T) {
	r, err := Correlation([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})
	require.NoError(t, err)
	assert.InDelta(t, 1, r, 1e-12)

	r, err = Correlation([]float64{1, 2, 3, 4}, []float64{8, 6, 4, 2})
	require.NoError(t, err)
	assert.InDelta(t, -1, r, 1e-12)

	r, err = Correlation([]float64{1, 1, 1}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(r))

	r, err = Correlation([]float64{1}, []float64{1})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(r))

	_, err = Correlation([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestLabelCorrelations(t *testing.T) {
	ds, err := record.NewDataset([]record.Entity{
		{Features: []float64{1, 5}, Label: 0},
		{Features: []float64{2, 5}, Label: 0},
		{Features: []float64{8, 5}, Label: 1},
		{Features: []float64{9, 5}, Label: 1},
	})
	require.NoError(t, err)

	got := LabelCorrelations(ds)
	require.Len(t, got, 2)
	assert.Greater(t, got[0], 0.9)
	assert.True(t, math.IsNaN(got[1]))
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []uint32
		want float64
	}{
		{"BothEmpty", nil, nil, 1},
		{"OneEmpty", []uint32{1}, nil, 0},
		{"Identical", []uint32{1, 2, 3}, []uint32{3, 2, 1}, 1},
		{"Partial", []uint32{1, 2, 3}, []uint32{2, 3, 4}, 0.5},
		{"Duplicates", []uint32{1, 1, 2}, []uint32{2}, 0.5},
		{"Disjoint", []uint32{1}, []uint32{2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := roaring.BitmapOf(tt.a...), roaring.BitmapOf(tt.b...)
			assert.InDelta(t, tt.want, Jaccard(a, b), 1e-12)
			assert.InDelta(t, tt.want, Jaccard(b, a), 1e-12)
		})
	}
}

func TestJaccard_Nil(t *testing.T) {
	assert.InDelta(t, 1.0, Jaccard(nil, nil), 1e-12)
	assert.InDelta(t, 0.0, Jaccard(roaring.BitmapOf(1), nil), 1e-12)
}
