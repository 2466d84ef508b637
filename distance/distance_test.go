package distance

import (
	"errors"
	"math"
	"testing"

	"github.com/hupe1980/cohort/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, math.Sqrt(27)},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Pythagoras", []float64{0, 0}, []float64{3, 4}, 5},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, math.Sqrt(8)},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Euclidean(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestEuclidean_Symmetric(t *testing.T) {
	a := []float64{1.5, -2, 7}
	b := []float64{0, 3, 3.25}

	ab, err := Euclidean(a, b)
	require.NoError(t, err)
	ba, err := Euclidean(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
	assert.GreaterOrEqual(t, ab, 0.0)
}

func TestMeanAbsoluteDeviation(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2}, []float64{2, 4}, 1.5},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Negative", []float64{-1, 1}, []float64{1, -1}, 2},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MeanAbsoluteDeviation(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestDimensionMismatch(t *testing.T) {
	_, err := Euclidean([]float64{1, 2}, []float64{1, 2, 3})
	require.Error(t, err)

	var dm *ErrDimensionMismatch
	require.True(t, errors.As(err, &dm))
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Equal(t, "dimension mismatch: expected 2, got 3", err.Error())

	_, err = MeanAbsoluteDeviation([]float64{1}, nil)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestMetric(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "Euclidean", MetricEuclidean.String())
		assert.Equal(t, "MeanAbsolute", MetricMeanAbsolute.String())
		assert.Equal(t, "Unknown(99)", Metric(99).String())
	})

	t.Run("Provider", func(t *testing.T) {
		f, err := Provider(MetricEuclidean)
		require.NoError(t, err)
		d, err := f([]float64{0, 0}, []float64{3, 4})
		require.NoError(t, err)
		assert.InDelta(t, 5.0, d, 1e-12)

		f, err = Provider(MetricMeanAbsolute)
		require.NoError(t, err)
		d, err = f([]float64{0, 0}, []float64{3, 4})
		require.NoError(t, err)
		assert.InDelta(t, 3.5, d, 1e-12)

		_, err = Provider(Metric(99))
		assert.Error(t, err)
	})
}
