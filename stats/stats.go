package stats

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/go-gota/gota/series"
	"github.com/hupe1980/cohort/distance"
	"github.com/hupe1980/cohort/record"
	"gonum.org/v1/gonum/stat"
)

// Median returns the middle value of values, or the mean of the two middle
// values for an even count. It returns NaN for an empty slice.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return series.Floats(values).Median()
}

// Medians returns the median of every feature column of ds.
func Medians(ds *record.Dataset) []float64 {
	if ds == nil {
		return nil
	}
	out := make([]float64, ds.Dim())
	for j := range out {
		col, _ := ds.Column(j)
		out[j] = Median(col)
	}
	return out
}

// Correlation returns the Pearson correlation coefficient of x and y.
// It is NaN when either series has zero variance or fewer than two values.
func Correlation(x, y []float64) (float64, error) {
	if err := distance.CheckDimensions(x, y); err != nil {
		return 0, err
	}
	if len(x) < 2 {
		return math.NaN(), nil
	}
	return stat.Correlation(x, y, nil), nil
}

// LabelCorrelations returns the correlation of every feature column of ds
// with its labels.
func LabelCorrelations(ds *record.Dataset) []float64 {
	if ds == nil {
		return nil
	}
	labels := ds.Labels()
	y := make([]float64, len(labels))
	for i, l := range labels {
		y[i] = float64(l)
	}

	out := make([]float64, ds.Dim())
	for j := range out {
		col, _ := ds.Column(j)
		out[j], _ = Correlation(col, y)
	}
	return out
}

// Jaccard returns |a ∩ b| / |a ∪ b|. A nil bitmap is an empty set. Two
// empty sets are identical and score 1.
func Jaccard(a, b *roaring.Bitmap) float64 {
	if a == nil {
		a = roaring.New()
	}
	if b == nil {
		b = roaring.New()
	}
	union := a.OrCardinality(b)
	if union == 0 {
		return 1
	}
	return float64(a.AndCardinality(b)) / float64(union)
}
