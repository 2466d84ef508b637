package cohort

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	boom := errors.New("boom")

	m.RecordSegment(3, 4, true, 10*time.Millisecond, nil)
	m.RecordSegment(3, 100, false, 30*time.Millisecond, nil)
	m.RecordSegment(3, 0, false, 2*time.Millisecond, boom)
	m.RecordGraphBuild(10, 7, 4*time.Millisecond, nil)
	m.RecordGraphBuild(10, 0, 2*time.Millisecond, boom)
	m.RecordDecomposition(2, 3, time.Millisecond, nil)
	m.RecordDecomposition(-1, 0, time.Millisecond, boom)
	m.RecordLoad(10, time.Millisecond, nil)

	stats := m.GetStats()
	assert.Equal(t, int64(3), stats.SegmentCount)
	assert.Equal(t, int64(1), stats.SegmentErrors)
	assert.Equal(t, int64(1), stats.SegmentConverged)
	assert.Equal(t, int64(104), stats.SegmentIterations)
	assert.Equal(t, (14 * time.Millisecond).Nanoseconds(), stats.SegmentAvgNanos)
	assert.Equal(t, int64(2), stats.GraphBuildCount)
	assert.Equal(t, int64(1), stats.GraphBuildErrors)
	assert.Equal(t, int64(7), stats.GraphEdges)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.GraphBuildAvgNanos)
	assert.Equal(t, int64(2), stats.DecompositionCount)
	assert.Equal(t, int64(1), stats.DecompositionErrors)
	assert.Equal(t, int64(3), stats.CoresFound)
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Equal(t, int64(10), stats.EntitiesLoaded)
}

func TestBasicMetricsCollectorEmpty(t *testing.T) {
	stats := (&BasicMetricsCollector{}).GetStats()
	assert.Zero(t, stats.SegmentAvgNanos)
	assert.Zero(t, stats.GraphBuildAvgNanos)
}

func TestWithMetricsCollectorNil(t *testing.T) {
	o := applyOptions([]Option{WithMetricsCollector(nil), WithLogger(nil)})
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.NotNil(t, o.logger)
	assert.NotNil(t, o.tracerProvider)
}
