package cohort

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// prommetrics package provides a Prometheus implementation.
//
// Example:
//
//	type CountingCollector struct {
//	    cohort.NoopMetricsCollector
//	    segments atomic.Int64
//	}
//
//	func (c *CountingCollector) RecordSegment(k, iterations int, converged bool, d time.Duration, err error) {
//	    c.segments.Add(1)
//	}
type MetricsCollector interface {
	// RecordSegment is called after each clustering run.
	RecordSegment(k, iterations int, converged bool, duration time.Duration, err error)

	// RecordGraphBuild is called after each similarity graph construction.
	RecordGraphBuild(nodes, edges int, duration time.Duration, err error)

	// RecordDecomposition is called after each k-core decomposition.
	RecordDecomposition(coreK, cores int, duration time.Duration, err error)

	// RecordLoad is called after a dataset has been loaded.
	RecordLoad(entities int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSegment(int, int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordGraphBuild(int, int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordDecomposition(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SegmentCount         atomic.Int64
	SegmentErrors        atomic.Int64
	SegmentConverged     atomic.Int64
	SegmentIterations    atomic.Int64
	SegmentTotalNanos    atomic.Int64
	GraphBuildCount      atomic.Int64
	GraphBuildErrors     atomic.Int64
	GraphEdges           atomic.Int64
	GraphBuildTotalNanos atomic.Int64
	DecompositionCount   atomic.Int64
	DecompositionErrors  atomic.Int64
	CoresFound           atomic.Int64
	LoadCount            atomic.Int64
	LoadErrors           atomic.Int64
	EntitiesLoaded       atomic.Int64
}

// RecordSegment implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSegment(_, iterations int, converged bool, duration time.Duration, err error) {
	b.SegmentCount.Add(1)
	b.SegmentTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SegmentErrors.Add(1)
		return
	}
	b.SegmentIterations.Add(int64(iterations))
	if converged {
		b.SegmentConverged.Add(1)
	}
}

// RecordGraphBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGraphBuild(_, edges int, duration time.Duration, err error) {
	b.GraphBuildCount.Add(1)
	b.GraphBuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.GraphBuildErrors.Add(1)
		return
	}
	b.GraphEdges.Add(int64(edges))
}

// RecordDecomposition implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecomposition(_, cores int, _ time.Duration, err error) {
	b.DecompositionCount.Add(1)
	if err != nil {
		b.DecompositionErrors.Add(1)
		return
	}
	b.CoresFound.Add(int64(cores))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(entities int, _ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.EntitiesLoaded.Add(int64(entities))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SegmentCount:        b.SegmentCount.Load(),
		SegmentErrors:       b.SegmentErrors.Load(),
		SegmentConverged:    b.SegmentConverged.Load(),
		SegmentIterations:   b.SegmentIterations.Load(),
		SegmentAvgNanos:     avg(b.SegmentTotalNanos.Load(), b.SegmentCount.Load()),
		GraphBuildCount:     b.GraphBuildCount.Load(),
		GraphBuildErrors:    b.GraphBuildErrors.Load(),
		GraphEdges:          b.GraphEdges.Load(),
		GraphBuildAvgNanos:  avg(b.GraphBuildTotalNanos.Load(), b.GraphBuildCount.Load()),
		DecompositionCount:  b.DecompositionCount.Load(),
		DecompositionErrors: b.DecompositionErrors.Load(),
		CoresFound:          b.CoresFound.Load(),
		LoadCount:           b.LoadCount.Load(),
		LoadErrors:          b.LoadErrors.Load(),
		EntitiesLoaded:      b.EntitiesLoaded.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SegmentCount        int64
	SegmentErrors       int64
	SegmentConverged    int64
	SegmentIterations   int64
	SegmentAvgNanos     int64
	GraphBuildCount     int64
	GraphBuildErrors    int64
	GraphEdges          int64
	GraphBuildAvgNanos  int64
	DecompositionCount  int64
	DecompositionErrors int64
	CoresFound          int64
	LoadCount           int64
	LoadErrors          int64
	EntitiesLoaded      int64
}
