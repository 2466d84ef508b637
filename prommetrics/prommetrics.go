package prommetrics

import (
	"time"

	"github.com/hupe1980/cohort"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cohort"

var _ cohort.MetricsCollector = (*Collector)(nil)

// Collector implements cohort.MetricsCollector on top of Prometheus
// histograms, counters and gauges.
type Collector struct {
	registry *prometheus.Registry

	opLatency      *prometheus.HistogramVec
	ops            *prometheus.CounterVec
	iterations     prometheus.Histogram
	converged      prometheus.Counter
	graphEdges     prometheus.Gauge
	cores          prometheus.Gauge
	entitiesLoaded prometheus.Counter
}

// New creates a Collector and registers its metrics with a fresh registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of cohort operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total cohort operations by outcome",
		}, []string{"op", "status"}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kmeans_iterations",
			Help:      "Assignment/update passes per clustering run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		converged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kmeans_converged_total",
			Help:      "Clustering runs that converged within the iteration budget",
		}),
		graphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Edges in the most recently built similarity graph",
		}),
		cores: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "kcore_cores",
			Help:      "Cores found by the most recent decomposition",
		}),
		entitiesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_loaded_total",
			Help:      "Entities read from dataset sources",
		}),
	}

	c.registry.MustRegister(
		c.opLatency,
		c.ops,
		c.iterations,
		c.converged,
		c.graphEdges,
		c.cores,
		c.entitiesLoaded,
	)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes the current metrics in the text exposition format to
// path, atomically replacing any existing file.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// RecordSegment implements cohort.MetricsCollector.
func (c *Collector) RecordSegment(_, iterations int, converged bool, d time.Duration, err error) {
	c.observe("segment", d, err)
	if err != nil {
		return
	}
	c.iterations.Observe(float64(iterations))
	if converged {
		c.converged.Inc()
	}
}

// RecordGraphBuild implements cohort.MetricsCollector.
func (c *Collector) RecordGraphBuild(_, edges int, d time.Duration, err error) {
	c.observe("graph_build", d, err)
	if err == nil {
		c.graphEdges.Set(float64(edges))
	}
}

// RecordDecomposition implements cohort.MetricsCollector.
func (c *Collector) RecordDecomposition(_, cores int, d time.Duration, err error) {
	c.observe("decomposition", d, err)
	if err == nil {
		c.cores.Set(float64(cores))
	}
}

// RecordLoad implements cohort.MetricsCollector.
func (c *Collector) RecordLoad(entities int, d time.Duration, err error) {
	c.observe("load", d, err)
	if err == nil {
		c.entitiesLoaded.Add(float64(entities))
	}
}

func (c *Collector) observe(op string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.opLatency.WithLabelValues(op, status).Observe(d.Seconds())
	c.ops.WithLabelValues(op, status).Inc()
}
