package cohort

import (
	"log/slog"
	"math/rand"

	"github.com/hupe1980/cohort/graph"
	"github.com/hupe1980/cohort/kmeans"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultK is the default number of clusters.
	DefaultK = 2
	// DefaultMaxIterations is the default k-means iteration budget.
	DefaultMaxIterations = 100
	// DefaultCoreK is the default core order.
	DefaultCoreK = 1
)

type options struct {
	k                int
	maxIterations    int
	seed             *int64
	rng              *rand.Rand
	policy           kmeans.EmptyClusterPolicy
	tolerance        float64
	threshold        float64
	epsilon          float64
	coreK            int
	metricsCollector MetricsCollector
	logger           *Logger
	tracerProvider   trace.TracerProvider
}

// Option configures an Analyzer.
type Option func(*options)

// WithK sets the number of clusters for segmentation.
func WithK(k int) Option {
	return func(o *options) {
		o.k = k
	}
}

// WithMaxIterations sets the k-means iteration budget. Zero returns the
// random initial centroids unchanged.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithSeed fixes the seed used to initialize centroids. Every call to
// Segment then starts from the same centroids.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithRand supplies the random source for centroid initialization. It takes
// precedence over WithSeed. Calls that use it are serialized.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithEmptyClusterPolicy selects how clusters that lose all members are
// reseeded. The default is kmeans.CloneLargest.
func WithEmptyClusterPolicy(p kmeans.EmptyClusterPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithTolerance relaxes k-means convergence to per-coordinate movement of at
// most eps. The default of 0 requires exact equality.
func WithTolerance(eps float64) Option {
	return func(o *options) {
		o.tolerance = eps
	}
}

// WithThreshold sets the similarity at which two entities are joined.
func WithThreshold(t float64) Option {
	return func(o *options) {
		o.threshold = t
	}
}

// WithEpsilon sets the per-feature tolerance under which two values coincide.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		o.epsilon = eps
	}
}

// WithCoreK sets the minimum degree for k-core decomposition.
func WithCoreK(k int) Option {
	return func(o *options) {
		o.coreK = k
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &cohort.BasicMetricsCollector{}
//	a := cohort.New(cohort.WithMetricsCollector(metrics))
//	// ... run analyses ...
//	stats := metrics.GetStats()
//	fmt.Printf("Segments: %d, avg latency: %dns\n", stats.SegmentCount, stats.SegmentAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := cohort.NewJSONLogger(slog.LevelInfo)
//	a := cohort.New(cohort.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider. The global
// provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		k:                DefaultK,
		maxIterations:    DefaultMaxIterations,
		policy:           kmeans.CloneLargest,
		threshold:        graph.DefaultThreshold,
		epsilon:          graph.DefaultEpsilon,
		coreK:            DefaultCoreK,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	return o
}
