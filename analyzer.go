package cohort

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"
	"github.com/hupe1980/cohort/graph"
	"github.com/hupe1980/cohort/kmeans"
	"github.com/hupe1980/cohort/record"
	"github.com/hupe1980/cohort/stats"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/hupe1980/cohort"

// Analyzer runs segmentation, community detection and descriptive
// statistics over datasets. It is safe for concurrent use.
type Analyzer struct {
	opts   options
	tracer trace.Tracer

	// rngMu serializes use of a caller supplied random source.
	rngMu sync.Mutex
}

// New creates an Analyzer with the given options.
func New(optFns ...Option) *Analyzer {
	o := applyOptions(optFns)
	return &Analyzer{
		opts:   o,
		tracer: o.tracerProvider.Tracer(tracerName),
	}
}

// Segment clusters ds into k groups with k-means and selects the member of
// each group closest to its centroid.
func (a *Analyzer) Segment(ctx context.Context, ds *record.Dataset) (*Segmentation, error) {
	return a.segment(ctx, ds, a.opts.logger)
}

// Communities builds the similarity graph of ds and extracts its k-cores.
func (a *Analyzer) Communities(ctx context.Context, ds *record.Dataset) (*Communities, error) {
	return a.communities(ctx, ds, a.opts.logger)
}

// Describe computes per-label medians and feature-to-label correlations.
func (a *Analyzer) Describe(ctx context.Context, ds *record.Dataset) (*Description, error) {
	return a.describe(ctx, ds, a.opts.logger)
}

// Analyze runs Segment, Communities and Describe and bundles the results
// under a fresh run id. It stops at the first failing stage.
func (a *Analyzer) Analyze(ctx context.Context, ds *record.Dataset) (*Report, error) {
	runID := uuid.NewString()
	logger := a.opts.logger.WithRunID(runID)

	ctx, span := a.tracer.Start(ctx, "cohort.Analyze", trace.WithAttributes(
		attribute.String("cohort.run_id", runID),
	))
	defer span.End()

	report := &Report{RunID: runID, CreatedAt: time.Now().UTC()}

	var err error
	if report.Segmentation, err = a.segment(ctx, ds, logger); err != nil {
		return nil, failSpan(span, err)
	}
	if report.Communities, err = a.communities(ctx, ds, logger); err != nil {
		return nil, failSpan(span, err)
	}
	if report.Description, err = a.describe(ctx, ds, logger); err != nil {
		return nil, failSpan(span, err)
	}

	logger.InfoContext(ctx, "analysis completed",
		"entities", ds.Len(),
		"clusters", len(report.Segmentation.Clusters),
		"cores", len(report.Communities.Cores),
	)
	return report, nil
}

func (a *Analyzer) segment(ctx context.Context, ds *record.Dataset, logger *Logger) (*Segmentation, error) {
	if ds == nil {
		return nil, stageError(StageSegment, ErrEmptyDataset)
	}

	ctx, span := a.tracer.Start(ctx, "cohort.Segment", trace.WithAttributes(
		attribute.Int("cohort.k", a.opts.k),
		attribute.Int("cohort.entities", ds.Len()),
		attribute.Int("cohort.dimension", ds.Dim()),
	))
	defer span.End()

	start := time.Now()
	seg, err := a.cluster(ctx, ds)

	var iterations int
	var converged bool
	if seg != nil {
		iterations, converged = seg.Iterations, seg.Converged
	}
	a.opts.metricsCollector.RecordSegment(a.opts.k, iterations, converged, time.Since(start), err)
	logger.WithK(a.opts.k).WithDimension(ds.Dim()).LogSegment(ctx, iterations, converged, err)

	if err != nil {
		return nil, failSpan(span, stageError(StageSegment, err))
	}
	span.SetAttributes(
		attribute.Int("cohort.iterations", iterations),
		attribute.Bool("cohort.converged", converged),
	)
	return seg, nil
}

func (a *Analyzer) cluster(ctx context.Context, ds *record.Dataset) (*Segmentation, error) {
	entities := ds.Entities()
	kopts := []kmeans.Option{
		kmeans.WithEmptyClusterPolicy(a.opts.policy),
		kmeans.WithTolerance(a.opts.tolerance),
	}

	var (
		res  *kmeans.Result
		seed *int64
		err  error
	)
	if a.opts.rng != nil {
		a.rngMu.Lock()
		res, err = kmeans.Cluster(ctx, a.opts.k, entities, a.opts.maxIterations, a.opts.rng, kopts...)
		a.rngMu.Unlock()
	} else {
		s := time.Now().UnixNano()
		if a.opts.seed != nil {
			s = *a.opts.seed
		}
		seed = &s
		res, err = kmeans.Cluster(ctx, a.opts.k, entities, a.opts.maxIterations, rand.New(rand.NewSource(s)), kopts...)
	}
	if err != nil {
		return nil, err
	}

	groups, err := kmeans.Group(entities, res.Assignments, a.opts.k)
	if err != nil {
		return nil, err
	}
	reps, err := kmeans.SelectRepresentatives(res.Centroids, groups)
	if err != nil {
		return nil, err
	}

	clusters := make([]Cluster, len(groups))
	for i, members := range groups {
		clusters[i] = Cluster{
			Index:    i,
			Centroid: res.Centroids[i],
			Size:     res.Sizes[i],
			Labels:   labelCounts(members),
		}
	}

	return &Segmentation{
		K:               a.opts.k,
		Iterations:      res.Iterations,
		Converged:       res.Converged,
		Inertia:         res.Inertia,
		Policy:          a.opts.policy.String(),
		Seed:            seed,
		Clusters:        clusters,
		Assignments:     res.Assignments,
		Representatives: reps,
	}, nil
}

func (a *Analyzer) communities(ctx context.Context, ds *record.Dataset, logger *Logger) (*Communities, error) {
	if ds == nil {
		return nil, stageError(StageCommunities, ErrEmptyDataset)
	}

	ctx, span := a.tracer.Start(ctx, "cohort.Communities", trace.WithAttributes(
		attribute.Int("cohort.entities", ds.Len()),
		attribute.Float64("cohort.threshold", a.opts.threshold),
		attribute.Float64("cohort.epsilon", a.opts.epsilon),
		attribute.Int("cohort.core_k", a.opts.coreK),
	))
	defer span.End()

	entities := ds.Entities()

	start := time.Now()
	g, err := graph.Build(entities, graph.WithThreshold(a.opts.threshold), graph.WithEpsilon(a.opts.epsilon))
	var edges int
	if g != nil {
		edges = g.NumEdges()
	}
	a.opts.metricsCollector.RecordGraphBuild(len(entities), edges, time.Since(start), err)
	logger.LogGraphBuild(ctx, len(entities), edges, err)
	if err != nil {
		return nil, failSpan(span, stageError(StageCommunities, err))
	}
	span.SetAttributes(
		attribute.Int("cohort.nodes", g.NumNodes()),
		attribute.Int("cohort.edges", edges),
	)

	if err := ctx.Err(); err != nil {
		return nil, failSpan(span, stageError(StageCommunities, err))
	}

	start = time.Now()
	cores, peel, err := graph.KCoreWithStats(g, a.opts.coreK)
	a.opts.metricsCollector.RecordDecomposition(a.opts.coreK, len(cores), time.Since(start), err)
	logger.LogDecomposition(ctx, a.opts.coreK, len(cores), peel, err)
	if err != nil {
		return nil, failSpan(span, stageError(StageCommunities, err))
	}
	span.SetAttributes(attribute.Int("cohort.cores", len(cores)))

	byLabel := make(map[uint8]*roaring.Bitmap)
	for i, e := range entities {
		set, ok := byLabel[e.Label]
		if !ok {
			set = roaring.New()
			byLabel[e.Label] = set
		}
		set.Add(uint32(i))
	}

	out := make([]Community, len(cores))
	for i, c := range cores {
		nodes := c.Nodes()
		counts := make(map[uint8]int)
		for _, v := range nodes {
			counts[entities[v].Label]++
		}
		members := c.Bitmap()
		jaccard := make(map[uint8]float64, len(byLabel))
		for label, set := range byLabel {
			jaccard[label] = stats.Jaccard(members, set)
		}
		out[i] = Community{Members: nodes, Labels: counts, LabelJaccard: jaccard}
	}

	return &Communities{
		Nodes:      g.NumNodes(),
		Edges:      edges,
		Threshold:  a.opts.threshold,
		Epsilon:    a.opts.epsilon,
		CoreK:      a.opts.coreK,
		Degeneracy: graph.Degeneracy(g),
		Stats:      peel,
		Cores:      out,
		Graph:      g,
	}, nil
}

func (a *Analyzer) describe(ctx context.Context, ds *record.Dataset, logger *Logger) (*Description, error) {
	if ds == nil {
		return nil, stageError(StageDescribe, ErrEmptyDataset)
	}

	ctx, span := a.tracer.Start(ctx, "cohort.Describe", trace.WithAttributes(
		attribute.Int("cohort.entities", ds.Len()),
		attribute.Int("cohort.dimension", ds.Dim()),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, failSpan(span, stageError(StageDescribe, err))
	}

	byLabel := ds.SplitByLabel()
	labels := ds.LabelSet()
	groups := make([]Group, len(labels))
	for i, label := range labels {
		sub := byLabel[label]
		groups[i] = Group{
			Label:   label,
			Count:   sub.Len(),
			Medians: numbers(stats.Medians(sub)),
		}
	}

	logger.WithCount(ds.Len()).DebugContext(ctx, "describe completed", "groups", len(groups))

	return &Description{
		Entities:     ds.Len(),
		Dim:          ds.Dim(),
		Groups:       groups,
		Correlations: numbers(stats.LabelCorrelations(ds)),
	}, nil
}

func labelCounts(entities []record.Entity) map[uint8]int {
	counts := make(map[uint8]int)
	for _, e := range entities {
		counts[e.Label]++
	}
	return counts
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
