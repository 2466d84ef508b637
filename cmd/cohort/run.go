package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hupe1980/cohort"
	"github.com/hupe1980/cohort/codec"
	"github.com/hupe1980/cohort/config"
	"github.com/hupe1980/cohort/dataset"
	"github.com/hupe1980/cohort/kmeans"
	"github.com/hupe1980/cohort/prommetrics"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	stageAnalyze     = "analyze"
	stageSegment     = "segment"
	stageCommunities = "communities"
	stageDescribe    = "describe"
)

// run loads the dataset name from the configured source, runs stage over
// it and writes the encoded result to stdout.
func run(ctx context.Context, stdout, stderr io.Writer, cfg config.Config, stage, name string) (err error) {
	logger := cohort.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))

	c, ok := codec.ByName(cfg.Output.Codec)
	if !ok {
		return fmt.Errorf("unknown codec %q", cfg.Output.Codec)
	}
	policy, err := kmeans.ParseEmptyClusterPolicy(cfg.Clustering.EmptyClusterPolicy)
	if err != nil {
		return err
	}

	metrics := prommetrics.New()
	if cfg.Output.MetricsTextfile != "" {
		defer func() {
			if werr := metrics.WriteTextfile(cfg.Output.MetricsTextfile); werr != nil && err == nil {
				err = fmt.Errorf("write metrics: %w", werr)
			}
		}()
	}

	opts := []cohort.Option{
		cohort.WithK(cfg.Clustering.K),
		cohort.WithMaxIterations(cfg.Clustering.MaxIterations),
		cohort.WithEmptyClusterPolicy(policy),
		cohort.WithTolerance(cfg.Clustering.Tolerance),
		cohort.WithThreshold(cfg.Graph.Threshold),
		cohort.WithEpsilon(cfg.Graph.Epsilon),
		cohort.WithCoreK(cfg.Graph.CoreK),
		cohort.WithLogger(logger),
		cohort.WithMetricsCollector(metrics),
	}
	if cfg.Seed != nil {
		opts = append(opts, cohort.WithSeed(*cfg.Seed))
	}
	if cfg.Output.Trace {
		tp, terr := newTracerProvider(stderr)
		if terr != nil {
			return terr
		}
		defer func() { _ = tp.Shutdown(context.WithoutCancel(ctx)) }()
		opts = append(opts, cohort.WithTracerProvider(tp))
	}

	store, err := openStore(ctx, cfg.Source)
	if err != nil {
		return err
	}

	start := time.Now()
	table, err := dataset.LoadTable(ctx, store, name)
	var entities int
	if table != nil {
		entities = table.Dataset.Len()
	}
	metrics.RecordLoad(entities, time.Since(start), err)
	logger.LogLoad(ctx, name, entities, err)
	if err != nil {
		return err
	}

	a := cohort.New(opts...)
	var result any
	switch stage {
	case stageAnalyze:
		report, aerr := a.Analyze(ctx, table.Dataset)
		if aerr != nil {
			return aerr
		}
		report.Features = table.Features
		result = report
	case stageSegment:
		result, err = a.Segment(ctx, table.Dataset)
	case stageCommunities:
		result, err = a.Communities(ctx, table.Dataset)
	case stageDescribe:
		result, err = a.Describe(ctx, table.Dataset)
	default:
		return fmt.Errorf("unknown stage %q", stage)
	}
	if err != nil {
		return err
	}

	data, err := c.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s result: %w", stage, err)
	}
	data = append(data, '\n')
	if _, err := stdout.Write(data); err != nil {
		return err
	}

	if cfg.Output.Report != "" {
		if err := store.Put(ctx, cfg.Output.Report, data); err != nil {
			return fmt.Errorf("store report %s: %w", cfg.Output.Report, err)
		}
		logger.InfoContext(ctx, "report stored", "name", cfg.Output.Report)
	}
	return nil
}

func newTracerProvider(w io.Writer) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	), nil
}
