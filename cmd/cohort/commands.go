package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hupe1980/cohort/config"
	"github.com/spf13/cobra"
)

// flags holds command-line overrides. Only flags the user set are applied
// on top of the configuration file.
type flags struct {
	configPath      string
	k               int
	iterations      int
	threshold       float64
	epsilon         float64
	coreK           int
	seed            int64
	source          string
	root            string
	bucket          string
	prefix          string
	endpoint        string
	region          string
	codec           string
	logLevel        string
	report          string
	trace           bool
	metricsTextfile string
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "cohort",
		Short: "Segment labelled records into cohorts and find dense subgroups",
		Long: `cohort reads a CSV dataset of numeric features with a trailing label
column, clusters it with k-means, extracts k-cores of its feature-match
similarity graph and prints a JSON report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	pf.IntVar(&f.k, "k", 0, "number of clusters")
	pf.IntVar(&f.iterations, "iterations", 0, "maximum k-means iterations")
	pf.Float64Var(&f.threshold, "threshold", 0, "similarity needed to join two records")
	pf.Float64Var(&f.epsilon, "epsilon", 0, "tolerance under which two feature values coincide")
	pf.IntVar(&f.coreK, "core-k", 0, "minimum degree of extracted cores")
	pf.Int64Var(&f.seed, "seed", 0, "seed for centroid initialization")
	pf.StringVar(&f.source, "source", "", "dataset source: local, s3 or minio")
	pf.StringVar(&f.root, "root", "", "root directory of the local source")
	pf.StringVar(&f.bucket, "bucket", "", "bucket of the s3 or minio source")
	pf.StringVar(&f.prefix, "prefix", "", "key prefix inside the bucket")
	pf.StringVar(&f.endpoint, "endpoint", "", "minio endpoint (host:port)")
	pf.StringVar(&f.region, "region", "", "bucket region")
	pf.StringVar(&f.codec, "codec", "", "report codec: json or go-json")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&f.report, "report", "", "also store the report under this name in the source")
	pf.BoolVar(&f.trace, "trace", false, "print OpenTelemetry spans to stderr")
	pf.StringVar(&f.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file")

	root.AddCommand(
		newStageCmd(f, stageAnalyze, "Run segmentation, communities and describe"),
		newStageCmd(f, stageSegment, "Cluster records with k-means and pick representatives"),
		newStageCmd(f, stageCommunities, "Build the similarity graph and extract k-cores"),
		newStageCmd(f, stageDescribe, "Report per-label medians and label correlations"),
		newListCmd(f),
		newConfigCmd(f),
	)
	return root
}

func newStageCmd(f *flags, stage string, short string) *cobra.Command {
	return &cobra.Command{
		Use:   stage + " <dataset>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, stage, args[0])
		},
	}
}

func newListCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list [prefix]",
		Short: "List datasets in the configured source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg.Source)
			if err != nil {
				return err
			}
			var prefix string
			if len(args) == 1 {
				prefix = args[0]
			}
			names, err := store.List(cmd.Context(), prefix)
			if err != nil {
				return fmt.Errorf("list %q: %w", prefix, err)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newConfigCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// resolve loads the configuration file, if any, applies explicitly set
// flags and validates the result.
func (f *flags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return config.Config{}, err
		}
	}

	set := cmd.Flags().Changed
	if set("k") {
		cfg.Clustering.K = f.k
	}
	if set("iterations") {
		cfg.Clustering.MaxIterations = f.iterations
	}
	if set("threshold") {
		cfg.Graph.Threshold = f.threshold
	}
	if set("epsilon") {
		cfg.Graph.Epsilon = f.epsilon
	}
	if set("core-k") {
		cfg.Graph.CoreK = f.coreK
	}
	if set("seed") {
		seed := f.seed
		cfg.Seed = &seed
	}
	if set("source") {
		cfg.Source.Kind = f.source
	}
	if set("root") {
		cfg.Source.Root = f.root
	}
	if set("bucket") {
		cfg.Source.Bucket = f.bucket
	}
	if set("prefix") {
		cfg.Source.Prefix = f.prefix
	}
	if set("endpoint") {
		cfg.Source.Endpoint = f.endpoint
	}
	if set("region") {
		cfg.Source.Region = f.region
	}
	if set("codec") {
		cfg.Output.Codec = f.codec
	}
	if set("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if set("report") {
		cfg.Output.Report = f.report
	}
	if set("trace") {
		cfg.Output.Trace = f.trace
	}
	if set("metrics-textfile") {
		cfg.Output.MetricsTextfile = f.metricsTextfile
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
