// Package cohort segments a population of labelled records into cohorts and
// finds densely interconnected subgroups among them.
//
// Each record is a numeric feature vector with a small integer outcome label
// (for example a diagnosis). An Analyzer runs three independent views over a
// dataset:
//
//   - Segment clusters the records with k-means and picks, for every
//     cluster, the member closest to its centroid as a representative.
//   - Communities joins records that agree on at least half of their
//     features and peels the resulting graph into k-cores.
//   - Describe splits the records by label and reports per-feature medians
//     and the correlation of every feature with the label.
//
// Analyze runs all three and returns a Report tagged with a run id.
//
// # Quick Start
//
//	ds, _ := dataset.Load(ctx, blobstore.NewLocalStore("./data"), "patients.csv")
//
//	a := cohort.New(
//	    cohort.WithK(3),
//	    cohort.WithSeed(42),
//	    cohort.WithCoreK(2),
//	)
//	report, _ := a.Analyze(ctx, ds)
//
// # Reproducibility
//
// Clustering starts from random centroids. WithSeed fixes the seed so runs
// are repeatable; without it a seed is drawn from the clock and recorded in
// the Segmentation so the run can be replayed.
//
// # Observability
//
// WithLogger, WithMetricsCollector and WithTracerProvider attach structured
// logging, metrics and OpenTelemetry spans. See the prommetrics package for
// a Prometheus collector.
package cohort
