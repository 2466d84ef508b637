// Package prommetrics exports cohort operation metrics to Prometheus.
//
// A Collector owns its registry so several analyzers in one process do not
// collide on the default registerer:
//
//	c := prommetrics.New()
//	a := cohort.New(cohort.WithMetricsCollector(c))
//	// ... run analyses ...
//	http.Handle("/metrics", promhttp.HandlerFor(c.Registry(), promhttp.HandlerOpts{}))
//
// Batch jobs can instead write the registry to a node_exporter textfile with
// WriteTextfile.
package prommetrics
