// Package config loads and validates the run configuration for the cohort
// command.
//
// A configuration file is YAML. Missing keys keep their defaults, ${VAR}
// references are expanded from the environment before parsing, and the
// result is checked with struct-tag validation:
//
//	clustering:
//	  k: 3
//	  max_iterations: 100
//	  empty_cluster_policy: clone-largest
//	graph:
//	  threshold: 0.5
//	  epsilon: 0.001
//	  core_k: 2
//	source:
//	  kind: s3
//	  bucket: datasets
//	  prefix: cohorts/
//	output:
//	  codec: go-json
package config
