// Package stats provides the descriptive statistics used to compare label
// groups: per-feature medians, Pearson correlation against the label and
// Jaccard similarity over category codes.
package stats
