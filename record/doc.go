// Package record defines the entities analysed by cohort and the immutable
// Dataset that holds them.
//
// An Entity is a fixed-length numeric feature vector plus a small
// non-negative integer label. Every entity in a Dataset shares one
// dimensionality; NewDataset rejects mixed lengths instead of padding.
package record
