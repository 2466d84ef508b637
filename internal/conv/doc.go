// Package conv provides checked integer conversions between Go's
// platform-sized int and the fixed-width ids used for entities and graph
// nodes.
//
// Use it where a count or index comes from input data. Loop indices already
// bounded by a checked count can be cast directly.
package conv
