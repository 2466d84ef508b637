// Package graph builds undirected similarity graphs over record entities and
// decomposes them into dense cores.
//
// Two entities are joined when the fraction of feature dimensions on which
// they agree to within epsilon reaches the threshold (0.5 and 0.001 by
// default). Adjacency is kept as one roaring bitmap of neighbours per node,
// so the graph is loop-free and adding an edge twice is a no-op.
//
// KCore peels the graph on a private copy: every node below degree k is
// removed in the same round, rounds repeat to a fixpoint, and the surviving
// nodes with edges form a core. The core is stripped and peeling resumes
// until no node is left or nothing with edges survives. Empty cores are
// never emitted.
//
// CoreNumbers computes the core number of every node, the largest k for
// which the node belongs to a k-core.
package graph
