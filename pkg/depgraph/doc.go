// Package depgraph implements a generic depth-order dependency graph with
// incremental topological resolution.
//
// A [Graph] is a set of directed edges (below, above) over an opaque item type,
// meaning "below must be resolved before above". Edges from several sources
// (global per-group rules, local per-layer rules, and static per-shape-type
// rules) can be unioned with [Graph.Extend] before resolution; no source takes
// precedence over another.
//
// # Resolution
//
// [Graph.Resolve] produces a total order of a given element collection that is
// consistent with every edge whose endpoints are both present. Elements with no
// relative constraint are ordered by the comparison function supplied to [New],
// which makes repeated resolution fully deterministic. Cycles never abort
// resolution: when no unconstrained element remains, the smallest unresolved
// element (by the comparison function) is emitted and its pending constraints
// are released, so every input element appears in the output exactly once.
//
// # Concurrency
//
// Graph is not safe for concurrent use without external synchronization. The
// intended access pattern is single-threaded and frame-driven.
package depgraph
