package depgraph

import (
	"container/heap"
	"slices"
)

// Edge is an ordered pair of items meaning "Below must be drawn before Above".
type Edge[T comparable] struct {
	Below T // Drawn first
	Above T // Drawn after Below
}

// Graph is a set of depth-order dependency edges over an opaque item type.
//
// The zero value is not usable - use New to create a valid Graph. Graph is not
// safe for concurrent use without external synchronization.
type Graph[T comparable] struct {
	cmp   func(a, b T) int
	edges map[Edge[T]]struct{}
}

// New creates an empty graph. The cmp function defines a total order over
// items; it is used for deterministic tie-breaking during Resolve and for
// stable iteration in Edges. It follows the convention of the cmp package:
// negative when a < b, zero when equal, positive when a > b.
func New[T comparable](cmp func(a, b T) int) *Graph[T] {
	return &Graph[T]{
		cmp:   cmp,
		edges: make(map[Edge[T]]struct{}),
	}
}

// Insert adds the dependency edge (below, above).
// Returns true if the edge was newly added, false if it was already present.
// Inserting an existing edge is a no-op.
func (g *Graph[T]) Insert(below, above T) bool {
	e := Edge[T]{Below: below, Above: above}
	if _, ok := g.edges[e]; ok {
		return false
	}
	g.edges[e] = struct{}{}
	return true
}

// Remove deletes the dependency edge (below, above).
// Returns true if the edge existed, false otherwise. Removing a missing edge
// is a no-op.
func (g *Graph[T]) Remove(below, above T) bool {
	e := Edge[T]{Below: below, Above: above}
	if _, ok := g.edges[e]; !ok {
		return false
	}
	delete(g.edges, e)
	return true
}

// Contains reports whether the edge (below, above) is present.
func (g *Graph[T]) Contains(below, above T) bool {
	_, ok := g.edges[Edge[T]{Below: below, Above: above}]
	return ok
}

// Extend unions all edges of other into g. Edges already present are kept.
// The other graph is not modified.
func (g *Graph[T]) Extend(other *Graph[T]) {
	if other == nil {
		return
	}
	for e := range other.edges {
		g.edges[e] = struct{}{}
	}
}

// Clone returns an independent copy of the graph sharing the cmp function.
func (g *Graph[T]) Clone() *Graph[T] {
	out := New[T](g.cmp)
	for e := range g.edges {
		out.edges[e] = struct{}{}
	}
	return out
}

// Len returns the number of edges.
func (g *Graph[T]) Len() int { return len(g.edges) }

// Edges returns all edges sorted by (Below, Above) under the graph's cmp.
// The returned slice is a copy and can be freely modified.
func (g *Graph[T]) Edges() []Edge[T] {
	out := make([]Edge[T], 0, len(g.edges))
	for e := range g.edges {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Edge[T]) int {
		if c := g.cmp(a.Below, b.Below); c != 0 {
			return c
		}
		return g.cmp(a.Above, b.Above)
	})
	return out
}

// Resolve produces a total order of elements consistent with every edge whose
// endpoints are both present in elements. Elements with no relative constraint
// are ordered by the graph's cmp, ascending. Duplicate elements are collapsed.
//
// Cycles do not abort resolution: whenever no unconstrained element remains,
// the cmp-smallest unresolved element is emitted and its pending constraints
// are released. The result always contains every distinct input element
// exactly once.
//
// Complexity is O((N + E) log N) for N elements and E applicable edges.
func (g *Graph[T]) Resolve(elements []T) []T {
	present := make(map[T]struct{}, len(elements))
	for _, el := range elements {
		present[el] = struct{}{}
	}

	// Snapshot in identity order. This is both the tie-break order and the
	// fallback order for cyclic remainders.
	sorted := make([]T, 0, len(present))
	for el := range present {
		sorted = append(sorted, el)
	}
	slices.SortFunc(sorted, g.cmp)

	succ := make(map[T][]T, len(present))
	indeg := make(map[T]int, len(present))
	for e := range g.edges {
		if _, ok := present[e.Below]; !ok {
			continue
		}
		if _, ok := present[e.Above]; !ok {
			continue
		}
		succ[e.Below] = append(succ[e.Below], e.Above)
		indeg[e.Above]++
	}

	ready := &itemHeap[T]{cmp: g.cmp}
	heap.Init(ready)
	for _, el := range sorted {
		if indeg[el] == 0 {
			heap.Push(ready, el)
		}
	}

	out := make([]T, 0, len(sorted))
	emitted := make(map[T]struct{}, len(sorted))
	emit := func(el T) {
		emitted[el] = struct{}{}
		out = append(out, el)
		for _, next := range succ[el] {
			indeg[next]--
			if indeg[next] == 0 {
				if _, done := emitted[next]; !done {
					heap.Push(ready, next)
				}
			}
		}
	}

	for len(out) < len(sorted) {
		if ready.Len() > 0 {
			emit(heap.Pop(ready).(T))
			continue
		}
		// Every remaining element sits on a cycle. Break it by emitting the
		// smallest unresolved element and releasing its constraints.
		for _, el := range sorted {
			if _, done := emitted[el]; !done {
				emit(el)
				break
			}
		}
	}
	return out
}

// itemHeap is a min-heap of items ordered by cmp.
type itemHeap[T comparable] struct {
	cmp   func(a, b T) int
	items []T
}

func (h *itemHeap[T]) Len() int           { return len(h.items) }
func (h *itemHeap[T]) Less(i, j int) bool { return h.cmp(h.items[i], h.items[j]) < 0 }
func (h *itemHeap[T]) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *itemHeap[T]) Push(x any)         { h.items = append(h.items, x.(T)) }

func (h *itemHeap[T]) Pop() any {
	n := len(h.items)
	x := h.items[n-1]
	h.items = h.items[:n-1]
	return x
}
