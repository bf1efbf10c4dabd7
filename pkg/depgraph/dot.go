package depgraph

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the graph restricted to the
// given elements. Every element is rendered as a node even when it has no
// edges, so unconstrained items stay visible. Edges whose endpoints are not
// both present are skipped, mirroring the behavior of Resolve.
//
// The label function converts an item to its display label; pass nil to use
// the default %v formatting.
//
// Example:
//
//	g := depgraph.New[int](cmp.Compare[int])
//	g.Insert(3, 1)
//	dot := g.ToDOT([]int{1, 2, 3}, nil)
//	// Render with the 'dot' command or RenderSVG
func (g *Graph[T]) ToDOT(elements []T, label func(T) string) string {
	if label == nil {
		label = func(t T) string { return fmt.Sprintf("%v", t) }
	}

	present := make(map[T]struct{}, len(elements))
	for _, el := range elements {
		present[el] = struct{}{}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph depthorder {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, shape=box, style=\"filled,rounded\", fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=vee];\n\n")

	ids := make(map[T]string, len(present))
	for i, el := range g.sortedElements(present) {
		id := fmt.Sprintf("n%d", i)
		ids[el] = id
		fmt.Fprintf(&buf, "  %s [label=%q];\n", id, label(el))
	}

	for _, e := range g.Edges() {
		below, okB := ids[e.Below]
		above, okA := ids[e.Above]
		if !okB || !okA {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", below, above)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// sortedElements returns the distinct elements of the set in cmp order.
func (g *Graph[T]) sortedElements(present map[T]struct{}) []T {
	out := make([]T, 0, len(present))
	for el := range present {
		out = append(out, el)
	}
	slices.SortFunc(out, g.cmp)
	return out
}

// RenderSVG renders the graph restricted to elements as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses Graphviz to
// render it to SVG format. The returned bytes are a complete SVG document
// suitable for embedding in HTML or saving to a file.
//
// RenderSVG requires the Graphviz library (github.com/goccy/go-graphviz).
// Errors are returned if Graphviz cannot initialize, the DOT is malformed, or
// rendering fails. All errors are wrapped with context using fmt.Errorf with
// %w, suitable for unwrapping with errors.Unwrap or errors.Is.
func (g *Graph[T]) RenderSVG(ctx context.Context, elements []T, label func(T) string) ([]byte, error) {
	dot := g.ToDOT(elements, label)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
