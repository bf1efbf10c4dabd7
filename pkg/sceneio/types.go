package sceneio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scenekit/scenekit/pkg/depgraph"
	"github.com/scenekit/scenekit/pkg/errors"
	"github.com/scenekit/scenekit/pkg/scene"
)

// =============================================================================
// Snapshot - Scene Serialization Format
// =============================================================================

// Snapshot is the canonical serialization format for a resolved scene tree.
// Used for CLI output, the HTTP inspector, and cross-tool compatibility.
//
// Layers are listed in depth-first slot order with parent references, so the
// tree can be rebuilt without nesting. Element and edge endpoints use the
// textual item form ("symbol:3", "system:1").
type Snapshot struct {
	Layers []LayerSnapshot `json:"layers"`
}

// LayerSnapshot captures one layer: its identity, element set, resolved
// symbol order as of the last update, and its ordering constraints.
type LayerSnapshot struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Parent      string   `json:"parent,omitempty"`
	Items       []string `json:"items,omitempty"`
	Symbols     []uint32 `json:"symbols,omitempty"`
	LocalEdges  []Edge   `json:"local_edges,omitempty"`
	GlobalEdges []Edge   `json:"global_edges,omitempty"`
}

// Edge is a directed depth-order constraint: Below is drawn before Above.
type Edge struct {
	Below string `json:"below"`
	Above string `json:"above"`
}

// =============================================================================
// Scene → Snapshot Conversion
// =============================================================================

// FromScene captures the layer and all its descendants. Call Update on the
// root first; the snapshot records the cached symbol order as-is.
func FromScene(root *scene.Layer) Snapshot {
	var snap Snapshot
	captureLayer(&snap, root, "")
	return snap
}

func captureLayer(snap *Snapshot, layer *scene.Layer, parent string) {
	ls := LayerSnapshot{
		ID:          layer.ID().String(),
		Name:        layer.Name(),
		Parent:      parent,
		Items:       formatItems(layer.Items()),
		Symbols:     formatSymbols(layer.Symbols()),
		LocalEdges:  formatEdges(layer.LocalOrder()),
		GlobalEdges: formatEdges(layer.GlobalOrder()),
	}
	snap.Layers = append(snap.Layers, ls)
	for _, child := range layer.Children() {
		captureLayer(snap, child, ls.ID)
	}
}

func formatItems(items []scene.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}

func formatSymbols(symbols []scene.SymbolID) []uint32 {
	out := make([]uint32, len(symbols))
	for i, s := range symbols {
		out[i] = uint32(s)
	}
	return out
}

func formatEdges(graph *depgraph.Graph[scene.Item]) []Edge {
	edges := graph.Edges()
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[i] = Edge{Below: e.Below.String(), Above: e.Above.String()}
	}
	return out
}

// =============================================================================
// Item Parsing
// =============================================================================

// ParseItem decodes the textual item form produced by scene.Item.String:
// "symbol:<id>" or "system:<id>".
func ParseItem(s string) (scene.Item, error) {
	kind, idStr, ok := strings.Cut(s, ":")
	if !ok {
		return scene.Item{}, errors.New(errors.ErrCodeInvalidItem,
			"item %q: expected kind:id", s)
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return scene.Item{}, errors.Wrap(errors.ErrCodeInvalidItem, err,
			"item %q: bad id", s)
	}
	switch kind {
	case scene.KindSymbol.String():
		return scene.SymbolItem(scene.SymbolID(id)), nil
	case scene.KindShapeSystem.String():
		return scene.SystemItem(scene.ShapeSystemID(id)), nil
	default:
		return scene.Item{}, errors.New(errors.ErrCodeInvalidItem,
			"item %q: unknown kind %q", s, kind)
	}
}

// ParseEdge decodes both endpoints of a serialized edge.
func ParseEdge(e Edge) (below, above scene.Item, err error) {
	if below, err = ParseItem(e.Below); err != nil {
		return scene.Item{}, scene.Item{}, fmt.Errorf("below: %w", err)
	}
	if above, err = ParseItem(e.Above); err != nil {
		return scene.Item{}, scene.Item{}, fmt.Errorf("above: %w", err)
	}
	return below, above, nil
}
