package scene

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// SymbolID identifies a primitive drawable unit. IDs are assigned externally
// by the rendering subsystem and increase monotonically with every symbol
// created; the resolver relies on this property for deterministic
// tie-breaking.
type SymbolID uint32

// ShapeSystemID names a category of shape system, one per distinct shape
// kind. Every shape kind must supply a stable, unique tag.
type ShapeSystemID uint32

// InstanceIndex identifies one shape instance inside the shared symbol of its
// shape system.
type InstanceIndex uint32

// LayerID is the stable, unique identifier of a layer, valid for the layer's
// lifetime and never reused.
type LayerID uuid.UUID

// NewLayerID returns a fresh random layer id.
func NewLayerID() LayerID {
	return LayerID(uuid.New())
}

// String returns the canonical UUID form of the id.
func (id LayerID) String() string {
	return uuid.UUID(id).String()
}

// ItemKind distinguishes the two element variants held by a layer.
type ItemKind uint8

const (
	// KindSymbol tags an Item wrapping a SymbolID.
	KindSymbol ItemKind = iota
	// KindShapeSystem tags an Item wrapping a ShapeSystemID.
	KindShapeSystem
)

// String returns the lowercase kind name.
func (k ItemKind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindShapeSystem:
		return "system"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Item is the unit depth-ordering operates over: either a bare symbol or a
// shape system. Items are comparable values usable as map keys; their total
// order (see CompareItems) sorts by variant tag first, then by wrapped id.
type Item struct {
	Kind ItemKind
	ID   uint32
}

// SymbolItem wraps a SymbolID as an Item.
func SymbolItem(id SymbolID) Item {
	return Item{Kind: KindSymbol, ID: uint32(id)}
}

// SystemItem wraps a ShapeSystemID as an Item.
func SystemItem(id ShapeSystemID) Item {
	return Item{Kind: KindShapeSystem, ID: uint32(id)}
}

// String returns a compact "kind:id" form, e.g. "symbol:3".
func (it Item) String() string {
	return fmt.Sprintf("%s:%d", it.Kind, it.ID)
}

// CompareItems is the total order over items: variant tag first, then the
// wrapped numeric id, ascending. It is the tie-break order used by depth-order
// resolution.
func CompareItems(a, b Item) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// sortItems orders items in place by identity order.
func sortItems(items []Item) {
	slices.SortFunc(items, CompareItems)
}
