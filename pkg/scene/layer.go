package scene

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/scenekit/scenekit/pkg/depgraph"
	"github.com/scenekit/scenekit/pkg/observability"
)

// symbolInfo is the per-layer association of a shape system with the symbol
// it draws under, plus the static ordering of its kind.
type symbolInfo struct {
	symbol SymbolID
	above  []ShapeSystemID
	below  []ShapeSystemID
}

// Layer is a rendering bucket: it owns a camera, a set of elements to draw,
// per-layer ordering constraints, and a cached sorted symbol list. A layer is
// also a group: it can hold child layers together with a group-wide global
// dependency graph shared by all of them (see group.go).
//
// Layers are created standalone with NewLayer and become children of zero or
// more groups via AddChild/SetChildren. A layer that goes out of use must be
// released with Dispose, which synchronously unregisters it from every parent
// before any dangling reference can be observed.
type Layer struct {
	id     LayerID
	name   string
	logger *log.Logger

	camera   *Camera2D
	registry *ShapeSystemRegistry

	systemSymbols map[ShapeSystemID]symbolInfo
	symbolSystems map[SymbolID]ShapeSystemID

	elements map[Item]struct{}
	sorted   []SymbolID

	depthOrder *depgraph.Graph[Item]
	dirty      bool

	// parents are the layers whose child collection contains this layer.
	// Held only for synchronous unregistration on Dispose and for placement
	// bookkeeping; children never outlive this back-reference.
	parents []*Layer

	children *childSet
	global   *depgraph.Graph[Item]
	mask     *Layer

	disposed bool
}

// LayerOption configures a layer at construction time.
type LayerOption func(*Layer)

// WithName sets a human-readable layer name used in logs and snapshots.
func WithName(name string) LayerOption {
	return func(l *Layer) { l.name = name }
}

// WithCamera assigns the given camera instead of a fresh one. The camera is
// shared by reference and may be held by several layers.
func WithCamera(camera *Camera2D) LayerOption {
	return func(l *Layer) { l.camera = camera }
}

// WithLogger sets the logger used for resolve diagnostics.
func WithLogger(logger *log.Logger) LayerOption {
	return func(l *Layer) { l.logger = logger }
}

// NewLayer creates a standalone layer with a fresh camera and an empty
// element set.
func NewLayer(opts ...LayerOption) *Layer {
	l := &Layer{
		id:            NewLayerID(),
		registry:      NewShapeSystemRegistry(),
		systemSymbols: make(map[ShapeSystemID]symbolInfo),
		symbolSystems: make(map[SymbolID]ShapeSystemID),
		elements:      make(map[Item]struct{}),
		depthOrder:    depgraph.New[Item](CompareItems),
		children:      newChildSet(),
		global:        depgraph.New[Item](CompareItems),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.camera == nil {
		l.camera = NewCamera2D()
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	if l.name == "" {
		l.name = l.id.String()[:8]
	}
	l.logger = l.logger.With("layer", l.name)
	return l
}

// ID returns the stable identifier of the layer.
func (l *Layer) ID() LayerID { return l.id }

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Camera returns the camera assigned to this layer. The instance may be
// shared with other layers.
func (l *Layer) Camera() *Camera2D { return l.camera }

// SetCamera replaces the layer's camera. Pass an instance held by another
// layer to share it.
func (l *Layer) SetCamera(camera *Camera2D) { l.camera = camera }

// Registry returns the per-layer shape system registry.
func (l *Layer) Registry() *ShapeSystemRegistry { return l.registry }

// Symbols returns all symbols registered in this layer, ordered according to
// the depth-order dependencies as of the last Update. The view is not
// refreshed on read; updates are performed by calling Update, which usually
// happens once per animation frame.
func (l *Layer) Symbols() []SymbolID {
	out := make([]SymbolID, len(l.sorted))
	copy(out, l.sorted)
	return out
}

// Items returns the element set in identity order.
func (l *Layer) Items() []Item {
	return l.snapshotElements()
}

// SymbolOf returns the SymbolID of the given element if it is present on this
// layer: the id itself for a symbol item, or the registered shared symbol for
// a shape system item. The second return is false when there is no mapping.
func (l *Layer) SymbolOf(element Item) (SymbolID, bool) {
	switch element.Kind {
	case KindSymbol:
		return SymbolID(element.ID), true
	case KindShapeSystem:
		info, ok := l.systemSymbols[ShapeSystemID(element.ID)]
		return info.symbol, ok
	default:
		return 0, false
	}
}

// AddSymbol adds the bare symbol to this layer. Adding a symbol twice is a
// no-op aside from marking the ordering dirty.
func (l *Layer) AddSymbol(id SymbolID) {
	l.addElement(id, nil)
}

// AddSymbolExclusive adds the symbol to this layer and removes it from every
// other layer (sharing a parent group with this one) that currently holds it.
func (l *Layer) AddSymbolExclusive(id SymbolID) {
	l.removeSymbolFromAllLayers(id)
	l.addElement(id, nil)
}

// AddShape adds a shape instance to this layer: the shared symbol becomes an
// element and the shape-system association (including its static ordering) is
// recorded so it participates in sorting.
func (l *Layer) AddShape(info SystemInfo, symbol SymbolID) {
	l.addElement(symbol, &info)
}

// AddShapeExclusive adds the shape like AddShape and removes its symbol from
// every other layer that currently holds it.
func (l *Layer) AddShapeExclusive(info SystemInfo, symbol SymbolID) {
	l.removeSymbolFromAllLayers(symbol)
	l.addElement(symbol, &info)
}

// PlaceShape instantiates the shape through the layer's registry and adds it
// to the layer. It returns the index of the new instance within the kind's
// shared symbol.
func (l *Layer) PlaceShape(renderer Renderer, shape Shape) InstanceIndex {
	info, symbol, instance := l.registry.Instantiate(renderer, shape)
	l.AddShape(info, symbol)
	return instance
}

// PlaceShapeExclusive is PlaceShape with exclusive symbol placement.
func (l *Layer) PlaceShapeExclusive(renderer Renderer, shape Shape) InstanceIndex {
	info, symbol, instance := l.registry.Instantiate(renderer, shape)
	l.AddShapeExclusive(info, symbol)
	return instance
}

func (l *Layer) addElement(symbol SymbolID, info *SystemInfo) {
	l.markDirty()
	if info == nil {
		l.elements[SymbolItem(symbol)] = struct{}{}
	} else {
		l.systemSymbols[info.ID] = symbolInfo{
			symbol: symbol,
			above:  info.Above,
			below:  info.Below,
		}
		l.symbolSystems[symbol] = info.ID
		l.elements[SystemItem(info.ID)] = struct{}{}
	}
	for _, parent := range l.parents {
		parent.children.placeSymbol(symbol, l.id)
	}
}

// RemoveSymbol removes the symbol from this layer. If the symbol was a shape
// instance, the shape-system association is removed as well. Removing an
// absent symbol is a no-op aside from marking the ordering dirty.
func (l *Layer) RemoveSymbol(id SymbolID) {
	l.markDirty()

	delete(l.elements, SymbolItem(id))
	if systemID, ok := l.symbolSystems[id]; ok {
		delete(l.symbolSystems, id)
		delete(l.systemSymbols, systemID)
		delete(l.elements, SystemItem(systemID))
	}

	for _, parent := range l.parents {
		parent.children.unplaceSymbol(id, l.id)
	}
}

// removeSymbolFromAllLayers removes the symbol from every layer, registered
// in any of this layer's parent groups, that currently holds it.
func (l *Layer) removeSymbolFromAllLayers(symbol SymbolID) {
	for _, parent := range l.parents {
		for _, layerID := range parent.children.placements(symbol) {
			if layer := parent.GetChild(layerID); layer != nil {
				layer.RemoveSymbol(symbol)
			}
		}
	}
}

// AddOrderDependency adds the local depth-order dependency "below is drawn
// before above" to this layer. Returns true if the edge was newly added.
func (l *Layer) AddOrderDependency(below, above Item) bool {
	fresh := l.depthOrder.Insert(below, above)
	if fresh {
		l.markDirty()
	}
	return fresh
}

// RemoveOrderDependency removes a local depth-order dependency. Returns true
// if the edge existed.
func (l *Layer) RemoveOrderDependency(below, above Item) bool {
	found := l.depthOrder.Remove(below, above)
	if found {
		l.markDirty()
	}
	return found
}

// Dirty reports whether the cached symbol order is stale.
func (l *Layer) Dirty() bool { return l.dirty }

// Disposed reports whether the layer has been released.
func (l *Layer) Disposed() bool { return l.disposed }

// markDirty flags this layer for re-resolution. The group dirty flag is not
// touched: the update pass descends into every live child anyway, and a local
// edit must not force untouched siblings to re-sort. Group-level changes
// (global edges, child membership) set the group flag at their call sites.
func (l *Layer) markDirty() {
	l.dirty = true
}

func (l *Layer) addParent(parent *Layer) {
	l.parents = append(l.parents, parent)
}

func (l *Layer) removeParent(parent *Layer) {
	for i, p := range l.parents {
		if p == parent {
			l.parents = append(l.parents[:i], l.parents[i+1:]...)
			return
		}
	}
}

// Dispose releases the layer: it is synchronously unregistered from every
// parent group (both the child slot and the symbol placement records) and all
// subsequent lookups of it fail cleanly. Dispose is idempotent. Child layers
// are not disposed; they simply lose this parent.
func (l *Layer) Dispose() {
	if l.disposed {
		return
	}
	l.disposed = true

	for _, parent := range l.parents {
		parent.children.removeLayer(l.id)
		for element := range l.elements {
			if symbol, ok := l.SymbolOf(element); ok {
				parent.children.unplaceSymbol(symbol, l.id)
			}
		}
	}
	l.parents = nil

	for _, child := range l.children.live() {
		child.removeParent(l)
	}
	l.children.clear()
}

// Update consumes the dirty flags and recomputes the symbol ordering where
// needed, then recurses into every live child layer, passing down this
// layer's global dependency graph. Resolution is top-down: a child always
// sees an up-to-date global graph.
//
// Call Update once per animation frame on the scene root.
func (l *Layer) Update() {
	l.updateInternal(nil, false)
}

// updateInternal resolves this layer against the parent's global graph (nil
// for a root) and recurses. force re-resolves a clean layer after a change to
// the parent's global graph.
func (l *Layer) updateInternal(global *depgraph.Graph[Item], force bool) {
	if l.disposed {
		return
	}
	if l.dirty || force {
		l.dirty = false
		l.depthSort(global)
	}

	forceChildren := l.children.dirty
	l.children.dirty = false
	for _, child := range l.children.live() {
		child.updateInternal(l.global, forceChildren)
	}
}

// combinedDepthOrder merges the three dependency sources for this layer: the
// global graph inherited from the parent group, the local graph, and the
// static per-kind relations of every shape system present.
func (l *Layer) combinedDepthOrder(global *depgraph.Graph[Item]) *depgraph.Graph[Item] {
	graph := depgraph.New[Item](CompareItems)
	graph.Extend(global)
	graph.Extend(l.depthOrder)
	for element := range l.elements {
		if element.Kind != KindShapeSystem {
			continue
		}
		info, ok := l.systemSymbols[ShapeSystemID(element.ID)]
		if !ok {
			continue
		}
		for _, other := range info.below {
			graph.Insert(element, SystemItem(other))
		}
		for _, other := range info.above {
			graph.Insert(SystemItem(other), element)
		}
	}
	return graph
}

// depthSort recomputes the cached symbol order. Shape-system elements with no
// registered symbol mapping are dropped with a diagnostic; this covers the
// window between declaring a kind-level constraint and placing an instance of
// the kind.
func (l *Layer) depthSort(global *depgraph.Graph[Item]) {
	start := time.Now()
	elements := l.snapshotElements()
	observability.Scene().OnResolveStart(l.id.String(), len(elements))

	graph := l.combinedDepthOrder(global)
	resolved := graph.Resolve(elements)

	sorted := make([]SymbolID, 0, len(resolved))
	for _, element := range resolved {
		symbol, ok := l.SymbolOf(element)
		if !ok {
			l.logger.Warn("dropping depth-ordered element with no registered symbol",
				"element", element.String())
			observability.Scene().OnItemDropped(l.id.String(), element.ID)
			continue
		}
		sorted = append(sorted, symbol)
	}
	l.sorted = sorted

	l.logger.Debug("resolved depth order",
		"elements", len(elements),
		"symbols", len(sorted),
		"edges", graph.Len())
	observability.Scene().OnResolveComplete(l.id.String(), len(sorted), time.Since(start))
}

// snapshotElements returns the element set in identity order.
func (l *Layer) snapshotElements() []Item {
	out := make([]Item, 0, len(l.elements))
	for element := range l.elements {
		out = append(out, element)
	}
	sortItems(out)
	return out
}
