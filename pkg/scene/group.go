package scene

import (
	"github.com/scenekit/scenekit/pkg/depgraph"
)

// childSet is the storage behind a layer group. Child layers occupy stable
// slots: removing a child vacates its slot without shifting the others, and
// vacant slots are reused by later adds. Slot stability keeps externally held
// child indices valid across removals.
//
// The set also records symbol placement: for every symbol held by any child,
// the ids of the children holding it. Placement backs exclusive adds and is
// maintained incrementally on every element change.
type childSet struct {
	slots     []*Layer
	index     map[LayerID]int
	placement map[SymbolID][]LayerID
	dirty     bool
}

func newChildSet() *childSet {
	return &childSet{
		index:     make(map[LayerID]int),
		placement: make(map[SymbolID][]LayerID),
	}
}

// insert stores the layer in the first vacant slot, or appends one, and
// returns the slot index. Inserting an already present layer returns its
// existing slot.
func (cs *childSet) insert(layer *Layer) int {
	if slot, ok := cs.index[layer.id]; ok {
		return slot
	}
	slot := -1
	for i, occupant := range cs.slots {
		if occupant == nil {
			slot = i
			break
		}
	}
	if slot == -1 {
		slot = len(cs.slots)
		cs.slots = append(cs.slots, nil)
	}
	cs.slots[slot] = layer
	cs.index[layer.id] = slot
	return slot
}

// removeLayer vacates the layer's slot. Unknown ids are ignored.
func (cs *childSet) removeLayer(id LayerID) {
	slot, ok := cs.index[id]
	if !ok {
		return
	}
	cs.slots[slot] = nil
	delete(cs.index, id)
}

// get returns the live layer with the given id, or nil when the id is
// unknown or the layer has been disposed.
func (cs *childSet) get(id LayerID) *Layer {
	slot, ok := cs.index[id]
	if !ok {
		return nil
	}
	layer := cs.slots[slot]
	if layer == nil || layer.disposed {
		return nil
	}
	return layer
}

// live returns the live children in slot order.
func (cs *childSet) live() []*Layer {
	out := make([]*Layer, 0, len(cs.index))
	for _, layer := range cs.slots {
		if layer != nil && !layer.disposed {
			out = append(out, layer)
		}
	}
	return out
}

// placeSymbol records that the child holds the symbol.
func (cs *childSet) placeSymbol(symbol SymbolID, child LayerID) {
	for _, id := range cs.placement[symbol] {
		if id == child {
			return
		}
	}
	cs.placement[symbol] = append(cs.placement[symbol], child)
}

// unplaceSymbol removes one placement record. The symbol's entry disappears
// entirely when no child holds it anymore.
func (cs *childSet) unplaceSymbol(symbol SymbolID, child LayerID) {
	ids := cs.placement[symbol]
	for i, id := range ids {
		if id == child {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(cs.placement, symbol)
	} else {
		cs.placement[symbol] = ids
	}
}

// placements returns the ids of the children currently holding the symbol.
// The result is a copy; callers may remove placements while iterating it.
func (cs *childSet) placements(symbol SymbolID) []LayerID {
	ids := cs.placement[symbol]
	out := make([]LayerID, len(ids))
	copy(out, ids)
	return out
}

func (cs *childSet) clear() {
	cs.slots = nil
	cs.index = make(map[LayerID]int)
	cs.placement = make(map[SymbolID][]LayerID)
}

// =============
// === Group ===
// =============

// AddChild registers the layer as a child of this group and returns its slot
// index. The child's existing symbols are recorded in the group's placement
// table. Adding a disposed layer, the group itself, or any ancestor of the
// group is rejected with a negative index, keeping the hierarchy free of
// parent cycles and the recursive update pass bounded.
func (l *Layer) AddChild(child *Layer) int {
	if child == nil || child.disposed || l.inAncestry(child) {
		return -1
	}
	if _, ok := l.children.index[child.id]; ok {
		return l.children.index[child.id]
	}
	slot := l.children.insert(child)
	child.addParent(l)
	for element := range child.elements {
		if symbol, ok := child.SymbolOf(element); ok {
			l.children.placeSymbol(symbol, child.id)
		}
	}
	l.children.dirty = true
	return slot
}

// inAncestry reports whether other is this layer or one of its transitive
// parents. AddChild keeps the hierarchy acyclic, so the walk terminates.
func (l *Layer) inAncestry(other *Layer) bool {
	if l == other {
		return true
	}
	for _, parent := range l.parents {
		if parent.inAncestry(other) {
			return true
		}
	}
	return false
}

// RemoveChild unregisters the child from this group. The child itself stays
// alive; it only loses this parent. Unknown children are ignored.
func (l *Layer) RemoveChild(child *Layer) {
	if child == nil {
		return
	}
	if _, ok := l.children.index[child.id]; !ok {
		return
	}
	l.children.removeLayer(child.id)
	for element := range child.elements {
		if symbol, ok := child.SymbolOf(element); ok {
			l.children.unplaceSymbol(symbol, child.id)
		}
	}
	child.removeParent(l)
	l.children.dirty = true
}

// SetChildren replaces the whole child list: every current child is removed,
// then the given layers are added in order.
func (l *Layer) SetChildren(layers []*Layer) {
	for _, child := range l.children.live() {
		l.RemoveChild(child)
	}
	for _, child := range layers {
		l.AddChild(child)
	}
}

// Children returns the live child layers in slot order.
func (l *Layer) Children() []*Layer {
	return l.children.live()
}

// GetChild returns the child with the given id, or nil when the id is
// unknown or the child has been disposed.
func (l *Layer) GetChild(id LayerID) *Layer {
	return l.children.get(id)
}

// SetMask assigns a mask layer: the group's content is clipped to the mask's
// shapes at render time. Passing nil or a disposed layer clears the mask.
func (l *Layer) SetMask(mask *Layer) {
	if mask != nil && mask.disposed {
		mask = nil
	}
	l.mask = mask
}

// Mask returns the current mask layer, or nil. A mask disposed since it was
// assigned reads as nil.
func (l *Layer) Mask() *Layer {
	if l.mask != nil && l.mask.disposed {
		l.mask = nil
	}
	return l.mask
}

// AddGlobalOrderDependency adds "below is drawn before above" to the group's
// global graph, applied to every child layer during the next update. Returns
// true if the edge was newly added.
func (l *Layer) AddGlobalOrderDependency(below, above Item) bool {
	fresh := l.global.Insert(below, above)
	if fresh {
		l.children.dirty = true
	}
	return fresh
}

// RemoveGlobalOrderDependency removes an edge from the group's global graph.
// Returns true if the edge existed.
func (l *Layer) RemoveGlobalOrderDependency(below, above Item) bool {
	found := l.global.Remove(below, above)
	if found {
		l.children.dirty = true
	}
	return found
}

// GlobalOrder returns a copy of the group's global dependency graph.
func (l *Layer) GlobalOrder() *depgraph.Graph[Item] {
	return l.global.Clone()
}

// LocalOrder returns a copy of this layer's local dependency graph.
func (l *Layer) LocalOrder() *depgraph.Graph[Item] {
	return l.depthOrder.Clone()
}
