package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/scenekit/pkg/observability"
)

// perLayerSceneHooks counts resolve passes per layer id.
type perLayerSceneHooks struct {
	observability.NoopSceneHooks
	resolves map[string]int
}

func (h *perLayerSceneHooks) OnResolveComplete(layerID string, _ int, _ time.Duration) {
	h.resolves[layerID]++
}

func TestAddChildSlotStability(t *testing.T) {
	root := NewLayer()
	a := NewLayer(WithName("a"))
	b := NewLayer(WithName("b"))
	c := NewLayer(WithName("c"))

	assert.Equal(t, 0, root.AddChild(a))
	assert.Equal(t, 1, root.AddChild(b))
	assert.Equal(t, 2, root.AddChild(c))

	// Removing the middle child leaves the other slots untouched; the
	// vacant slot is reused by the next add.
	root.RemoveChild(b)
	assert.Equal(t, []*Layer{a, c}, root.Children())

	d := NewLayer(WithName("d"))
	assert.Equal(t, 1, root.AddChild(d))
	assert.Equal(t, []*Layer{a, d, c}, root.Children())
}

func TestAddChildRejectsInvalid(t *testing.T) {
	root := NewLayer()
	assert.Equal(t, -1, root.AddChild(nil))
	assert.Equal(t, -1, root.AddChild(root))

	dead := NewLayer()
	dead.Dispose()
	assert.Equal(t, -1, root.AddChild(dead))

	// Re-adding returns the existing slot.
	child := NewLayer()
	slot := root.AddChild(child)
	assert.Equal(t, slot, root.AddChild(child))
}

func TestAddChildRejectsAncestorCycle(t *testing.T) {
	root := NewLayer(WithName("root"))
	a := NewLayer(WithName("a"))
	b := NewLayer(WithName("b"))
	root.AddChild(a)
	a.AddChild(b)

	// Closing the loop at any depth is rejected.
	assert.Equal(t, -1, a.AddChild(root))
	assert.Equal(t, -1, b.AddChild(root))
	assert.Equal(t, -1, b.AddChild(a))
	assert.Nil(t, b.GetChild(root.ID()))

	// The hierarchy stays acyclic, so the recursive update terminates.
	root.Update()
}

func TestLocalEditDoesNotResortSiblings(t *testing.T) {
	hooks := &perLayerSceneHooks{resolves: make(map[string]int)}
	observability.SetSceneHooks(hooks)
	defer observability.Reset()

	root := NewLayer()
	a := NewLayer(WithName("a"))
	b := NewLayer(WithName("b"))
	root.AddChild(a)
	root.AddChild(b)
	a.AddSymbol(1)
	a.AddSymbol(2)
	b.AddSymbol(3)
	root.Update()

	aID, bID := a.ID().String(), b.ID().String()
	aBase, bBase := hooks.resolves[aID], hooks.resolves[bID]

	// A purely local edit re-resolves only the edited layer.
	a.AddOrderDependency(SymbolItem(2), SymbolItem(1))
	root.Update()
	assert.Equal(t, aBase+1, hooks.resolves[aID])
	assert.Equal(t, bBase, hooks.resolves[bID])

	// Group-level changes still re-resolve every child.
	root.AddGlobalOrderDependency(SymbolItem(3), SymbolItem(1))
	root.Update()
	assert.Equal(t, aBase+2, hooks.resolves[aID])
	assert.Equal(t, bBase+1, hooks.resolves[bID])
}

func TestGetChild(t *testing.T) {
	root := NewLayer()
	child := NewLayer()
	root.AddChild(child)

	assert.Same(t, child, root.GetChild(child.ID()))
	assert.Nil(t, root.GetChild(NewLayerID()))

	child.Dispose()
	assert.Nil(t, root.GetChild(child.ID()))
}

func TestSetChildrenReplacesAll(t *testing.T) {
	root := NewLayer()
	a := NewLayer(WithName("a"))
	b := NewLayer(WithName("b"))
	root.AddChild(a)
	root.AddChild(b)

	c := NewLayer(WithName("c"))
	root.SetChildren([]*Layer{b, c})

	assert.Equal(t, []*Layer{b, c}, root.Children())
	assert.Nil(t, root.GetChild(a.ID()))
	assert.False(t, a.Disposed())
}

func TestAddChildRegistersExistingSymbols(t *testing.T) {
	root := NewLayer()
	child := NewLayer()
	child.AddSymbol(7)
	root.AddChild(child)

	// Exclusive placement sees symbols added before parenting.
	other := NewLayer()
	root.AddChild(other)
	other.AddSymbolExclusive(7)
	root.Update()

	assert.Empty(t, child.Symbols())
	assert.Equal(t, []SymbolID{7}, other.Symbols())
}

func TestGlobalOrderAppliesToChildren(t *testing.T) {
	root := NewLayer()
	child := NewLayer()
	root.AddChild(child)
	child.AddSymbol(1)
	child.AddSymbol(2)

	root.AddGlobalOrderDependency(SymbolItem(2), SymbolItem(1))
	root.Update()
	assert.Equal(t, []SymbolID{2, 1}, child.Symbols())
}

func TestGlobalOrderChangeForcesChildResort(t *testing.T) {
	root := NewLayer()
	child := NewLayer()
	root.AddChild(child)
	child.AddSymbol(1)
	child.AddSymbol(2)
	root.Update()
	require.Equal(t, []SymbolID{1, 2}, child.Symbols())
	require.False(t, child.Dirty())

	// The child itself is clean; the group-level change alone must trigger
	// its re-resolution.
	assert.True(t, root.AddGlobalOrderDependency(SymbolItem(2), SymbolItem(1)))
	root.Update()
	assert.Equal(t, []SymbolID{2, 1}, child.Symbols())

	assert.True(t, root.RemoveGlobalOrderDependency(SymbolItem(2), SymbolItem(1)))
	root.Update()
	assert.Equal(t, []SymbolID{1, 2}, child.Symbols())
}

func TestGlobalAndLocalOrderCombine(t *testing.T) {
	root := NewLayer()
	child := NewLayer()
	root.AddChild(child)
	for id := SymbolID(1); id <= 3; id++ {
		child.AddSymbol(id)
	}

	root.AddGlobalOrderDependency(SymbolItem(3), SymbolItem(1))
	child.AddOrderDependency(SymbolItem(1), SymbolItem(2))
	root.Update()

	assert.Equal(t, []SymbolID{3, 1, 2}, child.Symbols())
}

func TestUpdateRecursesIntoGrandchildren(t *testing.T) {
	root := NewLayer()
	mid := NewLayer()
	leaf := NewLayer()
	root.AddChild(mid)
	mid.AddChild(leaf)

	leaf.AddSymbol(1)
	leaf.AddSymbol(2)
	mid.AddGlobalOrderDependency(SymbolItem(2), SymbolItem(1))

	root.Update()
	assert.Equal(t, []SymbolID{2, 1}, leaf.Symbols())
}

func TestMask(t *testing.T) {
	root := NewLayer()
	mask := NewLayer(WithName("mask"))

	root.SetMask(mask)
	assert.Same(t, mask, root.Mask())

	mask.Dispose()
	assert.Nil(t, root.Mask())

	root.SetMask(mask)
	assert.Nil(t, root.Mask())
}

func TestGlobalOrderSnapshot(t *testing.T) {
	root := NewLayer()
	root.AddGlobalOrderDependency(SymbolItem(1), SymbolItem(2))

	snapshot := root.GlobalOrder()
	require.Equal(t, 1, snapshot.Len())

	// The snapshot is detached from the live graph.
	snapshot.Insert(SymbolItem(2), SymbolItem(3))
	assert.Equal(t, 1, root.GlobalOrder().Len())
}
