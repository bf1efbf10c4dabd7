package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRulesApplyGlobal(t *testing.T) {
	rules := NewOrderRules().
		Add(rectKind, overlayKind).
		Add(underKind, rectKind).
		Add(rectKind, overlayKind) // duplicate

	root := NewLayer()
	assert.Equal(t, 2, rules.ApplyGlobal(root))
	assert.Equal(t, 0, rules.ApplyGlobal(root))
	assert.Equal(t, 2, root.GlobalOrder().Len())
	assert.Len(t, rules.Rules(), 3)
}

func TestOrderRulesApplyLocal(t *testing.T) {
	rules := NewOrderRules().Add(rectKind, circleKind)
	layer := NewLayer()

	assert.Equal(t, 1, rules.ApplyLocal(layer))
	assert.True(t, layer.LocalOrder().Contains(SystemItem(rectKind), SystemItem(circleKind)))
}

func TestShapesOrderDependency(t *testing.T) {
	renderer := newTestRenderer()
	layer := NewLayer()

	// circle before rect, against identity order.
	layer.PlaceShape(renderer, rectShape{})
	layer.PlaceShape(renderer, circleShape{})
	rectSym, _ := layer.SymbolOf(SystemItem(rectKind))
	circleSym, _ := layer.SymbolOf(SystemItem(circleKind))

	assert.True(t, AddShapesOrderDependency[circleShape, rectShape](layer))
	assert.False(t, AddShapesOrderDependency[circleShape, rectShape](layer))

	layer.Update()
	assert.Equal(t, []SymbolID{circleSym, rectSym}, layer.Symbols())

	assert.True(t, RemoveShapesOrderDependency[circleShape, rectShape](layer))
	layer.Update()
	assert.Equal(t, []SymbolID{rectSym, circleSym}, layer.Symbols())
}

func TestGlobalShapesOrderDependency(t *testing.T) {
	renderer := newTestRenderer()
	root := NewLayer()
	child := NewLayer()
	root.AddChild(child)

	child.PlaceShape(renderer, rectShape{})
	child.PlaceShape(renderer, circleShape{})
	rectSym, _ := child.SymbolOf(SystemItem(rectKind))
	circleSym, _ := child.SymbolOf(SystemItem(circleKind))

	require.True(t, AddGlobalShapesOrderDependency[circleShape, rectShape](root))
	root.Update()
	assert.Equal(t, []SymbolID{circleSym, rectSym}, child.Symbols())

	require.True(t, RemoveGlobalShapesOrderDependency[circleShape, rectShape](root))
	root.Update()
	assert.Equal(t, []SymbolID{rectSym, circleSym}, child.Symbols())
}

// Kind-level constraints may be declared before any instance of the kind
// exists; they take effect once instances are placed.
func TestRuleBeforePlacement(t *testing.T) {
	renderer := newTestRenderer()
	layer := NewLayer()

	AddShapesOrderDependency[circleShape, rectShape](layer)
	layer.Update()
	assert.Empty(t, layer.Symbols())

	layer.PlaceShape(renderer, rectShape{})
	layer.PlaceShape(renderer, circleShape{})
	rectSym, _ := layer.SymbolOf(SystemItem(rectKind))
	circleSym, _ := layer.SymbolOf(SystemItem(circleKind))

	layer.Update()
	assert.Equal(t, []SymbolID{circleSym, rectSym}, layer.Symbols())
}
