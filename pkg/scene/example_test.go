package scene_test

import (
	"fmt"

	"github.com/scenekit/scenekit/pkg/scene"
)

// Build a small scene: three symbols on one layer, ordered by two explicit
// constraints, resolved once per frame by Update.
func ExampleLayer() {
	layer := scene.NewLayer(scene.WithName("main"))
	layer.AddSymbol(1)
	layer.AddSymbol(2)
	layer.AddSymbol(3)
	layer.AddOrderDependency(scene.SymbolItem(3), scene.SymbolItem(1))
	layer.AddOrderDependency(scene.SymbolItem(1), scene.SymbolItem(2))

	layer.Update()
	fmt.Println(layer.Symbols())

	layer.RemoveOrderDependency(scene.SymbolItem(3), scene.SymbolItem(1))
	layer.Update()
	fmt.Println(layer.Symbols())

	// Output:
	// [3 1 2]
	// [1 2 3]
}

// Group-wide constraints live on the parent and apply to every child layer.
func ExampleLayer_AddGlobalOrderDependency() {
	root := scene.NewLayer(scene.WithName("root"))
	background := scene.NewLayer(scene.WithName("background"))
	overlay := scene.NewLayer(scene.WithName("overlay"))
	root.AddChild(background)
	root.AddChild(overlay)

	background.AddSymbol(10)
	background.AddSymbol(11)
	overlay.AddSymbol(10)
	overlay.AddSymbol(11)
	root.AddGlobalOrderDependency(scene.SymbolItem(11), scene.SymbolItem(10))

	root.Update()
	fmt.Println(background.Symbols())
	fmt.Println(overlay.Symbols())

	// Output:
	// [11 10]
	// [11 10]
}
