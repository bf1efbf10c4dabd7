package scene

// Renderer is the boundary to the rendering subsystem. The scene core uses it
// only to construct shape system instances; everything else about the GPU
// side stays behind this interface.
type Renderer interface {
	// AllocateSymbol returns a fresh SymbolID. IDs must increase
	// monotonically across the scene; depth-order resolution uses them as
	// tie-break keys.
	AllocateSymbol() SymbolID
}

// SystemSpec describes a shape kind: its stable type tag, the depth-order
// neighbors declared at definition time, and a factory for the shared
// rendering instance.
//
// The static Above/Below relations cover rules that hold whenever the kind is
// present, e.g. a text cursor that is always above its background. They are
// declared once with the kind instead of being restated per layer.
type SystemSpec struct {
	// ID is the stable tag of the kind. Each kind must use a distinct value.
	ID ShapeSystemID
	// Above lists kinds this one is always drawn above.
	Above []ShapeSystemID
	// Below lists kinds this one is always drawn below.
	Below []ShapeSystemID
	// New constructs the shared rendering instance for the kind. It is
	// called at most once per layer, on first use (see ShapeSystemRegistry).
	New func(r Renderer) ShapeSystem
}

// Shape is a drawable value that compiles down to a shared shape system.
// Every value of one shape type must return the same SystemSpec: the type
// maps to exactly one shape system.
type Shape interface {
	SystemSpec() SystemSpec
}

// ShapeSystem is the shared per-kind rendering backend. All shapes of the
// same kind placed on the same layer are drawn by one system under one
// symbol, enabling batched rendering.
type ShapeSystem interface {
	// SystemID returns the tag of the kind this system renders.
	SystemID() ShapeSystemID
	// SymbolID returns the shared symbol all instances draw under.
	SymbolID() SymbolID
	// Instantiate allocates a drawable instance inside the shared symbol
	// and returns its index.
	Instantiate() InstanceIndex
}

// SystemInfo pairs a shape system id with the static depth ordering of its
// kind. It is returned by ShapeSystemRegistry.Instantiate and consumed by
// Layer.AddShape, so static rules participate in sorting without the caller
// restating them.
type SystemInfo struct {
	ID    ShapeSystemID
	Above []ShapeSystemID // kinds this one is drawn above
	Below []ShapeSystemID // kinds this one is drawn below
}

// SystemIDOf returns the shape system id that shape type S maps to.
func SystemIDOf[S Shape]() ShapeSystemID {
	var s S
	return s.SystemSpec().ID
}
