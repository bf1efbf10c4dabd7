package scene

import (
	"slices"

	"github.com/scenekit/scenekit/pkg/observability"
)

// ShapeSystemRegistry is the per-layer cache of shape system instances, keyed
// by shape kind. When a shape is instantiated, it shares the system (and thus
// the symbol) of every other shape of the same kind on the layer, so the
// whole kind is drawn with a single draw call.
//
// The registry is not safe for concurrent use; like the rest of the scene
// core it is confined to the frame-driving goroutine.
type ShapeSystemRegistry struct {
	systems map[ShapeSystemID]ShapeSystem
}

// NewShapeSystemRegistry returns an empty registry.
func NewShapeSystemRegistry() *ShapeSystemRegistry {
	return &ShapeSystemRegistry{systems: make(map[ShapeSystemID]ShapeSystem)}
}

// GetOrRegister returns the cached system for spec.ID, constructing it via
// spec.New against the given renderer on first use.
func (r *ShapeSystemRegistry) GetOrRegister(renderer Renderer, spec SystemSpec) ShapeSystem {
	if system, ok := r.systems[spec.ID]; ok {
		observability.Registry().OnSystemHit(uint32(spec.ID))
		return system
	}
	system := spec.New(renderer)
	r.systems[spec.ID] = system
	observability.Registry().OnSystemCreate(uint32(spec.ID))
	return system
}

// Instantiate resolves (or creates) the shape system for the shape's kind,
// allocates a drawable instance in its shared symbol, and returns the static
// ordering info of the kind, the shared SymbolID, and the instance index.
func (r *ShapeSystemRegistry) Instantiate(renderer Renderer, shape Shape) (SystemInfo, SymbolID, InstanceIndex) {
	spec := shape.SystemSpec()
	system := r.GetOrRegister(renderer, spec)
	instance := system.Instantiate()
	symbol := system.SymbolID()
	info := SystemInfo{
		ID:    spec.ID,
		Above: spec.Above,
		Below: spec.Below,
	}
	observability.Registry().OnInstantiate(uint32(spec.ID), uint32(symbol))
	return info, symbol, instance
}

// Len returns the number of cached systems.
func (r *ShapeSystemRegistry) Len() int { return len(r.systems) }

// SystemIDs returns the tags of all cached systems in ascending order.
func (r *ShapeSystemRegistry) SystemIDs() []ShapeSystemID {
	out := make([]ShapeSystemID, 0, len(r.systems))
	for id := range r.systems {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
