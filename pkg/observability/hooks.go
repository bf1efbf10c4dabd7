// Package observability provides hooks for metrics and tracing of scene
// resolution.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks at
// startup to receive events about depth-order resolution and shape system
// registry activity.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the scene core dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// Hook signatures carry no context.Context: the scene core is single-threaded
// and frame-driven, with no blocking operations to propagate cancellation
// through.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSceneHooks(&mySceneHooks{})
//	    observability.SetRegistryHooks(&myRegistryHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scene().OnResolveStart(layerID, len(elements))
//	// ... resolve ...
//	observability.Scene().OnResolveComplete(layerID, len(symbols), duration)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Scene Hooks
// =============================================================================

// SceneHooks receives events from layer depth-order resolution.
type SceneHooks interface {
	// OnResolveStart records the start of a layer resolve pass.
	OnResolveStart(layerID string, elementCount int)

	// OnResolveComplete records a finished resolve pass and its output size.
	OnResolveComplete(layerID string, symbolCount int, duration time.Duration)

	// OnItemDropped records a shape-system item dropped from the resolved
	// output because no symbol was registered for it.
	OnItemDropped(layerID string, shapeSystemID uint32)
}

// =============================================================================
// Registry Hooks
// =============================================================================

// RegistryHooks receives events from shape system registry operations.
type RegistryHooks interface {
	// OnSystemHit records a registry lookup served from the cache.
	OnSystemHit(shapeSystemID uint32)

	// OnSystemCreate records construction of a new shape system instance.
	OnSystemCreate(shapeSystemID uint32)

	// OnInstantiate records a shape instantiated into a shared symbol.
	OnInstantiate(shapeSystemID, symbolID uint32)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSceneHooks is a no-op implementation of SceneHooks.
type NoopSceneHooks struct{}

func (NoopSceneHooks) OnResolveStart(string, int)                   {}
func (NoopSceneHooks) OnResolveComplete(string, int, time.Duration) {}
func (NoopSceneHooks) OnItemDropped(string, uint32)                 {}

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnSystemHit(uint32)           {}
func (NoopRegistryHooks) OnSystemCreate(uint32)        {}
func (NoopRegistryHooks) OnInstantiate(uint32, uint32) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sceneHooks    SceneHooks    = NoopSceneHooks{}
	registryHooks RegistryHooks = NoopRegistryHooks{}
	hooksMu       sync.RWMutex
)

// SetSceneHooks registers custom scene hooks.
// This should be called once at application startup before any scene updates.
func SetSceneHooks(h SceneHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sceneHooks = h
	}
}

// SetRegistryHooks registers custom registry hooks.
// This should be called once at application startup before any registry use.
func SetRegistryHooks(h RegistryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		registryHooks = h
	}
}

// Scene returns the registered scene hooks.
func Scene() SceneHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sceneHooks
}

// Registry returns the registered registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sceneHooks = NoopSceneHooks{}
	registryHooks = NoopRegistryHooks{}
}
