// Package scene implements render-order resolution for a retained-mode 2D
// scene graph.
//
// A scene consists of one or more [Layer]s. Each layer is assigned a camera
// and a set of elements ([Item]s: bare symbols or shape systems) to be drawn.
// Layers can share cameras and symbols; for example, a "mini-map" layer can
// display the same symbols as the main layer through a different camera.
//
// # Layer Ordering
//
// A lower layer is always drawn entirely before a higher one. Element ordering
// rules never apply between elements placed on different layers.
//
// # Element Ordering
//
// Within a layer, draw order is a total order satisfying depth-order
// dependencies from three independent sources:
//
//   - global rules, registered on a parent layer and shared by all of its
//     children ([Layer.AddGlobalOrderDependency])
//   - local per-layer rules ([Layer.AddOrderDependency])
//   - static per-shape-kind rules declared in a kind's [SystemSpec]
//
// The sources are unioned before resolution; none takes precedence. Elements
// with no relative constraint are ordered by ascending id (ids increase with
// every symbol created), which makes resolution deterministic. Mutations only
// mark dirty flags; the ordering is recomputed by [Layer.Update], typically
// once per animation frame.
//
// # Shape Systems
//
// Every shape kind compiles down to a single shared [ShapeSystem] per layer,
// so that all instances of the kind are drawn under one symbol with a single
// draw call. The per-layer [ShapeSystemRegistry] caches the shared instance;
// static depth-order relations declared on the kind participate in sorting
// without the caller restating them.
//
// # Lifetime
//
// Parents hold children weakly: a disposed layer is synchronously removed from
// every parent collection by [Layer.Dispose], and lookups of a disposed layer
// fail cleanly rather than returning a dangling handle.
//
// # Concurrency
//
// The package is single-threaded and frame-driven. All mutation and
// resolution must happen on one goroutine, serialized by the external
// animation-frame driver.
package scene
