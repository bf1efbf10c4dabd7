// Package pkg provides the core libraries for SceneKit render-order resolution.
//
// # Overview
//
// SceneKit decides the order in which the symbols of a layered 2D scene are
// drawn. Scenes are organized into layers, each with its own camera and
// element set; constraints between elements (explicit, group-wide, or
// declared statically on shape kinds) are resolved into a deterministic
// depth order once per frame.
//
// # Architecture
//
// The typical data flow:
//
//	Scene mutations (add/remove symbols, constraints)
//	         ↓
//	    [scene] package (layers, groups, shape systems, dirty tracking)
//	         ↓
//	    [depgraph] package (dependency graph + topological resolution)
//	         ↓
//	    [sceneio] package (JSON snapshots) / DOT / SVG output
//
// # Main Packages
//
// [scene] - Layers, layer groups, cameras, shape system registries, and the
// once-per-frame update pass that recomputes symbol order.
//
// [depgraph] - Generic edge-set dependency graph with deterministic
// topological resolution and cycle survival. Also exports graphs as
// Graphviz DOT and SVG.
//
// [sceneio] - JSON snapshot serialization for resolved scene trees.
//
// [errors] - Structured errors with stable codes for manifest loading and
// export surfaces.
//
// [observability] - Pluggable hooks for resolve and registry events.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// [scene]: https://pkg.go.dev/github.com/scenekit/scenekit/pkg/scene
// [depgraph]: https://pkg.go.dev/github.com/scenekit/scenekit/pkg/depgraph
// [sceneio]: https://pkg.go.dev/github.com/scenekit/scenekit/pkg/sceneio
// [errors]: https://pkg.go.dev/github.com/scenekit/scenekit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/scenekit/scenekit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/scenekit/scenekit/pkg/buildinfo
package pkg
