// Package sceneio serializes resolved scene trees to a stable JSON snapshot
// format and back.
//
// A snapshot is a flat list of layers with parent references, each carrying
// its element set, its cached symbol order, and its ordering constraints in
// textual item form. Snapshots are produced after an update pass and record
// the cached state as-is; they do not trigger resolution.
//
// [Snapshots]
//
// Use [FromScene] to capture a tree, [Marshal]/[Write]/[WriteFile] to encode
// it, and [Read]/[ReadFile] to decode a snapshot for inspection. Shape system
// elements cannot be reconstructed into live systems from a snapshot; their
// factories are code, not data.
package sceneio
