package sceneio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/scenekit/scenekit/pkg/scene"
)

// =============================================================================
// Snapshot Serialization API
// =============================================================================

// Marshal converts a scene tree to JSON bytes.
// Layers appear in depth-first slot order for deterministic output.
func Marshal(root *scene.Layer) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeSnapshotTo(FromScene(root), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a scene tree to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(root *scene.Layer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeSnapshotTo(FromScene(root), f)
}

// Write writes a scene tree as JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write(root *scene.Layer, w io.Writer) error {
	return writeSnapshotTo(FromScene(root), w)
}

// ReadFile reads a JSON file and returns the decoded snapshot.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readSnapshotFrom(f)
}

// Read decodes a JSON snapshot from an io.Reader.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (*Snapshot, error) {
	return readSnapshotFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeSnapshotTo(snap Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readSnapshotFrom(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &snap, nil
}
