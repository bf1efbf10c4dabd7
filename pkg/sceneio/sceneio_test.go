package sceneio

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/scenekit/scenekit/pkg/errors"
	"github.com/scenekit/scenekit/pkg/scene"
)

func buildTestScene() *scene.Layer {
	root := scene.NewLayer(scene.WithName("root"))
	child := scene.NewLayer(scene.WithName("child"))
	root.AddChild(child)

	child.AddSymbol(1)
	child.AddSymbol(2)
	child.AddOrderDependency(scene.SymbolItem(2), scene.SymbolItem(1))
	root.AddGlobalOrderDependency(scene.SymbolItem(1), scene.SymbolItem(2))
	return root
}

func TestFromSceneCapturesTree(t *testing.T) {
	root := buildTestScene()
	root.Update()

	snap := FromScene(root)
	if len(snap.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(snap.Layers))
	}

	rootSnap, childSnap := snap.Layers[0], snap.Layers[1]
	if rootSnap.Name != "root" || rootSnap.Parent != "" {
		t.Errorf("unexpected root snapshot: %+v", rootSnap)
	}
	if childSnap.Parent != rootSnap.ID {
		t.Errorf("child parent = %q, want %q", childSnap.Parent, rootSnap.ID)
	}
	if len(rootSnap.GlobalEdges) != 1 {
		t.Errorf("expected 1 global edge on root, got %d", len(rootSnap.GlobalEdges))
	}
	if len(childSnap.LocalEdges) != 1 {
		t.Errorf("expected 1 local edge on child, got %d", len(childSnap.LocalEdges))
	}

	// Global edge (1 below 2) combined with local (2 below 1) is a cycle;
	// identity order survives it.
	want := []uint32{1, 2}
	if len(childSnap.Symbols) != 2 || childSnap.Symbols[0] != want[0] || childSnap.Symbols[1] != want[1] {
		t.Errorf("child symbols = %v, want %v", childSnap.Symbols, want)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	root := buildTestScene()
	root.Update()

	var buf bytes.Buffer
	if err := Write(root, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	snap, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(snap.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(snap.Layers))
	}
	if snap.Layers[1].Name != "child" {
		t.Errorf("layer name = %q, want child", snap.Layers[1].Name)
	}
}

func TestWriteReadFile(t *testing.T) {
	root := buildTestScene()
	root.Update()
	path := filepath.Join(t.TempDir(), "scene.json")

	if err := WriteFile(root, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	snap, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(snap.Layers) != 2 {
		t.Errorf("expected 2 layers, got %d", len(snap.Layers))
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadRejectsMalformedJSON(t *testing.T) {
	if _, err := Read(bytes.NewReader([]byte("{not json"))); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestParseItem(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    scene.Item
		wantErr bool
	}{
		{name: "symbol", input: "symbol:3", want: scene.SymbolItem(3)},
		{name: "system", input: "system:1", want: scene.SystemItem(1)},
		{name: "missing separator", input: "symbol3", wantErr: true},
		{name: "bad id", input: "symbol:x", wantErr: true},
		{name: "negative id", input: "symbol:-1", wantErr: true},
		{name: "unknown kind", input: "sprite:3", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseItem(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				if !errors.Is(err, errors.ErrCodeInvalidItem) {
					t.Errorf("expected INVALID_ITEM code, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseItem(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEdge(t *testing.T) {
	below, above, err := ParseEdge(Edge{Below: "symbol:1", Above: "system:2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if below != scene.SymbolItem(1) || above != scene.SystemItem(2) {
		t.Errorf("got (%v, %v)", below, above)
	}
	if _, _, err := ParseEdge(Edge{Below: "bad", Above: "symbol:1"}); err == nil {
		t.Fatal("expected error for bad below endpoint")
	}
}
