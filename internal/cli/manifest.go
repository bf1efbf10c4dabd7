package cli

import (
	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/scenekit/scenekit/pkg/errors"
	"github.com/scenekit/scenekit/pkg/scene"
	"github.com/scenekit/scenekit/pkg/sceneio"
)

// =============================================================================
// Manifest - TOML Scene Description
// =============================================================================

// Manifest describes a scene in TOML form: a set of named layers with their
// symbols and ordering constraints.
//
// Example:
//
//	name = "ui"
//
//	[[rules]]
//	below = "symbol:2"
//	above = "symbol:1"
//
//	[[layers]]
//	name = "background"
//	symbols = [1, 2, 3]
//
//	[[layers]]
//	name = "overlay"
//	parent = "background"
//	symbols = [4]
type Manifest struct {
	// Name labels the root layer. Defaults to "root".
	Name string `toml:"name"`
	// Rules are group-wide constraints applied to the root layer.
	Rules []RuleSpec `toml:"rules"`
	// Layers are the child layers, in declaration order. A layer may name
	// an earlier layer as its parent; otherwise it hangs off the root.
	Layers []LayerSpec `toml:"layers"`
}

// LayerSpec describes one layer.
type LayerSpec struct {
	Name    string      `toml:"name"`
	Parent  string      `toml:"parent"`
	Symbols []uint32    `toml:"symbols"`
	Rules   []RuleSpec  `toml:"rules"`
	Camera  *CameraSpec `toml:"camera"`
}

// CameraSpec overrides the default camera of a layer.
type CameraSpec struct {
	X    float64 `toml:"x"`
	Y    float64 `toml:"y"`
	Zoom float64 `toml:"zoom"`
}

// RuleSpec is a depth-order constraint with endpoints in textual item form
// ("symbol:3", "system:1").
type RuleSpec struct {
	Below string `toml:"below"`
	Above string `toml:"above"`
}

// =============================================================================
// Loading
// =============================================================================

// loadManifest reads and validates a TOML scene manifest.
func loadManifest(path string) (*Manifest, error) {
	if err := errors.ValidateManifestPath(path); err != nil {
		return nil, err
	}
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", path)
	}
	if err := validateManifest(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func validateManifest(m *Manifest) error {
	// Parents must be declared before their children, which also rules out
	// parent cycles.
	seen := make(map[string]bool, len(m.Layers))
	for _, layer := range m.Layers {
		if err := errors.ValidateLayerName(layer.Name); err != nil {
			return err
		}
		if seen[layer.Name] {
			return errors.New(errors.ErrCodeInvalidLayer, "duplicate layer name %q", layer.Name)
		}
		if layer.Parent != "" && !seen[layer.Parent] {
			return errors.New(errors.ErrCodeInvalidLayer,
				"layer %q: parent %q not declared before it", layer.Name, layer.Parent)
		}
		for _, rule := range layer.Rules {
			if err := validateRule(rule); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidRule, err, "layer %q", layer.Name)
			}
		}
		seen[layer.Name] = true
	}
	for _, rule := range m.Rules {
		if err := validateRule(rule); err != nil {
			return err
		}
	}
	return nil
}

func validateRule(rule RuleSpec) error {
	_, _, err := sceneio.ParseEdge(sceneio.Edge{Below: rule.Below, Above: rule.Above})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRule, err, "rule %s -> %s", rule.Below, rule.Above)
	}
	return nil
}

// =============================================================================
// Scene Construction
// =============================================================================

// buildScene turns a validated manifest into a live layer tree. The returned
// root has not been updated yet; call Update before reading symbol orders.
func buildScene(m *Manifest, logger *log.Logger) (*scene.Layer, error) {
	rootName := m.Name
	if rootName == "" {
		rootName = "root"
	}
	root := scene.NewLayer(scene.WithName(rootName), scene.WithLogger(logger))

	byName := make(map[string]*scene.Layer, len(m.Layers))
	for _, spec := range m.Layers {
		opts := []scene.LayerOption{scene.WithName(spec.Name), scene.WithLogger(logger)}
		if spec.Camera != nil {
			camera := scene.NewCamera2D()
			camera.X = spec.Camera.X
			camera.Y = spec.Camera.Y
			if spec.Camera.Zoom != 0 {
				camera.Zoom = spec.Camera.Zoom
			}
			opts = append(opts, scene.WithCamera(camera))
		}
		layer := scene.NewLayer(opts...)
		byName[spec.Name] = layer

		parent := root
		if spec.Parent != "" {
			parent = byName[spec.Parent]
		}
		parent.AddChild(layer)

		for _, symbol := range spec.Symbols {
			layer.AddSymbol(scene.SymbolID(symbol))
		}
		for _, rule := range spec.Rules {
			below, above, err := sceneio.ParseEdge(sceneio.Edge{Below: rule.Below, Above: rule.Above})
			if err != nil {
				return nil, err
			}
			layer.AddOrderDependency(below, above)
		}
	}

	for _, rule := range m.Rules {
		below, above, err := sceneio.ParseEdge(sceneio.Edge{Below: rule.Below, Above: rule.Above})
		if err != nil {
			return nil, err
		}
		root.AddGlobalOrderDependency(below, above)
	}
	return root, nil
}

// loadScene is the common entry for commands taking a manifest argument.
func loadScene(path string, logger *log.Logger) (*scene.Layer, error) {
	m, err := loadManifest(path)
	if err != nil {
		return nil, err
	}
	return buildScene(m, logger)
}
