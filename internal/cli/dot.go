package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scenekit/scenekit/pkg/depgraph"
	"github.com/scenekit/scenekit/pkg/errors"
	"github.com/scenekit/scenekit/pkg/scene"
)

// newDotCmd creates the dot command.
func newDotCmd() *cobra.Command {
	var (
		layerName string
		output    string
		asSVG     bool
	)

	cmd := &cobra.Command{
		Use:   "dot [scene.toml]",
		Short: "Export a layer's depth-order graph as DOT or SVG",
		Long: `Export a layer's depth-order graph as DOT or SVG.

The dot command loads a scene manifest and prints the depth-order
constraints of one layer (group-wide rules combined with the layer's own)
in Graphviz DOT form. With --svg the graph is rendered to SVG instead.

By default the root layer is exported; use --layer to pick a child.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDot(cmd, args[0], layerName, output, asSVG)
		},
	}

	cmd.Flags().StringVarP(&layerName, "layer", "l", "", "layer to export (default: root)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&asSVG, "svg", false, "render SVG instead of DOT")

	return cmd
}

func runDot(cmd *cobra.Command, input, layerName, output string, asSVG bool) error {
	logger := loggerFromContext(cmd.Context())

	root, err := loadScene(input, logger)
	if err != nil {
		printError("Failed to load %s: %s", input, errors.UserMessage(err))
		return err
	}
	root.Update()

	graph, elements, err := exportGraph(root, layerName)
	if err != nil {
		return err
	}
	label := func(it scene.Item) string { return it.String() }

	var data []byte
	if asSVG {
		data, err = graph.RenderSVG(cmd.Context(), elements, label)
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "render SVG")
		}
	} else {
		data = []byte(graph.ToDOT(elements, label))
	}

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Graph written")
	printFile(output)
	return nil
}

// findLayer locates a layer by name in the tree. An empty name selects the
// root. The second return is the matched layer's parent, nil for the root.
func findLayer(layer, parent *scene.Layer, name string) (*scene.Layer, *scene.Layer) {
	if name == "" || layer.Name() == name {
		return layer, parent
	}
	for _, child := range layer.Children() {
		if found, p := findLayer(child, layer, name); found != nil {
			return found, p
		}
	}
	return nil, nil
}

// exportGraph is used by the HTTP inspector as well.
func exportGraph(root *scene.Layer, layerName string) (*depgraph.Graph[scene.Item], []scene.Item, error) {
	layer, parent := findLayer(root, nil, layerName)
	if layer == nil {
		return nil, nil, errors.New(errors.ErrCodeLayerNotFound, "no layer named %q", layerName)
	}
	graph := layer.LocalOrder()
	if parent != nil {
		graph.Extend(parent.GlobalOrder())
	} else {
		graph.Extend(layer.GlobalOrder())
	}
	return graph, layer.Items(), nil
}
