package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scenekit/scenekit/pkg/errors"
	"github.com/scenekit/scenekit/pkg/scene"
	"github.com/scenekit/scenekit/pkg/sceneio"
)

// newResolveCmd creates the resolve command.
func newResolveCmd() *cobra.Command {
	var (
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [scene.toml]",
		Short: "Resolve a scene manifest into render order",
		Long: `Resolve a scene manifest into render order.

The resolve command loads a TOML scene manifest, builds the layer tree,
runs one update pass, and prints the resolved symbol order of every layer.

With --json the full snapshot (layers, elements, constraints, resolved
order) is printed instead; --output writes it to a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0], output, asJSON)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON snapshot to file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON snapshot instead of a summary")

	return cmd
}

func runResolve(cmd *cobra.Command, input, output string, asJSON bool) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	root, err := loadScene(input, logger)
	if err != nil {
		printError("Failed to load %s: %s", input, errors.UserMessage(err))
		return err
	}
	root.Update()

	layers := root.Children()
	prog.done(fmt.Sprintf("Resolved %d layers", len(layers)))

	if output != "" {
		if err := errors.ValidateOutputPath(output); err != nil {
			return err
		}
		if err := sceneio.WriteFile(root, output); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		printSuccess("Snapshot written")
		printFile(output)
		return nil
	}
	if asJSON {
		return sceneio.Write(root, os.Stdout)
	}

	printSuccess("Resolved %s", input)
	printOrders(root)
	return nil
}

// printOrders walks the tree and prints each layer's resolved order.
func printOrders(layer *scene.Layer) {
	printLayerOrder(layer.Name(), symbolsOf(layer))
	for _, child := range layer.Children() {
		printOrders(child)
	}
}

// symbolsOf returns the layer's cached symbol order as raw ids.
func symbolsOf(layer *scene.Layer) []uint32 {
	symbols := layer.Symbols()
	out := make([]uint32, len(symbols))
	for i, s := range symbols {
		out[i] = uint32(s)
	}
	return out
}
