// Package cli implements the scenekit command-line interface.
//
// This package provides commands for resolving scene manifests into render
// order, exporting depth-order graphs as DOT or SVG, serving a scene over
// HTTP for inspection, and running an animated terminal demo. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - resolve: Load a scene manifest and print the resolved render order
//   - dot: Export a layer's combined depth-order graph as DOT or SVG
//   - serve: Serve a resolved scene over HTTP for inspection
//   - demo: Run an animated frame-loop demo in the terminal
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/scenekit/scenekit/pkg/buildinfo"
)

// appName is the application name used for display.
const appName = "scenekit"

// Execute runs the scenekit CLI and returns an error if any command fails.
// This is the main entry point for the CLI application. The context cancels
// long-running commands (serve, demo) on shutdown.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "SceneKit resolves render order for layered 2D scenes",
		Long:         `SceneKit is a CLI tool for working with layered 2D scene graphs: it resolves the depth order of symbols from declared constraints and inspects the result as text, JSON, DOT, or a live HTTP endpoint.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newResolveCmd())
	root.AddCommand(newDotCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newDemoCmd())

	return root.ExecuteContext(ctx)
}
