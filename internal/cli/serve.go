package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	scenekiterrors "github.com/scenekit/scenekit/pkg/errors"
	"github.com/scenekit/scenekit/pkg/scene"
	"github.com/scenekit/scenekit/pkg/sceneio"
)

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [scene.toml]",
		Short: "Serve a resolved scene over HTTP for inspection",
		Long: `Serve a resolved scene over HTTP for inspection.

The serve command loads a scene manifest, resolves it once, and exposes
the result on a small JSON API:

  GET /snapshot                 full scene snapshot
  GET /layers                   layer ids and names
  GET /layers/{name}/symbols    one layer's resolved symbol order
  GET /layers/{name}/graph.dot  combined depth-order graph as DOT
  GET /layers/{name}/graph.svg  combined depth-order graph as SVG

The server is read-only; reload it to pick up manifest changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args[0], addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")

	return cmd
}

func runServe(cmd *cobra.Command, input, addr string) error {
	logger := loggerFromContext(cmd.Context())

	root, err := loadScene(input, logger)
	if err != nil {
		printError("Failed to load %s: %s", input, scenekiterrors.UserMessage(err))
		return err
	}
	root.Update()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newInspector(root).routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Shut down cleanly when the command context is cancelled.
	go func() {
		<-cmd.Context().Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	printInfo("Serving %s on %s", input, addr)
	logger.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// =============================================================================
// Inspector - Read-Only HTTP API
// =============================================================================

// inspector serves a resolved scene tree. The tree is never mutated after
// construction, so handlers can share it without locking.
type inspector struct {
	root *scene.Layer
}

func newInspector(root *scene.Layer) *inspector {
	return &inspector{root: root}
}

func (in *inspector) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/snapshot", in.handleSnapshot)
	r.Get("/layers", in.handleLayers)
	r.Route("/layers/{name}", func(r chi.Router) {
		r.Get("/symbols", in.handleSymbols)
		r.Get("/graph.dot", in.handleGraphDOT)
		r.Get("/graph.svg", in.handleGraphSVG)
	})
	return r
}

func (in *inspector) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = sceneio.Write(in.root, w)
}

type layerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Parent  string `json:"parent,omitempty"`
	Symbols int    `json:"symbols"`
}

func (in *inspector) handleLayers(w http.ResponseWriter, r *http.Request) {
	var infos []layerInfo
	var walk func(layer *scene.Layer, parent string)
	walk = func(layer *scene.Layer, parent string) {
		infos = append(infos, layerInfo{
			ID:      layer.ID().String(),
			Name:    layer.Name(),
			Parent:  parent,
			Symbols: len(layer.Symbols()),
		})
		for _, child := range layer.Children() {
			walk(child, layer.Name())
		}
	}
	walk(in.root, "")
	writeJSON(w, infos)
}

func (in *inspector) handleSymbols(w http.ResponseWriter, r *http.Request) {
	layer, _ := findLayer(in.root, nil, chi.URLParam(r, "name"))
	if layer == nil {
		writeError(w, http.StatusNotFound, "layer not found")
		return
	}
	writeJSON(w, symbolsOf(layer))
}

func (in *inspector) handleGraphDOT(w http.ResponseWriter, r *http.Request) {
	graph, elements, err := exportGraph(in.root, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, scenekiterrors.UserMessage(err))
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(graph.ToDOT(elements, itemLabel)))
}

func (in *inspector) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	graph, elements, err := exportGraph(in.root, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, scenekiterrors.UserMessage(err))
		return
	}
	svg, err := graph.RenderSVG(r.Context(), elements, itemLabel)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func itemLabel(it scene.Item) string { return it.String() }

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
