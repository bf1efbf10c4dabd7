package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/scenekit/scenekit/pkg/errors"
	"github.com/scenekit/scenekit/pkg/scene"
)

// demoFrameInterval is the tick period of the demo frame loop.
const demoFrameInterval = 500 * time.Millisecond

// newDemoCmd creates the demo command.
func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo [scene.toml]",
		Short: "Run an animated frame-loop demo in the terminal",
		Long: `Run an animated frame-loop demo in the terminal.

The demo command loads a scene manifest and drives it the way a renderer
would: one update per frame. Every other frame it flips an extra ordering
constraint between the first two symbols of each layer, so the resolved
order can be watched changing live.

Press f to flip the constraint manually, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, args[0])
		},
	}
	return cmd
}

func runDemo(cmd *cobra.Command, input string) error {
	logger := loggerFromContext(cmd.Context())

	root, err := loadScene(input, logger)
	if err != nil {
		printError("Failed to load %s: %s", input, errors.UserMessage(err))
		return err
	}

	model := newDemoModel(root)
	p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}

// =============================================================================
// demoModel - Frame Loop
// =============================================================================

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(demoFrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// demoModel drives one scene tree from a bubbletea event loop. Scene access
// stays on the program goroutine, matching the single-threaded contract of
// the scene core.
type demoModel struct {
	root    *scene.Layer
	frame   int
	flipped bool
}

func newDemoModel(root *scene.Layer) demoModel {
	return demoModel{root: root}
}

func (m demoModel) Init() tea.Cmd {
	return frameTick()
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "f":
			// Manual flip; picked up by the next frame's update pass.
			m.flipped = !m.flipped
			m.flipConstraints()
		}
	case frameMsg:
		m.frame++
		if m.frame%2 == 0 {
			m.flipped = !m.flipped
			m.flipConstraints()
		}
		m.root.Update()
		return m, frameTick()
	}
	return m, nil
}

// flipConstraints toggles a reversal constraint between the first two
// symbols of every child layer.
func (m demoModel) flipConstraints() {
	for _, layer := range m.root.Children() {
		symbols := layer.Symbols()
		if len(symbols) < 2 {
			continue
		}
		lo, hi := symbols[0], symbols[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		if m.flipped {
			layer.AddOrderDependency(scene.SymbolItem(hi), scene.SymbolItem(lo))
		} else {
			layer.RemoveOrderDependency(scene.SymbolItem(hi), scene.SymbolItem(lo))
		}
	}
}

func (m demoModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("SceneKit frame loop"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("frame %d  ·  f flip  ·  q quit", m.frame)))
	b.WriteString("\n\n")

	var walk func(layer *scene.Layer, depth int)
	walk = func(layer *scene.Layer, depth int) {
		indent := strings.Repeat("  ", depth)
		b.WriteString(indent + styleLayerName.Render(layer.Name()))
		b.WriteString(StyleDim.Render(" " + iconArrow + " "))
		symbols := layer.Symbols()
		if len(symbols) == 0 {
			b.WriteString(StyleDim.Render("(empty)"))
		}
		for i, s := range symbols {
			if i > 0 {
				b.WriteString(StyleDim.Render(" · "))
			}
			b.WriteString(StyleNumber.Render(fmt.Sprintf("%d", s)))
		}
		b.WriteString("\n")
		for _, child := range layer.Children() {
			walk(child, depth+1)
		}
	}
	walk(m.root, 0)
	return b.String()
}
