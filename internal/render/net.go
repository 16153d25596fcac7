// Package render draws the puzzle as a flat text net, one net per
// hyper-layer.
package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

// Grid is a 2x2 face, row 0 on top.
type Grid [2][2]puzzle.Color

// LayerView is the facelet layout of one hyper-layer. Faces are keyed by
// world side: West is -X, East is +X. Which of them is L depends on the
// layer. Hyper holds the hyper facelets in two slices, front (z<0) first.
type LayerView struct {
	Anna  bool
	Up    Grid
	Down  Grid
	Front Grid
	Back  Grid
	West  Grid
	East  Grid
	Hyper [2]Grid
}

// Net collects facelet colours and lays them out. It implements
// puzzle.Painter, so a cube can push colours to it.
type Net struct {
	mu     sync.RWMutex
	colors map[puzzle.FaceletRef]puzzle.Color
}

// NewNet creates an empty net.
func NewNet() *Net {
	return &Net{colors: make(map[puzzle.FaceletRef]puzzle.Color)}
}

// Paint records the colour of one facelet.
func (n *Net) Paint(ref puzzle.FaceletRef, color puzzle.Color) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.colors[ref] = color
}

func (n *Net) color(ref puzzle.FaceletRef, fallback puzzle.Color) puzzle.Color {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if c, ok := n.colors[ref]; ok {
		return c
	}
	return fallback
}

// Layout places every facelet of c. Painted colours win over the cube's
// own colour ids. Call it between moves.
func (n *Net) Layout(c *puzzle.Cube) [2]LayerView {
	views := [2]LayerView{{Anna: true}, {Anna: false}}

	for i, s := range c.Snapshot() {
		ref := puzzle.FaceletRef{Piece: i / puzzle.FaceletsPerPiece, Index: i % puzzle.FaceletsPerPiece}
		color := n.color(ref, s.Color)

		v := &views[1]
		if s.Slot.Anna {
			v = &views[0]
		}
		slot := s.Slot

		switch s.Face {
		case puzzle.FaceU:
			v.Up[pick(slot.Z < 0)][pick(slot.X > 0)] = color
		case puzzle.FaceD:
			v.Down[pick(slot.Z > 0)][pick(slot.X > 0)] = color
		case puzzle.FaceF:
			v.Front[pick(slot.Y < 0)][pick(slot.X > 0)] = color
		case puzzle.FaceB:
			v.Back[pick(slot.Y < 0)][pick(slot.X < 0)] = color
		case puzzle.FaceL, puzzle.FaceR:
			if eastSide(s.Face, s.Slot.Anna) {
				v.East[pick(slot.Y < 0)][pick(slot.Z > 0)] = color
			} else {
				v.West[pick(slot.Y < 0)][pick(slot.Z < 0)] = color
			}
		case puzzle.FaceA, puzzle.FaceK:
			v.Hyper[pick(slot.Z > 0)][pick(slot.Y < 0)][pick(slot.X > 0)] = color
		}
	}
	return views
}

// eastSide reports whether face lies on the +X side of its layer. The outer
// face of anna looks towards -X, the outer face of kata towards +X.
func eastSide(face puzzle.Face, anna bool) bool {
	return (face == puzzle.FaceL) != anna
}

func pick(b bool) int {
	if b {
		return 1
	}
	return 0
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Render draws both layers side by side:
//
//	      U
//	   W  F  E  B
//	      D
//	   hyper front, hyper back
func (n *Net) Render(c *puzzle.Cube) string {
	views := n.Layout(c)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderLayer(views[0]),
		"    ",
		renderLayer(views[1]),
	)
}

func renderLayer(v LayerView) string {
	title := "kata"
	if v.Anna {
		title = "anna"
	}

	blank := strings.Repeat(" ", 4) + "\n" + strings.Repeat(" ", 4)
	row := func(blocks ...string) string {
		parts := make([]string, 0, 2*len(blocks))
		for i, b := range blocks {
			if i > 0 {
				parts = append(parts, " ")
			}
			parts = append(parts, b)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		row(blank, renderGrid(v.Up)),
		row(renderGrid(v.West), renderGrid(v.Front), renderGrid(v.East), renderGrid(v.Back)),
		row(blank, renderGrid(v.Down)),
		labelStyle.Render("hyper"),
		row(renderGrid(v.Hyper[0]), renderGrid(v.Hyper[1])),
	)
}

func renderGrid(g Grid) string {
	var b strings.Builder
	for r := range g {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, c := range g[r] {
			b.WriteString(Cell(c))
		}
	}
	return b.String()
}
