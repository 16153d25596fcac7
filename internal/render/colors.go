package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

type swatch struct {
	letter string
	bg     lipgloss.Color
}

var swatches = map[puzzle.Color]swatch{
	puzzle.ColorPlusX:  {"R", lipgloss.Color("160")},
	puzzle.ColorMinusX: {"O", lipgloss.Color("208")},
	puzzle.ColorPlusY:  {"W", lipgloss.Color("255")},
	puzzle.ColorMinusY: {"Y", lipgloss.Color("226")},
	puzzle.ColorPlusZ:  {"B", lipgloss.Color("27")},
	puzzle.ColorMinusZ: {"G", lipgloss.Color("34")},
	puzzle.ColorPlusW:  {"P", lipgloss.Color("93")},
	puzzle.ColorMinusW: {"M", lipgloss.Color("201")},
}

// Letter returns the one-letter code of a colour, "." for none.
func Letter(c puzzle.Color) string {
	if s, ok := swatches[c]; ok {
		return s.letter
	}
	return "."
}

// Cell renders one facelet as a two-column cell. Without a colour terminal
// lipgloss drops the background and the letter remains.
func Cell(c puzzle.Color) string {
	s, ok := swatches[c]
	if !ok {
		return ". "
	}
	return lipgloss.NewStyle().
		Background(s.bg).
		Foreground(lipgloss.Color("0")).
		Render(s.letter + " ")
}
