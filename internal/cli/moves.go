package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/hypercube/internal/turn"
)

var movesCmd = &cobra.Command{
	Use:   "moves",
	Short: "List every move name",
	RunE:  runMoves,
}

func init() {
	rootCmd.AddCommand(movesCmd)
}

func runMoves(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	groups := []struct {
		title string
		moves []turn.Move
	}{
		{"Slice turns", turn.SliceMoves()},
		{"Whole rotations", turn.WholeMoves()},
		{"Paired W rotations", turn.PairedMoves()},
		{"Gyro", []turn.Move{turn.Gyro}},
	}

	for _, g := range groups {
		fmt.Fprintln(out, titleStyle.Render(g.title))
		for _, m := range g.moves {
			fmt.Fprintf(out, "  %-4s %-9s %s\n", m.Name, m.Kind, describe(m))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, statusStyle.Render("Append ' to play a move backwards."))
	return nil
}

func describe(m turn.Move) string {
	switch m.Kind {
	case turn.KindGyro:
		return "cycles pieces through both hyper-layers"
	case turn.KindPairedW:
		return "anna and kata turn opposite ways"
	}
	if m.Step == 2 {
		return "half turn"
	}
	return "quarter turn"
}
