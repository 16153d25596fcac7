package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/hypercube"
	"github.com/SeamusWaldron/hypercube/internal/render"
)

var applyCmd = &cobra.Command{
	Use:   "apply <moves>...",
	Short: "Apply moves to a solved puzzle and draw it",
	Long: `Apply a move sequence to a solved puzzle and draw the result as a net of
both hyper-layers.

Examples:
  hypercube apply AU KF\' G
  hypercube apply "wR rU O'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	p, err := hypercube.NewPuzzle(hypercube.WithConfig(cfg), hypercube.WithLogger(logger))
	if err != nil {
		return err
	}

	net := render.NewNet()
	p.SetPainter(net)

	if err := p.ApplyNotation(strings.Join(args, " ")); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), net.Render(p.Cube()))
	return nil
}
