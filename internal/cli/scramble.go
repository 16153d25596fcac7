package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/hypercube"
	"github.com/SeamusWaldron/hypercube/internal/render"
	"github.com/SeamusWaldron/hypercube/internal/turn"
)

var (
	scrambleSeed  int64
	scrambleMoves int
	scrambleShow  bool
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Print a random scramble",
	Long: `Generate a scramble the same way the interactive mode does and print
it in move notation.

Examples:
  hypercube scramble
  hypercube scramble --moves 30 --seed 7
  hypercube scramble --show`,
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().Int64Var(&scrambleSeed, "seed", 0, "Random seed (default: time based)")
	scrambleCmd.Flags().IntVarP(&scrambleMoves, "moves", "n", 0, "Number of moves (default: from config)")
	scrambleCmd.Flags().BoolVar(&scrambleShow, "show", false, "Draw the scrambled puzzle")
}

func runScramble(cmd *cobra.Command, args []string) error {
	c := *cfg
	if cmd.Flags().Changed("moves") {
		if scrambleMoves < 0 {
			return fmt.Errorf("--moves must not be negative")
		}
		c.Animation.ScrambleMoves = scrambleMoves
	}

	opts := []hypercube.Option{hypercube.WithConfig(&c), hypercube.WithLogger(logger)}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, hypercube.WithSeed(scrambleSeed))
	}

	p, err := hypercube.NewPuzzle(opts...)
	if err != nil {
		return err
	}

	net := render.NewNet()
	p.SetPainter(net)

	records, err := p.Scramble()
	if err != nil {
		return fmt.Errorf("failed to scramble: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, turn.FormatSequence(records))
	if scrambleShow {
		fmt.Fprintln(out)
		fmt.Fprintln(out, net.Render(p.Cube()))
	}
	return nil
}
