package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/hypercube"
	"github.com/SeamusWaldron/hypercube/internal/render"
	"github.com/SeamusWaldron/hypercube/internal/storage"
	"github.com/SeamusWaldron/hypercube/internal/timer"
	"github.com/SeamusWaldron/hypercube/internal/turn"
)

var (
	replaySolveID string
	replayLast    bool
	replayVerbose bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a stored solve",
	Long: `Apply a stored solve's scramble and moves to a fresh puzzle and draw the
final state.

Examples:
  hypercube replay --last
  hypercube replay --id <solve_id> --moves`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVar(&replaySolveID, "id", "", "Solve ID to replay")
	replayCmd.Flags().BoolVar(&replayLast, "last", false, "Replay the last solve")
	replayCmd.Flags().BoolVar(&replayVerbose, "moves", false, "Print every move with its time")
}

func runReplay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solve, err := resolveSolve(db, replaySolveID, replayLast)
	if err != nil {
		return err
	}

	stored, err := storage.NewMoveRepository(db).GetBySolve(solve.SolveID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}
	moves, err := storage.Records(stored)
	if err != nil {
		return fmt.Errorf("failed to decode moves: %w", err)
	}

	var scramble []turn.Record
	if solve.ScrambleText != nil {
		scramble, err = turn.ParseSequence(*solve.ScrambleText)
		if err != nil {
			return fmt.Errorf("failed to parse scramble: %w", err)
		}
	}

	p, err := hypercube.NewPuzzle(hypercube.WithConfig(cfg), hypercube.WithLogger(logger))
	if err != nil {
		return err
	}
	net := render.NewNet()
	p.SetPainter(net)

	if err := p.Apply(scramble...); err != nil {
		return fmt.Errorf("failed to apply scramble: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Solve %s\n", solve.SolveID)
	fmt.Fprintf(out, "Scramble: %d moves\n", len(scramble))
	if replayVerbose {
		for i, m := range moves {
			fmt.Fprintf(out, "  %4d  %s  %s\n", i+1, timer.Format(time.Duration(stored[i].TsMs)*time.Millisecond), m.Notation())
		}
	}

	if err := p.Apply(moves...); err != nil {
		return fmt.Errorf("failed to apply moves: %w", err)
	}

	fmt.Fprintf(out, "Moves: %d, time: %s\n\n", len(moves), timer.Format(solve.Duration()))
	fmt.Fprintln(out, net.Render(p.Cube()))
	return nil
}
