package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/hypercube/internal/storage"
	"github.com/SeamusWaldron/hypercube/internal/timer"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List timed solves",
	Long:  `List the most recent timed solves, newest first, followed by the best time.`,
	RunE:  runHistory,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <solve_id>",
	Short: "Delete a solve and its moves",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of solves to list")
	historyCmd.AddCommand(historyDeleteCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Hypercube Solve History")
	fmt.Fprintln(out, "=======================")
	fmt.Fprintf(out, "Database: %s\n\n", db.Path())

	solveRepo := storage.NewSolveRepository(db)
	solves, err := solveRepo.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}

	if len(solves) == 0 {
		fmt.Fprintln(out, "No solves recorded")
		fmt.Fprintln(out, "  (Use 'hypercube play', press p to scramble, solve, then SPACE)")
		return nil
	}

	for _, s := range solves {
		printSolveLine(out, s)
	}

	best, err := solveRepo.Best()
	if err != nil {
		return fmt.Errorf("failed to get best solve: %w", err)
	}
	if best != nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %s (%d moves, %s)\n",
			timer.Format(best.Duration()), best.MoveCount, best.StartedAt.Local().Format(time.DateTime))
	}
	return nil
}

func printSolveLine(out io.Writer, s storage.Solve) {
	duration := "unfinished"
	if s.EndedAt != nil {
		duration = timer.Format(s.Duration())
	}
	fmt.Fprintf(out, "%s  %s  %-10s  %3d moves\n",
		s.SolveID[:8], s.StartedAt.Local().Format(time.DateTime), duration, s.MoveCount)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solveRepo := storage.NewSolveRepository(db)
	solve, err := solveRepo.Get(args[0])
	if err != nil {
		return fmt.Errorf("failed to get solve: %w", err)
	}
	if solve == nil {
		return fmt.Errorf("solve %s: %w", args[0], storage.ErrNotFound)
	}

	if err := solveRepo.Delete(solve.SolveID); err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted solve %s\n", solve.SolveID)
	return nil
}

// resolveSolve returns the solve named by id, or the latest one.
func resolveSolve(db *storage.DB, id string, last bool) (*storage.Solve, error) {
	if id == "" && !last {
		return nil, fmt.Errorf("specify --id or --last")
	}

	solveRepo := storage.NewSolveRepository(db)
	var (
		solve *storage.Solve
		err   error
	)
	if last {
		solve, err = solveRepo.GetLast()
	} else {
		solve, err = solveRepo.Get(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	if solve == nil {
		return nil, fmt.Errorf("no solve found: %w", storage.ErrNotFound)
	}
	return solve, nil
}
