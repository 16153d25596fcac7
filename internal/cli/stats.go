package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/hypercube/internal/analysis"
	"github.com/SeamusWaldron/hypercube/internal/storage"
	"github.com/SeamusWaldron/hypercube/internal/timer"
)

var (
	statsSolveID string
	statsLast    bool
	statsLimit   int
	statsJSON    bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Solve statistics",
	Long: `Show trends across recent timed solves, or a breakdown of one solve
with --id or --last: pacing, pauses, move kinds and repeated sequences.

Examples:
  hypercube stats
  hypercube stats -n 12
  hypercube stats --last --json`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsSolveID, "id", "", "Summarize one solve")
	statsCmd.Flags().BoolVar(&statsLast, "last", false, "Summarize the last solve")
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 100, "Number of recent solves to analyze")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print JSON")
}

// solveStats is the JSON form of a single-solve breakdown.
type solveStats struct {
	Summary *analysis.SolveSummary `json:"summary"`
	Pauses  []analysis.PauseInfo   `json:"pauses"`
	NGrams  *analysis.NGramReport  `json:"ngrams"`
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsLimit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if statsSolveID != "" || statsLast {
		return runSolveStats(cmd.OutOrStdout(), db)
	}

	solves, err := storage.NewSolveRepository(db).List(statsLimit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}
	report := analysis.AnalyzeTrends(analysis.FromSolves(solves))

	out := cmd.OutOrStdout()
	if statsJSON {
		return writeJSON(out, report)
	}
	printTrends(out, report)
	return nil
}

func runSolveStats(out io.Writer, db *storage.DB) error {
	solve, err := resolveSolve(db, statsSolveID, statsLast)
	if err != nil {
		return err
	}

	moves, err := storage.NewMoveRepository(db).GetBySolve(solve.SolveID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}

	st := solveStats{
		Summary: analysis.Summarize(*solve, moves),
		Pauses:  analysis.AnalyzePauses(moves, analysis.PauseThresholdMs),
		NGrams:  analysis.MineNGrams(moves, 2, 8, 3),
	}
	logger.Debug("analyzed solve", zap.String("solve_id", solve.SolveID), zap.Int("moves", len(moves)))

	if statsJSON {
		return writeJSON(out, st)
	}
	printSolveStats(out, st)
	return nil
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func formatMs(v float64) string {
	return timer.Format(time.Duration(v) * time.Millisecond)
}

func printTrends(out io.Writer, r *analysis.TrendReport) {
	fmt.Fprintln(out, "Hypercube Solve Trends")
	fmt.Fprintln(out, "======================")

	if r.CompletedSolves == 0 {
		fmt.Fprintln(out, "No finished solves")
		return
	}

	fmt.Fprintf(out, "Solves:      %d finished of %d\n", r.CompletedSolves, r.TotalSolves)
	fmt.Fprintf(out, "Mean:        %s (%.1f moves, %.2f tps)\n", formatMs(r.AvgDurationMs), r.AvgMoves, r.AvgTPS)
	fmt.Fprintf(out, "Best:        %s (%s)\n", formatMs(float64(r.BestSolve.DurationMs)), r.BestSolve.SolveID[:8])
	fmt.Fprintf(out, "Worst:       %s (%s)\n", formatMs(float64(r.WorstSolve.DurationMs)), r.WorstSolve.SolveID[:8])
	for _, n := range []int{5, 12} {
		if v, ok := r.AverageOf[n]; ok {
			fmt.Fprintf(out, "ao%-9d %s\n", n, formatMs(v))
		}
	}
	fmt.Fprintf(out, "Consistency: %.0f/100\n", r.ConsistencyScore)
	if r.CompletedSolves >= 4 {
		fmt.Fprintf(out, "Improvement: %+.1f%%\n", r.ImprovementPct)
	}
}

func printSolveStats(out io.Writer, st solveStats) {
	s := st.Summary
	fmt.Fprintf(out, "Solve %s\n", s.SolveID)
	if s.Scramble != "" {
		fmt.Fprintf(out, "Scramble:    %s\n", s.Scramble)
	}
	fmt.Fprintf(out, "Time:        %s\n", formatMs(float64(s.DurationMs)))
	fmt.Fprintf(out, "Moves:       %d (%.2f tps)\n", s.TotalMoves, s.TPSOverall)
	fmt.Fprintf(out, "Pauses:      %d over %.1fs, longest %.2fs\n",
		len(st.Pauses), float64(analysis.PauseThresholdMs)/1000, float64(s.LongestPauseMs)/1000)

	kinds := make([]string, 0, len(s.KindCounts))
	for k, c := range s.KindCounts {
		kinds = append(kinds, fmt.Sprintf("%s %d", k, c))
	}
	sort.Strings(kinds)
	if len(kinds) > 0 {
		fmt.Fprintf(out, "Kinds:       %s\n", strings.Join(kinds, ", "))
		fmt.Fprintf(out, "Most used:   %s\n", s.MostUsedMove)
	}

	ns := make([]int, 0, len(st.NGrams.TopNGrams))
	for n := range st.NGrams.TopNGrams {
		ns = append(ns, n)
	}
	sort.Ints(ns)
	if len(ns) == 0 {
		return
	}

	fmt.Fprintln(out, "\nRepeated sequences:")
	for _, n := range ns {
		for _, ng := range st.NGrams.TopNGrams[n] {
			fmt.Fprintf(out, "  %-24s x%d\n", strings.Join(ng.Sequence, " "), ng.Count)
		}
	}
}
