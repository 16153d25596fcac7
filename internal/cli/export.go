package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/hypercube/internal/storage"
)

var (
	exportSolveID string
	exportFormat  string
	exportOutput  string
	exportLast    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a solve",
	Long: `Export the scramble and move sequence of a timed solve.

Examples:
  hypercube export --last
  hypercube export --id <solve_id> --format json
  hypercube export --id <solve_id> --format yaml -o solve.yaml`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportSolveID, "id", "", "Solve ID to export")
	exportCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last solve")
	exportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

// SolveExport is the exported form of a solve.
type SolveExport struct {
	SolveID    string       `json:"solve_id" yaml:"solve_id"`
	StartedAt  string       `json:"started_at" yaml:"started_at"`
	DurationMs int64        `json:"duration_ms" yaml:"duration_ms"`
	Scramble   string       `json:"scramble" yaml:"scramble"`
	Moves      []MoveExport `json:"moves" yaml:"moves"`
}

// MoveExport is one exported move.
type MoveExport struct {
	MoveIndex int    `json:"move_index" yaml:"move_index"`
	TsMs      int64  `json:"ts_ms" yaml:"ts_ms"`
	Notation  string `json:"notation" yaml:"notation"`
	Kind      string `json:"kind" yaml:"kind"`
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solve, err := resolveSolve(db, exportSolveID, exportLast)
	if err != nil {
		return err
	}

	moves, err := storage.NewMoveRepository(db).GetBySolve(solve.SolveID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}

	output, err := formatExport(*solve, moves, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}

	if dir := filepath.Dir(exportOutput); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d moves to %s\n", len(moves), exportOutput)
	return nil
}

func formatExport(solve storage.Solve, moves []storage.MoveRecord, format string) (string, error) {
	switch strings.ToLower(format) {
	case "txt":
		notations := make([]string, len(moves))
		for i, m := range moves {
			notations[i] = m.Notation
		}
		return strings.Join(notations, " "), nil

	case "json", "yaml":
		e := SolveExport{
			SolveID:    solve.SolveID,
			StartedAt:  solve.StartedAt.Format("2006-01-02T15:04:05.000Z07:00"),
			DurationMs: solve.Duration().Milliseconds(),
			Moves:      make([]MoveExport, len(moves)),
		}
		if solve.ScrambleText != nil {
			e.Scramble = *solve.ScrambleText
		}
		for i, m := range moves {
			e.Moves[i] = MoveExport{
				MoveIndex: m.MoveIndex,
				TsMs:      m.TsMs,
				Notation:  m.Notation,
				Kind:      m.Kind,
			}
		}

		if strings.ToLower(format) == "yaml" {
			data, err := yaml.Marshal(e)
			if err != nil {
				return "", fmt.Errorf("failed to marshal YAML: %w", err)
			}
			return strings.TrimRight(string(data), "\n"), nil
		}
		data, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt, json, or yaml)", format)
	}
}
