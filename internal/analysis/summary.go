// Package analysis computes statistics over stored solves: per-solve
// pacing, move usage, repeated sequences and trends across solves.
package analysis

import (
	"sort"
	"strings"

	"github.com/SeamusWaldron/hypercube/internal/storage"
)

// PauseThresholdMs is the gap between moves counted as a pause.
const PauseThresholdMs = 1500

// SolveSummary contains statistics for a single solve.
type SolveSummary struct {
	SolveID            string         `json:"solve_id"`
	StartedAt          string         `json:"started_at"`
	DurationMs         int64          `json:"duration_ms"`
	TotalMoves         int            `json:"total_moves"`
	TPSOverall         float64        `json:"tps_overall"`
	LongestPauseMs     int64          `json:"longest_pause_ms"`
	PauseCountOver1500 int            `json:"pause_count_over_1500ms"`
	AvgMoveDurationMs  float64        `json:"avg_move_duration_ms"`
	KindCounts         map[string]int `json:"kind_counts"`
	MostUsedMove       string         `json:"most_used_move,omitempty"`
	Scramble           string         `json:"scramble,omitempty"`
}

// Summarize builds the summary of one solve from its stored moves.
func Summarize(solve storage.Solve, moves []storage.MoveRecord) *SolveSummary {
	profile := AnalyzeMovementProfile(moves)
	s := &SolveSummary{
		SolveID:            solve.SolveID,
		StartedAt:          solve.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		DurationMs:         solve.Duration().Milliseconds(),
		TotalMoves:         len(moves),
		LongestPauseMs:     FindLongestPause(moves),
		PauseCountOver1500: CountPausesOver(moves, PauseThresholdMs),
		AvgMoveDurationMs:  CalculateAvgMoveDuration(moves),
		KindCounts:         profile.KindCounts,
		MostUsedMove:       profile.MostUsedMove,
	}
	s.TPSOverall = CalculateTPS(moves, s.DurationMs)
	if solve.ScrambleText != nil {
		s.Scramble = *solve.ScrambleText
	}
	return s
}

// PauseInfo represents a pause during solving.
type PauseInfo struct {
	AfterMoveIndex int   `json:"after_move_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// AnalyzePauses finds all gaps of at least thresholdMs between moves.
func AnalyzePauses(moves []storage.MoveRecord, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo

	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterMoveIndex: i - 1,
				DurationMs:     gap,
				TsMs:           moves[i-1].TsMs,
			})
		}
	}

	return pauses
}

// CalculateTPS calculates turns per second for a move sequence.
func CalculateTPS(moves []storage.MoveRecord, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(len(moves)) / (float64(durationMs) / 1000.0)
}

// CalculateAvgMoveDuration calculates the average time between moves.
func CalculateAvgMoveDuration(moves []storage.MoveRecord) float64 {
	if len(moves) < 2 {
		return 0
	}

	totalGap := moves[len(moves)-1].TsMs - moves[0].TsMs
	return float64(totalGap) / float64(len(moves)-1)
}

// FindLongestPause finds the longest gap between moves.
func FindLongestPause(moves []storage.MoveRecord) int64 {
	var longest int64

	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap > longest {
			longest = gap
		}
	}

	return longest
}

// CountPausesOver counts gaps longer than thresholdMs.
func CountPausesOver(moves []storage.MoveRecord, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(moves); i++ {
		if moves[i].TsMs-moves[i-1].TsMs > thresholdMs {
			count++
		}
	}
	return count
}

// MovementProfile counts which moves and move kinds a solve used.
// Moves are counted by name, so AU and AU' are the same move.
type MovementProfile struct {
	MoveCounts   map[string]int `json:"move_counts"`
	KindCounts   map[string]int `json:"kind_counts"`
	MostUsedMove string         `json:"most_used_move"`
	Pairs        map[string]int `json:"pairs"` // e.g. "AU KR" -> count
}

// AnalyzeMovementProfile analyzes which moves are used most.
func AnalyzeMovementProfile(moves []storage.MoveRecord) *MovementProfile {
	profile := &MovementProfile{
		MoveCounts: make(map[string]int),
		KindCounts: make(map[string]int),
		Pairs:      make(map[string]int),
	}

	prev := ""
	for i, m := range moves {
		name := strings.TrimSuffix(m.Notation, "'")
		profile.MoveCounts[name]++
		profile.KindCounts[m.Kind]++

		if i > 0 {
			profile.Pairs[prev+" "+name]++
		}
		prev = name
	}

	// Ties go to the first name in sort order so the result is stable.
	names := make([]string, 0, len(profile.MoveCounts))
	for name := range profile.MoveCounts {
		names = append(names, name)
	}
	sort.Strings(names)

	maxCount := 0
	for _, name := range names {
		if c := profile.MoveCounts[name]; c > maxCount {
			maxCount = c
			profile.MostUsedMove = name
		}
	}

	return profile
}
