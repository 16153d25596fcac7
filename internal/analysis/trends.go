package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/SeamusWaldron/hypercube/internal/storage"
)

// SolveData represents minimal solve data for trend analysis.
type SolveData struct {
	SolveID    string
	StartedAt  time.Time
	DurationMs int64
	MoveCount  int
	TPS        float64
}

// FromSolves converts stored solves into trend input. Unfinished solves
// keep a zero duration and are skipped by AnalyzeTrends.
func FromSolves(solves []storage.Solve) []SolveData {
	out := make([]SolveData, 0, len(solves))
	for _, s := range solves {
		d := SolveData{
			SolveID:    s.SolveID,
			StartedAt:  s.StartedAt,
			DurationMs: s.Duration().Milliseconds(),
			MoveCount:  s.MoveCount,
		}
		if d.DurationMs > 0 {
			d.TPS = float64(d.MoveCount) / (float64(d.DurationMs) / 1000.0)
		}
		out = append(out, d)
	}
	return out
}

// TrendReport contains trend analysis across multiple solves.
type TrendReport struct {
	TotalSolves     int       `json:"total_solves"`
	CompletedSolves int       `json:"completed_solves"`
	DateRange       DateRange `json:"date_range"`

	AvgDurationMs float64 `json:"avg_duration_ms"`
	AvgMoves      float64 `json:"avg_moves"`
	AvgTPS        float64 `json:"avg_tps"`

	BestSolve  SolveStats `json:"best_solve"`
	WorstSolve SolveStats `json:"worst_solve"`

	ImprovementPct   float64 `json:"improvement_pct"`
	ConsistencyScore float64 `json:"consistency_score"`

	// Mean of the last n solves (5, 10, 25, 50)
	RollingAvgs map[int]float64 `json:"rolling_averages"`
	// Average of the last n solves with the best and worst dropped (5, 12)
	AverageOf map[int]float64 `json:"average_of"`

	Solves []SolveStats `json:"solves"`
}

// DateRange represents a date range.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SolveStats represents statistics for a single solve in trend context.
type SolveStats struct {
	SolveID    string  `json:"solve_id"`
	Timestamp  string  `json:"timestamp"`
	DurationMs int64   `json:"duration_ms"`
	MoveCount  int     `json:"move_count"`
	TPS        float64 `json:"tps"`
}

func statsOf(s SolveData) SolveStats {
	return SolveStats{
		SolveID:    s.SolveID,
		Timestamp:  s.StartedAt.Format(time.RFC3339),
		DurationMs: s.DurationMs,
		MoveCount:  s.MoveCount,
		TPS:        s.TPS,
	}
}

// AnalyzeTrends analyzes trends across multiple solves. The input is
// sorted by start time in place.
func AnalyzeTrends(solves []SolveData) *TrendReport {
	report := &TrendReport{
		TotalSolves: len(solves),
		RollingAvgs: make(map[int]float64),
		AverageOf:   make(map[int]float64),
		Solves:      make([]SolveStats, 0, len(solves)),
	}

	if len(solves) == 0 {
		return report
	}

	sort.SliceStable(solves, func(i, j int) bool {
		return solves[i].StartedAt.Before(solves[j].StartedAt)
	})

	report.DateRange = DateRange{
		Start: solves[0].StartedAt.Format(time.RFC3339),
		End:   solves[len(solves)-1].StartedAt.Format(time.RFC3339),
	}

	var completed []SolveData
	var totalDuration, totalMoves int64
	var totalTPS float64
	best, worst := -1, -1

	for _, s := range solves {
		if s.DurationMs <= 0 {
			continue
		}

		completed = append(completed, s)
		totalDuration += s.DurationMs
		totalMoves += int64(s.MoveCount)
		totalTPS += s.TPS
		report.Solves = append(report.Solves, statsOf(s))

		i := len(completed) - 1
		if best < 0 || s.DurationMs < completed[best].DurationMs {
			best = i
		}
		if worst < 0 || s.DurationMs > completed[worst].DurationMs {
			worst = i
		}
	}

	report.CompletedSolves = len(completed)
	if len(completed) == 0 {
		return report
	}

	n := float64(len(completed))
	report.AvgDurationMs = float64(totalDuration) / n
	report.AvgMoves = float64(totalMoves) / n
	report.AvgTPS = totalTPS / n
	report.BestSolve = statsOf(completed[best])
	report.WorstSolve = statsOf(completed[worst])

	report.ImprovementPct = calculateImprovement(completed)
	report.ConsistencyScore = calculateConsistency(completed)

	durations := make([]int64, len(completed))
	for i, s := range completed {
		durations[i] = s.DurationMs
	}

	for _, k := range []int{5, 10, 25, 50} {
		if len(durations) >= k {
			var sum int64
			for _, d := range durations[len(durations)-k:] {
				sum += d
			}
			report.RollingAvgs[k] = float64(sum) / float64(k)
		}
	}

	for _, k := range []int{5, 12} {
		if len(durations) >= k {
			report.AverageOf[k] = TrimmedAverage(durations[len(durations)-k:])
		}
	}

	return report
}

// TrimmedAverage drops the single best and worst durations and returns
// the mean of the rest. It needs at least three durations.
func TrimmedAverage(durations []int64) float64 {
	if len(durations) < 3 {
		return 0
	}

	sorted := append([]int64(nil), durations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum int64
	for _, d := range sorted[1 : len(sorted)-1] {
		sum += d
	}
	return float64(sum) / float64(len(sorted)-2)
}

// calculateImprovement compares the first quarter of solves with the last.
// Positive values mean the solver got faster.
func calculateImprovement(solves []SolveData) float64 {
	if len(solves) < 4 {
		return 0
	}

	quarterSize := len(solves) / 4

	var firstSum int64
	for _, s := range solves[:quarterSize] {
		firstSum += s.DurationMs
	}
	firstAvg := float64(firstSum) / float64(quarterSize)

	var lastSum int64
	for _, s := range solves[len(solves)-quarterSize:] {
		lastSum += s.DurationMs
	}
	lastAvg := float64(lastSum) / float64(quarterSize)

	if firstAvg <= 0 {
		return 0
	}
	return ((firstAvg - lastAvg) / firstAvg) * 100
}

// calculateConsistency maps the coefficient of variation of the durations
// onto 0-100, where 100 means every solve took the same time.
func calculateConsistency(solves []SolveData) float64 {
	if len(solves) < 2 {
		return 100
	}

	var sum float64
	for _, s := range solves {
		sum += float64(s.DurationMs)
	}
	mean := sum / float64(len(solves))
	if mean <= 0 {
		return 100
	}

	var sumSquares float64
	for _, s := range solves {
		diff := float64(s.DurationMs) - mean
		sumSquares += diff * diff
	}
	cv := math.Sqrt(sumSquares/float64(len(solves))) / mean

	return math.Max(0, math.Min(100, 100-cv*100))
}
