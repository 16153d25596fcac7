package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout has a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Solve is one timed solve attempt.
type Solve struct {
	SolveID      string
	StartedAt    time.Time
	EndedAt      *time.Time
	DurationMs   *int64
	MoveCount    int
	ScrambleText *string
	Notes        *string
}

// Duration returns the recorded duration, or zero for an unfinished solve.
func (s Solve) Duration() time.Duration {
	if s.DurationMs == nil {
		return 0
	}
	return time.Duration(*s.DurationMs) * time.Millisecond
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create creates a new solve and returns its ID.
func (r *SolveRepository) Create(startedAt time.Time, scramble, notes string) (string, error) {
	id := uuid.New().String()

	var scramblePtr, notesPtr *string
	if scramble != "" {
		scramblePtr = &scramble
	}
	if notes != "" {
		notesPtr = &notes
	}

	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, started_at, scramble_text, notes)
		VALUES (?, ?, ?, ?)
	`, id, startedAt.UTC().Format(timeLayout), scramblePtr, notesPtr)
	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}

	return id, nil
}

// End marks a solve as complete with the timer's duration and the number of
// moves played.
func (r *SolveRepository) End(solveID string, duration time.Duration, moveCount int) error {
	endedAt := time.Now().UTC()

	res, err := r.db.Exec(`
		UPDATE solves
		SET ended_at = ?, duration_ms = ?, move_count = ?
		WHERE solve_id = ?
	`, endedAt.Format(timeLayout), duration.Milliseconds(), moveCount, solveID)
	if err != nil {
		return fmt.Errorf("failed to end solve: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to end solve: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("failed to end solve %s: %w", solveID, ErrNotFound)
	}

	return nil
}

const solveColumns = `solve_id, started_at, ended_at, duration_ms, move_count, scramble_text, notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSolve(row rowScanner) (Solve, error) {
	var s Solve
	var startedAtStr string
	var endedAtStr sql.NullString

	err := row.Scan(
		&s.SolveID, &startedAtStr, &endedAtStr,
		&s.DurationMs, &s.MoveCount, &s.ScrambleText, &s.Notes,
	)
	if err != nil {
		return Solve{}, err
	}

	s.StartedAt, _ = time.Parse(timeLayout, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(timeLayout, endedAtStr.String)
		s.EndedAt = &t
	}
	return s, nil
}

// Get retrieves a solve by ID. It returns nil, nil when no solve matches.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	s, err := scanSolve(r.db.QueryRow(`
		SELECT `+solveColumns+`
		FROM solves
		WHERE solve_id = ?
	`, solveID))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}

	return &s, nil
}

// GetLast retrieves the most recent solve.
func (r *SolveRepository) GetLast() (*Solve, error) {
	solves, err := r.List(1)
	if err != nil {
		return nil, err
	}
	if len(solves) == 0 {
		return nil, nil
	}
	return &solves[0], nil
}

// List retrieves recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	rows, err := r.db.Query(`
		SELECT `+solveColumns+`
		FROM solves
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, s)
	}

	return solves, rows.Err()
}

// Best returns the fastest finished solve.
func (r *SolveRepository) Best() (*Solve, error) {
	s, err := scanSolve(r.db.QueryRow(`
		SELECT ` + solveColumns + `
		FROM solves
		WHERE duration_ms IS NOT NULL
		ORDER BY duration_ms ASC
		LIMIT 1
	`))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get best solve: %w", err)
	}

	return &s, nil
}

// Delete deletes a solve and its moves.
func (r *SolveRepository) Delete(solveID string) error {
	_, err := r.db.Exec("DELETE FROM solves WHERE solve_id = ?", solveID)
	if err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	return nil
}
