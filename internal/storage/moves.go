package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/hypercube/internal/turn"
)

// MoveRecord is one move played during a timed solve.
type MoveRecord struct {
	MoveID    int64
	SolveID   string
	MoveIndex int
	TsMs      int64
	Notation  string
	Kind      string
	Direction int
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Create stores a move and returns its ID. tsMs is the time since the solve
// started.
func (r *MoveRepository) Create(solveID string, moveIndex int, tsMs int64, rec turn.Record) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO moves (solve_id, move_index, ts_ms, notation, kind, direction)
		VALUES (?, ?, ?, ?, ?, ?)
	`, solveID, moveIndex, tsMs, rec.Notation(), rec.Move.Kind.String(), rec.Direction)
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// CreateBatch stores several moves in one transaction, all at tsMs.
func (r *MoveRepository) CreateBatch(solveID string, records []turn.Record, startIndex int, tsMs int64) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, rec := range records {
			_, err := tx.Exec(`
				INSERT INTO moves (solve_id, move_index, ts_ms, notation, kind, direction)
				VALUES (?, ?, ?, ?, ?, ?)
			`, solveID, startIndex+i, tsMs, rec.Notation(), rec.Move.Kind.String(), rec.Direction)
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// GetBySolve retrieves all moves of a solve in play order.
func (r *MoveRepository) GetBySolve(solveID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, solve_id, move_index, ts_ms, notation, kind, direction
		FROM moves
		WHERE solve_id = ?
		ORDER BY move_index
	`, solveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.MoveID, &m.SolveID, &m.MoveIndex, &m.TsMs, &m.Notation, &m.Kind, &m.Direction); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Count returns the number of moves stored for a solve.
func (r *MoveRepository) Count(solveID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE solve_id = ?", solveID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get move count: %w", err)
	}
	return count, nil
}

// Records parses the stored notation back into move records.
func Records(moves []MoveRecord) ([]turn.Record, error) {
	out := make([]turn.Record, 0, len(moves))
	for _, m := range moves {
		rec, err := turn.Parse(m.Notation)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored move %q: %w", m.Notation, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
