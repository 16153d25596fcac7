// Package recorder manages timed solve sessions: arm after a scramble,
// start the timer on the first move, store the moves, finish on request.
package recorder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/hypercube/internal/storage"
	"github.com/SeamusWaldron/hypercube/internal/timer"
	"github.com/SeamusWaldron/hypercube/internal/turn"
)

var (
	ErrSolveInProgress = errors.New("recorder: solve already in progress")
	ErrNoSolve         = errors.New("recorder: no solve in progress")
)

// SessionState represents the current state of a timed solve.
type SessionState int

const (
	StateIdle SessionState = iota
	StateArmed
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session ties the solve timer to the solve history. The database is
// optional; without one the session only keeps time.
type Session struct {
	timer *timer.Timer
	log   *zap.Logger

	mu        sync.RWMutex
	state     SessionState
	solveID   string
	scramble  string
	moveIndex int

	solveRepo *storage.SolveRepository
	moveRepo  *storage.MoveRepository
}

// NewSession creates a session manager. db may be nil.
func NewSession(db *storage.DB, t *timer.Timer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		timer: t,
		log:   logger,
		state: StateIdle,
	}
	if db != nil {
		s.solveRepo = storage.NewSolveRepository(db)
		s.moveRepo = storage.NewMoveRepository(db)
	}
	return s
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SolveID returns the current solve ID, empty when nothing is stored.
func (s *Session) SolveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solveID
}

// MoveCount returns the number of moves in the current solve.
func (s *Session) MoveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moveIndex
}

// Timer returns the session timer.
func (s *Session) Timer() *timer.Timer {
	return s.timer
}

// Arm prepares a solve for the given scramble. The timer is enabled and
// cleared; it starts with the next move.
func (s *Session) Arm(scramble string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return ErrSolveInProgress
	}

	if !s.timer.Enabled() {
		s.timer.Toggle()
	}
	s.timer.Reset()

	s.state = StateArmed
	s.scramble = scramble
	s.solveID = ""
	s.moveIndex = 0
	s.log.Debug("solve armed", zap.String("scramble", scramble))
	return nil
}

// HandleMove records a user move. The first move after Arm starts the
// timer and creates the solve row. Moves outside a solve are ignored.
func (s *Session) HandleMove(rec turn.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateArmed:
		s.timer.Start()
		s.state = StateRecording
		if s.solveRepo != nil {
			id, err := s.solveRepo.Create(time.Now(), s.scramble, "")
			if err != nil {
				return fmt.Errorf("failed to start solve: %w", err)
			}
			s.solveID = id
		}
		s.log.Info("solve started", zap.String("solve_id", s.solveID))
	case StateRecording:
	default:
		return nil
	}

	if s.moveRepo != nil {
		tsMs := s.timer.Elapsed().Milliseconds()
		if _, err := s.moveRepo.Create(s.solveID, s.moveIndex, tsMs, rec); err != nil {
			return fmt.Errorf("failed to store move: %w", err)
		}
	}
	s.moveIndex++
	return nil
}

// Finish stops the timer and stores the result.
func (s *Session) Finish() (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return 0, ErrNoSolve
	}

	s.timer.Stop()
	elapsed := s.timer.Elapsed()
	s.state = StateEnded

	if s.solveRepo != nil {
		if err := s.solveRepo.End(s.solveID, elapsed, s.moveIndex); err != nil {
			return elapsed, fmt.Errorf("failed to end solve: %w", err)
		}
	}

	s.log.Info("solve finished",
		zap.String("solve_id", s.solveID),
		zap.Duration("elapsed", elapsed),
		zap.Int("moves", s.moveIndex),
	)
	return elapsed, nil
}

// Cancel abandons an armed or running solve and deletes anything stored
// for it.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateArmed && s.state != StateRecording {
		return ErrNoSolve
	}

	s.timer.Reset()
	s.state = StateIdle
	if s.solveRepo != nil && s.solveID != "" {
		if err := s.solveRepo.Delete(s.solveID); err != nil {
			return fmt.Errorf("failed to cancel solve: %w", err)
		}
	}
	s.solveID = ""
	s.moveIndex = 0
	return nil
}
