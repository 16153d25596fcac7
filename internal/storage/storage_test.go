package storage

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/SeamusWaldron/hypercube/internal/turn"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := Open(path)
	require.NoError(t, err)
	v, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, path, db.Path())
	require.NoError(t, db.Close())

	// Reopening must not re-run the migration.
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	v, err = db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestSolveLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewSolveRepository(db)

	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	id, err := repo.Create(started, "AU KR' G", "")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	s, err := repo.Get(id)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, started.Equal(s.StartedAt))
	assert.Nil(t, s.EndedAt)
	assert.Nil(t, s.Notes)
	require.NotNil(t, s.ScrambleText)
	assert.Equal(t, "AU KR' G", *s.ScrambleText)
	assert.Equal(t, time.Duration(0), s.Duration())

	require.NoError(t, repo.End(id, 83450*time.Millisecond, 57))

	s, err = repo.Get(id)
	require.NoError(t, err)
	require.NotNil(t, s.EndedAt)
	assert.Equal(t, 83450*time.Millisecond, s.Duration())
	assert.Equal(t, 57, s.MoveCount)
}

func TestGetMissingSolve(t *testing.T) {
	db := openTestDB(t)
	repo := NewSolveRepository(db)

	s, err := repo.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, s)

	err = repo.End("missing", time.Second, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	last, err := repo.GetLast()
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestListNewestFirstAndBest(t *testing.T) {
	db := openTestDB(t)
	repo := NewSolveRepository(db)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	durations := []time.Duration{90 * time.Second, 45 * time.Second, 120 * time.Second}
	var ids []string
	for i, d := range durations {
		id, err := repo.Create(base.Add(time.Duration(i)*time.Minute), "", "note")
		require.NoError(t, err)
		require.NoError(t, repo.End(id, d, 10+i))
		ids = append(ids, id)
	}
	// An unfinished solve is listed but never the best.
	_, err := repo.Create(base.Add(-time.Hour), "", "")
	require.NoError(t, err)

	solves, err := repo.List(3)
	require.NoError(t, err)
	require.Len(t, solves, 3)
	assert.Equal(t, ids[2], solves[0].SolveID)
	assert.Equal(t, ids[1], solves[1].SolveID)
	assert.Equal(t, ids[0], solves[2].SolveID)

	last, err := repo.GetLast()
	require.NoError(t, err)
	assert.Equal(t, ids[2], last.SolveID)

	best, err := repo.Best()
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, ids[1], best.SolveID)
}

func TestMovesRoundTrip(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)
	moves := NewMoveRepository(db)

	id, err := solves.Create(time.Now(), "", "")
	require.NoError(t, err)

	records, err := turn.ParseSequence("AU KR' wF G'")
	require.NoError(t, err)

	_, err = moves.Create(id, 0, 120, records[0])
	require.NoError(t, err)
	require.NoError(t, moves.CreateBatch(id, records[1:], 1, 800))

	n, err := moves.Count(id)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	stored, err := moves.GetBySolve(id)
	require.NoError(t, err)
	require.Len(t, stored, 4)
	assert.Equal(t, int64(120), stored[0].TsMs)
	assert.Equal(t, "KR'", stored[1].Notation)
	assert.Equal(t, "slice", stored[1].Kind)
	assert.Equal(t, -1, stored[1].Direction)
	assert.Equal(t, "gyro", stored[3].Kind)

	back, err := Records(stored)
	require.NoError(t, err)
	assert.Equal(t, turn.FormatSequence(records), turn.FormatSequence(back))
}

func TestDuplicateMoveIndexRollsBack(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)
	moves := NewMoveRepository(db)

	id, err := solves.Create(time.Now(), "", "")
	require.NoError(t, err)

	records, err := turn.ParseSequence("AU AU")
	require.NoError(t, err)
	_, err = moves.Create(id, 1, 0, records[0])
	require.NoError(t, err)

	// Index 1 is taken, so the whole batch fails.
	err = moves.CreateBatch(id, records, 0, 10)
	assert.Error(t, err)

	n, err := moves.Count(id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDeleteCascadesToMoves(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)
	moves := NewMoveRepository(db)

	id, err := solves.Create(time.Now(), "", "")
	require.NoError(t, err)
	rec, _ := turn.Parse("KU")
	_, err = moves.Create(id, 0, 0, rec)
	require.NoError(t, err)

	require.NoError(t, solves.Delete(id))

	n, err := moves.Count(id)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTransactionRollsBack(t *testing.T) {
	db := openTestDB(t)
	boom := errors.New("boom")

	err := db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO solves (solve_id, started_at) VALUES ('tx', '2024-06-01T12:00:00.000Z')`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	solve, err := NewSolveRepository(db).Get("tx")
	require.NoError(t, err)
	assert.Nil(t, solve)
}
