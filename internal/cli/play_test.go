package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/hypercube"
	"github.com/SeamusWaldron/hypercube/internal/config"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
	"github.com/SeamusWaldron/hypercube/internal/recorder"
	"github.com/SeamusWaldron/hypercube/internal/timer"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func newTestPlayModel(t *testing.T) (*playModel, *testClock) {
	t.Helper()
	c := config.Default()
	c.Animation.ScrambleMoves = 5

	p, err := hypercube.NewPuzzle(hypercube.WithConfig(c), hypercube.WithSeed(11))
	require.NoError(t, err)

	clock := &testClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	session := recorder.NewSession(nil, timer.New(timer.WithClock(clock.now)), zap.NewNop())
	m := newPlayModel(p, session, zap.NewNop())
	m.lastFrame = clock.t
	return m, clock
}

// settle feeds frames until the puzzle is idle.
func settle(t *testing.T, m *playModel, clock *testClock) {
	t.Helper()
	ctrl := m.puzzle.Controller()
	for i := 0; i < 100000; i++ {
		if !ctrl.Busy() && !ctrl.Scrambling() {
			return
		}
		clock.t = clock.t.Add(frameInterval)
		m.Update(frameMsg(clock.t))
	}
	t.Fatal("puzzle never became idle")
}

func TestPlayScrambleArmsTimer(t *testing.T) {
	m, clock := newTestPlayModel(t)

	m.handleKey("p")
	assert.True(t, m.puzzle.Controller().Scrambling())
	settle(t, m, clock)

	assert.Len(t, m.scramble, 5)
	assert.Empty(t, m.moves)
	assert.Equal(t, recorder.StateArmed, m.session.State())
	assert.True(t, m.session.Timer().Enabled())
	assert.False(t, m.session.Timer().Running())
}

func TestPlayTimedSolve(t *testing.T) {
	m, clock := newTestPlayModel(t)
	m.handleKey("p")
	settle(t, m, clock)

	m.handleKey("u")
	cur, ok := m.puzzle.Controller().Current()
	require.True(t, ok)
	assert.Equal(t, "AU", cur.Notation())
	settle(t, m, clock)

	assert.Equal(t, recorder.StateRecording, m.session.State())
	assert.True(t, m.session.Timer().Running())

	m.handleKey("tab")
	m.handleKey("F")
	cur, ok = m.puzzle.Controller().Current()
	require.True(t, ok)
	assert.Equal(t, "KF'", cur.Notation())
	settle(t, m, clock)

	m.handleKey(" ")
	assert.Equal(t, recorder.StateEnded, m.session.State())
	assert.Equal(t, 2, m.session.MoveCount())
	assert.Contains(t, m.status, "Finished")
	require.Len(t, m.moves, 2)
}

func TestPlayFinishWithoutSolve(t *testing.T) {
	m, _ := newTestPlayModel(t)
	m.handleKey(" ")
	assert.Equal(t, "No solve in progress", m.status)
	assert.NoError(t, m.err)
}

func TestPlayModifiersPickMove(t *testing.T) {
	m, clock := newTestPlayModel(t)
	ctrl := m.puzzle.Controller()

	m.handleKey("s")
	m.handleKey("c")
	assert.True(t, ctrl.Shift())
	assert.True(t, ctrl.Ctrl())

	m.handleKey("l")
	cur, ok := ctrl.Current()
	require.True(t, ok)
	assert.Equal(t, "G", cur.Notation())
	settle(t, m, clock)

	m.handleKey("c")
	m.handleKey("r")
	cur, ok = ctrl.Current()
	require.True(t, ok)
	assert.Equal(t, "I", cur.Notation())
	settle(t, m, clock)

	// No scramble, so nothing is timed.
	assert.Equal(t, recorder.StateIdle, m.session.State())
	assert.Len(t, m.moves, 2)
}

func TestPlayIgnoresKeysWhileTurning(t *testing.T) {
	m, _ := newTestPlayModel(t)
	ctrl := m.puzzle.Controller()

	m.handleKey("o")
	require.True(t, ctrl.Busy())
	m.handleKey("u")
	cur, _ := ctrl.Current()
	assert.Equal(t, "G", cur.Notation())

	m.handleKey("p")
	assert.False(t, ctrl.Scrambling())
}

func TestPlayTimerToggle(t *testing.T) {
	m, _ := newTestPlayModel(t)
	m.handleKey("t")
	assert.True(t, m.session.Timer().Enabled())
	assert.Equal(t, "Timer enabled", m.status)
	m.handleKey("t")
	assert.False(t, m.session.Timer().Enabled())
}

func TestPlayViewAndQuit(t *testing.T) {
	m, _ := newTestPlayModel(t)
	m.handleKey("tab")
	view := m.View()
	assert.Contains(t, view, "Hypercube")
	assert.Contains(t, view, "layer: kata")
	assert.Equal(t, puzzle.FaceK, m.layer)

	cmd := m.handleKey("q")
	assert.NotNil(t, cmd)
	assert.Equal(t, "Goodbye!\n", m.View())
}
