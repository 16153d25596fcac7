package turn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/hypercube/internal/config"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func newTestCube() *puzzle.Cube {
	geom := config.Default().Geometry
	return puzzle.New(&geom)
}

func allMoves() []Move {
	var out []Move
	out = append(out, SliceMoves()...)
	out = append(out, WholeMoves()...)
	out = append(out, PairedMoves()...)
	return append(out, Gyro)
}

func TestFullCycleReturnsToSolved(t *testing.T) {
	for _, m := range allMoves() {
		t.Run(m.Name, func(t *testing.T) {
			c := newTestCube()
			solved := c.Snapshot()

			// A quarter turn repeats four times, a half turn twice. The gyro
			// cycles four X slots.
			n := 4
			if m.Step == 2 {
				n = 2
			}
			tr := New(c, m)
			for i := 0; i < n; i++ {
				tr.Run(1, 0.1)
			}
			assert.Empty(t, cmp.Diff(solved, c.Snapshot(), approx))
		})
	}
}

func TestMoveThenInverseIsIdentity(t *testing.T) {
	for _, m := range allMoves() {
		t.Run(m.Name, func(t *testing.T) {
			c := newTestCube()
			solved := c.Snapshot()

			tr := New(c, m)
			tr.Run(1, 0.25)
			if m.Kind != KindWhole {
				assert.NotEmpty(t, cmp.Diff(solved, c.Snapshot(), approx))
			}
			tr.Run(-1, 0.25)
			assert.Empty(t, cmp.Diff(solved, c.Snapshot(), approx))
		})
	}
}

func TestHalfTurnKeepsCoordinatesAndSlots(t *testing.T) {
	c := newTestCube()
	coords := make(map[puzzle.Coord]bool)
	slots := make(map[puzzle.Slot]bool)
	for i := 0; i < puzzle.NumPieces; i++ {
		coords[c.Piece(i).Coord] = true
		slots[c.Piece(i).Slot()] = true
	}

	m, ok := Lookup("U")
	require.True(t, ok)
	tr := New(c, m)
	for i := 0; i < 4; i++ {
		tr.Run(1, 0.1)

		gotCoords := make(map[puzzle.Coord]bool)
		gotSlots := make(map[puzzle.Slot]bool)
		for j := 0; j < puzzle.NumPieces; j++ {
			gotCoords[c.Piece(j).Coord] = true
			gotSlots[c.Piece(j).Slot()] = true
		}
		assert.Equal(t, coords, gotCoords)
		assert.Equal(t, slots, gotSlots)
	}
}

func TestBeginSelectsTargets(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"AU", 8},
		{"KF", 8},
		{"U", 8},
		{"O", 8},
		{"I", 8},
		{"rR", 16},
		{"wB", 16},
		{"G", 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCube()
			m, ok := Lookup(tt.name)
			require.True(t, ok)

			tr := New(c, m)
			tr.Begin()
			assert.True(t, tr.Active())
			assert.Len(t, tr.Targets(), tt.want)
			if m.Kind == KindSlice {
				for _, i := range tr.Targets() {
					assert.True(t, c.InLayer(i, m.Layer))
				}
			}
			for !tr.Done() {
				tr.Tick(0.2)
			}
			tr.End()
			assert.False(t, tr.Active())
		})
	}
}

func TestEndResetsOrientationsAndDetaches(t *testing.T) {
	c := newTestCube()
	m, _ := Lookup("KR")
	tr := New(c, m)
	tr.Begin()
	tr.Tick(0.5)

	moving := 0
	for i := 0; i < puzzle.NumPieces; i++ {
		if c.Piece(i).Frame() != nil {
			moving++
		}
	}
	assert.Equal(t, 8, moving)

	for !tr.Done() {
		tr.Tick(0.5)
	}
	tr.End()
	for i := 0; i < puzzle.NumPieces; i++ {
		p := c.Piece(i)
		assert.Nil(t, p.Frame())
		assert.True(t, p.Orientation.ApproxEqual(mgl64.QuatIdent()))
	}
}

func TestTickClampsAndEndSnaps(t *testing.T) {
	c := newTestCube()
	m, _ := Lookup("AU")
	tr := New(c, m)
	tr.SetDirection(-1)
	tr.Begin()

	tr.Tick(0.4)
	assert.InDelta(t, -0.4, tr.Angle(), 1e-12)
	assert.False(t, tr.Done())

	tr.Tick(10)
	assert.InDelta(t, -math.Pi/2, tr.Angle(), 1e-12)
	assert.True(t, tr.Done())

	tr.End()
	assert.InDelta(t, -math.Pi/2, tr.Angle(), 1e-12)
}

func TestHalfTurnDoneAtPi(t *testing.T) {
	c := newTestCube()
	m, _ := Lookup("rU")
	tr := New(c, m)
	tr.Begin()
	tr.Tick(math.Pi / 2)
	assert.False(t, tr.Done())
	tr.Tick(math.Pi / 2)
	assert.True(t, tr.Done())
	tr.End()
}

func TestIdleCallsAreIgnored(t *testing.T) {
	c := newTestCube()
	solved := c.Snapshot()

	tr := New(c, Gyro)
	tr.Tick(1)
	tr.End()
	assert.False(t, tr.Done())
	assert.Equal(t, solved, c.Snapshot())

	m, _ := Lookup("KU")
	tr.Load(m)
	tr.Begin()
	tr.Load(Gyro)
	tr.SetDirection(-1)
	assert.Equal(t, "KU", tr.Move().Name)
	assert.Equal(t, 1, tr.Direction())
	for !tr.Done() {
		tr.Tick(0.3)
	}
	tr.End()
}

func TestGyroDuration(t *testing.T) {
	c := newTestCube()
	tr := New(c, Gyro)
	tr.SetGyroDuration(1)
	tr.Begin()
	tr.Tick(0.5)
	assert.False(t, tr.Done())

	// Halfway through, the pieces changing hyper-layer are crossing the origin.
	g := c.Geometry()
	crossing := 0
	for i := 0; i < puzzle.NumPieces; i++ {
		if math.Abs(c.Piece(i).Position.X()) < g.PivotOffset() {
			crossing++
		}
	}
	assert.Equal(t, 8, crossing)

	tr.Tick(0.5)
	assert.True(t, tr.Done())
	tr.End()
}

func TestGyroSwapsHyperAndXFacelets(t *testing.T) {
	c := newTestCube()
	New(c, Gyro).Run(1, 0.5)

	for i := 0; i < puzzle.NumPieces; i++ {
		p := c.Piece(i)
		assert.Equal(t, mgl64.Vec3{}, p.Facelets[1].Offset, "piece %v", p.Coord)
		assert.NotEqual(t, 0.0, p.Facelets[0].Offset.X(), "piece %v", p.Coord)
	}
}

// Rigid moves of whole hyper-layers keep every face one color.
func TestRigidMovesKeepFacesUniform(t *testing.T) {
	for _, name := range []string{"rU", "rR", "rF", "wU", "wR", "wB", "G"} {
		t.Run(name, func(t *testing.T) {
			c := newTestCube()
			m, _ := Lookup(name)
			New(c, m).Run(-1, 0.3)

			for key, colors := range faceColors(c) {
				assert.Len(t, colors, 1, "%v shows %v", key, colors)
			}
		})
	}
}

func TestRandomSequenceKeepsValidState(t *testing.T) {
	c := newTestCube()
	rng := rand.New(rand.NewSource(7))
	moves := allMoves()
	tr := New(c, moves[0])

	for n := 0; n < 60; n++ {
		tr.Load(moves[rng.Intn(len(moves))])
		dir := 1
		if rng.Intn(2) == 0 {
			dir = -1
		}
		tr.Run(dir, 0.4)

		counts := make(map[faceKey]int)
		for _, s := range c.Snapshot() {
			counts[faceKey{Anna: s.Slot.Anna, Face: s.Face}]++
		}
		for _, anna := range []bool{true, false} {
			for _, f := range []puzzle.Face{puzzle.FaceU, puzzle.FaceD, puzzle.FaceF, puzzle.FaceB, puzzle.FaceL, puzzle.FaceR} {
				require.Equal(t, 4, counts[faceKey{Anna: anna, Face: f}], "after %s: anna=%v face %v", tr.Move().Name, anna, f)
			}
		}
		require.Equal(t, 8, counts[faceKey{Anna: true, Face: puzzle.FaceA}])
		require.Equal(t, 8, counts[faceKey{Anna: false, Face: puzzle.FaceK}])
	}
}

type faceKey struct {
	Anna bool
	Face puzzle.Face
}

func faceColors(c *puzzle.Cube) map[faceKey]map[puzzle.Color]bool {
	out := make(map[faceKey]map[puzzle.Color]bool)
	for _, s := range c.Snapshot() {
		k := faceKey{Anna: s.Slot.Anna, Face: s.Face}
		if out[k] == nil {
			out[k] = make(map[puzzle.Color]bool)
		}
		out[k][s.Color] = true
	}
	return out
}
