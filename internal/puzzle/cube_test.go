package puzzle

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/hypercube/internal/config"
)

func newTestCube() *Cube {
	geom := config.Default().Geometry
	return New(&geom)
}

func TestNewCubeHasEveryCoordOnce(t *testing.T) {
	c := newTestCube()

	seen := make(map[Coord]bool)
	for i := 0; i < NumPieces; i++ {
		p := c.Piece(i)
		for _, v := range p.Coord {
			require.Contains(t, []int{-1, 1}, v)
		}
		assert.False(t, seen[p.Coord], "duplicate coord %v", p.Coord)
		seen[p.Coord] = true
	}
	assert.Len(t, seen, NumPieces)
}

func TestNewCubeFaceletColors(t *testing.T) {
	c := newTestCube()

	for i := 0; i < NumPieces; i++ {
		p := c.Piece(i)
		colors := make(map[Color]bool)
		for _, f := range p.Facelets {
			assert.NotEqual(t, ColorNone, f.ColorID)
			assert.False(t, colors[f.ColorID], "piece %v repeats color %v", p.Coord, f.ColorID)
			colors[f.ColorID] = true
			assert.Equal(t, i, f.Piece())
		}

		wantW := ColorPlusW
		if p.Coord.W() < 0 {
			wantW = ColorMinusW
		}
		assert.Equal(t, wantW, p.Facelets[0].ColorID, "piece %v", p.Coord)
		assert.Equal(t, mgl64.Vec3{}, p.Facelets[0].Offset)
		for _, f := range p.Facelets {
			assert.Equal(t, p.Coord.Vec3(), f.Direction)
		}
	}
}

func TestHyperFaceletShowsKata(t *testing.T) {
	c := newTestCube()

	ref, ok := findCoord(c, Coord{1, 1, 1, 1})
	require.True(t, ok)
	require.Equal(t, ColorPlusW, c.Facelet(ref).ColorID)

	assert.Equal(t, FaceK, c.Face(ref))
	assert.True(t, c.Piece(ref.Piece).WorldPosition().X() > 0)
}

func TestFreshCubeClassification(t *testing.T) {
	c := newTestCube()

	for i := 0; i < NumPieces; i++ {
		p := c.Piece(i)
		coord := p.Coord

		hyper := FaceK
		if coord.W() < 0 {
			hyper = FaceA
		}
		xFace := FaceR
		if coord.X()*coord.W() > 0 {
			xFace = FaceL
		}
		yFace := FaceD
		if coord.Y() > 0 {
			yFace = FaceU
		}
		zFace := FaceF
		if coord.Z() > 0 {
			zFace = FaceB
		}

		want := []Face{hyper, xFace, yFace, zFace}
		for j := range p.Facelets {
			assert.Equal(t, want[j], c.Face(FaceletRef{Piece: i, Index: j}), "piece %v facelet %d", coord, j)
		}
	}
}

func TestLayerPredicatesSplitEvenly(t *testing.T) {
	c := newTestCube()

	for _, layer := range Faces {
		n := 0
		for i := 0; i < NumPieces; i++ {
			if c.InLayer(i, layer) {
				n++
			}
		}
		assert.Equal(t, 8, n, "layer %v", layer)
	}

	for i := 0; i < NumPieces; i++ {
		assert.NotEqual(t, c.InLayer(i, FaceA), c.InLayer(i, FaceK))
		assert.NotEqual(t, c.InLayer(i, FaceL), c.InLayer(i, FaceR))
		assert.Equal(t, c.Piece(i).Coord.W() < 0, c.InLayer(i, FaceA))
	}
}

func TestUnifyIsIdempotent(t *testing.T) {
	c := newTestCube()
	fresh := c.Snapshot()

	c.Unify()
	once := c.Snapshot()
	c.Unify()
	twice := c.Snapshot()

	approx := cmpopts.EquateApprox(0, 1e-9)
	assert.Empty(t, cmp.Diff(fresh, once, approx))
	assert.Empty(t, cmp.Diff(once, twice, approx))
}

func TestUnifyAfterGeometryChange(t *testing.T) {
	c := newTestCube()
	before := c.Snapshot()

	c.Geometry().CubieGap = 0.6
	c.Geometry().HedgehogAngle = 10
	c.Unify()

	assert.Empty(t, cmp.Diff(before, c.Snapshot(), cmpopts.EquateApprox(0, 1e-9)))

	g := c.Geometry()
	for i := 0; i < NumPieces; i++ {
		x := math.Abs(c.Piece(i).WorldPosition().X())
		d1 := math.Abs(x - (g.WCenterX() + g.PivotOffset()))
		d2 := math.Abs(x - (g.WCenterX() - g.PivotOffset()))
		assert.True(t, d1 < 1e-9 || d2 < 1e-9, "piece %d off anchor at x=%v", i, x)
	}
}

func TestSetGeometryKeepsDiscreteState(t *testing.T) {
	c := newTestCube()
	before := c.Snapshot()

	g := *c.Geometry()
	g.CubeSize = 5
	g.HedgehogAngle = 0
	c.SetGeometry(g)

	assert.Equal(t, 5.0, c.Geometry().CubeSize)
	assert.Empty(t, cmp.Diff(before, c.Snapshot(), cmpopts.EquateApprox(0, 1e-9)))

	for i := 0; i < NumPieces; i++ {
		p := c.Piece(i)
		assert.Equal(t, p.Coord.W() < 0, p.InLayer(FaceA), "piece %d changed layer", i)
	}
}

func TestResetMatchesConstructionColors(t *testing.T) {
	c := newTestCube()
	before := c.Snapshot()

	painter := &recordingPainter{colors: make(map[FaceletRef]Color)}
	c.SetPainter(painter)
	c.Reset()

	after := c.Snapshot()
	for i := range before {
		assert.Equal(t, before[i].Color, after[i].Color, "facelet %v/%d", before[i].Coord, before[i].Index)
	}
	assert.Len(t, painter.colors, NumPieces*FaceletsPerPiece)
}

func TestUpdateColorsWithoutPainterIsNoop(t *testing.T) {
	c := newTestCube()
	before := c.Snapshot()
	c.UpdateColors()
	assert.Equal(t, before, c.Snapshot())
}

func TestAttachKeepsWorldTransform(t *testing.T) {
	c := newTestCube()
	p := c.Piece(3)
	world := p.WorldPosition()

	f := NewFrame(mgl64.Vec3{-1, 2, 0})
	f.SetRotation(mgl64.Vec3{0, 1, 0}, 0.7)
	c.Attach(3, f)

	assert.Same(t, f, p.Frame())
	assert.True(t, p.WorldPosition().ApproxEqualThreshold(world, 1e-9))

	c.Detach(3)
	assert.Nil(t, p.Frame())
	assert.True(t, p.Position.ApproxEqualThreshold(world, 1e-9))
}

func TestQuarterTurnByHandThenUnify(t *testing.T) {
	c := newTestCube()
	geom := c.Geometry()

	// Rotate the whole kata layer a quarter turn about +Y around its centre.
	f := NewFrame(mgl64.Vec3{geom.WCenterX(), 0, 0})
	var moved []int
	for i := 0; i < NumPieces; i++ {
		if c.InLayer(i, FaceK) {
			c.Attach(i, f)
			moved = append(moved, i)
		}
	}
	f.SetRotation(mgl64.Vec3{0, 1, 0}, math.Pi/2)
	for _, i := range moved {
		c.Detach(i)
	}
	c.Unify()

	for _, i := range moved {
		p := c.Piece(i)
		assert.True(t, p.Orientation.ApproxEqual(mgl64.QuatIdent()))
		assert.True(t, p.InLayer(FaceK))
		for j := range p.Facelets {
			ref := FaceletRef{Piece: i, Index: j}
			face := c.Face(ref)
			if p.Facelets[j].ColorID == ColorPlusY || p.Facelets[j].ColorID == ColorMinusY {
				assert.Contains(t, []Face{FaceU, FaceD}, face)
			}
			if j == 0 {
				assert.Equal(t, FaceK, face)
			}
		}
	}

	// A Y quarter turn maps the outer X face onto a Z face.
	ref, ok := findCoord(c, Coord{1, 1, 1, 1})
	require.True(t, ok)
	xFacelet := FaceletRef{Piece: ref.Piece, Index: 1}
	assert.Contains(t, []Face{FaceF, FaceB}, c.Face(xFacelet))
}

func TestClassifyPanicsOnDivergedPose(t *testing.T) {
	c := newTestCube()
	c.Piece(0).Position = mgl64.Vec3{math.NaN(), 0, 0}

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrUnclassifiable)
	}()
	c.Face(FaceletRef{Piece: 0, Index: 1})
}

func TestFindFacelet(t *testing.T) {
	c := newTestCube()
	for _, layer := range []Face{FaceA, FaceK} {
		for _, face := range []Face{FaceU, FaceD, FaceF, FaceB, FaceL, FaceR} {
			ref, ok := c.FindFacelet(layer, face)
			require.True(t, ok, "%v/%v", layer, face)
			assert.Equal(t, face, c.Face(ref))
			assert.True(t, c.InLayer(ref.Piece, layer))
		}
	}
	_, ok := c.FindFacelet(FaceA, FaceK)
	assert.False(t, ok)
}

func TestParseFace(t *testing.T) {
	f, ok := ParseFace("k")
	assert.True(t, ok)
	assert.Equal(t, FaceK, f)
	_, ok = ParseFace("x")
	assert.False(t, ok)
	assert.True(t, FaceA.Hyper())
	assert.False(t, FaceU.Hyper())
}

type recordingPainter struct {
	colors map[FaceletRef]Color
}

func (p *recordingPainter) Paint(ref FaceletRef, color Color) {
	p.colors[ref] = color
}

func findCoord(c *Cube, coord Coord) (FaceletRef, bool) {
	for i := 0; i < NumPieces; i++ {
		if c.Piece(i).Coord == coord {
			return FaceletRef{Piece: i}, true
		}
	}
	return FaceletRef{}, false
}
