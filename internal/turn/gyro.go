package turn

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/hypercube/internal/puzzle"
	"github.com/SeamusWaldron/hypercube/internal/vecmath"
)

// gyroPiece is the planned path of one piece through a gyro.
type gyroPiece struct {
	start, end mgl64.Vec3
	facelets   [puzzle.FaceletsPerPiece]gyroFacelet
}

type gyroFacelet struct {
	startTilt, endTilt mgl64.Quat
	direction, offset  mgl64.Vec3
}

// The four X anchors, left to right: anna outer, anna inner, kata inner,
// kata outer.
func gyroAnchors(wcx, off float64) [4]float64 {
	return [4]float64{-wcx - off, -wcx + off, wcx - off, wcx + off}
}

// gyroTarget maps an anchor index to where the gyro sends it. Forward
// cycles every X slot one step left, wrapping anna outer to kata outer.
func gyroTarget(slot int, forward bool) int {
	if forward {
		return (slot + 3) % 4
	}
	return (slot + 1) % 4
}

func anchorIndex(x, wcx float64) int {
	switch {
	case x < -wcx:
		return 0
	case x < 0:
		return 1
	case x < wcx:
		return 2
	default:
		return 3
	}
}

// beginGyro plans every piece's end position and every facelet's end
// state. Each piece changes X slot, so its direction flips along X; the
// hyper facelet takes over the X side and the X facelet becomes hyper.
func (t *Turn) beginGyro() {
	g := t.cube.Geometry()
	wcx := g.WCenterX()
	anchors := gyroAnchors(wcx, g.PivotOffset())
	forward := t.direction > 0

	for i := 0; i < puzzle.NumPieces; i++ {
		p := t.cube.Piece(i)
		gp := &t.gyro[i]

		gp.start = p.Position
		gp.end = p.Position
		gp.end[0] = anchors[gyroTarget(anchorIndex(p.Position.X(), wcx), forward)]

		for j := range p.Facelets {
			f := &p.Facelets[j]
			gf := &gp.facelets[j]

			dir := f.Direction
			dir[0] = -dir[0]
			gf.direction = dir
			gf.startTilt = f.Tilt

			switch face := t.cube.Face(puzzle.FaceletRef{Piece: i, Index: j}); face {
			case puzzle.FaceA, puzzle.FaceK:
				gf.offset = vecmath.ProjX(dir)
				gf.endTilt = puzzle.Tilt(g, dir, gf.offset)
			case puzzle.FaceL, puzzle.FaceR:
				gf.offset = vecmath.Zero
				gf.endTilt = mgl64.QuatIdent()
			default:
				gf.offset = f.Offset
				gf.endTilt = puzzle.Tilt(g, dir, f.Offset)
			}
		}
		t.targets = append(t.targets, i)
	}
}

func (t *Turn) tickGyro() {
	k := math.Min(1, t.progress/t.duration)
	for _, i := range t.targets {
		p := t.cube.Piece(i)
		gp := &t.gyro[i]
		p.Position = vecmath.Lerp(gp.start, gp.end, k)
		for j := range p.Facelets {
			gf := &gp.facelets[j]
			p.Facelets[j].Tilt = mgl64.QuatSlerp(gf.startTilt, gf.endTilt, k)
		}
	}
}

func (t *Turn) endGyro() {
	for _, i := range t.targets {
		p := t.cube.Piece(i)
		gp := &t.gyro[i]
		p.Position = gp.end
		for j := range p.Facelets {
			gf := &gp.facelets[j]
			t.cube.SetFacelet(puzzle.FaceletRef{Piece: i, Index: j}, gf.direction, gf.offset)
		}
	}
}
