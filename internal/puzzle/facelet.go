package puzzle

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/hypercube/internal/config"
	"github.com/SeamusWaldron/hypercube/internal/vecmath"
)

// FaceThreshold is the minimum dominant-axis offset, in units of half a
// cubie, for a facelet to count as lying on an ordinary face. Anything
// closer to the piece centre is on the hyper side.
const FaceThreshold = 0.5

// FaceletRef addresses a facelet by piece index and facelet index.
type FaceletRef struct {
	Piece int
	Index int
}

// Facelet is one coloured sticker of a piece.
//
// Direction is the piece's sign vector in its hyper-layer frame, shared by
// all four facelets of a piece. Offset is the unit axis the facelet
// currently occupies, or zero for the hyper side. Together they are the
// discrete puzzle state; Tilt is the hedgehog orientation derived from them
// and only changes transiently while a gyro animates.
type Facelet struct {
	ColorID   Color
	Direction mgl64.Vec3
	Offset    mgl64.Vec3
	Tilt      mgl64.Quat

	piece int
}

// Piece returns the index of the owning piece.
func (f *Facelet) Piece() int {
	return f.piece
}

// update sets the discrete state and recomputes the hedgehog tilt.
func (f *Facelet) update(g *config.Geometry, direction, offset mgl64.Vec3) {
	f.Direction = direction
	f.Offset = offset
	f.Tilt = Tilt(g, direction, offset)
}

// Tilt returns the hedgehog orientation for a facelet: the offset axis
// leaned towards the piece direction by the hedgehog angle. Hyper facelets
// have no offset and stay untilted.
func Tilt(g *config.Geometry, direction, offset mgl64.Vec3) mgl64.Quat {
	return vecmath.Rotation(offset.Cross(direction), g.HedgehogRad())
}

// localMesh is the facelet cube position relative to the pivot, before the
// piece orientation is applied.
func (f *Facelet) localMesh(g *config.Geometry) mgl64.Vec3 {
	return f.Tilt.Rotate(f.Offset.Mul(g.CubeSize / 2))
}

// WorldPosition returns where the facelet's cube sits in world space.
func (c *Cube) WorldPosition(ref FaceletRef) mgl64.Vec3 {
	p := &c.pieces[ref.Piece]
	f := &p.Facelets[ref.Index]
	return p.WorldPosition().Add(p.WorldOrientation().Rotate(f.localMesh(c.geom)))
}

// Face classifies the face the facelet currently shows from its pose alone.
// It panics with ErrUnclassifiable if the pose has diverged from every
// valid discrete state.
func (c *Cube) Face(ref FaceletRef) Face {
	p := &c.pieces[ref.Piece]
	return classify(c.geom, p, &p.Facelets[ref.Index])
}

func classify(g *config.Geometry, p *Piece, f *Facelet) Face {
	wcx := g.WCenterX()
	pivot := p.WorldPosition()
	node := pivot
	mesh := pivot.Add(p.WorldOrientation().Rotate(f.localMesh(g)))

	anna := pivot.X() < 0
	shift := -wcx
	if anna {
		shift = wcx
	}
	pivot[0] += shift
	mesh[0] += shift

	center := vecmath.SetComponentLength(pivot, g.CubieCenter())
	off := mesh.Sub(center).Mul(2 / g.CubeSize)
	d := vecmath.DominantAxis(off)

	switch {
	case d.Y() > FaceThreshold:
		return FaceU
	case d.Y() < -FaceThreshold:
		return FaceD
	case d.Z() > FaceThreshold:
		return FaceB
	case d.Z() < -FaceThreshold:
		return FaceF
	case d.X() > FaceThreshold:
		if node.X() > 0 {
			return FaceL
		}
		return FaceR
	case d.X() < -FaceThreshold:
		if node.X() < 0 {
			return FaceL
		}
		return FaceR
	case off.Len() < FaceThreshold:
		if anna {
			return FaceA
		}
		return FaceK
	}
	panic(fmt.Errorf("%w: piece %v offset %v", ErrUnclassifiable, p.Coord, off))
}

// canonicalOffset maps a classified face to the offset axis stored on the
// facelet. L and R are mirrored between the two hyper-layers.
func canonicalOffset(face Face, anna bool) mgl64.Vec3 {
	switch face {
	case FaceU:
		return vecmath.Up
	case FaceD:
		return vecmath.Down
	case FaceF:
		return vecmath.Front
	case FaceB:
		return vecmath.Back
	case FaceL:
		if anna {
			return vecmath.Left
		}
		return vecmath.Right
	case FaceR:
		if anna {
			return vecmath.Right
		}
		return vecmath.Left
	default:
		return vecmath.Zero
	}
}
