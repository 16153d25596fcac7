package puzzle

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/hypercube/internal/config"
	"github.com/SeamusWaldron/hypercube/internal/vecmath"
)

// Coord identifies a piece by its 4D corner, every component being -1 or +1.
type Coord [4]int

func (c Coord) X() int { return c[0] }
func (c Coord) Y() int { return c[1] }
func (c Coord) Z() int { return c[2] }
func (c Coord) W() int { return c[3] }

// Vec3 returns the (x, y, z) part as a vector.
func (c Coord) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(c[0]), float64(c[1]), float64(c[2])}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", c[0], c[1], c[2], c[3])
}

// Frame is a transient transform that pieces are attached to while a move
// animates them. It plays the role of a scene-graph group: the core only
// needs "attach to frame" and "attach back to root".
type Frame struct {
	Origin   mgl64.Vec3
	Rotation mgl64.Quat
}

// NewFrame returns an unrotated frame at origin.
func NewFrame(origin mgl64.Vec3) *Frame {
	return &Frame{Origin: origin, Rotation: mgl64.QuatIdent()}
}

// SetRotation sets the frame rotation from an axis and angle.
func (f *Frame) SetRotation(axis mgl64.Vec3, angle float64) {
	f.Rotation = vecmath.Rotation(axis, angle)
}

func (f *Frame) toWorld(pos mgl64.Vec3, rot mgl64.Quat) (mgl64.Vec3, mgl64.Quat) {
	return f.Origin.Add(f.Rotation.Rotate(pos)), f.Rotation.Mul(rot)
}

func (f *Frame) toLocal(pos mgl64.Vec3, rot mgl64.Quat) (mgl64.Vec3, mgl64.Quat) {
	inv := f.Rotation.Inverse()
	return inv.Rotate(pos.Sub(f.Origin)), inv.Mul(rot)
}

// Piece is one of the 16 cubies. Position and Orientation are relative to
// the frame the piece is attached to, or to the world when it is detached.
type Piece struct {
	Coord       Coord
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Facelets    [FaceletsPerPiece]Facelet

	frame *Frame
	geom  *config.Geometry
}

// Frame returns the frame the piece is attached to, or nil.
func (p *Piece) Frame() *Frame {
	return p.frame
}

// WorldPosition returns the pivot position in world space.
func (p *Piece) WorldPosition() mgl64.Vec3 {
	if p.frame == nil {
		return p.Position
	}
	pos, _ := p.frame.toWorld(p.Position, p.Orientation)
	return pos
}

// WorldOrientation returns the pivot orientation in world space.
func (p *Piece) WorldOrientation() mgl64.Quat {
	if p.frame == nil {
		return p.Orientation
	}
	_, rot := p.frame.toWorld(p.Position, p.Orientation)
	return rot
}

// InLayer reports whether the piece currently sits in the given layer.
// L selects the outer X slice of either hyper-layer and R the inner one.
func (p *Piece) InLayer(layer Face) bool {
	pos := p.WorldPosition()
	wcx := p.geom.WCenterX()
	switch layer {
	case FaceU:
		return pos.Y() > 0
	case FaceD:
		return pos.Y() < 0
	case FaceB:
		return pos.Z() > 0
	case FaceF:
		return pos.Z() < 0
	case FaceL:
		return math.Abs(pos.X()) > wcx
	case FaceR:
		return math.Abs(pos.X()) < wcx
	case FaceA:
		return pos.X() < 0
	case FaceK:
		return pos.X() > 0
	}
	panic(fmt.Sprintf("puzzle: unknown layer %d", layer))
}

// Slot is the discrete anchor a piece occupies: its hyper-layer plus the
// sign of its offset from that layer's centre.
type Slot struct {
	Anna    bool
	X, Y, Z int
}

func (s Slot) String() string {
	layer := "K"
	if s.Anna {
		layer = "A"
	}
	return fmt.Sprintf("%s(%d,%d,%d)", layer, s.X, s.Y, s.Z)
}

// Slot returns the anchor the piece currently occupies.
func (p *Piece) Slot() Slot {
	anna := p.InLayer(FaceA)
	d := vecmath.SignUnify(p.WorldPosition().Sub(layerCenter(p.geom, anna)))
	return Slot{Anna: anna, X: int(d.X()), Y: int(d.Y()), Z: int(d.Z())}
}

// attach reparents the piece under f, keeping its world transform.
func (p *Piece) attach(f *Frame) {
	pos, rot := p.WorldPosition(), p.WorldOrientation()
	p.frame = f
	p.Position, p.Orientation = f.toLocal(pos, rot)
}

// detach moves the piece back to the root, keeping its world transform.
func (p *Piece) detach() {
	if p.frame == nil {
		return
	}
	p.Position, p.Orientation = p.WorldPosition(), p.WorldOrientation()
	p.frame = nil
}

// snap moves the detached pivot to the nearest valid anchor: one of two X
// slots per hyper-layer, one of two Y and Z slots.
func (p *Piece) snap() {
	wcx := p.geom.WCenterX()
	off := p.geom.PivotOffset()

	x := p.Position.X()
	switch {
	case x < 0 && x < -wcx:
		x = -wcx - off
	case x < 0:
		x = -wcx + off
	case x < wcx:
		x = wcx - off
	default:
		x = wcx + off
	}
	p.Position = mgl64.Vec3{x, snapSigned(p.Position.Y(), off), snapSigned(p.Position.Z(), off)}
}

func snapSigned(v, off float64) float64 {
	if v < 0 {
		return -off
	}
	return off
}

// layerCenter returns the world centre of the anna or kata layer.
func layerCenter(g *config.Geometry, anna bool) mgl64.Vec3 {
	if anna {
		return mgl64.Vec3{-g.WCenterX(), 0, 0}
	}
	return mgl64.Vec3{g.WCenterX(), 0, 0}
}
