// Package turn implements the puzzle's moves: slice turns, whole-puzzle
// rotations, paired hyper-layer rotations and the gyro.
//
// Moves are plain descriptors. A single executor, Turn, animates any of
// them through Begin, Tick, Done and End.
package turn

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/hypercube/internal/config"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
	"github.com/SeamusWaldron/hypercube/internal/vecmath"
)

// Kind selects how a move animates.
type Kind int

const (
	KindSlice   Kind = iota // rotate the pieces of one layer
	KindWhole               // rotate every piece
	KindPairedW             // rotate anna and kata in opposite senses
	KindGyro                // exchange pieces between the hyper-layers
)

func (k Kind) String() string {
	switch k {
	case KindSlice:
		return "slice"
	case KindWhole:
		return "whole"
	case KindPairedW:
		return "paired-w"
	case KindGyro:
		return "gyro"
	default:
		return "unknown"
	}
}

// Origin is where a rotation frame is anchored. It is resolved against the
// live geometry when the move begins.
type Origin int

const (
	OriginCenter Origin = iota
	OriginAnna
	OriginKata
)

// Point returns the world position of the origin.
func (o Origin) Point(g *config.Geometry) mgl64.Vec3 {
	switch o {
	case OriginAnna:
		return mgl64.Vec3{-g.WCenterX(), 0, 0}
	case OriginKata:
		return mgl64.Vec3{g.WCenterX(), 0, 0}
	default:
		return vecmath.Zero
	}
}

// Move describes one move. Step is the number of quarter turns the move
// covers, and also the unit its final angle snaps to.
type Move struct {
	Name   string
	Kind   Kind
	Axis   mgl64.Vec3
	Origin Origin
	Step   int
	Layer  puzzle.Face
}

// StepAngle is the target rotation in radians.
func (m Move) StepAngle() float64 {
	return float64(m.Step) * math.Pi / 2
}

func (m Move) String() string {
	return m.Name
}

// Slice describes a slice turn of the pieces in layer around axis.
func Slice(name string, axis mgl64.Vec3, origin Origin, step int, layer puzzle.Face) Move {
	return Move{Name: name, Kind: KindSlice, Axis: axis, Origin: origin, Step: step, Layer: layer}
}

// Whole describes a rotation of the entire puzzle.
func Whole(name string, axis mgl64.Vec3, step int) Move {
	return Move{Name: name, Kind: KindWhole, Axis: axis, Step: step}
}

// PairedW describes a quarter rotation of anna by +angle and kata by
// -angle about the same axis.
func PairedW(name string, axis mgl64.Vec3) Move {
	return Move{Name: name, Kind: KindPairedW, Axis: axis, Step: 1}
}

// Gyro is the move that cycles pieces through both hyper-layers.
var Gyro = Move{Name: "G", Kind: KindGyro}

var sliceMoves = [...]Move{
	Slice("AR", vecmath.Left, OriginAnna, 1, puzzle.FaceA),
	Slice("AL", vecmath.Right, OriginAnna, 1, puzzle.FaceA),
	Slice("AU", vecmath.Down, OriginAnna, 1, puzzle.FaceA),
	Slice("AD", vecmath.Up, OriginAnna, 1, puzzle.FaceA),
	Slice("AF", vecmath.Back, OriginAnna, 1, puzzle.FaceA),
	Slice("AB", vecmath.Front, OriginAnna, 1, puzzle.FaceA),

	Slice("KR", vecmath.Right, OriginKata, 1, puzzle.FaceK),
	Slice("KL", vecmath.Left, OriginKata, 1, puzzle.FaceK),
	Slice("KU", vecmath.Down, OriginKata, 1, puzzle.FaceK),
	Slice("KD", vecmath.Up, OriginKata, 1, puzzle.FaceK),
	Slice("KF", vecmath.Back, OriginKata, 1, puzzle.FaceK),
	Slice("KB", vecmath.Front, OriginKata, 1, puzzle.FaceK),

	// Full-depth slices through the origin. U/D/F/B swap pieces between the
	// hyper-layers, so only half turns land on valid anchors.
	Slice("U", vecmath.Down, OriginCenter, 2, puzzle.FaceU),
	Slice("D", vecmath.Up, OriginCenter, 2, puzzle.FaceD),
	Slice("F", vecmath.Back, OriginCenter, 2, puzzle.FaceF),
	Slice("B", vecmath.Front, OriginCenter, 2, puzzle.FaceB),
	Slice("I", vecmath.Right, OriginCenter, 1, puzzle.FaceR),
	Slice("O", vecmath.Left, OriginCenter, 1, puzzle.FaceL),
}

var wholeMoves = [...]Move{
	Whole("rU", vecmath.Down, 2),
	Whole("rD", vecmath.Up, 2),
	Whole("rF", vecmath.Back, 2),
	Whole("rB", vecmath.Front, 2),
	Whole("rR", vecmath.Left, 1),
	Whole("rL", vecmath.Right, 1),
}

var pairedMoves = [...]Move{
	PairedW("wU", vecmath.Down),
	PairedW("wD", vecmath.Up),
	PairedW("wF", vecmath.Back),
	PairedW("wB", vecmath.Front),
	PairedW("wR", vecmath.Left),
	PairedW("wL", vecmath.Right),
}

// SliceMoves returns the eighteen slice turns.
func SliceMoves() []Move { return sliceMoves[:] }

// WholeMoves returns the six whole-puzzle rotations.
func WholeMoves() []Move { return wholeMoves[:] }

// PairedMoves returns the six paired hyper-layer rotations.
func PairedMoves() []Move { return pairedMoves[:] }

// Lookup finds a move by name.
func Lookup(name string) (Move, bool) {
	if name == Gyro.Name {
		return Gyro, true
	}
	for _, set := range [...][]Move{sliceMoves[:], wholeMoves[:], pairedMoves[:]} {
		for _, m := range set {
			if m.Name == name {
				return m, true
			}
		}
	}
	return Move{}, false
}
