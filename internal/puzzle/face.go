package puzzle

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/hypercube/internal/vecmath"
)

// Face is one of the eight symbolic faces a facelet can show. L and R are
// relative to the hyper-layer: L is the outer X face (away from the other
// layer), R the inner one. A and K are the hyper-facing sides of the anna
// and kata layers.
type Face int

const (
	FaceU Face = iota // Up (+Y)
	FaceD             // Down (-Y)
	FaceF             // Front (-Z)
	FaceB             // Back (+Z)
	FaceL             // outer X face
	FaceR             // inner X face
	FaceA             // anna hyper side
	FaceK             // kata hyper side
)

// Faces lists every face in classification order.
var Faces = [...]Face{FaceU, FaceD, FaceF, FaceB, FaceL, FaceR, FaceA, FaceK}

func (f Face) String() string {
	switch f {
	case FaceU:
		return "U"
	case FaceD:
		return "D"
	case FaceF:
		return "F"
	case FaceB:
		return "B"
	case FaceL:
		return "L"
	case FaceR:
		return "R"
	case FaceA:
		return "A"
	case FaceK:
		return "K"
	default:
		return "?"
	}
}

// Hyper reports whether f is one of the hyper-facing sides.
func (f Face) Hyper() bool {
	return f == FaceA || f == FaceK
}

// ParseFace parses a single face letter, case-insensitively.
func ParseFace(s string) (Face, bool) {
	for _, f := range Faces {
		if strings.EqualFold(s, f.String()) {
			return f, true
		}
	}
	return 0, false
}

// Axis returns the rotation axis conventionally associated with f. The
// hyper sides have no axis.
func (f Face) Axis() mgl64.Vec3 {
	switch f {
	case FaceU:
		return vecmath.Up
	case FaceD:
		return vecmath.Down
	case FaceF:
		return vecmath.Front
	case FaceB:
		return vecmath.Back
	case FaceL:
		return vecmath.Left
	case FaceR:
		return vecmath.Right
	default:
		return vecmath.Zero
	}
}

// Color labels a facelet sticker by the 4D cell it belongs to. A facelet's
// color never changes during a move.
type Color int

const (
	ColorNone Color = iota
	ColorPlusX
	ColorMinusX
	ColorPlusY
	ColorMinusY
	ColorPlusZ
	ColorMinusZ
	ColorPlusW
	ColorMinusW
)

// Colors lists the eight sticker colors.
var Colors = [...]Color{
	ColorPlusX, ColorMinusX,
	ColorPlusY, ColorMinusY,
	ColorPlusZ, ColorMinusZ,
	ColorPlusW, ColorMinusW,
}

func (c Color) String() string {
	switch c {
	case ColorPlusX:
		return "plus_x"
	case ColorMinusX:
		return "minus_x"
	case ColorPlusY:
		return "plus_y"
	case ColorMinusY:
		return "minus_y"
	case ColorPlusZ:
		return "plus_z"
	case ColorMinusZ:
		return "minus_z"
	case ColorPlusW:
		return "plus_w"
	case ColorMinusW:
		return "minus_w"
	default:
		return ""
	}
}

// colorFor picks the color for a sign on one of the four axes (0=X .. 3=W).
func colorFor(axis, sign int) Color {
	if sign == 0 {
		return ColorNone
	}
	c := ColorPlusX + Color(2*axis)
	if sign < 0 {
		c++
	}
	return c
}

// resetColor is the color a facelet receives from Reset when it shows f.
func resetColor(f Face) Color {
	switch f {
	case FaceU:
		return ColorPlusY
	case FaceD:
		return ColorMinusY
	case FaceB:
		return ColorPlusZ
	case FaceF:
		return ColorMinusZ
	case FaceL:
		return ColorPlusX
	case FaceR:
		return ColorMinusX
	case FaceK:
		return ColorPlusW
	case FaceA:
		return ColorMinusW
	default:
		return ColorNone
	}
}
