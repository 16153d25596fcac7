// Package vecmath provides the axis constants and small vector helpers the
// puzzle model is built on.
package vecmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ParallelThreshold is the absolute dot product above which two unit axes
// count as the same axis. Axes reach the scrambler through different
// construction paths, so exact equality is not usable.
const ParallelThreshold = 0.99

// Unit axes. Front points towards -Z, Back towards +Z.
var (
	Zero  = mgl64.Vec3{0, 0, 0}
	Up    = mgl64.Vec3{0, 1, 0}
	Down  = mgl64.Vec3{0, -1, 0}
	Left  = mgl64.Vec3{-1, 0, 0}
	Right = mgl64.Vec3{1, 0, 0}
	Front = mgl64.Vec3{0, 0, -1}
	Back  = mgl64.Vec3{0, 0, 1}
)

// Project zeroes every component of v except the one selected by axis.
// The axis is matched by its dominant component, so Left and Right both
// select X.
func Project(v, axis mgl64.Vec3) mgl64.Vec3 {
	switch {
	case axis.X() != 0:
		return ProjX(v)
	case axis.Y() != 0:
		return ProjY(v)
	case axis.Z() != 0:
		return ProjZ(v)
	}
	return Zero
}

// ProjX keeps only the X component.
func ProjX(v mgl64.Vec3) mgl64.Vec3 { return mgl64.Vec3{v.X(), 0, 0} }

// ProjY keeps only the Y component.
func ProjY(v mgl64.Vec3) mgl64.Vec3 { return mgl64.Vec3{0, v.Y(), 0} }

// ProjZ keeps only the Z component.
func ProjZ(v mgl64.Vec3) mgl64.Vec3 { return mgl64.Vec3{0, 0, v.Z()} }

// SignUnify maps each component to -1, 0 or 1.
func SignUnify(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{sign(v.X()), sign(v.Y()), sign(v.Z())}
}

// SetComponentLength returns SignUnify(v) scaled to l.
func SetComponentLength(v mgl64.Vec3, l float64) mgl64.Vec3 {
	return SignUnify(v).Mul(l)
}

// DominantAxis keeps the largest-magnitude component of v and zeroes the
// others. Ties go to Y, then Z, then X, the same order face classification
// checks them in.
func DominantAxis(v mgl64.Vec3) mgl64.Vec3 {
	ax, ay, az := math.Abs(v.X()), math.Abs(v.Y()), math.Abs(v.Z())
	switch {
	case ay >= az && ay >= ax:
		return ProjY(v)
	case az >= ax:
		return ProjZ(v)
	default:
		return ProjX(v)
	}
}

// Parallel reports whether two axes are near-collinear, in either sense.
func Parallel(a, b mgl64.Vec3) bool {
	return math.Abs(a.Dot(b)) > ParallelThreshold
}

// SnapAngle rounds angle to the nearest multiple of step.
func SnapAngle(angle, step float64) float64 {
	if step == 0 {
		return angle
	}
	return math.Round(angle/step) * step
}

// Rotation returns the quaternion rotating by angle around axis. A zero
// axis yields the identity rather than a non-unit quaternion.
func Rotation(axis mgl64.Vec3, angle float64) mgl64.Quat {
	if axis.Len() < 1e-9 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(angle, axis.Normalize())
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}
