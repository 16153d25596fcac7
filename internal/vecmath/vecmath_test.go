package vecmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestProject(t *testing.T) {
	v := mgl64.Vec3{1, -2, 3}
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, Project(v, Left))
	assert.Equal(t, mgl64.Vec3{0, -2, 0}, Project(v, Up))
	assert.Equal(t, mgl64.Vec3{0, 0, 3}, Project(v, Front))
	assert.Equal(t, Zero, Project(v, Zero))
}

func TestSignUnify(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{1, -1, 0}, SignUnify(mgl64.Vec3{4.2, -0.001, 0}))
	assert.Equal(t, mgl64.Vec3{-2.1, 2.1, -2.1}, SetComponentLength(mgl64.Vec3{-7, 0.3, -1}, 2.1))
}

func TestDominantAxis(t *testing.T) {
	tests := []struct {
		name string
		in   mgl64.Vec3
		want mgl64.Vec3
	}{
		{"x wins", mgl64.Vec3{-3, 1, 2}, mgl64.Vec3{-3, 0, 0}},
		{"y wins", mgl64.Vec3{1, 5, -2}, mgl64.Vec3{0, 5, 0}},
		{"z wins", mgl64.Vec3{1, 0, -2}, mgl64.Vec3{0, 0, -2}},
		{"y beats z on tie", mgl64.Vec3{0, 1, 1}, mgl64.Vec3{0, 1, 0}},
		{"z beats x on tie", mgl64.Vec3{-1, 0, 1}, mgl64.Vec3{0, 0, 1}},
		{"y beats x on tie", mgl64.Vec3{1, -1, 0}, mgl64.Vec3{0, -1, 0}},
		{"zero stays zero", Zero, Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DominantAxis(tt.in))
		})
	}
}

func TestParallel(t *testing.T) {
	assert.True(t, Parallel(Up, Down))
	assert.True(t, Parallel(Left, mgl64.Vec3{1, 0.01, 0}.Normalize()))
	assert.False(t, Parallel(Up, Front))
	assert.False(t, Parallel(Zero, Up))
}

func TestSnapAngle(t *testing.T) {
	assert.InDelta(t, math.Pi/2, SnapAngle(math.Pi/2+0.04, math.Pi/2), 1e-12)
	assert.InDelta(t, -math.Pi, SnapAngle(-math.Pi-0.1, math.Pi), 1e-12)
	assert.InDelta(t, 0.3, SnapAngle(0.3, 0), 1e-12)
}

func TestRotationZeroAxisIsIdentity(t *testing.T) {
	q := Rotation(Zero, 1.2)
	assert.True(t, q.ApproxEqual(mgl64.QuatIdent()))

	r := Rotation(Up, math.Pi/2).Rotate(Back)
	assert.True(t, r.ApproxEqualThreshold(Right, 1e-9), "got %v", r)
}
