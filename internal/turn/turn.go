package turn

import (
	"math"

	"github.com/SeamusWaldron/hypercube/internal/puzzle"
	"github.com/SeamusWaldron/hypercube/internal/vecmath"
)

// DefaultGyroDuration is the tick budget a gyro animates over.
const DefaultGyroDuration = 2.0

// Turn animates one move at a time against a cube. It is reusable: Load
// replaces the move and keeps the internal buffers.
//
// The lifecycle is Load, SetDirection, Begin, Tick until Done, End. End
// commits the discrete result and unifies the cube.
type Turn struct {
	cube      *puzzle.Cube
	move      Move
	direction float64
	active    bool

	// Rotating moves.
	angle   float64
	frames  [2]puzzle.Frame
	targets []int

	// Gyro.
	progress float64
	duration float64
	gyro     [puzzle.NumPieces]gyroPiece
}

// New returns an idle executor for cube, loaded with m.
func New(cube *puzzle.Cube, m Move) *Turn {
	t := &Turn{
		cube:     cube,
		duration: DefaultGyroDuration,
		targets:  make([]int, 0, puzzle.NumPieces),
	}
	t.Load(m)
	return t
}

// Load replaces the move. It has no effect while a move is active.
func (t *Turn) Load(m Move) {
	if t.active {
		return
	}
	t.move = m
	t.direction = 1
	t.angle = 0
	t.progress = 0
}

// SetGyroDuration sets the tick budget for gyro moves.
func (t *Turn) SetGyroDuration(d float64) {
	if d > 0 {
		t.duration = d
	}
}

// Move returns the loaded move.
func (t *Turn) Move() Move { return t.move }

// Direction returns the rotation sign, +1 or -1.
func (t *Turn) Direction() int {
	if t.direction < 0 {
		return -1
	}
	return 1
}

// Active reports whether the move has begun and not yet ended.
func (t *Turn) Active() bool { return t.active }

// Angle returns the accumulated rotation of a rotating move.
func (t *Turn) Angle() float64 { return t.angle }

// Targets returns the indices of the pieces the active move carries.
func (t *Turn) Targets() []int { return t.targets }

// SetDirection sets the rotation sign. It must be called before or at
// Begin; later calls are ignored.
func (t *Turn) SetDirection(d int) {
	if t.active {
		return
	}
	if d < 0 {
		t.direction = -1
	} else {
		t.direction = 1
	}
}

// Begin selects the pieces to move and attaches them to fresh frames.
func (t *Turn) Begin() {
	if t.active {
		return
	}
	t.active = true
	t.angle = 0
	t.progress = 0
	t.targets = t.targets[:0]

	g := t.cube.Geometry()
	switch t.move.Kind {
	case KindSlice:
		t.frames[0] = *puzzle.NewFrame(t.move.Origin.Point(g))
		for i := 0; i < puzzle.NumPieces; i++ {
			if t.cube.InLayer(i, t.move.Layer) {
				t.attach(i, 0)
			}
		}
	case KindWhole:
		t.frames[0] = *puzzle.NewFrame(vecmath.Zero)
		for i := 0; i < puzzle.NumPieces; i++ {
			t.attach(i, 0)
		}
	case KindPairedW:
		t.frames[0] = *puzzle.NewFrame(OriginAnna.Point(g))
		t.frames[1] = *puzzle.NewFrame(OriginKata.Point(g))
		for i := 0; i < puzzle.NumPieces; i++ {
			if t.cube.InLayer(i, puzzle.FaceA) {
				t.attach(i, 0)
			} else {
				t.attach(i, 1)
			}
		}
	case KindGyro:
		t.beginGyro()
	}
}

func (t *Turn) attach(i, frame int) {
	t.cube.Attach(i, &t.frames[frame])
	t.targets = append(t.targets, i)
}

// Tick advances the animation by dt. Rotations add dt radians in the
// current direction, clamped to the move's target angle.
func (t *Turn) Tick(dt float64) {
	if !t.active {
		return
	}
	if t.move.Kind == KindGyro {
		t.progress += dt
		t.tickGyro()
		return
	}

	t.angle += dt * t.direction
	if limit := t.move.StepAngle(); math.Abs(t.angle) > limit {
		t.angle = math.Copysign(limit, t.angle)
	}
	t.applyAngle()
}

func (t *Turn) applyAngle() {
	t.frames[0].SetRotation(t.move.Axis, t.angle)
	if t.move.Kind == KindPairedW {
		t.frames[1].SetRotation(t.move.Axis, -t.angle)
	}
}

// Done reports whether the move has reached its target.
func (t *Turn) Done() bool {
	if !t.active {
		return false
	}
	if t.move.Kind == KindGyro {
		return t.progress >= t.duration
	}
	return math.Abs(t.angle) >= t.move.StepAngle()
}

// End snaps the move to its exact target, detaches every piece and unifies
// the cube.
func (t *Turn) End() {
	if !t.active {
		return
	}
	if t.move.Kind == KindGyro {
		t.endGyro()
	} else {
		t.angle = vecmath.SnapAngle(t.angle, t.move.StepAngle())
		t.applyAngle()
		for _, i := range t.targets {
			t.cube.Detach(i)
		}
	}
	t.cube.Unify()
	t.active = false
}

// Run plays the loaded move to completion in steps of dt.
func (t *Turn) Run(direction int, dt float64) {
	if dt <= 0 {
		dt = 0.1
	}
	t.SetDirection(direction)
	t.Begin()
	for !t.Done() {
		t.Tick(dt)
	}
	t.End()
}
