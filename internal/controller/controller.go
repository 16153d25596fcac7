// Package controller turns user input and frame ticks into moves.
//
// At most one move animates at a time. Input that arrives while a move is
// running is dropped, not queued.
package controller

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/hypercube/internal/config"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
	"github.com/SeamusWaldron/hypercube/internal/turn"
	"github.com/SeamusWaldron/hypercube/internal/vecmath"
)

// Controller owns the active move and the scramble sequence.
type Controller struct {
	cube *puzzle.Cube
	anim config.Animation
	log  *zap.Logger
	rng  *rand.Rand

	turn    *turn.Turn
	current turn.Record
	speed   float64

	shift bool
	ctrl  bool
	click *puzzle.FaceletRef

	scrambling bool
	remaining  int
	prevAxis   mgl64.Vec3

	onMove func(turn.Record)
	onIdle func()
}

// New creates a controller driving cube with the given animation settings.
func New(cube *puzzle.Cube, anim config.Animation, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	t := turn.New(cube, turn.Gyro)
	t.SetGyroDuration(anim.GyroDuration)

	return &Controller{
		cube:  cube,
		anim:  anim,
		log:   o.logger,
		rng:   o.rng,
		turn:  t,
		speed: 1,
	}
}

// OnMove sets a callback fired after every completed move, scramble moves
// included. Scrambling reports true while scramble moves are delivered.
func (c *Controller) OnMove(cb func(turn.Record)) {
	c.onMove = cb
}

// OnIdle sets a callback fired when a move completes and nothing else is
// queued.
func (c *Controller) OnIdle(cb func()) {
	c.onIdle = cb
}

// Busy reports whether a move is animating.
func (c *Controller) Busy() bool {
	return c.turn.Active()
}

// Current returns the move that is animating, if any.
func (c *Controller) Current() (turn.Record, bool) {
	if !c.Busy() {
		return turn.Record{}, false
	}
	return c.current, true
}

// Scrambling reports whether a scramble is in progress.
func (c *Controller) Scrambling() bool {
	return c.scrambling
}

// SetShift sets the shift modifier.
func (c *Controller) SetShift(enabled bool) {
	c.shift = enabled
}

// SetCtrl sets the ctrl modifier.
func (c *Controller) SetCtrl(enabled bool) {
	c.ctrl = enabled
}

// Shift reports the shift modifier.
func (c *Controller) Shift() bool { return c.shift }

// Ctrl reports the ctrl modifier.
func (c *Controller) Ctrl() bool { return c.ctrl }

// StartTurn begins m in the given direction. It returns false, changing
// nothing, if a move is already active.
func (c *Controller) StartTurn(m turn.Move, direction int) bool {
	if c.Busy() {
		return false
	}
	c.turn.Load(m)
	c.turn.SetDirection(direction)
	c.turn.Begin()
	c.current = turn.Record{Move: m, Direction: c.turn.Direction()}

	c.log.Debug("move started",
		zap.String("move", c.current.Notation()),
		zap.Stringer("kind", m.Kind),
		zap.Bool("scramble", c.scrambling),
	)
	return true
}

// ClickStart handles a press on a facelet. A left click turns in the
// positive direction, any other button in the negative one. The move is
// picked from the clicked face, its hyper-layer and the modifiers. It
// returns whether a move started.
func (c *Controller) ClickStart(ref puzzle.FaceletRef, leftClick bool) bool {
	if c.Busy() {
		return false
	}
	c.click = &ref

	face := c.cube.Face(ref)
	kata := c.cube.InLayer(ref.Piece, puzzle.FaceK)
	m, ok := SelectMove(face, kata, c.shift, c.ctrl)
	if !ok {
		c.log.Debug("click ignored", zap.Stringer("face", face))
		return false
	}

	dir := -1
	if leftClick {
		dir = 1
	}
	return c.StartTurn(m, dir)
}

// Pending returns the facelet of the last press, until MouseUp clears it.
func (c *Controller) Pending() (puzzle.FaceletRef, bool) {
	if c.click == nil {
		return puzzle.FaceletRef{}, false
	}
	return *c.click, true
}

// MouseUp clears a pending click. A started move keeps running.
func (c *Controller) MouseUp() {
	if !c.Busy() {
		c.click = nil
	}
}

// SelectMove maps a clicked face to a move:
//
//	no modifier   A*/K* slice of the clicked hyper-layer
//	shift         full-depth U D F B, O for L, I for R
//	ctrl          whole rotation r*
//	shift+ctrl    paired W rotation w* on U D F B, gyro on L and R
//
// Hyper faces never start a move.
func SelectMove(face puzzle.Face, kata, shift, ctrl bool) (turn.Move, bool) {
	if face.Hyper() {
		return turn.Move{}, false
	}

	var name string
	switch {
	case shift && ctrl:
		if face == puzzle.FaceL || face == puzzle.FaceR {
			return turn.Gyro, true
		}
		name = "w" + face.String()
	case ctrl:
		name = "r" + face.String()
	case shift:
		switch face {
		case puzzle.FaceL:
			name = "O"
		case puzzle.FaceR:
			name = "I"
		default:
			name = face.String()
		}
	case kata:
		name = "K" + face.String()
	default:
		name = "A" + face.String()
	}
	return turn.Lookup(name)
}

// Scramble starts a scramble. Moves are issued from Tick, one after another,
// at the scramble speed. Calling Scramble while scrambling has no effect.
func (c *Controller) Scramble() {
	if c.scrambling || c.anim.ScrambleMoves <= 0 {
		return
	}
	c.scrambling = true
	c.remaining = c.anim.ScrambleMoves
	c.speed = c.anim.ScrambleSpeed
	c.prevAxis = vecmath.Zero
	c.log.Info("scramble started", zap.Int("moves", c.remaining))
}

// Tick advances the controller by dt seconds of wall time.
func (c *Controller) Tick(dt float64) {
	if !c.Busy() && c.scrambling {
		c.nextScrambleMove()
	}
	if !c.Busy() {
		return
	}

	c.turn.Tick(dt * c.anim.TurnRate * c.speed)
	if c.turn.Done() {
		c.finish()
	}
}

func (c *Controller) finish() {
	c.turn.End()
	c.log.Debug("move finished", zap.String("move", c.current.Notation()))

	if c.onMove != nil {
		c.onMove(c.current)
	}

	if c.scrambling && c.remaining <= 0 {
		c.scrambling = false
		c.speed = 1
		c.log.Info("scramble finished")
	}
	if !c.scrambling && c.onIdle != nil {
		c.onIdle()
	}
}

var scramblePool = func() []turn.Move {
	pool := make([]turn.Move, 0, len(turn.SliceMoves())+len(turn.PairedMoves()))
	pool = append(pool, turn.SliceMoves()...)
	return append(pool, turn.PairedMoves()...)
}()

// nextScrambleMove issues one scramble move. Consecutive rotations never
// share an axis; a gyro clears the previous axis.
func (c *Controller) nextScrambleMove() {
	c.remaining--

	dir := 1
	if c.rng.Intn(2) == 0 {
		dir = -1
	}

	if c.rng.Float64() < c.anim.GyroChance {
		c.prevAxis = vecmath.Zero
		c.StartTurn(turn.Gyro, dir)
		return
	}

	m := scramblePool[c.rng.Intn(len(scramblePool))]
	for vecmath.Parallel(m.Axis, c.prevAxis) {
		m = scramblePool[c.rng.Intn(len(scramblePool))]
	}
	c.prevAxis = m.Axis
	c.StartTurn(m, dir)
}
