package hypercube

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/hypercube/internal/config"
	"github.com/SeamusWaldron/hypercube/internal/controller"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
	"github.com/SeamusWaldron/hypercube/internal/turn"
)

// FrameStep is the tick, in seconds, used when moves are played to
// completion without a display.
const FrameStep = 1.0 / 60

// Puzzle is a hypercube with its move controller. Apply and Scramble run
// moves to completion before they return. For animated play, drive
// Controller().Tick from a frame clock instead.
//
// A Puzzle is not safe for concurrent use.
type Puzzle struct {
	cfg  *config.Config
	cube *puzzle.Cube
	ctrl *controller.Controller
	log  *zap.Logger

	onMove  func(turn.Record)
	collect *[]turn.Record
}

// NewPuzzle creates a solved puzzle.
func NewPuzzle(opts ...Option) (*Puzzle, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}

	if err := s.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	p := &Puzzle{
		cfg: s.cfg,
		log: s.logger,
	}
	p.cube = puzzle.New(&s.cfg.Geometry)
	p.ctrl = controller.New(p.cube, s.cfg.Animation,
		controller.WithLogger(s.logger),
		controller.WithRand(s.rng),
	)
	p.ctrl.OnMove(p.handleMove)
	return p, nil
}

func (p *Puzzle) handleMove(r turn.Record) {
	if p.collect != nil && p.ctrl.Scrambling() {
		*p.collect = append(*p.collect, r)
	}
	if p.onMove != nil {
		p.onMove(r)
	}
}

// OnMove sets a callback fired after every completed move, scramble moves
// included.
func (p *Puzzle) OnMove(cb func(turn.Record)) {
	p.onMove = cb
}

// OnIdle sets a callback fired when a move completes and no scramble is
// pending.
func (p *Puzzle) OnIdle(cb func()) {
	p.ctrl.OnIdle(cb)
}

// Config returns a copy of the current settings.
func (p *Puzzle) Config() config.Config {
	return *p.cfg
}

// Cube returns the underlying piece model.
func (p *Puzzle) Cube() *puzzle.Cube {
	return p.cube
}

// Controller returns the move controller.
func (p *Puzzle) Controller() *controller.Controller {
	return p.ctrl
}

// SetPainter attaches a colour sink and paints every facelet once.
func (p *Puzzle) SetPainter(painter puzzle.Painter) {
	p.cube.SetPainter(painter)
	p.cube.UpdateColors()
}

// Apply plays records in order, each to completion.
func (p *Puzzle) Apply(records ...turn.Record) error {
	for _, r := range records {
		if !p.ctrl.StartTurn(r.Move, r.Direction) {
			return ErrBusy
		}
		p.settle()
	}
	return nil
}

// ApplyNotation parses and plays a space-separated move sequence. Nothing
// is played if any token is invalid.
func (p *Puzzle) ApplyNotation(s string) error {
	records, err := turn.ParseSequence(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNotation, err)
	}
	return p.Apply(records...)
}

// Scramble plays a full random scramble and returns the moves it made.
func (p *Puzzle) Scramble() ([]turn.Record, error) {
	if p.ctrl.Busy() || p.ctrl.Scrambling() {
		return nil, ErrBusy
	}

	records := make([]turn.Record, 0, p.cfg.Animation.ScrambleMoves)
	p.collect = &records
	defer func() { p.collect = nil }()

	p.ctrl.Scramble()
	p.settle()
	return records, nil
}

// settle ticks until nothing is animating or queued. Every move advances
// by a positive amount per tick, so this always ends.
func (p *Puzzle) settle() {
	for p.ctrl.Busy() || p.ctrl.Scrambling() {
		p.ctrl.Tick(FrameStep)
	}
}

// SetGeometry changes the physical layout. The discrete state is
// unchanged.
func (p *Puzzle) SetGeometry(g config.Geometry) error {
	if p.ctrl.Busy() || p.ctrl.Scrambling() {
		return ErrBusy
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	p.cube.SetGeometry(g)
	p.log.Debug("geometry changed",
		zap.Float64("cube_size", g.CubeSize),
		zap.Float64("cubie_gap", g.CubieGap),
		zap.Float64("hedgehog_angle", g.HedgehogAngle),
	)
	return nil
}

// Reset makes the current arrangement the solved one by recolouring every
// facelet from the face it shows.
func (p *Puzzle) Reset() {
	p.cube.Reset()
}

// Snapshot returns the discrete state of every facelet.
func (p *Puzzle) Snapshot() []puzzle.FaceletState {
	return p.cube.Snapshot()
}
