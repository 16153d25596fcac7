// Package puzzle models the 2x2x2x2 hypercube: sixteen pieces split across
// two hyper-layers (anna and kata), each piece carrying four facelets.
//
// The discrete state lives in each facelet's (Direction, Offset) pair.
// Piece poses are continuous and only meaningful while a move animates;
// Unify snaps them back after every move.
package puzzle

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/hypercube/internal/config"
	"github.com/SeamusWaldron/hypercube/internal/vecmath"
)

const (
	NumPieces        = 16
	FaceletsPerPiece = 4
)

// ErrUnclassifiable is carried by the panic raised when a facelet's pose
// matches no face. It means the continuous poses have drifted away from the
// discrete model, and guessing would corrupt the puzzle.
var ErrUnclassifiable = errors.New("puzzle: facelet matches no face")

// Painter receives facelet colors for display.
type Painter interface {
	Paint(ref FaceletRef, color Color)
}

// Cube owns the sixteen pieces. Geometry is read through a pointer so a
// settings change is seen by the next Unify.
type Cube struct {
	pieces  [NumPieces]Piece
	geom    *config.Geometry
	painter Painter
}

// New builds a solved cube. Pieces with w=-1 go to the anna layer
// (negative X), w=+1 to kata.
func New(geom *config.Geometry) *Cube {
	c := &Cube{geom: geom}

	i := 0
	for _, x := range [2]int{1, -1} {
		for _, y := range [2]int{1, -1} {
			for _, z := range [2]int{1, -1} {
				for _, w := range [2]int{1, -1} {
					c.initPiece(i, Coord{x, y, z, w})
					i++
				}
			}
		}
	}
	return c
}

func (c *Cube) initPiece(i int, coord Coord) {
	p := &c.pieces[i]
	p.Coord = coord
	p.geom = c.geom
	p.Orientation = mgl64.QuatIdent()

	d := coord.Vec3()
	p.Position = layerCenter(c.geom, coord.W() < 0).Add(d.Mul(c.geom.PivotOffset()))

	// Index 0 is the hyper facelet. The X color follows w*x so that both
	// outer X faces belong to one 4D cell and both inner faces to the other.
	colors := [FaceletsPerPiece]Color{
		colorFor(3, coord.W()),
		colorFor(0, coord.W()*coord.X()),
		colorFor(1, coord.Y()),
		colorFor(2, coord.Z()),
	}
	offsets := [FaceletsPerPiece]mgl64.Vec3{
		vecmath.Zero,
		vecmath.ProjX(d),
		vecmath.ProjY(d),
		vecmath.ProjZ(d),
	}
	for j := range p.Facelets {
		f := &p.Facelets[j]
		f.piece = i
		f.ColorID = colors[j]
		f.update(c.geom, d, offsets[j])
	}
}

// Geometry returns the geometry the cube reads.
func (c *Cube) Geometry() *config.Geometry {
	return c.geom
}

// Piece returns the piece at index i.
func (c *Cube) Piece(i int) *Piece {
	return &c.pieces[i]
}

// Facelet returns the facelet addressed by ref.
func (c *Cube) Facelet(ref FaceletRef) *Facelet {
	return &c.pieces[ref.Piece].Facelets[ref.Index]
}

// InLayer reports whether piece i is in the given layer.
func (c *Cube) InLayer(i int, layer Face) bool {
	return c.pieces[i].InLayer(layer)
}

// Attach reparents piece i under f, keeping its world transform.
func (c *Cube) Attach(i int, f *Frame) {
	c.pieces[i].attach(f)
}

// Detach moves piece i back to the root, keeping its world transform.
func (c *Cube) Detach(i int) {
	c.pieces[i].detach()
}

// SetFacelet commits a facelet's discrete state directly, bypassing
// classification. Used when a move knows the outcome analytically.
func (c *Cube) SetFacelet(ref FaceletRef, direction, offset mgl64.Vec3) {
	c.Facelet(ref).update(c.geom, direction, offset)
}

// SetPainter attaches the color sink used by Reset and UpdateColors.
func (c *Cube) SetPainter(p Painter) {
	c.painter = p
}

// SetGeometry replaces the geometry and moves every piece onto the same
// anchor under the new layout. Unify alone only follows small changes; a
// large one can carry a pivot across the slot boundary.
func (c *Cube) SetGeometry(g config.Geometry) {
	var slots [NumPieces]Slot
	for i := range c.pieces {
		c.pieces[i].detach()
		slots[i] = c.pieces[i].Slot()
	}

	*c.geom = g
	off := c.geom.PivotOffset()
	for i := range c.pieces {
		s := slots[i]
		d := mgl64.Vec3{float64(s.X), float64(s.Y), float64(s.Z)}
		c.pieces[i].Position = layerCenter(c.geom, s.Anna).Add(d.Mul(off))
	}
	c.Unify()
}

// Reset recolors every facelet from the face it currently shows, making
// the current arrangement the solved one.
func (c *Cube) Reset() {
	for i := range c.pieces {
		p := &c.pieces[i]
		for j := range p.Facelets {
			f := &p.Facelets[j]
			f.ColorID = resetColor(classify(c.geom, p, f))
		}
	}
	c.UpdateColors()
}

// UpdateColors pushes every facelet color to the painter. It does not
// change any state.
func (c *Cube) UpdateColors() {
	if c.painter == nil {
		return
	}
	for i := range c.pieces {
		for j := range c.pieces[i].Facelets {
			c.painter.Paint(FaceletRef{Piece: i, Index: j}, c.pieces[i].Facelets[j].ColorID)
		}
	}
}

// Unify snaps every piece back onto the discrete model: pivots go to their
// nearest anchor, each facelet's direction and offset are re-derived from
// its pose, and piece orientations are reset to identity. It must run after
// every move and whenever the geometry settings change.
func (c *Cube) Unify() {
	for i := range c.pieces {
		c.pieces[i].detach()
		c.pieces[i].snap()
	}

	// Classification reads the piece orientation, so it has to finish for
	// every facelet before any orientation is cleared.
	for i := range c.pieces {
		p := &c.pieces[i]
		anna := p.InLayer(FaceA)
		dir := vecmath.SignUnify(p.WorldPosition().Sub(layerCenter(c.geom, anna)))
		for j := range p.Facelets {
			f := &p.Facelets[j]
			face := classify(c.geom, p, f)
			f.update(c.geom, dir, canonicalOffset(face, anna))
		}
	}

	for i := range c.pieces {
		c.pieces[i].Orientation = mgl64.QuatIdent()
	}
}

// FaceletState is the discrete state of one facelet.
type FaceletState struct {
	Coord     Coord
	Index     int
	Color     Color
	Slot      Slot
	Face      Face
	Direction mgl64.Vec3
	Offset    mgl64.Vec3
}

// Snapshot returns the discrete state of every facelet, ordered by piece
// and facelet index. It classifies faces, so call it between moves.
func (c *Cube) Snapshot() []FaceletState {
	out := make([]FaceletState, 0, NumPieces*FaceletsPerPiece)
	for i := range c.pieces {
		p := &c.pieces[i]
		slot := p.Slot()
		for j := range p.Facelets {
			f := &p.Facelets[j]
			out = append(out, FaceletState{
				Coord:     p.Coord,
				Index:     j,
				Color:     f.ColorID,
				Slot:      slot,
				Face:      classify(c.geom, p, f),
				Direction: f.Direction,
				Offset:    f.Offset,
			})
		}
	}
	return out
}

// FindFacelet returns the first facelet in the given hyper-layer (FaceA or
// FaceK) currently showing face.
func (c *Cube) FindFacelet(layer, face Face) (FaceletRef, bool) {
	for i := range c.pieces {
		p := &c.pieces[i]
		if !p.InLayer(layer) {
			continue
		}
		for j := range p.Facelets {
			if classify(c.geom, p, &p.Facelets[j]) == face {
				return FaceletRef{Piece: i, Index: j}, true
			}
		}
	}
	return FaceletRef{}, false
}
