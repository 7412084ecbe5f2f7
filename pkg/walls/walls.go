// Package walls generates per-cell wall masks from seeded coherent noise.
//
// Walls are sampled once per shared edge on a scratch lattice and then
// unpacked into both neighbouring cells, so a North wall on one side is
// always a South wall on the other.
package walls

import (
	"errors"
	"fmt"

	"github.com/ojrac/opensimplex-go"

	"gridwalk/pkg/grid"
	"gridwalk/pkg/topology"
)

// ErrNonSquareFace reports cube parameters whose faces are not square.
var ErrNonSquareFace = errors.New("cube faces must be square")

// Noise channel offsets. The two channels sample the same field at shifted
// coordinates so South and West walls are uncorrelated.
const (
	southOffset = 1.2345
	westOffset  = 1.6789

	// faceOffset separates the noise domains of cube faces.
	faceOffset = 101.0

	DefaultScale = 0.37
)

// Params describes one wall layout. Generation is a pure function of Params.
type Params struct {
	Rows, Cols        int
	SouthProbability  float64
	WestProbability   float64
	IncludeOuterWalls bool
	Seed              int64
	// Scale multiplies cell coordinates before sampling. Zero means
	// DefaultScale.
	Scale float64
}

// DefaultParams returns a 32×32 half-open maze with a closed perimeter.
func DefaultParams() Params {
	return Params{
		Rows:              32,
		Cols:              32,
		SouthProbability:  0.35,
		WestProbability:   0.35,
		IncludeOuterWalls: true,
		Seed:              1,
		Scale:             DefaultScale,
	}
}

func (p Params) scale() float64 {
	if p.Scale == 0 {
		return DefaultScale
	}
	return p.Scale
}

// scratch flags. The lattice is (cols+1)×(rows+1) so the far perimeter has
// somewhere to live.
const (
	scratchSouth uint8 = 1 << iota
	scratchWest
)

type lattice struct {
	cols, rows int
	flags      []uint8
}

func newLattice(cols, rows int) *lattice {
	return &lattice{cols: cols, rows: rows, flags: make([]uint8, (cols+1)*(rows+1))}
}

func (l *lattice) at(x, y int) uint8 { return l.flags[y*(l.cols+1)+x] }

func (l *lattice) set(x, y int, f uint8) { l.flags[y*(l.cols+1)+x] |= f }

func (l *lattice) clear(x, y int, f uint8) { l.flags[y*(l.cols+1)+x] &^= f }

// sample fills every edge of the lattice from noise, including the edges on
// the perimeter.
func (l *lattice) sample(eval func(x, y float64) float64, p Params, ox, oy float64) {
	s := p.scale()
	for y := 0; y <= l.rows; y++ {
		for x := 0; x <= l.cols; x++ {
			fx := float64(x)*s + ox
			fy := float64(y)*s + oy
			if x < l.cols && eval(fx+southOffset, fy+southOffset)*0.5+0.5 < p.SouthProbability {
				l.set(x, y, scratchSouth)
			}
			if y < l.rows && eval(fx+westOffset, fy+westOffset)*0.5+0.5 < p.WestProbability {
				l.set(x, y, scratchWest)
			}
		}
	}
}

// perimeter forces (closed) or clears (!closed) the four outer edges.
func (l *lattice) perimeter(closed bool) {
	apply := l.set
	if !closed {
		apply = l.clear
	}
	for x := 0; x < l.cols; x++ {
		apply(x, 0, scratchSouth)
		apply(x, l.rows, scratchSouth)
	}
	for y := 0; y < l.rows; y++ {
		apply(0, y, scratchWest)
		apply(l.cols, y, scratchWest)
	}
}

// mask derives the wall nibble of real cell (x, y).
func (l *lattice) mask(x, y int) grid.Mask {
	var m grid.Mask
	if l.at(x, y+1)&scratchSouth != 0 {
		m |= grid.MaskNorth
	}
	if l.at(x, y)&scratchSouth != 0 {
		m |= grid.MaskSouth
	}
	if l.at(x, y)&scratchWest != 0 {
		m |= grid.MaskWest
	}
	if l.at(x+1, y)&scratchWest != 0 {
		m |= grid.MaskEast
	}
	return m
}

// unpack writes the lattice into rows [row0, row0+rows) of dst.
func (l *lattice) unpack(dst *grid.Nibbles, row0 int) {
	for y := 0; y < l.rows; y++ {
		for x := 0; x < l.cols; x++ {
			dst.Set(x, row0+y, l.mask(x, y))
		}
	}
}

// Generate builds the wall table for a flat Rows×Cols grid.
func Generate(p Params) (*grid.Nibbles, error) {
	if _, err := topology.NewFlat(p.Cols, p.Rows); err != nil {
		return nil, fmt.Errorf("generate walls: %w", err)
	}
	noise := opensimplex.New(p.Seed)

	l := newLattice(p.Cols, p.Rows)
	l.sample(noise.Eval2, p, 0, 0)
	l.perimeter(p.IncludeOuterWalls)

	out := grid.NewNibbles(p.Cols, p.Rows)
	l.unpack(out, 0)
	return out, nil
}

// MustGenerate is Generate that panics on invalid parameters.
func MustGenerate(p Params) *grid.Nibbles {
	w, err := Generate(p)
	if err != nil {
		panic(err)
	}
	return w
}

// GenerateCube builds the wall table for a cube with Rows×Cols faces. The
// result has Cols columns and 6*Rows rows, one face after another.
//
// Each face samples its own noise domain. A seam between two faces is owned
// by the face with the lower index: its lattice decides the wall, and the
// wall is written into both cells. IncludeOuterWalls seals every seam, which
// leaves six isolated faces.
func GenerateCube(p Params) (*grid.Nibbles, error) {
	if p.Rows != p.Cols {
		return nil, fmt.Errorf("generate cube walls %dx%d: %w", p.Cols, p.Rows, ErrNonSquareFace)
	}
	cube, err := topology.NewCube(p.Cols)
	if err != nil {
		return nil, fmt.Errorf("generate cube walls: %w", err)
	}
	n := p.Cols
	noise := opensimplex.New(p.Seed)

	var faces [topology.FaceCount]*lattice
	out := grid.NewNibbles(n, topology.FaceCount*n)
	for f := range faces {
		l := newLattice(n, n)
		l.sample(noise.Eval2, p, float64(f)*faceOffset, float64(f)*faceOffset)
		faces[f] = l
		l.unpack(out, f*n)
	}

	// Interior edges are final. Rewrite the border bits from the seam owner.
	for f := 0; f < topology.FaceCount; f++ {
		for _, d := range grid.Directions {
			to := topology.NextFace(d, topology.Face(f))
			if int(to) < f {
				continue
			}
			for k := 0; k < n; k++ {
				x, y := borderCell(d, n, k)
				closed := p.IncludeOuterWalls || faces[f].edge(d, x, y)
				i := cube.Index(f, x, y)
				j, heading := cube.Step(i, d)
				setWall(out, i, d, closed)
				setWall(out, j, heading.Reverse(), closed)
			}
		}
	}
	return out, nil
}

// MustGenerateCube is GenerateCube that panics on invalid parameters.
func MustGenerateCube(p Params) *grid.Nibbles {
	w, err := GenerateCube(p)
	if err != nil {
		panic(err)
	}
	return w
}

// edge reports whether the lattice holds a wall on side d of cell (x, y).
func (l *lattice) edge(d grid.Direction, x, y int) bool {
	return l.mask(x, y).Has(d)
}

func setWall(w *grid.Nibbles, i int, d grid.Direction, closed bool) {
	m := w.AtIndex(i)
	if closed {
		m = m.With(d)
	} else {
		m = m.Without(d)
	}
	w.SetIndex(i, m)
}

func borderCell(d grid.Direction, n, k int) (int, int) {
	switch d {
	case grid.North:
		return k, n - 1
	case grid.South:
		return k, 0
	case grid.West:
		return 0, k
	}
	return n - 1, k
}

// Validate checks that every shared edge of walls is blocked from both sides
// or from neither. Edges leaving a flat grid are not checked.
func Validate(walls *grid.Nibbles, topo topology.Topology) error {
	if walls.Len() != topo.CellCount() {
		return fmt.Errorf("wall table has %d cells, topology %d", walls.Len(), topo.CellCount())
	}
	for i := 0; i < topo.CellCount(); i++ {
		m := walls.AtIndex(i)
		for _, d := range grid.Directions {
			j, heading := topo.Step(i, d)
			if j < 0 {
				continue
			}
			if m.Has(d) != walls.AtIndex(j).Has(heading.Reverse()) {
				f, x, y := topo.Coords(i)
				return fmt.Errorf("asymmetric %v wall at face %d cell (%d,%d)", d, f, x, y)
			}
		}
	}
	return nil
}
