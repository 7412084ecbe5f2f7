// Package topology describes how grid cells connect: a plain rectangle or six
// square faces folded into a cube. Both implementations share one neighbour
// contract so path search and movement are written once.
package topology

import (
	"errors"
	"fmt"

	"gridwalk/pkg/grid"
)

// ErrInvalidDimension reports a grid with fewer than two rows or columns.
var ErrInvalidDimension = errors.New("grid dimensions must be greater than 1")

// Topology maps linear cell indices to coordinates and neighbours.
type Topology interface {
	// Faces is 1 for a flat grid and 6 for a cube.
	Faces() int
	Cols() int
	Rows() int
	// CellCount is Faces*Cols*Rows.
	CellCount() int
	Index(face, x, y int) int
	Coords(i int) (face, x, y int)
	// Neighbor returns the index one step from i in direction d, or -1 when
	// the step leaves a flat grid. Cube neighbours are always valid.
	Neighbor(i int, d grid.Direction) int
	// Step is Neighbor plus the heading an agent has after the move. It only
	// differs from d when the move crosses onto another cube face.
	Step(i int, d grid.Direction) (int, grid.Direction)
}

// Flat is a single rectangular grid.
type Flat struct {
	cols, rows int
}

// NewFlat returns a flat topology for a cols×rows grid.
func NewFlat(cols, rows int) (*Flat, error) {
	if cols <= 1 || rows <= 1 {
		return nil, fmt.Errorf("flat %dx%d: %w", cols, rows, ErrInvalidDimension)
	}
	return &Flat{cols: cols, rows: rows}, nil
}

// MustFlat is NewFlat that panics on malformed dimensions.
func MustFlat(cols, rows int) *Flat {
	f, err := NewFlat(cols, rows)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Flat) Faces() int     { return 1 }
func (f *Flat) Cols() int      { return f.cols }
func (f *Flat) Rows() int      { return f.rows }
func (f *Flat) CellCount() int { return f.cols * f.rows }

func (f *Flat) Index(_, x, y int) int { return y*f.cols + x }

func (f *Flat) Coords(i int) (face, x, y int) { return 0, i % f.cols, i / f.cols }

func (f *Flat) Neighbor(i int, d grid.Direction) int {
	x, y := i%f.cols, i/f.cols
	dx, dy := d.Step()
	x += dx
	y += dy
	if x < 0 || y < 0 || x >= f.cols || y >= f.rows {
		return -1
	}
	return y*f.cols + x
}

func (f *Flat) Step(i int, d grid.Direction) (int, grid.Direction) { return f.Neighbor(i, d), d }
