package swarm

import (
	"image/color"

	"gridwalk/pkg/grid"
	"gridwalk/pkg/motion"
	"gridwalk/pkg/topology"
)

// Each cell is drawn as a 3×3 block: corner posts, a centre that shows the
// floor or an agent, and four edge pixels that show the walls.
const cellPx = 3

const (
	displayVoid uint8 = iota
	displayFloor
	displayWall
	displayPost
	displayBouncer
	displaySeeker
	displayStopped
	displayTarget
)

var swarmPalette = []color.RGBA{
	displayVoid:    {R: 0, G: 0, B: 0, A: 255},
	displayFloor:   {R: 28, G: 30, B: 38, A: 255},
	displayWall:    {R: 150, G: 150, B: 170, A: 255},
	displayPost:    {R: 90, G: 90, B: 104, A: 255},
	displayBouncer: {R: 80, G: 170, B: 230, A: 255},
	displaySeeker:  {R: 120, G: 220, B: 110, A: 255},
	displayStopped: {R: 230, G: 180, B: 60, A: 255},
	displayTarget:  {R: 250, G: 70, B: 80, A: 255},
}

// Palette exposes the color palette used for rendering the swarm.
func (w *World) Palette() []color.RGBA { return swarmPalette }

// layout places faces on the raster. Flat grids use one face at the origin;
// cubes are unfolded into a cross with Z+ in the middle:
//
//	   Y+
//	X- Z+ X+ Z-
//	   Y-
//
// Every face keeps its own right/up axes aligned with the screen, so
// neighbouring faces in the cross share an edge on the cube.
type layout struct {
	cols, rows int
	faces      int
	// origins are face offsets in cells, y up.
	origins        [topology.FaceCount][2]int
	cellsW, cellsH int
	w, h           int
}

func newLayout(topo topology.Topology) layout {
	l := layout{cols: topo.Cols(), rows: topo.Rows(), faces: topo.Faces()}
	if topo.Faces() == 1 {
		l.cellsW, l.cellsH = l.cols, l.rows
	} else {
		n := l.cols
		l.origins[topology.YNeg] = [2]int{n, 0}
		l.origins[topology.XNeg] = [2]int{0, n}
		l.origins[topology.ZPos] = [2]int{n, n}
		l.origins[topology.XPos] = [2]int{2 * n, n}
		l.origins[topology.ZNeg] = [2]int{3 * n, n}
		l.origins[topology.YPos] = [2]int{n, 2 * n}
		l.cellsW, l.cellsH = 4*n, 3*n
	}
	l.w, l.h = l.cellsW*cellPx, l.cellsH*cellPx
	return l
}

// blockOrigin returns the top-left raster pixel of a cell.
func (l layout) blockOrigin(face, x, y int) (int, int) {
	o := l.origins[face]
	gx := o[0] + x
	gy := o[1] + y
	return gx * cellPx, (l.cellsH - 1 - gy) * cellPx
}

// cellAt maps a raster pixel back to a cell. ok is false on void pixels.
func (l layout) cellAt(px, py int) (face, x, y int, ok bool) {
	if px < 0 || py < 0 || px >= l.w || py >= l.h {
		return 0, 0, 0, false
	}
	gx := px / cellPx
	gy := l.cellsH - 1 - py/cellPx
	for f := 0; f < l.faces; f++ {
		o := l.origins[f]
		x, y = gx-o[0], gy-o[1]
		if x >= 0 && y >= 0 && x < l.cols && y < l.rows {
			return f, x, y, true
		}
	}
	return 0, 0, 0, false
}

func (w *World) rebuildDisplay() {
	r := w.raster
	r.Fill(displayVoid)
	for i := 0; i < w.topo.CellCount(); i++ {
		face, x, y := w.topo.Coords(i)
		bx, by := w.layout.blockOrigin(face, x, y)
		m := w.walls.AtIndex(i)

		for _, c := range [4][2]int{{0, 0}, {2, 0}, {0, 2}, {2, 2}} {
			r.Set(bx+c[0], by+c[1], displayPost)
		}
		r.Set(bx+1, by+1, displayFloor)
		r.Set(bx+1, by, wallPixel(m, grid.North))
		r.Set(bx+1, by+2, wallPixel(m, grid.South))
		r.Set(bx, by+1, wallPixel(m, grid.West))
		r.Set(bx+2, by+1, wallPixel(m, grid.East))
	}

	w.EachAgent(func(a *motion.Agent, kind Role) {
		if !a.Cell.InBounds(w.topo.Cols(), w.topo.Rows()) {
			return
		}
		bx, by := w.layout.blockOrigin(a.Face, int(a.Cell.X), int(a.Cell.Y))
		r.Raise(bx+1, by+1, agentPixel(a, kind))
	})
}

func wallPixel(m grid.Mask, d grid.Direction) uint8 {
	if m.Has(d) {
		return displayWall
	}
	return displayFloor
}

func agentPixel(a *motion.Agent, kind Role) uint8 {
	switch {
	case kind == RoleTarget:
		return displayTarget
	case a.Stationary():
		return displayStopped
	case kind == RoleSeeker:
		return displaySeeker
	}
	return displayBouncer
}
