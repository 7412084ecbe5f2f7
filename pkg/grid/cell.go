package grid

// Cell is a quantized grid coordinate. Values of -1 or >= the bound are
// transient "just off the grid" states that appear before a face transition
// is resolved.
type Cell struct {
	X, Y int16
}

// Sentinel is the cell assigned to freshly spawned agents. It never equals a
// real cell, which forces cell resolution on the first tick.
var Sentinel = Cell{X: -1, Y: -1}

// C builds a Cell from ints.
func C(x, y int) Cell { return Cell{X: int16(x), Y: int16(y)} }

// InBounds reports whether c lies inside [0,cols)×[0,rows).
func (c Cell) InBounds(cols, rows int) bool {
	return c.X >= 0 && c.Y >= 0 && int(c.X) < cols && int(c.Y) < rows
}

// Add returns c moved one step in direction d.
func (c Cell) Add(d Direction) Cell {
	dx, dy := d.Step()
	return Cell{X: c.X + int16(dx), Y: c.Y + int16(dy)}
}
