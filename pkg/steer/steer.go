// Package steer picks an agent's next heading when it enters a new cell.
//
// Answers come from six precomputed tables indexed by the cell's wall
// nibble. Each table byte packs the answer for all four current headings,
// two bits per heading. Variants 0 and 1 are the common right- and
// left-handed biases. Variants 2..5 pretend one extra wall is present and
// exist to kick agents out of loops they would otherwise repeat forever.
package steer

import "gridwalk/pkg/grid"

const (
	// Variants is the number of resolver tables.
	Variants = 6
	// CommonVariants is the number of bias variants selected on ordinary
	// ticks.
	CommonVariants = 2
)

var tables [Variants][16]uint8

var (
	rightOf = [4]grid.Direction{grid.East, grid.West, grid.North, grid.South}
	leftOf  = [4]grid.Direction{grid.West, grid.East, grid.South, grid.North}
)

func init() {
	for v := 0; v < Variants; v++ {
		for w := 0; w < 16; w++ {
			var packed uint8
			for _, d := range grid.Directions {
				packed |= uint8(resolve(grid.Mask(w), d, v)) << (2 * d)
			}
			tables[v][w] = packed
		}
	}
}

// resolve is the slow reference the tables are built from.
func resolve(walls grid.Mask, d grid.Direction, variant int) grid.Direction {
	leftFirst := variant == 1
	if variant >= CommonVariants {
		k := grid.Direction(variant - CommonVariants)
		if extra := walls.With(k); extra != grid.MaskAll {
			walls = extra
		}
		leftFirst = k&1 != 0
	}
	if walls == grid.MaskAll {
		return d
	}

	first, second := rightOf[d], leftOf[d]
	if leftFirst {
		first, second = second, first
	}
	for _, c := range [...]grid.Direction{d, first, second, d.Reverse()} {
		if !walls.Has(c) {
			return c
		}
	}
	return d
}

// Next returns the heading for an agent arriving with heading current in a
// cell whose walls are given. A fully walled cell keeps current, which the
// caller then sees as blocked. A stationary agent is treated as heading
// North.
func Next(walls grid.Mask, current grid.Direction, variant uint8) grid.Direction {
	if !current.Valid() {
		current = grid.North
	}
	packed := tables[variant%Variants][walls&grid.MaskAll]
	return grid.Direction(packed>>(2*current)) & 3
}

