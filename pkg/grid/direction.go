// Package grid holds the small value types shared by the navigation kernel:
// compass directions, 4-bit direction masks, cell coordinates and the packed
// nibble tables used for walls and shortest-path directions.
package grid

// Direction is a cardinal movement direction. The numeric values double as
// bit positions in a Mask and as indices into the steering tables, so they
// must not be reordered.
type Direction uint8

const (
	North Direction = 0
	South Direction = 1
	West  Direction = 2
	East  Direction = 3

	// None marks a stationary agent.
	None Direction = 0xFF
)

// Directions lists the four cardinal directions in encoding order.
var Directions = [4]Direction{North, South, West, East}

var reverse = [4]Direction{South, North, East, West}

// Unit offsets per direction. North is +y.
var (
	stepX = [4]int{0, 0, -1, 1}
	stepY = [4]int{1, -1, 0, 0}
)

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool { return d <= East }

// Reverse returns the opposite direction. None reverses to None.
func (d Direction) Reverse() Direction {
	if !d.Valid() {
		return None
	}
	return reverse[d]
}

// Step returns the integer cell offset for one move in direction d.
func (d Direction) Step() (dx, dy int) {
	if !d.Valid() {
		return 0, 0
	}
	return stepX[d], stepY[d]
}

// Vector returns the unit movement vector for d as float32 components.
func (d Direction) Vector() (float32, float32) {
	dx, dy := d.Step()
	return float32(dx), float32(dy)
}

// Mask returns the single-bit mask for d.
func (d Direction) Mask() Mask {
	if !d.Valid() {
		return 0
	}
	return Mask(1) << d
}

// Vertical reports whether d moves along the y axis.
func (d Direction) Vertical() bool { return d == North || d == South }

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	case None:
		return "none"
	}
	return "invalid"
}
