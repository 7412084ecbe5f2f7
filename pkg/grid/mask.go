package grid

import (
	"math/bits"
	"strings"
)

// Mask is a 4-bit set of directions. For walls a set bit means the side is
// blocked; for shortest-path tables a set bit means moving that way gets
// strictly closer to the target.
type Mask uint8

const (
	MaskNorth Mask = 1 << North
	MaskSouth Mask = 1 << South
	MaskWest  Mask = 1 << West
	MaskEast  Mask = 1 << East

	MaskAll Mask = MaskNorth | MaskSouth | MaskWest | MaskEast
)

// Has reports whether direction d is set.
func (m Mask) Has(d Direction) bool { return d.Valid() && m&d.Mask() != 0 }

// With returns m with direction d set.
func (m Mask) With(d Direction) Mask { return m | d.Mask() }

// Without returns m with direction d cleared.
func (m Mask) Without(d Direction) Mask { return m &^ d.Mask() }

// Open returns the complement of a wall mask: the directions that can be walked.
func (m Mask) Open() Mask { return ^m & MaskAll }

// Count returns the number of set directions.
func (m Mask) Count() int { return bits.OnesCount8(uint8(m & MaskAll)) }

// Nth returns the n-th set direction in encoding order, wrapping n modulo
// Count. An empty mask yields None.
func (m Mask) Nth(n int) Direction {
	m &= MaskAll
	count := m.Count()
	if count == 0 {
		return None
	}
	n %= count
	if n < 0 {
		n += count
	}
	for _, d := range Directions {
		if !m.Has(d) {
			continue
		}
		if n == 0 {
			return d
		}
		n--
	}
	return None
}

func (m Mask) String() string {
	if m&MaskAll == 0 {
		return "-"
	}
	var b strings.Builder
	for _, d := range Directions {
		if m.Has(d) {
			b.WriteByte("NSWE"[d])
		}
	}
	return b.String()
}
