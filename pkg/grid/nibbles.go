package grid

// Nibbles stores one Mask per cell, two cells per byte: the even column in
// the low nibble, the odd column in the high nibble. Rows are Stride bytes
// apart. A linear cell index i maps to row i/Cols and column i%Cols, which
// lets cube tables stack their six faces as consecutive rows.
type Nibbles struct {
	cols, rows int
	stride     int
	data       []byte
}

// NewNibbles allocates a zeroed table for a cols×rows grid.
func NewNibbles(cols, rows int) *Nibbles {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	stride := (cols + 1) / 2
	return &Nibbles{cols: cols, rows: rows, stride: stride, data: make([]byte, stride*rows)}
}

// Cols returns the number of columns.
func (n *Nibbles) Cols() int { return n.cols }

// Rows returns the number of rows.
func (n *Nibbles) Rows() int { return n.rows }

// Len returns the number of cells.
func (n *Nibbles) Len() int { return n.cols * n.rows }

// Stride returns the number of bytes per row.
func (n *Nibbles) Stride() int { return n.stride }

// Bytes exposes the packed backing buffer.
func (n *Nibbles) Bytes() []byte { return n.data }

// At returns the mask stored for cell (x, y). Coordinates must be in range.
func (n *Nibbles) At(x, y int) Mask {
	b := n.data[y*n.stride+x>>1]
	if x&1 != 0 {
		b >>= 4
	}
	return Mask(b & 0x0F)
}

// Set stores m for cell (x, y).
func (n *Nibbles) Set(x, y int, m Mask) {
	i := y*n.stride + x>>1
	m &= MaskAll
	if x&1 != 0 {
		n.data[i] = n.data[i]&0x0F | byte(m)<<4
		return
	}
	n.data[i] = n.data[i]&0xF0 | byte(m)
}

// AtIndex returns the mask for linear cell index i.
func (n *Nibbles) AtIndex(i int) Mask { return n.At(i%n.cols, i/n.cols) }

// SetIndex stores m for linear cell index i.
func (n *Nibbles) SetIndex(i int, m Mask) { n.Set(i%n.cols, i/n.cols, m) }

// Clear zeroes every cell.
func (n *Nibbles) Clear() {
	for i := range n.data {
		n.data[i] = 0
	}
}

// CopyFrom overwrites n with src. Both tables must have the same shape.
func (n *Nibbles) CopyFrom(src *Nibbles) {
	copy(n.data, src.data)
}
