// Package termview draws a sim raster in a terminal. Each terminal cell
// shows two raster rows with an upper half block: the foreground paints the
// top pixel and the background the bottom one.
package termview

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"gridwalk/internal/core"
)

const upperHalf = '▀'

// Glyph is one terminal cell.
type Glyph struct {
	Top, Bottom color.RGBA
}

// Compose packs cells into glyphs, W wide and ceil(H/2) tall. dst is reused
// when large enough. An odd last row has a black bottom half.
func Compose(dst []Glyph, cells []uint8, size core.Size, palette []color.RGBA) []Glyph {
	if len(cells) != size.W*size.H || len(palette) == 0 {
		return dst[:0]
	}
	rows := (size.H + 1) / 2
	n := size.W * rows
	if cap(dst) < n {
		dst = make([]Glyph, n)
	}
	dst = dst[:n]
	last := len(palette) - 1
	at := func(x, y int) color.RGBA {
		if y >= size.H {
			return color.RGBA{A: 255}
		}
		return palette[min(int(cells[y*size.W+x]), last)]
	}
	for r := 0; r < rows; r++ {
		for x := 0; x < size.W; x++ {
			dst[r*size.W+x] = Glyph{Top: at(x, 2*r), Bottom: at(x, 2*r+1)}
		}
	}
	return dst
}

// View renders one sim onto a tcell screen with a status line underneath.
type View struct {
	sim     core.Sim
	palette []color.RGBA
	glyphs  []Glyph
}

// New returns a view of sim using its palette.
func New(sim core.Sim) *View {
	return &View{sim: sim, palette: core.PaletteOf(sim)}
}

// Draw paints the raster clipped to the screen and writes status on the
// last screen row.
func (v *View) Draw(s tcell.Screen, status string) {
	s.Clear()
	size := v.sim.Size()
	v.glyphs = Compose(v.glyphs, v.sim.Cells(), size, v.palette)
	sw, sh := s.Size()
	rows := len(v.glyphs) / max(size.W, 1)
	for r := 0; r < rows && r < sh-1; r++ {
		for x := 0; x < size.W && x < sw; x++ {
			g := v.glyphs[r*size.W+x]
			st := tcell.StyleDefault.Foreground(rgb(g.Top)).Background(rgb(g.Bottom))
			s.SetContent(x, r, upperHalf, nil, st)
		}
	}
	for i, ch := range []rune(status) {
		if i >= sw {
			break
		}
		s.SetContent(i, sh-1, ch, nil, tcell.StyleDefault)
	}
	s.Show()
}

// Status formats the default status line.
func Status(sim core.Sim, tick uint64, paused bool) string {
	state := "running"
	if paused {
		state = "paused"
	}
	return fmt.Sprintf(" %s  tick %d  %s  [space] pause  [n] step  [r] reset  [s] reseed  [q] quit", sim.Name(), tick, state)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
