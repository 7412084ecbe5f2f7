package core

import (
	"image/color"
	"slices"
)

// Size is the raster size of a simulation in pixels.
type Size struct {
	W int
	H int
}

// Sim is what the viewers and headless tools drive. Cells is a
// palette-indexed raster of Size().W*Size().H values, row-major, top row
// first.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// PaletteProvider maps Cells values to colors. Sims without one are drawn
// as grayscale.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// Factory constructs a Sim from flag-style key/value settings. A nil map
// selects the sim's defaults.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists the registered sims in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GrayPalette spreads n levels from black to white.
func GrayPalette(n int) []color.RGBA {
	if n < 2 {
		n = 2
	}
	p := make([]color.RGBA, n)
	for i := range p {
		v := uint8(i * 255 / (n - 1))
		p[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return p
}

// PaletteOf returns sim's palette, or a grayscale ramp when it has none.
func PaletteOf(sim Sim) []color.RGBA {
	if p, ok := sim.(PaletteProvider); ok {
		return p.Palette()
	}
	return GrayPalette(256)
}
