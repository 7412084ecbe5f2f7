//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"gridwalk/internal/core"
	"gridwalk/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type heatProvider interface {
	HeatMask() []float32
}

type flowProvider interface {
	FlowVectorAt(x, y float64) (float64, float64)
}

type cellSizer interface {
	CellPixels() int
}

// Overlay draws debugging layers over the maze: 1 toggles the distance heat
// map, 2 toggles the shortest-path flow arrows.
type Overlay struct {
	sim      core.Sim
	scale    int
	showHeat bool
	showFlow bool

	heat  *render.GridPainter
	pixel *ebiten.Image

	samples    []flowSample
	sampleSpan float64
	cacheSize  core.Size
}

const maxFlowSamples = 1600

var (
	heatTint  = color.RGBA{R: 255, G: 96, B: 48, A: 255}
	arrowTint = color.RGBA{R: 240, G: 240, B: 120, A: 255}
)

// NewOverlay constructs an overlay for sim drawn at the given pixel scale.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showFlow = !o.showFlow
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if o.showHeat {
		if p, ok := o.sim.(heatProvider); ok {
			if o.heat == nil {
				o.heat = render.NewGridPainter(size.W, size.H)
			}
			o.heat.BlitMask(screen, p.HeatMask(), heatTint, 150, o.scale)
		}
	}
	if o.showFlow {
		if p, ok := o.sim.(flowProvider); ok {
			o.drawFlow(screen, p, size)
		}
	}
}

func (o *Overlay) drawFlow(screen *ebiten.Image, p flowProvider, size core.Size) {
	if o.cacheSize != size || o.samples == nil {
		cell := 1
		if c, ok := o.sim.(cellSizer); ok {
			cell = c.CellPixels()
		}
		o.samples, o.sampleSpan = flowSamples(size, cell, o.scale, maxFlowSamples)
		o.cacheSize = size
	}
	if len(o.samples) == 0 {
		return
	}

	const headAngle = math.Pi / 6
	length := o.sampleSpan * 0.7
	head := length * 0.35
	thickness := math.Max(1, float64(o.scale)*0.5)

	for _, s := range o.samples {
		vx, vy := p.FlowVectorAt(s.cx, s.cy)
		if vx == 0 && vy == 0 {
			continue
		}
		n := math.Hypot(vx, vy)
		nx, ny := vx/n, vy/n
		tailX, tailY := s.sx-nx*length/2, s.sy-ny*length/2
		tipX, tipY := s.sx+nx*length/2, s.sy+ny*length/2
		o.drawLine(screen, tailX, tailY, tipX, tipY, thickness, arrowTint)

		angle := math.Atan2(ny, nx)
		for _, side := range [2]float64{headAngle, -headAngle} {
			hx := tipX - math.Cos(angle+side)*head
			hy := tipY - math.Sin(angle+side)*head
			o.drawLine(screen, tipX, tipY, hx, hy, thickness, arrowTint)
		}
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
