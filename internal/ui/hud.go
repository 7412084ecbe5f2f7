//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"gridwalk/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBG     = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	selectColor = color.RGBA{R: 40, G: 46, B: 64, A: 255}
)

// HUD renders the control panel to the right of the simulation view. Tab
// and the arrow keys select and step controls; the +/- buttons respond to
// the mouse. Parameters that are not controls are listed below as status.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     controlSet
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for sim with a panel width in screen pixels.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: panelTitle(sim)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.controls = newControlSet(sim)
	h.layoutControls()
	return h
}

// Update refreshes the snapshot and handles input. panelOffsetX is where the
// panel starts on screen.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	h.controls.refresh(h.snapshot)
	h.handleKeys()
	h.handleMouse()
}

func (h *HUD) handleKeys() {
	c := &h.controls
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab), inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		c.move(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		c.move(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight), inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		c.adjust(c.selected, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft), inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		c.adjust(c.selected, -1)
	}
}

func (h *HUD) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	px := mx - h.panelOffsetX
	if px < 0 {
		return
	}
	for i := range h.controls.states {
		s := &h.controls.states[i]
		switch {
		case pointInRect(px, my, s.minusRect):
			h.controls.selected = i
			h.controls.adjust(i, -1)
			return
		case pointInRect(px, my, s.plusRect):
			h.controls.selected = i
			h.controls.adjust(i, 1)
			return
		}
	}
}

// Draw paints the panel at offsetX, matching the height of the scaled view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelBG)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	y := h.drawControls()
	h.drawStatus(y)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControls() int {
	face := basicfont.Face7x13
	if len(h.controls.states) == 0 {
		y := panelPadding + headerBaseline + infoSpacing
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, y, dimColor)
		return y + lineHeight/2
	}
	bottom := controlsTop
	for i := range h.controls.states {
		s := &h.controls.states[i]
		if i == h.controls.selected {
			h.fillRect(image.Rect(0, s.top, h.width, s.top+lineHeight), selectColor)
		}
		labelY := s.top + labelBaseline
		text.Draw(h.panel, s.control.Label, face, panelPadding, labelY, textColor)

		valueColor := textColor
		if !s.hasValue {
			valueColor = dimColor
		}
		valueX := s.minusRect.Min.X - buttonGap - text.BoundString(face, s.value).Dx()
		text.Draw(h.panel, s.value, face, valueX, labelY, valueColor)

		_, canDown := h.controls.next(i, -1)
		_, canUp := h.controls.next(i, 1)
		h.drawButton(s.minusRect, "-", canDown)
		h.drawButton(s.plusRect, "+", canUp)
		bottom = s.top + lineHeight
	}
	return bottom
}

// drawStatus lists snapshot values that have no control, grouped by
// snapshot group, starting at y.
func (h *HUD) drawStatus(y int) {
	controlled := map[string]bool{}
	for _, s := range h.controls.states {
		controlled[s.control.Key] = true
	}
	face := basicfont.Face7x13
	for _, g := range h.snapshot.Groups {
		var lines []core.Parameter
		for _, p := range g.Params {
			if !controlled[p.Key] {
				lines = append(lines, p)
			}
		}
		if len(lines) == 0 {
			continue
		}
		y += statusLine
		if y > h.lastHeight {
			return
		}
		text.Draw(h.panel, g.Name, face, panelPadding, y, titleColor)
		for _, p := range lines {
			y += statusLine
			if y > h.lastHeight {
				return
			}
			text.Draw(h.panel, p.Label, face, panelPadding+8, y, dimColor)
			w := text.BoundString(face, p.Value).Dx()
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-w, y, textColor)
		}
	}
}

func (h *HUD) fillRect(rect image.Rectangle, col color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls.states {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
		s := &h.controls.states[i]
		s.top, s.minusRect, s.plusRect = top, minus, plus
	}
}

const (
	panelPadding   = 12
	lineHeight     = 32
	statusLine     = 16
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 21
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
