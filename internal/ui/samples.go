package ui

import "gridwalk/internal/core"

// flowSample is one arrow anchor: raster coordinates for the provider and
// screen coordinates for drawing.
type flowSample struct {
	cx, cy float64
	sx, sy float64
}

// flowSamples places anchors on cell centres, skipping cells so that at most
// roughly limit anchors cover the raster. cell is the raster size of one cell.
func flowSamples(size core.Size, cell, scale, limit int) ([]flowSample, float64) {
	if size.W <= 0 || size.H <= 0 {
		return nil, 0
	}
	cell = max(cell, 1)
	scale = max(scale, 1)
	cols, rows := size.W/cell, size.H/cell
	if cols == 0 || rows == 0 {
		return nil, 0
	}

	stride := 1
	for limit > 0 && (cols/stride)*(rows/stride) > limit {
		stride++
	}

	var out []flowSample
	half := float64(cell) / 2
	for y := stride / 2; y < rows; y += stride {
		for x := stride / 2; x < cols; x += stride {
			cx := float64(x*cell) + half
			cy := float64(y*cell) + half
			out = append(out, flowSample{cx: cx, cy: cy, sx: cx * float64(scale), sy: cy * float64(scale)})
		}
	}
	return out, float64(stride*cell*scale)
}
