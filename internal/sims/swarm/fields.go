package swarm

// HeatMask returns, per raster pixel, how close the cell is to its nearest
// target: 1 on a target, falling to 0 at the farthest reachable cell.
// Unreachable cells and void pixels are 0.
func (w *World) HeatMask() []float32 {
	for i := range w.heat {
		w.heat[i] = 0
	}
	var far int32
	for _, t := range w.targets.All() {
		if f := t.Field(); f != nil {
			if m := f.Max(); m > far {
				far = m
			}
		}
	}
	if far == 0 {
		far = 1
	}

	for i := 0; i < w.topo.CellCount(); i++ {
		_, d := w.targets.Nearest(i)
		if d < 0 {
			continue
		}
		v := 1 - float32(d)/float32(far)
		face, x, y := w.topo.Coords(i)
		bx, by := w.layout.blockOrigin(face, x, y)
		for dy := 0; dy < cellPx; dy++ {
			row := (by+dy)*w.layout.w + bx
			for dx := 0; dx < cellPx; dx++ {
				w.heat[row+dx] = v
			}
		}
	}
	return w.heat
}

// FlowVectorAt returns the screen-space unit vector a seeker at raster pixel
// (px, py) would take toward its nearest target, or zero when there is none.
// Screen y grows downward.
func (w *World) FlowVectorAt(px, py float64) (float64, float64) {
	face, x, y, ok := w.layout.cellAt(int(px), int(py))
	if !ok {
		return 0, 0
	}
	i := w.topo.Index(face, x, y)
	t, _ := w.targets.Nearest(i)
	if t == nil {
		return 0, 0
	}
	d := t.Field().Directions(i).Nth(0)
	dx, dy := d.Step()
	return float64(dx), float64(-dy)
}

// CellPixels is the raster size of one cell.
func (w *World) CellPixels() int { return cellPx }
