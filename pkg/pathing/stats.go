package pathing

import (
	"gridwalk/pkg/grid"
	"gridwalk/pkg/topology"
)

// Stats summarises how well connected a wall layout is.
type Stats struct {
	Cells      int
	Components int
	// Largest is the size of the biggest connected component.
	Largest int
	// Isolated counts single-cell components.
	Isolated int
	// Eccentricity is the longest shortest path from the first cell of the
	// largest component.
	Eccentricity int32
}

// Reachable is the fraction of cells in the largest component.
func (s Stats) Reachable() float64 {
	if s.Cells == 0 {
		return 0
	}
	return float64(s.Largest) / float64(s.Cells)
}

// Analyze flood-fills every component of walls and measures the largest.
func (e *Engine) Analyze(walls *grid.Nibbles, topo topology.Topology) Stats {
	n := topo.CellCount()
	e.reset(n)
	st := Stats{Cells: n}
	root := -1
	for start := 0; start < n; start++ {
		if e.visited[start] {
			continue
		}
		size := e.flood(start, walls, topo)
		st.Components++
		if size == 1 {
			st.Isolated++
		}
		if size > st.Largest {
			st.Largest, root = size, start
		}
	}
	if root >= 0 {
		f := NewField(topo)
		e.Compute(root, walls, topo, f)
		st.Eccentricity = f.Max()
	}
	return st
}

func (e *Engine) flood(start int, walls *grid.Nibbles, topo topology.Topology) int {
	e.visited[start] = true
	e.open.PushBack(int32(start))
	size := 0
	for e.open.Len() > 0 {
		c := int(e.open.PopFront())
		size++
		w := walls.AtIndex(c)
		for _, d := range grid.Directions {
			if w.Has(d) {
				continue
			}
			if nb := topo.Neighbor(c, d); nb >= 0 && !e.visited[nb] {
				e.visited[nb] = true
				e.open.PushBack(int32(nb))
			}
		}
	}
	return size
}
