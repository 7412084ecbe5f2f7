// Package pathing computes grassfire shortest-path fields: for one target
// cell, the hop distance from every cell and the set of directions that lie
// on some shortest path toward it.
package pathing

import (
	"fmt"
	"math"

	"github.com/gammazero/deque"

	"gridwalk/pkg/grid"
	"gridwalk/pkg/topology"
)

// Unreachable is the finished distance of a cell with no open route to the
// target.
const Unreachable int32 = -1

// Field is the output of one BFS pass.
type Field struct {
	dist []int32
	dirs *grid.Nibbles
}

// NewField allocates a field sized for topo. Fields are never resized.
func NewField(topo topology.Topology) *Field {
	f := &Field{
		dist: make([]int32, topo.CellCount()),
		dirs: grid.NewNibbles(topo.Cols(), topo.Faces()*topo.Rows()),
	}
	for i := range f.dist {
		f.dist[i] = Unreachable
	}
	return f
}

// Len returns the number of cells.
func (f *Field) Len() int { return len(f.dist) }

// Distance returns the hop count from cell i to the target, or Unreachable.
func (f *Field) Distance(i int) int32 { return f.dist[i] }

// Directions returns the directions from cell i that strictly reduce the
// distance to the target.
func (f *Field) Directions(i int) grid.Mask { return f.dirs.AtIndex(i) }

// DirectionTable exposes the packed direction nibbles.
func (f *Field) DirectionTable() *grid.Nibbles { return f.dirs }

// Max returns the largest finite distance in the field.
func (f *Field) Max() int32 {
	var m int32
	for _, d := range f.dist {
		if d > m {
			m = d
		}
	}
	return m
}

// Engine holds BFS scratch space reused across passes. An Engine is not safe
// for concurrent use; give each goroutine its own.
type Engine struct {
	open    deque.Deque[int32]
	visited []bool
}

// NewEngine returns an Engine with empty scratch buffers.
func NewEngine() *Engine { return &Engine{} }

func (e *Engine) reset(n int) {
	if cap(e.visited) < n {
		e.visited = make([]bool, n)
	}
	e.visited = e.visited[:n]
	for i := range e.visited {
		e.visited[i] = false
	}
	for e.open.Len() > 0 {
		e.open.PopFront()
	}
}

// Compute fills out with the distance and direction tables toward target.
// walls must be symmetric across every shared edge; a popped cell without a
// closed neighbour means the wall or topology tables are inconsistent and
// Compute panics.
func (e *Engine) Compute(target int, walls *grid.Nibbles, topo topology.Topology, out *Field) {
	n := topo.CellCount()
	e.reset(n)
	dist := out.dist
	for i := range dist {
		dist[i] = Unreachable
	}

	dist[target] = 0
	e.visited[target] = true
	tw := walls.AtIndex(target)
	for _, d := range grid.Directions {
		if tw.Has(d) {
			continue
		}
		if nb := topo.Neighbor(target, d); nb >= 0 && !e.visited[nb] {
			e.visited[nb] = true
			e.open.PushBack(int32(nb))
		}
	}

	for e.open.Len() > 0 {
		c := int(e.open.PopFront())
		w := walls.AtIndex(c)
		best := int32(math.MaxInt32)
		for _, d := range grid.Directions {
			if w.Has(d) {
				continue
			}
			nb := topo.Neighbor(c, d)
			if nb < 0 {
				continue
			}
			if !e.visited[nb] {
				e.visited[nb] = true
				e.open.PushBack(int32(nb))
				continue
			}
			if nd := dist[nb]; nd >= 0 && nd < best {
				best = nd
			}
		}
		if best == math.MaxInt32 {
			f, x, y := topo.Coords(c)
			panic(fmt.Sprintf("pathing: cell %d (face %d, %d,%d) dequeued with no closed neighbour", c, f, x, y))
		}
		dist[c] = best + 1
	}

	e.directions(walls, topo, out)
}

func (e *Engine) directions(walls *grid.Nibbles, topo topology.Topology, out *Field) {
	dist := out.dist
	for i := range dist {
		var m grid.Mask
		if own := dist[i]; own > 0 {
			w := walls.AtIndex(i)
			for _, d := range grid.Directions {
				if w.Has(d) {
					continue
				}
				nb := topo.Neighbor(i, d)
				if nb >= 0 && dist[nb] >= 0 && dist[nb] < own {
					m = m.With(d)
				}
			}
		}
		out.dirs.SetIndex(i, m)
	}
}
