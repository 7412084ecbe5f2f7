package pathing

import (
	"sync/atomic"

	"gridwalk/pkg/grid"
	"gridwalk/pkg/topology"
)

// Target owns the shortest-path field toward one moving cell. Fields are
// double buffered: Update writes the back buffer and publishes it with a
// single pointer swap, so readers see either the old field or the new one.
type Target struct {
	id    int
	cell  grid.Cell
	face  int
	front atomic.Pointer[Field]
	back  *Field
	spare *Field
}

func newTarget(id int, topo topology.Topology) *Target {
	return &Target{
		id:    id,
		cell:  grid.Sentinel,
		back:  NewField(topo),
		spare: NewField(topo),
	}
}

// ID returns the creation sequence number of the target.
func (t *Target) ID() int { return t.id }

// Cell returns the cell the current field was computed for.
func (t *Target) Cell() grid.Cell { return t.cell }

// Face returns the face the current field was computed for.
func (t *Target) Face() int { return t.face }

// Field returns the published field, or nil before the first Update.
func (t *Target) Field() *Field { return t.front.Load() }

// Update recomputes the field if the target has moved to a different cell.
// A cell outside the topology is ignored and the previous field stays
// published. It reports whether a new field was published.
func (t *Target) Update(cell grid.Cell, face int, eng *Engine, walls *grid.Nibbles, topo topology.Topology) bool {
	if cell == t.cell && face == t.face {
		return false
	}
	if !cell.InBounds(topo.Cols(), topo.Rows()) || face < 0 || face >= topo.Faces() {
		return false
	}

	eng.Compute(topo.Index(face, int(cell.X), int(cell.Y)), walls, topo, t.back)
	old := t.front.Swap(t.back)
	if old == nil {
		old = t.spare
		t.spare = nil
	}
	t.back = old
	t.cell, t.face = cell, face
	return true
}

// Targets is an ordered registry. Iteration order is creation order, which
// is also the tie-break order for Nearest.
type Targets struct {
	list   []*Target
	nextID int
}

// Add creates a target with fields sized for topo.
func (ts *Targets) Add(topo topology.Topology) *Target {
	t := newTarget(ts.nextID, topo)
	ts.nextID++
	ts.list = append(ts.list, t)
	return t
}

// Remove drops t from the registry. Its fields are released with it.
func (ts *Targets) Remove(t *Target) {
	for i, o := range ts.list {
		if o == t {
			last := len(ts.list) - 1
			copy(ts.list[i:], ts.list[i+1:])
			ts.list[last] = nil
			ts.list = ts.list[:last]
			return
		}
	}
}

// Len returns the number of live targets.
func (ts *Targets) Len() int { return len(ts.list) }

// All returns the live targets in creation order. The slice must not be
// modified.
func (ts *Targets) All() []*Target { return ts.list }

// Clear removes every target.
func (ts *Targets) Clear() {
	clear(ts.list)
	ts.list = ts.list[:0]
}

// Nearest returns the target with the smallest finite distance from cell i,
// or nil and Unreachable when no target can be reached.
func (ts *Targets) Nearest(i int) (*Target, int32) {
	var (
		best     *Target
		bestDist = Unreachable
	)
	for _, t := range ts.list {
		f := t.Field()
		if f == nil {
			continue
		}
		d := f.Distance(i)
		if d < 0 {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = t, d
		}
	}
	return best, bestDist
}
