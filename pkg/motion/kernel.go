package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"gridwalk/pkg/grid"
	"gridwalk/pkg/pathing"
	"gridwalk/pkg/steer"
	"gridwalk/pkg/topology"
)

// Kernel holds the read-only tables shared by every agent in a movement
// pass. None of them may be mutated while Step or StepAll is running.
type Kernel struct {
	topo    topology.Topology
	cube    *topology.Cube
	walls   *grid.Nibbles
	targets *pathing.Targets

	// Speed is in cells per second. Speed*dt must stay below one cell.
	Speed float32
}

// NewKernel binds a kernel to its tables. targets may be nil when no agent
// seeks.
func NewKernel(topo topology.Topology, walls *grid.Nibbles, targets *pathing.Targets, speed float32) *Kernel {
	k := &Kernel{topo: topo, walls: walls, targets: targets, Speed: speed}
	k.cube, _ = topo.(*topology.Cube)
	return k
}

// Topology returns the topology the kernel moves agents across.
func (k *Kernel) Topology() topology.Topology { return k.topo }

// quantize maps a continuous position to a cell, biased by the trailing
// offset of the heading: a cell counts as entered once the agent's centre
// reaches the next cell's centre.
func quantize(p mgl32.Vec2, d grid.Direction) grid.Cell {
	x := floor(p.X())
	y := floor(p.Y())
	switch d {
	case grid.East:
		x = floor(p.X() - 0.5)
	case grid.West:
		x = ceil(p.X()+0.5) - 1
	case grid.North:
		y = floor(p.Y() - 0.5)
	case grid.South:
		y = ceil(p.Y()+0.5) - 1
	}
	return grid.C(x, y)
}

func floor(v float32) int { return int(math.Floor(float64(v))) }
func ceil(v float32) int  { return int(math.Ceil(float64(v))) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (k *Kernel) clampCell(c grid.Cell) grid.Cell {
	return grid.C(clampInt(int(c.X), 0, k.topo.Cols()-1), clampInt(int(c.Y), 0, k.topo.Rows()-1))
}

func (k *Kernel) index(a *Agent) int {
	return k.topo.Index(a.Face, int(a.Cell.X), int(a.Cell.Y))
}

// Step advances one agent by dt seconds. It never fails: lookups that cannot
// be answered leave the agent stationary.
func (k *Kernel) Step(a *Agent, dt float32, tick steer.Tick) {
	if a.Cell == grid.Sentinel {
		k.place(a, tick)
		return
	}
	if a.Dir.Valid() {
		vx, vy := a.Dir.Vector()
		a.Pos = a.Pos.Add(mgl32.Vec2{vx, vy}.Mul(k.Speed * dt))
	}

	cell := quantize(a.Pos, a.Dir)
	if cell == a.Cell {
		if !a.Dir.Valid() {
			// Seekers wait for a reachable target; stopped bouncers stay put.
			if a.Mode == Seek {
				k.resolve(a, tick)
			}
			return
		}
		if a.Dir.Vertical() {
			a.Pos[0] = float32(cell.X) + 0.5
		} else {
			a.Pos[1] = float32(cell.Y) + 0.5
		}
		return
	}

	if !cell.InBounds(k.topo.Cols(), k.topo.Rows()) {
		if k.cube == nil {
			k.halt(a)
			return
		}
		k.crossFace(a, cell)
		// Snap so rounding in the fold cannot put the agent back over the
		// edge it just crossed.
		a.Cell = k.clampCell(quantize(a.Pos, a.Dir))
		a.Pos = a.Center()
		k.resolve(a, tick)
		return
	}
	a.Cell = cell
	k.resolve(a, tick)
}

// place settles a freshly spawned agent into the cell that contains it and
// picks its first heading there. The heading bias of quantize does not apply
// yet: the spawn heading was never travelled.
func (k *Kernel) place(a *Agent, tick steer.Tick) {
	a.Cell = k.clampCell(quantize(a.Pos, grid.None))
	a.Pos = a.Center()
	k.resolve(a, tick)
}

// halt stops an agent that walked off a flat grid in its last valid cell.
func (k *Kernel) halt(a *Agent) {
	if !a.Cell.InBounds(k.topo.Cols(), k.topo.Rows()) {
		a.Cell = k.clampCell(quantize(a.Pos, grid.None))
	}
	a.Dir = grid.None
	a.Pos = a.Center()
}

func (k *Kernel) crossFace(a *Agent, off grid.Cell) {
	edge, _ := k.cube.ExitEdge(int(off.X), int(off.Y))
	from := topology.Face(a.Face)
	to := topology.NextFace(edge, from)
	x, y := k.cube.TransformPosition(from, to, a.Pos.X(), a.Pos.Y())
	a.Pos = mgl32.Vec2{x, y}
	a.Face = int(to)
	if a.Dir.Valid() {
		a.Dir = topology.NextFaceDirection(edge, from)
	}
}

func (k *Kernel) resolve(a *Agent, tick steer.Tick) {
	var next grid.Direction
	switch a.Mode {
	case Seek:
		next = k.seek(a, tick)
	default:
		w := k.walls.AtIndex(k.index(a))
		next = steer.Next(w, a.Dir, tick.PathIndex)
		if w.Has(next) {
			next = grid.None
		}
	}
	if next != a.Dir {
		a.Pos = a.Center()
		a.Dir = next
	}
}

func (k *Kernel) seek(a *Agent, tick steer.Tick) grid.Direction {
	if k.targets == nil {
		return grid.None
	}
	i := k.index(a)
	t, _ := k.targets.Nearest(i)
	if t == nil {
		return grid.None
	}
	return t.Field().Directions(i).Nth(int(tick.Variation))
}
