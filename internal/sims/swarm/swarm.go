// Package swarm hosts the navigation kernel inside a core.Sim: a maze (flat
// or folded onto a cube) populated with wall-bouncing agents, target-seeking
// agents and the targets they chase. Agents live in an ark ECS world.
package swarm

import (
	"context"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"gridwalk/internal/core"
	pcore "gridwalk/pkg/core"
	"gridwalk/pkg/grid"
	"gridwalk/pkg/motion"
	"gridwalk/pkg/pathing"
	"gridwalk/pkg/steer"
	"gridwalk/pkg/topology"
	"gridwalk/pkg/walls"
)

// Role tags what an agent entity is for.
type Role uint8

const (
	RoleBouncer Role = iota
	RoleSeeker
	RoleTarget
)

// role is the ECS component stored next to motion.Agent.
type role struct {
	kind   Role
	target *pathing.Target
}

// World is a running swarm simulation.
type World struct {
	cfg  Config
	seed int64

	topo  topology.Topology
	walls *grid.Nibbles

	ecs    ecs.World
	agents *ecs.Filter2[motion.Agent, role]
	batch  []*motion.Agent

	targets pathing.Targets
	engine  *pathing.Engine
	kernel  *motion.Kernel
	clock   steer.Clock
	ticks   uint64

	layout layout
	raster *core.ByteGrid
	heat   []float32
}

func init() {
	core.Register("maze", func(cfg map[string]string) core.Sim {
		return MustNew(FromMap(cfg))
	})
	core.Register("cube", func(cfg map[string]string) core.Sim {
		return MustNew(CubeFromMap(cfg))
	})
}

// New validates cfg and returns a world ready for Reset.
func New(cfg Config) (*World, error) {
	w := &World{cfg: cfg, seed: cfg.Seed, engine: pathing.NewEngine()}
	var err error
	if cfg.Cube {
		w.topo, err = topology.NewCube(cfg.Face)
	} else {
		w.topo, err = topology.NewFlat(cfg.Cols, cfg.Rows)
	}
	if err != nil {
		return nil, fmt.Errorf("swarm: %w", err)
	}
	w.layout = newLayout(w.topo)
	w.raster = core.NewByteGrid(w.layout.w, w.layout.h)
	w.heat = make([]float32, w.layout.w*w.layout.h)
	w.Reset(cfg.Seed)
	log.Printf("swarm: %s %dx%dx%d, %d bouncers, %d seekers, %d targets",
		w.Name(), w.topo.Faces(), w.topo.Cols(), w.topo.Rows(),
		cfg.Params.Bouncers, cfg.Params.Seekers, cfg.Params.Targets)
	return w, nil
}

// MustNew is New that panics on an invalid configuration.
func MustNew(cfg Config) *World {
	w, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string {
	if w.cfg.Cube {
		return "cube"
	}
	return "maze"
}

// Size reports the raster dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.layout.w, H: w.layout.h} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.raster.Cells() }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Topology returns the grid topology.
func (w *World) Topology() topology.Topology { return w.topo }

// Walls returns the generated wall table.
func (w *World) Walls() *grid.Nibbles { return w.walls }

// Ticks returns the number of steps since the last Reset.
func (w *World) Ticks() uint64 { return w.ticks }

// Targets returns the live target registry.
func (w *World) Targets() *pathing.Targets { return &w.targets }

// Reset regenerates the maze and respawns every agent. A zero seed reuses
// the configured seed.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.seed = seed

	p := walls.Params{
		Rows:              w.topo.Rows(),
		Cols:              w.topo.Cols(),
		SouthProbability:  w.cfg.Params.SouthProbability,
		WestProbability:   w.cfg.Params.WestProbability,
		IncludeOuterWalls: w.cfg.Params.OuterWalls,
		Seed:              seed,
		Scale:             w.cfg.Params.NoiseScale,
	}
	if w.cfg.Cube {
		w.walls = walls.MustGenerateCube(p)
	} else {
		w.walls = walls.MustGenerate(p)
	}

	speed := float32(w.cfg.Params.Speed)
	w.targets.Clear()
	w.kernel = motion.NewKernel(w.topo, w.walls, &w.targets, speed)
	w.clock.Reset()
	w.ticks = 0
	w.spawn(pcore.NewRNG(seed))
	w.updateTargets()
	w.rebuildDisplay()
}

func (w *World) spawn(r *pcore.RNG) {
	w.ecs = ecs.NewWorld()
	w.agents = ecs.NewFilter2[motion.Agent, role](&w.ecs)
	mapper := ecs.NewMap2[motion.Agent, role](&w.ecs)

	place := func(mode motion.Mode) motion.Agent {
		face := r.IntN(w.topo.Faces())
		x, y := r.Cell(w.topo.Cols(), w.topo.Rows())
		return motion.Spawn(mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}, face, mode)
	}

	for i := 0; i < w.cfg.Params.Targets; i++ {
		a := place(motion.Bounce)
		if !w.cfg.Params.WanderingTargets {
			a.Cell = grid.C(int(a.Pos.X()), int(a.Pos.Y()))
			a.Dir = grid.None
		}
		mapper.NewEntity(&a, &role{kind: RoleTarget, target: w.targets.Add(w.topo)})
	}
	for i := 0; i < w.cfg.Params.Bouncers; i++ {
		a := place(motion.Bounce)
		mapper.NewEntity(&a, &role{kind: RoleBouncer})
	}
	for i := 0; i < w.cfg.Params.Seekers; i++ {
		a := place(motion.Seek)
		mapper.NewEntity(&a, &role{kind: RoleSeeker})
	}
}

// updateTargets recomputes the field of every target whose cell changed and
// collects agent pointers for the movement pass.
func (w *World) updateTargets() {
	w.batch = w.batch[:0]
	q := w.agents.Query()
	for q.Next() {
		a, rl := q.Get()
		if rl.kind == RoleTarget {
			rl.target.Update(a.Cell, a.Face, w.engine, w.walls, w.topo)
		}
		w.batch = append(w.batch, a)
	}
}

// Step advances the swarm by one tick: target fields first, then every
// agent in parallel.
func (w *World) Step() {
	tick := w.clock.Advance()
	w.updateTargets()
	if err := w.kernel.StepAll(context.Background(), w.batch, float32(w.cfg.Params.DT), tick); err != nil {
		log.Printf("swarm: step %d: %v", tick.Seq, err)
	}
	w.ticks++
	w.rebuildDisplay()
}

// EachAgent calls fn for every agent in storage order.
func (w *World) EachAgent(fn func(a *motion.Agent, kind Role)) {
	q := w.agents.Query()
	for q.Next() {
		a, rl := q.Get()
		fn(a, rl.kind)
	}
}

// Stationary counts agents that have stopped, excluding parked targets.
func (w *World) Stationary() int {
	n := 0
	w.EachAgent(func(a *motion.Agent, kind Role) {
		if kind != RoleTarget && a.Stationary() {
			n++
		}
	})
	return n
}
