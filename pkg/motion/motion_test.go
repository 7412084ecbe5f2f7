package motion

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridwalk/pkg/grid"
	"gridwalk/pkg/pathing"
	"gridwalk/pkg/steer"
	"gridwalk/pkg/topology"
	"gridwalk/pkg/walls"
)

const dt = 0.05

func center(x, y int) mgl32.Vec2 { return mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5} }

func TestQuantizeUsesTrailingEdge(t *testing.T) {
	assert.Equal(t, grid.C(2, 1), quantize(mgl32.Vec2{3.4, 1.5}, grid.East))
	assert.Equal(t, grid.C(3, 1), quantize(mgl32.Vec2{3.5, 1.5}, grid.East))
	assert.Equal(t, grid.C(3, 1), quantize(mgl32.Vec2{2.6, 1.5}, grid.West))
	assert.Equal(t, grid.C(2, 1), quantize(mgl32.Vec2{2.5, 1.5}, grid.West))
	assert.Equal(t, grid.C(1, 0), quantize(mgl32.Vec2{1.5, 1.2}, grid.North))
	assert.Equal(t, grid.C(1, 1), quantize(mgl32.Vec2{1.5, 1.2}, grid.South))
	assert.Equal(t, grid.C(1, 1), quantize(mgl32.Vec2{1.9, 1.2}, grid.None))
}

func TestCubeEdgeContinuity(t *testing.T) {
	const n = 6
	cube := topology.MustCube(n)
	w := walls.MustGenerateCube(walls.Params{Rows: n, Cols: n})
	k := NewKernel(cube, w, nil, 4)

	for f := topology.Face(0); f < topology.FaceCount; f++ {
		for _, d := range grid.Directions {
			// Start on the border cell, one step from the edge crossed by d.
			x, y := 2, 2
			switch d {
			case grid.North:
				y = n - 1
			case grid.South:
				y = 0
			case grid.West:
				x = 0
			case grid.East:
				x = n - 1
			}
			a := &Agent{Pos: center(x, y), Dir: d, Cell: grid.C(x, y), Face: int(f)}

			for i := 0; i < 40 && a.Face == int(f); i++ {
				k.Step(a, dt, steer.Tick{})
			}
			require.Equal(t, int(topology.NextFace(d, f)), a.Face, "%v %v", f, d)
			assert.Equal(t, topology.NextFaceDirection(d, f), a.Dir, "%v %v", f, d)
			assert.True(t, a.Cell.InBounds(n, n), "%v %v landed on %v", f, d, a.Cell)
		}
	}
}

func TestCubeCrossingMatchesNeighbourTable(t *testing.T) {
	const n = 5
	cube := topology.MustCube(n)
	w := walls.MustGenerateCube(walls.Params{Rows: n, Cols: n})
	k := NewKernel(cube, w, nil, 4)

	a := &Agent{Pos: center(n-1, 1), Dir: grid.East, Cell: grid.C(n-1, 1), Face: int(topology.XPos)}
	want := cube.Neighbor(cube.Index(a.Face, n-1, 1), grid.East)
	for i := 0; i < 10 && a.Face == int(topology.XPos); i++ {
		k.Step(a, dt, steer.Tick{})
	}
	assert.Equal(t, want, cube.Index(a.Face, int(a.Cell.X), int(a.Cell.Y)))
}

func TestSeekerOnIslandStops(t *testing.T) {
	topo := topology.MustFlat(5, 5)
	w := walls.MustGenerate(walls.Params{Rows: 5, Cols: 5, IncludeOuterWalls: true})
	w.Set(2, 2, grid.MaskAll)
	w.Set(2, 3, w.At(2, 3).With(grid.South))
	w.Set(2, 1, w.At(2, 1).With(grid.North))
	w.Set(1, 2, w.At(1, 2).With(grid.East))
	w.Set(3, 2, w.At(3, 2).With(grid.West))

	var ts pathing.Targets
	ts.Add(topo).Update(grid.C(0, 0), 0, pathing.NewEngine(), w, topo)
	k := NewKernel(topo, w, &ts, 3)

	a := Spawn(center(2, 2), 0, Seek)
	var clock steer.Clock
	for i := 0; i < 5; i++ {
		k.Step(&a, dt, clock.Advance())
	}
	assert.Equal(t, grid.None, a.Dir)
	assert.Equal(t, grid.C(2, 2), a.Cell)
	assert.Equal(t, center(2, 2), a.Pos)
}

func TestSeekerWithoutTargetsStops(t *testing.T) {
	topo := topology.MustFlat(4, 4)
	w := walls.MustGenerate(walls.Params{Rows: 4, Cols: 4, IncludeOuterWalls: true})
	k := NewKernel(topo, w, &pathing.Targets{}, 3)
	a := Spawn(center(1, 1), 0, Seek)
	k.Step(&a, dt, steer.Tick{})
	assert.True(t, a.Stationary())
}

func TestSeekerReachesTarget(t *testing.T) {
	topo := topology.MustFlat(8, 8)
	w := walls.MustGenerate(walls.Params{Rows: 8, Cols: 8, SouthProbability: 0.3, WestProbability: 0.3, IncludeOuterWalls: true, Seed: 11})
	eng := pathing.NewEngine()
	var ts pathing.Targets
	tg := ts.Add(topo)
	goal := grid.C(6, 6)
	require.True(t, tg.Update(goal, 0, eng, w, topo))

	start := grid.C(1, 1)
	if tg.Field().Distance(topo.Index(0, 1, 1)) < 0 {
		t.Skip("start cell is cut off in this layout")
	}
	k := NewKernel(topo, w, &ts, 4)
	a := Spawn(center(int(start.X), int(start.Y)), 0, Seek)
	var clock steer.Clock
	for i := 0; i < 2000 && a.Cell != goal; i++ {
		k.Step(&a, dt, clock.Advance())
	}
	require.Equal(t, goal, a.Cell)
	k.Step(&a, dt, clock.Advance())
	assert.True(t, a.Stationary(), "seekers stop on the target cell")
}

func TestBouncersStayInsideClosedPerimeter(t *testing.T) {
	p := walls.Params{Rows: 9, Cols: 12, SouthProbability: 0.45, WestProbability: 0.45, IncludeOuterWalls: true, Seed: 5}
	w := walls.MustGenerate(p)
	topo := topology.MustFlat(p.Cols, p.Rows)
	k := NewKernel(topo, w, nil, 3)

	r := rand.New(rand.NewPCG(1, 2))
	agents := make([]Agent, 40)
	for i := range agents {
		agents[i] = Spawn(center(r.IntN(p.Cols), r.IntN(p.Rows)), 0, Bounce)
	}

	var clock steer.Clock
	for tick := 0; tick < 2000; tick++ {
		tk := clock.Advance()
		for i := range agents {
			a := &agents[i]
			prev := a.Cell
			k.Step(a, dt, tk)
			require.True(t, a.Cell.InBounds(p.Cols, p.Rows), "agent %d left the grid at %v", i, a.Cell)
			if prev == grid.Sentinel || prev == a.Cell {
				continue
			}
			moved := false
			for _, d := range grid.Directions {
				if prev.Add(d) == a.Cell {
					moved = true
					require.False(t, w.At(int(prev.X), int(prev.Y)).Has(d), "agent %d walked through a wall", i)
				}
			}
			require.True(t, moved, "agent %d jumped from %v to %v", i, prev, a.Cell)
		}
	}
}

func TestWalkingOffFlatGridStops(t *testing.T) {
	topo := topology.MustFlat(5, 3)
	w := walls.MustGenerate(walls.Params{Rows: 3, Cols: 5})
	k := NewKernel(topo, w, nil, 4)
	a := &Agent{Pos: center(4, 1), Dir: grid.East, Cell: grid.C(4, 1)}
	for i := 0; i < 20; i++ {
		k.Step(a, dt, steer.Tick{})
	}
	assert.True(t, a.Stationary())
	assert.Equal(t, grid.C(4, 1), a.Cell)
	assert.Equal(t, center(4, 1), a.Pos)
}

func TestOffCentreSpawnSettlesInOwnCell(t *testing.T) {
	topo := topology.MustFlat(5, 5)
	w := walls.MustGenerate(walls.Params{Rows: 5, Cols: 5, IncludeOuterWalls: true})
	w.Set(2, 2, w.At(2, 2).With(grid.South))
	w.Set(2, 1, w.At(2, 1).With(grid.North))
	k := NewKernel(topo, w, nil, 4)

	a := Spawn(mgl32.Vec2{2.5, 2.2}, 0, Bounce)
	k.Step(&a, dt, steer.Tick{})
	require.Equal(t, grid.C(2, 2), a.Cell)
	assert.Equal(t, center(2, 2), a.Pos)

	var clock steer.Clock
	for i := 0; i < 300; i++ {
		prev := a.Cell
		k.Step(&a, dt, clock.Advance())
		crossed := (prev == grid.C(2, 2) && a.Cell == grid.C(2, 1)) ||
			(prev == grid.C(2, 1) && a.Cell == grid.C(2, 2))
		require.False(t, crossed, "tick %d: walked through the wall from %v to %v", i, prev, a.Cell)
	}
}

func TestStepAllMatchesSequential(t *testing.T) {
	const n = 12
	cube := topology.MustCube(n)
	w := walls.MustGenerateCube(walls.Params{Rows: n, Cols: n, SouthProbability: 0.35, WestProbability: 0.35, Seed: 9})
	k := NewKernel(cube, w, nil, 3)

	r := rand.New(rand.NewPCG(3, 4))
	seq := make([]Agent, 1000)
	for i := range seq {
		seq[i] = Spawn(center(r.IntN(n), r.IntN(n)), r.IntN(topology.FaceCount), Bounce)
	}
	par := make([]*Agent, len(seq))
	for i := range seq {
		cp := seq[i]
		par[i] = &cp
	}

	var c1, c2 steer.Clock
	for tick := 0; tick < 300; tick++ {
		tk := c1.Advance()
		for i := range seq {
			k.Step(&seq[i], dt, tk)
		}
		require.NoError(t, k.StepAll(context.Background(), par, dt, c2.Advance()))
	}
	for i := range seq {
		require.Equal(t, seq[i], *par[i], "agent %d", i)
	}
}

func TestStepAllHonoursCancel(t *testing.T) {
	topo := topology.MustFlat(4, 4)
	w := walls.MustGenerate(walls.Params{Rows: 4, Cols: 4, IncludeOuterWalls: true})
	k := NewKernel(topo, w, nil, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := Spawn(center(1, 1), 0, Bounce)
	assert.ErrorIs(t, k.StepAll(ctx, []*Agent{&a}, dt, steer.Tick{}), context.Canceled)
}

func BenchmarkStepAll(b *testing.B) {
	p := walls.Params{Rows: 128, Cols: 128, SouthProbability: 0.3, WestProbability: 0.3, IncludeOuterWalls: true, Seed: 1}
	w := walls.MustGenerate(p)
	k := NewKernel(topology.MustFlat(p.Cols, p.Rows), w, nil, 3)
	r := rand.New(rand.NewPCG(5, 6))
	agents := make([]*Agent, 20000)
	for i := range agents {
		a := Spawn(center(r.IntN(p.Cols), r.IntN(p.Rows)), 0, Bounce)
		agents[i] = &a
	}
	var clock steer.Clock
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = k.StepAll(ctx, agents, dt, clock.Advance())
	}
}
