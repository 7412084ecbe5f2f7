package swarm

import (
	"errors"
	"slices"
	"testing"

	"gridwalk/internal/core"
	"gridwalk/pkg/motion"
	"gridwalk/pkg/topology"
	"gridwalk/pkg/walls"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Cols = 16
	cfg.Rows = 12
	cfg.Seed = 99
	cfg.Params.Bouncers = 10
	cfg.Params.Seekers = 12
	cfg.Params.Targets = 2
	return cfg
}

func snapshotAgents(w *World) []motion.Agent {
	var out []motion.Agent
	w.EachAgent(func(a *motion.Agent, _ Role) { out = append(out, *a) })
	return out
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"maze", "cube"} {
		factory, ok := core.Sims()[name]
		if !ok {
			t.Fatalf("sim %q not registered", name)
		}
		sim := factory(map[string]string{"cols": "10", "rows": "8", "face": "6", "bouncers": "3", "seekers": "3"})
		if sim.Name() != name {
			t.Fatalf("factory %q built sim %q", name, sim.Name())
		}
		size := sim.Size()
		if len(sim.Cells()) != size.W*size.H {
			t.Fatalf("%s: raster has %d cells, want %d", name, len(sim.Cells()), size.W*size.H)
		}
	}
}

func TestResetDeterministic(t *testing.T) {
	world := MustNew(smallConfig())
	initialCells := append([]uint8(nil), world.Cells()...)
	initialWalls := append([]byte(nil), world.Walls().Bytes()...)
	initialAgents := snapshotAgents(world)

	for i := 0; i < 40; i++ {
		world.Step()
	}
	world.Reset(0)

	if !slices.Equal(initialCells, world.Cells()) {
		t.Fatal("Reset with config seed not deterministic for display buffer")
	}
	if !slices.Equal(initialWalls, world.Walls().Bytes()) {
		t.Fatal("Reset with config seed not deterministic for walls")
	}
	if !slices.Equal(initialAgents, snapshotAgents(world)) {
		t.Fatal("Reset with config seed not deterministic for agents")
	}
	if world.Ticks() != 0 {
		t.Fatalf("Reset left tick counter at %d", world.Ticks())
	}

	world.Reset(777)
	if slices.Equal(initialWalls, world.Walls().Bytes()) {
		t.Fatal("different seed produced identical walls")
	}
}

func TestStepDeterministic(t *testing.T) {
	a := MustNew(smallConfig())
	b := MustNew(smallConfig())
	for i := 0; i < 150; i++ {
		a.Step()
		b.Step()
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("identical worlds diverged in display buffer")
	}
	if !slices.Equal(snapshotAgents(a), snapshotAgents(b)) {
		t.Fatal("identical worlds diverged in agent state")
	}
}

func TestMazeWallsAreSymmetric(t *testing.T) {
	world := MustNew(smallConfig())
	if err := walls.Validate(world.Walls(), world.Topology()); err != nil {
		t.Fatal(err)
	}
}

func TestCubeAgentsStayOnFaces(t *testing.T) {
	cfg := DefaultCubeConfig()
	cfg.Face = 8
	cfg.Params.Bouncers = 30
	cfg.Params.Seekers = 30
	world := MustNew(cfg)
	if err := walls.Validate(world.Walls(), world.Topology()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 400; i++ {
		world.Step()
		world.EachAgent(func(a *motion.Agent, kind Role) {
			if !a.Cell.InBounds(cfg.Face, cfg.Face) || a.Face < 0 || a.Face >= 6 {
				t.Fatalf("tick %d: agent (%v) at face %d cell %v", i, kind, a.Face, a.Cell)
			}
		})
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	for _, cfg := range []Config{smallConfig(), DefaultCubeConfig()} {
		world := MustNew(cfg)
		l := world.layout
		topo := world.Topology()
		for i := 0; i < topo.CellCount(); i++ {
			face, x, y := topo.Coords(i)
			px, py := l.blockOrigin(face, x, y)
			gf, gx, gy, ok := l.cellAt(px+1, py+1)
			if !ok || gf != face || gx != x || gy != y {
				t.Fatalf("%s: cell %d (%d,%d,%d) came back as (%d,%d,%d) ok=%v", world.Name(), i, face, x, y, gf, gx, gy, ok)
			}
		}
	}

	cube := MustNew(DefaultCubeConfig())
	if _, _, _, ok := cube.layout.cellAt(0, 0); ok {
		t.Fatal("top-left corner of the unfolded cube should be void")
	}
	if cube.Cells()[0] != displayVoid {
		t.Fatalf("void pixel painted %d", cube.Cells()[0])
	}
}

func TestHeatMaskPeaksAtTarget(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.Bouncers = 0
	cfg.Params.Seekers = 0
	cfg.Params.Targets = 1
	cfg.Params.WanderingTargets = false
	world := MustNew(cfg)

	tg := world.Targets().All()[0]
	if tg.Field() == nil {
		t.Fatal("parked target should have a field after Reset")
	}
	c := tg.Cell()
	px, py := world.layout.blockOrigin(0, int(c.X), int(c.Y))
	heat := world.HeatMask()
	if got := heat[(py+1)*world.Size().W+px+1]; got != 1 {
		t.Fatalf("heat at target = %v, want 1", got)
	}
	if dx, dy := world.FlowVectorAt(float64(px+1), float64(py+1)); dx != 0 || dy != 0 {
		t.Fatalf("flow at target = (%v,%v), want zero", dx, dy)
	}
}

func TestFromMapOverrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"cols":              "20",
		"rows":              "14",
		"south_probability": "1.7",
		"outer_walls":       "false",
		"seekers":           "5",
		"dt":                "0.5",
		"speed":             "30",
	})
	if cfg.Cols != 20 || cfg.Rows != 14 {
		t.Fatalf("dimension overrides = %dx%d", cfg.Cols, cfg.Rows)
	}
	if cfg.Params.SouthProbability != 1 {
		t.Fatalf("probability not clamped: %v", cfg.Params.SouthProbability)
	}
	if cfg.Params.OuterWalls {
		t.Fatal("outer_walls=false ignored")
	}
	if cfg.Params.Seekers != 5 {
		t.Fatalf("seekers = %d", cfg.Params.Seekers)
	}
	if cfg.Params.DT != MaxDT {
		t.Fatalf("dt not clamped: %v", cfg.Params.DT)
	}
	if cfg.Params.Speed*cfg.Params.DT >= 1 {
		t.Fatalf("speed %v lets an agent skip a cell", cfg.Params.Speed)
	}
	if !CubeFromMap(nil).Cube {
		t.Fatal("cube defaults must fold the grid")
	}
}

func TestMalformedDimensionsFailConstruction(t *testing.T) {
	cases := []struct {
		name  string
		build func() Config
	}{
		{"unit cols", func() Config { return FromMap(map[string]string{"cols": "1"}) }},
		{"zero rows", func() Config { return FromMap(map[string]string{"rows": "0"}) }},
		{"unit face", func() Config { return CubeFromMap(map[string]string{"face": "1"}) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.build())
			if !errors.Is(err, topology.ErrInvalidDimension) {
				t.Fatalf("New returned %v, want ErrInvalidDimension", err)
			}
		})
	}

	defer func() {
		if recover() == nil {
			t.Fatal("registered factory accepted cols=1")
		}
	}()
	core.Sims()["maze"](map[string]string{"cols": "1"})
}

func TestParameterSetters(t *testing.T) {
	world := MustNew(smallConfig())
	if !world.SetFloatParameter("south_probability", 0) {
		t.Fatal("south_probability rejected")
	}
	if !world.SetIntParameter("seekers", 4) {
		t.Fatal("seekers rejected")
	}
	if world.SetIntParameter("tick", 3) {
		t.Fatal("status values must be read-only")
	}
	if world.SetFloatParameter("speed", 100) {
		t.Fatal("speed that skips cells must be rejected")
	}

	snap := world.Parameters()
	south, _ := snap.Lookup("south_probability")
	seekerParam, _ := snap.Lookup("seekers")
	if south.Value != "0" || seekerParam.Value != "4" {
		t.Fatalf("snapshot not updated: south=%q seekers=%q", south.Value, seekerParam.Value)
	}

	seekers := 0
	world.EachAgent(func(_ *motion.Agent, kind Role) {
		if kind == RoleSeeker {
			seekers++
		}
	})
	if seekers != 4 {
		t.Fatalf("respawned %d seekers, want 4", seekers)
	}
}

func TestChecksumTracksState(t *testing.T) {
	a := MustNew(smallConfig())
	b := MustNew(smallConfig())
	if a.Checksum() != b.Checksum() {
		t.Fatal("identical worlds hash differently")
	}
	before := a.Checksum()
	for i := 0; i < 5; i++ {
		a.Step()
	}
	if a.Checksum() == before {
		t.Fatal("checksum did not change after moving agents")
	}
	a.Reset(0)
	if a.Checksum() != before {
		t.Fatal("checksum differs after Reset")
	}
}
