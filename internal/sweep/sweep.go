// Package sweep measures maze connectivity across a grid of wall
// probabilities. Each scenario generates a wall layout and flood-fills it;
// scenarios run in parallel, one pathing engine per worker.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"gridwalk/pkg/grid"
	"gridwalk/pkg/pathing"
	"gridwalk/pkg/topology"
	"gridwalk/pkg/walls"
)

// Scenario is one wall layout to measure.
type Scenario struct {
	South, West float64
	Seed        int64
}

func (s Scenario) String() string {
	return fmt.Sprintf("south=%.2f west=%.2f seed=%d", s.South, s.West, s.Seed)
}

// Result pairs a scenario with its connectivity.
type Result struct {
	Scenario Scenario
	Stats    pathing.Stats
}

// Options are shared by every scenario in a run.
type Options struct {
	// Base supplies dimensions, scale and the perimeter setting; its
	// probabilities and seed are replaced per scenario.
	Base    walls.Params
	Cube    bool
	Workers int
}

// Grid returns every combination of the given probabilities and seeds.
func Grid(south, west []float64, seeds []int64) []Scenario {
	out := make([]Scenario, 0, len(south)*len(west)*len(seeds))
	for _, s := range south {
		for _, w := range west {
			for _, seed := range seeds {
				out = append(out, Scenario{South: s, West: w, Seed: seed})
			}
		}
	}
	return out
}

// Steps returns lo, lo+step, ... up to and including hi.
func Steps(lo, hi, step float64) []float64 {
	if step <= 0 || hi < lo {
		return []float64{lo}
	}
	var out []float64
	for i := 0; ; i++ {
		v := lo + float64(i)*step
		if v > hi+1e-9 {
			break
		}
		out = append(out, v)
	}
	return out
}

// Run measures every scenario. Results come back in scenario order.
func Run(ctx context.Context, opts Options, scenarios []Scenario) ([]Result, error) {
	var topo topology.Topology
	var err error
	if opts.Cube {
		topo, err = topology.NewCube(opts.Base.Cols)
	} else {
		topo, err = topology.NewFlat(opts.Base.Cols, opts.Base.Rows)
	}
	if err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(scenarios))
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range scenarios {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			eng := pathing.NewEngine()
			for i := range jobs {
				res, err := measure(eng, opts, topo, scenarios[i])
				if err != nil {
					return err
				}
				results[i] = res
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func measure(eng *pathing.Engine, opts Options, topo topology.Topology, sc Scenario) (Result, error) {
	p := opts.Base
	p.SouthProbability = sc.South
	p.WestProbability = sc.West
	p.Seed = sc.Seed
	var w *grid.Nibbles
	var err error
	if opts.Cube {
		w, err = walls.GenerateCube(p)
	} else {
		w, err = walls.Generate(p)
	}
	if err != nil {
		return Result{}, fmt.Errorf("sweep: %s: %w", sc, err)
	}
	return Result{Scenario: sc, Stats: eng.Analyze(w, topo)}, nil
}

// Summary averages the results that share a probability pair.
type Summary struct {
	South, West  float64
	Runs         int
	Reachable    float64
	Components   float64
	Isolated     float64
	Eccentricity float64
}

// Summarize groups results by probability pair, ordered by south then west.
func Summarize(results []Result) []Summary {
	type key struct{ s, w float64 }
	acc := map[key]*Summary{}
	for _, r := range results {
		k := key{r.Scenario.South, r.Scenario.West}
		s := acc[k]
		if s == nil {
			s = &Summary{South: k.s, West: k.w}
			acc[k] = s
		}
		s.Runs++
		s.Reachable += r.Stats.Reachable()
		s.Components += float64(r.Stats.Components)
		s.Isolated += float64(r.Stats.Isolated)
		s.Eccentricity += float64(r.Stats.Eccentricity)
	}
	out := make([]Summary, 0, len(acc))
	for _, s := range acc {
		n := float64(s.Runs)
		s.Reachable /= n
		s.Components /= n
		s.Isolated /= n
		s.Eccentricity /= n
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].South != out[j].South {
			return out[i].South < out[j].South
		}
		return out[i].West < out[j].West
	})
	return out
}
