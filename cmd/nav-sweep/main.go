package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"time"

	"gridwalk/internal/sweep"
	"gridwalk/pkg/walls"
)

func main() {
	cols := flag.Int("cols", 64, "maze columns (face size with -cube)")
	rows := flag.Int("rows", 64, "maze rows (ignored with -cube)")
	cube := flag.Bool("cube", false, "fold six faces into a cube")
	outer := flag.Bool("outer", true, "close the outer perimeter")
	scale := flag.Float64("scale", walls.DefaultScale, "noise scale")
	lo := flag.Float64("min", 0.1, "lowest wall probability")
	hi := flag.Float64("max", 0.7, "highest wall probability")
	step := flag.Float64("step", 0.05, "probability step")
	seeds := flag.Int("seeds", 4, "seeds per probability pair")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	top := flag.Int("top", 5, "best pairs to list")
	flag.Parse()

	base := walls.Params{
		Cols:              *cols,
		Rows:              *rows,
		IncludeOuterWalls: *outer && !*cube,
		Scale:             *scale,
	}
	if *cube {
		base.Rows = *cols
	}
	seedList := make([]int64, *seeds)
	for i := range seedList {
		seedList[i] = int64(i + 1)
	}
	probs := sweep.Steps(*lo, *hi, *step)
	scenarios := sweep.Grid(probs, probs, seedList)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Sweeping %d layouts (%d workers, %dx%d, cube=%v)\n", len(scenarios), *workers, base.Cols, base.Rows, *cube)
	start := time.Now()
	results, err := sweep.Run(ctx, sweep.Options{Base: base, Cube: *cube, Workers: *workers}, scenarios)
	if err != nil {
		log.Fatal(err)
	}
	summary := sweep.Summarize(results)

	fmt.Printf("\n%6s %6s %9s %10s %9s %12s\n", "south", "west", "reach", "components", "isolated", "eccentricity")
	for _, s := range summary {
		fmt.Printf("%6.2f %6.2f %8.1f%% %10.1f %9.1f %12.1f\n",
			s.South, s.West, 100*s.Reachable, s.Components, s.Isolated, s.Eccentricity)
	}

	// Densest mazes that stay mostly connected are the interesting ones.
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Eccentricity*summary[i].Reachable > summary[j].Eccentricity*summary[j].Reachable
	})
	fmt.Printf("\nTop %d by reach-weighted eccentricity (elapsed %s):\n", *top, time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(summary) && i < *top; i++ {
		s := summary[i]
		fmt.Printf("%2d) south=%.2f west=%.2f reach=%.1f%% eccentricity=%.1f\n",
			i+1, s.South, s.West, 100*s.Reachable, s.Eccentricity)
	}
}
