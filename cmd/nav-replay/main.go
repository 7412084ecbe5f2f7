// Command nav-replay runs a level headlessly and prints a checksum trail, so
// two builds or two machines can be compared tick for tick.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"gridwalk/internal/app"
	"gridwalk/internal/core"
	"gridwalk/internal/sims/swarm"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	ticks := flag.Int("ticks", 0, "ticks to run (0 uses the level's)")
	every := flag.Int("every", 100, "print a checksum every N ticks, 0 prints only the final one")
	flag.Parse()

	launch, err := app.Resolve(cfg)
	if err != nil {
		log.Fatal(err)
	}
	world, ok := launch.Sim.(*swarm.World)
	if !ok {
		log.Fatalf("sim %q has no agent state to replay", launch.Sim.Name())
	}
	n := launch.Level.Run.Ticks
	if *ticks > 0 {
		n = *ticks
	}

	start := time.Now()
	fmt.Printf("%s seed=%d ticks=%d start=%016x\n", world.Name(), launch.Seed, n, world.Checksum())
	for i := 1; i <= n; i++ {
		world.Step()
		if *every > 0 && i%*every == 0 {
			fmt.Printf("tick %6d  %016x  stationary=%d\n", i, world.Checksum(), world.Stationary())
		}
	}
	fmt.Printf("final %016x after %d ticks (%s)\n", world.Checksum(), n, time.Since(start).Round(time.Millisecond))

	if p, ok := launch.Sim.(core.ParameterProvider); ok {
		for _, g := range p.Parameters().Groups {
			for _, param := range g.Params {
				fmt.Printf("  %-18s %s\n", param.Key, param.Value)
			}
		}
	}
}
