// Command nav-term runs a maze in the terminal.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridwalk/internal/app"
	"gridwalk/internal/core"
	_ "gridwalk/internal/sims/swarm"
	"gridwalk/internal/termview"
)

const frame = time.Second / 30

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	launch, err := app.Resolve(cfg)
	if err != nil {
		log.Fatal(err)
	}
	sim := launch.Sim

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	run(screen, sim, launch, events)
}

func run(screen tcell.Screen, sim core.Sim, launch *app.Launch, events <-chan tcell.Event) {
	view := termview.New(sim)
	pacer := core.NewFixedStep(launch.TPS)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	seed := launch.Seed
	var tick uint64
	paused := false
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					return
				case ev.Rune() == ' ':
					paused = !paused
				case ev.Rune() == 'n':
					sim.Step()
					tick++
				case ev.Rune() == 'r':
					sim.Reset(seed)
					tick = 0
				case ev.Rune() == 's':
					seed = time.Now().UnixNano()
					sim.Reset(seed)
					tick = 0
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			steps := pacer.Due(4)
			if !paused {
				for i := 0; i < steps; i++ {
					sim.Step()
					tick++
				}
			}
			view.Draw(screen, termview.Status(sim, tick, paused))
		}
	}
}
