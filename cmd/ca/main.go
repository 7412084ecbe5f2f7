//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"gridwalk/internal/app"
	_ "gridwalk/internal/sims/swarm"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	launch, err := app.Resolve(cfg)
	if err != nil {
		log.Fatal(err)
	}
	sim := launch.Sim

	game := app.New(sim, cfg.Scale, cfg.HUDWidth, launch.Seed)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("gridwalk: " + sim.Name())
	ebiten.SetTPS(launch.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
