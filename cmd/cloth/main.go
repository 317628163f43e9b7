//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"verlet-cloth/internal/app"
	"verlet-cloth/internal/core"
	_ "verlet-cloth/internal/sims/cloth"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := core.New(cfg.Sim, cfg.Options())
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg)
	w, h := game.WindowSize()

	ebiten.SetWindowTitle("verlet cloth - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
