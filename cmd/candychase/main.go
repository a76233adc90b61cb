package main

import (
	"flag"
	"log"

	"candychase/internal/config"
	"candychase/internal/game"
	"candychase/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	seed := flag.Int64("seed", -1, "random seed for ghost wandering (overrides config)")
	maxLevel := flag.Int("levels", -1, "levels to clear to win, 0 for endless (overrides config)")
	fit := flag.Float64("fit", 0.75, "fraction of the screen the window may take")
	flag.Parse()

	if err := config.LoadEnvFiles(); err != nil {
		log.Fatal(err)
	}
	tuning, err := config.LoadDefault()
	if err != nil {
		log.Fatal(err)
	}
	if *seed >= 0 {
		tuning.Seed = *seed
	}
	if *maxLevel >= 0 {
		tuning.MaxLevel = *maxLevel
	}

	s, err := session.New(tuning)
	if err != nil {
		log.Fatal(err)
	}

	nw, nh := game.FrameSize(s.Snapshot())
	sw, sh := ebiten.ScreenSizeInFullscreen()
	g := game.New(s, game.FitScale(nw, nh, sw, sh, *fit))

	ebiten.SetWindowTitle("Candy Chase")
	ebiten.SetWindowResizable(false)
	ebiten.SetWindowSize(g.ScreenWidth(), g.ScreenHeight())
	ebiten.SetTPS(tuning.TicksPerSecond)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
