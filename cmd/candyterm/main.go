package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"candychase/internal/config"
	"candychase/internal/session"
	"candychase/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	seed := flag.Int64("seed", -1, "random seed for ghost wandering (overrides config)")
	tps := flag.Int("tps", 0, "ticks per second (overrides config)")
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
	if *tps > 0 {
		tuning.TicksPerSecond = *tps
	}

	s, err := session.New(tuning)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = term.New(screen, s, tuning.TicksPerSecond).Run(ctx)
	stop()
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	log.Printf("final score %d, level %d", s.Score(), s.Level())
}
