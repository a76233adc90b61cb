package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"candychase/internal/config"
	"candychase/internal/session"
	"candychase/internal/spectate"
)

func main() {
	addr := flag.String("addr", "", "listen address (default $CANDYCHASE_ADDR or :8080)")
	every := flag.Int("broadcast-every", 2, "ticks between snapshot broadcasts")
	seed := flag.Int64("seed", -1, "random seed for ghost wandering (overrides config)")
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
	if *addr == "" {
		*addr = config.Addr()
	}

	s, err := session.New(tuning)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := spectate.NewHub(s, tuning.TicksPerSecond, *every)
	go hub.Run(ctx)

	srv := &http.Server{Addr: *addr, Handler: spectate.NewRouter(hub)}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s (ws endpoint: /ws)", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	<-hub.Done()
}
