package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/circle-collide-go/internal/config"
	"github.com/olivierh59500/circle-collide-go/internal/fps"
	"github.com/olivierh59500/circle-collide-go/internal/sim"
)

func main() {
	logger := log.New(os.Stderr, "[circles] ", log.Ltime)

	cfg, err := config.Parse(os.Args[1:], logger)
	if err != nil {
		// -h printed the usage
		return
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger.Printf("seed=%d n=%d layout=%s broadphase=%s palette=%s render=%s",
		cfg.Seed, cfg.Count, cfg.Layout, cfg.BroadPhase, cfg.Palette, cfg.Render)

	// Initialize simulation
	s, err := sim.New(cfg, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		logger.Fatal(err)
	}

	counter, err := fps.NewCounter(fps.DefaultWindow)
	if err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Render {
	case config.RenderNone:
		reporter := fps.NewReporter(logger, cfg.ReportInterval, counter, time.Now())
		ticks := runHeadless(ctx, s, counter, reporter, cfg.Duration)
		logger.Printf("stopped after %d ticks", ticks)

	case config.RenderTerminal:
		if err := runTerminal(ctx, s, counter); err != nil {
			logger.Fatal(err)
		}

	default:
		reporter := fps.NewReporter(logger, cfg.ReportInterval, counter, time.Now())
		game := NewGame(s, counter, reporter)

		// Set up Ebitengine game
		ebiten.SetWindowSize(game.Layout(0, 0))
		ebiten.SetWindowTitle("Elastic Circles")
		ebiten.SetTPS(cfg.TPS)

		// Run the game loop
		if err := ebiten.RunGame(game); err != nil {
			logger.Fatal(err)
		}
	}
}

func runTerminal(ctx context.Context, s *sim.Simulation, counter *fps.Counter) error {
	term, err := NewTerminal(s, counter)
	if err != nil {
		return err
	}
	defer term.Close()
	term.Run(ctx)
	return nil
}
