// Command starfall-headless runs a scripted engagement without a terminal and
// optionally serves Prometheus metrics while it runs
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/starfall/config"
	"github.com/lixenwraith/starfall/engine"
	"github.com/lixenwraith/starfall/input"
	"github.com/lixenwraith/starfall/logging"
	"github.com/lixenwraith/starfall/observability"
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/status"
	"github.com/lixenwraith/starfall/vmath"
)

func main() {
	configPath := flag.String("config", "", "config file (json, toml or yaml)")
	frames := flag.Int("frames", 3600, "frames to simulate at a fixed step, 0 runs in real time until interrupted")
	aliens := flag.Int("aliens", 6, "hostiles to spawn")
	flag.Parse()

	if err := run(*configPath, *frames, *aliens); err != nil {
		fmt.Fprintf(os.Stderr, "starfall-headless: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, frames, aliens int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	reg := status.NewRegistry()
	promReg := prometheus.NewRegistry()
	collector, err := observability.NewSimCollector(promReg)
	if err != nil {
		return err
	}
	if err := observability.RegisterStatus(promReg, reg); err != nil {
		return err
	}

	opts, err := engine.FromConfig(cfg)
	if err != nil {
		return err
	}
	rec := scene.NewRecorder()
	opts.Scene = rec
	opts.Status = reg
	opts.Metrics = collector
	opts.Logger = &logger
	sim := engine.NewSimulation(opts)
	frameLog := logging.WithFrame(logger, sim.Frame)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		srv := serveMetrics(cfg.Metrics, collector, &logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	stage(sim, aliens)

	if frames > 0 {
		script(ctx, sim, frames, cfg.Tick.Seconds())
	} else {
		loop := engine.NewLoop(sim, cfg.Tick, &logger)
		loop.OnFrame = autopilot(loop)
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	hud := sim.HUD()
	attached, detached := rec.Counts()
	frameLog.Info().
		Bool("alive", hud.Alive).
		Int("credits", hud.Credits).
		Int("aliens_left", len(sim.Aliens())).
		Int("visuals_attached", attached).
		Int("visuals_detached", detached).
		Strs("upgrades", sim.Ledger().History()).
		Msg("run complete")
	return nil
}

func serveMetrics(cfg config.MetricsConfig, c *observability.SimCollector, logger *zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, c.Handler())
	srv := &http.Server{Addr: cfg.Address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", cfg.Address).Msg("metrics server failed")
		}
	}()
	logger.Info().Str("addr", cfg.Address).Str("path", cfg.Path).Msg("serving metrics")
	return srv
}

func stage(sim *engine.Simulation, aliens int) {
	sim.SpawnPlayer(vmath.Vec3{})
	planet := sim.SpawnPlanet(vmath.Vec3{0, 0, 500}, 80, 400, 5000)
	sim.SpawnSatellite(planet, 140, 0, vmath.Up)
	for i := 0; i < aliens; i++ {
		angle := 2 * math.Pi * float64(i) / float64(aliens)
		sim.SpawnAlien(vmath.Vec3{350 * math.Sin(angle), 0, 350 * math.Cos(angle)})
	}
}

// script steps at a fixed dt, steering with the autopilot and buying upgrades when affordable
func script(ctx context.Context, sim *engine.Simulation, frames int, dt float64) {
	var in input.State
	for i := 0; i < frames; i++ {
		if ctx.Err() != nil {
			return
		}
		steer(sim, &in)
		if in.Quit {
			return
		}
		sim.Step(dt, &in)
		if len(sim.Aliens()) == 0 {
			return
		}
	}
}

func autopilot(loop *engine.Loop) func(*engine.Simulation) {
	return func(sim *engine.Simulation) {
		loop.Send(func(in *input.State) { steer(sim, in) })
		if len(sim.Aliens()) == 0 {
			loop.SendAction(input.ActionQuit)
		}
	}
}

// steer turns toward the selected target and fires when it is ahead
func steer(sim *engine.Simulation, in *input.State) {
	ship := sim.Player()
	if ship == nil || !ship.Alive() {
		in.Apply(input.ActionQuit)
		return
	}
	for _, u := range sim.Ledger().Available() {
		if u.Cost <= sim.Ledger().Credits() {
			in.RequestPurchase(u.ID)
			break
		}
	}

	t, ok := sim.Combat().CurrentTarget()
	if !ok {
		in.CycleTarget = true
		return
	}
	pos, ok := sim.World().Locate(t.Entity)
	if !ok {
		return
	}
	to := vmath.Normalize(pos.Sub(ship.Position))
	side := vmath.Perpendicular(ship.Heading)
	in.Rotate(to.Dot(side)*4, to.Y()*4)
	in.Accelerate(0.3)
	if to.Dot(ship.Heading) > 0.97 {
		in.FirePrimary = true
	}
	if to.Dot(ship.Heading) > 0.9 && t.Distance < 300 {
		in.FireSecondary = true
	}
}
