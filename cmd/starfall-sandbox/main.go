// Command starfall-sandbox flies the simulation in a terminal radar view
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/starfall/audio"
	"github.com/lixenwraith/starfall/config"
	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/engine"
	"github.com/lixenwraith/starfall/input"
	"github.com/lixenwraith/starfall/logging"
	"github.com/lixenwraith/starfall/vmath"
)

const waveSpacing = 300.0

func main() {
	configPath := flag.String("config", "", "config file (json, toml or yaml)")
	logPath := flag.String("log", "starfall.log", "log file, the terminal is owned by the radar")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "starfall-sandbox: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger := logging.New(logging.Options{
		Level: cfg.Log.Level,
		Out:   io.Discard,
		File:  logFile,
	})

	keys := input.DefaultKeyMap()
	if err := keys.Merge(cfg.Keys); err != nil {
		return fmt.Errorf("keys: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	radar := NewRadar(screen)
	opts, err := engine.FromConfig(cfg)
	if err != nil {
		return err
	}
	opts.Scene = radar
	opts.Logger = &logger
	sim := engine.NewSimulation(opts)

	if cfg.Audio.Enabled {
		if spk := startAudio(sim, cfg, &logger); spk != nil {
			defer spk.Close()
		}
	}

	populate(sim)
	wave := 1

	loop := engine.NewLoop(sim, cfg.Tick, &logger)
	loop.OnFrame = func(s *engine.Simulation) {
		if len(s.Aliens()) == 0 && s.Player() != nil && s.Player().Alive() {
			wave++
			spawnWave(s, wave)
		}
		radar.Draw(s)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	core.Go(func() { pollInput(screen, keys, loop) }, func(f *core.Fault) {
		logger.Error().Err(f).Bytes("stack", f.Stack).Msg("input goroutine crashed")
		loop.SendAction(input.ActionQuit)
	})

	logger.Info().Dur("tick", cfg.Tick).Msg("sandbox started")
	err = loop.Run(ctx)
	logger.Info().Int64("ticks", loop.Ticks()).Int64("faults", loop.Faults()).Msg("sandbox stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// startAudio wires cue playback into sim, returns nil when the device is unavailable
func startAudio(sim *engine.Simulation, cfg *config.Config, logger *zerolog.Logger) *audio.Speaker {
	opts := audio.DefaultOptions()
	opts.Volume = cfg.Audio.Volume
	opts.Logger = logger

	spk := audio.NewSpeaker()
	if err := spk.Init(opts.SampleRate); err != nil {
		// Non-fatal, the sandbox runs silent
		logger.Warn().Err(err).Msg("audio init failed")
		return nil
	}
	sim.AddHandler(audio.NewCuePlayer(spk, opts))
	return spk
}

// pollInput forwards terminal keys to the loop until the screen is finalized
func pollInput(screen tcell.Screen, keys *input.KeyMap, loop *engine.Loop) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyRune && ev.Rune() >= '1' && ev.Rune() <= '9' {
				slot := int(ev.Rune() - '1')
				loop.Send(func(st *input.State) { st.RequestPurchase(upgradeSlot(loop, slot)) })
				continue
			}
			loop.SendAction(keys.Lookup(ev))
		}
	}
}

// upgradeSlot maps a number key to the nth available upgrade, runs on the loop goroutine
func upgradeSlot(loop *engine.Loop, slot int) string {
	avail := loop.Simulation().Ledger().Available()
	if slot >= len(avail) {
		return ""
	}
	return avail[slot].ID
}

func populate(sim *engine.Simulation) {
	sim.SpawnPlayer(vmath.Vec3{})

	planet := sim.SpawnPlanet(vmath.Vec3{0, 0, 450}, 60, 320, 4000)
	sim.SpawnSatellite(planet, 110, 0, vmath.Up)
	sim.SpawnSatellite(planet, 160, math.Pi, vmath.Up)

	spawnWave(sim, 1)
}

// spawnWave rings n aliens around the player beyond engagement range
func spawnWave(sim *engine.Simulation, n int) {
	var center vmath.Vec3
	if p := sim.Player(); p != nil {
		center = p.Position
	}
	radius := waveSpacing + 50*float64(n)
	for i := 0; i < n+1; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n+1)
		sim.SpawnAlien(center.Add(vmath.Vec3{radius * math.Sin(angle), 0, radius * math.Cos(angle)}))
	}
}
