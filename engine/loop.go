package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/input"
	"github.com/lixenwraith/starfall/parameter"
)

// inputBacklog bounds queued input mutations between ticks
const inputBacklog = 256

// Loop drives a Simulation on a fixed tick and owns its input state
// Other goroutines hand input over with Send; only the Run goroutine touches the simulation
type Loop struct {
	sim    *Simulation
	tick   time.Duration
	inputs chan func(*input.State)
	state  input.State

	// OnFrame runs on the loop goroutine after every step, typically to render
	OnFrame func(*Simulation)

	ticks  atomic.Int64
	faults atomic.Int64
	log    zerolog.Logger
}

// NewLoop creates a loop, non-positive tick uses parameter.TickInterval
func NewLoop(sim *Simulation, tick time.Duration, logger *zerolog.Logger) *Loop {
	if tick <= 0 {
		tick = parameter.TickInterval
	}
	log := zerolog.Nop()
	if logger != nil {
		log = logger.With().Str("component", "loop").Logger()
	}
	return &Loop{
		sim:    sim,
		tick:   tick,
		inputs: make(chan func(*input.State), inputBacklog),
		log:    log,
	}
}

// Send queues fn to mutate the input state before the next step
// Returns false when the backlog is full and the input was dropped
func (l *Loop) Send(fn func(*input.State)) bool {
	select {
	case l.inputs <- fn:
		return true
	default:
		return false
	}
}

// SendAction queues a bound action
func (l *Loop) SendAction(a input.Action) bool {
	if a == input.ActionNone {
		return false
	}
	return l.Send(func(s *input.State) { s.Apply(a) })
}

// Simulation returns the driven simulation, only touch it from the loop goroutine
func (l *Loop) Simulation() *Simulation { return l.sim }

// Ticks returns completed steps
func (l *Loop) Ticks() int64 { return l.ticks.Load() }

// Faults returns recovered panics from steps or frame hooks
func (l *Loop) Faults() int64 { return l.faults.Load() }

// Run steps the simulation until ctx is done or a quit is requested
// Returns ctx.Err() on cancellation and nil on quit
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case fn := <-l.inputs:
			fn(&l.state)

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			l.drain()
			quit := l.state.Quit

			l.guard("step", func() { l.sim.Step(dt, &l.state) })
			l.ticks.Add(1)
			if l.OnFrame != nil {
				l.guard("frame", func() { l.OnFrame(l.sim) })
			}

			if quit {
				l.log.Info().Int64("ticks", l.ticks.Load()).Msg("quit requested")
				return nil
			}
		}
	}
}

// drain applies every queued input without blocking
func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.inputs:
			fn(&l.state)
		default:
			return
		}
	}
}

func (l *Loop) guard(stage string, fn func()) {
	if err := core.Guard(fn); err != nil {
		l.faults.Add(1)
		l.log.Error().Err(err).Str("stage", stage).Msg("recovered fault")
	}
}
