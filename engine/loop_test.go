package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/input"
	"github.com/lixenwraith/starfall/vmath"
)

func TestLoop_QuitStops(t *testing.T) {
	s, _ := newTestSim(t, nil)
	l := NewLoop(s, time.Millisecond, nil)
	require.True(t, l.SendAction(input.ActionQuit))
	assert.False(t, l.SendAction(input.ActionNone))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, l.Run(ctx))
	assert.Equal(t, int64(1), l.Ticks())
	assert.Equal(t, int64(1), s.Frame())
}

func TestLoop_ContextCancel(t *testing.T) {
	s, _ := newTestSim(t, nil)
	l := NewLoop(s, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	l.OnFrame = func(*Simulation) {
		if l.Ticks() >= 3 {
			cancel()
		}
	}

	err := l.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, l.Ticks(), int64(3))
}

func TestLoop_RecoversFrameFault(t *testing.T) {
	s, _ := newTestSim(t, nil)
	s.SpawnPlayer(vmath.Vec3{})
	l := NewLoop(s, time.Millisecond, nil)

	l.OnFrame = func(sim *Simulation) {
		switch l.Ticks() {
		case 1:
			panic("render failed")
		case 3:
			l.SendAction(input.ActionQuit)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, l.Run(ctx))
	assert.Equal(t, int64(1), l.Faults())
	assert.Equal(t, int64(4), l.Ticks())
}

func TestLoop_InputReachesSimulation(t *testing.T) {
	s, _ := newTestSim(t, nil)
	ship := s.SpawnPlayer(vmath.Vec3{})
	l := NewLoop(s, time.Millisecond, nil)

	l.OnFrame = func(sim *Simulation) {
		if l.Ticks() < 20 {
			l.Send(func(st *input.State) { st.Accelerate(1) })
			return
		}
		l.SendAction(input.ActionQuit)
	}
	l.Send(func(st *input.State) { st.Accelerate(1) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, l.Run(ctx))
	assert.Greater(t, ship.Position.Z(), 0.0)
}
