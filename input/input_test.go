package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateAxesClamp(t *testing.T) {
	var s State
	s.Accelerate(3)
	s.Strafe(-2)
	s.Rotate(0.5, -7)

	assert.Equal(t, 1.0, s.Throttle)
	assert.Equal(t, -1.0, s.Lateral)
	assert.Equal(t, 0.5, s.Yaw)
	assert.Equal(t, -1.0, s.Pitch)
}

func TestStateClearKeepsQuit(t *testing.T) {
	var s State
	s.Apply(ActionThrottleUp)
	s.Apply(ActionFirePrimary)
	s.Apply(ActionQuit)
	s.RequestPurchase("engine_thrust_1")
	s.RequestPurchase("")
	require.Len(t, s.Purchase, 1)
	assert.False(t, s.Idle())

	s.Clear()

	assert.True(t, s.Quit)
	assert.Zero(t, s.Throttle)
	assert.False(t, s.FirePrimary)
	assert.Empty(t, s.Purchase)
}

func TestStateIdle(t *testing.T) {
	var s State
	assert.True(t, s.Idle())
	s.Apply(ActionCycleTarget)
	assert.False(t, s.Idle())
	s.Clear()
	assert.True(t, s.Idle())
}

func TestDefaultKeyMap(t *testing.T) {
	m := DefaultKeyMap()

	cases := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"rune w", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), ActionThrottleUp},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionFirePrimary},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), ActionCycleTarget},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionYawLeft},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Lookup(tc.ev))
		})
	}
	assert.Equal(t, ActionNone, m.Lookup(nil))
}

func TestKeyMapHandle(t *testing.T) {
	m := DefaultKeyMap()
	var s State

	a := m.Handle(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), &s)
	assert.Equal(t, ActionStrafeRight, a)
	assert.Equal(t, 1.0, s.Lateral)
}

func TestKeyMapMerge(t *testing.T) {
	m := DefaultKeyMap()

	err := m.Merge(map[string]string{
		"x":     "fire_primary",
		"space": "none",
		"Up":    "throttle_up",
	})
	require.NoError(t, err)

	assert.Equal(t, ActionFirePrimary, m.Runes['x'])
	_, bound := m.Runes[' ']
	assert.False(t, bound)
	assert.Equal(t, ActionThrottleUp, m.Keys[tcell.KeyUp])
}

func TestKeyMapBindErrors(t *testing.T) {
	m := DefaultKeyMap()

	err := m.Bind("x", "warp_drive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warp_drive")

	err = m.Bind("NotAKey", "quit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" Fire_Primary ")
	require.NoError(t, err)
	assert.Equal(t, ActionFirePrimary, a)
	assert.Equal(t, "fire_primary", a.String())

	assert.Contains(t, ActionNames(), "toggle_lod")
}
