package input

import (
	"fmt"
	"sort"
	"strings"
)

// Action is a discrete control bound to a key
type Action uint8

const (
	ActionNone Action = iota
	ActionThrottleUp
	ActionThrottleDown
	ActionStrafeLeft
	ActionStrafeRight
	ActionYawLeft
	ActionYawRight
	ActionPitchUp
	ActionPitchDown
	ActionFirePrimary
	ActionFireSecondary
	ActionCycleTarget
	ActionToggleLOD
	ActionReset
	ActionQuit
)

// actionNames maps canonical config names to actions
// "none" unbinds a key
var actionNames = map[string]Action{
	"none":           ActionNone,
	"throttle_up":    ActionThrottleUp,
	"throttle_down":  ActionThrottleDown,
	"strafe_left":    ActionStrafeLeft,
	"strafe_right":   ActionStrafeRight,
	"yaw_left":       ActionYawLeft,
	"yaw_right":      ActionYawRight,
	"pitch_up":       ActionPitchUp,
	"pitch_down":     ActionPitchDown,
	"fire_primary":   ActionFirePrimary,
	"fire_secondary": ActionFireSecondary,
	"cycle_target":   ActionCycleTarget,
	"toggle_lod":     ActionToggleLOD,
	"reset":          ActionReset,
	"quit":           ActionQuit,
}

func (a Action) String() string {
	for name, act := range actionNames {
		if act == a {
			return name
		}
	}
	return "unknown"
}

// ParseAction resolves a canonical action name, case-insensitive
func ParseAction(name string) (Action, error) {
	a, ok := actionNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ActionNone, fmt.Errorf("unknown action %q", name)
	}
	return a, nil
}

// ActionNames returns all bindable action names sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionNames))
	for n := range actionNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
