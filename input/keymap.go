package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that are awkward as bare config keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// KeyMap binds terminal keys to actions
type KeyMap struct {
	// Special keys (arrows, Enter, Ctrl+*)
	Keys map[tcell.Key]Action

	// Printable runes
	Runes map[rune]Action
}

// DefaultKeyMap returns the sandbox bindings
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Keys: map[tcell.Key]Action{
			tcell.KeyUp:     ActionPitchUp,
			tcell.KeyDown:   ActionPitchDown,
			tcell.KeyLeft:   ActionYawLeft,
			tcell.KeyRight:  ActionYawRight,
			tcell.KeyEnter:  ActionFireSecondary,
			tcell.KeyTab:    ActionCycleTarget,
			tcell.KeyEscape: ActionQuit,
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyCtrlR:  ActionReset,
		},
		Runes: map[rune]Action{
			'w': ActionThrottleUp,
			's': ActionThrottleDown,
			'a': ActionStrafeLeft,
			'd': ActionStrafeRight,
			'q': ActionYawLeft,
			'e': ActionYawRight,
			' ': ActionFirePrimary,
			'f': ActionFireSecondary,
			't': ActionCycleTarget,
			'l': ActionToggleLOD,
		},
	}
}

// Lookup returns the action bound to a key event
func (m *KeyMap) Lookup(ev *tcell.EventKey) Action {
	if ev == nil {
		return ActionNone
	}
	if ev.Key() == tcell.KeyRune {
		return m.Runes[ev.Rune()]
	}
	return m.Keys[ev.Key()]
}

// Handle applies the action bound to ev to state and returns it
func (m *KeyMap) Handle(ev *tcell.EventKey, state *State) Action {
	a := m.Lookup(ev)
	state.Apply(a)
	return a
}

// Bind maps a key name to an action name
// Key names are single runes, rune aliases, or tcell key names such as "Up" or "Ctrl-R"
func (m *KeyMap) Bind(key, action string) error {
	a, err := ParseAction(action)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}

	if r, ok := resolveRune(key); ok {
		if a == ActionNone {
			delete(m.Runes, r)
		} else {
			m.Runes[r] = a
		}
		return nil
	}

	k, ok := resolveKey(key)
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}
	if a == ActionNone {
		delete(m.Keys, k)
	} else {
		m.Keys[k] = a
	}
	return nil
}

// Merge applies key name to action name overrides, stopping at the first invalid entry
func (m *KeyMap) Merge(overrides map[string]string) error {
	for key, action := range overrides {
		if err := m.Bind(key, action); err != nil {
			return fmt.Errorf("keymap: %w", err)
		}
	}
	return nil
}

func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, true
	}
	return 0, false
}

func resolveKey(s string) (tcell.Key, bool) {
	for k, name := range tcell.KeyNames {
		if strings.EqualFold(name, s) {
			return k, true
		}
	}
	return 0, false
}
