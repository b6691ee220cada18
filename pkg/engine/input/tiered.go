package input

import (
	"sort"
	"time"

	"github.com/zyedidia/generic/mapset"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionMoveForward
	ActionMoveBack
	ActionStrafeLeft
	ActionStrafeRight
	ActionTurnLeft
	ActionTurnRight

	// Combat
	ActionFire
	ActionWeapon1
	ActionWeapon2
	ActionWeapon3

	// Meta / UI
	ActionPause
	ActionQuit
	ActionScreenshot
	ActionDumpMap
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "w", "arrow_up", "mouse_left").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// defaultBindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
func defaultBindings() map[string]Action {
	return map[string]Action{
		"w":           ActionMoveForward,
		"arrow_up":    ActionMoveForward,
		"s":           ActionMoveBack,
		"arrow_down":  ActionMoveBack,
		"a":           ActionStrafeLeft,
		"d":           ActionStrafeRight,
		"arrow_left":  ActionTurnLeft,
		"arrow_right": ActionTurnRight,

		"control_left": ActionFire,
		"mouse_left":   ActionFire,
		" ":            ActionFire,
		"1":            ActionWeapon1,
		"2":            ActionWeapon2,
		"3":            ActionWeapon3,

		"escape": ActionPause,
		"p":      ActionPause,
		"q":      ActionQuit,
		"f12":    ActionScreenshot,
		"f9":     ActionDumpMap,
	}
}

var bindings = defaultBindings()

// reserved codes cannot be rebound away from their action.
var reserved = map[string]bool{
	"escape":     true,
	"mouse_left": true,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveForward:
		return "Move Forward"
	case ActionMoveBack:
		return "Move Back"
	case ActionStrafeLeft:
		return "Strafe Left"
	case ActionStrafeRight:
		return "Strafe Right"
	case ActionTurnLeft:
		return "Turn Left"
	case ActionTurnRight:
		return "Turn Right"
	case ActionFire:
		return "Fire"
	case ActionWeapon1:
		return "Weapon 1"
	case ActionWeapon2:
		return "Weapon 2"
	case ActionWeapon3:
		return "Weapon 3"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	case ActionScreenshot:
		return "Screenshot"
	case ActionDumpMap:
		return "Dump Map"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Ensure stable ordering of codes within each action so UI doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single code.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved[c] {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved[code] {
		bindings[code] = action
	}
}

// ResetBindings restores the default bindings.
func ResetBindings() {
	bindings = defaultBindings()
}

// Held is the set of actions active during one tick. Taken actions stay held
// but are reported by Take only once per press.
type Held struct {
	actions mapset.Set[Action]
	taken   mapset.Set[Action]
}

// NewHeld creates an empty set.
func NewHeld() *Held {
	return &Held{
		actions: mapset.New[Action](),
		taken:   mapset.New[Action](),
	}
}

// Press marks the action bound to code as held.
func (h *Held) Press(ev DebouncedInput) {
	if intent := MapToIntent(ev); intent.Action != ActionNone {
		h.actions.Put(intent.Action)
	}
}

// Set marks a as held.
func (h *Held) Set(a Action) {
	h.actions.Put(a)
}

// Release clears a.
func (h *Held) Release(a Action) {
	h.actions.Remove(a)
	h.taken.Remove(a)
}

// Take reports whether a is held and has not been taken since it was pressed.
func (h *Held) Take(a Action) bool {
	if !h.actions.Has(a) || h.taken.Has(a) {
		return false
	}
	h.taken.Put(a)
	return true
}

// Has reports whether a is held.
func (h *Held) Has(a Action) bool {
	return h.actions.Has(a)
}

// Clear releases every action.
func (h *Held) Clear() {
	h.actions = mapset.New[Action]()
	h.taken = mapset.New[Action]()
}
