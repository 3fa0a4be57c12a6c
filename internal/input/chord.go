// Package input captures native input events and turns them into chord activations.
package input

import (
	"strings"
	"time"

	"github.com/whisperwriter/whisperwriter/internal/keycode"
)

// DebounceInterval is the minimum spacing between rising-edge triggers of one chord.
const DebounceInterval = 300 * time.Millisecond

// Slot is one chord requirement: a single key, or any one of several
// interchangeable keys (e.g. either Ctrl).
type Slot struct {
	Keys []keycode.Code
}

// Satisfied reports whether any of the slot's keys is currently pressed.
func (s Slot) Satisfied(pressed map[keycode.Code]struct{}) bool {
	for _, key := range s.Keys {
		if _, ok := pressed[key]; ok {
			return true
		}
	}
	return false
}

// Chord tracks whether a set of required keys is held and latches an
// active/inactive recording state across debounced rising edges.
type Chord struct {
	slots   []Slot
	pressed map[keycode.Code]struct{}

	lastTrigger time.Time
	debounce    time.Duration
	recording   bool

	// singleKey is set for chords with exactly one plain-key slot, which
	// latch on press and unlatch on release regardless of debounce.
	singleKey bool
	targetKey keycode.Code

	now func() time.Time
}

// NewChord builds a chord from parsed requirement slots.
func NewChord(slots []Slot) *Chord {
	c := &Chord{
		slots:    slots,
		pressed:  make(map[keycode.Code]struct{}),
		debounce: DebounceInterval,
		now:      time.Now,
	}
	if len(slots) == 1 && len(slots[0].Keys) == 1 {
		c.singleKey = true
		c.targetKey = slots[0].Keys[0]
	}
	return c
}

// Empty reports whether the chord has no requirements (unset configuration).
func (c *Chord) Empty() bool {
	return len(c.slots) == 0
}

// IsActive reports instantaneous satisfaction: every slot has a pressed key.
func (c *Chord) IsActive() bool {
	if len(c.slots) == 0 {
		return false
	}
	for _, slot := range c.slots {
		if !slot.Satisfied(c.pressed) {
			return false
		}
	}
	return true
}

// Update applies one input event and returns the latched recording state.
//
// Pressed-key bookkeeping is unconditional: keys irrelevant to this chord are
// still tracked so alternative-set slots observe every transition. Single-key
// chords latch on a debounced press and unlatch on release with no debounce
// gate; multi-key chords latch when the full set is satisfied and the
// debounce interval has elapsed, and unlatch the moment satisfaction is lost.
func (c *Chord) Update(key keycode.Code, event keycode.InputEvent) bool {
	now := c.now()

	if event.IsPress() {
		c.pressed[key] = struct{}{}
	} else {
		delete(c.pressed, key)
	}

	if c.singleKey && key == c.targetKey {
		if event.IsPress() {
			if now.Sub(c.lastTrigger) >= c.debounce {
				c.lastTrigger = now
				c.recording = true
				return true
			}
			return c.recording
		}
		c.recording = false
		return false
	}
	if c.singleKey {
		return c.recording
	}

	active := c.IsActive()
	if active && now.Sub(c.lastTrigger) >= c.debounce {
		c.lastTrigger = now
		c.recording = true
		return true
	}
	if !active && c.recording {
		c.recording = false
		return false
	}
	return c.recording
}

// modifier tokens that expand to an either-side alternative set.
var modifierSlots = map[string][]keycode.Code{
	"ctrl":  {keycode.CtrlLeft, keycode.CtrlRight},
	"alt":   {keycode.AltLeft, keycode.AltRight},
	"shift": {keycode.ShiftLeft, keycode.ShiftRight},
	"meta":  {keycode.MetaLeft, keycode.MetaRight},
}

// side-qualified modifier tokens.
var sidedModifiers = map[string]keycode.Code{
	"lctrl": keycode.CtrlLeft, "rctrl": keycode.CtrlRight,
	"lalt": keycode.AltLeft, "ralt": keycode.AltRight,
	"lshift": keycode.ShiftLeft, "rshift": keycode.ShiftRight,
	"lmeta": keycode.MetaLeft, "rmeta": keycode.MetaRight,
}

var digitTokens = map[string]keycode.Code{
	"0": keycode.Zero, "1": keycode.One, "2": keycode.Two,
	"3": keycode.Three, "4": keycode.Four, "5": keycode.Five,
	"6": keycode.Six, "7": keycode.Seven, "8": keycode.Eight,
	"9": keycode.Nine,
}

var numpadTokens = map[string]keycode.Code{
	"numpad0": keycode.Numpad0, "numpad1": keycode.Numpad1,
	"numpad2": keycode.Numpad2, "numpad3": keycode.Numpad3,
	"numpad4": keycode.Numpad4, "numpad5": keycode.Numpad5,
	"numpad6": keycode.Numpad6, "numpad7": keycode.Numpad7,
	"numpad8": keycode.Numpad8, "numpad9": keycode.Numpad9,
	"multiply": keycode.NumpadMultiply, "add": keycode.NumpadAdd,
	"subtract": keycode.NumpadSubtract, "decimal": keycode.NumpadDecimal,
	"divide": keycode.NumpadDivide,
}

// ParseCombination parses a "+"-joined key combination string into chord
// requirement slots. Unrecognized tokens are dropped silently; authors get a
// degraded chord rather than an error.
func ParseCombination(combination string) []Slot {
	combination = strings.TrimSpace(combination)
	if combination == "" {
		return nil
	}

	var slots []Slot
	for _, token := range strings.Split(strings.ToLower(combination), "+") {
		token = strings.TrimSpace(token)
		switch {
		case token == "":
		case modifierSlots[token] != nil:
			keys := make([]keycode.Code, len(modifierSlots[token]))
			copy(keys, modifierSlots[token])
			slots = append(slots, Slot{Keys: keys})
		case sidedModifiers[token] != 0:
			slots = append(slots, Slot{Keys: []keycode.Code{sidedModifiers[token]}})
		case digitTokens[token] != 0:
			slots = append(slots, Slot{Keys: []keycode.Code{digitTokens[token]}})
		case numpadTokens[token] != 0:
			slots = append(slots, Slot{Keys: []keycode.Code{numpadTokens[token]}})
		default:
			if code, ok := keycode.FromName(token); ok {
				slots = append(slots, Slot{Keys: []keycode.Code{code}})
			}
		}
	}
	return slots
}
