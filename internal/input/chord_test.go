package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/whisperwriter/whisperwriter/internal/keycode"
)

// fakeClock drives chord debounce timing deterministically.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestChord(t *testing.T, combination string) (*Chord, *fakeClock) {
	t.Helper()
	clock := &fakeClock{current: time.Unix(1000, 0)}
	chord := NewChord(ParseCombination(combination))
	chord.now = clock.now
	return chord, clock
}

func TestSingleKeyChordLatchOnPressReleaseOnRelease(t *testing.T) {
	chord, clock := newTestChord(t, "f9")

	require.True(t, chord.Update(keycode.F9, keycode.KeyPress))
	require.False(t, chord.Update(keycode.F9, keycode.KeyRelease))

	// Release is never gated by debounce.
	clock.advance(DebounceInterval)
	require.True(t, chord.Update(keycode.F9, keycode.KeyPress))
	clock.advance(10 * time.Millisecond)
	require.False(t, chord.Update(keycode.F9, keycode.KeyRelease))
}

func TestSingleKeyChordDebounceIdempotence(t *testing.T) {
	chord, clock := newTestChord(t, "f9")

	edges := 0
	update := func(event keycode.InputEvent) {
		was := chord.IsActive()
		is := chord.Update(keycode.F9, event)
		if !was && is {
			edges++
		}
	}

	update(keycode.KeyPress)
	update(keycode.KeyRelease)
	clock.advance(50 * time.Millisecond)
	update(keycode.KeyPress)

	// Two presses inside the debounce window produce exactly one rising edge.
	require.Equal(t, 1, edges)

	update(keycode.KeyRelease)
	clock.advance(DebounceInterval)
	update(keycode.KeyPress)
	require.Equal(t, 2, edges)
}

func TestSingleKeyChordIgnoresUnrelatedKeys(t *testing.T) {
	chord, _ := newTestChord(t, "f9")

	require.True(t, chord.Update(keycode.F9, keycode.KeyPress))
	// Unrelated keys return the latched state unchanged.
	require.True(t, chord.Update(keycode.A, keycode.KeyPress))
	require.True(t, chord.Update(keycode.A, keycode.KeyRelease))
	require.False(t, chord.Update(keycode.F9, keycode.KeyRelease))
	require.False(t, chord.Update(keycode.A, keycode.KeyPress))
}

func TestMultiKeyChordActivation(t *testing.T) {
	chord, _ := newTestChord(t, "lctrl+lshift+r")

	require.False(t, chord.Update(keycode.CtrlLeft, keycode.KeyPress))
	require.False(t, chord.Update(keycode.ShiftLeft, keycode.KeyPress))
	require.False(t, chord.IsActive())

	require.True(t, chord.Update(keycode.R, keycode.KeyPress))
	require.True(t, chord.IsActive())

	// Losing any slot unlatches immediately, independent of debounce.
	require.False(t, chord.Update(keycode.ShiftLeft, keycode.KeyRelease))
	require.False(t, chord.IsActive())
}

func TestMultiKeyChordDebounceGatesOnlyLatchOn(t *testing.T) {
	chord, clock := newTestChord(t, "lctrl+r")

	require.False(t, chord.Update(keycode.CtrlLeft, keycode.KeyPress))
	require.True(t, chord.Update(keycode.R, keycode.KeyPress))
	require.False(t, chord.Update(keycode.R, keycode.KeyRelease))

	// Re-satisfying inside the debounce window does not re-latch.
	clock.advance(50 * time.Millisecond)
	require.False(t, chord.Update(keycode.R, keycode.KeyPress))

	chord.Update(keycode.R, keycode.KeyRelease)
	clock.advance(DebounceInterval)
	require.True(t, chord.Update(keycode.R, keycode.KeyPress))
}

func TestAlternativeSetSlotSatisfaction(t *testing.T) {
	tests := []struct {
		name string
		key  keycode.Code
	}{
		{name: "left ctrl", key: keycode.CtrlLeft},
		{name: "right ctrl", key: keycode.CtrlRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chord, _ := newTestChord(t, "ctrl+space")
			chord.Update(tc.key, keycode.KeyPress)
			require.True(t, chord.Update(keycode.Space, keycode.KeyPress))
		})
	}
}

func TestAlternativeSetUnlatchesOnlyWhenAllSidesReleased(t *testing.T) {
	chord, _ := newTestChord(t, "ctrl+space")

	chord.Update(keycode.CtrlLeft, keycode.KeyPress)
	chord.Update(keycode.CtrlRight, keycode.KeyPress)
	require.True(t, chord.Update(keycode.Space, keycode.KeyPress))

	// One ctrl still held keeps the slot satisfied.
	require.True(t, chord.Update(keycode.CtrlLeft, keycode.KeyRelease))
	require.True(t, chord.IsActive())

	require.False(t, chord.Update(keycode.CtrlRight, keycode.KeyRelease))
	require.False(t, chord.IsActive())
}

func TestPressedKeyBookkeepingIsUnconditional(t *testing.T) {
	chord, _ := newTestChord(t, "lctrl+r")

	// Keys irrelevant to the chord are still tracked.
	chord.Update(keycode.X, keycode.KeyPress)
	_, tracked := chord.pressed[keycode.X]
	require.True(t, tracked)

	chord.Update(keycode.X, keycode.KeyRelease)
	_, tracked = chord.pressed[keycode.X]
	require.False(t, tracked)
}

func TestParseCombination(t *testing.T) {
	slots := ParseCombination("ctrl+shift+r")
	require.Len(t, slots, 3)

	hasSlot := func(keys ...keycode.Code) bool {
		for _, slot := range slots {
			if len(slot.Keys) != len(keys) {
				continue
			}
			match := true
			for i, key := range keys {
				if slot.Keys[i] != key {
					match = false
					break
				}
			}
			if match {
				return true
			}
		}
		return false
	}

	require.True(t, hasSlot(keycode.CtrlLeft, keycode.CtrlRight))
	require.True(t, hasSlot(keycode.ShiftLeft, keycode.ShiftRight))
	require.True(t, hasSlot(keycode.R))
}

func TestParseCombinationDropsUnknownTokens(t *testing.T) {
	slots := ParseCombination("ctrl+unknowntoken")
	require.Len(t, slots, 1)
	require.Equal(t, []keycode.Code{keycode.CtrlLeft, keycode.CtrlRight}, slots[0].Keys)
}

func TestParseCombinationTokenClasses(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []keycode.Code
	}{
		{name: "sided modifier", input: "rshift", want: []keycode.Code{keycode.ShiftRight}},
		{name: "digit", input: "7", want: []keycode.Code{keycode.Seven}},
		{name: "numpad named", input: "numpad3", want: []keycode.Code{keycode.Numpad3}},
		{name: "numpad operation", input: "subtract", want: []keycode.Code{keycode.NumpadSubtract}},
		{name: "keycode name", input: "Print_Screen", want: []keycode.Code{keycode.PrintScreen}},
		{name: "mouse button", input: "mouse_back", want: []keycode.Code{keycode.MouseBack}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slots := ParseCombination(tc.input)
			require.Len(t, slots, 1)
			require.Equal(t, tc.want, slots[0].Keys)
		})
	}
}

func TestParseCombinationEmpty(t *testing.T) {
	require.Nil(t, ParseCombination(""))
	require.Nil(t, ParseCombination("   "))
	require.Nil(t, ParseCombination("nosuchkey"))
}

func TestEmptyChordNeverActivates(t *testing.T) {
	chord := NewChord(nil)
	require.True(t, chord.Empty())
	require.False(t, chord.IsActive())
	require.False(t, chord.Update(keycode.Space, keycode.KeyPress))
}
