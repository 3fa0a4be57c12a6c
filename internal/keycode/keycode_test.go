package keycode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromNameResolvesCanonicalNames(t *testing.T) {
	tests := []struct {
		name string
		want Code
	}{
		{name: "ctrl_left", want: CtrlLeft},
		{name: "shift_right", want: ShiftRight},
		{name: "f13", want: F13},
		{name: "space", want: Space},
		{name: "numpad_5", want: Numpad5},
		{name: "mouse_middle", want: MouseMiddle},
		{name: "media_play_pause", want: MediaPlayPause},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := FromName(tc.name)
			require.True(t, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFromNameIsCaseInsensitive(t *testing.T) {
	got, ok := FromName("  Print_Screen ")
	require.True(t, ok)
	require.Equal(t, PrintScreen, got)

	got, ok = FromName("ESC")
	require.True(t, ok)
	require.Equal(t, Esc, got)
}

func TestFromNameUnknownToken(t *testing.T) {
	_, ok := FromName("hyperkey")
	require.False(t, ok)

	_, ok = FromName("")
	require.False(t, ok)
}

func TestStringRoundTrip(t *testing.T) {
	for name := range names {
		code, ok := FromName(name)
		require.True(t, ok)
		require.Equal(t, name, code.String())
	}
	require.Equal(t, "unknown", CodeUnknown.String())
}

func TestInputEventClassification(t *testing.T) {
	require.True(t, KeyPress.IsPress())
	require.True(t, MousePress.IsPress())
	require.False(t, KeyRelease.IsPress())
	require.False(t, MouseRelease.IsPress())
	require.Equal(t, "key_press", KeyPress.String())
	require.Equal(t, "mouse_release", MouseRelease.String())
}

func TestMouseCodeRange(t *testing.T) {
	require.True(t, MouseLeft.IsMouse())
	require.True(t, MouseSide3.IsMouse())
	require.False(t, Space.IsMouse())
	require.False(t, CtrlLeft.IsMouse())
}
