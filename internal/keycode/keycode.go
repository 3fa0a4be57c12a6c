// Package keycode defines the platform-independent key and input-event vocabulary.
package keycode

import "strings"

// Code identifies one physical key or mouse button.
type Code uint16

// CodeUnknown is the zero value; backends drop events they cannot map to a Code.
const CodeUnknown Code = 0

const (
	// Modifier keys, left/right variants kept distinct so chords can
	// require a specific side or accept either.
	CtrlLeft Code = iota + 1
	CtrlRight
	ShiftLeft
	ShiftRight
	AltLeft
	AltRight
	MetaLeft
	MetaRight

	// Function keys
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24

	// Number row
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Zero

	// Letters
	A
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z

	// Special keys
	Space
	Enter
	Tab
	Backspace
	Esc
	Insert
	Delete
	Home
	End
	PageUp
	PageDown
	CapsLock
	NumLock
	ScrollLock
	Pause
	PrintScreen

	// Arrow keys
	Up
	Down
	Left
	Right

	// Numpad
	Numpad0
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	NumpadMultiply
	NumpadAdd
	NumpadSubtract
	NumpadDecimal
	NumpadDivide
	NumpadEnter

	// Punctuation
	Minus
	Equals
	LeftBracket
	RightBracket
	Semicolon
	Quote
	Backquote
	Backslash
	Comma
	Period
	Slash

	// Media keys
	Mute
	VolumeDown
	VolumeUp
	PlayPause
	NextTrack
	PrevTrack
	MediaPlay
	MediaPause
	MediaPlayPause
	MediaStop
	MediaPrevious
	MediaNext
	MediaRewind
	MediaFastForward
	AudioMute
	AudioVolumeUp
	AudioVolumeDown
	MediaSelect

	// Application and special-function keys
	WWW
	Mail
	Calculator
	Computer
	AppSearch
	AppHome
	AppBack
	AppForward
	AppStop
	AppRefresh
	AppBookmarks
	BrightnessDown
	BrightnessUp
	DisplaySwitch
	KbdIllumToggle
	KbdIllumDown
	KbdIllumUp
	Eject
	Sleep
	Wake
	Emoji
	Menu
	Clear
	Lock

	// Mouse buttons
	MouseLeft
	MouseRight
	MouseMiddle
	MouseBack
	MouseForward
	MouseSide1
	MouseSide2
	MouseSide3
)

// InputEvent classifies one key or mouse-button transition.
type InputEvent uint8

const (
	KeyPress InputEvent = iota + 1
	KeyRelease
	MousePress
	MouseRelease
)

// IsPress reports whether the event is a press (key or mouse).
func (e InputEvent) IsPress() bool {
	return e == KeyPress || e == MousePress
}

// String returns the event name used in logs.
func (e InputEvent) String() string {
	switch e {
	case KeyPress:
		return "key_press"
	case KeyRelease:
		return "key_release"
	case MousePress:
		return "mouse_press"
	case MouseRelease:
		return "mouse_release"
	default:
		return "unknown"
	}
}

// names is the canonical lowercase name space used by combination parsing.
var names = map[string]Code{
	"ctrl_left": CtrlLeft, "ctrl_right": CtrlRight,
	"shift_left": ShiftLeft, "shift_right": ShiftRight,
	"alt_left": AltLeft, "alt_right": AltRight,
	"meta_left": MetaLeft, "meta_right": MetaRight,

	"f1": F1, "f2": F2, "f3": F3, "f4": F4, "f5": F5, "f6": F6,
	"f7": F7, "f8": F8, "f9": F9, "f10": F10, "f11": F11, "f12": F12,
	"f13": F13, "f14": F14, "f15": F15, "f16": F16, "f17": F17, "f18": F18,
	"f19": F19, "f20": F20, "f21": F21, "f22": F22, "f23": F23, "f24": F24,

	"one": One, "two": Two, "three": Three, "four": Four, "five": Five,
	"six": Six, "seven": Seven, "eight": Eight, "nine": Nine, "zero": Zero,

	"a": A, "b": B, "c": C, "d": D, "e": E, "f": F, "g": G, "h": H,
	"i": I, "j": J, "k": K, "l": L, "m": M, "n": N, "o": O, "p": P,
	"q": Q, "r": R, "s": S, "t": T, "u": U, "v": V, "w": W, "x": X,
	"y": Y, "z": Z,

	"space": Space, "enter": Enter, "tab": Tab, "backspace": Backspace,
	"esc": Esc, "insert": Insert, "delete": Delete, "home": Home,
	"end": End, "page_up": PageUp, "page_down": PageDown,
	"caps_lock": CapsLock, "num_lock": NumLock, "scroll_lock": ScrollLock,
	"pause": Pause, "print_screen": PrintScreen,

	"up": Up, "down": Down, "left": Left, "right": Right,

	"numpad_0": Numpad0, "numpad_1": Numpad1, "numpad_2": Numpad2,
	"numpad_3": Numpad3, "numpad_4": Numpad4, "numpad_5": Numpad5,
	"numpad_6": Numpad6, "numpad_7": Numpad7, "numpad_8": Numpad8,
	"numpad_9": Numpad9, "numpad_multiply": NumpadMultiply,
	"numpad_add": NumpadAdd, "numpad_subtract": NumpadSubtract,
	"numpad_decimal": NumpadDecimal, "numpad_divide": NumpadDivide,
	"numpad_enter": NumpadEnter,

	"minus": Minus, "equals": Equals, "left_bracket": LeftBracket,
	"right_bracket": RightBracket, "semicolon": Semicolon, "quote": Quote,
	"backquote": Backquote, "backslash": Backslash, "comma": Comma,
	"period": Period, "slash": Slash,

	"mute": Mute, "volume_down": VolumeDown, "volume_up": VolumeUp,
	"play_pause": PlayPause, "next_track": NextTrack, "prev_track": PrevTrack,
	"media_play": MediaPlay, "media_pause": MediaPause,
	"media_play_pause": MediaPlayPause, "media_stop": MediaStop,
	"media_previous": MediaPrevious, "media_next": MediaNext,
	"media_rewind": MediaRewind, "media_fast_forward": MediaFastForward,
	"audio_mute": AudioMute, "audio_volume_up": AudioVolumeUp,
	"audio_volume_down": AudioVolumeDown, "media_select": MediaSelect,

	"www": WWW, "mail": Mail, "calculator": Calculator, "computer": Computer,
	"app_search": AppSearch, "app_home": AppHome, "app_back": AppBack,
	"app_forward": AppForward, "app_stop": AppStop, "app_refresh": AppRefresh,
	"app_bookmarks": AppBookmarks, "brightness_down": BrightnessDown,
	"brightness_up": BrightnessUp, "display_switch": DisplaySwitch,
	"kbd_illum_toggle": KbdIllumToggle, "kbd_illum_down": KbdIllumDown,
	"kbd_illum_up": KbdIllumUp, "eject": Eject, "sleep": Sleep, "wake": Wake,
	"emoji": Emoji, "menu": Menu, "clear": Clear, "lock": Lock,

	"mouse_left": MouseLeft, "mouse_right": MouseRight,
	"mouse_middle": MouseMiddle, "mouse_back": MouseBack,
	"mouse_forward": MouseForward, "mouse_side1": MouseSide1,
	"mouse_side2": MouseSide2, "mouse_side3": MouseSide3,
}

var codeNames = func() map[Code]string {
	m := make(map[Code]string, len(names))
	for name, code := range names {
		m[code] = name
	}
	return m
}()

// FromName resolves a canonical key name, case-insensitively.
func FromName(name string) (Code, bool) {
	code, ok := names[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// String returns the canonical lowercase name, or "unknown".
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsMouse reports whether the code identifies a mouse button.
func (c Code) IsMouse() bool {
	return c >= MouseLeft && c <= MouseSide3
}
