//go:build linux

package input

import "github.com/whisperwriter/whisperwriter/internal/keycode"

// evdevKeyMap translates Linux KEY_*/BTN_* scancodes to the internal code
// space. Unlisted scancodes are dropped; the hardware code space is much
// larger than what chords can reference.
var evdevKeyMap = map[uint16]keycode.Code{
	// Modifier keys
	29:  keycode.CtrlLeft,   // KEY_LEFTCTRL
	97:  keycode.CtrlRight,  // KEY_RIGHTCTRL
	42:  keycode.ShiftLeft,  // KEY_LEFTSHIFT
	54:  keycode.ShiftRight, // KEY_RIGHTSHIFT
	56:  keycode.AltLeft,    // KEY_LEFTALT
	100: keycode.AltRight,   // KEY_RIGHTALT
	125: keycode.MetaLeft,   // KEY_LEFTMETA
	126: keycode.MetaRight,  // KEY_RIGHTMETA

	// Function keys
	59: keycode.F1, 60: keycode.F2, 61: keycode.F3, 62: keycode.F4,
	63: keycode.F5, 64: keycode.F6, 65: keycode.F7, 66: keycode.F8,
	67: keycode.F9, 68: keycode.F10, 87: keycode.F11, 88: keycode.F12,
	183: keycode.F13, 184: keycode.F14, 185: keycode.F15, 186: keycode.F16,
	187: keycode.F17, 188: keycode.F18, 189: keycode.F19, 190: keycode.F20,
	191: keycode.F21, 192: keycode.F22, 193: keycode.F23, 194: keycode.F24,

	// Number row
	2: keycode.One, 3: keycode.Two, 4: keycode.Three, 5: keycode.Four,
	6: keycode.Five, 7: keycode.Six, 8: keycode.Seven, 9: keycode.Eight,
	10: keycode.Nine, 11: keycode.Zero,

	// Letters
	30: keycode.A, 48: keycode.B, 46: keycode.C, 32: keycode.D,
	18: keycode.E, 33: keycode.F, 34: keycode.G, 35: keycode.H,
	23: keycode.I, 36: keycode.J, 37: keycode.K, 38: keycode.L,
	50: keycode.M, 49: keycode.N, 24: keycode.O, 25: keycode.P,
	16: keycode.Q, 19: keycode.R, 31: keycode.S, 20: keycode.T,
	22: keycode.U, 47: keycode.V, 17: keycode.W, 45: keycode.X,
	21: keycode.Y, 44: keycode.Z,

	// Special keys
	57:  keycode.Space,
	28:  keycode.Enter,
	15:  keycode.Tab,
	14:  keycode.Backspace,
	1:   keycode.Esc,
	110: keycode.Insert,
	111: keycode.Delete,
	102: keycode.Home,
	107: keycode.End,
	104: keycode.PageUp,
	109: keycode.PageDown,
	58:  keycode.CapsLock,
	69:  keycode.NumLock,
	70:  keycode.ScrollLock,
	119: keycode.Pause,
	99:  keycode.PrintScreen, // KEY_SYSRQ

	// Arrow keys
	103: keycode.Up,
	108: keycode.Down,
	105: keycode.Left,
	106: keycode.Right,

	// Numpad
	82: keycode.Numpad0, 79: keycode.Numpad1, 80: keycode.Numpad2,
	81: keycode.Numpad3, 75: keycode.Numpad4, 76: keycode.Numpad5,
	77: keycode.Numpad6, 71: keycode.Numpad7, 72: keycode.Numpad8,
	73: keycode.Numpad9,
	78: keycode.NumpadAdd,      // KEY_KPPLUS
	74: keycode.NumpadSubtract, // KEY_KPMINUS
	55: keycode.NumpadMultiply, // KEY_KPASTERISK
	98: keycode.NumpadDivide,   // KEY_KPSLASH
	83: keycode.NumpadDecimal,  // KEY_KPDOT
	96: keycode.NumpadEnter,    // KEY_KPENTER

	// Punctuation
	12: keycode.Minus,
	13: keycode.Equals,
	26: keycode.LeftBracket,
	27: keycode.RightBracket,
	39: keycode.Semicolon,
	40: keycode.Quote,
	41: keycode.Backquote,
	43: keycode.Backslash,
	51: keycode.Comma,
	52: keycode.Period,
	53: keycode.Slash,

	// Media and application keys
	113: keycode.Mute,
	114: keycode.VolumeDown,
	115: keycode.VolumeUp,
	164: keycode.MediaPlayPause,
	163: keycode.MediaNext,
	165: keycode.MediaPrevious,
	166: keycode.MediaStop, // KEY_STOPCD
	168: keycode.MediaRewind,
	208: keycode.MediaFastForward,
	226: keycode.MediaSelect, // KEY_MEDIA
	150: keycode.WWW,
	155: keycode.Mail,
	140: keycode.Calculator,
	157: keycode.Computer,
	217: keycode.AppSearch,
	172: keycode.AppHome,
	158: keycode.AppBack,
	159: keycode.AppForward,
	128: keycode.AppStop,
	173: keycode.AppRefresh,
	156: keycode.AppBookmarks,
	224: keycode.BrightnessDown,
	225: keycode.BrightnessUp,
	227: keycode.DisplaySwitch, // KEY_SWITCHVIDEOMODE
	228: keycode.KbdIllumToggle,
	229: keycode.KbdIllumDown,
	230: keycode.KbdIllumUp,
	161: keycode.Eject, // KEY_EJECTCD
	142: keycode.Sleep,
	143: keycode.Wake, // KEY_WAKEUP
	127: keycode.Emoji, // KEY_COMPOSE
	139: keycode.Menu,
	152: keycode.Lock, // KEY_SCREENLOCK

	// Mouse buttons
	272: keycode.MouseLeft,    // BTN_LEFT
	273: keycode.MouseRight,   // BTN_RIGHT
	274: keycode.MouseMiddle,  // BTN_MIDDLE
	275: keycode.MouseBack,    // BTN_SIDE
	276: keycode.MouseForward, // BTN_EXTRA
	277: keycode.MouseSide1,   // BTN_FORWARD
	278: keycode.MouseSide2,   // BTN_BACK
	279: keycode.MouseSide3,   // BTN_TASK
}
