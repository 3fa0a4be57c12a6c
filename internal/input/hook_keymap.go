package input

import "github.com/whisperwriter/whisperwriter/internal/keycode"

// hookRawcodeMap translates named virtual-key constants delivered by the
// hook library. Codes follow the Windows VK layout, which gohook reports on
// the platforms where rawcodes are stable.
var hookRawcodeMap = map[uint16]keycode.Code{
	// Modifier keys
	160: keycode.ShiftLeft,  // VK_LSHIFT
	161: keycode.ShiftRight, // VK_RSHIFT
	162: keycode.CtrlLeft,   // VK_LCONTROL
	163: keycode.CtrlRight,  // VK_RCONTROL
	164: keycode.AltLeft,    // VK_LMENU
	165: keycode.AltRight,   // VK_RMENU
	91:  keycode.MetaLeft,   // VK_LWIN
	92:  keycode.MetaRight,  // VK_RWIN

	// Function keys (VK_F1..VK_F24)
	112: keycode.F1, 113: keycode.F2, 114: keycode.F3, 115: keycode.F4,
	116: keycode.F5, 117: keycode.F6, 118: keycode.F7, 119: keycode.F8,
	120: keycode.F9, 121: keycode.F10, 122: keycode.F11, 123: keycode.F12,
	124: keycode.F13, 125: keycode.F14, 126: keycode.F15, 127: keycode.F16,
	128: keycode.F17, 129: keycode.F18, 130: keycode.F19, 131: keycode.F20,
	132: keycode.F21, 133: keycode.F22, 134: keycode.F23, 135: keycode.F24,

	// Special keys
	32: keycode.Space,
	13: keycode.Enter,
	9:  keycode.Tab,
	8:  keycode.Backspace,
	27: keycode.Esc,
	45: keycode.Insert,
	46: keycode.Delete,
	36: keycode.Home,
	35: keycode.End,
	33: keycode.PageUp,
	34: keycode.PageDown,
	20: keycode.CapsLock,
	144: keycode.NumLock,
	145: keycode.ScrollLock,
	19:  keycode.Pause,
	44:  keycode.PrintScreen,

	// Arrow keys
	38: keycode.Up,
	40: keycode.Down,
	37: keycode.Left,
	39: keycode.Right,

	// Media keys
	173: keycode.AudioMute,
	174: keycode.AudioVolumeDown,
	175: keycode.AudioVolumeUp,
	179: keycode.MediaPlayPause,
	176: keycode.MediaNext,
	177: keycode.MediaPrevious,
	178: keycode.MediaStop,

	// Application keys
	180: keycode.Mail,
	181: keycode.MediaSelect,
	170: keycode.AppSearch,
	172: keycode.AppHome,
	166: keycode.AppBack,
	167: keycode.AppForward,
	169: keycode.AppStop,
	168: keycode.AppRefresh,
	171: keycode.AppBookmarks,
	93:  keycode.Menu, // VK_APPS
	12:  keycode.Clear,
	95:  keycode.Sleep,
}

// hookNumpadRange covers the numpad virtual-key block (96-111).
var hookNumpadRange = map[uint16]keycode.Code{
	96:  keycode.Numpad0,
	97:  keycode.Numpad1,
	98:  keycode.Numpad2,
	99:  keycode.Numpad3,
	100: keycode.Numpad4,
	101: keycode.Numpad5,
	102: keycode.Numpad6,
	103: keycode.Numpad7,
	104: keycode.Numpad8,
	105: keycode.Numpad9,
	106: keycode.NumpadMultiply,
	107: keycode.NumpadAdd,
	109: keycode.NumpadSubtract,
	110: keycode.NumpadDecimal,
	111: keycode.NumpadDivide,
}

// hookDigitRange covers VK 48-57, indexed by rawcode-48.
var hookDigitRange = [10]keycode.Code{
	keycode.Zero, keycode.One, keycode.Two, keycode.Three, keycode.Four,
	keycode.Five, keycode.Six, keycode.Seven, keycode.Eight, keycode.Nine,
}

// hookCharMap resolves printable characters when no rawcode mapping exists.
var hookCharMap = func() map[rune]keycode.Code {
	m := map[rune]keycode.Code{
		'-':  keycode.Minus,
		'=':  keycode.Equals,
		'[':  keycode.LeftBracket,
		']':  keycode.RightBracket,
		';':  keycode.Semicolon,
		'\'': keycode.Quote,
		'`':  keycode.Backquote,
		'\\': keycode.Backslash,
		',':  keycode.Comma,
		'.':  keycode.Period,
		'/':  keycode.Slash,
		' ':  keycode.Space,
	}
	for i, code := 0, keycode.A; i < 26; i, code = i+1, code+1 {
		m[rune('a'+i)] = code
		m[rune('A'+i)] = code
	}
	for digit, code := range map[rune]keycode.Code{
		'0': keycode.Zero, '1': keycode.One, '2': keycode.Two,
		'3': keycode.Three, '4': keycode.Four, '5': keycode.Five,
		'6': keycode.Six, '7': keycode.Seven, '8': keycode.Eight,
		'9': keycode.Nine,
	} {
		m[digit] = code
	}
	return m
}()
