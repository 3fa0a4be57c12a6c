package input

import (
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	hook "github.com/robotn/gohook"

	"github.com/whisperwriter/whisperwriter/internal/keycode"
)

// hookBackend installs OS-level global keyboard and mouse hooks via gohook
// and translates its events onto the internal code space.
type hookBackend struct {
	logger *slog.Logger

	mu      sync.Mutex
	started bool
	doneCh  chan struct{}
}

func newHookBackend(logger *slog.Logger) Backend {
	return &hookBackend{logger: logger}
}

func (b *hookBackend) Name() string { return "hook" }

// Available probes for a graphical session; the hook library needs one on
// Linux and always has one on windows/darwin.
func (b *hookBackend) Available() bool {
	if runtime.GOOS != "linux" {
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// Start begins consuming the global hook event stream on its own goroutine.
func (b *hookBackend) Start(handler Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	events := hook.Start()
	b.doneCh = make(chan struct{})
	b.started = true

	go func(done chan struct{}) {
		defer close(done)
		for event := range events {
			b.forward(event, handler)
		}
	}(b.doneCh)

	return nil
}

// Stop uninstalls the hooks and waits briefly for the delivery goroutine.
func (b *hookBackend) Stop() error {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return nil
	}
	b.started = false
	doneCh := b.doneCh
	b.mu.Unlock()

	hook.End()
	select {
	case <-doneCh:
	case <-time.After(stopJoinWaitHook):
		if b.logger != nil {
			b.logger.Warn("hook delivery goroutine did not stop in time")
		}
	}
	return nil
}

const stopJoinWaitHook = time.Second

// forward translates one gohook event. Scroll events are swallowed on
// purpose: surfacing them triggers OS feedback (system beep) with no benefit
// to chord tracking.
func (b *hookBackend) forward(event hook.Event, handler Handler) {
	switch event.Kind {
	case hook.KeyDown, hook.KeyHold:
		if code, ok := translateHookKey(event); ok {
			handler(code, keycode.KeyPress)
		}
	case hook.KeyUp:
		if code, ok := translateHookKey(event); ok {
			handler(code, keycode.KeyRelease)
		}
	case hook.MouseDown:
		if code, ok := translateHookButton(event.Button); ok {
			handler(code, keycode.MousePress)
		}
	case hook.MouseUp:
		if code, ok := translateHookButton(event.Button); ok {
			handler(code, keycode.MouseRelease)
		}
	case hook.MouseWheel:
		// Deliberately dropped.
	}
}

// translateHookKey resolves a key event through the raw virtual-key table,
// the numpad numeric-range fallback, and finally the printable character.
func translateHookKey(event hook.Event) (keycode.Code, bool) {
	if code, ok := hookRawcodeMap[event.Rawcode]; ok {
		return code, true
	}

	// Numpad virtual-key range not otherwise resolvable.
	if event.Rawcode >= 96 && event.Rawcode <= 111 {
		if code, ok := hookNumpadRange[event.Rawcode]; ok {
			return code, true
		}
	}

	// Digit virtual-key range.
	if event.Rawcode >= 48 && event.Rawcode <= 57 {
		return hookDigitRange[event.Rawcode-48], true
	}

	if event.Keychar != 0 && event.Keychar != 65535 {
		if code, ok := hookCharMap[event.Keychar]; ok {
			return code, true
		}
	}
	return keycode.CodeUnknown, false
}

// translateHookButton maps gohook button numbers onto mouse codes.
func translateHookButton(button uint16) (keycode.Code, bool) {
	switch button {
	case 1:
		return keycode.MouseLeft, true
	case 2:
		return keycode.MouseMiddle, true
	case 3:
		return keycode.MouseRight, true
	case 4:
		return keycode.MouseBack, true
	case 5:
		return keycode.MouseForward, true
	default:
		return keycode.CodeUnknown, false
	}
}
