package input

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/whisperwriter/whisperwriter/internal/keycode"
)

// Handler receives one translated input event on the backend's delivery goroutine.
type Handler func(keycode.Code, keycode.InputEvent)

// Backend captures native OS input and delivers translated events.
//
// Available must be a cheap, side-effect-free probe and never fail loudly.
// Start acquires OS input resources and must not be called twice without an
// intervening Stop. Stop releases everything with a bounded wait and is safe
// to call when Start never ran.
type Backend interface {
	Name() string
	Available() bool
	Start(handler Handler) error
	Stop() error
}

// ErrNoBackend indicates no input backend is usable on this system.
var ErrNoBackend = errors.New("no supported input backend found")

// Backends returns all backend variants in auto-selection priority order.
func Backends(logger *slog.Logger) []Backend {
	return []Backend{
		newRawDeviceBackend(logger),
		newHookBackend(logger),
	}
}

// SelectBackend applies the configured preference against available backends.
//
// "auto" (or empty) picks the first available backend. A preferred backend
// that is unknown or unavailable logs a fallback notice and auto-selects
// instead of failing hard.
func SelectBackend(preferred string, backends []Backend, logger *slog.Logger) (Backend, error) {
	available := make([]Backend, 0, len(backends))
	for _, backend := range backends {
		if backend.Available() {
			available = append(available, backend)
		}
	}
	if len(available) == 0 {
		return nil, ErrNoBackend
	}

	preferred = strings.TrimSpace(strings.ToLower(preferred))
	if preferred != "" && preferred != "auto" {
		for _, backend := range available {
			if backend.Name() == preferred {
				return backend, nil
			}
		}
		if logger != nil {
			logger.Warn("preferred input backend unavailable; falling back to auto selection",
				"preferred", preferred)
		}
	}

	return available[0], nil
}
