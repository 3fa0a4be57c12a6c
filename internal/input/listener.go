package input

import (
	"log/slog"
	"sync"

	"github.com/whisperwriter/whisperwriter/internal/keycode"
)

// Semantic listener events. Multiple callbacks may be registered per event;
// they fire in registration order on the backend's delivery goroutine.
const (
	EventActivate                     = "on_activate"
	EventDeactivate                   = "on_deactivate"
	EventActivateWithLLM              = "on_activate_with_llm"
	EventDeactivateWithLLM            = "on_deactivate_with_llm"
	EventActivateWithLLMInstruction   = "on_activate_with_llm_instruction"
	EventDeactivateWithLLMInstruction = "on_deactivate_with_llm_instruction"
	EventTextCleanup                  = "on_text_cleanup"
)

// ChordConfig carries the four combination strings the listener watches.
type ChordConfig struct {
	Activation     string
	LLMCleanup     string
	LLMInstruction string
	TextCleanup    string
}

// Listener owns the active input backend and the configured chords, fanning
// raw events out to every chord and raising semantic callbacks on edges.
type Listener struct {
	logger   *slog.Logger
	backends []Backend

	mu             sync.Mutex
	active         Backend
	main           *Chord
	llmCleanup     *Chord
	llmInstruction *Chord
	textCleanup    *Chord
	started        bool

	callbackMu sync.Mutex
	callbacks  map[string][]func()
}

// NewListener constructs a listener over the given backends and chord config.
// Backend selection happens here; Start must be called to begin delivery.
func NewListener(chords ChordConfig, preferredBackend string, backends []Backend, logger *slog.Logger) (*Listener, error) {
	l := &Listener{
		logger:   logger,
		backends: backends,
		callbacks: map[string][]func(){
			EventActivate:                     nil,
			EventDeactivate:                   nil,
			EventActivateWithLLM:              nil,
			EventDeactivateWithLLM:            nil,
			EventActivateWithLLMInstruction:   nil,
			EventDeactivateWithLLMInstruction: nil,
			EventTextCleanup:                  nil,
		},
	}
	l.loadChords(chords)

	active, err := SelectBackend(preferredBackend, backends, logger)
	if err != nil {
		return nil, err
	}
	l.active = active
	return l, nil
}

// loadChords replaces all four chords wholesale from combination strings.
func (l *Listener) loadChords(chords ChordConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.main = NewChord(ParseCombination(chords.Activation))
	l.llmCleanup = NewChord(ParseCombination(chords.LLMCleanup))
	l.llmInstruction = NewChord(ParseCombination(chords.LLMInstruction))
	l.textCleanup = NewChord(ParseCombination(chords.TextCleanup))
}

// On registers a callback for a semantic event. Unknown event names are ignored.
func (l *Listener) On(event string, callback func()) {
	l.callbackMu.Lock()
	defer l.callbackMu.Unlock()
	if _, ok := l.callbacks[event]; !ok {
		return
	}
	l.callbacks[event] = append(l.callbacks[event], callback)
}

// Start begins event delivery on the active backend.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active == nil {
		return ErrNoBackend
	}
	if l.started {
		return nil
	}
	if err := l.active.Start(l.handleInput); err != nil {
		return err
	}
	l.started = true
	return nil
}

// Stop halts the active backend. The listener can be started again.
func (l *Listener) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active == nil || !l.started {
		return nil
	}
	l.started = false
	return l.active.Stop()
}

// BackendName reports the active backend for logs and diagnostics.
func (l *Listener) BackendName() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active == nil {
		return ""
	}
	return l.active.Name()
}

// UpdateActivationKeys reloads all chords from configuration without touching
// registered callbacks or the active backend.
func (l *Listener) UpdateActivationKeys(chords ChordConfig) {
	l.loadChords(chords)
}

// UpdateBackend re-runs backend selection, restarting delivery if it was live.
func (l *Listener) UpdateBackend(preferred string) error {
	l.mu.Lock()
	wasStarted := l.started
	current := l.active
	l.mu.Unlock()

	next, err := SelectBackend(preferred, l.backends, l.logger)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if next == current {
		return nil
	}
	if wasStarted && current != nil {
		l.started = false
		if stopErr := current.Stop(); stopErr != nil && l.logger != nil {
			l.logger.Warn("stop previous input backend", "error", stopErr.Error())
		}
	}
	l.active = next
	if wasStarted {
		if err := next.Start(l.handleInput); err != nil {
			return err
		}
		l.started = true
	}
	return nil
}

// handleInput updates every chord with the raw event and fires edge callbacks.
// Edges compare instantaneous satisfaction before the update with the latched
// state after it, which keeps hold-to-record distinct from toggle semantics.
func (l *Listener) handleInput(key keycode.Code, event keycode.InputEvent) {
	l.mu.Lock()
	main, llm, instr, cleanup := l.main, l.llmCleanup, l.llmInstruction, l.textCleanup
	l.mu.Unlock()

	l.dispatchChord(main, key, event, EventActivate, EventDeactivate)
	l.dispatchChord(llm, key, event, EventActivateWithLLM, EventDeactivateWithLLM)
	l.dispatchChord(instr, key, event, EventActivateWithLLMInstruction, EventDeactivateWithLLMInstruction)
	l.dispatchChord(cleanup, key, event, EventTextCleanup, "")
}

// dispatchChord updates one chord and fires the rising/falling callback.
// An empty falling event name suppresses deactivation dispatch.
func (l *Listener) dispatchChord(chord *Chord, key keycode.Code, event keycode.InputEvent, rising, falling string) {
	if chord == nil || chord.Empty() {
		return
	}
	wasActive := chord.IsActive()
	isActive := chord.Update(key, event)

	switch {
	case !wasActive && isActive:
		l.fire(rising)
	case wasActive && !isActive && falling != "":
		l.fire(falling)
	}
}

// fire invokes the registered callbacks for an event in registration order.
func (l *Listener) fire(event string) {
	l.callbackMu.Lock()
	callbacks := make([]func(), len(l.callbacks[event]))
	copy(callbacks, l.callbacks[event])
	l.callbackMu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}
