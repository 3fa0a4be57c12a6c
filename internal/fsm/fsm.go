// Package fsm defines the dictation session lifecycle as explicit transitions.
package fsm

import "fmt"

type State string

type Event string

const (
	StateIdle                State = "idle"
	StateRecording           State = "recording"
	StateTranscribing        State = "transcribing"
	StateTranscriptionFailed State = "transcription_failed"
	StateError               State = "error"
)

const (
	EventStart       Event = "start"
	EventStop        Event = "stop"
	EventDiscard     Event = "discard"
	EventTranscribed Event = "transcribed"
	EventExhausted   Event = "exhausted"
	EventFail        Event = "fail"
	EventReset       Event = "reset"
)

// Transition returns the next state for an event, or the current state and an
// error when the event is not valid from it. EventFail is accepted from any
// state; a panic in the worker can happen at any point in the cycle.
func Transition(current State, event Event) (State, error) {
	if event == EventFail {
		return StateError, nil
	}

	switch current {
	case StateIdle:
		switch event {
		case EventStart:
			return StateRecording, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateRecording:
		switch event {
		case EventStop:
			return StateTranscribing, nil
		case EventDiscard:
			return StateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateTranscribing:
		switch event {
		case EventTranscribed:
			return StateIdle, nil
		case EventExhausted:
			return StateTranscriptionFailed, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateTranscriptionFailed, StateError:
		switch event {
		case EventReset:
			return StateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}
