// Package ipc carries control commands between the CLI and the running
// dictation daemon over a unix socket. Each connection is one request and one
// response, both newline-delimited JSON.
package ipc

// Commands the daemon accepts on its control socket.
const (
	// CommandStatus reports the pipeline's current lifecycle state.
	CommandStatus = "status"
	// CommandStop finishes the active recording and transcribes it.
	CommandStop = "stop"
	// CommandQuit shuts the daemon down.
	CommandQuit = "quit"
)

// Request is one control command from a CLI invocation.
type Request struct {
	Command string `json:"command"`
}

// Response reports a command's outcome. State carries the pipeline status on
// success and failure alike, so clients can always show where the daemon is.
type Response struct {
	OK      bool   `json:"ok"`
	State   string `json:"state,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
