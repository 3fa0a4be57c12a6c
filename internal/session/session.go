// Package session coordinates chord activations, pipeline sessions, and
// transcript commit flow for the long-running daemon.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/whisperwriter/whisperwriter/internal/config"
	"github.com/whisperwriter/whisperwriter/internal/indicator"
	"github.com/whisperwriter/whisperwriter/internal/input"
	"github.com/whisperwriter/whisperwriter/internal/ipc"
	"github.com/whisperwriter/whisperwriter/internal/output"
	"github.com/whisperwriter/whisperwriter/internal/pipeline"
)

// Committer delivers one completed transcript to the focused application.
type Committer interface {
	Commit(context.Context, string) error
}

// CommitFunc adapts a function to the Committer interface.
type CommitFunc func(context.Context, string) error

func (f CommitFunc) Commit(ctx context.Context, transcript string) error {
	return f(ctx, transcript)
}

// Factory builds one pipeline session per activation.
type Factory func(useLLM bool) *pipeline.Session

// ChordSource is the listener surface the controller binds to. Stop and Start
// must be repeatable so delivery can be suspended around transcript typing.
type ChordSource interface {
	On(event string, callback func())
	Start() error
	Stop() error
}

// Controller owns the active pipeline session and translates chord edges,
// IPC commands, and session callbacks into lifecycle actions.
type Controller struct {
	logger *slog.Logger
	cfg    config.Config
	create Factory
	commit Committer
	stdout io.Writer
	cues   *indicator.Player
	keys   ChordSource

	mu      sync.Mutex
	ctx     context.Context
	current *pipeline.Session
	status  string
	stopped bool

	quit     chan struct{}
	quitOnce sync.Once
}

// NewController constructs a controller with safe default fallbacks.
func NewController(cfg config.Config, create Factory, committer Committer, stdout io.Writer, logger *slog.Logger) *Controller {
	if create == nil {
		create = NewFactory(cfg, logger)
	}
	if committer == nil {
		committer = CommitFunc(func(context.Context, string) error { return nil })
	}
	if stdout == nil {
		stdout = io.Discard
	}
	return &Controller{
		logger: logger,
		cfg:    cfg,
		create: create,
		commit: committer,
		stdout: stdout,
		ctx:    context.Background(),
		status: pipeline.StatusIdle,
		quit:   make(chan struct{}),
	}
}

// SetCues installs the audio cue player. Must be called before Run.
func (c *Controller) SetCues(cues *indicator.Player) {
	c.cues = cues
}

// Bind registers the controller's handlers on a key listener and retains it
// for suspension during typed commits. Must be called before Run.
func (c *Controller) Bind(listener ChordSource) {
	c.keys = listener
	listener.On(input.EventActivate, func() { c.Activate(false) })
	listener.On(input.EventDeactivate, c.Deactivate)
	listener.On(input.EventActivateWithLLM, func() { c.Activate(true) })
	listener.On(input.EventDeactivateWithLLM, c.Deactivate)
	listener.On(input.EventActivateWithLLMInstruction, func() { c.Activate(true) })
	listener.On(input.EventDeactivateWithLLMInstruction, c.Deactivate)
	listener.On(input.EventTextCleanup, func() {
		if c.logger != nil {
			c.logger.Info("text cleanup chord pressed; no cleanup backend configured")
		}
	})
}

// Activate handles a rising chord edge. When idle it starts a new session;
// while a session is live the recording mode decides what happens next.
func (c *Controller) Activate(useLLM bool) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	current := c.current
	if current != nil && current.Running() {
		c.mu.Unlock()
		switch pipeline.Mode(c.cfg.Recording.RecordingMode) {
		case pipeline.ModePressToToggle:
			current.StopRecording()
		case pipeline.ModeContinuous:
			// Aborts the whole listening loop, discarding the buffer.
			current.Stop()
		}
		// voice_activity_detection and hold_to_record ignore repeats; the
		// detector or the falling edge ends those recordings.
		return
	}

	sess := c.create(useLLM)
	sess.OnStatus(c.onStatus)
	sess.OnResult(func(text string) { c.onResult(sess, text, useLLM) })
	c.current = sess
	ctx := c.ctx
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("session start",
			"mode", c.cfg.Recording.RecordingMode,
			"use_llm", useLLM,
		)
	}
	sess.Start(ctx)
}

// Deactivate handles a falling chord edge. Only hold-to-record mode stops on
// release; the other modes ignore it.
func (c *Controller) Deactivate() {
	if pipeline.Mode(c.cfg.Recording.RecordingMode) != pipeline.ModeHoldToRecord {
		return
	}
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()
	if current != nil && current.Running() {
		current.StopRecording()
	}
}

// StopRecording asks the live session to stop capturing and transcribe.
func (c *Controller) StopRecording() bool {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()
	if current == nil || !current.Running() {
		return false
	}
	current.StopRecording()
	return true
}

// Status returns the last status emitted by the pipeline.
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Quit releases Run. Safe to call more than once.
func (c *Controller) Quit() {
	c.quitOnce.Do(func() { close(c.quit) })
}

// Run blocks until context cancellation or Quit, then tears the live
// session down.
func (c *Controller) Run(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	select {
	case <-ctx.Done():
	case <-c.quit:
	}

	c.mu.Lock()
	c.stopped = true
	current := c.current
	c.mu.Unlock()
	if current != nil {
		current.Stop()
	}
}

// Handle serves the daemon's IPC commands.
func (c *Controller) Handle(_ context.Context, req ipc.Request) ipc.Response {
	switch req.Command {
	case ipc.CommandStatus:
		return ipc.Response{OK: true, State: c.Status()}
	case ipc.CommandStop:
		if !c.StopRecording() {
			return ipc.Response{OK: false, State: c.Status(), Error: "no active recording"}
		}
		return ipc.Response{OK: true, State: c.Status(), Message: "stop requested"}
	case ipc.CommandQuit:
		c.Quit()
		return ipc.Response{OK: true, State: c.Status(), Message: "shutting down"}
	default:
		return ipc.Response{OK: false, State: c.Status(), Error: fmt.Sprintf("unknown command: %s", req.Command)}
	}
}

// onStatus records pipeline state for IPC status queries.
func (c *Controller) onStatus(status string, useLLM bool) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
	if c.logger != nil {
		c.logger.Debug("session status", "status", status, "use_llm", useLLM)
	}
	switch status {
	case pipeline.StatusRecording:
		go c.cues.Play(indicator.CueStart)
	case pipeline.StatusTranscriptionFailed, pipeline.StatusError:
		go c.cues.Play(indicator.CueFailure)
	}
}

// onResult formats and commits one transcript, then restarts listening when
// continuous mode is active.
func (c *Controller) onResult(sess *pipeline.Session, text string, useLLM bool) {
	formatted := output.Format(text, output.FormatOptions{
		AddTrailingSpace:     c.cfg.Output.AddTrailingSpace,
		RemoveTrailingPeriod: c.cfg.Output.RemoveTrailingPeriod,
		RemoveCapitalization: c.cfg.Output.RemoveCapitalization,
	})
	if formatted == "" {
		return
	}

	// A configured type command emits synthetic keystrokes; the listener must
	// not see them as chord input, so delivery pauses for the commit.
	suspend := c.keys != nil && len(c.cfg.Output.TypeCmd.Argv) > 0
	if suspend {
		if err := c.keys.Stop(); err != nil && c.logger != nil {
			c.logger.Warn("suspend key listener", "error", err.Error())
		}
	}

	if err := c.commit.Commit(context.Background(), formatted); err != nil {
		if c.logger != nil {
			c.logger.Error("commit transcript failed", "error", err.Error())
		}
	} else if c.logger != nil {
		c.logger.Info("transcript committed", "length", len(formatted))
	}

	if suspend {
		if err := c.keys.Start(); err != nil && c.logger != nil {
			c.logger.Error("resume key listener", "error", err.Error())
		}
	}

	if c.cfg.Misc.PrintToTerminal {
		fmt.Fprintln(c.stdout, formatted)
	}
	go c.cues.Play(indicator.CueComplete)

	if pipeline.Mode(c.cfg.Recording.RecordingMode) == pipeline.ModeContinuous {
		// The next session may only start once this one's worker has exited.
		go func() {
			sess.Wait()
			select {
			case <-c.quit:
				return
			default:
			}
			c.Activate(useLLM)
		}()
	}
}
