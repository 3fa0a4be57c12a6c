// Package media pauses system playback around recording sessions.
package media

import (
	"context"
	"log/slog"
	"os/exec"
	"sync"
	"time"
)

const playerctlTimeout = time.Second

// Controller pauses playing media before a recording starts and resumes it
// afterwards. Every call is best-effort: a missing playerctl binary or an
// uncooperative player is logged and otherwise ignored.
type Controller struct {
	logger *slog.Logger

	mu     sync.Mutex
	paused bool
}

// NewController builds a playerctl-backed media controller.
func NewController(logger *slog.Logger) *Controller {
	return &Controller{logger: logger}
}

// Pause stops active playback when something is playing.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	status, err := c.run("status")
	if err != nil || string(status) == "" {
		return
	}
	if string(status) != "Playing\n" && string(status) != "Playing" {
		return
	}
	if _, err := c.run("pause"); err == nil {
		c.paused = true
	}
}

// Resume restarts playback only if Pause previously stopped it.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paused {
		return
	}
	c.paused = false
	_, _ = c.run("play")
}

func (c *Controller) run(verb string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), playerctlTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "playerctl", verb).Output()
	if err != nil {
		if c.logger != nil {
			c.logger.Debug("playerctl unavailable", "verb", verb, "error", err.Error())
		}
		return nil, err
	}
	return out, nil
}
