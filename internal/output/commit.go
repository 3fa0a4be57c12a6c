// Package output applies transcript commit side effects (clipboard and typing).
package output

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// Committer delivers finished transcripts to the desktop. The clipboard
// command is mandatory and receives the transcript on stdin; the optional
// type command simulates keystrokes and fails soft.
type Committer struct {
	clipboardArgv []string
	typeArgv      []string
	logger        *slog.Logger
}

// NewCommitter constructs a transcript committer from command argvs.
func NewCommitter(clipboardArgv, typeArgv []string, logger *slog.Logger) *Committer {
	return &Committer{
		clipboardArgv: clipboardArgv,
		typeArgv:      typeArgv,
		logger:        logger,
	}
}

// Commit writes the transcript to the clipboard and optionally types it into
// the focused window. Empty transcripts are a no-op.
func (c *Committer) Commit(ctx context.Context, transcript string) error {
	if transcript == "" {
		return nil
	}

	clipboardCtx, clipboardCancel := context.WithTimeout(ctx, 2*time.Second)
	defer clipboardCancel()
	if err := runCommandWithInput(clipboardCtx, c.clipboardArgv, transcript); err != nil {
		return fmt.Errorf("set clipboard: %w", err)
	}

	if len(c.typeArgv) == 0 {
		return nil
	}

	typeCtx, typeCancel := context.WithTimeout(ctx, 5*time.Second)
	defer typeCancel()
	if err := runCommandWithInput(typeCtx, c.typeArgv, transcript); err != nil && c.logger != nil {
		c.logger.Error("type dispatch failed; clipboard remains set", "error", err.Error())
	}
	return nil
}

// runCommandWithInput executes argv and optionally writes input to stdin.
func runCommandWithInput(ctx context.Context, argv []string, input string) error {
	if len(argv) == 0 {
		return fmt.Errorf("command argv cannot be empty")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("open stdin for %s: %w", argv[0], err)
	}

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return fmt.Errorf("start command %s: %w", argv[0], err)
	}

	if input != "" {
		if _, err := stdin.Write([]byte(input)); err != nil {
			_ = stdin.Close()
			_ = cmd.Wait()
			return fmt.Errorf("write stdin for %s: %w", argv[0], err)
		}
	}
	_ = stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait for %s: %w", argv[0], err)
	}
	return nil
}
