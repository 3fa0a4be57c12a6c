// Package doctor runs runtime readiness diagnostics for config, input, audio, and the API.
package doctor

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/whisperwriter/whisperwriter/internal/audio"
	"github.com/whisperwriter/whisperwriter/internal/config"
	"github.com/whisperwriter/whisperwriter/internal/input"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config/runtime checks for a loaded config.
func Run(cfg config.Loaded) Report {
	checks := []Check{}

	message := fmt.Sprintf("loaded %q", cfg.Path)
	if len(cfg.Warnings) > 0 {
		message = fmt.Sprintf("loaded %q with %d warning(s)", cfg.Path, len(cfg.Warnings))
	}
	checks = append(checks, Check{Name: "config", Pass: true, Message: message})

	checks = append(checks, checkInputBackend(cfg.Config))

	if len(cfg.Config.Output.Clipboard.Argv) > 0 && cfg.Config.Output.Clipboard.Argv[0] == "wl-copy" {
		checks = append(checks, checkEnv("XDG_SESSION_TYPE", func(v string) bool {
			return strings.EqualFold(strings.TrimSpace(v), "wayland")
		}, "session type is wayland", "wl-copy requires XDG_SESSION_TYPE=wayland"))
	}

	checks = append(checks, checkCommand(cfg.Config.Output.Clipboard.Argv, "clipboard_cmd"))

	if len(cfg.Config.Output.TypeCmd.Argv) > 0 {
		checks = append(checks, checkCommand(cfg.Config.Output.TypeCmd.Argv, "type_cmd"))
	}

	if cfg.Config.Recording.PauseMedia {
		checks = append(checks, checkBinary("playerctl", "media pause/resume available"))
	}

	checks = append(checks, checkAudioSelection(cfg.Config))
	checks = append(checks, checkAPIKey(cfg.Config))
	checks = append(checks, checkAPIReachable(cfg.Config))

	return Report{Checks: checks}
}

// checkEnv validates an environment variable through a caller-supplied predicate.
func checkEnv(name string, predicate func(string) bool, okMsg, failMsg string) Check {
	value := os.Getenv(name)
	if predicate(value) {
		return Check{Name: name, Pass: true, Message: okMsg}
	}
	return Check{Name: name, Pass: false, Message: failMsg}
}

// checkCommand validates that argv contains a runnable command.
func checkCommand(argv []string, name string) Check {
	if len(argv) == 0 {
		return Check{Name: name, Pass: false, Message: "command is empty"}
	}
	return checkBinary(argv[0], fmt.Sprintf("%s command is available", name))
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// checkInputBackend runs live backend selection to surface missing input access.
func checkInputBackend(cfg config.Config) Check {
	logger := slog.New(slog.DiscardHandler)
	backend, err := input.SelectBackend(cfg.Recording.InputBackend, input.Backends(logger), logger)
	if err != nil {
		return Check{Name: "input.backend", Pass: false, Message: err.Error()}
	}
	return Check{Name: "input.backend", Pass: true, Message: fmt.Sprintf("selected %q", backend.Name())}
}

// checkAudioSelection runs live device selection to surface selection/fallback issues.
func checkAudioSelection(cfg config.Config) Check {
	selection, err := audio.SelectDevice(context.Background(), cfg.Recording.SoundDevice)
	if err != nil {
		return Check{Name: "audio.device", Pass: false, Message: err.Error()}
	}
	message := fmt.Sprintf("selected %q", selection.Device.ID)
	if selection.Warning != "" {
		message = message + " (" + selection.Warning + ")"
	}
	return Check{Name: "audio.device", Pass: true, Message: message}
}

// checkAPIKey validates that a transcription credential is configured.
func checkAPIKey(cfg config.Config) Check {
	if strings.TrimSpace(cfg.Model.API.APIKey) == "" {
		return Check{Name: "api.key", Pass: false, Message: "no API key in config or OPENAI_API_KEY"}
	}
	return Check{Name: "api.key", Pass: true, Message: "API key is configured"}
}

const transcribeEndpoint = "https://api.openai.com/v1/audio/transcriptions"

// checkAPIReachable probes the transcription endpoint for basic connectivity.
// The endpoint only accepts POSTs, so any HTTP response counts as reachable.
func checkAPIReachable(cfg config.Config) Check {
	url := strings.TrimSpace(cfg.Model.API.BaseURL)
	if url == "" {
		url = transcribeEndpoint
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return Check{Name: "api.endpoint", Pass: false, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	return Check{Name: "api.endpoint", Pass: true, Message: fmt.Sprintf("reachable at %s (HTTP %d)", url, resp.StatusCode)}
}
