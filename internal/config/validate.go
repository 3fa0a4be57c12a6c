package config

import (
	"fmt"
	"os"
	"strings"
)

var recordingModes = map[string]bool{
	"continuous":               true,
	"voice_activity_detection": true,
	"press_to_toggle":          true,
	"hold_to_record":           true,
}

var inputBackends = map[string]bool{
	"auto":       true,
	"raw_device": true,
	"hook":       true,
}

// normalize repairs out-of-range values in place and returns warnings.
// Anomalies degrade to defaults; startup never aborts on configuration.
func normalize(cfg *Config) []Warning {
	defaults := Default()
	var warnings []Warning

	warn := func(format string, args ...any) {
		warnings = append(warnings, Warning{Message: fmt.Sprintf(format, args...)})
	}

	mode := strings.ToLower(strings.TrimSpace(cfg.Recording.RecordingMode))
	if !recordingModes[mode] {
		warn("unknown recording_mode %q; using %q", cfg.Recording.RecordingMode, defaults.Recording.RecordingMode)
		mode = defaults.Recording.RecordingMode
	}
	cfg.Recording.RecordingMode = mode

	backend := strings.ToLower(strings.TrimSpace(cfg.Recording.InputBackend))
	if backend == "" {
		backend = defaults.Recording.InputBackend
	} else if !inputBackends[backend] {
		warn("unknown input_backend %q; using %q", cfg.Recording.InputBackend, defaults.Recording.InputBackend)
		backend = defaults.Recording.InputBackend
	}
	cfg.Recording.InputBackend = backend

	if cfg.Recording.SampleRate <= 0 {
		warn("sample_rate must be > 0; using %d", defaults.Recording.SampleRate)
		cfg.Recording.SampleRate = defaults.Recording.SampleRate
	}
	if cfg.Recording.SilenceDurationMS <= 0 {
		warn("silence_duration must be > 0; using %d", defaults.Recording.SilenceDurationMS)
		cfg.Recording.SilenceDurationMS = defaults.Recording.SilenceDurationMS
	}
	if cfg.Recording.MinDurationMS < 0 {
		warn("min_duration must be >= 0; using %d", defaults.Recording.MinDurationMS)
		cfg.Recording.MinDurationMS = defaults.Recording.MinDurationMS
	}
	if cfg.Recording.ContinuousTimeoutMS < 0 {
		warn("continuous_timeout must be >= 0; disabling it")
		cfg.Recording.ContinuousTimeoutMS = 0
	}
	if cfg.Recording.VADThreshold < 0 {
		warn("vad_threshold must be >= 0; using the built-in default")
		cfg.Recording.VADThreshold = 0
	}
	if strings.TrimSpace(cfg.Recording.ActivationKey) == "" {
		warn("activation_key is empty; recording can only be driven over IPC")
	}

	cfg.Output.Clipboard = parseCommand(cfg.Output.ClipboardCommand, defaults.Output.Clipboard, "clipboard_command", warn)
	cfg.Output.TypeCmd = parseCommand(cfg.Output.TypeCommand, CommandConfig{}, "type_command", warn)
	if len(cfg.Output.Clipboard.Argv) == 0 {
		warn("clipboard_command is empty; using %q", defaults.Output.ClipboardCommand)
		cfg.Output.Clipboard = defaults.Output.Clipboard
	}

	if strings.TrimSpace(cfg.Model.API.APIKey) == "" {
		if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
			cfg.Model.API.APIKey = key
		}
	}

	return warnings
}

// parseCommand turns a raw command string into argv, falling back on parse errors.
func parseCommand(raw string, fallback CommandConfig, field string, warn func(string, ...any)) CommandConfig {
	argv, err := splitCommand(raw)
	if err != nil {
		warn("%s: %v; using default", field, err)
		return fallback
	}
	return CommandConfig{Raw: raw, Argv: argv}
}
