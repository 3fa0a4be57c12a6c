package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	clipboard := "wl-copy --trim-newline"

	return Config{
		Recording: RecordingConfig{
			ActivationKey:     "ctrl+shift+space",
			InputBackend:      "auto",
			RecordingMode:     "continuous",
			SoundDevice:       "default",
			SampleRate:        16000,
			SilenceDurationMS: 900,
			MinDurationMS:     100,
			PauseMedia:        true,
		},
		Model: ModelConfig{
			API: APIConfig{
				Model: "whisper-1",
			},
		},
		Output: OutputConfig{
			ClipboardCommand: clipboard,
			AddTrailingSpace: true,
			Clipboard:        CommandConfig{Raw: clipboard, Argv: mustSplitCommand(clipboard)},
		},
	}
}
