// Package config resolves, parses, validates, and defaults runtime configuration.
package config

// Config is the fully materialized runtime configuration.
type Config struct {
	Recording RecordingConfig `yaml:"recording_options"`
	Model     ModelConfig     `yaml:"model_options"`
	Output    OutputConfig    `yaml:"output_options"`
	Misc      MiscConfig      `yaml:"misc"`
}

// RecordingConfig controls chords, backend choice, and capture behavior.
type RecordingConfig struct {
	ActivationKey     string `yaml:"activation_key"`
	LLMCleanupKey     string `yaml:"llm_cleanup_key"`
	LLMInstructionKey string `yaml:"llm_instruction_key"`
	TextCleanupKey    string `yaml:"text_cleanup_key"`

	InputBackend  string `yaml:"input_backend"`
	RecordingMode string `yaml:"recording_mode"`
	SoundDevice   string `yaml:"sound_device"`
	SampleRate    int    `yaml:"sample_rate"`

	// Durations in milliseconds, matching the config file units.
	SilenceDurationMS   int `yaml:"silence_duration"`
	MinDurationMS       int `yaml:"min_duration"`
	ContinuousTimeoutMS int `yaml:"continuous_timeout"`

	VADThreshold float64 `yaml:"vad_threshold"`
	PauseMedia   bool    `yaml:"pause_media"`
}

// ModelConfig selects and configures the transcription backend.
type ModelConfig struct {
	API APIConfig `yaml:"api"`
}

// APIConfig holds hosted transcription endpoint settings.
type APIConfig struct {
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Language string `yaml:"language"`
}

// OutputConfig controls transcript delivery and post-processing.
type OutputConfig struct {
	ClipboardCommand string `yaml:"clipboard_command"`
	TypeCommand      string `yaml:"type_command"`

	AddTrailingSpace     bool `yaml:"add_trailing_space"`
	RemoveTrailingPeriod bool `yaml:"remove_trailing_period"`
	RemoveCapitalization bool `yaml:"remove_capitalization"`

	// Parsed argv forms, populated during load.
	Clipboard CommandConfig `yaml:"-"`
	TypeCmd   CommandConfig `yaml:"-"`
}

// MiscConfig holds small behavior toggles.
type MiscConfig struct {
	PrintToTerminal   bool `yaml:"print_to_terminal"`
	NoiseOnCompletion bool `yaml:"noise_on_completion"`
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Message string
}
