// Package indicator plays short synthesized audio cues on dictation
// lifecycle events.
package indicator

import "log/slog"

// Cue identifies one lifecycle sound.
type Cue int

const (
	CueStart Cue = iota + 1
	CueComplete
	CueFailure
)

// Player emits cues over the PulseAudio playback path. A nil or disabled
// player is silent.
type Player struct {
	logger  *slog.Logger
	enabled bool
}

// NewPlayer constructs a cue player. When enabled is false every Play is a noop.
func NewPlayer(enabled bool, logger *slog.Logger) *Player {
	return &Player{logger: logger, enabled: enabled}
}

// Play renders one cue to the default sink. Best-effort; playback failures
// are logged and swallowed.
func (p *Player) Play(cue Cue) {
	if p == nil || !p.enabled {
		return
	}
	samples := cueSamples(cue)
	if len(samples) == 0 {
		return
	}
	if err := playSynthCue(samples); err != nil && p.logger != nil {
		p.logger.Debug("cue playback failed", "error", err.Error())
	}
}
