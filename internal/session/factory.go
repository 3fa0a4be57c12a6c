package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/whisperwriter/whisperwriter/internal/audio"
	"github.com/whisperwriter/whisperwriter/internal/config"
	"github.com/whisperwriter/whisperwriter/internal/media"
	"github.com/whisperwriter/whisperwriter/internal/pipeline"
	"github.com/whisperwriter/whisperwriter/internal/transcribe"
	"github.com/whisperwriter/whisperwriter/internal/vad"
)

// NewFactory builds production pipeline sessions from configuration: live
// PulseAudio capture, the hosted Whisper backend, RMS voice detection, and
// optional media pause.
func NewFactory(cfg config.Config, logger *slog.Logger) Factory {
	whisper := transcribe.NewWhisper(transcribe.WhisperConfig{
		APIKey:   cfg.Model.API.APIKey,
		BaseURL:  cfg.Model.API.BaseURL,
		Model:    cfg.Model.API.Model,
		Language: cfg.Model.API.Language,
	})
	detector := vad.New(cfg.Recording.VADThreshold)

	var mediaCtl pipeline.MediaControl
	if cfg.Recording.PauseMedia {
		mediaCtl = media.NewController(logger)
	}

	opener := func(ctx context.Context) (audio.Source, error) {
		selection, err := audio.SelectDevice(ctx, cfg.Recording.SoundDevice)
		if err != nil {
			return nil, err
		}
		if selection.Warning != "" && logger != nil {
			logger.Warn("audio device fallback", "warning", selection.Warning)
		}
		return audio.StartCapture(ctx, selection.Device, cfg.Recording.SampleRate, audio.DefaultFrameDuration)
	}

	return func(useLLM bool) *pipeline.Session {
		opts := pipeline.Options{
			Mode:              pipeline.Mode(cfg.Recording.RecordingMode),
			SampleRate:        cfg.Recording.SampleRate,
			SilenceDuration:   time.Duration(cfg.Recording.SilenceDurationMS) * time.Millisecond,
			MinDuration:       time.Duration(cfg.Recording.MinDurationMS) * time.Millisecond,
			ContinuousTimeout: time.Duration(cfg.Recording.ContinuousTimeoutMS) * time.Millisecond,
			UseLLM:            useLLM,
		}
		return pipeline.NewSession(opts, opener, whisper.Transcribe, detector, mediaCtl, logger)
	}
}
