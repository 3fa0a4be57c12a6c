// Package pipeline runs one recording and transcription session on a
// dedicated worker goroutine.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/whisperwriter/whisperwriter/internal/audio"
	"github.com/whisperwriter/whisperwriter/internal/fsm"
	"github.com/whisperwriter/whisperwriter/internal/transcribe"
	"github.com/whisperwriter/whisperwriter/internal/vad"
)

// Recording modes.
type Mode string

const (
	ModeContinuous    Mode = "continuous"
	ModeVoiceActivity Mode = "voice_activity_detection"
	ModePressToToggle Mode = "press_to_toggle"
	ModeHoldToRecord  Mode = "hold_to_record"
)

// Status names emitted on state transitions. They are the lifecycle states
// verbatim; observers see exactly what the machine allows.
const (
	StatusRecording           = string(fsm.StateRecording)
	StatusTranscribing        = string(fsm.StateTranscribing)
	StatusIdle                = string(fsm.StateIdle)
	StatusTranscriptionFailed = string(fsm.StateTranscriptionFailed)
	StatusError               = string(fsm.StateError)
)

const (
	defaultOnsetSkip       = 150 * time.Millisecond
	defaultSilenceDuration = 900 * time.Millisecond
	defaultMinDuration     = 100 * time.Millisecond
	defaultRetryAttempts   = 3
	defaultRetryDelay      = time.Second
)

// StatusFunc observes a session status transition.
type StatusFunc func(status string, useLLM bool)

// ResultFunc observes the final transcript of a successful session.
type ResultFunc func(text string)

// SourceOpener opens a live capture stream for one session.
type SourceOpener func(ctx context.Context) (audio.Source, error)

// MediaControl pauses system playback while recording. Both calls are
// best-effort; failures never surface.
type MediaControl interface {
	Pause()
	Resume()
}

// Options tune one session's recording and retry behavior. Zero values fall
// back to defaults.
type Options struct {
	Mode              Mode
	SampleRate        int
	FrameDuration     time.Duration
	OnsetSkip         time.Duration
	SilenceDuration   time.Duration
	MinDuration       time.Duration
	ContinuousTimeout time.Duration
	UseLLM            bool
	RetryAttempts     int
	RetryDelay        time.Duration
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeContinuous
	}
	if o.SampleRate <= 0 {
		o.SampleRate = audio.DefaultSampleRate
	}
	if o.FrameDuration <= 0 {
		o.FrameDuration = audio.DefaultFrameDuration
	}
	if o.OnsetSkip < 0 {
		o.OnsetSkip = 0
	} else if o.OnsetSkip == 0 {
		o.OnsetSkip = defaultOnsetSkip
	}
	if o.SilenceDuration <= 0 {
		o.SilenceDuration = defaultSilenceDuration
	}
	if o.MinDuration <= 0 {
		o.MinDuration = defaultMinDuration
	}
	if o.RetryAttempts <= 0 {
		o.RetryAttempts = defaultRetryAttempts
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = defaultRetryDelay
	}
	return o
}

// usesVAD reports whether the mode classifies frames for silence stopping.
func (o Options) usesVAD() bool {
	return o.Mode == ModeContinuous || o.Mode == ModeVoiceActivity
}

// Session is one complete recording to transcription cycle. Create with
// NewSession, observe with OnStatus/OnResult, drive with Start, StopRecording,
// and Stop.
type Session struct {
	logger     *slog.Logger
	opts       Options
	open       SourceOpener
	detector   *vad.Detector
	transcribe transcribe.Func
	media      MediaControl
	saveFailed SaveFunc

	// injectable for deterministic tests
	now   func() time.Time
	sleep func(time.Duration)

	mu          sync.Mutex
	state       fsm.State
	isRecording bool
	isRunning   bool
	done        chan struct{}

	callbackMu sync.Mutex
	statusFns  []StatusFunc
	resultFns  []ResultFunc
}

// NewSession wires a session from its collaborators. The media control may be
// nil; the detector falls back to the default threshold when nil.
func NewSession(opts Options, open SourceOpener, fn transcribe.Func, detector *vad.Detector, media MediaControl, logger *slog.Logger) *Session {
	if detector == nil {
		detector = vad.New(0)
	}
	s := &Session{
		logger:     logger,
		opts:       opts.withDefaults(),
		open:       open,
		detector:   detector,
		transcribe: fn,
		media:      media,
		state:      fsm.StateIdle,
		now:        time.Now,
		sleep:      time.Sleep,
	}
	s.saveFailed = func(samples []int16, sampleRate int) string {
		return SaveFailedAudio(samples, sampleRate, logger)
	}
	return s
}

// OnStatus registers a status observer. Observers run on the worker goroutine.
func (s *Session) OnStatus(fn StatusFunc) {
	s.callbackMu.Lock()
	defer s.callbackMu.Unlock()
	s.statusFns = append(s.statusFns, fn)
}

// OnResult registers a transcript observer. Observers run on the worker goroutine.
func (s *Session) OnResult(fn ResultFunc) {
	s.callbackMu.Lock()
	defer s.callbackMu.Unlock()
	s.resultFns = append(s.resultFns, fn)
}

// Start launches the session worker. A session runs at most once.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	if s.done != nil {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.isRecording = true
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.run(ctx)
}

// StopRecording asks the recording loop to stop at the next frame boundary
// and proceed to transcription.
func (s *Session) StopRecording() {
	s.mu.Lock()
	s.isRecording = false
	s.mu.Unlock()
}

// Stop cancels the whole session and blocks until the worker has exited.
func (s *Session) Stop() {
	s.mu.Lock()
	s.isRunning = false
	s.isRecording = false
	s.mu.Unlock()
	s.Wait()
}

// Wait blocks until the session worker has exited, without cancelling it.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Recording reports whether the capture loop is still accumulating frames.
func (s *Session) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRecording
}

// Running reports whether the session worker is still live.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// run is the worker body. Any panic is the single fatal path: it resolves to
// an error status and an empty result, never a crashed goroutine.
func (s *Session) run(ctx context.Context) {
	defer close(s.doneCh())
	defer func() {
		s.mu.Lock()
		s.isRecording = false
		s.isRunning = false
		s.mu.Unlock()
	}()
	defer func() {
		if r := recover(); r != nil {
			if s.logger != nil {
				s.logger.Error("session worker panic", "panic", r)
			}
			s.step(fsm.EventFail)
			s.emitResult("")
		}
	}()

	samples, ok := s.record(ctx)
	if !ok {
		// Aborted (continuous timeout or external stop) or too short.
		s.step(fsm.EventDiscard)
		return
	}

	s.step(fsm.EventStop)
	text, ok := s.transcribeWithRetry(ctx, samples)
	if !ok {
		if path := s.saveFailed(samples, s.opts.SampleRate); path != "" && s.logger != nil {
			s.logger.Info("saved audio for manual retry", "path", path)
		}
		s.step(fsm.EventExhausted)
		return
	}

	if s.media != nil {
		s.media.Resume()
	}
	s.step(fsm.EventTranscribed)
	s.emitResult(text)
}

// record accumulates frames until a stop condition and returns the captured
// samples. ok is false when nothing should be transcribed.
func (s *Session) record(ctx context.Context) ([]int16, bool) {
	src, err := s.open(ctx)
	if err != nil {
		panic(err)
	}
	defer func() { _ = src.Stop() }()

	if s.media != nil {
		s.media.Pause()
	}
	s.step(fsm.EventStart)

	onsetFrames := int(s.opts.OnsetSkip / s.opts.FrameDuration)
	silenceQuota := int(s.opts.SilenceDuration / s.opts.FrameDuration)
	if silenceQuota < 1 {
		silenceQuota = 1
	}

	var buf []int16
	frameIndex := 0
	speechSeen := false
	silentRun := 0
	lastSpeech := s.now()

	for s.Recording() && s.Running() {
		frame, open := <-src.Frames()
		if !open {
			break
		}
		frameIndex++
		if frameIndex <= onsetFrames {
			continue
		}
		buf = append(buf, frame...)

		if !s.opts.usesVAD() {
			continue
		}
		if s.detector.IsSpeech(frame) {
			speechSeen = true
			silentRun = 0
			lastSpeech = s.now()
			continue
		}
		if speechSeen {
			silentRun++
			if silentRun >= silenceQuota {
				break
			}
		}
		if s.opts.Mode == ModeContinuous && s.opts.ContinuousTimeout > 0 &&
			s.now().Sub(lastSpeech) >= s.opts.ContinuousTimeout {
			// The whole listening loop ends, not just this utterance.
			s.mu.Lock()
			s.isRunning = false
			s.isRecording = false
			s.mu.Unlock()
			return nil, false
		}
	}

	if !s.Running() {
		return nil, false
	}

	duration := time.Duration(len(buf)) * time.Second / time.Duration(s.opts.SampleRate)
	if duration < s.opts.MinDuration {
		if s.logger != nil {
			s.logger.Debug("recording too short, discarding", "duration", duration.String())
		}
		return nil, false
	}
	return buf, true
}

// transcribeWithRetry runs the attempt budget. Success is non-blank text;
// errors are logged and counted, never fatal.
func (s *Session) transcribeWithRetry(ctx context.Context, samples []int16) (string, bool) {
	for attempt := 1; attempt <= s.opts.RetryAttempts; attempt++ {
		text, err := s.callTranscribe(ctx, samples)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("transcription attempt failed", "attempt", attempt, "error", err.Error())
			}
		} else if strings.TrimSpace(text) != "" {
			return text, true
		}
		if attempt < s.opts.RetryAttempts {
			s.sleep(s.opts.RetryDelay)
		}
	}
	return "", false
}

// callTranscribe converts a panicking transcriber into a failed attempt.
func (s *Session) callTranscribe(ctx context.Context, samples []int16) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = panicError{value: r}
		}
	}()
	return s.transcribe(ctx, samples, s.opts.SampleRate)
}

type panicError struct {
	value any
}

func (e panicError) Error() string {
	return "transcriber panic: " + panicString(e.value)
}

func panicString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	default:
		return "unknown panic"
	}
}

func (s *Session) doneCh() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// step advances the lifecycle machine and emits the resulting state as a
// status. Events the machine rejects are logged and emit nothing, so observers
// never see an out-of-order status.
func (s *Session) step(event fsm.Event) {
	s.mu.Lock()
	next, err := fsm.Transition(s.state, event)
	if err == nil {
		s.state = next
	}
	s.mu.Unlock()

	if err != nil {
		if s.logger != nil {
			s.logger.Error("session lifecycle", "error", err.Error())
		}
		return
	}
	s.emitStatus(string(next))
}

// State reports the session's current lifecycle state.
func (s *Session) State() fsm.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) emitStatus(status string) {
	s.callbackMu.Lock()
	fns := make([]StatusFunc, len(s.statusFns))
	copy(fns, s.statusFns)
	s.callbackMu.Unlock()
	for _, fn := range fns {
		fn(status, s.opts.UseLLM)
	}
}

func (s *Session) emitResult(text string) {
	s.callbackMu.Lock()
	fns := make([]ResultFunc, len(s.resultFns))
	copy(fns, s.resultFns)
	s.callbackMu.Unlock()
	for _, fn := range fns {
		fn(text)
	}
}
