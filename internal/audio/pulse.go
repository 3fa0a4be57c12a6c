// Package audio handles input-source discovery, selection, and PCM frame capture.
package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jfreymuth/pulse"
	pulseproto "github.com/jfreymuth/pulse/proto"
)

const (
	// DefaultSampleRate is mono 16 kHz, the rate speech models expect.
	DefaultSampleRate = 16000

	// DefaultFrameDuration is the capture frame length handed to the
	// voice-activity classifier.
	DefaultFrameDuration = 30 * time.Millisecond
)

// Device describes one Pulse input source.
type Device struct {
	ID          string
	Description string
	State       string
	Available   bool
	Muted       bool
	Default     bool
}

// Selection is the resolved capture source plus optional fallback warning context.
type Selection struct {
	Device   Device
	Warning  string
	Fallback bool
}

func newPulseClient() (*pulse.Client, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("whisperwriter"),
		pulse.ClientApplicationIconName("audio-input-microphone"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	return client, nil
}

// ListDevices returns available Pulse input sources with default/availability metadata.
func ListDevices(_ context.Context) ([]Device, error) {
	client, err := newPulseClient()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	defaultSource, err := client.DefaultSource()
	if err != nil {
		return nil, fmt.Errorf("read default source: %w", err)
	}
	defaultID := defaultSource.ID()

	var sourceInfos pulseproto.GetSourceInfoListReply
	if err := client.RawRequest(&pulseproto.GetSourceInfoList{}, &sourceInfos); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	devices := make([]Device, 0, len(sourceInfos))
	for _, source := range sourceInfos {
		if source == nil {
			continue
		}
		devices = append(devices, Device{
			ID:          source.SourceName,
			Description: source.Device,
			State:       sourceStateString(source.State),
			Available:   sourceAvailable(source),
			Muted:       source.Mute,
			Default:     source.SourceName == defaultID,
		})
	}
	return devices, nil
}

// SelectDevice resolves a configured sound_device term against live devices.
// An empty term or "default" picks the server default source.
func SelectDevice(ctx context.Context, term string) (Selection, error) {
	devices, err := ListDevices(ctx)
	if err != nil {
		return Selection{}, err
	}
	return selectDeviceFromList(devices, term)
}

// selectDeviceFromList applies selection policy to a pre-fetched device list.
// A matching but unusable device falls back to the default source with a
// warning rather than failing the session.
func selectDeviceFromList(devices []Device, term string) (Selection, error) {
	if len(devices) == 0 {
		return Selection{}, errors.New("no audio input devices found")
	}

	var defaultDevice *Device
	for i := range devices {
		if devices[i].Default {
			defaultDevice = &devices[i]
			break
		}
	}

	chooseDefault := func() (Selection, error) {
		if defaultDevice == nil {
			return Selection{}, errors.New("default audio source is unavailable")
		}
		if !defaultDevice.Available {
			return Selection{}, fmt.Errorf("default audio source %q is not available", defaultDevice.ID)
		}
		if defaultDevice.Muted {
			return Selection{}, fmt.Errorf("default audio source %q is muted", defaultDevice.ID)
		}
		return Selection{Device: *defaultDevice}, nil
	}

	term = strings.TrimSpace(strings.ToLower(term))
	if term == "" || term == "default" {
		return chooseDefault()
	}

	var matched *Device
	for i := range devices {
		if deviceMatches(devices[i], term) {
			matched = &devices[i]
			break
		}
	}
	if matched == nil {
		return Selection{}, fmt.Errorf("sound_device %q did not match any input device", term)
	}
	if matched.Available && !matched.Muted {
		return Selection{Device: *matched}, nil
	}

	reason := "unavailable"
	if matched.Muted {
		reason = "muted"
	}
	fallback, err := chooseDefault()
	if err != nil {
		return Selection{}, fmt.Errorf("sound_device %q is %s and no usable default: %w", matched.ID, reason, err)
	}
	fallback.Warning = fmt.Sprintf("sound_device %q is %s; falling back to %q", matched.ID, reason, fallback.Device.ID)
	fallback.Fallback = matched.ID != fallback.Device.ID
	return fallback, nil
}

// deviceMatches reports whether a search term matches a device id or description.
func deviceMatches(device Device, term string) bool {
	if term == "" {
		return false
	}
	id := strings.ToLower(device.ID)
	desc := strings.ToLower(device.Description)
	return strings.Contains(id, term) || strings.Contains(desc, term)
}

// Source is a live capture stream consumed by the recording loop. Frames
// carries fixed-size int16 sample frames and is closed after Stop.
type Source interface {
	Frames() <-chan []int16
	Stop() error
}

// Capture streams fixed-size int16 PCM frames from one selected Pulse source.
type Capture struct {
	device       Device
	sampleRate   int
	frameSamples int

	client *pulse.Client
	stream *pulse.RecordStream

	frames chan []int16
	stopCh chan struct{}

	mu      sync.Mutex
	pending []byte
	stopped bool

	inflight sync.WaitGroup
	samples  atomic.Int64
}

// StartCapture creates and starts a mono s16 record stream delivering
// frameDuration-sized frames at the given rate. Zero values fall back to
// DefaultSampleRate and DefaultFrameDuration.
func StartCapture(ctx context.Context, selected Device, sampleRate int, frameDuration time.Duration) (*Capture, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if frameDuration <= 0 {
		frameDuration = DefaultFrameDuration
	}
	frameSamples := int(float64(sampleRate) * frameDuration.Seconds())
	if frameSamples <= 0 {
		return nil, fmt.Errorf("frame duration %s too short for rate %d", frameDuration, sampleRate)
	}

	client, err := newPulseClient()
	if err != nil {
		return nil, err
	}

	source, err := client.SourceByID(selected.ID)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("resolve source %q: %w", selected.ID, err)
	}

	capture := &Capture{
		device:       selected,
		sampleRate:   sampleRate,
		frameSamples: frameSamples,
		client:       client,
		frames:       make(chan []int16, 128),
		stopCh:       make(chan struct{}),
	}

	writer := pulse.NewWriter(writerFunc(capture.onPCM), pulseproto.FormatInt16LE)
	stream, err := client.NewRecord(
		writer,
		pulse.RecordSource(source),
		pulse.RecordMono,
		pulse.RecordSampleRate(sampleRate),
		pulse.RecordBufferFragmentSize(uint32(frameSamples*2)),
		pulse.RecordMediaName("whisperwriter dictation"),
	)
	if err != nil {
		capture.Close()
		return nil, fmt.Errorf("create pulse record stream: %w", err)
	}

	capture.stream = stream
	stream.Start()

	go func() {
		<-ctx.Done()
		_ = capture.Stop()
	}()

	return capture, nil
}

// Device returns capture metadata for logging and diagnostics.
func (c *Capture) Device() Device {
	return c.device
}

// SampleRate returns the negotiated capture rate.
func (c *Capture) SampleRate() int {
	return c.sampleRate
}

// Frames returns the PCM stream as fixed-size int16 frames.
func (c *Capture) Frames() <-chan []int16 {
	return c.frames
}

// SamplesCaptured reports total samples accepted from Pulse.
func (c *Capture) SamplesCaptured() int64 {
	return c.samples.Load()
}

// Stop halts the stream, discards any partial trailing frame, and closes
// Frames exactly once.
func (c *Capture) Stop() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil
	}
	c.stopped = true
	close(c.stopCh)
	c.mu.Unlock()

	if c.stream != nil {
		c.stream.Stop()
		c.stream.Close()
	}
	if c.client != nil {
		c.client.Close()
	}

	c.inflight.Wait()

	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()

	close(c.frames)
	return nil
}

// Close is a convenience alias for Stop.
func (c *Capture) Close() {
	_ = c.Stop()
}

// onPCM receives raw Pulse bytes and emits whole frames to c.frames.
func (c *Capture) onPCM(buffer []byte) (int, error) {
	if len(buffer) == 0 {
		return 0, nil
	}

	select {
	case <-c.stopCh:
		return 0, io.EOF
	default:
	}

	frameBytes := c.frameSamples * 2

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return 0, io.EOF
	}
	// Guard Add under the same mutex as c.stopped to avoid Add/Wait races.
	c.inflight.Add(1)

	c.pending = append(c.pending, buffer...)

	frames := make([][]int16, 0, len(c.pending)/frameBytes)
	for len(c.pending) >= frameBytes {
		frames = append(frames, decodePCM16(c.pending[:frameBytes]))
		c.pending = c.pending[frameBytes:]
	}
	c.mu.Unlock()
	defer c.inflight.Done()

	c.samples.Add(int64(len(buffer) / 2))

	for _, frame := range frames {
		select {
		case <-c.stopCh:
			return 0, io.EOF
		case c.frames <- frame:
		}
	}

	return len(buffer), nil
}

// decodePCM16 converts little-endian s16 bytes into samples.
func decodePCM16(raw []byte) []int16 {
	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	return samples
}

// writerFunc adapts a function to io.Writer for pulse.NewWriter.
type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(b []byte) (int, error) {
	return f(b)
}

// sourceStateString maps Pulse source state constants to human-readable values.
func sourceStateString(state uint32) string {
	switch state {
	case 0:
		return "running"
	case 1:
		return "idle"
	case 2:
		return "suspended"
	default:
		return fmt.Sprintf("unknown(%d)", state)
	}
}

// sourceAvailable maps Pulse source port availability to a simple boolean.
func sourceAvailable(source *pulseproto.GetSourceInfoReply) bool {
	if source == nil {
		return false
	}
	if len(source.Ports) == 0 {
		return true
	}
	for _, port := range source.Ports {
		if port.Name != source.ActivePortName {
			continue
		}
		// PulseAudio values: unknown=0, no=1, yes=2.
		return port.Available == 0 || port.Available == 2
	}
	return true
}
