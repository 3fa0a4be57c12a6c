// Package vad classifies audio frames as speech or silence by RMS energy.
package vad

import "math"

// DefaultThreshold is the normalized RMS energy above which a frame counts as
// speech. Tuned for 16-bit mono microphone capture at typical input gain.
const DefaultThreshold = 0.015

// Detector is a stateless frame-level voice-activity classifier.
type Detector struct {
	threshold float64
}

// New returns a detector with the given normalized RMS threshold.
// Non-positive thresholds fall back to DefaultThreshold.
func New(threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{threshold: threshold}
}

// IsSpeech reports whether the frame's energy exceeds the threshold.
func (d *Detector) IsSpeech(frame []int16) bool {
	return RMS(frame) > d.threshold
}

// Threshold returns the configured normalized RMS threshold.
func (d *Detector) Threshold() float64 {
	return d.threshold
}

// RMS computes the root mean square of the frame, normalized to [0, 1].
func RMS(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, sample := range frame {
		normalized := float64(sample) / 32768.0
		sum += normalized * normalized
	}
	return math.Sqrt(sum / float64(len(frame)))
}
