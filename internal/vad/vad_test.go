package vad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeTone(samples int, amplitude float64) []int16 {
	frame := make([]int16, samples)
	for i := range frame {
		frame[i] = int16(amplitude * 32767 * math.Sin(2*math.Pi*float64(i)/64))
	}
	return frame
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name  string
		frame []int16
		want  float64
	}{
		{name: "empty", frame: nil, want: 0},
		{name: "silence", frame: make([]int16, 480), want: 0},
		{name: "full scale square", frame: []int16{32767, -32767, 32767, -32767}, want: 0.99997},
		{name: "half scale square", frame: []int16{16384, -16384, 16384, -16384}, want: 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, RMS(tc.frame), 0.001)
		})
	}
}

func TestDetectorClassification(t *testing.T) {
	d := New(DefaultThreshold)

	require.False(t, d.IsSpeech(make([]int16, 480)))
	require.False(t, d.IsSpeech(makeTone(480, 0.001)))
	require.True(t, d.IsSpeech(makeTone(480, 0.1)))
}

func TestDetectorThresholdOverride(t *testing.T) {
	quiet := makeTone(480, 0.01)

	require.False(t, New(DefaultThreshold).IsSpeech(quiet))
	require.True(t, New(0.002).IsSpeech(quiet))
}

func TestDetectorThresholdFallback(t *testing.T) {
	require.Equal(t, DefaultThreshold, New(0).Threshold())
	require.Equal(t, DefaultThreshold, New(-1).Threshold())
	require.Equal(t, 0.25, New(0.25).Threshold())
}
