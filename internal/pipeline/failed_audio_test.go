package pipeline

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mewkiz/flac"
	"github.com/stretchr/testify/require"
)

func TestSaveFailedAudioValidationShortCircuits(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	logger := slog.New(slog.DiscardHandler)

	require.Empty(t, SaveFailedAudio(nil, 16000, logger))
	require.Empty(t, SaveFailedAudio([]int16{}, 16000, logger))
	require.Empty(t, SaveFailedAudio([]int16{1, 2, 3}, 0, logger))
	require.Empty(t, SaveFailedAudio([]int16{1, 2, 3}, -16000, logger))

	// Validation failures never touch the filesystem.
	_, err := os.Stat(filepath.Join(home, ".whisperwriter"))
	require.True(t, os.IsNotExist(err))
}

func TestSaveFailedAudioWritesDecodableFLAC(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	samples := make([]int16, 8000)
	for i := range samples {
		samples[i] = int16(i%2000 - 1000)
	}

	path := SaveFailedAudio(samples, 16000, slog.New(slog.DiscardHandler))
	require.NotEmpty(t, path)
	require.Equal(t, filepath.Join(home, ".whisperwriter", "failed_audio"), filepath.Dir(path))
	require.Regexp(t, `^failed_\d{8}-\d{6}\.flac$`, filepath.Base(path))

	stream, err := flac.ParseFile(path)
	require.NoError(t, err)
	defer stream.Close()

	require.Equal(t, uint32(16000), stream.Info.SampleRate)
	require.Equal(t, uint8(1), stream.Info.NChannels)
	require.Equal(t, uint8(16), stream.Info.BitsPerSample)
	require.Equal(t, uint64(len(samples)), stream.Info.NSamples)

	var decoded []int16
	for {
		frame, err := stream.ParseNext()
		if err != nil {
			break
		}
		for _, sample := range frame.Subframes[0].Samples {
			decoded = append(decoded, int16(sample))
		}
	}
	require.Equal(t, samples, decoded)
}

func TestSaveFailedAudioWriteFailureReturnsEmptyPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// Claim the target directory path with a regular file so MkdirAll fails.
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".whisperwriter"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".whisperwriter", "failed_audio"), []byte("x"), 0o644))

	path := SaveFailedAudio([]int16{1, 2, 3}, 16000, slog.New(slog.DiscardHandler))
	require.Empty(t, path)
}
