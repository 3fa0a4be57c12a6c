package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

const flacBlockSize = 4096

// SaveFunc persists samples for later manual retry and returns the file path,
// or an empty string when nothing was written.
type SaveFunc func(samples []int16, sampleRate int) string

// SaveFailedAudio writes samples to a timestamped FLAC file under
// ~/.whisperwriter/failed_audio. Empty input or a non-positive rate is a
// validation short-circuit: no filesystem access, empty path. Write failures
// degrade to a log line and an empty path.
func SaveFailedAudio(samples []int16, sampleRate int, logger *slog.Logger) string {
	if len(samples) == 0 || sampleRate <= 0 {
		return ""
	}

	home, err := os.UserHomeDir()
	if err != nil {
		logWarn(logger, "resolve home for failed audio", err)
		return ""
	}
	dir := filepath.Join(home, ".whisperwriter", "failed_audio")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logWarn(logger, "create failed audio dir", err)
		return ""
	}

	name := "failed_" + time.Now().Format("20060102-150405") + ".flac"
	path := filepath.Join(dir, name)
	if err := writeFLAC(path, samples, sampleRate); err != nil {
		logWarn(logger, "write failed audio", err)
		return ""
	}
	return path
}

// writeFLAC encodes mono s16 samples losslessly with verbatim subframes.
func writeFLAC(path string, samples []int16, sampleRate int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer file.Close()

	info := &meta.StreamInfo{
		BlockSizeMin:  16,
		BlockSizeMax:  flacBlockSize,
		SampleRate:    uint32(sampleRate),
		NChannels:     1,
		BitsPerSample: 16,
		NSamples:      uint64(len(samples)),
	}
	enc, err := flac.NewEncoder(file, info)
	if err != nil {
		return fmt.Errorf("create flac encoder: %w", err)
	}

	for offset := 0; offset < len(samples); offset += flacBlockSize {
		end := offset + flacBlockSize
		if end > len(samples) {
			end = len(samples)
		}
		block := samples[offset:end]

		pcm := make([]int32, len(block))
		for i, sample := range block {
			pcm[i] = int32(sample)
		}

		f := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: false,
				BlockSize:         uint16(len(block)),
				SampleRate:        uint32(sampleRate),
				Channels:          frame.ChannelsMono,
				BitsPerSample:     16,
			},
			Subframes: []*frame.Subframe{{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   pcm,
				NSamples:  len(block),
			}},
		}
		if err := enc.WriteFrame(f); err != nil {
			_ = enc.Close()
			return fmt.Errorf("write flac frame: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish flac stream: %w", err)
	}
	return nil
}

func logWarn(logger *slog.Logger, message string, err error) {
	if logger == nil {
		return
	}
	logger.Warn(message, "error", err.Error())
}
