// Package transcribe turns captured PCM samples into text.
package transcribe

import "context"

// Func converts int16 mono samples at the given rate into a transcript.
// Implementations must be safe to call repeatedly; failures surface as an
// error or an empty string, never a panic.
type Func func(ctx context.Context, samples []int16, sampleRate int) (string, error)
