// Package transcriber turns an extracted audio track into plain text.
package transcriber

import (
	"context"
	"errors"
)

// ErrUnavailable means no transcript could be produced for a video.
var ErrUnavailable = errors.New("transcription unavailable")

// Transcriber converts a 16 kHz mono WAV file into transcript text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
