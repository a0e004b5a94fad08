// Package media wraps the ffmpeg tools used to prepare a video for
// transcription.
package media

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/clipnamer/internal/logger"
	"github.com/nguyentantai21042004/clipnamer/pkg/executor"
)

type Toolkit struct {
	executor executor.Executor
	logger   logger.Logger
	ffmpeg   string
	ffprobe  string
}

func New(exec executor.Executor, log logger.Logger, ffmpeg, ffprobe string) *Toolkit {
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	return &Toolkit{executor: exec, logger: log, ffmpeg: ffmpeg, ffprobe: ffprobe}
}

// ExtractAudio extracts audio from video file and converts to 16kHz mono WAV
// next to the source. The caller removes the returned file.
func (t *Toolkit) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	audioPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + "_audio.wav"

	t.logger.Debug(ctx, "Extracting audio: %s", videoPath)

	// -vn: no video, -ar 16000 -ac 1: what speech models expect
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := t.executor.Execute(ctx, t.ffmpeg, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}
	return audioPath, nil
}

// ProbeDuration returns the container duration rounded to whole seconds.
func (t *Toolkit) ProbeDuration(ctx context.Context, videoPath string) (int, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	}
	out, err := t.executor.Execute(ctx, t.ffprobe, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}
	return parseDuration(out)
}

func parseDuration(out string) (int, error) {
	s := strings.TrimSpace(out)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
		return 0, fmt.Errorf("ffprobe duration: unexpected output %q", out)
	}
	return int(math.Round(secs)), nil
}
