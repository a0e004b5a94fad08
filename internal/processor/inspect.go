package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/storage"
	"github.com/nguyentantai21042004/clipnamer/internal/transcriber"
)

// inspect classifies one video. It never fails: any error on the way to a
// transcript degrades to the default classification.
func (p *implProcessor) inspect(ctx context.Context, provider storage.Provider, video naming.VideoCandidate, settings naming.Settings) Proposal {
	prop := Proposal{
		Video:           video,
		DurationSeconds: video.KnownDurationSeconds,
	}

	transcript, duration, err := p.transcribe(ctx, provider, video)
	if prop.DurationSeconds <= 0 && duration > 0 {
		prop.DurationSeconds = duration
	}
	if err != nil {
		if !errors.Is(err, transcriber.ErrUnavailable) {
			p.logger.Warn(ctx, "Classification unavailable for %s: %v", video.DisplayName, err)
		}
		prop.Classification = naming.Unavailable(settings.DefaultMultiplier)
		prop.TranscriptError = err.Error()
		return prop
	}

	prop.Transcript = transcript
	prop.Classification = p.classifier.Classify(transcript)
	p.logger.Debug(ctx, "Classified %s: safe=%t multiplier=%s description=%s",
		video.DisplayName, prop.Classification.Safe, prop.Classification.Multiplier, prop.Classification.Description)
	return prop
}

// transcribe downloads a video into a scratch directory, probes its
// duration when the listing had none, and transcribes its audio track.
func (p *implProcessor) transcribe(ctx context.Context, provider storage.Provider, video naming.VideoCandidate) (string, int, error) {
	needDuration := video.KnownDurationSeconds <= 0 && p.media != nil
	canTranscribe := p.transcriber != nil && p.media != nil
	if !needDuration && !canTranscribe {
		return "", 0, transcriber.ErrUnavailable
	}

	workDir, err := p.workDir()
	if err != nil {
		return "", 0, err
	}
	defer p.cleanupDir(ctx, workDir)

	videoPath := filepath.Join(workDir, "source"+strings.ToLower(filepath.Ext(video.DisplayName)))
	if err := p.download(ctx, provider, video.ID, videoPath); err != nil {
		return "", 0, err
	}

	duration := 0
	if needDuration {
		d, err := p.media.ProbeDuration(ctx, videoPath)
		if err != nil {
			p.logger.Warn(ctx, "Failed to probe duration of %s: %v", video.DisplayName, err)
		} else {
			duration = d
		}
	}

	if !canTranscribe {
		return "", duration, transcriber.ErrUnavailable
	}

	audioPath, err := p.media.ExtractAudio(ctx, videoPath)
	if err != nil {
		return "", duration, fmt.Errorf("extract audio: %w", err)
	}
	defer p.cleanupTempFile(ctx, audioPath)

	text, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return "", duration, fmt.Errorf("transcribe: %w", err)
	}
	return text, duration, nil
}

func (p *implProcessor) workDir() (string, error) {
	if p.tempDir != "" {
		if err := os.MkdirAll(p.tempDir, 0o755); err != nil {
			return "", fmt.Errorf("create temp dir: %w", err)
		}
	}
	dir, err := os.MkdirTemp(p.tempDir, "clip-*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	return dir, nil
}

func (p *implProcessor) download(ctx context.Context, provider storage.Provider, id, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create download file: %w", err)
	}
	if err := provider.Download(ctx, id, f); err != nil {
		f.Close()
		return fmt.Errorf("download: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close download file: %w", err)
	}
	return nil
}
