package processor

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/storage"
)

// Propose orchestrates the naming pipeline for a folder: every video is
// classified concurrently, then sequences are allocated one by one in
// listing order.
func (p *implProcessor) Propose(ctx context.Context, provider storage.Provider, folderKey string, opts ProposeOptions) ([]Proposal, error) {
	if err := opts.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	startTime := time.Now()
	p.logger.Info(ctx, "Listing videos in folder %s", folderKey)

	videos, err := provider.ListVideos(ctx, folderKey)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	videos = selectVideos(videos, opts.Only)
	p.logger.Info(ctx, "Found %d videos, classifying with concurrency %d", len(videos), p.maxConcurrent)

	proposals := make([]Proposal, len(videos))
	sem := newSemaphore(p.maxConcurrent)
	var wg sync.WaitGroup

	for i, video := range videos {
		if err := sem.acquire(ctx); err != nil {
			break
		}
		wg.Add(1)
		go func(i int, video naming.VideoCandidate) {
			defer wg.Done()
			defer sem.release()
			proposals[i] = p.inspect(ctx, provider, video, opts.Settings)
		}(i, video)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	proposals, err = p.Recompose(ctx, provider, folderKey, proposals, opts)
	if err != nil {
		return nil, err
	}

	p.logger.Info(ctx, "Proposed %d names in %s", len(proposals), time.Since(startTime))
	return proposals, nil
}

// Recompose fetches the folder's current names and assigns sequences and
// names to proposals in order.
func (p *implProcessor) Recompose(ctx context.Context, provider storage.Provider, folderKey string, proposals []Proposal, opts ProposeOptions) ([]Proposal, error) {
	if err := opts.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	// The snapshot is taken right before allocation so renames made while
	// classification was running are observed.
	existing, err := provider.ListNames(ctx, folderKey)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}

	out := make([]Proposal, len(proposals))
	copy(out, proposals)
	p.assign(out, existing, opts)
	return out, nil
}

func (p *implProcessor) assign(proposals []Proposal, existing []string, opts ProposeOptions) {
	seq := naming.NewSequencer(existing, p.format.SequencePrefix, opts.Settings.StartingSequence)

	for i := range proposals {
		prop := &proposals[i]

		code := prop.Classification.Multiplier
		if override, ok := opts.Multipliers[prop.Video.ID]; ok && override.Valid() {
			code = override
		}
		if !code.Valid() {
			code = opts.Settings.DefaultMultiplier
		}

		prop.Multiplier = code
		prop.Sequence = seq.Next(code)
		name := p.format.Compose(naming.Name{
			Multiplier:      code,
			Sequence:        prop.Sequence,
			Safe:            prop.Classification.Safe,
			Creator:         opts.Settings.CreatorCode,
			Description:     prop.Classification.Description,
			DurationSeconds: prop.DurationSeconds,
		})
		prop.Proposed = naming.ProposedName{SourceID: prop.Video.ID, Name: name}
		seq.Reserve(name)
	}
}

func selectVideos(videos []naming.VideoCandidate, only []string) []naming.VideoCandidate {
	if len(only) == 0 {
		return videos
	}
	var out []naming.VideoCandidate
	for _, v := range videos {
		if slices.Contains(only, v.ID) {
			out = append(out, v)
		}
	}
	return out
}

func (p *implProcessor) Classify(transcript string) naming.Classification {
	return p.classifier.Classify(transcript)
}
