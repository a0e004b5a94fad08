package processor

import (
	"context"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/storage"
)

// Processor runs the naming pipeline over one storage folder.
type Processor interface {
	// Propose classifies every video in a folder and composes a name for it.
	Propose(ctx context.Context, provider storage.Provider, folderKey string, opts ProposeOptions) ([]Proposal, error)
	// Recompose allocates fresh sequences and names for proposals that were
	// already classified, discarding any manual edits.
	Recompose(ctx context.Context, provider storage.Provider, folderKey string, proposals []Proposal, opts ProposeOptions) ([]Proposal, error)
	// Rename applies a batch of renames. It never fails as a whole.
	Rename(ctx context.Context, provider storage.Provider, requests []RenameRequest) BatchResult
	// Classify classifies a transcript with the configured rules.
	Classify(transcript string) naming.Classification
}

// MediaToolkit prepares a downloaded video for transcription.
type MediaToolkit interface {
	ExtractAudio(ctx context.Context, videoPath string) (string, error)
	ProbeDuration(ctx context.Context, path string) (int, error)
}
