package processor

import (
	"errors"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
)

// ErrInvalidSettings wraps a validation failure of the naming settings.
var ErrInvalidSettings = errors.New("invalid naming settings")

type ProposeOptions struct {
	Settings naming.Settings `json:"settings"`
	// Multipliers overrides the detected multiplier per source id.
	Multipliers map[string]naming.Multiplier `json:"multipliers,omitempty"`
	// Only restricts a proposal run to these source ids. Empty means all.
	Only []string `json:"only,omitempty"`
}

// Proposal is the suggested name for one video along with everything it
// was derived from.
type Proposal struct {
	Video           naming.VideoCandidate `json:"video"`
	Classification  naming.Classification `json:"classification"`
	Multiplier      naming.Multiplier     `json:"multiplier"`
	DurationSeconds int                   `json:"duration_seconds"`
	Sequence        int                   `json:"sequence"`
	Proposed        naming.ProposedName   `json:"proposed"`
	Transcript      string                `json:"transcript,omitempty"`
	// TranscriptError is set when classification fell back to defaults.
	TranscriptError string `json:"transcript_error,omitempty"`
}

type RenameRequest struct {
	SourceID string `json:"source_id"`
	NewName  string `json:"new_name"`
}

// Outcome is the result of one rename request.
type Outcome struct {
	SourceID  string `json:"source_id"`
	NewName   string `json:"new_name"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

type BatchResult struct {
	RenamedCount int       `json:"renamed_count"`
	FailedIDs    []string  `json:"failed_ids"`
	Outcomes     []Outcome `json:"outcomes"`
	// Unauthenticated is set when any request was rejected for missing
	// credentials, so the caller can prompt for a new session.
	Unauthenticated bool `json:"unauthenticated,omitempty"`
}

// Requests turns proposals into rename requests using their current names.
func Requests(proposals []Proposal) []RenameRequest {
	reqs := make([]RenameRequest, 0, len(proposals))
	for _, p := range proposals {
		reqs = append(reqs, RenameRequest{SourceID: p.Video.ID, NewName: p.Proposed.Name})
	}
	return reqs
}
