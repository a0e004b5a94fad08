package naming

import "fmt"

// VideoCandidate is a video entry returned by a storage listing.
type VideoCandidate struct {
	ID                   string `json:"id"`
	DisplayName          string `json:"display_name"`
	MediaType            string `json:"media_type"`
	KnownDurationSeconds int    `json:"known_duration_seconds"`
	SizeBytes            int64  `json:"size_bytes,omitempty"`
}

// Classification is derived from a transcript alone.
type Classification struct {
	Safe        bool       `json:"safe"`
	Description string     `json:"description"`
	Multiplier  Multiplier `json:"multiplier"`
}

// Settings are the per-session naming inputs chosen by the user.
type Settings struct {
	CreatorCode       string     `json:"creator_code" yaml:"creator_code"`
	StartingSequence  int        `json:"starting_sequence" yaml:"starting_sequence"`
	DefaultMultiplier Multiplier `json:"default_multiplier" yaml:"default_multiplier"`
}

func (s Settings) Validate() error {
	if s.StartingSequence < 1 {
		return fmt.Errorf("starting sequence must be >= 1, got %d", s.StartingSequence)
	}
	if !s.DefaultMultiplier.Valid() {
		return fmt.Errorf("unknown default multiplier %q", s.DefaultMultiplier)
	}
	return nil
}

// ProposedName is a composed name for one source file. Edited marks a
// manual override that no longer follows from the inputs.
type ProposedName struct {
	SourceID string `json:"source_id"`
	Name     string `json:"name"`
	Edited   bool   `json:"edited"`
}

// Override replaces the composed name with a user edit.
func (p *ProposedName) Override(name string) {
	if name == p.Name {
		return
	}
	p.Name = name
	p.Edited = true
}
