package naming

import (
	"strconv"
	"strings"
)

// Format holds the template constants of a composed name:
//
//	<multiplier><prefix><sequence>.<label>.<creator>.<description>.<duration>sec.<ext>
type Format struct {
	SequenceWidth  int
	SequencePrefix string
	SafeLabel      string
	// UnsafeLabel marks unsafe videos. Empty omits the label segment.
	UnsafeLabel string
	Extension   string
}

func DefaultFormat() Format {
	return Format{
		SequenceWidth: DefaultSequenceWidth,
		SafeLabel:     "TTS",
		UnsafeLabel:   "NTTS",
		Extension:     "mp4",
	}
}

// Name is the full set of inputs a composed filename derives from.
type Name struct {
	Multiplier      Multiplier
	Sequence        int
	Safe            bool
	Creator         string
	Description     string
	DurationSeconds int
}

var pathSeparators = strings.NewReplacer("/", "", "\\", "")

// Compose renders n with the format's template.
func (f Format) Compose(n Name) string {
	var parts []string

	parts = append(parts, string(n.Multiplier)+f.SequencePrefix+FormatSequence(n.Sequence, f.SequenceWidth))

	label := f.SafeLabel
	if !n.Safe {
		label = f.UnsafeLabel
	}
	if label != "" {
		parts = append(parts, label)
	}

	if creator := cleanSegment(n.Creator); creator != "" {
		parts = append(parts, creator)
	}

	desc := cleanSegment(n.Description)
	if desc == "" {
		desc = FallbackDescription
	}
	parts = append(parts, desc)

	parts = append(parts, strconv.Itoa(max(n.DurationSeconds, 0))+"sec")

	if ext := strings.TrimPrefix(strings.TrimSpace(f.Extension), "."); ext != "" {
		parts = append(parts, ext)
	}
	return strings.Join(parts, ".")
}

func cleanSegment(s string) string {
	return strings.TrimSpace(pathSeparators.Replace(s))
}
