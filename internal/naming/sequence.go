package naming

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"sync"
)

// DefaultSequenceWidth is the zero-padded width of the sequence segment.
const DefaultSequenceWidth = 2

func sequencePattern(code Multiplier, prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(string(code)+prefix) + `(\d+)`)
}

// Allocate returns the next free sequence number for code given the names
// already present in the destination. Names that do not start with the code
// and prefix followed by digits are ignored.
func Allocate(code Multiplier, prefix string, existing []string, start int) int {
	re := sequencePattern(code, prefix)
	maxFound := 0
	found := false
	for _, name := range existing {
		if n, ok := matchSequence(re, name); ok {
			if !found || n > maxFound {
				maxFound = n
			}
			found = true
		}
	}
	if !found {
		return start
	}
	return max(start, maxFound+1)
}

// ParseSequence recovers the sequence number embedded in a composed name.
func ParseSequence(name string, code Multiplier, prefix string) (int, bool) {
	return matchSequence(sequencePattern(code, prefix), name)
}

// FormatSequence zero-pads n to width digits. Wider numbers are kept intact.
func FormatSequence(n, width int) string {
	if width < 1 {
		width = 1
	}
	return fmt.Sprintf("%0*d", width, n)
}

func matchSequence(re *regexp.Regexp, name string) (int, bool) {
	m := re.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n >= math.MaxInt {
		return 0, false
	}
	return n, true
}

// Sequencer allocates sequence numbers against a snapshot of names that
// grows with every allocation, so items in one batch never collide even
// before any of them is persisted.
type Sequencer struct {
	mu       sync.Mutex
	prefix   string
	start    int
	existing []string
	taken    map[Multiplier]int
}

func NewSequencer(existing []string, prefix string, start int) *Sequencer {
	if start < 1 {
		start = 1
	}
	names := make([]string, len(existing))
	copy(names, existing)
	return &Sequencer{
		prefix:   prefix,
		start:    start,
		existing: names,
		taken:    make(map[Multiplier]int),
	}
}

// Next allocates and records the next sequence number for code.
func (s *Sequencer) Next(code Multiplier) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := Allocate(code, s.prefix, s.existing, s.start)
	if last, ok := s.taken[code]; ok && last >= n {
		n = last + 1
	}
	s.taken[code] = n
	return n
}

// Reserve adds a name that will exist once the batch is applied, such as a
// manually edited proposal.
func (s *Sequencer) Reserve(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.existing = append(s.existing, name)
}
