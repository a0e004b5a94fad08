package naming

import (
	"fmt"
	"strings"
)

// Multiplier is the promotional reward tier encoded at the start of every name.
type Multiplier string

const (
	Multiplier5x        Multiplier = "5000"
	Multiplier4x        Multiplier = "4000"
	Multiplier3x        Multiplier = "3000"
	Multiplier2x        Multiplier = "2000"
	MultiplierEvergreen Multiplier = "1000"
	MultiplierEnding    Multiplier = "0001"
)

// Multipliers lists every valid code, highest tier first.
var Multipliers = []Multiplier{
	Multiplier5x,
	Multiplier4x,
	Multiplier3x,
	Multiplier2x,
	MultiplierEvergreen,
	MultiplierEnding,
}

func (m Multiplier) Valid() bool {
	for _, v := range Multipliers {
		if m == v {
			return true
		}
	}
	return false
}

// Label is the human readable name shown next to the code.
func (m Multiplier) Label() string {
	switch m {
	case Multiplier5x:
		return "5x entries"
	case Multiplier4x:
		return "4x entries"
	case Multiplier3x:
		return "3x entries"
	case Multiplier2x:
		return "2x entries"
	case MultiplierEvergreen:
		return "Evergreen"
	case MultiplierEnding:
		return "End of sweeps"
	default:
		return string(m)
	}
}

// ParseMultiplier accepts a code with surrounding whitespace.
func ParseMultiplier(s string) (Multiplier, error) {
	m := Multiplier(strings.TrimSpace(s))
	if !m.Valid() {
		return "", fmt.Errorf("unknown multiplier code %q", s)
	}
	return m, nil
}
