package naming

import (
	"strings"
	"testing"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(DefaultRules())
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	return c
}

func TestIsSafe(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name       string
		transcript string
		want       bool
	}{
		{"empty", "", true},
		{"whitespace only", "   \n", true},
		{"plain promo", "Enter now for a chance to win a brand new truck", true},
		{"price", "Check the PRICE on this one", false},
		{"cost", "it won't cost you anything extra", false},
		{"currency amount", "Only $12.95 gets you extra entries", false},
		{"bare amount", "just 12.95 for the bundle", false},
		{"credit card", "grab your Credit Card and go", false},
		{"debit card", "debit card accepted", false},
		{"promo phrase", "Every dollar equals entries in the giveaway", false},
		{"disclaimer exempt", "Get triple entries before the contest ends! No payment needed.", true},
		{"disclaimer exempt across spacing", "Triple entries. No  payment\nneeded", true},
		{"disclaimer does not hide other terms", "No purchase necessary, but the price drops tonight", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsSafe(tt.transcript); got != tt.want {
				t.Errorf("IsSafe(%q) = %v, want %v", tt.transcript, got, tt.want)
			}
		})
	}
}

func TestIsSafeEveryDenylistPhrase(t *testing.T) {
	c := newTestClassifier(t)
	for _, phrase := range DefaultRules().Denylist {
		transcript := "Big news today " + strings.ToUpper(phrase) + " so enter now"
		if c.IsSafe(transcript) {
			t.Errorf("IsSafe(%q) = true, want false", transcript)
		}
	}
}

func TestDetectMultiplier(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name       string
		transcript string
		want       Multiplier
	}{
		{"five x", "Right now you get 5x entries", Multiplier5x},
		{"quintuple", "QUINTUPLE entries this weekend", Multiplier5x},
		{"four x", "4X entries today", Multiplier4x},
		{"quadruple", "quadruple your chances", Multiplier4x},
		{"triple", "Get triple entries before the contest ends!", Multiplier3x},
		{"three x spaced", "we are doing 3 x entries", Multiplier3x},
		{"double", "Double entries all week", Multiplier2x},
		{"ending", "This is your last chance to enter", MultiplierEnding},
		{"end of sweeps", "It's the end of the sweeps, folks", MultiplierEnding},
		{"ending soon", "the giveaway is ending soon", MultiplierEnding},
		{"priority beats ending", "last chance for double entries", Multiplier2x},
		{"no match", "A quick tour of the prize house", MultiplierEvergreen},
		{"empty", "", MultiplierEvergreen},
		{"not a word boundary", "model 25x900 truck", MultiplierEvergreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.DetectMultiplier(tt.transcript); got != tt.want {
				t.Errorf("DetectMultiplier(%q) = %v, want %v", tt.transcript, got, tt.want)
			}
		})
	}
}

func TestDetectMultiplierAlwaysValid(t *testing.T) {
	c := newTestClassifier(t)
	inputs := []string{"", "???", "\x00\xff", "5", "x", "triple", strings.Repeat("double ", 1000)}
	for _, in := range inputs {
		if got := c.DetectMultiplier(in); !got.Valid() {
			t.Errorf("DetectMultiplier(%q) = %q, not a valid code", in, got)
		}
	}
}

func TestDescribe(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name       string
		transcript string
		want       string
	}{
		{"scenario", "Get triple entries before the contest ends! No payment needed.", "GetTripleEntriesBefore"},
		{"stop words and short words", "Hey guys, so um it is the BIG truck giveaway", "BigTruckGiveaway"},
		{"empty", "", "Ad"},
		{"only short words", "a an to of is it", "Ad"},
		{"punctuation only", "!!! ... ???", "Ad"},
		{"accents folded", "Café résumé contest winners", "CafeResumeContestWinners"},
		{"non latin words skipped", "Привет друзья смотрите сюда triple entries giveaway", "TripleEntriesGiveaway"},
		{"truncated", "Supercalifragilistic extraordinarily magnificent sweepstakes", "SupercalifragilisticExtra"},
		{"amount digits kept", "Only $12.95 gets you extra entries", "Only1295GetsExtra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Describe(tt.transcript)
			if got != tt.want {
				t.Errorf("Describe(%q) = %q, want %q", tt.transcript, got, tt.want)
			}
			if len(got) == 0 || len(got) > MaxDescriptionLen {
				t.Errorf("Describe(%q) length = %d, want 1..%d", tt.transcript, len(got), MaxDescriptionLen)
			}
		})
	}
}

func TestClassifyScenarios(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify("Get triple entries before the contest ends! No payment needed.")
	want := Classification{Safe: true, Description: "GetTripleEntriesBefore", Multiplier: Multiplier3x}
	if got != want {
		t.Errorf("Classify() = %+v, want %+v", got, want)
	}

	got = c.Classify("Only $12.95 gets you extra entries")
	if got.Safe {
		t.Errorf("Classify() Safe = true, want false")
	}
	if got.Multiplier != MultiplierEvergreen {
		t.Errorf("Classify() Multiplier = %v, want %v", got.Multiplier, MultiplierEvergreen)
	}
}

func TestUnavailable(t *testing.T) {
	got := Unavailable("")
	want := Classification{Safe: true, Description: "Ad", Multiplier: MultiplierEvergreen}
	if got != want {
		t.Errorf("Unavailable() = %+v, want %+v", got, want)
	}
	if got := Unavailable(Multiplier2x); got.Multiplier != Multiplier2x {
		t.Errorf("Unavailable(2000).Multiplier = %v", got.Multiplier)
	}
}

func TestNewClassifierRejectsBadRules(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
	}{
		{"bad code", Rules{Multipliers: []MultiplierRule{{Code: "9999", Patterns: []string{"x"}}}}},
		{"bad pattern", Rules{Multipliers: []MultiplierRule{{Code: Multiplier2x, Patterns: []string{"("}}}}},
		{"bad fallback", Rules{Fallback: "12"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClassifier(tt.rules); err == nil {
				t.Error("NewClassifier() should return error")
			}
		})
	}
}

func TestRulesMerge(t *testing.T) {
	base := DefaultRules()
	merged := base.Merge(Rules{Denylist: []string{"venmo"}})
	if len(merged.Denylist) != 1 || merged.Denylist[0] != "venmo" {
		t.Errorf("Merge() Denylist = %v", merged.Denylist)
	}
	if len(merged.Multipliers) != len(base.Multipliers) {
		t.Errorf("Merge() should keep default multipliers")
	}
}
