package naming

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxDescriptionLen bounds the description segment of a name.
	MaxDescriptionLen = 25
	// FallbackDescription is used when no significant word survives.
	FallbackDescription = "Ad"

	descriptionWords = 4
	minWordLen       = 3
)

var (
	rePunct = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	reSpace = regexp.MustCompile(`\s+`)
)

type compiledRule struct {
	code     Multiplier
	patterns []*regexp.Regexp
}

// Classifier derives a Classification from transcript text. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	denylist   []string
	exemptions []string
	rules      []compiledRule
	stopWords  map[string]struct{}
	fallback   Multiplier
}

// NewClassifier compiles the rule set.
func NewClassifier(r Rules) (*Classifier, error) {
	fallback := r.Fallback
	if fallback == "" {
		fallback = MultiplierEvergreen
	}
	if !fallback.Valid() {
		return nil, fmt.Errorf("fallback multiplier: unknown code %q", fallback)
	}

	c := &Classifier{
		denylist:   lowerAll(r.Denylist),
		exemptions: lowerAll(r.Exemptions),
		stopWords:  make(map[string]struct{}, len(r.StopWords)),
		fallback:   fallback,
	}
	for _, w := range r.StopWords {
		if key := wordKey(w); key != "" {
			c.stopWords[key] = struct{}{}
		}
	}

	for _, rule := range r.Multipliers {
		if !rule.Code.Valid() {
			return nil, fmt.Errorf("multiplier rule: unknown code %q", rule.Code)
		}
		cr := compiledRule{code: rule.Code}
		for _, p := range rule.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("multiplier rule %s: compile %q: %w", rule.Code, p, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		c.rules = append(c.rules, cr)
	}
	return c, nil
}

// MustClassifier is NewClassifier for rule sets known to be valid.
func MustClassifier(r Rules) *Classifier {
	c, err := NewClassifier(r)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Classifier) Classify(transcript string) Classification {
	return Classification{
		Safe:        c.IsSafe(transcript),
		Description: c.Describe(transcript),
		Multiplier:  c.DetectMultiplier(transcript),
	}
}

// Unavailable is the classification used when no transcript could be
// produced.
func Unavailable(m Multiplier) Classification {
	if !m.Valid() {
		m = MultiplierEvergreen
	}
	return Classification{Safe: true, Description: FallbackDescription, Multiplier: m}
}

// IsSafe reports whether the transcript avoids every denylisted phrase.
func (c *Classifier) IsSafe(transcript string) bool {
	text := collapseSpace(strings.ToLower(transcript))
	if text == "" {
		return true
	}
	for _, ex := range c.exemptions {
		if ex != "" {
			text = strings.ReplaceAll(text, ex, " ")
		}
	}
	for _, phrase := range c.denylist {
		if phrase != "" && strings.Contains(text, phrase) {
			return false
		}
	}
	return true
}

func (c *Classifier) DetectMultiplier(transcript string) Multiplier {
	for _, rule := range c.rules {
		for _, re := range rule.patterns {
			if re.MatchString(transcript) {
				return rule.code
			}
		}
	}
	return c.fallback
}

// Describe builds a short CamelCase description from the first significant
// words of the transcript.
func (c *Classifier) Describe(transcript string) string {
	text := rePunct.ReplaceAllString(transcript, "")
	text = collapseSpace(text)

	caser := cases.Title(language.Und)
	var b strings.Builder
	taken := 0
	for _, word := range strings.Fields(text) {
		if taken == descriptionWords {
			break
		}
		key := wordKey(word)
		if len(key) < minWordLen {
			continue
		}
		if _, stop := c.stopWords[key]; stop {
			continue
		}
		b.WriteString(caser.String(key))
		taken++
	}

	desc := b.String()
	if len(desc) > MaxDescriptionLen {
		desc = desc[:MaxDescriptionLen]
	}
	if desc == "" {
		return FallbackDescription
	}
	return desc
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func alnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// wordKey reduces a word to the lowercase ASCII letters and digits that can
// appear in a filename.
func wordKey(w string) string {
	return alnum(foldAccents(strings.ToLower(w)))
}

func collapseSpace(s string) string {
	return strings.TrimSpace(reSpace.ReplaceAllString(s, " "))
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = collapseSpace(strings.ToLower(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
