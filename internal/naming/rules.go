package naming

// MultiplierRule maps transcript patterns to a multiplier code. Patterns are
// Go regular expressions matched case-insensitively.
type MultiplierRule struct {
	Code     Multiplier `yaml:"code"`
	Patterns []string   `yaml:"patterns"`
}

// Rules is the tunable data behind the classifier.
type Rules struct {
	// Denylist holds lower-case substrings that mark a transcript unsafe.
	Denylist []string `yaml:"denylist"`
	// Exemptions are removed from the transcript before the denylist scan.
	Exemptions []string `yaml:"exemptions"`
	// Multipliers are evaluated in order; the first match wins.
	Multipliers []MultiplierRule `yaml:"multipliers"`
	StopWords   []string         `yaml:"stop_words"`
	// Fallback is used when no multiplier rule matches.
	Fallback Multiplier `yaml:"fallback"`
}

func DefaultRules() Rules {
	return Rules{
		Denylist: []string{
			"$",
			"9.95",
			"12.95",
			"19.95",
			"29.95",
			"usd",
			"cost",
			"price",
			"payment",
			"charge",
			"purchase",
			"checkout",
			"credit card",
			"debit card",
			"per dollar",
			"for every dollar",
			"every dollar equals entries",
		},
		Exemptions: []string{
			"no purchase necessary",
			"no purchase needed",
			"no purchase required",
			"no payment necessary",
			"no payment needed",
			"no payment required",
			"no credit card required",
			"no credit card needed",
		},
		Multipliers: []MultiplierRule{
			{Code: Multiplier5x, Patterns: []string{`\b(5|five)\s*x\b`, `\bquintuple\b`}},
			{Code: Multiplier4x, Patterns: []string{`\b(4|four)\s*x\b`, `\bquadruple\b`}},
			{Code: Multiplier3x, Patterns: []string{`\b(3|three)\s*x\b`, `\btriple\b`}},
			{Code: Multiplier2x, Patterns: []string{`\b(2|two)\s*x\b`, `\bdouble\b`}},
			{Code: MultiplierEnding, Patterns: []string{
				`\bend of (the )?sweeps?\b`,
				`\blast chance\b`,
				`\bfinal days?\b`,
				`\bending soon\b`,
			}},
		},
		StopWords: []string{
			"the", "and", "but", "for", "with", "this", "that", "these", "those",
			"are", "was", "were", "its", "you", "your", "yours", "our", "ours",
			"hey", "hello", "hiya", "guys", "everyone", "everybody", "welcome", "whats", "there",
			"um", "umm", "uh", "uhh", "erm", "hmm", "like", "just", "really", "very",
			"actually", "basically", "literally", "okay", "well", "yeah", "yes", "gonna",
			"wanna", "so", "then", "also", "all", "from", "about",
		},
		Fallback: MultiplierEvergreen,
	}
}

// Merge overlays non-empty fields of o on top of r.
func (r Rules) Merge(o Rules) Rules {
	if len(o.Denylist) > 0 {
		r.Denylist = o.Denylist
	}
	if len(o.Exemptions) > 0 {
		r.Exemptions = o.Exemptions
	}
	if len(o.Multipliers) > 0 {
		r.Multipliers = o.Multipliers
	}
	if len(o.StopWords) > 0 {
		r.StopWords = o.StopWords
	}
	if o.Fallback != "" {
		r.Fallback = o.Fallback
	}
	return r
}
