package intent

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	toneInPhraseRe = regexp.MustCompile(`(?i)\bin ([a-zA-Z]+) tone\b`)
	toneWordRe     = regexp.MustCompile(`(?i)\b(formal|casual|technical|friendly|professional)\b`)

	audienceForAudienceRe = regexp.MustCompile(`(?i)\bfor ([a-zA-Z0-9 ]+?) audience\b`)
	audienceTerminalRe    = regexp.MustCompile(`(?i)\bfor ([a-zA-Z0-9]+(?: [a-zA-Z0-9]+)*)\s*$`)

	wordCapRe   = regexp.MustCompile(`(?i)\b(?:under|max) (\d+) words\b`)
	lengthCapRe = regexp.MustCompile(`(?i)\bmax (\d+) tokens\b`)
)

// extractConstraints applies the fixed set of constraint patterns spec.md
// §4.1 describes against cleaned, emitting at most one constraint per
// recognized prefix and keeping the first occurrence when a prefix repeats.
func extractConstraints(cleaned string) []string {
	var out []string
	seen := map[string]bool{}

	add := func(constraint string) {
		prefix := constraint
		if i := strings.Index(constraint, ":"); i >= 0 {
			prefix = constraint[:i]
		}
		if seen[prefix] {
			return
		}
		seen[prefix] = true
		out = append(out, constraint)
	}

	if m := toneInPhraseRe.FindStringSubmatch(cleaned); m != nil {
		add(fmt.Sprintf("Tone: %s", m[1]))
	} else if m := toneWordRe.FindStringSubmatch(cleaned); m != nil {
		add(fmt.Sprintf("Tone: %s", m[1]))
	}

	if m := audienceForAudienceRe.FindStringSubmatch(cleaned); m != nil {
		add(fmt.Sprintf("Audience: %s", strings.TrimSpace(m[1])))
	} else if m := audienceTerminalRe.FindStringSubmatch(cleaned); m != nil {
		add(fmt.Sprintf("Audience: %s", strings.TrimSpace(m[1])))
	}

	if m := wordCapRe.FindStringSubmatch(cleaned); m != nil {
		add(fmt.Sprintf("Max words: %s", m[1]))
	}

	if m := lengthCapRe.FindStringSubmatch(cleaned); m != nil {
		add(fmt.Sprintf("Max length: %s tokens", m[1]))
	}

	return out
}
