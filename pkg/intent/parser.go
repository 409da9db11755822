// Package intent implements the intent parser (C1): a pure function from a
// raw user string to artifact references, extracted constraints, cleaned
// input, and a scored template pick. It performs no I/O and never fails --
// every input produces a ParsedIntent.
package intent

import (
	"regexp"
	"strings"

	"github.com/kilnhq/promptc/pkg/promptspec"
	"github.com/kilnhq/promptc/pkg/template"
)

var refPattern = regexp.MustCompile(`@(\w+)`)

// Parse extracts artifact references and constraints from input and picks a
// template, either from templateOverride (if recognized) or by keyword
// scoring against reg's catalog.
func Parse(reg *template.Registry, input string, templateOverride *promptspec.TemplateID) promptspec.ParsedIntent {
	refs := extractRefs(input)
	cleaned := cleanInput(input)

	id, confidence := selectTemplate(reg, cleaned, templateOverride)

	return promptspec.ParsedIntent{
		TemplateID:   id,
		Confidence:   confidence,
		Constraints:  extractConstraints(cleaned),
		ArtifactRefs: refs,
		CleanedInput: cleaned,
	}
}

// extractRefs finds every "@name" occurrence in input, preserving source
// order and case.
func extractRefs(input string) []string {
	matches := refPattern.FindAllStringSubmatch(input, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}

// cleanInput replaces every "@name" token with the empty string (interior
// whitespace is left untouched) and trims the result.
func cleanInput(input string) string {
	cleaned := refPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(cleaned)
}

// selectTemplate implements spec.md §4.1's template-selection algorithm.
func selectTemplate(reg *template.Registry, cleaned string, override *promptspec.TemplateID) (promptspec.TemplateID, float64) {
	if override != nil && override.Known() {
		if _, ok := reg.Lookup(*override); ok {
			return *override, 1.0
		}
	}

	lower := strings.ToLower(cleaned)

	bestID := promptspec.TemplateAcademicReport
	bestScore := -1
	for _, def := range reg.All() {
		score := countKeywordMatches(def.Keywords, lower)
		if score > bestScore {
			bestScore = score
			bestID = def.ID
		}
	}

	if bestScore <= 0 {
		return promptspec.TemplateAcademicReport, 0.3
	}

	confidence := 0.5 + float64(bestScore)*0.2
	if confidence > 1.0 {
		confidence = 1.0
	}
	return bestID, confidence
}

func countKeywordMatches(keywords []string, lowerCleanedInput string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lowerCleanedInput, strings.ToLower(kw)) {
			count++
		}
	}
	return count
}
