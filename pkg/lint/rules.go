// Package lint implements the lint engine (C8): a fixed, ordered set of pure
// rules over (spec, rendered) that emit severity-tagged findings, plus the
// scoring function that turns those findings into a LintReport.
package lint

import (
	"strings"

	"github.com/kilnhq/promptc/pkg/promptspec"
	"github.com/kilnhq/promptc/pkg/tokenest"
)

// Rule evaluates one lint check against a compiled spec and its rendered
// text. It returns nil when the rule does not fire.
type Rule func(spec promptspec.PromptSpec, rendered string) *promptspec.LintResult

var doNotSendTags = map[string]bool{
	"do-not-send":   true,
	"donotsend":     true,
	"sensitive":     true,
	"internal-only": true,
}

// VagueInput fires when rawInput is short enough to suggest the request
// lacks detail.
func VagueInput(spec promptspec.PromptSpec, rendered string) *promptspec.LintResult {
	if len(strings.Fields(spec.RawInput)) >= 10 {
		return nil
	}
	return &promptspec.LintResult{
		RuleID:   "vague-input",
		RuleName: "Vague input",
		Severity: promptspec.SeverityWarning,
		Message:  "rawInput has fewer than 10 words; the request may be underspecified",
		Fix:      "Add more detail to the request: audience, scope, desired format.",
	}
}

// MissingConstraints fires when the parsed intent carried no constraints.
func MissingConstraints(spec promptspec.PromptSpec, rendered string) *promptspec.LintResult {
	if len(spec.Constraints) > 0 {
		return nil
	}
	return &promptspec.LintResult{
		RuleID:   "missing-constraints",
		RuleName: "Missing constraints",
		Severity: promptspec.SeverityWarning,
		Message:  "no constraints (tone, audience, length) were extracted from the input",
		Fix:      "Mention a tone, audience, or length cap in the request.",
	}
}

// NoTemplateMatch fires when none of the selected template's keywords
// appear in rawInput, a sign the template choice may be a weak fallback.
func NoTemplateMatch(reg keywordLookup) Rule {
	return func(spec promptspec.PromptSpec, rendered string) *promptspec.LintResult {
		keywords := reg.KeywordsFor(spec.TemplateID)
		lower := strings.ToLower(spec.RawInput)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return nil
			}
		}
		return &promptspec.LintResult{
			RuleID:   "no-template-match",
			RuleName: "No template match",
			Severity: promptspec.SeverityWarning,
			Message:  "none of the selected template's keywords appear in rawInput",
			Fix:      "Consider passing an explicit templateOverride.",
		}
	}
}

// keywordLookup is the minimal registry surface NoTemplateMatch needs,
// satisfied by *template.Registry without an import cycle.
type keywordLookup interface {
	KeywordsFor(id promptspec.TemplateID) []string
}

// BudgetExceeded fires when a positive token budget is exceeded by the
// rendered text's own estimated token count.
func BudgetExceeded(spec promptspec.PromptSpec, rendered string) *promptspec.LintResult {
	if spec.TokenBudget <= 0 {
		return nil
	}
	if tokenest.Estimate(rendered) <= spec.TokenBudget {
		return nil
	}
	return &promptspec.LintResult{
		RuleID:   "budget-exceeded",
		RuleName: "Budget exceeded",
		Severity: promptspec.SeverityError,
		Message:  "estimated token count of the rendered prompt exceeds tokenBudget",
		Fix:      "Raise tokenBudget or reduce the number of injected blocks.",
	}
}

// EmptySections fires when any emitted section has neither a non-blank
// instruction nor any injected blocks.
func EmptySections(spec promptspec.PromptSpec, rendered string) *promptspec.LintResult {
	for _, sec := range spec.Sections {
		if strings.TrimSpace(sec.Instruction) == "" && len(sec.InjectedBlocks) == 0 {
			return &promptspec.LintResult{
				RuleID:   "empty-sections",
				RuleName: "Empty sections",
				Severity: promptspec.SeverityWarning,
				Message:  "section \"" + sec.Heading + "\" has no instruction text and no injected content",
				Fix:      "Give the section an instruction or inject at least one block.",
			}
		}
	}
	return nil
}

// DoNotSendLeak fires if any block that made it into spec.sections carries a
// do-not-send-family tag. It should never fire in practice, since the
// selector's safety gate excludes such blocks before they reach the spec;
// it exists as a defense-in-depth check against a selector regression.
func DoNotSendLeak(spec promptspec.PromptSpec, rendered string) *promptspec.LintResult {
	for _, sec := range spec.Sections {
		for _, ib := range sec.InjectedBlocks {
			for _, tag := range ib.Block.Tags {
				if doNotSendTags[strings.ToLower(tag)] {
					return &promptspec.LintResult{
						RuleID:   "do-not-send-leak",
						RuleName: "Do-not-send leak",
						Severity: promptspec.SeverityError,
						Message:  "an injected block carries a do-not-send-family tag: " + tag,
						Fix:      "Flag the block's doNotSend field and re-run selection.",
					}
				}
			}
		}
	}
	return nil
}
