package lint

import "github.com/kilnhq/promptc/pkg/promptspec"

const passingScore = 70

// Engine runs a fixed, ordered list of Rules and scores the result. The
// order is part of the external contract: results are reported in
// rule-declaration order, matching whichever rule fired.
type Engine struct {
	rules []Rule
}

// NewEngine builds the default rule set in its fixed order -- vague-input,
// missing-constraints, no-template-match, budget-exceeded, empty-sections,
// do-not-send-leak -- plus any extra rules appended after them. Extra rules
// are an explicit constructor argument, never a package-level mutable
// registry: there is nothing here for two Engines to fight over.
func NewEngine(reg keywordLookup, extra ...Rule) *Engine {
	rules := []Rule{
		VagueInput,
		MissingConstraints,
		NoTemplateMatch(reg),
		BudgetExceeded,
		EmptySections,
		DoNotSendLeak,
	}
	rules = append(rules, extra...)
	return &Engine{rules: rules}
}

// Run evaluates every rule against spec and rendered, in order, and computes
// the resulting LintReport.
func (e *Engine) Run(spec promptspec.PromptSpec, rendered string) promptspec.LintReport {
	var results []promptspec.LintResult
	score := 100

	for _, rule := range e.rules {
		res := rule(spec, rendered)
		if res == nil {
			continue
		}
		results = append(results, *res)
		switch res.Severity {
		case promptspec.SeverityError:
			score -= 25
		case promptspec.SeverityWarning:
			score -= 10
		case promptspec.SeverityInfo:
			score -= 3
		}
	}

	if score < 0 {
		score = 0
	}

	return promptspec.LintReport{
		Results: results,
		Score:   score,
		Passed:  score >= passingScore,
	}
}
