package lint

import (
	"testing"

	"github.com/kilnhq/promptc/pkg/promptspec"
	"github.com/stretchr/testify/assert"
)

type fakeRegistry map[promptspec.TemplateID][]string

func (r fakeRegistry) KeywordsFor(id promptspec.TemplateID) []string { return r[id] }

func TestVagueInput_FiresUnderTenWords(t *testing.T) {
	spec := promptspec.PromptSpec{RawInput: "Write a report on AI"}
	res := VagueInput(spec, "")
	assert.NotNil(t, res)
	assert.Equal(t, "vague-input", res.RuleID)
	assert.Equal(t, promptspec.SeverityWarning, res.Severity)
}

func TestVagueInput_SilentAtTenWordsOrMore(t *testing.T) {
	spec := promptspec.PromptSpec{RawInput: "one two three four five six seven eight nine ten"}
	assert.Nil(t, VagueInput(spec, ""))
}

func TestMissingConstraints(t *testing.T) {
	assert.NotNil(t, MissingConstraints(promptspec.PromptSpec{}, ""))
	spec := promptspec.PromptSpec{Constraints: []string{"Tone: formal"}}
	assert.Nil(t, MissingConstraints(spec, ""))
}

func TestNoTemplateMatch(t *testing.T) {
	reg := fakeRegistry{promptspec.TemplateAcademicReport: {"report", "academic"}}
	rule := NoTemplateMatch(reg)

	spec := promptspec.PromptSpec{TemplateID: promptspec.TemplateAcademicReport, RawInput: "Write a Report please"}
	assert.Nil(t, rule(spec, ""), "Report should case-insensitively match the report keyword")

	spec.RawInput = "Explain the rocket launch"
	res := rule(spec, "")
	assert.NotNil(t, res)
	assert.Equal(t, "no-template-match", res.RuleID)
}

func TestBudgetExceeded(t *testing.T) {
	spec := promptspec.PromptSpec{TokenBudget: 5}
	assert.NotNil(t, BudgetExceeded(spec, "one two three four five six seven eight nine ten"))
	assert.Nil(t, BudgetExceeded(spec, "one two"))

	unlimited := promptspec.PromptSpec{TokenBudget: 0}
	assert.Nil(t, BudgetExceeded(unlimited, "one two three four five six seven eight nine ten eleven twelve"))
}

func TestEmptySections(t *testing.T) {
	spec := promptspec.PromptSpec{Sections: []promptspec.PromptSpecSection{
		{Heading: "Intro", Instruction: "   "},
	}}
	res := EmptySections(spec, "")
	assert.NotNil(t, res)

	spec.Sections[0].InjectedBlocks = []promptspec.InjectedBlock{{}}
	assert.Nil(t, EmptySections(spec, ""))
}

func TestDoNotSendLeak(t *testing.T) {
	spec := promptspec.PromptSpec{Sections: []promptspec.PromptSpecSection{
		{Heading: "Background", InjectedBlocks: []promptspec.InjectedBlock{
			{Block: promptspec.ArtifactBlock{Tags: []string{"Internal-Only"}}},
		}},
	}}
	res := DoNotSendLeak(spec, "")
	assert.NotNil(t, res)
	assert.Equal(t, "do-not-send-leak", res.RuleID)

	clean := promptspec.PromptSpec{Sections: []promptspec.PromptSpecSection{
		{Heading: "Background", InjectedBlocks: []promptspec.InjectedBlock{
			{Block: promptspec.ArtifactBlock{Tags: []string{"background"}}},
		}},
	}}
	assert.Nil(t, DoNotSendLeak(clean, ""))
}
