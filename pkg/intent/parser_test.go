package intent

import (
	"testing"

	"github.com/kilnhq/promptc/pkg/promptspec"
	"github.com/kilnhq/promptc/pkg/template"
)

func TestParse_S1_GenericReportSentence(t *testing.T) {
	reg := template.DefaultRegistry()
	got := Parse(reg, "Write a report on AI", nil)

	if got.TemplateID != promptspec.TemplateAcademicReport {
		t.Errorf("TemplateID = %q, want academic-report", got.TemplateID)
	}
	if got.Confidence != 0.7 {
		t.Errorf("Confidence = %v, want 0.7", got.Confidence)
	}
	if len(got.ArtifactRefs) != 0 {
		t.Errorf("ArtifactRefs = %v, want empty", got.ArtifactRefs)
	}
	if got.CleanedInput != "Write a report on AI" {
		t.Errorf("CleanedInput = %q", got.CleanedInput)
	}
}

func TestParse_ExtractsArtifactRefsAndCleansInput(t *testing.T) {
	reg := template.DefaultRegistry()
	got := Parse(reg, "Explain @ai safety", nil)

	if len(got.ArtifactRefs) != 1 || got.ArtifactRefs[0] != "ai" {
		t.Fatalf("ArtifactRefs = %v, want [ai]", got.ArtifactRefs)
	}
	if got.CleanedInput != "Explain  safety" {
		t.Errorf("CleanedInput = %q, want %q", got.CleanedInput, "Explain  safety")
	}
}

func TestParse_MultipleRefsPreserveOrderAndCase(t *testing.T) {
	reg := template.DefaultRegistry()
	got := Parse(reg, "Combine @Alpha and @beta_two into one brief", nil)
	if len(got.ArtifactRefs) != 2 || got.ArtifactRefs[0] != "Alpha" || got.ArtifactRefs[1] != "beta_two" {
		t.Fatalf("ArtifactRefs = %v", got.ArtifactRefs)
	}
}

func TestParse_NoKeywordMatchFallsBackToAcademicReport(t *testing.T) {
	reg := template.DefaultRegistry()
	got := Parse(reg, "xyzzy plugh zork", nil)
	if got.TemplateID != promptspec.TemplateAcademicReport {
		t.Errorf("TemplateID = %q, want academic-report fallback", got.TemplateID)
	}
	if got.Confidence != 0.3 {
		t.Errorf("Confidence = %v, want 0.3", got.Confidence)
	}
}

func TestParse_TemplateOverrideWins(t *testing.T) {
	reg := template.DefaultRegistry()
	override := promptspec.TemplateCritique
	got := Parse(reg, "Write a report on AI", &override)
	if got.TemplateID != promptspec.TemplateCritique {
		t.Errorf("TemplateID = %q, want critique (overridden)", got.TemplateID)
	}
	if got.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", got.Confidence)
	}
}

func TestParse_WhitespaceOnlyInput(t *testing.T) {
	reg := template.DefaultRegistry()
	got := Parse(reg, "   ", nil)
	if got.CleanedInput != "" {
		t.Errorf("CleanedInput = %q, want empty", got.CleanedInput)
	}
	if got.TemplateID != promptspec.TemplateAcademicReport || got.Confidence != 0.3 {
		t.Errorf("got %+v, want fallback", got)
	}
}

func TestExtractConstraints(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"tone word", "Write this in a formal style", []string{"Tone: formal"}},
		{"tone phrase", "Write this in casual tone please", []string{"Tone: casual"}},
		{"audience phrase", "Explain quantum computing for a beginner audience", []string{"Audience: a beginner"}},
		{"word cap", "Keep it under 200 words", []string{"Max words: 200"}},
		{"length cap", "Keep it max 500 tokens", []string{"Max length: 500 tokens"}},
		{"none", "Write a report on AI", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractConstraints(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("extractConstraints(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractConstraints_DedupesByPrefixKeepsFirst(t *testing.T) {
	got := extractConstraints("Write this in a formal tone, keep it professional")
	if len(got) != 1 || got[0] != "Tone: formal" {
		t.Fatalf("got %v, want [Tone: formal]", got)
	}
}
