package validate

import (
	"testing"
	"time"

	"github.com/kilnhq/promptc/pkg/promptspec"
)

func validSpec() promptspec.PromptSpec {
	return promptspec.PromptSpec{
		ID:                "spec-1",
		RawInput:          "hello",
		TemplateID:        promptspec.TemplateAcademicReport,
		Dial:              3,
		SystemInstruction: "Be rigorous.",
		Sections: []promptspec.PromptSpecSection{
			{Heading: "Intro", Instruction: "Go."},
		},
		Meta: promptspec.Meta{LintScore: 80},
	}
}

func TestValidate_AcceptsWellFormedSpec(t *testing.T) {
	if errs := Validate(validSpec()); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidate_RejectsEmptySections(t *testing.T) {
	spec := validSpec()
	spec.Sections = nil
	errs := Validate(spec)
	if len(errs) != 1 || errs[0].Path != "sections" {
		t.Fatalf("errs = %v", errs)
	}
}

func TestValidate_RejectsOutOfRangeDial(t *testing.T) {
	spec := validSpec()
	spec.Dial = 7
	errs := Validate(spec)
	found := false
	for _, e := range errs {
		if e.Path == "dial" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected dial error, got %v", errs)
	}
}

func TestValidateAndRepair_SuppliesMissingFields(t *testing.T) {
	fixedTime := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	raw := RawSpec{
		"rawInput":          "hi",
		"templateId":        "academic-report",
		"dial":              float64(2),
		"systemInstruction": "Sys",
		"sections": []interface{}{
			map[string]interface{}{"heading": "Intro", "instruction": "Go."},
		},
	}

	res := ValidateAndRepair(raw, func() string { return "generated-id" }, func() time.Time { return fixedTime })

	if !res.Repaired {
		t.Fatal("expected Repaired = true")
	}
	if !res.Valid {
		t.Fatalf("expected valid spec after repair, errs=%v", res.Errors)
	}
	if res.Data.ID != "generated-id" {
		t.Errorf("ID = %q, want generated-id", res.Data.ID)
	}
	if res.Data.TokenBudget != 0 {
		t.Errorf("TokenBudget = %d, want 0", res.Data.TokenBudget)
	}
	if res.Data.Constraints == nil || len(res.Data.Constraints) != 0 {
		t.Errorf("Constraints = %v, want empty non-nil", res.Data.Constraints)
	}
	if res.Data.Sections[0].InjectedBlocks == nil || len(res.Data.Sections[0].InjectedBlocks) != 0 {
		t.Errorf("InjectedBlocks = %v, want empty non-nil", res.Data.Sections[0].InjectedBlocks)
	}
}

func TestValidateAndRepair_ClampsOutOfRangeDialTo3(t *testing.T) {
	raw := RawSpec{
		"id":                "x",
		"rawInput":          "hi",
		"templateId":        "academic-report",
		"dial":              float64(99),
		"tokenBudget":       float64(0),
		"constraints":       []interface{}{},
		"artifactRefs":      []interface{}{},
		"systemInstruction": "Sys",
		"sections": []interface{}{
			map[string]interface{}{"heading": "Intro", "instruction": "Go.", "injectedBlocks": []interface{}{}},
		},
		"meta": map[string]interface{}{
			"totalTokens": 0, "compileDurationMs": 0, "compiledAt": "2026-01-01T00:00:00Z", "lintScore": 0,
		},
	}
	res := ValidateAndRepair(raw, func() string { return "id" }, func() time.Time { return time.Now() })
	if !res.Valid {
		t.Fatalf("expected valid, errs=%v", res.Errors)
	}
	if res.Data.Dial != 3 {
		t.Errorf("Dial = %d, want 3", res.Data.Dial)
	}
}

func TestValidateAndRepair_NeverOverwritesPresentField(t *testing.T) {
	raw := RawSpec{
		"id":                "explicit-id",
		"rawInput":          "hi",
		"templateId":        "academic-report",
		"dial":              float64(1),
		"tokenBudget":       float64(42),
		"systemInstruction": "Sys",
		"sections": []interface{}{
			map[string]interface{}{"heading": "Intro", "instruction": "Go.", "injectedBlocks": []interface{}{}},
		},
	}
	res := ValidateAndRepair(raw, func() string { return "should-not-be-used" }, func() time.Time { return time.Now() })
	if res.Data.ID != "explicit-id" {
		t.Errorf("ID = %q, want explicit-id preserved", res.Data.ID)
	}
	if res.Data.TokenBudget != 42 {
		t.Errorf("TokenBudget = %d, want 42 preserved", res.Data.TokenBudget)
	}
}

func TestValidateAndRepair_Fixpoint(t *testing.T) {
	raw := RawSpec{
		"rawInput":          "hi",
		"templateId":        "academic-report",
		"dial":              float64(2),
		"systemInstruction": "Sys",
		"sections": []interface{}{
			map[string]interface{}{"heading": "Intro", "instruction": "Go."},
		},
	}
	idGen := func() string { return "fixed-id" }
	clock := func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	first := ValidateAndRepair(raw, idGen, clock)
	if !first.Valid {
		t.Fatalf("first repair not valid: %v", first.Errors)
	}
	raw2, err := ToRaw(*first.Data)
	if err != nil {
		t.Fatal(err)
	}
	second := ValidateAndRepair(raw2, idGen, clock)
	if !second.Valid {
		t.Fatalf("second repair not valid: %v", second.Errors)
	}
	if second.Repaired {
		t.Errorf("expected no further repair needed on an already-valid spec")
	}
	if second.Data.ID != first.Data.ID {
		t.Errorf("fixpoint: ID changed from %q to %q", first.Data.ID, second.Data.ID)
	}
}
