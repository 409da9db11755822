// Package validate implements the validator (C7): a strict schema check of
// a PromptSpec plus a best-effort repair pass for specs coming back over a
// host boundary (e.g. re-read from persisted JSON) in a shape that is
// almost, but not quite, a valid PromptSpec.
//
// Repair operates on the dynamically-typed map[string]interface{} shape a
// JSON decode naturally produces, rather than on promptspec.PromptSpec
// itself, because a Go struct can't distinguish "field absent" from "field
// present with its zero value" -- exactly the distinction spec.md §4.7
// requires ("repair never touches fields that are already present but
// wrongly typed").
package validate

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kilnhq/promptc/pkg/promptspec"
)

// FieldError is one schema violation, with a dotted path matching the
// convention spec.md §4.7 gives (e.g. "dial", "meta.totalTokens",
// "sections[2].injectedBlocks[0].priority").
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate strictly schema-checks spec and returns every violation found;
// a nil/empty result means spec is valid.
func Validate(spec promptspec.PromptSpec) []FieldError {
	var errs []FieldError

	if !spec.Dial.Valid() {
		errs = append(errs, FieldError{"dial", "must be an integer in [0, 5]"})
	}
	if !spec.TemplateID.Known() {
		errs = append(errs, FieldError{"templateId", "must be one of the closed template set"})
	}
	if len(spec.Sections) < 1 {
		errs = append(errs, FieldError{"sections", "must contain at least one section"})
	}
	if spec.TokenBudget < 0 {
		errs = append(errs, FieldError{"tokenBudget", "must be >= 0"})
	}
	if spec.Meta.TotalTokens < 0 {
		errs = append(errs, FieldError{"meta.totalTokens", "must be >= 0"})
	}
	if spec.Meta.CompileDurationMs < 0 {
		errs = append(errs, FieldError{"meta.compileDurationMs", "must be >= 0"})
	}
	if spec.Meta.LintScore < 0 || spec.Meta.LintScore > 100 {
		errs = append(errs, FieldError{"meta.lintScore", "must be in [0, 100]"})
	}

	for i, sec := range spec.Sections {
		for j, ib := range sec.InjectedBlocks {
			if ib.Block.Priority < 0 || ib.Block.Priority > 100 {
				errs = append(errs, FieldError{
					Path:    fmt.Sprintf("sections[%d].injectedBlocks[%d].priority", i, j),
					Message: "must be in [0, 100]",
				})
			}
			if ib.Block.TokenCount < 0 {
				errs = append(errs, FieldError{
					Path:    fmt.Sprintf("sections[%d].injectedBlocks[%d].tokenCount", i, j),
					Message: "must be >= 0",
				})
			}
		}
	}

	return errs
}

// Valid reports whether spec passes every Validate check.
func Valid(spec promptspec.PromptSpec) bool {
	return len(Validate(spec)) == 0
}

// RawSpec is the dynamically-typed shape a host's persisted spec decodes
// into: a PromptSpec that may be missing fields or have the wrong shape.
type RawSpec = map[string]interface{}

// Result is the outcome of ValidateAndRepair.
type Result struct {
	Valid    bool
	Repaired bool
	Data     *promptspec.PromptSpec
	Errors   []FieldError
}

// ValidateAndRepair applies the ordered repair pass spec.md §4.7 describes
// and then validates the result. idGen and clock supply the two
// nondeterministic defaults (fresh id, current time) a repair may need;
// pass deterministic fakes in tests.
func ValidateAndRepair(raw RawSpec, idGen func() string, clock func() time.Time) Result {
	repairedRaw, repaired := repair(raw, idGen, clock)

	spec, err := decode(repairedRaw)
	if err != nil {
		return Result{Valid: false, Repaired: repaired, Errors: []FieldError{{Path: "", Message: err.Error()}}}
	}

	errs := Validate(*spec)
	if len(errs) > 0 {
		return Result{Valid: false, Repaired: repaired, Errors: errs}
	}
	return Result{Valid: true, Repaired: repaired, Data: spec}
}

// repair applies, in spec.md §4.7's order: a fresh id if missing; a zero
// tokenBudget if missing; empty constraints/artifactRefs if missing; meta
// defaults if missing; per-section empty injectedBlocks if missing; and a
// clamp of an out-of-range numeric dial to 3. Apart from that dial clamp, it
// never overwrites a field that is present, regardless of its type.
func repair(raw RawSpec, idGen func() string, clock func() time.Time) (RawSpec, bool) {
	out := cloneMap(raw)
	repaired := false

	if _, ok := out["id"]; !ok {
		out["id"] = idGen()
		repaired = true
	}
	if _, ok := out["tokenBudget"]; !ok {
		out["tokenBudget"] = 0
		repaired = true
	}
	if _, ok := out["constraints"]; !ok {
		out["constraints"] = []interface{}{}
		repaired = true
	}
	if _, ok := out["artifactRefs"]; !ok {
		out["artifactRefs"] = []interface{}{}
		repaired = true
	}
	if _, ok := out["meta"]; !ok {
		out["meta"] = map[string]interface{}{
			"totalTokens":       0,
			"compileDurationMs": 0,
			"compiledAt":        clock().UTC().Format(time.RFC3339),
			"lintScore":         0,
		}
		repaired = true
	}

	if rawSections, ok := out["sections"]; ok {
		if sections, ok := rawSections.([]interface{}); ok {
			newSections := make([]interface{}, len(sections))
			for i, s := range sections {
				secMap, ok := s.(map[string]interface{})
				if !ok {
					newSections[i] = s
					continue
				}
				secCopy := cloneMap(secMap)
				if _, ok := secCopy["injectedBlocks"]; !ok {
					secCopy["injectedBlocks"] = []interface{}{}
					repaired = true
				}
				newSections[i] = secCopy
			}
			out["sections"] = newSections
		}
	}

	if rawDial, ok := out["dial"]; ok {
		if n, ok := toFloat(rawDial); ok {
			if n < float64(promptspec.MinDial) || n > float64(promptspec.MaxDial) {
				out["dial"] = 3
				repaired = true
			}
		}
	}

	return out, repaired
}

// ToRaw reshapes a PromptSpec into the RawSpec map shape ValidateAndRepair
// consumes, useful for round-tripping in tests and for hosts that persist
// specs as JSON.
func ToRaw(spec promptspec.PromptSpec) (RawSpec, error) {
	b, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("validate: encoding spec: %w", err)
	}
	var raw RawSpec
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("validate: decoding raw spec: %w", err)
	}
	return raw, nil
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// decode converts a RawSpec into a promptspec.PromptSpec via a JSON round
// trip: the map's keys are assumed to already use the wire field names
// (promptspec.PromptSpec's json tags), so this is a pure reshape, not a
// translation.
func decode(raw RawSpec) (*promptspec.PromptSpec, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("validate: re-encoding raw spec: %w", err)
	}
	var spec promptspec.PromptSpec
	if err := json.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("validate: decoding spec: %w", err)
	}
	return &spec, nil
}
