package promptspec

import "github.com/kilnhq/promptc/pkg/compilererrors"

// ValidateCompileInput performs the schema check spec.md §7.1 requires
// before any pipeline work begins. Whitespace-only RawInput is valid: the
// schema only enforces length >= 1, not non-blankness.
func ValidateCompileInput(in CompileInput) error {
	if len(in.RawInput) < 1 {
		return compilererrors.NewValidationError("rawInput", "", compilererrors.ErrEmptyInput)
	}
	if !in.Dial.Valid() {
		return compilererrors.NewValidationError("dial", "", compilererrors.ErrInvalidDial)
	}
	if in.TokenBudget < 0 {
		return compilererrors.NewValidationError("tokenBudget", "", compilererrors.ErrInvalidTokenBudget)
	}
	if in.TemplateOverride != nil && !in.TemplateOverride.Known() {
		return compilererrors.NewValidationError("templateOverride", "", compilererrors.ErrUnknownTemplate)
	}
	return nil
}
