// Package specgen implements the spec generator (C5): it combines a chosen
// template, dial, constraints, artifact refs, and the per-section injected
// blocks the block selector produced into a single PromptSpec.
package specgen

import (
	"time"

	"github.com/kilnhq/promptc/pkg/promptspec"
)

// Input bundles everything Generate needs. SectionBlocks maps a template
// section's heading (case-sensitive) to the InjectedBlocks chosen for it;
// an absent heading means the section gets no injected blocks, and an
// unknown heading in the map is silently ignored.
type Input struct {
	RawInput      string
	Intent        promptspec.ParsedIntent
	Template      promptspec.TemplateDefinition
	Dial          promptspec.DialLevel
	TokenBudget   int
	SectionBlocks map[string][]promptspec.InjectedBlock
	ArtifactRefs  []promptspec.ArtifactRef
	IDGenerator   func() string
	Clock         func() time.Time
}

// Generate builds a PromptSpec per spec.md §4.5. Only sections whose
// MinDial is <= dial are emitted, preserving template declaration order.
// meta is initialized to its spec.md-mandated defaults; the driver (C9)
// overwrites it once rendering and linting are complete.
func Generate(in Input) promptspec.PromptSpec {
	var sections []promptspec.PromptSpecSection
	for _, ts := range in.Template.Sections {
		if ts.MinDial > in.Dial {
			continue
		}
		blocks := in.SectionBlocks[ts.Heading]
		sections = append(sections, promptspec.PromptSpecSection{
			Heading:        ts.Heading,
			Instruction:    ts.Instruction,
			InjectedBlocks: blocks,
		})
	}

	now := time.Now
	if in.Clock != nil {
		now = in.Clock
	}
	newID := func() string { return "" }
	if in.IDGenerator != nil {
		newID = in.IDGenerator
	}

	return promptspec.PromptSpec{
		ID:                newID(),
		RawInput:          in.RawInput,
		TemplateID:        in.Template.ID,
		Dial:              in.Dial,
		TokenBudget:       in.TokenBudget,
		SystemInstruction: in.Template.SystemInstruction,
		Sections:          sections,
		Constraints:       in.Intent.Constraints,
		ArtifactRefs:      in.ArtifactRefs,
		Meta: promptspec.Meta{
			TotalTokens:       0,
			CompileDurationMs: 0,
			CompiledAt:        now(),
			LintScore:         100,
		},
	}
}
