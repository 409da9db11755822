// Package render implements the renderer (C6): a pure, deterministic
// serialization of a PromptSpec into the final prompt string. It performs
// no sanitization or whitespace normalization -- content is passed through
// verbatim, since the compiler builds prompts for models, not for display.
package render

import (
	"strings"

	"github.com/kilnhq/promptc/pkg/promptspec"
)

const separator = "---"

// Render serializes spec per the fixed layout spec.md §4.6 defines:
// system instruction, then one block per emitted section (heading,
// instruction, injected content blocks), then an optional trailing
// constraints block, each separated by a single "---" line.
func Render(spec promptspec.PromptSpec) string {
	var b strings.Builder

	b.WriteString("[System Instruction]\n")
	b.WriteString(spec.SystemInstruction)
	b.WriteString("\n")
	b.WriteString(separator)

	for _, section := range spec.Sections {
		b.WriteString("\n# ")
		b.WriteString(section.Heading)
		b.WriteString("\n")
		b.WriteString(section.Instruction)
		for _, ib := range section.InjectedBlocks {
			b.WriteString("\n## [Context: ")
			b.WriteString(ib.Block.Label)
			b.WriteString("]\n")
			b.WriteString(ib.Block.Content)
		}
		b.WriteString("\n")
		b.WriteString(separator)
	}

	if len(spec.Constraints) > 0 {
		b.WriteString("\n[Constraints]")
		for _, c := range spec.Constraints {
			b.WriteString("\n")
			b.WriteString(c)
		}
	}

	return b.String()
}
