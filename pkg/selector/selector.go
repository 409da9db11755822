// Package selector implements the block selector (C4): per-section
// filtering of an artifact's blocks by safety flag, tag match, and token
// budget, producing an ordered inclusion list plus an omission report.
package selector

import (
	"sort"
	"strings"

	"github.com/kilnhq/promptc/pkg/promptspec"
)

const (
	reasonDoNotSend  = "do_not_send flag"
	reasonNoTags     = "no matching tags"
	reasonOverBudget = "exceeded token budget"
)

// Result is the output of one Select call: the blocks chosen for a single
// (section, artifact) pair, the blocks left out with reasons, and the
// tokens the included blocks consumed.
type Result struct {
	Included   []promptspec.InjectedBlock
	Omitted    []OmittedBlock
	TokensUsed int
}

// OmittedBlock pairs a block with the reason it didn't make the cut.
type OmittedBlock struct {
	Block  promptspec.ArtifactBlock
	Reason string
}

// Select runs the four-stage algorithm spec.md §4.4 describes: safety gate,
// tag gate, priority-descending stable sort, then budget fill. tokenBudget
// is the budget *remaining* for this call (the driver tracks the running
// total across the whole compilation); 0 means unlimited.
func Select(blocks []promptspec.ArtifactBlock, sectionTags []string, tokenBudget int, artifactID, artifactName string) Result {
	tagSet := make(map[string]bool, len(sectionTags))
	for _, t := range sectionTags {
		tagSet[strings.ToLower(t)] = true
	}

	type candidate struct {
		block promptspec.ArtifactBlock
		index int // original declaration order, for the stable tie-break
	}

	var candidates []candidate
	var omitted []OmittedBlock

	for i, b := range blocks {
		if b.DoNotSend {
			omitted = append(omitted, OmittedBlock{Block: b, Reason: reasonDoNotSend})
			continue
		}
		if len(tagSet) > 0 && !tagsIntersect(b.Tags, tagSet) {
			omitted = append(omitted, OmittedBlock{Block: b, Reason: reasonNoTags})
			continue
		}
		candidates = append(candidates, candidate{block: b, index: i})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].block.Priority > candidates[j].block.Priority
	})

	var included []promptspec.InjectedBlock
	tokensUsed := 0
	position := 0
	for _, c := range candidates {
		if tokenBudget > 0 && tokensUsed+c.block.TokenCount > tokenBudget {
			omitted = append(omitted, OmittedBlock{Block: c.block, Reason: reasonOverBudget})
			continue
		}
		tokensUsed += c.block.TokenCount
		included = append(included, promptspec.InjectedBlock{
			ArtifactID:   artifactID,
			ArtifactName: artifactName,
			Position:     position,
			Block:        c.block,
		})
		position++
	}

	return Result{Included: included, Omitted: omitted, TokensUsed: tokensUsed}
}

func tagsIntersect(blockTags []string, lowerSectionTags map[string]bool) bool {
	for _, t := range blockTags {
		if lowerSectionTags[strings.ToLower(t)] {
			return true
		}
	}
	return false
}
