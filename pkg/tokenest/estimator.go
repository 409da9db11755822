// Package tokenest implements the single cheap token-count heuristic shared
// by block creation, the lint engine's budget-exceeded rule, and the
// pipeline driver's meta.totalTokens bookkeeping. It is intentionally not a
// real tokenizer: the whole system only needs one consistent, deterministic
// estimate used everywhere.
package tokenest

import (
	"math"
	"strings"
)

// Estimate returns 0 for empty or whitespace-only text and otherwise
// ceil(wordCount * 1.3), where wordCount is the number of non-empty runs
// separated by any whitespace.
func Estimate(text string) int {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	return int(math.Ceil(float64(len(words)) * 1.3))
}
