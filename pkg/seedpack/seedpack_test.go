package seedpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
artifacts:
  - id: art-ai
    name: ai
    aliases: [ai-safety-pack]
    description: AI safety and ethics background.
    blocks:
      - id: b-safety
        label: AI Safety
        content: Always validate AI outputs before deployment.
        tags: [background, context]
        priority: 5
      - id: b-ethics
        label: AI Ethics
        content: Consider downstream harms.
        tags: [background]
        priority: 4
        doNotSend: false
`

func TestParse_BuildsIndexesAndTokenCounts(t *testing.T) {
	pack, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	a := pack.FetchArtifact("art-ai")
	require.NotNil(t, a)
	assert.Len(t, a.Blocks, 2)
	assert.Equal(t, 8, a.Blocks[0].TokenCount, "tokenCount must be derived from content, not trusted from YAML")
}

func TestResolveRefs_MatchesNameAndAlias(t *testing.T) {
	pack, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	refs := pack.ResolveRefs([]string{"ai", "ai-safety-pack", "unknown"})
	require.Len(t, refs, 3)
	assert.True(t, refs[0].Resolved)
	assert.Equal(t, "art-ai", refs[0].ArtifactID)
	assert.True(t, refs[1].Resolved)
	assert.Equal(t, "art-ai", refs[1].ArtifactID)
	assert.False(t, refs[2].Resolved)
}

func TestParse_MissingIDIsAnError(t *testing.T) {
	_, err := Parse([]byte("artifacts:\n  - name: broken\n"))
	assert.Error(t, err)
}

func TestNames_SortedAndDeduped(t *testing.T) {
	pack, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"ai"}, pack.Names())
}
