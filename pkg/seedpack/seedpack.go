// Package seedpack loads a fixed bundle of seed Artifacts from YAML, for
// local/CLI use where there is no real host-backed artifact store. It is a
// convenience loader only: the compiler itself never imports this package,
// since the pipeline only ever sees artifacts through the
// artifact.FetchArtifactFunc/ResolveRefsFunc adapters.
package seedpack

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kilnhq/promptc/pkg/promptspec"
	"github.com/kilnhq/promptc/pkg/tokenest"
	"gopkg.in/yaml.v3"
)

// blockYAML and artifactYAML mirror promptspec.ArtifactBlock/Artifact in the
// shape a seed pack author writes by hand: tokenCount is intentionally
// absent, since it's derived, not authored.
type blockYAML struct {
	ID        string   `yaml:"id"`
	Label     string   `yaml:"label"`
	Content   string   `yaml:"content"`
	Tags      []string `yaml:"tags"`
	Priority  int      `yaml:"priority"`
	DoNotSend bool     `yaml:"doNotSend"`
}

type artifactYAML struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Aliases     []string    `yaml:"aliases"`
	Description string      `yaml:"description"`
	Blocks      []blockYAML `yaml:"blocks"`
}

type packYAML struct {
	Artifacts []artifactYAML `yaml:"artifacts"`
}

// Pack is an in-memory artifact store loaded from a seed file, indexed by
// both id and every name/alias so it can back both
// artifact.ResolveRefsFunc and artifact.FetchArtifactFunc directly.
type Pack struct {
	byID   map[string]promptspec.Artifact
	byName map[string]string // lowercased name/alias -> id
}

// Load reads and parses a seed pack from the YAML file at path.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seedpack: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Pack from raw YAML bytes, stamping each block's tokenCount
// with the shared token estimator (never trusting an authored value) and
// each artifact's version to 1. CreatedAt/UpdatedAt are left zero.
func Parse(data []byte) (*Pack, error) {
	var raw packYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("seedpack: parsing yaml: %w", err)
	}

	pack := &Pack{
		byID:   make(map[string]promptspec.Artifact, len(raw.Artifacts)),
		byName: make(map[string]string, len(raw.Artifacts)),
	}

	for _, a := range raw.Artifacts {
		if a.ID == "" {
			return nil, fmt.Errorf("seedpack: artifact %q missing id", a.Name)
		}
		blocks := make([]promptspec.ArtifactBlock, len(a.Blocks))
		for i, b := range a.Blocks {
			blocks[i] = promptspec.ArtifactBlock{
				ID:         b.ID,
				Label:      b.Label,
				Content:    b.Content,
				Tags:       b.Tags,
				Priority:   b.Priority,
				DoNotSend:  b.DoNotSend,
				TokenCount: tokenest.Estimate(b.Content),
			}
		}

		pack.byID[a.ID] = promptspec.Artifact{
			ID:          a.ID,
			Name:        a.Name,
			Aliases:     a.Aliases,
			Description: a.Description,
			Blocks:      blocks,
			Version:     1,
			IsSeed:      true,
		}

		pack.byName[strings.ToLower(a.Name)] = a.ID
		for _, alias := range a.Aliases {
			pack.byName[strings.ToLower(alias)] = a.ID
		}
	}

	return pack, nil
}

// ResolveRefs implements artifact.ResolveRefsFunc against this pack's
// name/alias index.
func (p *Pack) ResolveRefs(names []string) []promptspec.ArtifactRef {
	refs := make([]promptspec.ArtifactRef, len(names))
	for i, name := range names {
		id, ok := p.byName[strings.ToLower(name)]
		refs[i] = promptspec.ArtifactRef{Raw: "@" + name, ArtifactID: id, ArtifactName: name, Resolved: ok}
	}
	return refs
}

// FetchArtifact implements artifact.FetchArtifactFunc against this pack.
func (p *Pack) FetchArtifact(id string) *promptspec.Artifact {
	a, ok := p.byID[id]
	if !ok {
		return nil
	}
	return &a
}

// Names returns every artifact name in the pack, sorted, for listing in a
// CLI.
func (p *Pack) Names() []string {
	names := make([]string, 0, len(p.byID))
	for _, a := range p.byID {
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names
}
