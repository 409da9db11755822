// Package template holds the fixed, compile-time catalog of prompt
// templates. A Registry is immutable process-wide state: there is no
// runtime registration API, matching spec.md §9's rejection of global
// mutable state in favor of explicit, constructed values.
package template

import "github.com/kilnhq/promptc/pkg/promptspec"

// Registry is a closed, immutable lookup of TemplateDefinitions keyed by
// TemplateID. The zero value is not usable; construct one with
// DefaultRegistry (or NewRegistry for tests that need a reduced catalog).
type Registry struct {
	byID map[promptspec.TemplateID]promptspec.TemplateDefinition
}

// NewRegistry builds a Registry from an explicit list of definitions. Panics
// on a duplicate TemplateID, since that would make lookups ambiguous and
// can only happen from a programming error in the catalog, never from host
// input.
func NewRegistry(defs []promptspec.TemplateDefinition) *Registry {
	byID := make(map[promptspec.TemplateID]promptspec.TemplateDefinition, len(defs))
	for _, d := range defs {
		if _, exists := byID[d.ID]; exists {
			panic("template: duplicate template id in catalog: " + string(d.ID))
		}
		byID[d.ID] = d
	}
	return &Registry{byID: byID}
}

// DefaultRegistry returns the fixed, five-template catalog spec.md §3
// describes (academic-report, prd, decision-memo, critique,
// research-brief).
func DefaultRegistry() *Registry {
	return NewRegistry(defaultCatalog())
}

// Lookup returns the definition for id and whether it was found.
func (r *Registry) Lookup(id promptspec.TemplateID) (promptspec.TemplateDefinition, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// KeywordsFor returns the keyword list a template was registered with, or
// nil if id is not in this registry. Satisfies the keyword-lookup surface
// the lint engine's no-template-match rule needs.
func (r *Registry) KeywordsFor(id promptspec.TemplateID) []string {
	d, ok := r.byID[id]
	if !ok {
		return nil
	}
	return d.Keywords
}

// All returns the catalog in the deterministic order promptspec.CatalogOrder
// defines, skipping any id this registry doesn't carry (only relevant for a
// reduced test registry).
func (r *Registry) All() []promptspec.TemplateDefinition {
	out := make([]promptspec.TemplateDefinition, 0, len(r.byID))
	for _, id := range promptspec.CatalogOrder {
		if d, ok := r.byID[id]; ok {
			out = append(out, d)
		}
	}
	return out
}
