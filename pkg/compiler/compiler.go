// Package compiler implements the pipeline driver (C9): it glues the intent
// parser, artifact resolver adapter, block selector, spec generator,
// renderer, validator, and lint engine into one Compile call, threading a
// single global token budget across every (section, artifact) pair and
// stamping the nondeterministic metadata fields exactly once.
package compiler

import (
	"context"
	"strings"
	"time"

	"github.com/kilnhq/promptc/pkg/artifact"
	"github.com/kilnhq/promptc/pkg/compilererrors"
	"github.com/kilnhq/promptc/pkg/intent"
	"github.com/kilnhq/promptc/pkg/lint"
	"github.com/kilnhq/promptc/pkg/promptspec"
	"github.com/kilnhq/promptc/pkg/render"
	"github.com/kilnhq/promptc/pkg/selector"
	"github.com/kilnhq/promptc/pkg/specgen"
	"github.com/kilnhq/promptc/pkg/telemetry"
	"github.com/kilnhq/promptc/pkg/tokenest"
	"github.com/kilnhq/promptc/pkg/validate"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Compiler runs the compilation pipeline with a fixed set of options: a
// template registry, a lint engine built from the registry plus any extra
// rules, and the clock/id-generator pair tests can override.
type Compiler struct {
	opts   *Options
	engine *lint.Engine
}

// New builds a Compiler from opts. A nil opts uses NewOptions' defaults.
func New(opts *Options) *Compiler {
	if opts == nil {
		opts = NewOptions()
	}
	return &Compiler{
		opts:   opts,
		engine: lint.NewEngine(opts.Registry, opts.LintRules...),
	}
}

// Compile runs the full pipeline against input, invoking resolveRefs at
// most once and fetchArtifact concurrently once per resolved reference.
func (c *Compiler) Compile(
	ctx context.Context,
	input promptspec.CompileInput,
	resolveRefs artifact.ResolveRefsFunc,
	fetchArtifact artifact.FetchArtifactFunc,
) (promptspec.CompileOutput, error) {
	if err := promptspec.ValidateCompileInput(input); err != nil {
		return promptspec.CompileOutput{}, err
	}

	tracer := telemetry.GetTracer(c.opts.Telemetry)
	return telemetry.RecordSpan(ctx, tracer, telemetry.SpanOptions{
		Name: "promptc.compile",
		Attributes: telemetry.GetCompileAttributes(
			string(templateIDOf(input)), int(input.Dial), input.TokenBudget, input.RawInput, c.opts.Telemetry,
		),
		EndWhenDone: true,
	}, func(ctx context.Context, span trace.Span) (promptspec.CompileOutput, error) {
		out, err := c.run(ctx, tracer, input, resolveRefs, fetchArtifact)
		if err == nil {
			span.SetAttributes(
				attribute.String("promptc.template_id", string(out.Spec.TemplateID)),
				attribute.Int("promptc.blocks_included", out.Injection.BlocksIncluded),
				attribute.Int("promptc.blocks_omitted", out.Injection.BlocksOmitted),
				attribute.Int("promptc.lint_score", out.Lint.Score),
			)
			if c.opts.Telemetry != nil && c.opts.Telemetry.RecordOutputs {
				span.SetAttributes(attribute.String("promptc.rendered", out.Rendered))
			}
		}
		return out, err
	})
}

func templateIDOf(input promptspec.CompileInput) promptspec.TemplateID {
	if input.TemplateOverride != nil {
		return *input.TemplateOverride
	}
	return ""
}

// selection is the intermediate result of the "select" stage: every
// dial-gated section's chosen blocks, the full injection audit trail, and
// the running token total spent across the whole compilation.
type selection struct {
	sectionBlocks map[string][]promptspec.InjectedBlock
	entries       []promptspec.InjectionEntry
	tokensUsed    int
}

func (c *Compiler) run(
	ctx context.Context,
	tracer trace.Tracer,
	input promptspec.CompileInput,
	resolveRefs artifact.ResolveRefsFunc,
	fetchArtifact artifact.FetchArtifactFunc,
) (promptspec.CompileOutput, error) {
	start := time.Now()
	if c.opts.Clock != nil {
		start = c.opts.Clock()
	}

	parsed, _ := telemetry.RecordSpan(ctx, tracer, telemetry.SpanOptions{
		Name:        "promptc.compile.parse",
		EndWhenDone: true,
	}, func(ctx context.Context, span trace.Span) (promptspec.ParsedIntent, error) {
		return intent.Parse(c.opts.Registry, input.RawInput, input.TemplateOverride), nil
	})

	allRefs := dedupPreserveOrder(parsed.ArtifactRefs, input.ForceArtifacts)

	var refs []promptspec.ArtifactRef
	if len(allRefs) > 0 {
		var err error
		refs, err = telemetry.RecordSpan(ctx, tracer, telemetry.SpanOptions{
			Name:        "promptc.compile.resolve",
			Attributes:  []attribute.KeyValue{attribute.Int("promptc.artifact_refs", len(allRefs))},
			EndWhenDone: true,
		}, func(ctx context.Context, span trace.Span) ([]promptspec.ArtifactRef, error) {
			r, err := resolveRefs(ctx, allRefs)
			if err != nil {
				return nil, compilererrors.NewAdapterError("resolveRefs", err)
			}
			return r, nil
		})
		if err != nil {
			return promptspec.CompileOutput{}, err
		}
	}

	templateID := input.TemplateOverride
	id := parsed.TemplateID
	if templateID != nil {
		id = *templateID
	}
	def, _ := c.opts.Registry.Lookup(id)

	sel, err := telemetry.RecordSpan(ctx, tracer, telemetry.SpanOptions{
		Name:        "promptc.compile.select",
		EndWhenDone: true,
	}, func(ctx context.Context, span trace.Span) (selection, error) {
		artifacts, err := fetchAll(ctx, refs, fetchArtifact)
		if err != nil {
			return selection{}, err
		}
		return selectBlocks(def, input, refs, artifacts), nil
	})
	if err != nil {
		return promptspec.CompileOutput{}, err
	}

	spec, _ := telemetry.RecordSpan(ctx, tracer, telemetry.SpanOptions{
		Name:        "promptc.compile.generate",
		EndWhenDone: true,
	}, func(ctx context.Context, span trace.Span) (promptspec.PromptSpec, error) {
		return specgen.Generate(specgen.Input{
			RawInput:      input.RawInput,
			Intent:        parsed,
			Template:      def,
			Dial:          input.Dial,
			TokenBudget:   input.TokenBudget,
			SectionBlocks: sel.sectionBlocks,
			ArtifactRefs:  refs,
			IDGenerator:   c.opts.IDGenerator,
			Clock:         c.opts.Clock,
		}), nil
	})

	rendered, _ := telemetry.RecordSpan(ctx, tracer, telemetry.SpanOptions{
		Name:        "promptc.compile.render",
		EndWhenDone: true,
	}, func(ctx context.Context, span trace.Span) (string, error) {
		return render.Render(spec), nil
	})

	if _, err := telemetry.RecordSpan(ctx, tracer, telemetry.SpanOptions{
		Name:        "promptc.compile.validate",
		EndWhenDone: true,
	}, func(ctx context.Context, span trace.Span) (struct{}, error) {
		if fieldErrs := validate.Validate(spec); len(fieldErrs) > 0 {
			return struct{}{}, compilererrors.NewValidationError("", fieldErrs[0].Error(), nil)
		}
		return struct{}{}, nil
	}); err != nil {
		return promptspec.CompileOutput{}, err
	}

	lintReport, _ := telemetry.RecordSpan(ctx, tracer, telemetry.SpanOptions{
		Name:        "promptc.compile.lint",
		EndWhenDone: true,
	}, func(ctx context.Context, span trace.Span) (promptspec.LintReport, error) {
		return c.engine.Run(spec, rendered), nil
	})

	spec.Meta.TotalTokens = tokenest.Estimate(rendered)
	spec.Meta.CompileDurationMs = time.Since(start).Milliseconds()
	spec.Meta.LintScore = lintReport.Score
	if c.opts.Clock != nil {
		spec.Meta.CompiledAt = c.opts.Clock()
	} else {
		spec.Meta.CompiledAt = time.Now()
	}

	injection := promptspec.InjectionReport{
		Entries:           sel.entries,
		BlocksIncluded:    countIncluded(sel.entries, true),
		BlocksOmitted:     countIncluded(sel.entries, false),
		TotalTokensUsed:   sel.tokensUsed,
		TotalTokensBudget: input.TokenBudget,
	}

	return promptspec.CompileOutput{
		Spec:      spec,
		Rendered:  rendered,
		Lint:      lintReport,
		Injection: injection,
	}, nil
}

// selectBlocks runs the block-selection loop (C4) over every dial-gated
// template section against every resolved artifact, threading a single
// running token total across the whole compilation.
func selectBlocks(
	def promptspec.TemplateDefinition,
	input promptspec.CompileInput,
	refs []promptspec.ArtifactRef,
	artifacts map[string]*promptspec.Artifact,
) selection {
	sectionBlocks := make(map[string][]promptspec.InjectedBlock)
	var entries []promptspec.InjectionEntry
	tokensUsed := 0

	for _, ts := range def.Sections {
		if ts.MinDial > input.Dial {
			continue
		}
		tags := []string{strings.ToLower(ts.Heading)}

		for _, ref := range refs {
			if !ref.Resolved {
				continue
			}
			art := artifacts[ref.ArtifactID]
			if art == nil || len(art.Blocks) == 0 {
				continue
			}

			remaining := 0
			if input.TokenBudget > 0 {
				remaining = input.TokenBudget - tokensUsed
				if remaining < 0 {
					remaining = 0
				}
			}

			result := selector.Select(art.Blocks, tags, remaining, art.ID, art.Name)
			tokensUsed += result.TokensUsed

			if len(result.Included) > 0 {
				existing := sectionBlocks[ts.Heading]
				base := len(existing)
				for i := range result.Included {
					result.Included[i].Position = base + i
				}
				sectionBlocks[ts.Heading] = append(existing, result.Included...)
			}

			for _, ib := range result.Included {
				entries = append(entries, promptspec.InjectionEntry{
					ArtifactID:   ib.ArtifactID,
					ArtifactName: ib.ArtifactName,
					BlockID:      ib.Block.ID,
					BlockLabel:   ib.Block.Label,
					Included:     true,
					TokenCount:   ib.Block.TokenCount,
				})
			}
			for _, om := range result.Omitted {
				entries = append(entries, promptspec.InjectionEntry{
					ArtifactID:   art.ID,
					ArtifactName: art.Name,
					BlockID:      om.Block.ID,
					BlockLabel:   om.Block.Label,
					Included:     false,
					Reason:       om.Reason,
					TokenCount:   om.Block.TokenCount,
				})
			}
		}
	}

	return selection{sectionBlocks: sectionBlocks, entries: entries, tokensUsed: tokensUsed}
}

func countIncluded(entries []promptspec.InjectionEntry, included bool) int {
	n := 0
	for _, e := range entries {
		if e.Included == included {
			n++
		}
	}
	return n
}

// fetchAll fans out one fetchArtifact call per resolved ref concurrently
// and joins them, keyed by artifact id. Unresolved refs are skipped: they
// are never fetched.
func fetchAll(ctx context.Context, refs []promptspec.ArtifactRef, fetchArtifact artifact.FetchArtifactFunc) (map[string]*promptspec.Artifact, error) {
	results := make(map[string]*promptspec.Artifact)
	if fetchArtifact == nil {
		return results, nil
	}

	var toFetch []string
	for _, ref := range refs {
		if ref.Resolved {
			toFetch = append(toFetch, ref.ArtifactID)
		}
	}
	if len(toFetch) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	fetched := make([]*promptspec.Artifact, len(toFetch))
	for i, id := range toFetch {
		i, id := i, id
		g.Go(func() error {
			a, err := fetchArtifact(gctx, id)
			if err != nil {
				return compilererrors.NewAdapterError("fetchArtifact", err)
			}
			fetched[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, id := range toFetch {
		if fetched[i] != nil {
			results[id] = fetched[i]
		}
	}
	return results, nil
}

func dedupPreserveOrder(a, b []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range append(append([]string(nil), a...), b...) {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
