package compiler

import (
	"time"

	"github.com/google/uuid"
	"github.com/kilnhq/promptc/pkg/lint"
	"github.com/kilnhq/promptc/pkg/telemetry"
	"github.com/kilnhq/promptc/pkg/template"
)

// Options configures a Compiler. Build one with NewOptions and layer
// WithX calls, each returning a copy, matching the copy-on-write pattern
// telemetry.Settings uses.
type Options struct {
	Registry    *template.Registry
	LintRules   []lint.Rule
	Telemetry   *telemetry.Settings
	Clock       func() time.Time
	IDGenerator func() string
}

// NewOptions returns Options with the default template registry, no extra
// lint rules, telemetry disabled, time.Now, and a google/uuid generator.
func NewOptions() *Options {
	return &Options{
		Registry:    template.DefaultRegistry(),
		Telemetry:   telemetry.DefaultSettings(),
		Clock:       time.Now,
		IDGenerator: func() string { return uuid.New().String() },
	}
}

// WithRegistry returns a copy of Options using reg instead of the default
// template catalog.
func (o *Options) WithRegistry(reg *template.Registry) *Options {
	c := *o
	c.Registry = reg
	return &c
}

// WithLintRules returns a copy of Options that appends extra rules after
// the lint engine's fixed default set. This is the only extension point
// spec.md §9 allows: an explicit constructor argument, never a global
// mutable registry.
func (o *Options) WithLintRules(rules ...lint.Rule) *Options {
	c := *o
	c.LintRules = append(append([]lint.Rule(nil), o.LintRules...), rules...)
	return &c
}

// WithTelemetry returns a copy of Options using settings for tracing.
func (o *Options) WithTelemetry(settings *telemetry.Settings) *Options {
	c := *o
	c.Telemetry = settings
	return &c
}

// WithClock returns a copy of Options using clock instead of time.Now.
// Tests use this to get a deterministic spec.meta.compiledAt.
func (o *Options) WithClock(clock func() time.Time) *Options {
	c := *o
	c.Clock = clock
	return &c
}

// WithIDGenerator returns a copy of Options using gen instead of
// google/uuid. Tests use this to get a deterministic spec.id.
func (o *Options) WithIDGenerator(gen func() string) *Options {
	c := *o
	c.IDGenerator = gen
	return &c
}
