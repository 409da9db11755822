package compiler

import (
	"context"
	"testing"

	"github.com/kilnhq/promptc/pkg/promptspec"
	"github.com/kilnhq/promptc/pkg/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTelemetryTest(t *testing.T) (*tracetest.SpanRecorder, func()) {
	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	otel.SetTracerProvider(tp)

	cleanup := func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("error shutting down tracer provider: %v", err)
		}
	}
	return spanRecorder, cleanup
}

func findSpan(spans []sdktrace.ReadOnlySpan, name string) sdktrace.ReadOnlySpan {
	for _, s := range spans {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

func TestCompile_Telemetry_RecordsRootAndStageSpans(t *testing.T) {
	spanRecorder, cleanup := setupTelemetryTest(t)
	defer cleanup()

	settings := telemetry.DefaultSettings().WithEnabled(true)
	c := New(fixedOptions("spec-telemetry").WithTelemetry(settings))

	_, err := c.Compile(context.Background(), promptspec.CompileInput{
		RawInput: "Explain @ai safety", Dial: 4, TokenBudget: 500,
	}, noopResolver().Resolve, aiFetcher().Fetch)
	require.NoError(t, err)

	spans := spanRecorder.Ended()
	wantNames := []string{
		"promptc.compile",
		"promptc.compile.parse",
		"promptc.compile.resolve",
		"promptc.compile.select",
		"promptc.compile.generate",
		"promptc.compile.render",
		"promptc.compile.validate",
		"promptc.compile.lint",
	}
	for _, name := range wantNames {
		assert.NotNilf(t, findSpan(spans, name), "expected a %q span", name)
	}

	root := findSpan(spans, "promptc.compile")
	require.NotNil(t, root)

	attrs := map[string]interface{}{}
	for _, a := range root.Attributes() {
		attrs[string(a.Key)] = a.Value.AsInterface()
	}
	assert.Equal(t, "academic-report", attrs["promptc.template_id"])
	assert.Equal(t, int64(4), attrs["promptc.dial"])
	assert.Equal(t, "Explain @ai safety", attrs["promptc.raw_input"])
	assert.Equal(t, int64(70), attrs["promptc.lint_score"])
	if _, ok := attrs["promptc.rendered"]; !ok {
		t.Error("expected promptc.rendered attribute when RecordOutputs is true")
	}
}

func TestCompile_Telemetry_RecordInputsDisabled_OmitsRawInput(t *testing.T) {
	spanRecorder, cleanup := setupTelemetryTest(t)
	defer cleanup()

	settings := telemetry.DefaultSettings().WithEnabled(true).WithRecordInputs(false).WithRecordOutputs(false)
	c := New(fixedOptions("spec-telemetry-2").WithTelemetry(settings))

	_, err := c.Compile(context.Background(), promptspec.CompileInput{
		RawInput: "Write a report on AI", Dial: 3, TokenBudget: 1000,
	}, noopResolver().Resolve, aiFetcher().Fetch)
	require.NoError(t, err)

	root := findSpan(spanRecorder.Ended(), "promptc.compile")
	require.NotNil(t, root)
	for _, a := range root.Attributes() {
		assert.NotEqual(t, "promptc.raw_input", string(a.Key))
		assert.NotEqual(t, "promptc.rendered", string(a.Key))
	}
}

func TestCompile_Telemetry_DisabledByDefault_RecordsNoSpans(t *testing.T) {
	spanRecorder, cleanup := setupTelemetryTest(t)
	defer cleanup()

	c := New(fixedOptions("spec-telemetry-3"))

	_, err := c.Compile(context.Background(), promptspec.CompileInput{
		RawInput: "Write a report on AI", Dial: 3, TokenBudget: 1000,
	}, noopResolver().Resolve, aiFetcher().Fetch)
	require.NoError(t, err)

	assert.Empty(t, spanRecorder.Ended(), "telemetry is disabled by default and must add no spans")
}
