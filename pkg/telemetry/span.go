package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanOptions configures a telemetry span
type SpanOptions struct {
	// Name is the operation name for the span
	Name string

	// Attributes are key-value pairs attached to the span
	Attributes []attribute.KeyValue

	// EndWhenDone controls whether the span should be ended automatically when the function returns
	EndWhenDone bool
}

// RecordSpan creates and executes a telemetry span for an operation.
// On success the span is ended when the function completes only if EndWhenDone is true.
// On error the span is always ended, and the error is recorded on the span.
func RecordSpan[T any](
	ctx context.Context,
	tracer trace.Tracer,
	opts SpanOptions,
	fn func(context.Context, trace.Span) (T, error),
) (T, error) {
	ctx, span := tracer.Start(ctx, opts.Name,
		trace.WithAttributes(opts.Attributes...),
	)

	result, err := fn(ctx, span)

	if err != nil {
		RecordErrorOnSpan(span, err)
		span.End()
		var zero T
		return zero, err
	}

	if opts.EndWhenDone {
		span.End()
	}

	return result, nil
}

// RecordErrorOnSpan records an error on a span and sets the span status to error.
func RecordErrorOnSpan(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// GetCompileAttributes returns the base span attributes common to every
// compilation: the chosen template and the dial/budget the caller asked
// for. rawInput is attached as promptc.raw_input only when settings.RecordInputs
// is true, mirroring the teacher's gating of ai.prompt on the same field.
// Per-stage attributes (blocks included/omitted, lint score) and the
// rendered output (gated on RecordOutputs) are added by the driver once
// those values are known.
func GetCompileAttributes(
	templateID string,
	dial int,
	tokenBudget int,
	rawInput string,
	settings *Settings,
) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("promptc.template_id", templateID),
		attribute.Int("promptc.dial", dial),
		attribute.Int("promptc.token_budget", tokenBudget),
	}

	if settings != nil {
		if settings.FunctionID != "" {
			attrs = append(attrs, attribute.String("promptc.telemetry.function_id", settings.FunctionID))
		}
		for key, value := range settings.Metadata {
			attrs = append(attrs, attribute.KeyValue{
				Key:   attribute.Key("promptc.telemetry.metadata." + key),
				Value: value,
			})
		}
		if settings.RecordInputs && rawInput != "" {
			attrs = append(attrs, attribute.String("promptc.raw_input", rawInput))
		}
	}

	return attrs
}
