package bparse

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/advdv/bparse"

// ExecuteContext is Execute recorded as a "bparse.execute" span with the tracer provider given by
// [WithTracerProvider]. Pauses are not recorded as errors.
func (p *Parser) ExecuteContext(ctx context.Context, m *Message, data []byte) Errno {
	_, span := p.tracer.Start(ctx, "bparse.execute",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int("bparse.bytes", len(data))))
	defer span.End()

	errno := p.Execute(m, data)
	span.SetAttributes(
		attribute.String("bparse.errno", errno.String()),
		attribute.String("bparse.message_type", p.Type().String()),
	)

	if err := p.Err(); err != nil {
		span.SetAttributes(attribute.Int("bparse.error_pos", p.ErrorPos()))
		span.SetStatus(codes.Error, err.Error())
	}

	return errno
}
