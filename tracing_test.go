package bparse_test

import (
	"context"
	"testing"

	"github.com/advdv/bparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range s.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	return attrs
}

func TestExecuteContext(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx := context.Background()

	t.Run("should record a successful execute", func(t *testing.T) {
		p := bparse.NewDefaultParser(bparse.WithTracerProvider(tp))
		in := []byte("GET / HTTP/1.1\r\n\r\n")
		require.Equal(t, bparse.ErrnoOK, p.ExecuteContext(ctx, &bparse.Message{}, in))

		spans := rec.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "bparse.execute", spans[0].Name())
		assert.Equal(t, codes.Unset, spans[0].Status().Code)

		attrs := spanAttrs(spans[0])
		assert.Equal(t, int64(len(in)), attrs["bparse.bytes"].AsInt64())
		assert.Equal(t, "HPE_OK", attrs["bparse.errno"].AsString())
		assert.Equal(t, "request", attrs["bparse.message_type"].AsString())
		assert.NotContains(t, attrs, attribute.Key("bparse.error_pos"))
	})

	t.Run("should record a parse error", func(t *testing.T) {
		p := bparse.NewDefaultParser(bparse.WithTracerProvider(tp))
		require.Equal(t, bparse.ErrnoInvalidVersion, p.ExecuteContext(ctx, nil, []byte("GET / HTTP/1.7\r\n\r\n")))

		spans := rec.Ended()
		require.Len(t, spans, 2)
		assert.Equal(t, codes.Error, spans[1].Status().Code)
		assert.Contains(t, spans[1].Status().Description, "HPE_INVALID_VERSION")

		attrs := spanAttrs(spans[1])
		assert.Equal(t, int64(13), attrs["bparse.error_pos"].AsInt64())
	})

	t.Run("should not trace without a provider", func(t *testing.T) {
		p := bparse.NewDefaultParser()
		require.Equal(t, bparse.ErrnoOK, p.ExecuteContext(ctx, nil, []byte("GET / HTTP/1.1\r\n\r\n")))
		assert.Len(t, rec.Ended(), 2)
	})

	t.Run("should not mark an HTTP/2 preface as an error", func(t *testing.T) {
		p := bparse.NewDefaultParser(bparse.WithTracerProvider(tp))
		require.Equal(t, bparse.ErrnoPausedH2Upgrade,
			p.ExecuteContext(ctx, nil, []byte("PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n")))

		spans := rec.Ended()
		require.Len(t, spans, 3)
		assert.Equal(t, codes.Unset, spans[2].Status().Code)
		assert.Equal(t, "HPE_PAUSED_H2_UPGRADE", spanAttrs(spans[2])["bparse.errno"].AsString())
	})
}
