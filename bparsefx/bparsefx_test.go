package bparsefx_test

import (
	"context"
	"testing"

	"github.com/advdv/bparse"
	"github.com/advdv/bparse/bparsefx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zapcore"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("BPARSE_LENIENT_HEADERS", "true")
	t.Setenv("BPARSE_LOG_LEVEL", "warn")
	t.Setenv("BPARSE_OTEL_EXPORTER", "stdout")

	e, err := bparsefx.ParseEnv()
	require.NoError(t, err)
	assert.True(t, e.LenientHeaders)
	assert.Equal(t, zapcore.WarnLevel, e.LogLevel)
	assert.Equal(t, "stdout", e.OtelExporter)
	assert.Equal(t, "bparse", e.ServiceName)
}

func TestModule(t *testing.T) {
	for _, exporter := range []string{"none", "stdout"} {
		t.Run("should provide a factory with exporter "+exporter, func(t *testing.T) {
			t.Setenv("BPARSE_OTEL_EXPORTER", exporter)
			t.Setenv("BPARSE_LENIENT_KEEP_ALIVE", "true")

			var f *bparsefx.Factory
			app := fxtest.New(t, bparsefx.Module, fx.Populate(&f))
			app.RequireStart()
			defer app.RequireStop()

			var msg bparse.Message
			p := f.NewDefaultParser()
			require.Equal(t, bparse.ErrnoOK, p.ExecuteContext(context.Background(), &msg,
				[]byte("GET /a HTTP/1.1\r\nConnection: close\r\n\r\nGET /b HTTP/1.1\r\n\r\n")))
			assert.Equal(t, "/b", msg.URL.String())
		})
	}

	t.Run("should fail on an unknown exporter", func(t *testing.T) {
		t.Setenv("BPARSE_OTEL_EXPORTER", "carrier-pigeon")

		app := fx.New(fx.NopLogger, bparsefx.Module, fx.Invoke(func(*bparsefx.Factory) {}))
		require.Error(t, app.Err())
		assert.Contains(t, app.Err().Error(), "unsupported BPARSE_OTEL_EXPORTER")
	})
}

type rejectAll struct{}

func (rejectAll) OnMessageBegin(*bparse.Parser) int { return bparse.Abort }

func TestFactory(t *testing.T) {
	logs := bparse.NewTestLogger(t)
	f := bparsefx.NewFactory(bparse.Config{LenientHeaders: true}, noop.NewTracerProvider(), logs)

	t.Run("should create parsers for custom handlers", func(t *testing.T) {
		p, err := f.NewParser(rejectAll{})
		require.NoError(t, err)
		assert.Equal(t, bparse.ErrnoCBMessageBegin, p.ExecuteString(nil, "GET / HTTP/1.1\r\n\r\n"))
	})

	t.Run("should reject handlers with mismatched methods", func(t *testing.T) {
		_, err := f.NewParser(badHandler{})
		require.ErrorIs(t, err, bparse.ErrSignatureMismatch)
	})

	t.Run("should apply the config", func(t *testing.T) {
		var msg bparse.Message
		p := f.NewDefaultParser()
		require.Equal(t, bparse.ErrnoOK, p.ExecuteString(&msg, "GET / HTTP/1.1\r\nX: \x01\r\n\r\n"))
		assert.EqualValues(t, 1, logs.NumLogMessageComplete)
	})
}

type badHandler struct{}

func (badHandler) OnBody(*bparse.Parser) int { return bparse.Continue }

func TestStream(t *testing.T) {
	ctx := context.Background()

	t.Run("should parse across reads", func(t *testing.T) {
		logs := bparse.NewTestLogger(t)
		s := bparsefx.NewFactory(bparse.Config{}, noop.NewTracerProvider(), logs).NewStream()

		var msg bparse.Message
		for _, read := range []string{"POST /up HTTP/1.1\r\nContent-", "Length: 5\r\n\r\nhel", "lo"} {
			rest, err := s.Feed(ctx, &msg, []byte(read))
			require.NoError(t, err)
			require.Nil(t, rest)
		}

		assert.Equal(t, "hello", msg.Body.String())
		v, _ := msg.Get("content-length")
		assert.Equal(t, "5", v.String())
		require.NoError(t, s.Close(&msg))
		assert.EqualValues(t, 1, logs.NumLogMessageComplete)
	})

	t.Run("should return the bytes after an upgrade", func(t *testing.T) {
		s := bparsefx.NewFactory(bparse.Config{}, noop.NewTracerProvider(), bparse.NewTestLogger(t)).NewStream()

		var msg bparse.Message
		rest, err := s.Feed(ctx, &msg, []byte("CONNECT example.com:443 HTTP/1.1\r\n\r\nTLS"))
		require.NoError(t, err)
		assert.Equal(t, "TLS", string(rest))
		assert.Equal(t, "example.com:443", msg.URL.String())
	})

	t.Run("should hand an HTTP/2 preface over without logging", func(t *testing.T) {
		logs := bparse.NewTestLogger(t)
		s := bparsefx.NewFactory(bparse.Config{}, noop.NewTracerProvider(), logs).NewStream()

		rest, err := s.Feed(ctx, nil, []byte("PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n"))
		require.NoError(t, err)
		assert.Equal(t, "\r\n\r\nSM\r\n\r\n", string(rest))
		assert.Equal(t, bparse.ErrnoPausedH2Upgrade, s.Parser().Errno())
		assert.EqualValues(t, 0, logs.NumLogParseError)
	})

	t.Run("should log parse errors", func(t *testing.T) {
		logs := bparse.NewTestLogger(t)
		s := bparsefx.NewFactory(bparse.Config{}, noop.NewTracerProvider(), logs).NewStream()

		_, err := s.Feed(ctx, nil, []byte("GET / HTTP/1.1\r\nBad Header: x\r\n\r\n"))
		require.Error(t, err)
		assert.Equal(t, bparse.ErrnoInvalidHeaderToken, bparse.ErrnoOf(err))
		assert.EqualValues(t, 1, logs.NumLogParseError)
	})

	t.Run("should report an unfinished message on close", func(t *testing.T) {
		logs := bparse.NewTestLogger(t)
		s := bparsefx.NewFactory(bparse.Config{}, noop.NewTracerProvider(), logs).NewStream()

		var msg bparse.Message
		_, err := s.Feed(ctx, &msg, []byte("GET / HTTP/1.1\r\nHost: a"))
		require.NoError(t, err)

		err = s.Close(&msg)
		assert.Equal(t, bparse.ErrnoInvalidEOFState, bparse.ErrnoOf(err))
		assert.EqualValues(t, 1, logs.NumLogParseError)
		assert.Equal(t, bparse.TypeRequest, s.Parser().Type())
	})
}
