package bparse_test

import (
	"testing"

	"github.com/advdv/bparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseConfig(t *testing.T) {
	t.Run("should default to strict parsing", func(t *testing.T) {
		cfg, err := bparse.ParseConfig()
		require.NoError(t, err)
		assert.Equal(t, bparse.Config{LogLevel: zapcore.InfoLevel}, cfg)
	})

	t.Run("should read the environment", func(t *testing.T) {
		t.Setenv("BPARSE_LENIENT_HEADERS", "true")
		t.Setenv("BPARSE_LENIENT_CHUNKED_LENGTH", "true")
		t.Setenv("BPARSE_LENIENT_KEEP_ALIVE", "1")
		t.Setenv("BPARSE_LOG_LEVEL", "DEBUG")

		cfg, err := bparse.ParseConfig()
		require.NoError(t, err)
		assert.Equal(t, bparse.Config{
			LenientHeaders:       true,
			LenientChunkedLength: true,
			LenientKeepAlive:     true,
			LogLevel:             zapcore.DebugLevel,
		}, cfg)
	})

	t.Run("should wrap invalid values", func(t *testing.T) {
		t.Setenv("BPARSE_LENIENT_HEADERS", "maybe")

		_, err := bparse.ParseConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse environment")
	})

	t.Run("should configure parsers", func(t *testing.T) {
		t.Setenv("BPARSE_LENIENT_KEEP_ALIVE", "true")

		cfg, err := bparse.ParseConfig()
		require.NoError(t, err)

		p := bparse.NewDefaultParser(bparse.WithConfig(cfg))
		assert.Equal(t, bparse.ErrnoOK,
			p.ExecuteString(nil, "GET / HTTP/1.1\r\nConnection: close\r\n\r\nGET / HTTP/1.1\r\n\r\n"))
	})
}
