package bparse_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/advdv/bparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	logs := bparse.NewStdLogger(log.New(&buf, "", 0))

	var msg bparse.Message
	p := bparse.NewParser(bparse.NewReferenceHandler(logs))
	require.Equal(t, bparse.ErrnoOK, p.ExecuteString(&msg, "HTTP/1.0 404 Not Found\r\nContent-Length: 0\r\n\r\n"))

	p = bparse.NewDefaultParser()
	require.Equal(t, bparse.ErrnoInvalidURL, p.ExecuteString(nil, "GET \x01 HTTP/1.1\r\n\r\n"))
	logs.LogParseError(p.Err())

	assert.Equal(t, "bparse: message complete: HTTP/1.0 404 Not Found\n"+
		"bparse: parse error: HPE_INVALID_URL: Unexpected start char in url at byte 4\n", buf.String())
}

func TestZapLogger(t *testing.T) {
	core, obs := observer.New(zapcore.DebugLevel)
	logs := bparse.NewZapLogger(zap.New(core))

	t.Run("should log completed messages", func(t *testing.T) {
		p := bparse.NewParser(bparse.NewReferenceHandler(logs))
		require.Equal(t, bparse.ErrnoOK, p.ExecuteString(&bparse.Message{}, "PUT /x HTTP/1.1\r\nA: b\r\nContent-Length: 2\r\n\r\nhi"))

		entries := obs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "bparse", entries[0].LoggerName)
		assert.Equal(t, "message complete", entries[0].Message)
		assert.Equal(t, map[string]any{
			"start_line":  "PUT /x HTTP/1.1",
			"num_headers": int64(2),
			"body_bytes":  int64(2),
		}, entries[0].ContextMap())
	})

	t.Run("should log parse errors", func(t *testing.T) {
		p := bparse.NewDefaultParser()
		require.Equal(t, bparse.ErrnoInvalidURL, p.ExecuteString(nil, "GET \x01 HTTP/1.1\r\n\r\n"))
		logs.LogParseError(p.Err())

		entries := obs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "HPE_INVALID_URL", entries[0].ContextMap()["errno"])
	})
}

func TestNewLogger(t *testing.T) {
	for _, lvl := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.ErrorLevel} {
		t.Run(lvl.String(), func(t *testing.T) {
			l, err := bparse.NewLogger(bparse.Config{LogLevel: lvl})
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(lvl))
			assert.False(t, l.Core().Enabled(lvl-1))
		})
	}
}

func TestTestLogger(t *testing.T) {
	logs := bparse.NewTestLogger(t)
	p := bparse.NewParser(bparse.NewReferenceHandler(logs))

	var msg bparse.Message
	require.Equal(t, bparse.ErrnoOK, p.ExecuteString(&msg, "GET /a HTTP/1.1\r\n\r\nGET /b HTTP/1.1\r\n\r\n"))
	assert.EqualValues(t, 2, logs.NumLogMessageComplete)
	assert.EqualValues(t, 0, logs.NumLogParseError)

	bparse.NopLogger.LogMessageComplete(&msg)
	bparse.NopLogger.LogParseError(nil)
}
