package bparse

import (
	"fmt"
	"log"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger can be implemented to get informed about parsed messages and parse failures.
type Logger interface {
	LogMessageComplete(m *Message)
	LogParseError(err error)
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogMessageComplete(m *Message) {
	l.Logger.Printf("bparse: message complete: %s", startLine(m))
}

func (l stdLogger) LogParseError(err error) {
	l.Logger.Printf("bparse: parse error: %s", err)
}

func NewStdLogger(l *log.Logger) Logger {
	return stdLogger{l}
}

type zapLogger struct{ *zap.Logger }

func (l zapLogger) LogMessageComplete(m *Message) {
	l.Logger.Debug("message complete",
		zap.String("start_line", startLine(m)),
		zap.Int("num_headers", len(m.Headers)),
		zap.Int("body_bytes", len(m.Body)))
}

func (l zapLogger) LogParseError(err error) {
	l.Logger.Error("parse error", zap.Stringer("errno", ErrnoOf(err)), zap.Error(err))
}

// NewZapLogger logs through l, named "bparse".
func NewZapLogger(l *zap.Logger) Logger {
	return zapLogger{l.Named("bparse")}
}

// NewLogger creates a production zap logger at the level of cfg.
func NewLogger(cfg Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}

type nopLogger struct{}

func (nopLogger) LogMessageComplete(*Message) {}
func (nopLogger) LogParseError(error)         {}

// NopLogger discards everything.
var NopLogger Logger = nopLogger{}

type TestLogger struct {
	tb testing.TB

	NumLogMessageComplete int64
	NumLogParseError      int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogMessageComplete(m *Message) {
	atomic.AddInt64(&l.NumLogMessageComplete, 1)
	l.tb.Logf("bparse: message complete: %s", startLine(m))
}

func (l *TestLogger) LogParseError(err error) {
	atomic.AddInt64(&l.NumLogParseError, 1)
	l.tb.Logf("bparse: parse error: %s", err)
}

var _ Logger = &TestLogger{}

func startLine(m *Message) string {
	if m.StatusCode != 0 {
		return fmt.Sprintf("HTTP/%d.%d %d %s", m.Major, m.Minor, m.StatusCode, m.Status)
	}

	return fmt.Sprintf("%s %s HTTP/%d.%d", m.Method, m.URL, m.Major, m.Minor)
}
