package bparse

import (
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

// Config holds the parser settings that can be read from the environment.
type Config struct {
	// LenientHeaders accepts control characters in header values.
	LenientHeaders bool `env:"BPARSE_LENIENT_HEADERS" envDefault:"false"`
	// LenientChunkedLength accepts Content-Length next to Transfer-Encoding, and a request
	// Transfer-Encoding that does not end in chunked.
	LenientChunkedLength bool `env:"BPARSE_LENIENT_CHUNKED_LENGTH" envDefault:"false"`
	// LenientKeepAlive keeps parsing after a message that asked to close the connection.
	LenientKeepAlive bool `env:"BPARSE_LENIENT_KEEP_ALIVE" envDefault:"false"`
	// LogLevel is the level of the logger built by NewLogger.
	LogLevel zapcore.Level `env:"BPARSE_LOG_LEVEL" envDefault:"info"`
}

// ParseConfig reads the config from environment variables.
func ParseConfig() (cfg Config, err error) {
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to parse environment")
	}

	return cfg, nil
}

type options struct {
	lenientHeaders       bool
	lenientChunkedLength bool
	lenientKeepAlive     bool
	tracerProvider       trace.TracerProvider
}

// Option configures a Parser at construction.
type Option func(*options)

// WithConfig applies the lenient settings of cfg.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.lenientHeaders = cfg.LenientHeaders
		o.lenientChunkedLength = cfg.LenientChunkedLength
		o.lenientKeepAlive = cfg.LenientKeepAlive
	}
}

func WithLenientHeaders(enabled bool) Option {
	return func(o *options) { o.lenientHeaders = enabled }
}

func WithLenientChunkedLength(enabled bool) Option {
	return func(o *options) { o.lenientChunkedLength = enabled }
}

func WithLenientKeepAlive(enabled bool) Option {
	return func(o *options) { o.lenientKeepAlive = enabled }
}

// WithTracerProvider sets the provider used by ExecuteContext. No global provider is consulted.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}
