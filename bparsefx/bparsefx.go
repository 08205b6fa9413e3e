// Package bparsefx provides parsers, their configuration, logging and tracing through fx.
package bparsefx

import (
	"github.com/advdv/bparse"
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Environment is the configuration read by Module.
type Environment struct {
	bparse.Config

	ServiceName  string `env:"BPARSE_SERVICE_NAME" envDefault:"bparse"`
	OtelExporter string `env:"BPARSE_OTEL_EXPORTER" envDefault:"none"`
}

// ParseEnv parses environment variables into an Environment.
func ParseEnv() (e Environment, err error) {
	if err := env.Parse(&e); err != nil {
		return e, errors.Wrap(err, "failed to parse environment")
	}

	return e, nil
}

// Module provides the Environment, the parser Config, a *zap.Logger, a bparse.Logger, a
// trace.TracerProvider and a *Factory.
var Module = fx.Module("bparse",
	fx.Provide(ParseEnv),
	fx.Provide(func(e Environment) bparse.Config { return e.Config }),
	fx.Provide(bparse.NewLogger),
	fx.Provide(func(l *zap.Logger) bparse.Logger { return bparse.NewZapLogger(l) }),
	fx.Provide(NewTracerProvider),
	fx.Provide(NewFactory),
)

// Factory creates parsers that share the configuration, the logger and the tracer provider.
type Factory struct {
	cfg  bparse.Config
	tp   trace.TracerProvider
	logs bparse.Logger
}

// NewFactory inits the factory.
func NewFactory(cfg bparse.Config, tp trace.TracerProvider, logs bparse.Logger) *Factory {
	return &Factory{cfg: cfg, tp: tp, logs: logs}
}

// Options returns the parser options derived from the factory's dependencies.
func (f *Factory) Options() []bparse.Option {
	return []bparse.Option{bparse.WithConfig(f.cfg), bparse.WithTracerProvider(f.tp)}
}

// NewParser creates a configured parser for h.
func (f *Factory) NewParser(h any) (*bparse.Parser, error) {
	tbl, err := bparse.TableOf(h)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build callback table")
	}

	return bparse.NewParserWith(h, tbl, f.Options()...), nil
}

// NewDefaultParser creates a configured parser with a reference handler that logs completed messages.
func (f *Factory) NewDefaultParser() *bparse.Parser {
	return bparse.NewParser(bparse.NewReferenceHandler(f.logs), f.Options()...)
}

// NewStream creates a stream around a new default parser.
func (f *Factory) NewStream() *Stream {
	return &Stream{parser: f.NewDefaultParser(), logs: f.logs}
}
