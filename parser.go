package bparse

import (
	"reflect"

	"github.com/advdv/bparse/internal/engine"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Parser feeds bytes of one stream to the engine and dispatches its events to a handler. It is not
// safe for concurrent use: create one per stream and Reset it between unrelated messages.
type Parser struct {
	state   engine.State
	handler any
	h       handlers
	table   *Table
	message *Message
	opts    options
	tracer  trace.Tracer
}

// NewParser creates a parser that dispatches to h. It panics when the table for h's type cannot be
// built, see [NewTable].
func NewParser[H any](h H, opts ...Option) *Parser {
	tbl, err := TableOf(h)
	if err != nil {
		panic("bparse: " + err.Error())
	}

	return NewParserWith(h, tbl, opts...)
}

// NewParserWith creates a parser that dispatches to h through an existing table. The table must have
// been built for the dynamic type of h.
func NewParserWith(h any, tbl *Table, opts ...Option) *Parser {
	if typ := reflect.TypeOf(h); typ != tbl.Type() {
		panic("bparse: table for " + tbl.Type().String() + " used with handler of type " + typeName(typ))
	}

	p := &Parser{handler: h, h: newHandlers(h), table: tbl}
	for _, o := range opts {
		o(&p.opts)
	}

	tp := p.opts.tracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	p.tracer = tp.Tracer(tracerName)
	p.Init()

	return p
}

// NewDefaultParser creates a parser that fills messages using [DefaultHandler].
func NewDefaultParser(opts ...Option) *Parser {
	return NewParserWith(DefaultHandler, TableFor[*ReferenceHandler](), opts...)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	return t.String()
}

// Init fully reinitializes the parser: it accepts both requests and responses again and the lenient
// flags are restored to the values given at construction.
func (p *Parser) Init() {
	p.state.Init(engine.TypeBoth, p.table.callbacks())
	p.state.Data = p
	p.state.SetLenientHeaders(p.opts.lenientHeaders)
	p.state.SetLenientChunkedLength(p.opts.lenientChunkedLength)
	p.state.SetLenientKeepAlive(p.opts.lenientKeepAlive)
	p.message = nil
}

// Reset prepares the parser for the next, unrelated message. The detected message type and the
// lenient flags are kept, any error is cleared.
func (p *Parser) Reset() {
	p.state.Reset()
	p.message = nil
}

// Execute parses data and lets the handler fill m. Handlers may only reach m through [Parser.Message]
// during this call. Every status other than [ErrnoOK], [ErrnoPaused] and [ErrnoPausedUpgrade] is
// returned again by later calls, without invoking the handler, until Reset or Init.
func (p *Parser) Execute(m *Message, data []byte) Errno {
	p.message = m
	defer func() { p.message = nil }()

	return p.state.Execute(data)
}

// ExecuteString parses a copy of s. Views handed to the handler borrow from that copy.
func (p *Parser) ExecuteString(m *Message, s string) Errno {
	return p.Execute(m, []byte(s))
}

// Finish signals the end of the stream. See [Parser.FinishMessage].
func (p *Parser) Finish() Errno {
	return p.FinishMessage(nil)
}

// FinishMessage signals the end of the stream. A response whose body is delimited by the connection
// closing completes here, with m as the active message. It returns [ErrnoInvalidEOFState] when the
// stream ends inside a message; that does not prevent later calls to Execute.
func (p *Parser) FinishMessage(m *Message) Errno {
	p.message = m
	defer func() { p.message = nil }()

	return p.state.Finish()
}

// Pause makes the next Execute return [ErrnoPaused]. Handlers pause by returning [Pause] instead.
func (p *Parser) Pause() { p.state.Pause() }

// Resume continues after [ErrnoPaused]. Feed the bytes from [Parser.ErrorPos] onward next.
func (p *Parser) Resume() { p.state.Resume() }

// ResumeAfterUpgrade continues after [ErrnoPausedUpgrade]. The bytes from [Parser.ErrorPos] onward
// belong to the upgraded protocol.
func (p *Parser) ResumeAfterUpgrade() { p.state.ResumeAfterUpgrade() }

func (p *Parser) Type() Type       { return p.state.Type() }
func (p *Parser) HTTPMajor() uint8 { return p.state.Major() }
func (p *Parser) HTTPMinor() uint8 { return p.state.Minor() }
func (p *Parser) Method() Method   { return p.state.Method() }
func (p *Parser) StatusCode() int  { return p.state.StatusCode() }
func (p *Parser) Upgrade() bool    { return p.state.Upgrade() }

// ContentLength is the declared body length, or the size of the current chunk inside OnChunkHeader.
func (p *Parser) ContentLength() uint64 { return p.state.ContentLength() }

// MessageNeedsEOF reports whether the current message ends only when the stream does.
func (p *Parser) MessageNeedsEOF() bool { return p.state.MessageNeedsEOF() }

// ShouldKeepAlive reports whether another message may follow on the stream.
func (p *Parser) ShouldKeepAlive() bool { return p.state.ShouldKeepAlive() }

// ParseDone reports whether the parser is between messages.
func (p *Parser) ParseDone() bool { return p.state.ParseDone() }

// Message returns the message passed to the running Execute, nil outside of it.
func (p *Parser) Message() *Message { return p.message }

func (p *Parser) Handler() any        { return p.handler }
func (p *Parser) Table() *Table       { return p.table }
func (p *Parser) Errno() Errno        { return p.state.Errno() }
func (p *Parser) ErrorReason() string { return p.state.Reason() }

// ErrorPos is the offset in the last buffer where parsing stopped.
func (p *Parser) ErrorPos() int { return p.state.ErrorPos() }

// SetErrorReason sets the reason reported with the status a handler is about to return.
func (p *Parser) SetErrorReason(reason string) { p.state.SetReason(reason) }

// Err returns the current error, or nil when the parser is fine, paused or stopped at an HTTP/2
// connection preface. The preface is not resumable: the stream belongs to HTTP/2 from there on.
func (p *Parser) Err() error {
	if e := p.state.Errno(); e == ErrnoOK || e.IsPause() || e == ErrnoPausedH2Upgrade {
		return nil
	}

	return NewError(p.state.Errno(), p.state.Reason(), p.state.ErrorPos())
}

func (p *Parser) SetLenientHeaders(enabled bool)       { p.state.SetLenientHeaders(enabled) }
func (p *Parser) SetLenientChunkedLength(enabled bool) { p.state.SetLenientChunkedLength(enabled) }
func (p *Parser) SetLenientKeepAlive(enabled bool)     { p.state.SetLenientKeepAlive(enabled) }
