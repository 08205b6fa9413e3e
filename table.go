package bparse

import (
	"reflect"
	"sync"

	"github.com/advdv/bparse/internal/engine"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ErrSignatureMismatch is returned when a handler has a method named after an event whose signature
// or receiver does not let the handler satisfy the event's interface.
var ErrSignatureMismatch = errors.New("handler method does not match event signature")

// Table is the callback table for one handler type. Only the events the type implements are bound.
// It is immutable and shared by every parser created for that type.
type Table struct {
	typ   reflect.Type
	cbs   engine.Callbacks
	bound [len(eventNames)]bool
}

// binding couples an event to its handler interface and to the trampoline that calls it.
type binding struct {
	event  Event
	iface  reflect.Type
	method string
	bind   func(cbs *engine.Callbacks)
}

// handlers holds the handler once per event interface it implements, so the trampolines call it
// without a type assertion.
type handlers struct {
	messageBegin        MessageBeginHandler
	url                 URLHandler
	status              StatusHandler
	headerField         HeaderFieldHandler
	headerValue         HeaderValueHandler
	headersComplete     HeadersCompleteHandler
	body                BodyHandler
	messageComplete     MessageCompleteHandler
	chunkHeader         ChunkHeaderHandler
	chunkComplete       ChunkCompleteHandler
	urlComplete         URLCompleteHandler
	statusComplete      StatusCompleteHandler
	headerFieldComplete HeaderFieldCompleteHandler
	headerValueComplete HeaderValueCompleteHandler
}

func newHandlers(v any) (h handlers) {
	h.messageBegin, _ = v.(MessageBeginHandler)
	h.url, _ = v.(URLHandler)
	h.status, _ = v.(StatusHandler)
	h.headerField, _ = v.(HeaderFieldHandler)
	h.headerValue, _ = v.(HeaderValueHandler)
	h.headersComplete, _ = v.(HeadersCompleteHandler)
	h.body, _ = v.(BodyHandler)
	h.messageComplete, _ = v.(MessageCompleteHandler)
	h.chunkHeader, _ = v.(ChunkHeaderHandler)
	h.chunkComplete, _ = v.(ChunkCompleteHandler)
	h.urlComplete, _ = v.(URLCompleteHandler)
	h.statusComplete, _ = v.(StatusCompleteHandler)
	h.headerFieldComplete, _ = v.(HeaderFieldCompleteHandler)
	h.headerValueComplete, _ = v.(HeaderValueCompleteHandler)

	return h
}

func parserOf(s *engine.State) *Parser { return s.Data.(*Parser) }

var bindings = []binding{
	{EventMessageBegin, reflect.TypeFor[MessageBeginHandler](), "OnMessageBegin", func(c *engine.Callbacks) {
		c.OnMessageBegin = func(s *engine.State) int {
			p := parserOf(s)
			return p.h.messageBegin.OnMessageBegin(p)
		}
	}},
	{EventURL, reflect.TypeFor[URLHandler](), "OnURL", func(c *engine.Callbacks) {
		c.OnURL = func(s *engine.State, at []byte) int {
			p := parserOf(s)
			return p.h.url.OnURL(p, View(at))
		}
	}},
	{EventStatus, reflect.TypeFor[StatusHandler](), "OnStatus", func(c *engine.Callbacks) {
		c.OnStatus = func(s *engine.State, at []byte) int {
			p := parserOf(s)
			return p.h.status.OnStatus(p, View(at))
		}
	}},
	{EventHeaderField, reflect.TypeFor[HeaderFieldHandler](), "OnHeaderField", func(c *engine.Callbacks) {
		c.OnHeaderField = func(s *engine.State, at []byte) int {
			p := parserOf(s)
			return p.h.headerField.OnHeaderField(p, View(at))
		}
	}},
	{EventHeaderValue, reflect.TypeFor[HeaderValueHandler](), "OnHeaderValue", func(c *engine.Callbacks) {
		c.OnHeaderValue = func(s *engine.State, at []byte) int {
			p := parserOf(s)
			return p.h.headerValue.OnHeaderValue(p, View(at))
		}
	}},
	{EventHeadersComplete, reflect.TypeFor[HeadersCompleteHandler](), "OnHeadersComplete", func(c *engine.Callbacks) {
		c.OnHeadersComplete = func(s *engine.State) int {
			p := parserOf(s)
			return p.h.headersComplete.OnHeadersComplete(p)
		}
	}},
	{EventBody, reflect.TypeFor[BodyHandler](), "OnBody", func(c *engine.Callbacks) {
		c.OnBody = func(s *engine.State, at []byte) int {
			p := parserOf(s)
			return p.h.body.OnBody(p, View(at))
		}
	}},
	{EventMessageComplete, reflect.TypeFor[MessageCompleteHandler](), "OnMessageComplete", func(c *engine.Callbacks) {
		c.OnMessageComplete = func(s *engine.State) int {
			p := parserOf(s)
			return p.h.messageComplete.OnMessageComplete(p)
		}
	}},
	{EventChunkHeader, reflect.TypeFor[ChunkHeaderHandler](), "OnChunkHeader", func(c *engine.Callbacks) {
		c.OnChunkHeader = func(s *engine.State) int {
			p := parserOf(s)
			return p.h.chunkHeader.OnChunkHeader(p)
		}
	}},
	{EventChunkComplete, reflect.TypeFor[ChunkCompleteHandler](), "OnChunkComplete", func(c *engine.Callbacks) {
		c.OnChunkComplete = func(s *engine.State) int {
			p := parserOf(s)
			return p.h.chunkComplete.OnChunkComplete(p)
		}
	}},
	{EventURLComplete, reflect.TypeFor[URLCompleteHandler](), "OnURLComplete", func(c *engine.Callbacks) {
		c.OnURLComplete = func(s *engine.State) int {
			p := parserOf(s)
			return p.h.urlComplete.OnURLComplete(p)
		}
	}},
	{EventStatusComplete, reflect.TypeFor[StatusCompleteHandler](), "OnStatusComplete", func(c *engine.Callbacks) {
		c.OnStatusComplete = func(s *engine.State) int {
			p := parserOf(s)
			return p.h.statusComplete.OnStatusComplete(p)
		}
	}},
	{EventHeaderFieldComplete, reflect.TypeFor[HeaderFieldCompleteHandler](), "OnHeaderFieldComplete", func(c *engine.Callbacks) {
		c.OnHeaderFieldComplete = func(s *engine.State) int {
			p := parserOf(s)
			return p.h.headerFieldComplete.OnHeaderFieldComplete(p)
		}
	}},
	{EventHeaderValueComplete, reflect.TypeFor[HeaderValueCompleteHandler](), "OnHeaderValueComplete", func(c *engine.Callbacks) {
		c.OnHeaderValueComplete = func(s *engine.State) int {
			p := parserOf(s)
			return p.h.headerValueComplete.OnHeaderValueComplete(p)
		}
	}},
}

var tables sync.Map // reflect.Type -> *Table

// NewTable returns the table for handler type t. Tables are built once per type and cached.
func NewTable(t reflect.Type) (*Table, error) {
	if t == nil {
		return nil, errors.New("nil handler type")
	}

	if tbl, ok := tables.Load(t); ok {
		return tbl.(*Table), nil
	}

	tbl := &Table{typ: t}
	for _, b := range bindings {
		if !t.Implements(b.iface) {
			if err := nearMiss(t, b); err != nil {
				return nil, err
			}
			continue
		}

		b.bind(&tbl.cbs)
		tbl.bound[b.event] = true
	}

	actual, _ := tables.LoadOrStore(t, tbl)
	return actual.(*Table), nil
}

// nearMiss rejects a type that looks like it handles an event but does not satisfy the interface.
func nearMiss(t reflect.Type, b binding) error {
	want := b.iface.Method(0).Type

	if m, ok := t.MethodByName(b.method); ok {
		got := m.Type
		if t.Kind() != reflect.Interface {
			got = funcWithoutReceiver(got)
		}
		return errors.Wrapf(ErrSignatureMismatch, "%s.%s is %s, want %s", t, b.method, got, want)
	}

	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return nil
	}

	pt := reflect.PointerTo(t)
	switch m, ok := pt.MethodByName(b.method); {
	case !ok:
		return nil
	case pt.Implements(b.iface):
		return errors.Wrapf(ErrSignatureMismatch, "%s.%s has a pointer receiver, register *%s instead",
			t, b.method, t)
	default:
		return errors.Wrapf(ErrSignatureMismatch, "(*%s).%s is %s, want %s",
			t, b.method, funcWithoutReceiver(m.Type), want)
	}
}

func funcWithoutReceiver(ft reflect.Type) reflect.Type {
	in := make([]reflect.Type, 0, ft.NumIn()-1)
	for i := 1; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}

	out := make([]reflect.Type, 0, ft.NumOut())
	for i := range ft.NumOut() {
		out = append(out, ft.Out(i))
	}

	return reflect.FuncOf(in, out, ft.IsVariadic())
}

// TableOf returns the table for the dynamic type of h.
func TableOf(h any) (*Table, error) {
	return NewTable(reflect.TypeOf(h))
}

// TableFor is a convenience function that panics if the table for H cannot be built.
func TableFor[H any]() *Table {
	tbl, err := NewTable(reflect.TypeFor[H]())
	if err != nil {
		panic("bparse: " + err.Error())
	}

	return tbl
}

// Type returns the handler type the table was built for.
func (t *Table) Type() reflect.Type { return t.typ }

// Has reports whether the handler type implements event e.
func (t *Table) Has(e Event) bool {
	return e > EventNone && int(e) < len(t.bound) && t.bound[e]
}

// Bound returns the implemented events in the order of their declaration.
func (t *Table) Bound() []Event {
	return lo.Filter(lo.Map(bindings, func(b binding, _ int) Event { return b.event }),
		func(e Event, _ int) bool { return t.bound[e] })
}

func (t *Table) callbacks() *engine.Callbacks { return &t.cbs }
