package bparse

// ReferenceHandler fills the active [Message] with views into the parsed buffers. A field that arrives
// in pieces, because it spans two Execute calls, is joined. The join stays zero-copy when the pieces are
// adjacent in memory, otherwise the joined field is copied.
type ReferenceHandler struct {
	logs Logger
}

// NewReferenceHandler creates a handler that reports completed messages to logs.
func NewReferenceHandler(logs Logger) *ReferenceHandler {
	return &ReferenceHandler{logs: logs}
}

// DefaultHandler is used by [NewDefaultParser].
var DefaultHandler = NewReferenceHandler(NopLogger)

var (
	_ MessageBeginHandler    = (*ReferenceHandler)(nil)
	_ URLHandler             = (*ReferenceHandler)(nil)
	_ StatusHandler          = (*ReferenceHandler)(nil)
	_ HeaderFieldHandler     = (*ReferenceHandler)(nil)
	_ HeaderValueHandler     = (*ReferenceHandler)(nil)
	_ HeadersCompleteHandler = (*ReferenceHandler)(nil)
	_ BodyHandler            = (*ReferenceHandler)(nil)
	_ MessageCompleteHandler = (*ReferenceHandler)(nil)
)

func (h *ReferenceHandler) OnMessageBegin(p *Parser) int {
	if m := p.Message(); m != nil {
		m.Reset()
	}

	return Continue
}

func (h *ReferenceHandler) OnURL(p *Parser, v View) int {
	if m := p.Message(); m != nil {
		m.URL = m.join(EventURL, m.URL, v)
	}

	return Continue
}

func (h *ReferenceHandler) OnStatus(p *Parser, v View) int {
	if m := p.Message(); m != nil {
		m.Status = m.join(EventStatus, m.Status, v)
	}

	return Continue
}

func (h *ReferenceHandler) OnHeaderField(p *Parser, v View) int {
	m := p.Message()
	if m == nil {
		return Continue
	}

	if m.open == EventHeaderField && len(m.Headers) > 0 {
		last := &m.Headers[len(m.Headers)-1]
		last.Field = last.Field.extend(v)
		return Continue
	}

	m.open = EventHeaderField
	m.Headers = append(m.Headers, Header{Field: v})

	return Continue
}

// OnHeaderValue fills the value of the header appended by the preceding OnHeaderField.
func (h *ReferenceHandler) OnHeaderValue(p *Parser, v View) int {
	m := p.Message()
	if m == nil || len(m.Headers) == 0 {
		return Continue
	}

	last := &m.Headers[len(m.Headers)-1]
	last.Value = m.join(EventHeaderValue, last.Value, v)

	return Continue
}

func (h *ReferenceHandler) OnHeadersComplete(p *Parser) int {
	m := p.Message()
	if m == nil {
		return Continue
	}

	m.Method = p.Method()
	m.Major, m.Minor = p.HTTPMajor(), p.HTTPMinor()
	m.StatusCode = p.StatusCode()
	m.open = EventNone

	return Continue
}

// OnBody appends to the body, which spans every body event of the message.
func (h *ReferenceHandler) OnBody(p *Parser, v View) int {
	if m := p.Message(); m != nil {
		m.Body = m.Body.extend(v)
		m.open = EventBody
	}

	return Continue
}

func (h *ReferenceHandler) OnMessageComplete(p *Parser) int {
	if m := p.Message(); m != nil {
		h.logs.LogMessageComplete(m)
	}

	return Continue
}

// join continues cur when e was also the last event to write to m, and replaces it otherwise.
func (m *Message) join(e Event, cur, v View) View {
	if m.open == e {
		return cur.extend(v)
	}

	m.open = e
	return v
}
