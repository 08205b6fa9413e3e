package bparse

import (
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// Header is one header line as it appeared in the message.
type Header struct {
	Field View
	Value View
}

// Message is the aggregate a handler fills while the parser runs. All views borrow from the buffers
// passed to Execute, the caller owns both. It is only coherent after the message-complete event.
type Message struct {
	Method     Method
	URL        View
	Major      uint8
	Minor      uint8
	Status     View
	StatusCode int
	Headers    []Header
	Body       View

	open Event // data event that last wrote to the message, continued by a repeat of the same event
}

// Reset clears m for the next message. The header slice is kept for reuse.
func (m *Message) Reset() {
	clear(m.Headers)
	*m = Message{Headers: m.Headers[:0]}
}

// Get returns the value of the first header named name, compared case-insensitively.
func (m *Message) Get(name string) (View, bool) {
	h, ok := lo.Find(m.Headers, func(h Header) bool { return strings.EqualFold(string(h.Field), name) })
	return h.Value, ok
}

// Values returns the values of every header named name, in order of appearance.
func (m *Message) Values(name string) []View {
	return lo.FilterMap(m.Headers, func(h Header, _ int) (View, bool) {
		return h.Value, strings.EqualFold(string(h.Field), name)
	})
}

// HeaderNames returns the distinct header names, lowercased, in order of first appearance.
func (m *Message) HeaderNames() []string {
	return lo.Uniq(lo.Map(m.Headers, func(h Header, _ int) string { return strings.ToLower(string(h.Field)) }))
}

// BodyJSON queries the body with a gjson path. Strings in the result are copies, the body itself
// is not copied.
func (m *Message) BodyJSON(path string) gjson.Result {
	return gjson.GetBytes(m.Body, path)
}

// Clone returns a deep copy of m whose views no longer borrow from any parse buffer.
func (m *Message) Clone() *Message {
	c := *m
	c.URL, c.Status, c.Body = m.URL.Clone(), m.Status.Clone(), m.Body.Clone()
	c.Headers = lo.Map(m.Headers, func(h Header, _ int) Header {
		return Header{Field: h.Field.Clone(), Value: h.Value.Clone()}
	})

	return &c
}
