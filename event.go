package bparse

// Event names one of the notifications the parser can deliver to a handler.
type Event int

const (
	EventNone Event = iota
	EventMessageBegin
	EventURL
	EventStatus
	EventHeaderField
	EventHeaderValue
	EventHeadersComplete
	EventBody
	EventMessageComplete
	EventChunkHeader
	EventChunkComplete
	EventURLComplete
	EventStatusComplete
	EventHeaderFieldComplete
	EventHeaderValueComplete
)

var eventNames = [...]string{
	EventNone:                "none",
	EventMessageBegin:        "on_message_begin",
	EventURL:                 "on_url",
	EventStatus:              "on_status",
	EventHeaderField:         "on_header_field",
	EventHeaderValue:         "on_header_value",
	EventHeadersComplete:     "on_headers_complete",
	EventBody:                "on_body",
	EventMessageComplete:     "on_message_complete",
	EventChunkHeader:         "on_chunk_header",
	EventChunkComplete:       "on_chunk_complete",
	EventURLComplete:         "on_url_complete",
	EventStatusComplete:      "on_status_complete",
	EventHeaderFieldComplete: "on_header_field_complete",
	EventHeaderValueComplete: "on_header_value_complete",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "unknown"
	}

	return eventNames[e]
}

// Values a handler method returns to steer the parser.
const (
	// Continue parsing.
	Continue = 0
	// Abort with an error. Data events report [ErrnoUser], milestones their own callback errno.
	Abort = -1
	// Pause makes Execute return [ErrnoPaused]. See [Parser.Resume].
	Pause = int(ErrnoPaused)
	// UserError fails with [ErrnoUser]. Set a reason with [Parser.SetErrorReason] first.
	UserError = int(ErrnoUser)
	// SkipBody may only be returned from OnHeadersComplete: the message has no body.
	SkipBody = 1
	// SkipBodyUpgrade may only be returned from OnHeadersComplete: no body and an upgrade follows.
	SkipBodyUpgrade = 2
)

// MessageBeginHandler is notified before the start line of every message.
type MessageBeginHandler interface {
	OnMessageBegin(p *Parser) int
}

// URLHandler receives the request target. It may be delivered in pieces when the target spans
// buffers passed to separate Execute calls.
type URLHandler interface {
	OnURL(p *Parser, v View) int
}

// StatusHandler receives the reason phrase of a response, possibly in pieces.
type StatusHandler interface {
	OnStatus(p *Parser, v View) int
}

// HeaderFieldHandler receives a header name, possibly in pieces.
type HeaderFieldHandler interface {
	OnHeaderField(p *Parser, v View) int
}

// HeaderValueHandler receives a header value, possibly in pieces. It always follows the field.
type HeaderValueHandler interface {
	OnHeaderValue(p *Parser, v View) int
}

// HeadersCompleteHandler is notified after the last header. Besides the common values it may return
// [SkipBody] or [SkipBodyUpgrade].
type HeadersCompleteHandler interface {
	OnHeadersComplete(p *Parser) int
}

// BodyHandler receives body bytes with transfer coding removed.
type BodyHandler interface {
	OnBody(p *Parser, v View) int
}

// MessageCompleteHandler is notified when a message ends.
type MessageCompleteHandler interface {
	OnMessageComplete(p *Parser) int
}

// ChunkHeaderHandler is notified after every chunk size line. [Parser.ContentLength] holds the size.
type ChunkHeaderHandler interface {
	OnChunkHeader(p *Parser) int
}

// ChunkCompleteHandler is notified after every chunk, including the last empty one.
type ChunkCompleteHandler interface {
	OnChunkComplete(p *Parser) int
}

// The *CompleteHandler interfaces below are informational, their return value is ignored.
type (
	URLCompleteHandler interface {
		OnURLComplete(p *Parser) int
	}
	StatusCompleteHandler interface {
		OnStatusComplete(p *Parser) int
	}
	HeaderFieldCompleteHandler interface {
		OnHeaderFieldComplete(p *Parser) int
	}
	HeaderValueCompleteHandler interface {
		OnHeaderValueComplete(p *Parser) int
	}
)
