// Package bparse dispatches the events of an incremental HTTP/1.x parser to typed handlers and
// aggregates them into messages without copying.
//
// # Overview
//
// A handler implements only the events it cares about. Each event is a small interface, and the
// parser binds exactly the ones the handler type implements:
//
//	type urls struct{ seen []string }
//
//	func (u *urls) OnURL(p *bparse.Parser, v bparse.View) int {
//	    u.seen = append(u.seen, v.String())
//	    return bparse.Continue
//	}
//
//	p := bparse.NewParser(&urls{})
//	errno := p.Execute(nil, []byte("GET /hello HTTP/1.1\r\n\r\n"))
//
// For the common case of collecting a whole message, use [NewDefaultParser]:
//
//	var msg bparse.Message
//	p := bparse.NewDefaultParser()
//	if errno := p.Execute(&msg, buf); errno != bparse.ErrnoOK {
//	    return p.Err()
//	}
//	host, _ := msg.Get("Host")
//
// # Events
//
// There are fourteen events. Five carry a [View]: [URLHandler], [StatusHandler],
// [HeaderFieldHandler], [HeaderValueHandler] and [BodyHandler]. The others mark a point in the message,
// such as [HeadersCompleteHandler] or [ChunkHeaderHandler]. The four *CompleteHandler events that
// follow the url, status, header field and header value are informational and their result is
// ignored.
//
// A header field event is always followed by its value event before the next field. A data event may
// be delivered in several pieces when its bytes span two calls to Execute.
//
// # Tables
//
// The set of bound events is computed once per handler type by [NewTable] and shared by every parser
// of that type. A method that is named like an event but has a different signature, or that is only
// declared on the pointer receiver of a registered value type, is reported as [ErrSignatureMismatch]
// instead of being skipped. To get the same check at compile time, assert the interfaces:
//
//	var _ bparse.URLHandler = (*urls)(nil)
//
// # Return Values
//
// Every handler method returns an int. [Continue] keeps going, [Pause] suspends parsing and
// [UserError] or [Abort] stop it. OnHeadersComplete may also return [SkipBody] or [SkipBodyUpgrade].
// A reason can be attached with [Parser.SetErrorReason] before returning an error.
//
// # Views
//
// A [View] borrows from the buffer passed to Execute and stays valid only while the caller leaves that
// buffer untouched. Clone views, or the whole message with [Message.Clone], to keep them longer.
//
// # Errors, Pauses and Upgrades
//
// Execute returns an [Errno]. Protocol and handler errors are sticky: the parser repeats them without
// calling the handler until [Parser.Reset] or [Parser.Init]. [ErrnoPaused] is not an error, call
// [Parser.Resume] and feed the bytes from [Parser.ErrorPos] onward. After [ErrnoPausedUpgrade] those
// bytes belong to the upgraded protocol. [ErrnoPausedH2Upgrade] marks an HTTP/2 connection preface;
// it is not an error either, but the stream never returns to HTTP/1. [Parser.Err] wraps the current
// error in an [*Error].
//
// # Configuration and Observability
//
// [ParseConfig] reads the lenient flags and log level from BPARSE_* environment variables and
// [WithConfig] applies them. [Parser.ExecuteContext] records a span with the provider passed to
// [WithTracerProvider]. The [Logger] interface receives completed messages from a [ReferenceHandler].
package bparse
