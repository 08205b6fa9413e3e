// Package engine implements an incremental HTTP/1.x message parser with an llhttp compatible contract:
// a fixed table of raw callbacks receives byte ranges of the buffer passed to Execute, and parsing can
// be paused, resumed, finished and reset. Errno and Method values use llhttp's numbering.
package engine

import (
	"math"

	"golang.org/x/net/http/httpguts"
)

// Type selects which kind of message the parser accepts.
type Type uint8

const (
	TypeBoth Type = iota
	TypeRequest
	TypeResponse
)

func (t Type) String() string {
	switch t {
	case TypeRequest:
		return "request"
	case TypeResponse:
		return "response"
	default:
		return "both"
	}
}

// FinishState tells what Finish does when the stream ends.
type FinishState uint8

const (
	FinishSafe FinishState = iota
	FinishSafeWithCB
	FinishUnsafe
)

// Cb is a milestone callback. DataCb receives a byte range of the buffer passed to Execute; the
// slice must not be retained past the Execute call that produced it.
type (
	Cb     func(s *State) int
	DataCb func(s *State, at []byte) int
)

// Callbacks is the flat callback table. A nil slot behaves as a callback returning 0.
type Callbacks struct {
	OnMessageBegin        Cb
	OnURL                 DataCb
	OnStatus              DataCb
	OnHeaderField         DataCb
	OnHeaderValue         DataCb
	OnHeadersComplete     Cb
	OnBody                DataCb
	OnMessageComplete     Cb
	OnChunkHeader         Cb
	OnChunkComplete       Cb
	OnURLComplete         Cb
	OnStatusComplete      Cb
	OnHeaderFieldComplete Cb
	OnHeaderValueComplete Cb
}

// State is the per stream parser state. The zero value is not usable, call Init first.
type State struct {
	// Data is an opaque back reference for the owner of the state. The engine never touches it.
	Data any

	cbs   *Callbacks
	typ   Type
	state parsingState

	errno  Errno
	reason string
	errPos int
	finish FinishState

	lenientHeaders       bool
	lenientChunkedLength bool
	lenientKeepAlive     bool

	method        Method
	major, minor  uint8
	statusCode    int
	upgrade       bool
	flags         flag
	contentLength uint64
	remaining     uint64

	span        spanKind
	spanStart   int
	spanCarried bool
	next        parsingState

	index        int
	tok          [16]byte
	tokLen       int
	header       headerKind
	name         [24]byte
	nameLen      int
	val          [16]byte
	valLen       int
	clValue      uint64
	clDigits     bool
	clTrailingWS bool
}

// Init prepares s for parsing messages of type t with the given callbacks. Everything, including
// Data and the lenient flags, is cleared.
func (s *State) Init(t Type, cbs *Callbacks) {
	*s = State{typ: t, cbs: cbs}
}

// Reset returns s to its initial state while keeping the message type, the callbacks, Data and the
// lenient flags. A pending error is cleared.
func (s *State) Reset() {
	*s = State{
		Data:                 s.Data,
		cbs:                  s.cbs,
		typ:                  s.typ,
		lenientHeaders:       s.lenientHeaders,
		lenientChunkedLength: s.lenientChunkedLength,
		lenientKeepAlive:     s.lenientKeepAlive,
	}
}

func (s *State) Type() Type               { return s.typ }
func (s *State) Method() Method           { return s.method }
func (s *State) Major() uint8             { return s.major }
func (s *State) Minor() uint8             { return s.minor }
func (s *State) StatusCode() int          { return s.statusCode }
func (s *State) Upgrade() bool            { return s.upgrade }
func (s *State) ContentLength() uint64    { return s.contentLength }
func (s *State) Errno() Errno             { return s.errno }
func (s *State) Reason() string           { return s.reason }
func (s *State) SetReason(reason string)  { s.reason = reason }
func (s *State) ErrorPos() int            { return s.errPos }
func (s *State) FinishState() FinishState { return s.finish }
func (s *State) ParseDone() bool          { return s.finish != FinishUnsafe }

func (s *State) SetLenientHeaders(enabled bool)       { s.lenientHeaders = enabled }
func (s *State) SetLenientChunkedLength(enabled bool) { s.lenientChunkedLength = enabled }
func (s *State) SetLenientKeepAlive(enabled bool)     { s.lenientKeepAlive = enabled }

// MessageNeedsEOF reports whether the current message can only be completed by Finish.
func (s *State) MessageNeedsEOF() bool {
	if s.typ == TypeRequest {
		return false
	}

	if s.statusCode/100 == 1 || s.statusCode == 204 || s.statusCode == 304 || s.flags&flagSkipBody != 0 {
		return false
	}

	if s.flags&flagTransferEncoding != 0 && s.flags&flagChunked == 0 {
		return true
	}

	return s.flags&(flagChunked|flagContentLength) == 0
}

// ShouldKeepAlive reports whether further messages may follow the last one on the stream.
func (s *State) ShouldKeepAlive() bool {
	if s.major > 0 && s.minor > 0 {
		if s.flags&flagConnectionClose != 0 {
			return false
		}
	} else if s.flags&flagConnectionKeepAlive == 0 {
		return false
	}

	return !s.MessageNeedsEOF()
}

// Pause makes further Execute calls return Paused. Callbacks must return Paused instead.
func (s *State) Pause() {
	if s.errno != OK {
		return
	}

	s.errno, s.reason, s.errPos = Paused, "Paused", 0
}

// Resume clears a Paused status.
func (s *State) Resume() {
	if s.errno != Paused {
		return
	}

	s.errno = OK
}

// ResumeAfterUpgrade clears a PausedUpgrade status.
func (s *State) ResumeAfterUpgrade() {
	if s.errno != PausedUpgrade {
		return
	}

	s.errno = OK
}

// Finish signals the end of the stream. A message framed by connection close is completed here.
func (s *State) Finish() Errno {
	if s.errno != OK {
		return OK
	}

	switch s.finish {
	case FinishSafeWithCB:
		s.finish = FinishSafe
		s.state = stClosed
		if ret := s.call(s.cbs.OnMessageComplete); ret != 0 {
			if Errno(ret) == Paused {
				return Paused
			}
			return CBMessageComplete
		}
		return OK
	case FinishUnsafe:
		s.reason = "Invalid EOF state"
		return InvalidEOFState
	default:
		return OK
	}
}

// Execute parses data, invoking callbacks along the way. Any status other than OK, Paused or
// PausedUpgrade is sticky: later calls return it again until Init or Reset.
func (s *State) Execute(data []byte) Errno {
	if s.errno != OK {
		return s.errno
	}

	s.errPos = 0
	if s.span != spanNone {
		s.spanStart, s.spanCarried = 0, true
	}

	if s.run(data) {
		return s.errno
	}

	if s.span != spanNone {
		at := data[s.spanStart:]
		s.spanStart, s.spanCarried = 0, true
		if len(at) > 0 && s.check(s.span, s.emit(s.span, at), len(data)) {
			return s.errno
		}
	}

	return s.errno
}

func (s *State) run(data []byte) bool {
	i := 0
	for {
		if s.state.settles() {
			if s.settle(i) {
				return true
			}
			continue
		}

		if i >= len(data) {
			return false
		}

		var stop bool
		if i, stop = s.consume(data, i); stop {
			return true
		}
	}
}

func (s *State) settle(i int) bool {
	switch s.state {
	case stHeadersDone:
		return s.headersDone(i)
	case stFraming:
		return s.frame(i)
	case stURLDone:
		s.state = s.next
		s.info(s.cbs.OnURLComplete)
		return false
	case stStatusDone:
		s.state = s.next
		s.info(s.cbs.OnStatusComplete)
		return false
	case stFieldDone:
		s.state = s.next
		s.info(s.cbs.OnHeaderFieldComplete)
		return s.classifyHeader(i)
	case stValueDone:
		s.state = s.next
		return s.valueDone(i)
	case stMessageDone:
		s.finish = FinishSafe
		s.state = stAfterMessage
		if ret := s.call(s.cbs.OnMessageComplete); ret != 0 {
			return s.stopMilestone(ret, CBMessageComplete, "on_message_complete", i)
		}
		return false
	default: // stAfterMessage
		if s.upgrade {
			s.state = stStart
			s.errno, s.reason, s.errPos = PausedUpgrade, "Pause on CONNECT/Upgrade", i
			return true
		}
		if s.ShouldKeepAlive() {
			s.state = stStart
		} else {
			s.state = stClosed
		}
		return false
	}
}

func (s *State) consume(data []byte, i int) (int, bool) {
	b := data[i]
	switch s.state {
	case stStart:
		if b == '\r' || b == '\n' {
			return i + 1, false
		}
		s.beginMessage()
		if ret := s.call(s.cbs.OnMessageBegin); ret != 0 {
			return i, s.stopMilestone(ret, CBMessageBegin, "on_message_begin", i)
		}
		return i, false

	case stFirstToken:
		switch {
		case isToken(b):
			if s.tokLen == len(s.tok) {
				return i, s.fail(InvalidMethod, "Invalid method encountered", i)
			}
			s.tok[s.tokLen] = b
			s.tokLen++
			return i + 1, false
		case b == '/' && s.typ != TypeRequest && string(s.tok[:s.tokLen]) == "HTTP":
			s.typ = TypeResponse
			s.state = stMajor
			return i + 1, false
		case b == ' ' && s.typ != TypeResponse:
			m, ok := LookupMethod(s.tok[:s.tokLen])
			if !ok {
				return i, s.fail(InvalidMethod, "Invalid method encountered", i)
			}
			s.method, s.typ, s.state = m, TypeRequest, stURLStart
			return i + 1, false
		case s.typ == TypeResponse:
			return i, s.fail(InvalidConstant, "Expected HTTP/", i)
		default:
			return i, s.fail(InvalidMethod, "Invalid method encountered", i)
		}

	case stURLStart:
		if !isURLChar(b) {
			return i, s.fail(InvalidURL, "Unexpected start char in url", i)
		}
		s.openSpan(spanURL, i)
		s.state = stURL
		return i + 1, false

	case stURL:
		j := i
		for j < len(data) && isURLChar(data[j]) {
			j++
		}
		if j == len(data) {
			return j, false
		}
		switch data[j] {
		case ' ':
			s.state, s.next, s.index = stURLDone, stReqProto, 0
			return j + 1, s.closeSpan(data, j, j+1)
		case '\r', '\n':
			return j, s.fail(InvalidVersion, "Expected HTTP/", j)
		default:
			return j, s.fail(InvalidURL, "Invalid characters in url", j)
		}

	case stReqProto:
		const proto = "HTTP/"
		if b != proto[s.index] {
			return i, s.fail(InvalidConstant, "Expected HTTP/", i)
		}
		if s.index++; s.index == len(proto) {
			s.state = stMajor
		}
		return i + 1, false

	case stMajor:
		if !isDigit(b) {
			return i, s.fail(InvalidVersion, "Invalid major version", i)
		}
		s.major, s.state = b-'0', stDot
		return i + 1, false

	case stDot:
		if b != '.' {
			return i, s.fail(InvalidVersion, "Expected dot", i)
		}
		s.state = stMinor
		return i + 1, false

	case stMinor:
		if !isDigit(b) {
			return i, s.fail(InvalidVersion, "Invalid minor version", i)
		}
		s.minor = b - '0'
		if !validVersion(s.major, s.minor) {
			return i, s.fail(InvalidVersion, "Invalid HTTP version", i)
		}
		if s.typ == TypeResponse {
			s.state = stStatusSpace
		} else {
			s.state = stReqLineEnd
		}
		return i + 1, false

	case stReqLineEnd:
		if b != '\r' && b != '\n' {
			return i, s.fail(InvalidVersion, "Expected CRLF after version", i)
		}
		if s.method == MethodPRI && s.major == 2 {
			return i, s.fail(PausedH2Upgrade, "Pause on PRI/Upgrade", i)
		}
		if b == '\r' {
			s.state = stLineLF
		} else {
			s.state = stHeaderStart
		}
		return i + 1, false

	case stStatusSpace:
		if b != ' ' {
			return i, s.fail(InvalidVersion, "Expected space after version", i)
		}
		s.state, s.index, s.statusCode = stStatusCode, 0, 0
		return i + 1, false

	case stStatusCode:
		if !isDigit(b) {
			return i, s.fail(InvalidStatus, "Invalid status code", i)
		}
		s.statusCode = s.statusCode*10 + int(b-'0')
		if s.index++; s.index == 3 {
			s.state = stStatusAfterCode
		}
		return i + 1, false

	case stStatusAfterCode:
		switch b {
		case ' ':
			s.state = stStatusStart
			return i + 1, false
		case '\r', '\n':
			s.state = lineEndState(b)
			s.info(s.cbs.OnStatusComplete)
			return i + 1, false
		default:
			return i, s.fail(InvalidStatus, "Invalid response status", i)
		}

	case stStatusStart:
		if b == '\r' || b == '\n' {
			s.state = lineEndState(b)
			s.info(s.cbs.OnStatusComplete)
			return i + 1, false
		}
		s.openSpan(spanStatus, i)
		s.state = stStatusText
		return i, false

	case stStatusText:
		j := i
		for j < len(data) && data[j] != '\r' && data[j] != '\n' {
			j++
		}
		if j == len(data) {
			return j, false
		}
		s.state, s.next = stStatusDone, lineEndState(data[j])
		return j + 1, s.closeSpan(data, j, j+1)

	case stLineLF:
		if b != '\n' {
			return i, s.fail(LFExpected, "Missing expected LF after start line", i)
		}
		s.state = stHeaderStart
		return i + 1, false

	case stHeaderStart:
		switch {
		case b == '\r':
			s.state = stHeadersAlmostDone
			return i + 1, false
		case b == '\n':
			s.state = stHeadersDone
			return i + 1, false
		case isToken(b):
			s.nameLen, s.header = 0, hdrGeneral
			s.openSpan(spanField, i)
			s.state = stHeaderField
			return i, false
		default:
			return i, s.fail(InvalidHeaderToken, "Invalid header field char", i)
		}

	case stHeaderField:
		j := i
		for j < len(data) && isToken(data[j]) {
			s.matchName(data[j])
			j++
		}
		if j == len(data) {
			return j, false
		}
		if data[j] != ':' {
			return j, s.fail(InvalidHeaderToken, "Invalid header token", j)
		}
		s.state, s.next = stFieldDone, stHeaderValueStart
		return j + 1, s.closeSpan(data, j, j+1)

	case stHeaderValueStart:
		switch b {
		case ' ', '\t':
			return i + 1, false
		case '\r', '\n':
			s.state, s.next = stValueDone, s.afterValueState(b)
			s.openSpan(spanValue, i)
			return i + 1, s.closeSpan(data, i, i+1)
		default:
			s.openSpan(spanValue, i)
			s.state = stHeaderValue
			return i, false
		}

	case stHeaderValue:
		j := i
		for ; j < len(data); j++ {
			c := data[j]
			if c == '\r' || c == '\n' {
				break
			}
			if !s.lenientHeaders && !isValueChar(c) {
				return j, s.fail(InvalidHeaderToken, "Invalid header value char", j)
			}
			if s.matchValue(c) {
				return j, s.fail(InvalidContentLength, "Invalid character in Content-Length", j)
			}
		}
		if j == len(data) {
			return j, false
		}
		s.state, s.next = stValueDone, s.afterValueState(data[j])
		return j + 1, s.closeSpan(data, j, j+1)

	case stHeaderValueLF:
		if b != '\n' {
			return i, s.fail(LFExpected, "Missing expected LF after header value", i)
		}
		s.state = stHeaderStart
		return i + 1, false

	case stHeadersAlmostDone:
		if b != '\n' {
			return i, s.fail(LFExpected, "Missing expected LF after headers", i)
		}
		s.state = stHeadersDone
		return i + 1, false

	case stBodyIdentity, stChunkData:
		n := uint64(len(data) - i)
		if n > s.remaining {
			n = s.remaining
		}
		next := i + int(n)
		if s.remaining -= n; s.remaining == 0 {
			if s.state == stBodyIdentity {
				s.state = stMessageDone
			} else {
				s.state = stChunkDataCR
			}
		}
		return next, s.check(spanBody, s.emit(spanBody, data[i:next]), next)

	case stBodyEOF:
		return len(data), s.check(spanBody, s.emit(spanBody, data[i:]), len(data))

	case stChunkSizeStart:
		v, ok := unhex(b)
		if !ok {
			return i, s.fail(InvalidChunkSize, "Invalid character in chunk size", i)
		}
		s.remaining, s.state = v, stChunkSize
		return i + 1, false

	case stChunkSize:
		if v, ok := unhex(b); ok {
			if s.remaining > math.MaxUint64>>4 {
				return i, s.fail(InvalidChunkSize, "Chunk size overflow", i)
			}
			s.remaining = s.remaining<<4 | v
			return i + 1, false
		}
		switch b {
		case ';', ' ', '\t':
			s.state = stChunkExt
			return i + 1, false
		case '\r':
			s.state = stChunkSizeLF
			return i + 1, false
		case '\n':
			return i + 1, s.chunkHeader(i + 1)
		default:
			return i, s.fail(InvalidChunkSize, "Invalid character in chunk size", i)
		}

	case stChunkExt:
		switch b {
		case '\r':
			s.state = stChunkSizeLF
		case '\n':
			return i + 1, s.chunkHeader(i + 1)
		}
		return i + 1, false

	case stChunkSizeLF:
		if b != '\n' {
			return i, s.fail(LFExpected, "Missing expected LF after chunk size", i)
		}
		return i + 1, s.chunkHeader(i + 1)

	case stChunkDataCR:
		switch b {
		case '\r':
			s.state = stChunkDataLF
			return i + 1, false
		case '\n':
			return i + 1, s.chunkComplete(i + 1)
		default:
			return i, s.fail(Strict, "Expected LF after chunk data", i)
		}

	case stChunkDataLF:
		if b != '\n' {
			return i, s.fail(LFExpected, "Expected LF after chunk data", i)
		}
		return i + 1, s.chunkComplete(i + 1)

	default: // stClosed
		if b == '\r' || b == '\n' {
			return i + 1, false
		}
		if s.lenientKeepAlive {
			s.state = stStart
			return i, false
		}
		return i, s.fail(ClosedConnection, "Data after `Connection: close`", i)
	}
}

func (s *State) beginMessage() {
	s.finish = FinishUnsafe
	s.method, s.major, s.minor, s.statusCode = 0, 0, 0, 0
	s.upgrade, s.flags = false, 0
	s.contentLength, s.remaining = 0, 0
	s.tokLen = 0
	s.state = stFirstToken
}

func (s *State) headersDone(i int) bool {
	if s.flags&flagTrailing != 0 {
		s.state = stMessageDone
		if ret := s.call(s.cbs.OnChunkComplete); ret != 0 {
			return s.stopMilestone(ret, CBChunkComplete, "on_chunk_complete", i)
		}
		return false
	}

	if s.flags&flagTransferEncoding != 0 && s.flags&flagContentLength != 0 && !s.lenientChunkedLength {
		return s.fail(UnexpectedContentLength, "Content-Length can't be present with Transfer-Encoding", i)
	}

	if s.flags&flagUpgrade != 0 && s.flags&flagConnectionUpgrade != 0 {
		s.upgrade = s.typ == TypeRequest || s.statusCode == 101
	} else {
		s.upgrade = s.typ == TypeRequest && s.method == MethodConnect
	}

	s.state = stFraming
	switch ret := s.call(s.cbs.OnHeadersComplete); ret {
	case 0:
	case 1:
		s.flags |= flagSkipBody
	case 2:
		s.flags |= flagSkipBody
		s.upgrade = true
	default:
		return s.stopMilestone(ret, CBHeadersComplete, "on_headers_complete", i)
	}

	return false
}

func (s *State) frame(i int) bool {
	hasBody := s.flags&flagChunked != 0 || s.contentLength > 0
	isResponse := s.typ == TypeResponse

	switch {
	case s.upgrade && (s.method == MethodConnect || s.flags&flagSkipBody != 0 || !hasBody),
		isResponse && s.statusCode == 101:
		s.upgrade = true
		s.state = stMessageDone
	case isResponse && s.statusCode == 100, s.flags&flagSkipBody != 0:
		s.state = stMessageDone
	case s.flags&flagChunked != 0:
		s.state = stChunkSizeStart
	case s.flags&flagTransferEncoding != 0:
		if !isResponse && !s.lenientChunkedLength {
			return s.fail(InvalidTransferEncoding, "Request has invalid `Transfer-Encoding`", i)
		}
		s.state, s.finish = stBodyEOF, FinishSafeWithCB
	case s.flags&flagContentLength == 0:
		if s.MessageNeedsEOF() {
			s.state, s.finish = stBodyEOF, FinishSafeWithCB
		} else {
			s.state = stMessageDone
		}
	case s.contentLength == 0:
		s.state = stMessageDone
	default:
		s.remaining = s.contentLength
		s.state = stBodyIdentity
	}

	return false
}

func (s *State) chunkHeader(next int) bool {
	s.contentLength = s.remaining
	if s.remaining == 0 {
		s.flags |= flagTrailing
		s.state = stHeaderStart
	} else {
		s.state = stChunkData
	}

	if ret := s.call(s.cbs.OnChunkHeader); ret != 0 {
		return s.stopMilestone(ret, CBChunkHeader, "on_chunk_header", next)
	}

	return false
}

func (s *State) chunkComplete(next int) bool {
	s.state = stChunkSizeStart
	if ret := s.call(s.cbs.OnChunkComplete); ret != 0 {
		return s.stopMilestone(ret, CBChunkComplete, "on_chunk_complete", next)
	}

	return false
}

func (s *State) afterValueState(b byte) parsingState {
	if b == '\r' {
		return stHeaderValueLF
	}

	return stHeaderStart
}

// valueDone applies a completed header value to the message framing.
func (s *State) valueDone(next int) bool {
	s.info(s.cbs.OnHeaderValueComplete)

	switch s.header {
	case hdrContentLength:
		if !s.clDigits {
			return s.fail(InvalidContentLength, "Empty Content-Length", next)
		}
		s.flags |= flagContentLength
		s.contentLength = s.clValue
	case hdrTransferEncoding, hdrConnection:
		s.endToken()
	case hdrUpgrade:
		s.flags |= flagUpgrade
	}

	return false
}

func (s *State) matchName(b byte) {
	if s.nameLen < len(s.name) {
		s.name[s.nameLen] = lower(b)
	}
	s.nameLen++
}

func (s *State) classifyHeader(next int) bool {
	s.header = hdrGeneral
	if s.flags&flagTrailing != 0 || s.nameLen > len(s.name) {
		return false
	}

	switch string(s.name[:s.nameLen]) {
	case "content-length":
		if s.flags&flagContentLength != 0 {
			return s.fail(UnexpectedContentLength, "Duplicate Content-Length", next)
		}
		s.header = hdrContentLength
		s.clValue, s.clDigits, s.clTrailingWS = 0, false, false
	case "transfer-encoding":
		s.header = hdrTransferEncoding
		s.flags |= flagTransferEncoding
		s.valLen = 0
	case "connection":
		s.header = hdrConnection
		s.valLen = 0
	case "upgrade":
		s.header = hdrUpgrade
	}

	return false
}

// matchValue feeds one header value byte to the framing header matchers. It reports a malformed
// Content-Length.
func (s *State) matchValue(b byte) bool {
	switch s.header {
	case hdrContentLength:
		if b == ' ' || b == '\t' {
			s.clTrailingWS = s.clDigits
			return false
		}
		if !isDigit(b) || s.clTrailingWS {
			return true
		}
		d := uint64(b - '0')
		if s.clValue > (math.MaxUint64-d)/10 {
			return true
		}
		s.clValue, s.clDigits = s.clValue*10+d, true
	case hdrTransferEncoding, hdrConnection:
		switch b {
		case ',':
			s.endToken()
		case ' ', '\t':
		default:
			if s.valLen < len(s.val) {
				s.val[s.valLen] = lower(b)
			}
			s.valLen++
		}
	}

	return false
}

func (s *State) endToken() {
	n := s.valLen
	s.valLen = 0
	if n == 0 {
		return
	}

	var tok string
	if n <= len(s.val) {
		tok = string(s.val[:n])
	}

	if s.header == hdrTransferEncoding {
		if tok == "chunked" {
			s.flags |= flagChunked
		} else {
			s.flags &^= flagChunked
		}
		return
	}

	switch tok {
	case "keep-alive":
		s.flags |= flagConnectionKeepAlive
	case "close":
		s.flags |= flagConnectionClose
	case "upgrade":
		s.flags |= flagConnectionUpgrade
	}
}

func (s *State) openSpan(k spanKind, at int) {
	s.span, s.spanStart, s.spanCarried = k, at, false
}

// closeSpan emits data[spanStart:end] for the open span and reports whether parsing must stop.
// next is where parsing resumes after a pause.
func (s *State) closeSpan(data []byte, end, next int) bool {
	k, carried := s.span, s.spanCarried
	s.span, s.spanCarried = spanNone, false
	if carried && end == s.spanStart {
		return false
	}

	return s.check(k, s.emit(k, data[s.spanStart:end]), next)
}

func (s *State) emit(k spanKind, at []byte) int {
	var cb DataCb
	switch k {
	case spanURL:
		cb = s.cbs.OnURL
	case spanStatus:
		cb = s.cbs.OnStatus
	case spanField:
		cb = s.cbs.OnHeaderField
	case spanValue:
		cb = s.cbs.OnHeaderValue
	case spanBody:
		cb = s.cbs.OnBody
	}

	if cb == nil {
		return 0
	}

	s.reason = ""
	return cb(s, at)
}

// check interprets a data callback result.
func (s *State) check(k spanKind, ret int, next int) bool {
	if ret == 0 {
		return false
	}

	e := Errno(ret)
	if e == Paused {
		s.errno, s.reason, s.errPos = Paused, s.reasonOr("Paused in "+spanCallbackNames[k]), next
		return true
	}

	if !e.Known() {
		e = User
	}

	return s.fail(e, s.reasonOr("Span callback error in "+spanCallbackNames[k]), next)
}

func (s *State) stopMilestone(ret int, code Errno, name string, pos int) bool {
	if Errno(ret) == Paused {
		s.errno, s.reason, s.errPos = Paused, s.reasonOr(name+" pause"), pos
		return true
	}

	return s.fail(code, s.reasonOr("`"+name+"` callback error"), pos)
}

func (s *State) call(cb Cb) int {
	if cb == nil {
		return 0
	}

	s.reason = ""
	return cb(s)
}

// info invokes an information-only callback; its result is ignored.
func (s *State) info(cb Cb) {
	if cb != nil {
		cb(s)
	}
}

func (s *State) reasonOr(fallback string) string {
	if s.reason != "" {
		return s.reason
	}

	return fallback
}

func (s *State) fail(e Errno, reason string, pos int) bool {
	s.errno, s.reason, s.errPos = e, reason, pos
	return true
}

func lineEndState(b byte) parsingState {
	if b == '\r' {
		return stLineLF
	}

	return stHeaderStart
}

func validVersion(major, minor uint8) bool {
	switch major {
	case 0:
		return minor == 9
	case 1:
		return minor <= 1
	case 2:
		return minor == 0
	default:
		return false
	}
}

func isToken(b byte) bool { return httpguts.IsTokenRune(rune(b)) }

func isURLChar(b byte) bool { return b > ' ' && b != 0x7F }

// field-vchar / SP / HTAB / obs-text
func isValueChar(b byte) bool { return b == '\t' || (b >= ' ' && b != 0x7F) }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 0x20
	}

	return b
}

func unhex(b byte) (uint64, bool) {
	switch {
	case b >= '0' && b <= '9':
		return uint64(b - '0'), true
	case b >= 'a' && b <= 'f':
		return uint64(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return uint64(b-'A') + 10, true
	default:
		return 0, false
	}
}
