package engine

type parsingState uint8

const (
	stStart parsingState = iota
	stFirstToken
	stURLStart
	stURL
	stReqProto
	stMajor
	stDot
	stMinor
	stReqLineEnd
	stStatusSpace
	stStatusCode
	stStatusAfterCode
	stStatusStart
	stStatusText
	stLineLF
	stHeaderStart
	stHeaderField
	stHeaderValueStart
	stHeaderValue
	stHeaderValueLF
	stHeadersAlmostDone
	stBodyIdentity
	stBodyEOF
	stChunkSizeStart
	stChunkSize
	stChunkExt
	stChunkSizeLF
	stChunkData
	stChunkDataCR
	stChunkDataLF
	stClosed

	// states below consume no input
	stHeadersDone
	stFraming
	stMessageDone
	stAfterMessage

	// a span just closed, its bookkeeping runs before moving on to State.next
	stURLDone
	stStatusDone
	stFieldDone
	stValueDone
)

func (st parsingState) settles() bool { return st >= stHeadersDone }

type flag uint16

const (
	flagConnectionKeepAlive flag = 1 << iota
	flagConnectionClose
	flagConnectionUpgrade
	flagChunked
	flagUpgrade
	flagContentLength
	flagSkipBody
	flagTrailing
	flagTransferEncoding
)

type spanKind uint8

const (
	spanNone spanKind = iota
	spanURL
	spanStatus
	spanField
	spanValue
	spanBody
)

var spanCallbackNames = [...]string{
	spanURL:    "on_url",
	spanStatus: "on_status",
	spanField:  "on_header_field",
	spanValue:  "on_header_value",
	spanBody:   "on_body",
}

type headerKind uint8

const (
	hdrGeneral headerKind = iota
	hdrContentLength
	hdrTransferEncoding
	hdrConnection
	hdrUpgrade
)
