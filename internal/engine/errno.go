package engine

import "strconv"

// Errno is the status reported by Execute and Finish. The numbering follows llhttp so that codes
// remain comparable with other llhttp based tooling.
type Errno int

const (
	OK                      Errno = 0
	Internal                Errno = 1
	Strict                  Errno = 2
	CRExpected              Errno = 25
	LFExpected              Errno = 3
	UnexpectedContentLength Errno = 4
	UnexpectedSpace         Errno = 30
	ClosedConnection        Errno = 5
	InvalidMethod           Errno = 6
	InvalidURL              Errno = 7
	InvalidConstant         Errno = 8
	InvalidVersion          Errno = 9
	InvalidHeaderToken      Errno = 10
	InvalidContentLength    Errno = 11
	InvalidChunkSize        Errno = 12
	InvalidStatus           Errno = 13
	InvalidEOFState         Errno = 14
	InvalidTransferEncoding Errno = 15
	CBMessageBegin          Errno = 16
	CBHeadersComplete       Errno = 17
	CBMessageComplete       Errno = 18
	CBChunkHeader           Errno = 19
	CBChunkComplete         Errno = 20
	Paused                  Errno = 21
	PausedUpgrade           Errno = 22
	PausedH2Upgrade         Errno = 23
	User                    Errno = 24
)

var errnoNames = map[Errno]string{
	OK:                      "HPE_OK",
	Internal:                "HPE_INTERNAL",
	Strict:                  "HPE_STRICT",
	CRExpected:              "HPE_CR_EXPECTED",
	LFExpected:              "HPE_LF_EXPECTED",
	UnexpectedContentLength: "HPE_UNEXPECTED_CONTENT_LENGTH",
	UnexpectedSpace:         "HPE_UNEXPECTED_SPACE",
	ClosedConnection:        "HPE_CLOSED_CONNECTION",
	InvalidMethod:           "HPE_INVALID_METHOD",
	InvalidURL:              "HPE_INVALID_URL",
	InvalidConstant:         "HPE_INVALID_CONSTANT",
	InvalidVersion:          "HPE_INVALID_VERSION",
	InvalidHeaderToken:      "HPE_INVALID_HEADER_TOKEN",
	InvalidContentLength:    "HPE_INVALID_CONTENT_LENGTH",
	InvalidChunkSize:        "HPE_INVALID_CHUNK_SIZE",
	InvalidStatus:           "HPE_INVALID_STATUS",
	InvalidEOFState:         "HPE_INVALID_EOF_STATE",
	InvalidTransferEncoding: "HPE_INVALID_TRANSFER_ENCODING",
	CBMessageBegin:          "HPE_CB_MESSAGE_BEGIN",
	CBHeadersComplete:       "HPE_CB_HEADERS_COMPLETE",
	CBMessageComplete:       "HPE_CB_MESSAGE_COMPLETE",
	CBChunkHeader:           "HPE_CB_CHUNK_HEADER",
	CBChunkComplete:         "HPE_CB_CHUNK_COMPLETE",
	Paused:                  "HPE_PAUSED",
	PausedUpgrade:           "HPE_PAUSED_UPGRADE",
	PausedH2Upgrade:         "HPE_PAUSED_H2_UPGRADE",
	User:                    "HPE_USER",
}

// Known reports whether e is one of the defined codes.
func (e Errno) Known() bool {
	_, ok := errnoNames[e]
	return ok
}

// IsPause reports whether e is a resumable suspension rather than an error.
func (e Errno) IsPause() bool {
	return e == Paused || e == PausedUpgrade
}

// String returns the static name of the code, e.g. "HPE_INVALID_METHOD".
func (e Errno) String() string {
	if name, ok := errnoNames[e]; ok {
		return name
	}

	return "HPE_UNKNOWN(" + strconv.Itoa(int(e)) + ")"
}
