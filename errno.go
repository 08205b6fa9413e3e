package bparse

import "github.com/advdv/bparse/internal/engine"

// Errno is the status code returned by Execute and Finish. Values use llhttp's numbering.
type Errno = engine.Errno

const (
	ErrnoOK                      = engine.OK
	ErrnoInternal                = engine.Internal
	ErrnoStrict                  = engine.Strict
	ErrnoCRExpected              = engine.CRExpected
	ErrnoLFExpected              = engine.LFExpected
	ErrnoUnexpectedContentLength = engine.UnexpectedContentLength
	ErrnoUnexpectedSpace         = engine.UnexpectedSpace
	ErrnoClosedConnection        = engine.ClosedConnection
	ErrnoInvalidMethod           = engine.InvalidMethod
	ErrnoInvalidURL              = engine.InvalidURL
	ErrnoInvalidConstant         = engine.InvalidConstant
	ErrnoInvalidVersion          = engine.InvalidVersion
	ErrnoInvalidHeaderToken      = engine.InvalidHeaderToken
	ErrnoInvalidContentLength    = engine.InvalidContentLength
	ErrnoInvalidChunkSize        = engine.InvalidChunkSize
	ErrnoInvalidStatus           = engine.InvalidStatus
	ErrnoInvalidEOFState         = engine.InvalidEOFState
	ErrnoInvalidTransferEncoding = engine.InvalidTransferEncoding
	ErrnoCBMessageBegin          = engine.CBMessageBegin
	ErrnoCBHeadersComplete       = engine.CBHeadersComplete
	ErrnoCBMessageComplete       = engine.CBMessageComplete
	ErrnoCBChunkHeader           = engine.CBChunkHeader
	ErrnoCBChunkComplete         = engine.CBChunkComplete
	ErrnoPaused                  = engine.Paused
	ErrnoPausedUpgrade           = engine.PausedUpgrade
	ErrnoPausedH2Upgrade         = engine.PausedH2Upgrade
	ErrnoUser                    = engine.User
)

// Method is a request method. Values use llhttp's numbering.
type Method = engine.Method

const (
	MethodDelete  = engine.MethodDelete
	MethodGet     = engine.MethodGet
	MethodHead    = engine.MethodHead
	MethodPost    = engine.MethodPost
	MethodPut     = engine.MethodPut
	MethodConnect = engine.MethodConnect
	MethodOptions = engine.MethodOptions
	MethodTrace   = engine.MethodTrace
	MethodPatch   = engine.MethodPatch
	MethodPRI     = engine.MethodPRI
)

// Type is the kind of message a parser accepts or has detected.
type Type = engine.Type

const (
	TypeBoth     = engine.TypeBoth
	TypeRequest  = engine.TypeRequest
	TypeResponse = engine.TypeResponse
)

// ErrnoName returns the static name of e, such as "HPE_INVALID_METHOD".
func ErrnoName(e Errno) string { return e.String() }

// MethodName returns the request token of m, such as "GET".
func MethodName(m Method) string { return m.String() }
