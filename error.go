package bparse

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error describes why parsing stopped.
type Error struct {
	errno  Errno
	reason string
	pos    int
}

// NewError inits a new error given the errno, the reason and the offset in the last buffer.
func NewError(e Errno, reason string, pos int) *Error {
	return &Error{e, reason, pos}
}

func (e *Error) Errno() Errno   { return e.errno }
func (e *Error) Reason() string { return e.reason }
func (e *Error) Pos() int       { return e.pos }

func (e *Error) Error() string {
	if e.reason == "" {
		return fmt.Sprintf("%s at byte %d", e.errno, e.pos)
	}

	return fmt.Sprintf("%s: %s at byte %d", e.errno, e.reason, e.pos)
}

// ErrnoOf returns the errno if err is or wraps an [*Error], [ErrnoOK] for a nil error and
// [ErrnoInternal] otherwise.
func ErrnoOf(err error) Errno {
	if err == nil {
		return ErrnoOK
	}

	if perr, ok := asError(err); ok {
		return perr.Errno()
	}

	return ErrnoInternal
}

// asError uses errors.As to unwrap any error and look for a parse *Error.
func asError(err error) (*Error, bool) {
	var perr *Error
	ok := errors.As(err, &perr)
	return perr, ok
}
