// ABOUTME: Structured error kinds shared by every networking operation
// ABOUTME: Lets adapters tell bad input, missing records, forbidden actors and wrong states apart
package network

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindNotFound
	KindForbidden
	KindPreconditionFailed
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindNotFound:
		return "not found"
	case KindForbidden:
		return "forbidden"
	case KindPreconditionFailed:
		return "precondition failed"
	case KindConflict:
		return "conflict"
	default:
		return "internal error"
	}
}

// Error is returned by every service method.
type Error struct {
	Kind Kind
	Op   string // e.g. "meetings.accept"
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the bare sentinel of the same kind, so callers can write
// errors.Is(err, network.ErrForbidden).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrInvalidArgument    = &Error{Kind: KindInvalidArgument}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrPreconditionFailed = &Error{Kind: KindPreconditionFailed}
	ErrConflict           = &Error{Kind: KindConflict}
)

// KindOf returns the kind of err, or KindInternal for errors not raised by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func invalidf(op, format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func notFound(op, what string) error {
	return &Error{Kind: KindNotFound, Op: op, Msg: what + " not found"}
}

func forbidden(op, msg string) error {
	return &Error{Kind: KindForbidden, Op: op, Msg: msg}
}

func preconditionf(op, format string, args ...any) error {
	return &Error{Kind: KindPreconditionFailed, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func conflict(op, msg string, err error) error {
	return &Error{Kind: KindConflict, Op: op, Msg: msg, Err: err}
}

func internal(op, msg string, err error) error {
	return &Error{Kind: KindInternal, Op: op, Msg: msg, Err: err}
}

// passthrough keeps kinded errors intact and wraps anything else as internal.
func passthrough(op, msg string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return internal(op, msg, err)
}
