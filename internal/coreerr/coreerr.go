// Package coreerr defines the error kinds the inference core surfaces to its
// callers (session layer, admin layer): not_found, bad_input, conflict and
// internal, per the error handling design. Validation results are returned
// as data (see the validator package), never as an error of this kind.
package coreerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for caller-side handling.
type Kind string

const (
	KindNotFound Kind = "not_found"
	KindBadInput Kind = "bad_input"
	KindConflict Kind = "conflict"
	KindInternal Kind = "internal"
)

// Error wraps a Kind with a message and optional underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on Kind alone, ignoring message/cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func BadInput(format string, args ...interface{}) error {
	return &Error{Kind: KindBadInput, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected inconsistency (e.g. a violated working-memory
// invariant). Callers should treat this as fatal, not retry it.
func Internal(cause error, format string, args ...interface{}) error {
	return &Error{Kind: KindInternal, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// Of reports whether err (or something it wraps) carries the given Kind.
func Of(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
