// Package syncerr classifies failures surfaced by a synchronization attempt.
// Every error returned by the reconciler and the log writer carries one of
// three kinds, recoverable through any amount of %w wrapping.
package syncerr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindNotFound means the source directory is missing or is not a directory.
	KindNotFound Kind = "NOT_FOUND"

	// KindIOFailure means a copy, delete, mkdir or log write failed.
	KindIOFailure Kind = "IO_FAILURE"

	// KindInvalidInput means the caller omitted a path or passed an
	// unrecognized format selector.
	KindInvalidInput Kind = "INVALID_INPUT"
)

// Sentinels for errors.Is.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrIOFailure    = &Error{Kind: KindIOFailure}
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
)

type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = "failed to " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the package sentinels work with
// errors.Is regardless of Op and Path.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

func NotFound(op, path string, err error) error {
	return &Error{Kind: KindNotFound, Op: op, Path: path, Err: err}
}

func IOFailure(op, path string, err error) error {
	return &Error{Kind: KindIOFailure, Op: op, Path: path, Err: err}
}

func InvalidInput(op, format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if ok := errors.As(err, &e); ok {
		return e.Kind
	}

	return ""
}
