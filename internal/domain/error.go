package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a name did not match any known entity.
	ErrNotFound = errors.New("not found")

	// ErrParseFailure indicates a tool succeeded but its output had an unexpected shape.
	ErrParseFailure = errors.New("parse failure")

	// ErrExecutionFailure indicates a tool could not be launched at all.
	ErrExecutionFailure = errors.New("execution failure")

	// ErrCommandRejected indicates a tool ran and exited non-zero.
	ErrCommandRejected = errors.New("command rejected")

	// ErrInvalidQuantum indicates a buffer size outside the accepted set.
	ErrInvalidQuantum = errors.New("the clock quantum must be a power of two between 32 and 2048")

	// ErrInvalidSensitivity indicates an empty sensitivity value.
	ErrInvalidSensitivity = errors.New("sensitivity must not be empty")

	// ErrCardNotInitialized indicates the session card was never resolved.
	ErrCardNotInitialized = errors.New("sound card not initialized")
)

// Error carries one of the kind sentinels above. Error() is the single
// message surfaced to callers.
type Error struct {
	Kind error
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds an ErrNotFound error.
func NotFound(op, format string, args ...any) *Error {
	return &Error{Kind: ErrNotFound, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// ParseFailure builds an ErrParseFailure error.
func ParseFailure(op, format string, args ...any) *Error {
	return &Error{Kind: ErrParseFailure, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// ExecutionFailure wraps the OS error that prevented a tool from starting.
func ExecutionFailure(tool string, err error) *Error {
	return &Error{
		Kind: ErrExecutionFailure,
		Op:   tool,
		Msg:  fmt.Sprintf("Failed to execute %s: %v", tool, err),
		Err:  err,
	}
}

// CommandRejected carries the tool's stderr verbatim.
func CommandRejected(tool, stderr string) *Error {
	return &Error{Kind: ErrCommandRejected, Op: tool, Msg: stderr}
}

// KindOf returns the kind sentinel of err, or nil for foreign errors.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
