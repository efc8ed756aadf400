package trishare

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies every error returned by the library.
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota + 1
	KindInvalidState
	KindVerificationFailed
	KindTimingViolation
	KindTimeout
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindInvalidState:
		return "invalid state"
	case KindVerificationFailed:
		return "verification failed"
	case KindTimingViolation:
		return "timing violation"
	case KindTimeout:
		return "timeout"
	case KindIO:
		return "io error"
	default:
		return "unknown"
	}
}

// Error is the structured error type. Expected and Actual are set for
// KindTimingViolation; Expected alone is set for KindTimeout.
type Error struct {
	Kind     ErrorKind
	Msg      string
	Expected time.Duration
	Actual   time.Duration
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTimingViolation:
		return fmt.Sprintf("timing violation: expected %v, got %v", e.Expected, e.Actual)
	case KindTimeout:
		return fmt.Sprintf("operation timeout after %v", e.Expected)
	case KindIO:
		if e.Err != nil {
			return "io error: " + e.Err.Error()
		}
	}
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrInvalidInput)
// works regardless of message or payload.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
	ErrInvalidState       = &Error{Kind: KindInvalidState}
	ErrVerificationFailed = &Error{Kind: KindVerificationFailed}
	ErrTimingViolation    = &Error{Kind: KindTimingViolation}
	ErrTimeout            = &Error{Kind: KindTimeout}
	ErrIO                 = &Error{Kind: KindIO}
)

// InvalidInput reports malformed or out-of-range caller data.
func InvalidInput(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// InvalidState reports an operation the current state forbids.
func InvalidState(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidState, Msg: fmt.Sprintf(format, args...)}
}

// VerificationFailed reports a content hash mismatch.
func VerificationFailed(format string, args ...interface{}) error {
	return &Error{Kind: KindVerificationFailed, Msg: fmt.Sprintf(format, args...)}
}

// TimingViolation reports an advance that came sooner than allowed.
func TimingViolation(expected, actual time.Duration) error {
	return &Error{Kind: KindTimingViolation, Expected: expected, Actual: actual}
}

// Timeout is reserved for callers that bound operations in time.
func Timeout(after time.Duration) error {
	return &Error{Kind: KindTimeout, Expected: after}
}

// IOError wraps an underlying I/O failure. A nil err yields nil.
func IOError(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindIO, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
