package interp

import "fmt"

// ErrorKind classifies a runtime error so callers can report precisely what
// failed. Every kind aborts the current run; none is silently swallowed.
type ErrorKind string

const (
	ErrorTypeMismatch   ErrorKind = "TYPE_MISMATCH"
	ErrorUndefinedVar   ErrorKind = "UNDEFINED_VARIABLE"
	ErrorDivisionByZero ErrorKind = "DIVISION_BY_ZERO"
	ErrorPlayer         ErrorKind = "PLAYER_ERROR"
)

// RuntimeError is an error raised during script execution. Line points at
// the statement or expression that failed, when known.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Line    int // -1 when unavailable
	Err     error
}

func (e *RuntimeError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("[%s] %s at line %d", e.Kind, e.Message, e.Line)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func newRuntimeError(kind ErrorKind, line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	}
}
