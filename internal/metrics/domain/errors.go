package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches any *ParseError
	ErrParse = errors.New("parse error")
	// ErrIO matches any *IOError
	ErrIO = errors.New("io error")
	// ErrTerminalSizeUnavailable is returned when the output is not a terminal
	// or its size cannot be queried. Callers render untruncated.
	ErrTerminalSizeUnavailable = errors.New("terminal size unavailable")
)

// ParseError reports a counter interface whose structure is not what we expect
type ParseError struct {
	Source string
	Line   int
	Reason string
	Err    error
}

func NewParseError(source string, line int, reason string, err error) *ParseError {
	return &ParseError{Source: source, Line: line, Reason: reason, Err: err}
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse %s", e.Source)
	if e.Line > 0 {
		msg = fmt.Sprintf("%s line %d", msg, e.Line)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError reports a counter interface that could not be read at all
type IOError struct {
	Source string
	Err    error
}

func NewIOError(source string, err error) *IOError {
	return &IOError{Source: source, Err: err}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Source, e.Err)
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func (e *IOError) Unwrap() error {
	return e.Err
}
