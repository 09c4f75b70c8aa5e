package parser

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedLine    = errors.New("line matches no known log format")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// ParseError describes a record that was recognized but dropped.
type ParseError struct {
	Line int
	Raw  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
