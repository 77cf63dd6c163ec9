package ast

import "fmt"

// ParseError is the error surfaced for every build failure: a human-readable
// message plus the exact source position where the violation was detected.
// It propagates unwrapped from the detecting visit to the caller; exactly one
// is produced per failing statement.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// NewParseError creates a parse error located at the start of the given span
func NewParseError(span SourceSpan, message string) *ParseError {
	return &ParseError{
		Message: message,
		Line:    span.StartLine,
		Column:  span.StartColumn,
	}
}
