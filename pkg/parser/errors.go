package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// KindSyntax is a grammar mismatch.
	KindSyntax ErrorKind = iota
	// KindNonExistingDate is a well-formed date or time that is not on the calendar.
	KindNonExistingDate
	// KindIncompleteInput signals input that ended inside a token. Parsing works on
	// complete buffers, so this kind is never produced; seeing it is a bug.
	KindIncompleteInput
)

var (
	ErrSyntax          = errors.New("syntax error")
	ErrNonExistingDate = errors.New("non-existing date")
	ErrIncompleteInput = errors.New("incomplete input")
)

// Error is a parse failure with its position in the input.
type Error struct {
	Kind     ErrorKind
	Offset   int    // byte offset into the parsed text
	Line     int    // 1-based
	Column   int    // 1-based, in bytes
	Expected string // what the failing rule was looking for
	Span     string // offending text
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNonExistingDate:
		return fmt.Sprintf("%d:%d: non-existing date %q", e.Line, e.Column, e.Span)
	case KindIncompleteInput:
		return fmt.Sprintf("%d:%d: incomplete input", e.Line, e.Column)
	default:
		if e.Span == "" {
			return fmt.Sprintf("%d:%d: syntax error: expected %s at end of line", e.Line, e.Column, e.Expected)
		}
		return fmt.Sprintf("%d:%d: syntax error: expected %s at %q", e.Line, e.Column, e.Expected, e.Span)
	}
}

// Unwrap lets errors.Is match ErrSyntax, ErrNonExistingDate and ErrIncompleteInput.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindNonExistingDate:
		return ErrNonExistingDate
	case KindIncompleteInput:
		return ErrIncompleteInput
	default:
		return ErrSyntax
	}
}

const maxSpan = 32

// locate fills Line and Column from the offset.
func locate(src string, e *Error) *Error {
	before := src[:e.Offset]
	e.Line = strings.Count(before, "\n") + 1
	e.Column = e.Offset - strings.LastIndexByte(before, '\n')
	return e
}

// furthest keeps the failure that got deepest into the input, the first one on ties.
func furthest(a, b *Error) *Error {
	if a == nil {
		return b
	}
	if b == nil || b.Offset <= a.Offset {
		return a
	}
	return b
}
