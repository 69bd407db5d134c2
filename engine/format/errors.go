package format

import (
	"errors"
	"fmt"
)

// ErrMalformedFormat is the sentinel every FormatError unwraps to.
var ErrMalformedFormat = errors.New("malformed format string")

// FormatError reports a format string that does not follow the format grammar.
// It carries the offending string and the byte position of the failing character.
type FormatError struct {
	// Format is the full string that failed to parse.
	Format string
	// Pos is the byte offset of the character that caused the failure. It equals
	// len(Format) when the string ended too early.
	Pos int
	// Reason is a short human readable description of the failure.
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %q: %s at position %d", e.Format, e.Reason, e.Pos)
}

func (e *FormatError) Unwrap() error {
	return ErrMalformedFormat
}

func malformed(src string, pos int, reason string, args ...any) *FormatError {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &FormatError{Format: src, Pos: pos, Reason: reason}
}
