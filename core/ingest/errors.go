package ingest

import (
	"errors"
	"fmt"
)

// ErrSourceFormat is matched by every *SourceFormatError through errors.Is.
var ErrSourceFormat = errors.New("source format error")

// SourceFormatError reports malformed input: an unexpected root tag, JSON that is
// not an array of flat objects, or a CSV row whose width differs from the header.
type SourceFormatError struct {
	// Source names the input (profile or location).
	Source string

	// Index is the zero-based record index, or -1 when the error is not tied to a record.
	Index int

	// Reason describes the problem.
	Reason string

	// Err is the underlying parser error, if any.
	Err error
}

func (e *SourceFormatError) Error() string {
	msg := fmt.Sprintf("source %q", e.Source)
	if e.Index >= 0 {
		msg += fmt.Sprintf(": record %d", e.Index)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SourceFormatError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSourceFormat) succeed.
func (e *SourceFormatError) Is(target error) bool {
	return target == ErrSourceFormat
}

func formatError(source string, index int, reason string, err error) *SourceFormatError {
	return &SourceFormatError{Source: source, Index: index, Reason: reason, Err: err}
}
