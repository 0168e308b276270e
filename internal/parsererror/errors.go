// Package parsererror defines the error types shared by the SIE parsers and
// the import-preparation stages. Errors cross stage boundaries as data;
// nothing in the pipeline panics on malformed input.
package parsererror

import "fmt"

// ParseError represents a recoverable, line-level error in a SIE4 file.
// The parser records it and continues with the next line.
type ParseError struct {
	Line    int
	Record  string
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Record, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError represents an unrecognized or structurally malformed document.
// It is fatal for the affected file only.
type FormatError struct {
	Filename string
	Detected string
	Err      error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unrecognized format for '%s' (detected: %s): %v",
			e.Filename, e.Detected, e.Err)
	}
	return fmt.Sprintf("unrecognized format for '%s' (detected: %s)",
		e.Filename, e.Detected)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ImportError represents an unresolvable account or fiscal-year reference
// during entry construction. It blocks only the affected voucher or balance
// group, never the whole batch.
type ImportError struct {
	SourceReference string
	Reason          string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("cannot import %s: %s", e.SourceReference, e.Reason)
}
