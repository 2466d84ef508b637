package dataset

import (
	"fmt"

	"github.com/hupe1980/cohort/core"
)

// ErrMalformed is the root of all parse errors.
var ErrMalformed = fmt.Errorf("%w: malformed dataset", core.ErrInvalidInput)

// ErrMalformedRecord reports a cell that could not be parsed.
type ErrMalformedRecord struct {
	// Line is the 1-based line number, counting the header.
	Line int
	// Column is the 1-based column number, or 0 when the whole row is at fault.
	Column int
	// Value is the offending cell.
	Value string
	// Err is the underlying cause.
	Err error
}

func (e *ErrMalformedRecord) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("malformed record at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed record at line %d, column %d (%q): %v", e.Line, e.Column, e.Value, e.Err)
}

// Unwrap exposes both ErrMalformed and the underlying cause.
func (e *ErrMalformedRecord) Unwrap() []error {
	return []error{ErrMalformed, e.Err}
}
