package grid

import (
	"errors"
	"fmt"
)

var (
	ErrTooFewRows         = errors.New("sheet has fewer than two rows")
	ErrUnrecognizedLayout = errors.New("sheet layout not recognized")
)

// FormatError reports a sheet whose structure cannot be parsed at all.
// Individual bad cells never produce a FormatError.
type FormatError struct {
	Sheet string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
