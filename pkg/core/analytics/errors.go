package analytics

import (
	"errors"
	"fmt"
)

var ErrUnsupportedShiftType = errors.New("unsupported shift type")

// ShiftTypeError reports a shift type outside MD1, MD2 and PM
type ShiftTypeError struct {
	ShiftType string
}

func (e *ShiftTypeError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnsupportedShiftType, e.ShiftType)
}

func (e *ShiftTypeError) Unwrap() error {
	return ErrUnsupportedShiftType
}
