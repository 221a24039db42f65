package orders

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyFile is returned when the source has no header row.
	ErrEmptyFile = errors.New("empty order file")
)

// MissingColumnError names the absent column and unwraps to ErrMissingColumn.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumn, e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }
