package tinycsv

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a row or column is addressed by a position that does not exist.
var ErrIndexOutOfRange = errors.New("tinycsv: index out of range")

// Error is the single error kind raised by table operations. Err carries the triggering cause.
type Error struct {
	// Op names the failing operation, e.g. "RemoveColumn".
	Op string
	// Index is the offending position and Len the number of valid positions.
	Index int
	Len   int
	Err   error
}

// Error formats the failing operation together with the index, bounds and cause.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("tinycsv: %s: index %d with length %d: %v", e.Op, e.Index, e.Len, e.Err)
}

// Unwrap returns the underlying Err so Error participates in errors.Is and errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func indexError(op string, index, length int) error {
	return &Error{Op: op, Index: index, Len: length, Err: ErrIndexOutOfRange}
}
