package carousel

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCollection is returned when a controller with no items is asked to start.
	ErrEmptyCollection = errors.New("carousel: no items")
	// ErrOutOfRange matches any *OutOfRangeError via errors.Is.
	ErrOutOfRange = errors.New("carousel: index out of range")
	// ErrDisposed is returned by operations on a disposed controller.
	ErrDisposed = errors.New("carousel: disposed")
)

// OutOfRangeError reports a jump to an index outside [0, Len).
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("carousel: index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
