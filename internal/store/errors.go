package store

import (
	"errors"
	"fmt"
)

// UIDExhaustedError is returned when uid allocation draws its full quota
// of candidates without finding a free one.
type UIDExhaustedError struct {
	Attempts int // Candidates drawn
	Min      int // Lowest uid in the space
	Max      int // Highest uid in the space
}

// Error implements the error interface.
func (e *UIDExhaustedError) Error() string {
	return fmt.Sprintf("no free team uid in [%d, %d] after %d attempts", e.Min, e.Max, e.Attempts)
}

// IsUIDExhausted returns true if the error is a UIDExhaustedError.
// Uses errors.As to handle wrapped errors.
func IsUIDExhausted(err error) bool {
	var ue *UIDExhaustedError
	return errors.As(err, &ue)
}
