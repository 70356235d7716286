package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a sensor value outside its physical bounds
	ErrOutOfRange = errors.New("sensor value out of range")

	// ErrUnknownCrop indicates a crop that is not in the catalog
	ErrUnknownCrop = errors.New("unknown crop")

	// ErrReadingNotFound indicates requested reading doesn't exist
	ErrReadingNotFound = errors.New("reading not found")

	// ErrSensorUnavailable indicates sensor cannot be read
	ErrSensorUnavailable = errors.New("sensor unavailable")
)

// RangeError reports which field of a reading is out of bounds.
// It matches ErrOutOfRange with errors.Is.
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s value %g out of range [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
