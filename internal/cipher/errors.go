package cipher

import "errors"

var (
	// ErrInvalidShift is returned when a shift value is not a number or is zero.
	ErrInvalidShift = errors.New("invalid shift value")
	// ErrEmptyInput is returned when the input text is blank.
	ErrEmptyInput = errors.New("input text is empty")
	// ErrProcessingFailed is returned when a batch run could not complete.
	ErrProcessingFailed = errors.New("processing failed")
)
