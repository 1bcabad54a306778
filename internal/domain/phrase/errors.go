package phrase

import "errors"

var (
	// ErrNotFound indicates the phrase doesn't exist.
	ErrNotFound = errors.New("phrase not found")
	// ErrInvalidTiming indicates bounds that violate start >= 0 and end > start.
	ErrInvalidTiming = errors.New("invalid phrase timing")
	// ErrInvalidInput indicates invalid phrase input.
	ErrInvalidInput = errors.New("invalid phrase input")
)
