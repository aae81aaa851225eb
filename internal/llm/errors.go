package llm

import "errors"

var (
	// ErrUnavailable indicates the completion endpoint is unreachable.
	ErrUnavailable = errors.New("completion service unavailable")

	// ErrTimeout indicates the completion request exceeded its timeout.
	ErrTimeout = errors.New("completion request timed out")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid completion output format")
)
