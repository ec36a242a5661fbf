package interview

import "fmt"

// NotFoundError indicates a referenced interview or job is absent.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// UnauthorizedError indicates the caller does not own the target interview.
type UnauthorizedError struct{}

func (e *UnauthorizedError) Error() string {
	return "caller does not have access to this interview"
}

// PreconditionError indicates a required precondition is unmet, e.g. no
// parsed resume on file before starting an interview.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// ValidationError indicates a malformed request, e.g. an out-of-range
// question index. The failed operation causes no mutation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CompletedError indicates a submission arrived after the interview reached
// its terminal state. The aggregate is computed at most once; late
// submissions are rejected rather than re-opening the transcript.
type CompletedError struct{}

func (e *CompletedError) Error() string {
	return "interview is already complete"
}
