package oracle

import "fmt"

// ParseError indicates the model did not return a usable resume parse.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("resume parsing failed: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// GenerationError indicates question generation returned a malformed or
// empty question set.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("question generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// EvaluationError indicates answer evaluation failed. Callers must treat
// this as fatal to the request; a silently-defaulted score would corrupt
// the interview aggregate.
type EvaluationError struct {
	Cause error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("answer evaluation failed: %v", e.Cause)
}

func (e *EvaluationError) Unwrap() error { return e.Cause }

// MatchError indicates a match-score call failed. Callers scoring a batch
// of jobs should skip the affected job rather than fail the batch.
type MatchError struct {
	Cause error
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("match scoring failed: %v", e.Cause)
}

func (e *MatchError) Unwrap() error { return e.Cause }

// FeedbackError indicates final feedback synthesis failed.
type FeedbackError struct {
	Cause error
}

func (e *FeedbackError) Error() string {
	return fmt.Sprintf("feedback generation failed: %v", e.Cause)
}

func (e *FeedbackError) Unwrap() error { return e.Cause }
