package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/meera/campushire/internal/llm"
)

// Oracle is the interface the rest of the system depends on. It is injected
// into the orchestrator and scorer so tests can substitute canned results.
type Oracle interface {
	// ParseResume extracts structured data from raw resume text.
	ParseResume(ctx context.Context, resumeText string) (*ParsedResume, error)
	// GenerateQuestions produces the fixed interview question set for a
	// candidate and job. Non-deterministic: identical inputs may yield
	// different questions.
	GenerateQuestions(ctx context.Context, resume *ParsedResume, jobDescription string) (*QuestionSet, error)
	// EvaluateAnswer scores a single answer on a 0-10 scale.
	EvaluateAnswer(ctx context.Context, question, answer string, resume *ParsedResume, jobDescription string) (*Evaluation, error)
	// MatchScore estimates resume-to-job fit on a 0-100 scale.
	MatchScore(ctx context.Context, resume *ParsedResume, jobDescription string, requiredSkills []string) (*MatchResult, error)
	// FinalFeedback synthesizes aggregate feedback from a full transcript.
	FinalFeedback(ctx context.Context, transcript []TranscriptEntry) (*Feedback, error)
}

// Client implements Oracle on top of an llm.Client. Each call is retried a
// bounded number of times with exponential backoff; generative-model calls
// are the dominant source of transient failure in the system.
type Client struct {
	llm         llm.Client
	maxAttempts int
	baseBackoff time.Duration
}

const (
	defaultMaxAttempts = 3
	defaultBaseBackoff = 500 * time.Millisecond
)

// NewClient creates an oracle client with default retry settings.
func NewClient(llmClient llm.Client) *Client {
	return &Client{
		llm:         llmClient,
		maxAttempts: defaultMaxAttempts,
		baseBackoff: defaultBaseBackoff,
	}
}

// ParseResume extracts structured data from raw resume text.
func (c *Client) ParseResume(ctx context.Context, resumeText string) (*ParsedResume, error) {
	var parsed ParsedResume
	err := c.generate(ctx, parseResumePrompt(resumeText), llm.TierStandard, parseResumeSchema, &parsed)
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	return &parsed, nil
}

// GenerateQuestions produces the fixed question set for a candidate and job.
func (c *Client) GenerateQuestions(ctx context.Context, resume *ParsedResume, jobDescription string) (*QuestionSet, error) {
	var set QuestionSet
	err := c.generate(ctx, generateQuestionsPrompt(resume, jobDescription), llm.TierDeep, questionSetSchema, &set)
	if err != nil {
		return nil, &GenerationError{Cause: err}
	}
	return &set, nil
}

// EvaluateAnswer scores a single answer on a 0-10 scale.
func (c *Client) EvaluateAnswer(ctx context.Context, question, answer string, resume *ParsedResume, jobDescription string) (*Evaluation, error) {
	var eval Evaluation
	err := c.generate(ctx, evaluateAnswerPrompt(question, answer, resume, jobDescription), llm.TierStandard, evaluationSchema, &eval)
	if err != nil {
		return nil, &EvaluationError{Cause: err}
	}
	return &eval, nil
}

// MatchScore estimates resume-to-job fit on a 0-100 scale.
func (c *Client) MatchScore(ctx context.Context, resume *ParsedResume, jobDescription string, requiredSkills []string) (*MatchResult, error) {
	var match MatchResult
	err := c.generate(ctx, matchScorePrompt(resume, jobDescription, requiredSkills), llm.TierFast, matchResultSchema, &match)
	if err != nil {
		return nil, &MatchError{Cause: err}
	}
	return &match, nil
}

// FinalFeedback synthesizes aggregate feedback from a full transcript.
func (c *Client) FinalFeedback(ctx context.Context, transcript []TranscriptEntry) (*Feedback, error) {
	var feedback Feedback
	err := c.generate(ctx, finalFeedbackPrompt(transcript), llm.TierDeep, feedbackSchema, &feedback)
	if err != nil {
		return nil, &FeedbackError{Cause: err}
	}
	return &feedback, nil
}

// generate runs one prompt through the model with retry, validates the raw
// response against the schema, and decodes it into dest. A malformed
// response counts as a failed attempt: the model is non-deterministic, so
// the next attempt may well produce a valid one.
func (c *Client) generate(ctx context.Context, prompt string, tier llm.ModelTier, schema *gojsonschema.Schema, dest any) error {
	var lastErr error

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := c.baseBackoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		raw, err := c.llm.GenerateJSON(ctx, prompt, tier)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		if err := validateResponse(schema, raw); err != nil {
			lastErr = err
			continue
		}

		if err := json.Unmarshal([]byte(raw), dest); err != nil {
			lastErr = fmt.Errorf("failed to decode validated response: %w", err)
			continue
		}
		return nil
	}

	return fmt.Errorf("after %d attempts: %w", c.maxAttempts, lastErr)
}
