package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/meera/campushire/internal/oracle"
)

// Question types.
const (
	QuestionTechnical  = "technical"
	QuestionBehavioral = "behavioral"
)

// InterviewQuestion is one generated question, tagged technical or behavioral.
type InterviewQuestion struct {
	Type     string `json:"type"`
	Question string `json:"question"`
}

// InterviewAnswer is the recorded answer and evaluation for one question.
// The answers slice is index-aligned with the questions slice; a nil entry
// means the question at that index has not been answered yet.
type InterviewAnswer struct {
	Question   string            `json:"question"`
	Answer     string            `json:"answer"`
	Evaluation oracle.Evaluation `json:"evaluation"`
}

// Interview is one fixed-length interview for a (student, job) pair.
// Feedback and Score are written exactly once, when every question index
// has a recorded answer.
type Interview struct {
	ID            uuid.UUID           `json:"id"`
	StudentID     uuid.UUID           `json:"student_id"`
	JobID         uuid.UUID           `json:"job_id"`
	ApplicationID *uuid.UUID          `json:"application_id,omitempty"`
	Questions     []InterviewQuestion `json:"questions"`
	Answers       []*InterviewAnswer  `json:"answers"`
	Feedback      *oracle.Feedback    `json:"feedback,omitempty"`
	Score         *float64            `json:"score,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Complete reports whether every question index has a recorded answer.
func (iv *Interview) Complete() bool {
	if len(iv.Questions) == 0 || len(iv.Answers) != len(iv.Questions) {
		return false
	}
	for _, a := range iv.Answers {
		if a == nil {
			return false
		}
	}
	return true
}

// AnsweredCount returns the number of recorded answers.
func (iv *Interview) AnsweredCount() int {
	n := 0
	for _, a := range iv.Answers {
		if a != nil {
			n++
		}
	}
	return n
}
