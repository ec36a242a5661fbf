// Package types provides request type definitions for the campus hiring API.
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateJobRequest represents the request to post a new job opening.
type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Description string   `json:"description" validate:"required,min=1"`
	Skills      []string `json:"skills" validate:"required,min=1,dive,min=1"`
	Experience  string   `json:"experience" validate:"required,min=1"`
}

// UpdateRoleRequest represents the onboarding role selection.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=STUDENT RECRUITER"`
}

// CreateApplicationRequest represents a student applying to a job.
type CreateApplicationRequest struct {
	JobID uuid.UUID `json:"job_id" validate:"required"`
}

// UpdateApplicationStatusRequest represents a recruiter's decision on an applicant.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING SHORTLISTED REJECTED"`
}

// StartInterviewRequest represents the request to begin a simulated interview.
type StartInterviewRequest struct {
	JobID uuid.UUID `json:"job_id" validate:"required"`
}

// SubmitAnswerRequest represents one answer in a simulated interview.
// QuestionIndex is a pointer so index 0 is distinguishable from an
// absent field.
type SubmitAnswerRequest struct {
	QuestionIndex *int   `json:"question_index" validate:"required"`
	Answer        string `json:"answer" validate:"required,min=1"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateRoleRequest using the validator.
func (r *UpdateRoleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateApplicationStatusRequest using the validator.
func (r *UpdateApplicationStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the StartInterviewRequest using the validator.
func (r *StartInterviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SubmitAnswerRequest using the validator.
func (r *SubmitAnswerRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
