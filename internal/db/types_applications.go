package db

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the recruiter-controlled review status.
type ApplicationStatus string

// Application statuses.
const (
	StatusPending     ApplicationStatus = "PENDING"
	StatusShortlisted ApplicationStatus = "SHORTLISTED"
	StatusRejected    ApplicationStatus = "REJECTED"
)

// Valid reports whether the status is one of the known values.
func (s ApplicationStatus) Valid() bool {
	return s == StatusPending || s == StatusShortlisted || s == StatusRejected
}

// Application links a student to a job, unique per (student, job) pair.
// AIScore is on a 0-100 scale: a match score at apply time, overwritten by
// the scaled interview aggregate once the interview completes.
type Application struct {
	ID        uuid.UUID         `json:"id"`
	JobID     uuid.UUID         `json:"job_id"`
	StudentID uuid.UUID         `json:"student_id"`
	Status    ApplicationStatus `json:"status"`
	AIScore   *float64          `json:"ai_score,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Job *Job `json:"job,omitempty"` // joined
}
