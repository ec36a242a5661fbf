package db

import (
	"time"

	"github.com/google/uuid"
)

// Job is a recruiter-owned job posting. Immutable after creation.
type Job struct {
	ID          uuid.UUID `json:"id"`
	RecruiterID uuid.UUID `json:"recruiter_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	Experience  string    `json:"experience"`
	CreatedAt   time.Time `json:"created_at"`
}
