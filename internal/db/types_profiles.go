package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/meera/campushire/internal/oracle"
)

// StudentProfile holds a student's resume reference, extracted skills,
// and the structured resume parse. One per STUDENT user, upserted on
// every resume upload.
type StudentProfile struct {
	ID           uuid.UUID            `json:"id"`
	UserID       uuid.UUID            `json:"user_id"`
	ResumeURL    string               `json:"resume_url"`
	Skills       []string             `json:"skills"`
	ParsedResume *oracle.ParsedResume `json:"parsed_resume,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}
