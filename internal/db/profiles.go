package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meera/campushire/internal/oracle"
)

// UpsertStudentProfile creates or replaces the profile for a student.
// Called on every resume upload.
func (db *DB) UpsertStudentProfile(ctx context.Context, userID uuid.UUID, resumeURL string, skills []string, parsed *oracle.ParsedResume) (uuid.UUID, error) {
	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal parsed resume: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO student_profiles (user_id, resume_url, skills, parsed_resume)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id)
		 DO UPDATE SET resume_url = $2, skills = $3, parsed_resume = $4, updated_at = NOW()
		 RETURNING id`,
		userID, resumeURL, skills, parsedJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert student profile: %w", err)
	}
	return id, nil
}

// GetStudentProfile retrieves a student's profile. Returns nil when the
// student has not uploaded a resume yet.
func (db *DB) GetStudentProfile(ctx context.Context, userID uuid.UUID) (*StudentProfile, error) {
	var p StudentProfile
	var parsedJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, resume_url, skills, parsed_resume, created_at, updated_at
		 FROM student_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.ResumeURL, &p.Skills, &parsedJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	if parsedJSON != nil {
		if err := json.Unmarshal(parsedJSON, &p.ParsedResume); err != nil {
			return nil, fmt.Errorf("failed to unmarshal parsed resume: %w", err)
		}
	}
	return &p, nil
}
