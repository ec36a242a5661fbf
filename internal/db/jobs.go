package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateJob creates a job posting owned by a recruiter and returns its ID.
func (db *DB) CreateJob(ctx context.Context, recruiterID uuid.UUID, title, description string, skills []string, experience string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (recruiter_id, title, description, skills, experience)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		recruiterID, title, description, skills, experience,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a job by id. Returns nil when absent.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, recruiter_id, title, description, skills, experience, created_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.RecruiterID, &j.Title, &j.Description, &j.Skills, &j.Experience, &j.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// ListJobs lists all job postings, newest first.
func (db *DB) ListJobs(ctx context.Context) ([]Job, error) {
	return db.listJobs(ctx,
		`SELECT id, recruiter_id, title, description, skills, experience, created_at
		 FROM jobs ORDER BY created_at DESC`)
}

// ListJobsByRecruiter lists a recruiter's own postings, newest first.
func (db *DB) ListJobsByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]Job, error) {
	return db.listJobs(ctx,
		`SELECT id, recruiter_id, title, description, skills, experience, created_at
		 FROM jobs WHERE recruiter_id = $1 ORDER BY created_at DESC`,
		recruiterID)
}

func (db *DB) listJobs(ctx context.Context, query string, args ...any) ([]Job, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.RecruiterID, &j.Title, &j.Description, &j.Skills, &j.Experience, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}
