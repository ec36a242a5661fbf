package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateApplication creates an application for a (student, job) pair.
// Returns ErrDuplicate when the student has already applied to the job;
// the uniqueness constraint on (student_id, job_id) is authoritative.
func (db *DB) CreateApplication(ctx context.Context, studentID, jobID uuid.UUID, aiScore *float64) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (student_id, job_id, status, ai_score)
		 VALUES ($1, $2, 'PENDING', $3)
		 RETURNING id`,
		studentID, jobID, aiScore,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrDuplicate
		}
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// GetApplication retrieves an application with its job joined.
// Returns nil when absent.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	return db.getApplication(ctx, "a.id = $1", id)
}

// GetApplicationByStudentAndJob retrieves the application for a
// (student, job) pair, with its job joined. Returns nil when absent.
func (db *DB) GetApplicationByStudentAndJob(ctx context.Context, studentID, jobID uuid.UUID) (*Application, error) {
	return db.getApplication(ctx, "a.student_id = $1 AND a.job_id = $2", studentID, jobID)
}

func (db *DB) getApplication(ctx context.Context, where string, args ...any) (*Application, error) {
	var a Application
	var j Job

	err := db.pool.QueryRow(ctx,
		`SELECT a.id, a.job_id, a.student_id, a.status, a.ai_score, a.created_at, a.updated_at,
		        j.id, j.recruiter_id, j.title, j.description, j.skills, j.experience, j.created_at
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE `+where,
		args...,
	).Scan(&a.ID, &a.JobID, &a.StudentID, &a.Status, &a.AIScore, &a.CreatedAt, &a.UpdatedAt,
		&j.ID, &j.RecruiterID, &j.Title, &j.Description, &j.Skills, &j.Experience, &j.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	a.Job = &j
	return &a, nil
}

// UpdateApplicationStatus sets the review status of an application.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status ApplicationStatus) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s not found", id)
	}
	return nil
}

// SetApplicationAIScore writes the AI score (0-100 scale) for an application.
func (db *DB) SetApplicationAIScore(ctx context.Context, id uuid.UUID, score float64) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE applications SET ai_score = $1, updated_at = NOW() WHERE id = $2`,
		score, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set application AI score: %w", err)
	}
	return nil
}

// ListApplicationsByStudent lists a student's applications with jobs joined,
// newest first.
func (db *DB) ListApplicationsByStudent(ctx context.Context, studentID uuid.UUID) ([]Application, error) {
	return db.listApplications(ctx,
		`SELECT a.id, a.job_id, a.student_id, a.status, a.ai_score, a.created_at, a.updated_at,
		        j.id, j.recruiter_id, j.title, j.description, j.skills, j.experience, j.created_at
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.student_id = $1
		 ORDER BY a.created_at DESC`,
		studentID)
}

// ListApplicationsByRecruiter lists applications across all of a recruiter's
// jobs, newest first.
func (db *DB) ListApplicationsByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]Application, error) {
	return db.listApplications(ctx,
		`SELECT a.id, a.job_id, a.student_id, a.status, a.ai_score, a.created_at, a.updated_at,
		        j.id, j.recruiter_id, j.title, j.description, j.skills, j.experience, j.created_at
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE j.recruiter_id = $1
		 ORDER BY a.created_at DESC`,
		recruiterID)
}

func (db *DB) listApplications(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var a Application
		var j Job
		if err := rows.Scan(&a.ID, &a.JobID, &a.StudentID, &a.Status, &a.AIScore, &a.CreatedAt, &a.UpdatedAt,
			&j.ID, &j.RecruiterID, &j.Title, &j.Description, &j.Skills, &j.Experience, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		a.Job = &j
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	return apps, nil
}

// ListAppliedJobIDs returns the ids of all jobs the student has applied to.
// Used by the recommender to exclude already-applied jobs.
func (db *DB) ListAppliedJobIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT job_id FROM applications WHERE student_id = $1`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied job ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan job id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job ids: %w", err)
	}
	return ids, nil
}
