package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meera/campushire/internal/oracle"
)

// CreateInterview persists a new interview with an empty answer list.
// Returns ErrDuplicate when an interview already exists for the
// (student, job) pair; the caller re-reads the existing row in that case.
func (db *DB) CreateInterview(ctx context.Context, studentID, jobID uuid.UUID, questions []InterviewQuestion, applicationID *uuid.UUID) (uuid.UUID, error) {
	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal questions: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO interviews (student_id, job_id, application_id, questions, answers)
		 VALUES ($1, $2, $3, $4, '[]')
		 RETURNING id`,
		studentID, jobID, applicationID, questionsJSON,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrDuplicate
		}
		return uuid.Nil, fmt.Errorf("failed to create interview: %w", err)
	}
	return id, nil
}

// GetInterview retrieves an interview by id. Returns nil when absent.
func (db *DB) GetInterview(ctx context.Context, id uuid.UUID) (*Interview, error) {
	return db.getInterview(ctx, "id = $1", id)
}

// GetInterviewByStudentAndJob retrieves the interview for a (student, job)
// pair. Returns nil when absent.
func (db *DB) GetInterviewByStudentAndJob(ctx context.Context, studentID, jobID uuid.UUID) (*Interview, error) {
	return db.getInterview(ctx, "student_id = $1 AND job_id = $2", studentID, jobID)
}

func (db *DB) getInterview(ctx context.Context, where string, args ...any) (*Interview, error) {
	var iv Interview
	var questionsJSON, answersJSON, feedbackJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, student_id, job_id, application_id, questions, answers, feedback, score, created_at, updated_at
		 FROM interviews WHERE `+where,
		args...,
	).Scan(&iv.ID, &iv.StudentID, &iv.JobID, &iv.ApplicationID, &questionsJSON, &answersJSON,
		&feedbackJSON, &iv.Score, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}

	if err := json.Unmarshal(questionsJSON, &iv.Questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}
	if err := json.Unmarshal(answersJSON, &iv.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	if feedbackJSON != nil {
		if err := json.Unmarshal(feedbackJSON, &iv.Feedback); err != nil {
			return nil, fmt.Errorf("failed to unmarshal feedback: %w", err)
		}
	}
	return &iv, nil
}

// UpdateInterviewAnswers replaces the answer list of an interview.
func (db *DB) UpdateInterviewAnswers(ctx context.Context, id uuid.UUID, answers []*InterviewAnswer) error {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE interviews SET answers = $1, updated_at = NOW() WHERE id = $2`,
		answersJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update interview answers: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interview %s not found", id)
	}
	return nil
}

// CompleteInterview writes the aggregate feedback and score. Written once,
// when the final answer lands.
func (db *DB) CompleteInterview(ctx context.Context, id uuid.UUID, feedback *oracle.Feedback, score float64) error {
	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE interviews SET feedback = $1, score = $2, updated_at = NOW() WHERE id = $3`,
		feedbackJSON, score, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete interview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interview %s not found", id)
	}
	return nil
}

// LinkInterviewApplication attaches an application to an interview.
func (db *DB) LinkInterviewApplication(ctx context.Context, id, applicationID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE interviews SET application_id = $1, updated_at = NOW() WHERE id = $2`,
		applicationID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to link interview application: %w", err)
	}
	return nil
}
