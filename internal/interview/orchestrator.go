// Package interview implements the interview orchestrator: a state machine
// advancing one interview per (student, job) pair through question
// generation, sequential answer evaluation, and final feedback synthesis.
package interview

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/oracle"
)

// Store is the persistence surface the orchestrator needs. *db.DB satisfies
// it; tests substitute an in-memory fake.
type Store interface {
	GetStudentProfile(ctx context.Context, userID uuid.UUID) (*db.StudentProfile, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)

	GetInterview(ctx context.Context, id uuid.UUID) (*db.Interview, error)
	GetInterviewByStudentAndJob(ctx context.Context, studentID, jobID uuid.UUID) (*db.Interview, error)
	CreateInterview(ctx context.Context, studentID, jobID uuid.UUID, questions []db.InterviewQuestion, applicationID *uuid.UUID) (uuid.UUID, error)
	UpdateInterviewAnswers(ctx context.Context, id uuid.UUID, answers []*db.InterviewAnswer) error
	CompleteInterview(ctx context.Context, id uuid.UUID, feedback *oracle.Feedback, score float64) error

	GetApplicationByStudentAndJob(ctx context.Context, studentID, jobID uuid.UUID) (*db.Application, error)
	SetApplicationAIScore(ctx context.Context, id uuid.UUID, score float64) error
}

// Orchestrator drives interviews through NOT_STARTED -> IN_PROGRESS -> COMPLETE.
// All mutations of one interview are serialized through a keyed mutex.
type Orchestrator struct {
	store  Store
	oracle oracle.Oracle
	locks  *keyedMutex
}

// NewOrchestrator creates an orchestrator with injected store and oracle.
func NewOrchestrator(store Store, o oracle.Oracle) *Orchestrator {
	return &Orchestrator{
		store:  store,
		oracle: o,
		locks:  newKeyedMutex(),
	}
}

// Start looks up or creates the interview for a (student, job) pair.
// Idempotent: a second call returns the existing interview and its progress
// instead of regenerating questions, which is an expensive non-deterministic
// oracle call. Requires a parsed resume on file.
func (o *Orchestrator) Start(ctx context.Context, studentID, jobID uuid.UUID) (*db.Interview, error) {
	unlock := o.locks.Lock(pairKey(studentID, jobID))
	defer unlock()

	existing, err := o.store.GetInterviewByStudentAndJob(ctx, studentID, jobID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	profile, err := o.store.GetStudentProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.ParsedResume == nil {
		return nil, &PreconditionError{Reason: "no parsed resume on file; upload a resume first"}
	}

	job, err := o.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &NotFoundError{Kind: "job", ID: jobID.String()}
	}

	set, err := o.oracle.GenerateQuestions(ctx, profile.ParsedResume, job.Description)
	if err != nil {
		return nil, err
	}

	questions := make([]db.InterviewQuestion, 0, len(set.Technical)+len(set.Behavioral))
	for _, q := range set.Technical {
		questions = append(questions, db.InterviewQuestion{Type: db.QuestionTechnical, Question: q})
	}
	for _, q := range set.Behavioral {
		questions = append(questions, db.InterviewQuestion{Type: db.QuestionBehavioral, Question: q})
	}

	// Link the application up front when one already exists for the pair.
	var applicationID *uuid.UUID
	application, err := o.store.GetApplicationByStudentAndJob(ctx, studentID, jobID)
	if err != nil {
		return nil, err
	}
	if application != nil {
		applicationID = &application.ID
	}

	id, err := o.store.CreateInterview(ctx, studentID, jobID, questions, applicationID)
	if err != nil {
		// A concurrent start won the race; the unique constraint on
		// (student_id, job_id) makes this safe to re-read.
		if errors.Is(err, db.ErrDuplicate) {
			return o.store.GetInterviewByStudentAndJob(ctx, studentID, jobID)
		}
		return nil, err
	}

	return o.store.GetInterview(ctx, id)
}

// SubmitAnswer records and evaluates the answer for one question index.
// Re-submission at an already-answered index overwrites the prior record;
// the UI may retry. When the final index is filled the interview transitions
// to COMPLETE: aggregate score and feedback are computed exactly once, and a
// linked application receives the aggregate scaled to the 0-100 scale.
func (o *Orchestrator) SubmitAnswer(ctx context.Context, studentID, interviewID uuid.UUID, questionIndex int, answerText string) (*oracle.Evaluation, error) {
	if answerText == "" {
		return nil, &ValidationError{Message: "answer text is required"}
	}

	unlock := o.locks.Lock(interviewID.String())
	defer unlock()

	iv, err := o.store.GetInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, &NotFoundError{Kind: "interview", ID: interviewID.String()}
	}
	if iv.StudentID != studentID {
		return nil, &UnauthorizedError{}
	}
	if iv.Feedback != nil {
		return nil, &CompletedError{}
	}
	if questionIndex < 0 || questionIndex >= len(iv.Questions) {
		return nil, &ValidationError{Message: fmt.Sprintf("question index %d out of range [0,%d)", questionIndex, len(iv.Questions))}
	}

	profile, err := o.store.GetStudentProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	resume := &oracle.ParsedResume{}
	if profile != nil && profile.ParsedResume != nil {
		resume = profile.ParsedResume
	}

	job, err := o.store.GetJob(ctx, iv.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &NotFoundError{Kind: "job", ID: iv.JobID.String()}
	}

	question := iv.Questions[questionIndex]

	// Evaluation failures are fatal to the request. A silently-zero score
	// would corrupt the aggregate.
	evaluation, err := o.oracle.EvaluateAnswer(ctx, question.Question, answerText, resume, job.Description)
	if err != nil {
		return nil, err
	}

	answers := iv.Answers
	if len(answers) < len(iv.Questions) {
		grown := make([]*db.InterviewAnswer, len(iv.Questions))
		copy(grown, answers)
		answers = grown
	}
	answers[questionIndex] = &db.InterviewAnswer{
		Question:   question.Question,
		Answer:     answerText,
		Evaluation: *evaluation,
	}

	if err := o.store.UpdateInterviewAnswers(ctx, interviewID, answers); err != nil {
		return nil, err
	}
	iv.Answers = answers

	if iv.Complete() {
		if err := o.finalize(ctx, iv); err != nil {
			return nil, err
		}
	}

	return evaluation, nil
}

// finalize computes the aggregate score, synthesizes feedback, and
// propagates the scaled score to a linked application. Runs under the
// caller's interview lock.
func (o *Orchestrator) finalize(ctx context.Context, iv *db.Interview) error {
	transcript := make([]oracle.TranscriptEntry, len(iv.Answers))
	var sum float64
	for i, a := range iv.Answers {
		transcript[i] = oracle.TranscriptEntry{
			Question:   a.Question,
			Type:       iv.Questions[i].Type,
			Answer:     a.Answer,
			Evaluation: a.Evaluation,
		}
		sum += a.Evaluation.Score
	}
	score := sum / float64(len(iv.Answers))

	feedback, err := o.oracle.FinalFeedback(ctx, transcript)
	if err != nil {
		return err
	}

	if err := o.store.CompleteInterview(ctx, iv.ID, feedback, score); err != nil {
		return err
	}
	iv.Feedback = feedback
	iv.Score = &score

	application, err := o.store.GetApplicationByStudentAndJob(ctx, iv.StudentID, iv.JobID)
	if err != nil {
		return err
	}
	if application != nil {
		// Evaluation scores are 0-10; application scores are 0-100.
		scaled := clamp(score*10, 0, 100)
		if err := o.store.SetApplicationAIScore(ctx, application.ID, scaled); err != nil {
			// The interview itself completed; losing the application score
			// copy is recoverable and must not fail the submission.
			log.Printf("[interview] failed to propagate score to application %s: %v", application.ID, err)
		}
	}

	return nil
}

// Feedback returns an interview with its aggregate feedback for an
// authorized caller: the student who took it, or a recruiter who owns the
// job it was taken for.
func (o *Orchestrator) Feedback(ctx context.Context, caller *db.User, interviewID uuid.UUID) (*db.Interview, error) {
	iv, err := o.store.GetInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, &NotFoundError{Kind: "interview", ID: interviewID.String()}
	}

	switch caller.Role {
	case db.RoleStudent:
		if iv.StudentID != caller.ID {
			return nil, &UnauthorizedError{}
		}
	case db.RoleRecruiter:
		job, err := o.store.GetJob(ctx, iv.JobID)
		if err != nil {
			return nil, err
		}
		if job == nil || job.RecruiterID != caller.ID {
			return nil, &UnauthorizedError{}
		}
	default:
		return nil, &UnauthorizedError{}
	}

	return iv, nil
}

func pairKey(studentID, jobID uuid.UUID) string {
	return studentID.String() + "/" + jobID.String()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
