package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/oracle"
)

// fakeStore is an in-memory stand-in for *db.DB covering every store
// interface the server and its services consume.
type fakeStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*db.User
	profiles     map[uuid.UUID]*db.StudentProfile
	jobs         map[uuid.UUID]*db.Job
	applications map[uuid.UUID]*db.Application
	interviews   map[uuid.UUID]*db.Interview
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[uuid.UUID]*db.User),
		profiles:     make(map[uuid.UUID]*db.StudentProfile),
		jobs:         make(map[uuid.UUID]*db.Job),
		applications: make(map[uuid.UUID]*db.Application),
		interviews:   make(map[uuid.UUID]*db.Interview),
	}
}

func (f *fakeStore) addUser(role db.UserRole) *db.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &db.User{
		ID:         uuid.New(),
		ExternalID: "user_" + uuid.NewString()[:8],
		Email:      uuid.NewString()[:8] + "@example.edu",
		Role:       role,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) addJob(recruiterID uuid.UUID, title string, skills []string) *db.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	j := &db.Job{
		ID:          uuid.New(),
		RecruiterID: recruiterID,
		Title:       title,
		Description: "Work on " + title,
		Skills:      skills,
		Experience:  "0-1 years",
		CreatedAt:   time.Now(),
	}
	f.jobs[j.ID] = j
	return j
}

func (f *fakeStore) addProfile(userID uuid.UUID, parsed *oracle.ParsedResume) *db.StudentProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &db.StudentProfile{
		ID:           uuid.New(),
		UserID:       userID,
		ResumeURL:    "/resumes/test.pdf",
		ParsedResume: parsed,
	}
	if parsed != nil {
		p.Skills = parsed.Skills
	}
	f.profiles[userID] = p
	return p
}

// Users

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeStore) GetUserByExternalID(_ context.Context, externalID string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ExternalID == externalID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdateUserRole(_ context.Context, id uuid.UUID, role db.UserRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.Role = role
	return nil
}

func (f *fakeStore) UpsertUserByExternalID(_ context.Context, externalID, email string, name, avatarURL *string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ExternalID == externalID {
			u.Email = email
			u.Name = name
			u.AvatarURL = avatarURL
			return u.ID, nil
		}
	}
	u := &db.User{
		ID:         uuid.New(),
		ExternalID: externalID,
		Email:      email,
		Name:       name,
		AvatarURL:  avatarURL,
		Role:       db.RoleStudent,
	}
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeStore) DeleteUserByExternalID(_ context.Context, externalID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.ExternalID == externalID {
			delete(f.users, id)
			return true, nil
		}
	}
	return false, nil
}

// Profiles

func (f *fakeStore) GetStudentProfile(_ context.Context, userID uuid.UUID) (*db.StudentProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[userID], nil
}

func (f *fakeStore) UpsertStudentProfile(_ context.Context, userID uuid.UUID, resumeURL string, skills []string, parsed *oracle.ParsedResume) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		p = &db.StudentProfile{ID: uuid.New(), UserID: userID}
		f.profiles[userID] = p
	}
	p.ResumeURL = resumeURL
	p.Skills = skills
	p.ParsedResume = parsed
	return p.ID, nil
}

// Jobs

func (f *fakeStore) CreateJob(_ context.Context, recruiterID uuid.UUID, title, description string, skills []string, experience string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j := &db.Job{
		ID:          uuid.New(),
		RecruiterID: recruiterID,
		Title:       title,
		Description: description,
		Skills:      skills,
		Experience:  experience,
		CreatedAt:   time.Now(),
	}
	f.jobs[j.ID] = j
	return j.ID, nil
}

func (f *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id], nil
}

func (f *fakeStore) ListJobs(_ context.Context) ([]db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var jobs []db.Job
	for _, j := range f.jobs {
		jobs = append(jobs, *j)
	}
	return jobs, nil
}

func (f *fakeStore) ListJobsByRecruiter(_ context.Context, recruiterID uuid.UUID) ([]db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var jobs []db.Job
	for _, j := range f.jobs {
		if j.RecruiterID == recruiterID {
			jobs = append(jobs, *j)
		}
	}
	return jobs, nil
}

// Applications

func (f *fakeStore) CreateApplication(_ context.Context, studentID, jobID uuid.UUID, aiScore *float64) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.applications {
		if a.StudentID == studentID && a.JobID == jobID {
			return uuid.Nil, db.ErrDuplicate
		}
	}
	a := &db.Application{
		ID:        uuid.New(),
		JobID:     jobID,
		StudentID: studentID,
		Status:    db.StatusPending,
		AIScore:   aiScore,
		CreatedAt: time.Now(),
	}
	f.applications[a.ID] = a
	return a.ID, nil
}

func (f *fakeStore) GetApplication(_ context.Context, id uuid.UUID) (*db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[id]
	if !ok {
		return nil, nil
	}
	withJob := *a
	withJob.Job = f.jobs[a.JobID]
	return &withJob, nil
}

func (f *fakeStore) GetApplicationByStudentAndJob(_ context.Context, studentID, jobID uuid.UUID) (*db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.applications {
		if a.StudentID == studentID && a.JobID == jobID {
			withJob := *a
			withJob.Job = f.jobs[a.JobID]
			return &withJob, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdateApplicationStatus(_ context.Context, id uuid.UUID, status db.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[id]
	if !ok {
		return fmt.Errorf("application not found")
	}
	a.Status = status
	return nil
}

func (f *fakeStore) SetApplicationAIScore(_ context.Context, id uuid.UUID, score float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[id]
	if !ok {
		return fmt.Errorf("application not found")
	}
	a.AIScore = &score
	return nil
}

func (f *fakeStore) ListApplicationsByStudent(_ context.Context, studentID uuid.UUID) ([]db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var apps []db.Application
	for _, a := range f.applications {
		if a.StudentID == studentID {
			withJob := *a
			withJob.Job = f.jobs[a.JobID]
			apps = append(apps, withJob)
		}
	}
	return apps, nil
}

func (f *fakeStore) ListApplicationsByRecruiter(_ context.Context, recruiterID uuid.UUID) ([]db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var apps []db.Application
	for _, a := range f.applications {
		job := f.jobs[a.JobID]
		if job != nil && job.RecruiterID == recruiterID {
			withJob := *a
			withJob.Job = job
			apps = append(apps, withJob)
		}
	}
	return apps, nil
}

func (f *fakeStore) ListAppliedJobIDs(_ context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uuid.UUID
	for _, a := range f.applications {
		if a.StudentID == studentID {
			ids = append(ids, a.JobID)
		}
	}
	return ids, nil
}

// Interviews

func (f *fakeStore) CreateInterview(_ context.Context, studentID, jobID uuid.UUID, questions []db.InterviewQuestion, applicationID *uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, iv := range f.interviews {
		if iv.StudentID == studentID && iv.JobID == jobID {
			return uuid.Nil, db.ErrDuplicate
		}
	}
	iv := &db.Interview{
		ID:            uuid.New(),
		StudentID:     studentID,
		JobID:         jobID,
		ApplicationID: applicationID,
		Questions:     questions,
		Answers:       make([]*db.InterviewAnswer, 0),
		CreatedAt:     time.Now(),
	}
	f.interviews[iv.ID] = iv
	return iv.ID, nil
}

func (f *fakeStore) GetInterview(_ context.Context, id uuid.UUID) (*db.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.interviews[id]
	if !ok {
		return nil, nil
	}
	cp := *iv
	cp.Answers = append([]*db.InterviewAnswer(nil), iv.Answers...)
	return &cp, nil
}

func (f *fakeStore) GetInterviewByStudentAndJob(_ context.Context, studentID, jobID uuid.UUID) (*db.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, iv := range f.interviews {
		if iv.StudentID == studentID && iv.JobID == jobID {
			cp := *iv
			cp.Answers = append([]*db.InterviewAnswer(nil), iv.Answers...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdateInterviewAnswers(_ context.Context, id uuid.UUID, answers []*db.InterviewAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.interviews[id]
	if !ok {
		return fmt.Errorf("interview not found")
	}
	iv.Answers = append([]*db.InterviewAnswer(nil), answers...)
	return nil
}

func (f *fakeStore) CompleteInterview(_ context.Context, id uuid.UUID, feedback *oracle.Feedback, score float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.interviews[id]
	if !ok {
		return fmt.Errorf("interview not found")
	}
	iv.Feedback = feedback
	iv.Score = &score
	return nil
}

func (f *fakeStore) LinkInterviewApplication(_ context.Context, id, applicationID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.interviews[id]
	if !ok {
		return fmt.Errorf("interview not found")
	}
	iv.ApplicationID = &applicationID
	return nil
}

// fakeOracle returns canned model responses.
type fakeOracle struct {
	parseResult *oracle.ParsedResume
	parseErr    error
	matchScore  float64
	matchErr    error
	evalScore   float64
}

func newFakeOracle() *fakeOracle {
	return &fakeOracle{
		parseResult: &oracle.ParsedResume{
			Name:   "Priya Raman",
			Skills: []string{"Go", "PostgreSQL"},
		},
		matchScore: 85,
		evalScore:  8,
	}
}

func (f *fakeOracle) ParseResume(_ context.Context, _ string) (*oracle.ParsedResume, error) {
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return f.parseResult, nil
}

func (f *fakeOracle) GenerateQuestions(_ context.Context, _ *oracle.ParsedResume, _ string) (*oracle.QuestionSet, error) {
	qs := &oracle.QuestionSet{}
	for i := 0; i < oracle.NumTechnical; i++ {
		qs.Technical = append(qs.Technical, fmt.Sprintf("technical question %d", i+1))
	}
	for i := 0; i < oracle.NumBehavioral; i++ {
		qs.Behavioral = append(qs.Behavioral, fmt.Sprintf("behavioral question %d", i+1))
	}
	return qs, nil
}

func (f *fakeOracle) EvaluateAnswer(_ context.Context, _, _ string, _ *oracle.ParsedResume, _ string) (*oracle.Evaluation, error) {
	return &oracle.Evaluation{Score: f.evalScore, Confidence: "high"}, nil
}

func (f *fakeOracle) MatchScore(_ context.Context, _ *oracle.ParsedResume, _ string, _ []string) (*oracle.MatchResult, error) {
	if f.matchErr != nil {
		return nil, f.matchErr
	}
	return &oracle.MatchResult{MatchScore: f.matchScore}, nil
}

func (f *fakeOracle) FinalFeedback(_ context.Context, _ []oracle.TranscriptEntry) (*oracle.Feedback, error) {
	return &oracle.Feedback{
		Hireability: "strong",
		Strengths:   []string{"solid fundamentals"},
		WeakAreas:   []string{"system design depth"},
		Roadmap:     "practice distributed systems questions",
	}, nil
}
