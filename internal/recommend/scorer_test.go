package recommend

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/oracle"
)

type fakeStore struct {
	profile *db.StudentProfile
	jobs    []db.Job
	applied []uuid.UUID
}

func (s *fakeStore) GetStudentProfile(context.Context, uuid.UUID) (*db.StudentProfile, error) {
	return s.profile, nil
}

func (s *fakeStore) ListJobs(context.Context) ([]db.Job, error) {
	return s.jobs, nil
}

func (s *fakeStore) ListAppliedJobIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return s.applied, nil
}

// scoreOracle scores jobs by a fixed table keyed on job description and
// fails jobs whose description contains "broken".
type scoreOracle struct {
	mu     sync.Mutex
	scores map[string]float64
	calls  int
}

func (o *scoreOracle) MatchScore(_ context.Context, _ *oracle.ParsedResume, jobDescription string, _ []string) (*oracle.MatchResult, error) {
	o.mu.Lock()
	o.calls++
	o.mu.Unlock()
	if strings.Contains(jobDescription, "broken") {
		return nil, &oracle.MatchError{Cause: context.DeadlineExceeded}
	}
	return &oracle.MatchResult{MatchScore: o.scores[jobDescription]}, nil
}

func (o *scoreOracle) ParseResume(context.Context, string) (*oracle.ParsedResume, error) {
	return nil, nil
}
func (o *scoreOracle) GenerateQuestions(context.Context, *oracle.ParsedResume, string) (*oracle.QuestionSet, error) {
	return nil, nil
}
func (o *scoreOracle) EvaluateAnswer(context.Context, string, string, *oracle.ParsedResume, string) (*oracle.Evaluation, error) {
	return nil, nil
}
func (o *scoreOracle) FinalFeedback(context.Context, []oracle.TranscriptEntry) (*oracle.Feedback, error) {
	return nil, nil
}

func makeJob(description string) db.Job {
	return db.Job{ID: uuid.New(), RecruiterID: uuid.New(), Title: description, Description: description}
}

func TestRecommendRanksAndTruncates(t *testing.T) {
	profile := &db.StudentProfile{ParsedResume: &oracle.ParsedResume{Skills: []string{"Go"}}}
	scores := map[string]float64{}
	var jobs []db.Job
	// Eight scoreable jobs with distinct scores 10, 20, ... 80.
	for i := 1; i <= 8; i++ {
		j := makeJob("job-" + string(rune('a'+i-1)))
		scores[j.Description] = float64(i * 10)
		jobs = append(jobs, j)
	}

	store := &fakeStore{profile: profile, jobs: jobs}
	scorer := NewScorer(store, &scoreOracle{scores: scores})

	ranked, err := scorer.Recommend(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, ranked, DefaultTopN)

	assert.Equal(t, 80.0, ranked[0].MatchScore)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].MatchScore, ranked[i].MatchScore)
	}
	// The two lowest-scoring jobs fall off the end.
	assert.Equal(t, 30.0, ranked[len(ranked)-1].MatchScore)
}

func TestRecommendExcludesAppliedJobs(t *testing.T) {
	profile := &db.StudentProfile{ParsedResume: &oracle.ParsedResume{Skills: []string{"Go"}}}
	applied := makeJob("applied-job")
	open := makeJob("open-job")

	store := &fakeStore{
		profile: profile,
		jobs:    []db.Job{applied, open},
		applied: []uuid.UUID{applied.ID},
	}
	orc := &scoreOracle{scores: map[string]float64{"open-job": 60, "applied-job": 95}}
	scorer := NewScorer(store, orc)

	ranked, err := scorer.Recommend(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, open.ID, ranked[0].ID)
	assert.Equal(t, 1, orc.calls, "applied jobs are not scored at all")
}

func TestRecommendSkipsFailedScores(t *testing.T) {
	profile := &db.StudentProfile{ParsedResume: &oracle.ParsedResume{Skills: []string{"Go"}}}
	good := makeJob("good-job")
	bad := makeJob("broken-job")

	store := &fakeStore{profile: profile, jobs: []db.Job{good, bad}}
	scorer := NewScorer(store, &scoreOracle{scores: map[string]float64{"good-job": 70}})

	ranked, err := scorer.Recommend(context.Background(), uuid.New())
	require.NoError(t, err, "a per-job failure never fails the batch")
	require.Len(t, ranked, 1)
	assert.Equal(t, good.ID, ranked[0].ID)
}

func TestRecommendWithoutResume(t *testing.T) {
	store := &fakeStore{jobs: []db.Job{makeJob("some-job")}}
	orc := &scoreOracle{}
	scorer := NewScorer(store, orc)

	ranked, err := scorer.Recommend(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, ranked)
	assert.Equal(t, 0, orc.calls)
}
