// Package recommend ranks open jobs for a student by oracle match score.
package recommend

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/oracle"
)

// Store is the persistence surface the scorer needs.
type Store interface {
	GetStudentProfile(ctx context.Context, userID uuid.UUID) (*db.StudentProfile, error)
	ListJobs(ctx context.Context) ([]db.Job, error)
	ListAppliedJobIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
}

// Defaults for the scorer.
const (
	// DefaultTopN is the length cap on the ranked list.
	DefaultTopN = 6
	// DefaultMaxConcurrent bounds parallel oracle calls to respect the
	// external model's rate limits.
	DefaultMaxConcurrent = 4
)

// RankedJob is a job with its match score attached.
type RankedJob struct {
	db.Job
	MatchScore    float64  `json:"match_score"`
	MissingSkills []string `json:"missing_skills,omitempty"`
}

// Scorer produces ranked job recommendations for a student.
type Scorer struct {
	store         Store
	oracle        oracle.Oracle
	topN          int
	maxConcurrent int
}

// NewScorer creates a scorer with default limits.
func NewScorer(store Store, o oracle.Oracle) *Scorer {
	return &Scorer{
		store:         store,
		oracle:        o,
		topN:          DefaultTopN,
		maxConcurrent: DefaultMaxConcurrent,
	}
}

// Recommend scores every job the student has not applied to and returns the
// top matches, sorted descending by score. Per-job scoring calls run
// concurrently under a bounded limit; a failed score drops that one job from
// the list rather than blanking the whole recommendation set. A student
// without a parsed resume gets an empty list.
func (s *Scorer) Recommend(ctx context.Context, studentID uuid.UUID) ([]RankedJob, error) {
	profile, err := s.store.GetStudentProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.ParsedResume == nil {
		return nil, nil
	}

	jobs, err := s.store.ListJobs(ctx)
	if err != nil {
		return nil, err
	}

	appliedIDs, err := s.store.ListAppliedJobIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}
	applied := make(map[uuid.UUID]bool, len(appliedIDs))
	for _, id := range appliedIDs {
		applied[id] = true
	}

	var (
		mu     sync.Mutex
		ranked []RankedJob
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for _, job := range jobs {
		if applied[job.ID] {
			continue
		}
		g.Go(func() error {
			match, err := s.oracle.MatchScore(gCtx, profile.ParsedResume, job.Description, job.Skills)
			if err != nil {
				// Skippable per job: one bad score must not blank the list.
				log.Printf("[recommend] match scoring failed for job %s: %v", job.ID, err)
				return nil
			}
			mu.Lock()
			ranked = append(ranked, RankedJob{
				Job:           job,
				MatchScore:    match.MatchScore,
				MissingSkills: match.MissingSkills,
			})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})
	if len(ranked) > s.topN {
		ranked = ranked[:s.topN]
	}
	return ranked, nil
}
