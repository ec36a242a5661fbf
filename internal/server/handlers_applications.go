package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/types"
)

// ListApplicationsResponse represents the response for listing applications.
type ListApplicationsResponse struct {
	Applications []db.Application `json:"applications"`
	Count        int              `json:"count"`
}

// handleCreateApplication submits an application for the authenticated
// student. The AI score starts from the resume-to-job match when a parsed
// resume is on file; a completed interview for the same job overrides it.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	if !s.requireRole(w, user, db.RoleStudent) {
		return
	}

	var req types.CreateApplicationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	job, err := s.store.GetJob(ctx, req.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	// Best effort: scoring failures never block the application itself
	var aiScore *float64
	profile, err := s.store.GetStudentProfile(ctx, user.ID)
	if err == nil && profile != nil && profile.ParsedResume != nil {
		if match, merr := s.oracle.MatchScore(ctx, profile.ParsedResume, job.Description, job.Skills); merr != nil {
			log.Printf("[applications] match scoring failed for job %s: %v", job.ID, merr)
		} else {
			score := match.MatchScore
			aiScore = &score
		}
	}

	appID, err := s.store.CreateApplication(ctx, user.ID, req.JobID, aiScore)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			s.errorResponse(w, http.StatusConflict, "You have already applied to this job")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.linkExistingInterview(r, user.ID, req.JobID, appID)

	app, err := s.store.GetApplication(ctx, appID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, app)
}

// linkExistingInterview attaches a pre-existing interview for the same job
// to the new application. A completed interview also carries its scaled
// score over, replacing the resume match estimate. Failures are logged
// only; the application already exists.
func (s *Server) linkExistingInterview(r *http.Request, studentID, jobID, appID uuid.UUID) {
	ctx := r.Context()

	iv, err := s.store.GetInterviewByStudentAndJob(ctx, studentID, jobID)
	if err != nil {
		log.Printf("[applications] interview lookup failed: %v", err)
		return
	}
	if iv == nil {
		return
	}

	if iv.ApplicationID == nil {
		if err := s.store.LinkInterviewApplication(ctx, iv.ID, appID); err != nil {
			log.Printf("[applications] failed to link interview %s: %v", iv.ID, err)
		}
	}

	if iv.Score != nil {
		scaled := clampScore(*iv.Score * 10)
		if err := s.store.SetApplicationAIScore(ctx, appID, scaled); err != nil {
			log.Printf("[applications] failed to carry interview score to application %s: %v", appID, err)
		}
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// handleUpdateApplicationStatus lets the recruiter who owns the job move
// an application through the review pipeline.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	if !s.requireRole(w, user, db.RoleRecruiter) {
		return
	}

	appID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.UpdateApplicationStatusRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	app, err := s.store.GetApplication(ctx, appID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}
	if app.Job == nil || app.Job.RecruiterID != user.ID {
		s.errorResponse(w, http.StatusForbidden, "You do not own the job for this application")
		return
	}

	status := db.ApplicationStatus(req.Status)
	if err := s.store.UpdateApplicationStatus(ctx, appID, status); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	app.Status = status
	s.jsonResponse(w, http.StatusOK, app)
}

// handleListMyApplications lists the authenticated student's applications.
func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	if !s.requireRole(w, user, db.RoleStudent) {
		return
	}

	apps, err := s.store.ListApplicationsByStudent(r.Context(), user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListApplicationsResponse{Applications: apps, Count: len(apps)})
}

// handleListRecruiterApplications lists applications across all jobs the
// authenticated recruiter has posted, newest first.
func (s *Server) handleListRecruiterApplications(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	if !s.requireRole(w, user, db.RoleRecruiter) {
		return
	}

	apps, err := s.store.ListApplicationsByRecruiter(r.Context(), user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListApplicationsResponse{Applications: apps, Count: len(apps)})
}
