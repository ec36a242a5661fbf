package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/types"
)

// ListJobsResponse represents the response for listing jobs.
type ListJobsResponse struct {
	Jobs  []db.Job `json:"jobs"`
	Count int      `json:"count"`
}

// handleListJobs lists all open jobs.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if s.currentUser(w, r) == nil {
		return
	}

	jobs, err := s.store.ListJobs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{Jobs: jobs, Count: len(jobs)})
}

// handleCreateJob posts a new job opening.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	if !s.requireRole(w, user, db.RoleRecruiter) {
		return
	}

	var req types.CreateJobRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jobID, err := s.store.CreateJob(r.Context(), user.ID, req.Title, req.Description, req.Skills, req.Experience)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleGetJob retrieves a job by its ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	if s.currentUser(w, r) == nil {
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleListRecruiterJobs lists jobs posted by the authenticated recruiter.
func (s *Server) handleListRecruiterJobs(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	if !s.requireRole(w, user, db.RoleRecruiter) {
		return
	}

	jobs, err := s.store.ListJobsByRecruiter(r.Context(), user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{Jobs: jobs, Count: len(jobs)})
}
