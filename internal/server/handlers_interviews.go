package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/oracle"
	"github.com/meera/campushire/internal/types"
)

// handleStartInterview starts (or returns an existing) simulated interview
// for the authenticated student and the requested job.
func (s *Server) handleStartInterview(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	if !s.requireRole(w, user, db.RoleStudent) {
		return
	}

	var req types.StartInterviewRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	iv, err := s.interviews.Start(r.Context(), user.ID, req.JobID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, iv)
}

// SubmitAnswerResponse carries the per-answer evaluation and whether the
// submission completed the interview.
type SubmitAnswerResponse struct {
	Evaluation *oracle.Evaluation `json:"evaluation"`
	Completed  bool               `json:"completed"`
}

// handleSubmitAnswer records an answer for one question of an interview.
func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	if !s.requireRole(w, user, db.RoleStudent) {
		return
	}

	interviewID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid interview ID")
		return
	}

	var req types.SubmitAnswerRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	eval, err := s.interviews.SubmitAnswer(r.Context(), user.ID, interviewID, *req.QuestionIndex, req.Answer)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	// Re-read to report completion; the final submission triggers
	// feedback synthesis inside the orchestrator.
	iv, err := s.interviews.Feedback(r.Context(), user, interviewID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SubmitAnswerResponse{
		Evaluation: eval,
		Completed:  iv.Feedback != nil,
	})
}

// handleGetInterview returns the interview transcript, and once complete,
// the synthesized feedback and score. Students see their own interviews;
// recruiters see interviews for jobs they posted.
func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}

	interviewID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid interview ID")
		return
	}

	iv, err := s.interviews.Feedback(r.Context(), user, interviewID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, iv)
}
