package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/recommend"
	"github.com/meera/campushire/internal/resume"
)

// maxResumeBytes caps resume uploads at 10 MB.
const maxResumeBytes = 10 << 20

// handleUploadResume accepts a multipart resume upload, parses it through
// the model and stores the student profile.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	if !s.requireRole(w, user, db.RoleStudent) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxResumeBytes)
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing resume file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read resume file: "+err.Error())
		return
	}

	contentType := header.Header.Get("Content-Type")
	profile, err := s.resumes.Upload(r.Context(), user.ID, header.Filename, contentType, data)
	if err != nil {
		var unsupported *resume.UnsupportedTypeError
		if errors.As(err, &unsupported) {
			s.errorResponse(w, http.StatusUnsupportedMediaType, unsupported.Error())
			return
		}
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, profile)
}

// handleGetProfile returns the authenticated student's profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	if !s.requireRole(w, user, db.RoleStudent) {
		return
	}

	profile, err := s.store.GetStudentProfile(r.Context(), user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "No resume on file")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// DashboardResponse bundles everything the student landing page needs.
type DashboardResponse struct {
	Profile         *db.StudentProfile    `json:"profile"`
	Applications    []db.Application      `json:"applications"`
	Recommendations []recommend.RankedJob `json:"recommendations"`
}

// handleDashboard returns the student's profile, applications and job
// recommendations in one response.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	if !s.requireRole(w, user, db.RoleStudent) {
		return
	}

	ctx := r.Context()
	profile, err := s.store.GetStudentProfile(ctx, user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	apps, err := s.store.ListApplicationsByStudent(ctx, user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	ranked, err := s.recommender.Recommend(ctx, user.ID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	if apps == nil {
		apps = []db.Application{}
	}
	if ranked == nil {
		ranked = []recommend.RankedJob{}
	}

	s.jsonResponse(w, http.StatusOK, DashboardResponse{
		Profile:         profile,
		Applications:    apps,
		Recommendations: ranked,
	})
}

// RecommendationsResponse represents the ranked job list for a student.
type RecommendationsResponse struct {
	Jobs  []recommend.RankedJob `json:"jobs"`
	Count int                   `json:"count"`
}

// handleRecommendations returns AI-ranked job recommendations for the student.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	if !s.requireRole(w, user, db.RoleStudent) {
		return
	}

	ranked, err := s.recommender.Recommend(r.Context(), user.ID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if ranked == nil {
		ranked = []recommend.RankedJob{}
	}

	s.jsonResponse(w, http.StatusOK, RecommendationsResponse{Jobs: ranked, Count: len(ranked)})
}
