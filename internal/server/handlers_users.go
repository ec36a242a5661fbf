package server

import (
	"net/http"

	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/types"
)

// handleGetMe returns the authenticated user's account.
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}

// handleUpdateRole sets the account role chosen during onboarding.
func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(w, r)
	if user == nil {
		return
	}

	var req types.UpdateRoleRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	role := db.UserRole(req.Role)
	if err := s.store.UpdateUserRole(r.Context(), user.ID, role); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	user.Role = role
	s.jsonResponse(w, http.StatusOK, user)
}
