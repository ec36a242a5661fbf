package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/server/middleware"
)

// currentUser resolves the authenticated token subject to a local user.
// Returns nil after writing the response if resolution fails; the token
// may reference a user whose webhook has not arrived yet.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) *db.User {
	externalID, err := middleware.GetExternalID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil
	}

	user, err := s.store.GetUserByExternalID(r.Context(), externalID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil
	}
	if user == nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unknown user")
		return nil
	}
	return user
}

// requireRole enforces that user holds the given role, writing 403 otherwise.
func (s *Server) requireRole(w http.ResponseWriter, user *db.User, role db.UserRole) bool {
	if user.Role != role {
		s.errorResponse(w, http.StatusForbidden, fmt.Sprintf("This action requires the %s role", role))
		return false
	}
	return true
}

// decodeJSON decodes the request body into dst, writing 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}
