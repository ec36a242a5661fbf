package server

import (
	"io"
	"log"
	"net/http"

	"github.com/meera/campushire/internal/identity"
)

// maxWebhookBytes caps webhook payloads at 1 MB.
const maxWebhookBytes = 1 << 20

// handleIdentityWebhook receives signed user lifecycle events from the
// identity provider and mirrors them into the local user table.
func (s *Server) handleIdentityWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read payload")
		return
	}

	err = s.verifier.Verify(
		r.Header.Get(identity.HeaderID),
		r.Header.Get(identity.HeaderTimestamp),
		r.Header.Get(identity.HeaderSignature),
		payload,
	)
	if err != nil {
		log.Printf("[webhooks] signature verification failed: %v", err)
		s.errorResponse(w, http.StatusUnauthorized, "Invalid webhook signature")
		return
	}

	event, err := identity.ParseEvent(payload)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid event payload: "+err.Error())
		return
	}

	if err := s.applier.Apply(r.Context(), event); err != nil {
		// Non-2xx makes the provider redeliver; Apply is idempotent
		s.errorResponse(w, http.StatusInternalServerError, "Failed to apply event")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"received": true})
}
