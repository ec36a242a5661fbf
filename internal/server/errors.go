// Package server provides the HTTP REST API for the campus hiring platform.
package server

import (
	"errors"
	"net/http"

	"github.com/meera/campushire/internal/db"
	"github.com/meera/campushire/internal/interview"
	"github.com/meera/campushire/internal/oracle"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	if errors.Is(err, db.ErrDuplicate) {
		return http.StatusConflict
	}

	var (
		notFound     *interview.NotFoundError
		unauthorized *interview.UnauthorizedError
		precondition *interview.PreconditionError
		validation   *interview.ValidationError
		completed    *interview.CompletedError

		parseErr    *oracle.ParseError
		genErr      *oracle.GenerationError
		evalErr     *oracle.EvaluationError
		matchErr    *oracle.MatchError
		feedbackErr *oracle.FeedbackError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unauthorized):
		return http.StatusForbidden
	case errors.As(err, &precondition):
		return http.StatusPreconditionFailed
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &completed):
		return http.StatusConflict
	case errors.As(err, &parseErr),
		errors.As(err, &genErr),
		errors.As(err, &evalErr),
		errors.As(err, &matchErr),
		errors.As(err, &feedbackErr):
		// The upstream model failed after retries
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
