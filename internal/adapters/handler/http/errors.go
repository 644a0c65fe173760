package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

// statusOf maps service errors to response codes. Anything not recognized
// came from talking to the forum and is reported as a bad gateway.
func statusOf(err error) int {
	var rejected *domain.RejectedError
	switch {
	case errors.As(err, &rejected):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrInvalidIntent),
		errors.Is(err, domain.ErrInvalidTargetType),
		errors.Is(err, domain.ErrInvalidTargetID),
		errors.Is(err, domain.ErrEmptyComment):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPageNotFound),
		errors.Is(err, domain.ErrWidgetNotFound),
		errors.Is(err, domain.ErrThreadNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInconsistentWidget):
		return http.StatusInternalServerError
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusOf(err))
}
