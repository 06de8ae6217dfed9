package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/internal/apiclient"
	apperrors "github.com/madhurinidan/clinic-web/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// rejected hands a 401 from the clinic API to the unauthorized policy. The
// response is left unwritten so the policy can sign the user out.
func rejected(c *gin.Context, err error) bool {
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		return false
	}
	attachError(c, err)
	c.Abort()
	return true
}

// failure builds the inline message for a failed action, e.g.
// "Failed to book appointment: Doctor not available"
func failure(action string, err error) string {
	msg := "Failed to " + action
	if server := apiclient.ServerMessage(err); server != "" {
		msg += ": " + server
	}
	return msg
}

// serverMessageOr prefers the clinic API's own message
func serverMessageOr(err error, fallback string) string {
	if server := apiclient.ServerMessage(err); server != "" {
		return server
	}
	return fallback
}

// statusFor maps a service error to the status of the re-rendered page
func statusFor(err error) int {
	var apiErr *apiclient.APIError
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status
	default:
		return http.StatusBadGateway
	}
}
