package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/internal/access"
	"github.com/madhurinidan/clinic-web/internal/apiclient"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"go.uber.org/zap"
)

// UnauthorizedPolicy signs the user out when the clinic API rejected their
// token. Handlers report the rejection with c.Error and leave the response
// unwritten; this middleware then clears the session and redirects to login.
func UnauthorizedPolicy() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || !hasUnauthorized(c) {
			return
		}

		if err := session.Current(c).Clear(); err != nil {
			logger.LogError(err, "Failed to clear rejected session", zap.String("path", c.Request.URL.Path))
		}
		logger.Info("Session rejected by clinic API, signing out",
			zap.String("path", c.Request.URL.Path))

		Redirect(c, access.LoginPath)
	}
}

func hasUnauthorized(c *gin.Context) bool {
	for _, e := range c.Errors {
		if errors.Is(e.Err, apiclient.ErrUnauthorized) {
			return true
		}
	}
	return false
}
