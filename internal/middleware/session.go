package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/internal/session"
)

// SessionMiddleware opens the request's session store and exposes it both on
// the gin context and on the request context, where the API client's token
// source reads it.
func SessionMiddleware(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := manager.Open(c)
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), store))
		c.Next()
	}
}
