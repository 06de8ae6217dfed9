package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds security headers to every response. Pages
// depend on the session, so none of them may be cached by shared caches.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), interest-cohort=()")

		// Google Identity Services renders the sign-in button from its own origin
		c.Header("Content-Security-Policy",
			"default-src 'self'; img-src 'self' https: data:; style-src 'self' 'unsafe-inline' https://accounts.google.com; "+
				"script-src 'self' https://accounts.google.com/gsi/client; frame-src https://accounts.google.com; "+
				"connect-src 'self' https://accounts.google.com")

		c.Header("Cache-Control", "no-store, private")
		c.Header("Pragma", "no-cache")

		c.Next()
	}
}
