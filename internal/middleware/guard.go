package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/internal/access"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"github.com/madhurinidan/clinic-web/pkg/metrics"
	"go.uber.org/zap"
)

// AccessGuard applies the access route table to every navigation. Denied
// requests are redirected before any handler runs; the session is not touched.
func AccessGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		policy := access.Classify(c.Request.URL.Path)
		decision := policy.Evaluate(session.Current(c).Read())

		if decision.Allow {
			metrics.GuardDecisions.WithLabelValues(policy.Name(), "allow").Inc()
			c.Next()
			return
		}

		metrics.GuardDecisions.WithLabelValues(policy.Name(), "redirect").Inc()
		logger.Debug("Navigation redirected",
			zap.String("path", c.Request.URL.Path),
			zap.String("policy", policy.Name()),
			zap.String("to", decision.Redirect))

		Redirect(c, decision.Redirect)
		c.Abort()
	}
}

// Redirect sends the browser to path: 302 for reads, 303 after a form post
func Redirect(c *gin.Context, path string) {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead:
		c.Redirect(http.StatusFound, path)
	default:
		c.Redirect(http.StatusSeeOther, path)
	}
}
