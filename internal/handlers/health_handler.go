package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	doctorCacheWarm func() bool
}

func NewHealthHandler(doctorCacheWarm func() bool) *HealthHandler {
	return &HealthHandler{
		doctorCacheWarm: doctorCacheWarm,
	}
}

// Healthcheck reports liveness. A cold doctor cache is reported but does not
// fail the check; pages fall back to the clinic API.
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	cache := "warm"
	if !h.doctorCacheWarm() {
		cache = "cold"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"doctor_cache": cache,
	})
}
