package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/internal/views"
)

const flashCookieName = "clinic_flash"

// setFlash keeps a message for the next page across a redirect
func (p *Pages) setFlash(c *gin.Context, kind, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, kind+"|"+message, 60, "/", p.CookieDomain, p.SecureCookies, true)
}

// takeFlash reads and removes the pending flash, if any
func (p *Pages) takeFlash(c *gin.Context) *views.Flash {
	value, err := c.Cookie(flashCookieName)
	if err != nil || value == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, "", -1, "/", p.CookieDomain, p.SecureCookies, true)

	kind, message, ok := strings.Cut(value, "|")
	if !ok || message == "" {
		return nil
	}
	if kind != views.FlashSuccess {
		kind = views.FlashError
	}
	return &views.Flash{Kind: kind, Message: message}
}
