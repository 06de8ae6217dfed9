package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/internal/access"
	"github.com/madhurinidan/clinic-web/internal/middleware"
	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/services"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/madhurinidan/clinic-web/internal/views"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"go.uber.org/zap"
)

type AccountHandler struct {
	*Pages
	auth services.AuthServiceInterface
}

func NewAccountHandler(pages *Pages, auth services.AuthServiceInterface) *AccountHandler {
	return &AccountHandler{Pages: pages, auth: auth}
}

type AccountData struct {
	User *models.User
}

// Show renders the current account. Any failure to load it signs the user
// out, not only a 401.
func (h *AccountHandler) Show(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context())
	if err != nil {
		if rejected(c, err) {
			return
		}
		attachError(c, err)
		if clearErr := h.auth.Logout(session.Current(c)); clearErr != nil {
			logger.Error("Failed to clear session", zap.Error(clearErr))
		}
		middleware.Redirect(c, access.LoginPath)
		return
	}

	h.render(c, http.StatusOK, "account", views.Page{Title: "My Account", Data: AccountData{User: user}})
}
