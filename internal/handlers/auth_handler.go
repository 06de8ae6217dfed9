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

// googleCSRFField is the double-submit token Google Identity Services posts
// in both a cookie and the form body
const googleCSRFField = "g_csrf_token"

type AuthHandler struct {
	*Pages
	service services.AuthServiceInterface
}

func NewAuthHandler(pages *Pages, service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{Pages: pages, service: service}
}

type LoginData struct {
	Email string
}

type RegisterData struct {
	Name  string
	Email string
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login", views.Page{Title: "Login", Data: LoginData{}})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		attachError(c, err)
		h.render(c, http.StatusBadRequest, "login", views.Page{
			Title:       "Login",
			FieldErrors: fieldErrors(err),
			Data:        LoginData{Email: req.Email},
		})
		return
	}

	home, err := h.service.Login(c.Request.Context(), session.Current(c), req)
	if err != nil {
		attachError(c, err)
		h.render(c, statusFor(err), "login", views.Page{
			Title: "Login",
			Flash: &views.Flash{Kind: views.FlashError, Message: serverMessageOr(err, "Login failed")},
			Data:  LoginData{Email: req.Email},
		})
		return
	}

	middleware.Redirect(c, home)
}

// GoogleLogin receives the Google Identity credential posted by the sign-in
// button and exchanges it with the clinic API
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if cookie, err := c.Cookie(googleCSRFField); err == nil && cookie != c.PostForm(googleCSRFField) {
		logger.Warn("Google sign-in CSRF token mismatch", zap.String("client_ip", c.ClientIP()))
		h.googleFailed(c, http.StatusBadRequest, "Google login failed")
		return
	}

	var req models.GoogleLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		attachError(c, err)
		h.googleFailed(c, http.StatusBadRequest, "Google login failed")
		return
	}

	home, err := h.service.GoogleLogin(c.Request.Context(), session.Current(c), req.Token)
	if err != nil {
		attachError(c, err)
		h.googleFailed(c, statusFor(err), serverMessageOr(err, "Google login failed"))
		return
	}

	middleware.Redirect(c, home)
}

func (h *AuthHandler) googleFailed(c *gin.Context, status int, message string) {
	h.render(c, status, "login", views.Page{
		Title: "Login",
		Flash: &views.Flash{Kind: views.FlashError, Message: message},
		Data:  LoginData{},
	})
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register", views.Page{Title: "Register", Data: RegisterData{}})
}

// Register creates a patient account and sends the user to the login page
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		attachError(c, err)
		h.render(c, http.StatusBadRequest, "register", views.Page{
			Title:       "Register",
			FieldErrors: fieldErrors(err),
			Data:        RegisterData{Name: req.Name, Email: req.Email},
		})
		return
	}

	msg, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		attachError(c, err)
		h.render(c, statusFor(err), "register", views.Page{
			Title: "Register",
			Flash: &views.Flash{Kind: views.FlashError, Message: serverMessageOr(err, "Registration failed")},
			Data:  RegisterData{Name: req.Name, Email: req.Email},
		})
		return
	}

	h.setFlash(c, views.FlashSuccess, msg)
	middleware.Redirect(c, access.LoginPath)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(session.Current(c)); err != nil {
		attachError(c, err)
		logger.LogError(err, "Failed to clear session on logout")
	}
	middleware.Redirect(c, access.LoginPath)
}
