package services

import (
	"context"
	"fmt"

	"github.com/madhurinidan/clinic-web/internal/access"
	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"github.com/madhurinidan/clinic-web/pkg/metrics"
	"go.uber.org/zap"
)

// AuthService signs users in and out against the clinic API
type AuthService struct {
	api AuthAPI
}

// NewAuthService creates a new auth service
func NewAuthService(api AuthAPI) *AuthService {
	return &AuthService{api: api}
}

// Login authenticates with email/password, stores the session and returns
// the role's landing page.
func (s *AuthService) Login(ctx context.Context, store session.Store, req models.LoginRequest) (string, error) {
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		metrics.Logins.WithLabelValues("password", "error").Inc()
		return "", err
	}
	return s.establish(store, "password", resp)
}

// GoogleLogin authenticates with a Google Identity credential
func (s *AuthService) GoogleLogin(ctx context.Context, store session.Store, credential string) (string, error) {
	resp, err := s.api.GoogleLogin(ctx, credential)
	if err != nil {
		metrics.Logins.WithLabelValues("google", "error").Inc()
		return "", err
	}
	return s.establish(store, "google", resp)
}

func (s *AuthService) establish(store session.Store, method string, resp *models.AuthResponse) (string, error) {
	err := store.Write(session.Session{
		Token: resp.Token,
		Role:  resp.User.Role,
		Name:  resp.User.Name,
		Email: resp.User.Email,
	})
	if err != nil {
		metrics.Logins.WithLabelValues(method, "error").Inc()
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	metrics.Logins.WithLabelValues(method, "success").Inc()
	logger.Info("User signed in",
		zap.String("method", method),
		zap.String("role", resp.User.Role))

	return access.RoleHomePath(resp.User.Role), nil
}

// Register creates a patient account and returns the confirmation message.
// The user is not signed in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		metrics.Registrations.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.Registrations.WithLabelValues("success").Inc()

	if resp != nil && resp.Message != "" {
		return resp.Message, nil
	}
	return "Registered successfully!", nil
}

// Logout clears the session
func (s *AuthService) Logout(store session.Store) error {
	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CurrentUser fetches the account behind the session token
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.api.Me(ctx)
}
