package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/madhurinidan/clinic-web/internal/apiclient"
	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/services"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	session.MemoryStore
}

func (f *failingStore) Write(session.Session) error { return errors.New("disk full") }

func TestAuthService_LoginWritesSessionAndRedirects(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"admin", "/admin/dashboard"},
		{"doctor", "/doctor/dashboard"},
		{"patient", "/patient/dashboard"},
		{"receptionist", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			api := new(MockClinicAPI)
			creds := models.LoginRequest{Email: "u@example.com", Password: "pw"}
			api.On("Login", mock.Anything, creds).Return(&models.AuthResponse{
				Token: "tok",
				User:  models.AuthUser{Role: tt.role, Name: "User", Email: "u@example.com"},
			}, nil)

			store := session.NewMemoryStore()
			redirect, err := services.NewAuthService(api).Login(context.Background(), store, creds)

			require.NoError(t, err)
			assert.Equal(t, tt.want, redirect)
			assert.Equal(t, session.Session{Token: "tok", Role: tt.role, Name: "User", Email: "u@example.com"}, store.Read())
			api.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginFailureLeavesSessionUntouched(t *testing.T) {
	api := new(MockClinicAPI)
	api.On("Login", mock.Anything, mock.Anything).Return(nil, &apiclient.APIError{Status: 400, Message: "Invalid credentials"})

	store := session.NewMemoryStore()
	_, err := services.NewAuthService(api).Login(context.Background(), store, models.LoginRequest{})

	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", apiclient.ServerMessage(err))
	assert.Equal(t, session.Session{}, store.Read())
}

func TestAuthService_LoginStoreFailure(t *testing.T) {
	api := new(MockClinicAPI)
	api.On("Login", mock.Anything, mock.Anything).Return(&models.AuthResponse{Token: "tok"}, nil)

	_, err := services.NewAuthService(api).Login(context.Background(), &failingStore{}, models.LoginRequest{})
	assert.ErrorContains(t, err, "failed to store session")
}

func TestAuthService_GoogleLogin(t *testing.T) {
	api := new(MockClinicAPI)
	api.On("GoogleLogin", mock.Anything, "cred").Return(&models.AuthResponse{
		Token: "g-tok",
		User:  models.AuthUser{Role: "patient", Name: "G", Email: "g@example.com"},
	}, nil)

	store := session.NewMemoryStore()
	redirect, err := services.NewAuthService(api).GoogleLogin(context.Background(), store, "cred")

	require.NoError(t, err)
	assert.Equal(t, "/patient/dashboard", redirect)
	assert.Equal(t, "g-tok", store.Read().Token)
}

func TestAuthService_RegisterDoesNotSignIn(t *testing.T) {
	api := new(MockClinicAPI)
	req := models.RegisterRequest{Name: "N", Email: "n@example.com", Password: "secret1"}
	api.On("Register", mock.Anything, req).Return(&models.MessageResponse{}, nil)

	msg, err := services.NewAuthService(api).Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Registered successfully!", msg)
	api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthService_Logout(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Write(session.Session{Token: "t", Role: "admin"}))

	require.NoError(t, services.NewAuthService(new(MockClinicAPI)).Logout(store))
	assert.False(t, store.Read().Authenticated())
}
