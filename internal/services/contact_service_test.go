package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestContactService_Submit(t *testing.T) {
	form := models.ContactForm{Name: "A", Email: "a@example.com", Subject: "Hours", Message: "When are you open?"}

	t.Run("server message", func(t *testing.T) {
		api := new(MockClinicAPI)
		api.On("SubmitContact", mock.Anything, form).Return(&models.MessageResponse{Message: "Thanks, we will reply soon"}, nil)

		msg, err := services.NewContactService(api).Submit(context.Background(), form)
		require.NoError(t, err)
		assert.Equal(t, "Thanks, we will reply soon", msg)
	})

	t.Run("default message", func(t *testing.T) {
		api := new(MockClinicAPI)
		api.On("SubmitContact", mock.Anything, form).Return(&models.MessageResponse{}, nil)

		msg, err := services.NewContactService(api).Submit(context.Background(), form)
		require.NoError(t, err)
		assert.Equal(t, "Message sent successfully!", msg)
	})

	t.Run("failure", func(t *testing.T) {
		api := new(MockClinicAPI)
		api.On("SubmitContact", mock.Anything, form).Return(nil, errors.New("down"))

		_, err := services.NewContactService(api).Submit(context.Background(), form)
		assert.Error(t, err)
	})
}

func TestContactService_MessagesUsesAdminPageSize(t *testing.T) {
	api := new(MockClinicAPI)
	api.On("ListContactMessages", mock.Anything, 3, services.AdminPageSize).Return(&models.ContactPage{Pages: 4}, nil)

	page, err := services.NewContactService(api).Messages(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Pages)
	api.AssertExpectations(t)
}
