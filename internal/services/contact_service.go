package services

import (
	"context"

	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"github.com/madhurinidan/clinic-web/pkg/metrics"
	"go.uber.org/zap"
)

// AdminPageSize is the page size of admin dashboard lists
const AdminPageSize = 5

// ContactService handles the public contact form and the admin inbox
type ContactService struct {
	api ContactAPI
}

// NewContactService creates a new contact service instance
func NewContactService(api ContactAPI) *ContactService {
	return &ContactService{api: api}
}

// Submit sends the form and returns the server's acknowledgement
func (s *ContactService) Submit(ctx context.Context, form models.ContactForm) (string, error) {
	resp, err := s.api.SubmitContact(ctx, form)
	if err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to submit contact form", zap.Error(err))
		return "", err
	}

	metrics.ContactFormSubmissions.WithLabelValues("success").Inc()
	if resp != nil && resp.Message != "" {
		return resp.Message, nil
	}
	return "Message sent successfully!", nil
}

// Messages returns one page of contact messages
func (s *ContactService) Messages(ctx context.Context, page int) (*models.ContactPage, error) {
	return s.api.ListContactMessages(ctx, page, AdminPageSize)
}
