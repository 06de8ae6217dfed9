package services_test

import (
	"context"

	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockClinicAPI is a mock of every upstream contract the services use
type MockClinicAPI struct {
	mock.Mock
}

func (m *MockClinicAPI) Login(ctx context.Context, creds models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockClinicAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageResponse), args.Error(1)
}

func (m *MockClinicAPI) GoogleLogin(ctx context.Context, credential string) (*models.AuthResponse, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockClinicAPI) Me(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockClinicAPI) CreateDoctor(ctx context.Context, input models.DoctorInput) (*models.MessageResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageResponse), args.Error(1)
}

func (m *MockClinicAPI) UpdateDoctor(ctx context.Context, id string, input models.DoctorInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockClinicAPI) DeleteDoctor(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClinicAPI) ListAppointments(ctx context.Context, page, limit int) (*models.AppointmentPage, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentPage), args.Error(1)
}

func (m *MockClinicAPI) CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockClinicAPI) CancelAppointment(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClinicAPI) ListContactMessages(ctx context.Context, page, limit int) (*models.ContactPage, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactPage), args.Error(1)
}

func (m *MockClinicAPI) SubmitContact(ctx context.Context, form models.ContactForm) (*models.MessageResponse, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageResponse), args.Error(1)
}

// MockDoctorDirectory is a mock of the cached doctor directory
type MockDoctorDirectory struct {
	mock.Mock
}

func (m *MockDoctorDirectory) Doctors(ctx context.Context) ([]models.Doctor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Doctor), args.Error(1)
}

func (m *MockDoctorDirectory) BySlug(ctx context.Context, slug string) (*models.Doctor, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorDirectory) Invalidate() {
	m.Called()
}
