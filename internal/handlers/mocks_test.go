package handlers

import (
	"context"

	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, store session.Store, req models.LoginRequest) (string, error) {
	args := m.Called(ctx, store, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) GoogleLogin(ctx context.Context, store session.Store, credential string) (string, error) {
	args := m.Called(ctx, store, credential)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(store session.Store) error {
	args := m.Called(store)
	return args.Error(0)
}

func (m *MockAuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockDoctorService struct {
	mock.Mock
}

func (m *MockDoctorService) Directory(ctx context.Context) ([]models.Doctor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Doctor), args.Error(1)
}

func (m *MockDoctorService) Profile(ctx context.Context, slug string) (*models.FeaturedDoctor, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeaturedDoctor), args.Error(1)
}

func (m *MockDoctorService) Featured() []models.FeaturedDoctor {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.FeaturedDoctor)
}

func (m *MockDoctorService) Create(ctx context.Context, input models.DoctorInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockDoctorService) Update(ctx context.Context, id string, input models.DoctorInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockDoctorService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) Book(ctx context.Context, email string, form models.BookingForm) error {
	args := m.Called(ctx, email, form)
	return args.Error(0)
}

func (m *MockAppointmentService) List(ctx context.Context, page, limit int) (*models.AppointmentPage, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentPage), args.Error(1)
}

func (m *MockAppointmentService) Cancel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, form models.ContactForm) (string, error) {
	args := m.Called(ctx, form)
	return args.String(0), args.Error(1)
}

func (m *MockContactService) Messages(ctx context.Context, page int) (*models.ContactPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactPage), args.Error(1)
}
