package services

import (
	"context"

	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/session"
)

// Upstream contracts, satisfied by *apiclient.Client

type AuthAPI interface {
	Login(ctx context.Context, creds models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.MessageResponse, error)
	GoogleLogin(ctx context.Context, credential string) (*models.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

type DoctorAPI interface {
	CreateDoctor(ctx context.Context, input models.DoctorInput) (*models.MessageResponse, error)
	UpdateDoctor(ctx context.Context, id string, input models.DoctorInput) error
	DeleteDoctor(ctx context.Context, id string) error
}

type AppointmentAPI interface {
	ListAppointments(ctx context.Context, page, limit int) (*models.AppointmentPage, error)
	CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) error
	CancelAppointment(ctx context.Context, id string) error
}

type ContactAPI interface {
	ListContactMessages(ctx context.Context, page, limit int) (*models.ContactPage, error)
	SubmitContact(ctx context.Context, form models.ContactForm) (*models.MessageResponse, error)
}

// DoctorDirectory serves the (cached) doctor list
type DoctorDirectory interface {
	Doctors(ctx context.Context) ([]models.Doctor, error)
	BySlug(ctx context.Context, slug string) (*models.Doctor, error)
	Invalidate()
}

// AuthServiceInterface defines sign-in, sign-up and sign-out
type AuthServiceInterface interface {
	Login(ctx context.Context, store session.Store, req models.LoginRequest) (string, error)
	GoogleLogin(ctx context.Context, store session.Store, credential string) (string, error)
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	Logout(store session.Store) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

// DoctorServiceInterface defines the directory and admin doctor management
type DoctorServiceInterface interface {
	Directory(ctx context.Context) ([]models.Doctor, error)
	Profile(ctx context.Context, slug string) (*models.FeaturedDoctor, error)
	Featured() []models.FeaturedDoctor
	Create(ctx context.Context, input models.DoctorInput) (string, error)
	Update(ctx context.Context, id string, input models.DoctorInput) error
	Delete(ctx context.Context, id string) error
}

// AppointmentServiceInterface defines booking, listing and cancelling
type AppointmentServiceInterface interface {
	Book(ctx context.Context, email string, form models.BookingForm) error
	List(ctx context.Context, page, limit int) (*models.AppointmentPage, error)
	Cancel(ctx context.Context, id string) error
}

// ContactServiceInterface defines the contact form and admin inbox
type ContactServiceInterface interface {
	Submit(ctx context.Context, form models.ContactForm) (string, error)
	Messages(ctx context.Context, page int) (*models.ContactPage, error)
}
