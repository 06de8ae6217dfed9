package services

import (
	"context"
	"fmt"
	"time"

	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/pkg/errors"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"github.com/madhurinidan/clinic-web/pkg/metrics"
	"go.uber.org/zap"
)

// MsgPastAppointment is shown when a booking is not in the future
const MsgPastAppointment = "Please choose a future date and time"

// ErrPastAppointment rejects a booking before any request is sent
var ErrPastAppointment = fmt.Errorf("%s: %w", MsgPastAppointment, errors.ErrInvalidInput)

const (
	bookingDateLayout = "2006-01-02"
	bookingTimeLayout = "15:04"
)

// AppointmentService books, lists and cancels appointments
type AppointmentService struct {
	api      AppointmentAPI
	location *time.Location
	now      func() time.Time
}

// NewAppointmentService creates a service interpreting booking date/time
// inputs in loc
func NewAppointmentService(api AppointmentAPI, loc *time.Location) *AppointmentService {
	if loc == nil {
		loc = time.Local
	}
	return &AppointmentService{api: api, location: loc, now: time.Now}
}

// BookingTime combines the separate date and time inputs
func (s *AppointmentService) BookingTime(date, clock string) (time.Time, error) {
	if _, err := time.Parse(bookingTimeLayout, clock); err != nil {
		// browsers may submit seconds
		if _, errSec := time.Parse("15:04:05", clock); errSec != nil {
			return time.Time{}, errors.InvalidInputError("time", "invalid time")
		}
		clock = clock[:5]
	}
	at, err := time.ParseInLocation(bookingDateLayout+"T"+bookingTimeLayout, date+"T"+clock, s.location)
	if err != nil {
		return time.Time{}, errors.InvalidInputError("date", "invalid date")
	}
	return at, nil
}

// Book validates the slot and creates the appointment for email. A slot that
// is not strictly in the future fails with ErrPastAppointment and nothing is
// sent upstream.
func (s *AppointmentService) Book(ctx context.Context, email string, form models.BookingForm) error {
	at, err := s.BookingTime(form.Date, form.Time)
	if err != nil {
		metrics.Bookings.WithLabelValues("invalid").Inc()
		return err
	}
	if !at.After(s.now()) {
		metrics.Bookings.WithLabelValues("past").Inc()
		return ErrPastAppointment
	}

	err = s.api.CreateAppointment(ctx, models.CreateAppointmentRequest{
		Name:     form.Name,
		Email:    email,
		Phone:    form.Phone,
		DoctorID: form.DoctorID,
		Date:     at,
		Notes:    form.Notes,
	})
	if err != nil {
		metrics.Bookings.WithLabelValues("error").Inc()
		return err
	}

	metrics.Bookings.WithLabelValues("success").Inc()
	logger.Info("Appointment booked",
		zap.String("doctor_id", form.DoctorID),
		zap.Time("date", at))
	return nil
}

// List returns the current user's appointments. page <= 0 asks for the
// unpaged list.
func (s *AppointmentService) List(ctx context.Context, page, limit int) (*models.AppointmentPage, error) {
	return s.api.ListAppointments(ctx, page, limit)
}

// Cancel cancels an appointment
func (s *AppointmentService) Cancel(ctx context.Context, id string) error {
	if err := s.api.CancelAppointment(ctx, id); err != nil {
		metrics.Cancellations.WithLabelValues("error").Inc()
		return err
	}
	metrics.Cancellations.WithLabelValues("success").Inc()
	return nil
}
