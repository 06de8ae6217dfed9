package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/services"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/madhurinidan/clinic-web/internal/views"
	apperrors "github.com/madhurinidan/clinic-web/pkg/errors"
)

type BookingHandler struct {
	*Pages
	doctors      services.DoctorServiceInterface
	appointments services.AppointmentServiceInterface
	location     *time.Location
}

func NewBookingHandler(pages *Pages, doctors services.DoctorServiceInterface, appointments services.AppointmentServiceInterface, loc *time.Location) *BookingHandler {
	return &BookingHandler{Pages: pages, doctors: doctors, appointments: appointments, location: loc}
}

type BookData struct {
	Doctors            []models.Doctor
	DoctorsUnavailable bool
	Email              string
	Today              string
	Form               models.BookingForm
}

func (h *BookingHandler) Show(c *gin.Context) {
	h.renderForm(c, http.StatusOK, models.BookingForm{}, nil, nil)
}

func (h *BookingHandler) Submit(c *gin.Context) {
	var form models.BookingForm
	if err := c.ShouldBind(&form); err != nil {
		attachError(c, err)
		h.renderForm(c, http.StatusBadRequest, form, nil, fieldErrors(err))
		return
	}

	email := session.Current(c).Read().Email
	err := h.appointments.Book(c.Request.Context(), email, form)
	switch {
	case err == nil:
		h.renderForm(c, http.StatusOK, models.BookingForm{Notes: form.Notes},
			&views.Flash{Kind: views.FlashSuccess, Message: "Appointment booked successfully!"}, nil)
	case rejected(c, err):
	case apperrors.Is(err, services.ErrPastAppointment):
		attachError(c, err)
		h.renderForm(c, http.StatusBadRequest, form,
			&views.Flash{Kind: views.FlashError, Message: services.MsgPastAppointment}, nil)
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		attachError(c, err)
		h.renderForm(c, http.StatusBadRequest, form,
			&views.Flash{Kind: views.FlashError, Message: "Please enter a valid date and time"}, nil)
	default:
		attachError(c, err)
		h.renderForm(c, statusFor(err), form,
			&views.Flash{Kind: views.FlashError, Message: failure("book appointment", err)}, nil)
	}
}

func (h *BookingHandler) renderForm(c *gin.Context, status int, form models.BookingForm, flash *views.Flash, fields map[string]string) {
	data := BookData{
		Email: session.Current(c).Read().Email,
		Today: time.Now().In(h.location).Format("2006-01-02"),
		Form:  form,
	}

	doctors, err := h.doctors.Directory(c.Request.Context())
	if rejected(c, err) {
		return
	}
	if err != nil {
		attachError(c, err)
		data.DoctorsUnavailable = true
	}
	data.Doctors = doctors

	h.render(c, status, "book", views.Page{
		Title:       "Book an Appointment",
		Flash:       flash,
		FieldErrors: fields,
		Data:        data,
	})
}
