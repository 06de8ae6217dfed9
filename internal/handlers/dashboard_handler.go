package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/internal/middleware"
	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/services"
	"github.com/madhurinidan/clinic-web/internal/session"
	"github.com/madhurinidan/clinic-web/internal/views"
)

// DashboardHandler serves the doctor and patient dashboards. The clinic API
// scopes GET /appointments to the token's owner.
type DashboardHandler struct {
	*Pages
	appointments services.AppointmentServiceInterface
}

func NewDashboardHandler(pages *Pages, appointments services.AppointmentServiceInterface) *DashboardHandler {
	return &DashboardHandler{Pages: pages, appointments: appointments}
}

type AppointmentsData struct {
	Name         string
	Appointments []models.Appointment
}

const patientDashboardPath = "/patient/dashboard"

func (h *DashboardHandler) Doctor(c *gin.Context) {
	h.show(c, "doctor_dashboard", "Doctor Dashboard")
}

func (h *DashboardHandler) Patient(c *gin.Context) {
	h.show(c, "patient_dashboard", "My Appointments")
}

func (h *DashboardHandler) show(c *gin.Context, name, title string) {
	data := AppointmentsData{Name: session.Current(c).Read().Name}
	page := views.Page{Title: title, Data: &data}

	list, err := h.appointments.List(c.Request.Context(), 0, 0)
	if err != nil {
		if rejected(c, err) {
			return
		}
		attachError(c, err)
		page.Flash = &views.Flash{Kind: views.FlashError, Message: failure("fetch appointments", err)}
	} else {
		data.Appointments = list.Appointments
	}

	h.render(c, http.StatusOK, name, page)
}

// Cancel cancels one of the patient's appointments and returns to the list
func (h *DashboardHandler) Cancel(c *gin.Context) {
	if err := h.appointments.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		if rejected(c, err) {
			return
		}
		attachError(c, err)
		h.setFlash(c, views.FlashError, failure("cancel appointment", err))
	} else {
		h.setFlash(c, views.FlashSuccess, "Appointment cancelled")
	}
	middleware.Redirect(c, patientDashboardPath)
}
