package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/internal/middleware"
	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/services"
	"github.com/madhurinidan/clinic-web/internal/views"
)

const adminDashboardPath = "/admin/dashboard"

type AdminHandler struct {
	*Pages
	doctors      services.DoctorServiceInterface
	appointments services.AppointmentServiceInterface
	contact      services.ContactServiceInterface
}

func NewAdminHandler(
	pages *Pages,
	doctors services.DoctorServiceInterface,
	appointments services.AppointmentServiceInterface,
	contact services.ContactServiceInterface,
) *AdminHandler {
	return &AdminHandler{Pages: pages, doctors: doctors, appointments: appointments, contact: contact}
}

type AdminData struct {
	Doctors            []models.Doctor
	DoctorsUnavailable bool
	Appointments       *models.AppointmentPage
	ApptPage           int
	Messages           *models.ContactPage
	MsgPage            int
	Form               models.DoctorInput
	EditingID          string
}

// dashboardState is what the form and pagers looked like when a page was
// requested or a form was posted
type dashboardState struct {
	form      models.DoctorInput
	editingID string
	flash     *views.Flash
	fields    map[string]string
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	h.renderDashboard(c, http.StatusOK, dashboardState{editingID: c.Query("edit")})
}

func (h *AdminHandler) CreateDoctor(c *gin.Context) {
	input, state, ok := h.bindDoctor(c, "")
	if !ok {
		return
	}

	msg, err := h.doctors.Create(c.Request.Context(), input)
	if err != nil {
		h.mutationFailed(c, state, "create doctor", err)
		return
	}

	h.setFlash(c, views.FlashSuccess, msg)
	middleware.Redirect(c, adminDashboardPath)
}

func (h *AdminHandler) UpdateDoctor(c *gin.Context) {
	id := c.Param("id")
	input, state, ok := h.bindDoctor(c, id)
	if !ok {
		return
	}

	if err := h.doctors.Update(c.Request.Context(), id, input); err != nil {
		h.mutationFailed(c, state, "update doctor", err)
		return
	}

	h.setFlash(c, views.FlashSuccess, "Doctor updated successfully!")
	middleware.Redirect(c, adminDashboardPath)
}

func (h *AdminHandler) DeleteDoctor(c *gin.Context) {
	if err := h.doctors.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if rejected(c, err) {
			return
		}
		attachError(c, err)
		h.setFlash(c, views.FlashError, failure("delete doctor", err))
	} else {
		h.setFlash(c, views.FlashSuccess, "Doctor deleted successfully!")
	}
	middleware.Redirect(c, adminDashboardPath)
}

// bindDoctor reads the multipart doctor form and its optional image. On
// failure the dashboard has already been rendered.
func (h *AdminHandler) bindDoctor(c *gin.Context, editingID string) (models.DoctorInput, dashboardState, bool) {
	var input models.DoctorInput
	state := dashboardState{editingID: editingID}

	if err := c.ShouldBind(&input); err != nil {
		attachError(c, err)
		state.form = withoutPassword(input)
		state.fields = fieldErrors(err)
		state.flash = &views.Flash{Kind: views.FlashError, Message: "Please correct the highlighted fields"}
		h.renderDashboard(c, http.StatusBadRequest, state)
		return input, state, false
	}
	state.form = withoutPassword(input)

	image, err := readDoctorImage(c)
	if err != nil {
		attachError(c, err)
		state.flash = &views.Flash{Kind: views.FlashError, Message: imageMessage(err)}
		h.renderDashboard(c, http.StatusBadRequest, state)
		return input, state, false
	}
	input.Image = image

	return input, state, true
}

func (h *AdminHandler) mutationFailed(c *gin.Context, state dashboardState, action string, err error) {
	if rejected(c, err) {
		return
	}
	attachError(c, err)
	state.flash = &views.Flash{Kind: views.FlashError, Message: failure(action, err)}
	h.renderDashboard(c, statusFor(err), state)
}

func (h *AdminHandler) renderDashboard(c *gin.Context, status int, state dashboardState) {
	ctx := c.Request.Context()
	data := AdminData{
		ApptPage:  pageParam(c, "apptPage"),
		MsgPage:   pageParam(c, "msgPage"),
		Form:      state.form,
		EditingID: state.editingID,
	}

	doctors, err := h.doctors.Directory(ctx)
	if rejected(c, err) {
		return
	}
	if err != nil {
		attachError(c, err)
		data.DoctorsUnavailable = true
	}
	data.Doctors = doctors

	if state.form == (models.DoctorInput{}) {
		data.Form = models.DoctorInput{Role: "doctor"}
		if state.editingID != "" {
			data.Form = editForm(doctors, state.editingID)
		}
	}

	appointments, err := h.appointments.List(ctx, data.ApptPage, services.AdminPageSize)
	if rejected(c, err) {
		return
	}
	attachError(c, err)
	data.Appointments = appointments

	messages, err := h.contact.Messages(ctx, data.MsgPage)
	if rejected(c, err) {
		return
	}
	attachError(c, err)
	data.Messages = messages

	h.render(c, status, "admin_dashboard", views.Page{
		Title:       "Admin Dashboard",
		Flash:       state.flash,
		FieldErrors: state.fields,
		Data:        data,
	})
}

// editForm prefills the form from the directory entry being edited
func editForm(doctors []models.Doctor, id string) models.DoctorInput {
	for _, d := range doctors {
		if d.ID == id {
			role := d.Role
			if role == "" {
				role = "doctor"
			}
			return models.DoctorInput{Name: d.Name, Email: d.Email, Phone: d.Phone, Specialty: d.Specialty, Role: role}
		}
	}
	return models.DoctorInput{Role: "doctor"}
}

func withoutPassword(input models.DoctorInput) models.DoctorInput {
	input.Password = ""
	input.Image = nil
	return input
}

func pageParam(c *gin.Context, name string) int {
	page, err := strconv.Atoi(c.Query(name))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// readDoctorImage returns the uploaded picture, or nil when none was chosen
func readDoctorImage(c *gin.Context) (*models.DoctorImage, error) {
	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if header.Size == 0 && header.Filename == "" {
		return nil, nil
	}

	contentType := header.Header.Get("Content-Type")
	if err := services.ValidateDoctorImage(contentType, header.Size); err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxDoctorImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return &models.DoctorImage{Filename: header.Filename, ContentType: contentType, Data: data}, nil
}

func imageMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrNotAnImage):
		return services.MsgNotAnImage
	case errors.Is(err, services.ErrImageTooLarge):
		return services.MsgImageTooLarge
	default:
		return "Failed to read image"
	}
}
