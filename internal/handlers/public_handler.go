package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/services"
	"github.com/madhurinidan/clinic-web/internal/views"
)

type PublicHandler struct {
	*Pages
	doctors services.DoctorServiceInterface
}

func NewPublicHandler(pages *Pages, doctors services.DoctorServiceInterface) *PublicHandler {
	return &PublicHandler{Pages: pages, doctors: doctors}
}

type HomeData struct {
	Featured []models.FeaturedDoctor
}

type DoctorsData struct {
	Doctors  []models.Doctor
	Featured []models.FeaturedDoctor
}

func (h *PublicHandler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, "home", views.Page{
		Data: HomeData{Featured: h.doctors.Featured()},
	})
}

func (h *PublicHandler) About(c *gin.Context) {
	h.render(c, http.StatusOK, "about", views.Page{Title: "About Us"})
}

// Doctors lists the directory; when the clinic API is down the featured
// doctors are still shown
func (h *PublicHandler) Doctors(c *gin.Context) {
	data := DoctorsData{Featured: h.doctors.Featured()}
	page := views.Page{Title: "Our Doctors", Data: &data}

	doctors, err := h.doctors.Directory(c.Request.Context())
	if err != nil {
		attachError(c, err)
		page.Flash = &views.Flash{Kind: views.FlashError, Message: failure("fetch doctors", err)}
	}
	data.Doctors = doctors

	h.render(c, http.StatusOK, "doctors", page)
}

func (h *PublicHandler) DoctorProfile(c *gin.Context) {
	profile, err := h.doctors.Profile(c.Request.Context(), c.Param("slug"))
	if err != nil {
		attachError(c, err)
		h.NotFound(c)
		return
	}
	h.render(c, http.StatusOK, "doctor_profile", views.Page{Title: profile.Name, Data: profile})
}

func (h *PublicHandler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "not_found", views.Page{Title: "Not found"})
}
