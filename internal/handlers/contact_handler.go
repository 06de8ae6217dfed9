package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/services"
	"github.com/madhurinidan/clinic-web/internal/views"
)

type ContactHandler struct {
	*Pages
	service services.ContactServiceInterface
}

func NewContactHandler(pages *Pages, service services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{Pages: pages, service: service}
}

type ContactData struct {
	Form models.ContactForm
}

func (h *ContactHandler) Show(c *gin.Context) {
	h.render(c, http.StatusOK, "contact", views.Page{Title: "Contact Us", Data: ContactData{}})
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var form models.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		attachError(c, err)
		h.render(c, http.StatusBadRequest, "contact", views.Page{
			Title:       "Contact Us",
			Flash:       &views.Flash{Kind: views.FlashError, Message: "Please fill in every field"},
			FieldErrors: fieldErrors(err),
			Data:        ContactData{Form: form},
		})
		return
	}

	msg, err := h.service.Submit(c.Request.Context(), form)
	if err != nil {
		if rejected(c, err) {
			return
		}
		attachError(c, err)
		h.render(c, statusFor(err), "contact", views.Page{
			Title: "Contact Us",
			Flash: &views.Flash{Kind: views.FlashError, Message: failure("send message", err)},
			Data:  ContactData{Form: form},
		})
		return
	}

	h.render(c, http.StatusOK, "contact", views.Page{
		Title: "Contact Us",
		Flash: &views.Flash{Kind: views.FlashSuccess, Message: msg},
		Data:  ContactData{},
	})
}
