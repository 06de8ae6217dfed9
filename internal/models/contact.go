package models

import "time"

// ContactForm is the public contact form submission
type ContactForm struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Subject string `json:"subject" form:"subject" binding:"required"`
	Message string `json:"message" form:"message" binding:"required"`
}

// ContactMessage is a stored contact form submission, as listed to admins
type ContactMessage struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactPage is one page of contact messages
type ContactPage struct {
	Messages []ContactMessage `json:"messages"`
	Pages    int              `json:"pages"`
}

// MessageResponse is the generic `{message}` acknowledgement returned by the API
type MessageResponse struct {
	Message string `json:"message"`
}
