package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Appointment statuses known to the frontend
const (
	AppointmentCancelled = "cancelled"
)

// AppointmentDoctor is the doctor reference on an appointment. The API sends
// either a populated object or a bare id.
type AppointmentDoctor struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func (d *AppointmentDoctor) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &d.ID)
	}
	type plain AppointmentDoctor
	return json.Unmarshal(data, (*plain)(d))
}

// Appointment is a booked visit
type Appointment struct {
	ID     string            `json:"_id"`
	Name   string            `json:"name"`
	Email  string            `json:"email"`
	Phone  string            `json:"phone"`
	Doctor AppointmentDoctor `json:"doctor"`
	Date   time.Time         `json:"date"`
	Notes  string            `json:"notes,omitempty"`
	Status string            `json:"status,omitempty"`
}

// Cancelled reports whether the appointment was cancelled
func (a Appointment) Cancelled() bool {
	return a.Status == AppointmentCancelled
}

// AppointmentPage is the normalized /appointments response. Enveloped records
// whether the server sent {appointments, pages} rather than a bare array;
// Pages is 1 for bare arrays.
type AppointmentPage struct {
	Appointments []Appointment
	Pages        int
	Enveloped    bool
}

// CreateAppointmentRequest is the POST /appointments body
type CreateAppointmentRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	DoctorID string    `json:"doctorId"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes,omitempty"`
}

// BookingForm is the booking page submission. Date and time arrive as
// separate inputs and are combined in the clinic's local zone.
type BookingForm struct {
	Name     string `form:"name" binding:"required"`
	Phone    string `form:"phone" binding:"required"`
	DoctorID string `form:"doctor" binding:"required"`
	Date     string `form:"date" binding:"required"`
	Time     string `form:"time" binding:"required"`
	Notes    string `form:"notes"`
}
