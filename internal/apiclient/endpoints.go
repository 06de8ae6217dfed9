package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"go.uber.org/zap"
)

// Login exchanges email/password for a token and user
func (c *Client) Login(ctx context.Context, creds models.LoginRequest) (*models.AuthResponse, error) {
	r, err := jsonRequest("login", http.MethodPost, "/auth/login", creds)
	if err != nil {
		return nil, err
	}
	var out models.AuthResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a patient account. It does not sign the user in.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.MessageResponse, error) {
	r, err := jsonRequest("register", http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	var out models.MessageResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GoogleLogin exchanges a Google Identity credential for a token and user
func (c *Client) GoogleLogin(ctx context.Context, credential string) (*models.AuthResponse, error) {
	r, err := jsonRequest("google_login", http.MethodPost, "/auth/google-login", models.GoogleLoginRequest{Token: credential})
	if err != nil {
		return nil, err
	}
	var out models.AuthResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the account behind the current token
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	r, _ := jsonRequest("get_me", http.MethodGet, "/users/me", nil) //nolint:errcheck
	var out models.User
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDoctors returns the directory. Both a bare array and {doctors: [...]}
// are accepted.
func (c *Client) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	r, _ := jsonRequest("list_doctors", http.MethodGet, "/doctors", nil) //nolint:errcheck
	body, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	return decodeDoctors(body)
}

// CreateDoctor adds a doctor or admin account, with an optional image
func (c *Client) CreateDoctor(ctx context.Context, input models.DoctorInput) (*models.MessageResponse, error) {
	r, err := multipartRequest("create_doctor", http.MethodPost, "/doctors", input, true)
	if err != nil {
		return nil, err
	}
	var out models.MessageResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDoctor edits a doctor. An empty password keeps the current one.
func (c *Client) UpdateDoctor(ctx context.Context, id string, input models.DoctorInput) error {
	r, err := multipartRequest("update_doctor", http.MethodPut, "/doctors/"+url.PathEscape(id), input, false)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// DeleteDoctor removes a doctor
func (c *Client) DeleteDoctor(ctx context.Context, id string) error {
	r, _ := jsonRequest("delete_doctor", http.MethodDelete, "/doctors/"+url.PathEscape(id), nil) //nolint:errcheck
	return c.do(ctx, r, nil)
}

// ListAppointments returns the appointments visible to the current user.
// page <= 0 requests the unpaged list; otherwise page and limit are sent.
func (c *Client) ListAppointments(ctx context.Context, page, limit int) (*models.AppointmentPage, error) {
	path := "/appointments"
	if page > 0 {
		path += "?" + pageQuery(page, limit)
	}

	r, _ := jsonRequest("list_appointments", http.MethodGet, path, nil) //nolint:errcheck
	body, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}

	result, err := decodeAppointments(body)
	if err != nil {
		return nil, err
	}
	logger.Debug("Decoded appointments response",
		zap.Bool("enveloped", result.Enveloped),
		zap.Int("count", len(result.Appointments)),
		zap.Int("pages", result.Pages))
	return result, nil
}

// CreateAppointment books an appointment
func (c *Client) CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) error {
	r, err := jsonRequest("create_appointment", http.MethodPost, "/appointments", req)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// CancelAppointment marks an appointment cancelled
func (c *Client) CancelAppointment(ctx context.Context, id string) error {
	r, err := jsonRequest("cancel_appointment", http.MethodPut, "/appointments/cancel/"+url.PathEscape(id), struct{}{})
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// ListContactMessages returns one page of contact messages
func (c *Client) ListContactMessages(ctx context.Context, page, limit int) (*models.ContactPage, error) {
	if page <= 0 {
		page = 1
	}
	r, _ := jsonRequest("list_contact_messages", http.MethodGet, "/contact?"+pageQuery(page, limit), nil) //nolint:errcheck
	var out models.ContactPage
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	if out.Pages < 1 {
		out.Pages = 1
	}
	return &out, nil
}

// SubmitContact sends a contact form
func (c *Client) SubmitContact(ctx context.Context, form models.ContactForm) (*models.MessageResponse, error) {
	r, err := jsonRequest("submit_contact", http.MethodPost, "/contact", form)
	if err != nil {
		return nil, err
	}
	var out models.MessageResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func pageQuery(page, limit int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q.Encode()
}

func multipartRequest(operation, method, path string, input models.DoctorInput, includeEmptyPassword bool) (request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"name", input.Name},
		{"email", input.Email},
		{"phone", input.Phone},
		{"password", input.Password},
		{"specialty", input.Specialty},
		{"role", input.Role},
	}
	for _, f := range fields {
		if f.name == "password" && f.value == "" && !includeEmptyPassword {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return request{}, fmt.Errorf("failed to write %s field: %w", f.name, err)
		}
	}

	if input.Image != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, input.Image.Filename))
		header.Set("Content-Type", input.Image.ContentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return request{}, fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(input.Image.Data); err != nil {
			return request{}, fmt.Errorf("failed to write image part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return request{}, fmt.Errorf("failed to close multipart body: %w", err)
	}

	return request{
		operation:   operation,
		method:      method,
		path:        path,
		body:        &buf,
		contentType: w.FormDataContentType(),
	}, nil
}

func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func decodeAppointments(body []byte) (*models.AppointmentPage, error) {
	if isJSONArray(body) {
		var list []models.Appointment
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("failed to decode appointments: %w", err)
		}
		return &models.AppointmentPage{Appointments: list, Pages: 1}, nil
	}

	var envelope struct {
		Appointments []models.Appointment `json:"appointments"`
		Pages        int                  `json:"pages"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	if envelope.Pages < 1 {
		envelope.Pages = 1
	}
	return &models.AppointmentPage{
		Appointments: envelope.Appointments,
		Pages:        envelope.Pages,
		Enveloped:    true,
	}, nil
}

func decodeDoctors(body []byte) ([]models.Doctor, error) {
	if isJSONArray(body) {
		var list []models.Doctor
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("failed to decode doctors: %w", err)
		}
		return list, nil
	}

	var envelope struct {
		Doctors []models.Doctor `json:"doctors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return envelope.Doctors, nil
}
