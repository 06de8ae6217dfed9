package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/pkg/errors"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"github.com/madhurinidan/clinic-web/pkg/metrics"
	"github.com/madhurinidan/clinic-web/pkg/slug"
	"go.uber.org/zap"
)

// MaxDoctorImageSize bounds uploaded profile pictures
const MaxDoctorImageSize = 5 << 20

var featuredDoctors = []models.FeaturedDoctor{
	{
		Slug:      "dr-pankaj-kumar-chaurasiya",
		Name:      "Dr. Pankaj Kumar Chaurasiya",
		Specialty: "Physician & Pediatrician",
		Image:     "https://madhuri-nidan-kendra.vercel.app/images/pankaj.jpg",
		Summary:   "General physician and pediatrician at Madhuri Nidan Kendra, Hasanpura, Siwan, caring for adults and children.",
		Studies:   []string{"B.A.M.S. (Ranchi)", "C.C.H. (Mumbai)"},
		Services:  []string{"General Practice", "Pediatrics"},
	},
	{
		Slug:      "dr-anita-chaurasiya",
		Name:      "Dr. Anita Chaurasiya",
		Specialty: "Gynecologist & Obstetrician",
		Image:     "https://madhuri-nidan-kendra.vercel.app/images/anita.jpg",
		Summary:   "Gynecologist and obstetrician at Madhuri Nidan Kendra, Hasanpura, Siwan, experienced in women's health, maternity and reproductive care.",
		Studies:   []string{"B.A.M.S. (Ranchi)", "D.G.O. (Mumbai)"},
		Services:  []string{"Gynecology", "Obstetrics"},
	},
}

// DoctorService serves the doctor directory and admin doctor management
type DoctorService struct {
	api       DoctorAPI
	directory DoctorDirectory
}

// NewDoctorService creates a new doctor service
func NewDoctorService(api DoctorAPI, directory DoctorDirectory) *DoctorService {
	return &DoctorService{api: api, directory: directory}
}

// Directory returns every listed doctor
func (s *DoctorService) Directory(ctx context.Context) ([]models.Doctor, error) {
	return s.directory.Doctors(ctx)
}

// Featured returns the clinic's featured doctors
func (s *DoctorService) Featured() []models.FeaturedDoctor {
	out := make([]models.FeaturedDoctor, len(featuredDoctors))
	copy(out, featuredDoctors)
	return out
}

// Profile resolves a profile page by slug. Featured doctors are served from
// the static registry; others are looked up in the directory by name.
func (s *DoctorService) Profile(ctx context.Context, doctorSlug string) (*models.FeaturedDoctor, error) {
	doctorSlug = strings.ToLower(strings.TrimSpace(doctorSlug))

	for _, featured := range featuredDoctors {
		if featured.Slug == doctorSlug {
			profile := featured
			s.enrich(ctx, &profile)
			return &profile, nil
		}
	}

	doctor, err := s.directory.BySlug(ctx, doctorSlug)
	if err != nil {
		logger.Debug("Doctor profile lookup failed", zap.String("slug", doctorSlug), zap.Error(err))
		return nil, errors.NotFoundError("doctor")
	}
	return &models.FeaturedDoctor{
		Slug:      doctorSlug,
		Name:      doctor.Name,
		Specialty: doctor.Specialty,
		Image:     doctor.Image,
		Summary:   doctor.Bio,
		Studies:   doctor.Studies,
		Phone:     doctor.Phone,
		Email:     doctor.Email,
	}, nil
}

// enrich fills contact details from the directory when it is reachable
func (s *DoctorService) enrich(ctx context.Context, profile *models.FeaturedDoctor) {
	doctors, err := s.directory.Doctors(ctx)
	if err != nil {
		return
	}
	for _, doctor := range doctors {
		if slug.Generate(doctor.Name) != profile.Slug {
			continue
		}
		profile.Phone = doctor.Phone
		profile.Email = doctor.Email
		if len(doctor.Studies) > 0 {
			profile.Studies = doctor.Studies
		}
		return
	}
}

// Create adds a doctor or admin and returns the server's message
func (s *DoctorService) Create(ctx context.Context, input models.DoctorInput) (string, error) {
	if input.Password == "" {
		return "", errors.InvalidInputError("password", "required")
	}

	resp, err := s.api.CreateDoctor(ctx, input)
	if err != nil {
		metrics.DoctorChanges.WithLabelValues("create", "error").Inc()
		return "", err
	}
	metrics.DoctorChanges.WithLabelValues("create", "success").Inc()
	s.directory.Invalidate()

	if resp != nil && resp.Message != "" {
		return resp.Message, nil
	}
	return "Doctor created successfully!", nil
}

// Update edits a doctor
func (s *DoctorService) Update(ctx context.Context, id string, input models.DoctorInput) error {
	if err := s.api.UpdateDoctor(ctx, id, input); err != nil {
		metrics.DoctorChanges.WithLabelValues("update", "error").Inc()
		return err
	}
	metrics.DoctorChanges.WithLabelValues("update", "success").Inc()
	s.directory.Invalidate()
	return nil
}

// Delete removes a doctor
func (s *DoctorService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteDoctor(ctx, id); err != nil {
		metrics.DoctorChanges.WithLabelValues("delete", "error").Inc()
		return err
	}
	metrics.DoctorChanges.WithLabelValues("delete", "success").Inc()
	s.directory.Invalidate()
	return nil
}

// Image validation messages shown on the admin form
const (
	MsgNotAnImage    = "Please select an image file"
	MsgImageTooLarge = "Image size should be less than 5MB"
)

var (
	ErrNotAnImage    = fmt.Errorf("%s: %w", MsgNotAnImage, errors.ErrInvalidInput)
	ErrImageTooLarge = fmt.Errorf("%s: %w", MsgImageTooLarge, errors.ErrInvalidInput)
)

// ValidateDoctorImage checks an upload before it is forwarded
func ValidateDoctorImage(contentType string, size int64) error {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return ErrNotAnImage
	}
	if size > MaxDoctorImageSize {
		return ErrImageTooLarge
	}
	return nil
}
