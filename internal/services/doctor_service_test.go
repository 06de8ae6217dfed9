package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/madhurinidan/clinic-web/internal/models"
	"github.com/madhurinidan/clinic-web/internal/services"
	apperrors "github.com/madhurinidan/clinic-web/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDoctorService_FeaturedProfileEnrichedFromDirectory(t *testing.T) {
	directory := new(MockDoctorDirectory)
	directory.On("Doctors", mock.Anything).Return([]models.Doctor{
		{ID: "d2", Name: "Dr. Anita Chaurasiya", Phone: "9000000000", Email: "anita@example.com", Studies: []string{"MBBS", "MS"}},
	}, nil)

	svc := services.NewDoctorService(new(MockClinicAPI), directory)
	profile, err := svc.Profile(context.Background(), "dr-anita-chaurasiya")

	require.NoError(t, err)
	assert.Equal(t, "Dr. Anita Chaurasiya", profile.Name)
	assert.Equal(t, "9000000000", profile.Phone)
	assert.Equal(t, []string{"MBBS", "MS"}, profile.Studies)
}

func TestDoctorService_FeaturedProfileWithoutDirectory(t *testing.T) {
	directory := new(MockDoctorDirectory)
	directory.On("Doctors", mock.Anything).Return(nil, errors.New("down"))

	svc := services.NewDoctorService(new(MockClinicAPI), directory)
	profile, err := svc.Profile(context.Background(), "dr-pankaj-kumar-chaurasiya")

	require.NoError(t, err)
	assert.Equal(t, "Dr. Pankaj Kumar Chaurasiya", profile.Name)
	assert.Empty(t, profile.Phone)
}

func TestDoctorService_ProfileFallsBackToDirectory(t *testing.T) {
	directory := new(MockDoctorDirectory)
	directory.On("BySlug", mock.Anything, "dr-new").Return(&models.Doctor{Name: "Dr. New", Bio: "bio"}, nil)
	directory.On("BySlug", mock.Anything, "dr-missing").Return(nil, errors.New("not found"))

	svc := services.NewDoctorService(new(MockClinicAPI), directory)

	profile, err := svc.Profile(context.Background(), "dr-new")
	require.NoError(t, err)
	assert.Equal(t, "bio", profile.Summary)

	_, err = svc.Profile(context.Background(), "dr-missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestDoctorService_MutationsInvalidateDirectory(t *testing.T) {
	api := new(MockClinicAPI)
	directory := new(MockDoctorDirectory)
	input := models.DoctorInput{Name: "Dr. X", Email: "x@example.com", Password: "pw", Role: "doctor"}

	api.On("CreateDoctor", mock.Anything, input).Return(&models.MessageResponse{Message: "Doctor created"}, nil)
	api.On("UpdateDoctor", mock.Anything, "d1", input).Return(nil)
	api.On("DeleteDoctor", mock.Anything, "d1").Return(nil)
	directory.On("Invalidate").Return().Times(3)

	svc := services.NewDoctorService(api, directory)

	msg, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Doctor created", msg)
	require.NoError(t, svc.Update(context.Background(), "d1", input))
	require.NoError(t, svc.Delete(context.Background(), "d1"))

	api.AssertExpectations(t)
	directory.AssertExpectations(t)
}

func TestDoctorService_CreateRequiresPassword(t *testing.T) {
	api := new(MockClinicAPI)
	svc := services.NewDoctorService(api, new(MockDoctorDirectory))

	_, err := svc.Create(context.Background(), models.DoctorInput{Name: "Dr. X", Role: "doctor"})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	api.AssertNotCalled(t, "CreateDoctor", mock.Anything, mock.Anything)
}

func TestDoctorService_FailedMutationKeepsCache(t *testing.T) {
	api := new(MockClinicAPI)
	directory := new(MockDoctorDirectory)
	api.On("DeleteDoctor", mock.Anything, "d1").Return(errors.New("forbidden"))

	err := services.NewDoctorService(api, directory).Delete(context.Background(), "d1")
	assert.Error(t, err)
	directory.AssertNotCalled(t, "Invalidate")
}

func TestValidateDoctorImage(t *testing.T) {
	assert.NoError(t, services.ValidateDoctorImage("image/png", 1024))
	assert.NoError(t, services.ValidateDoctorImage("image/jpeg", services.MaxDoctorImageSize))

	err := services.ValidateDoctorImage("application/pdf", 10)
	assert.ErrorContains(t, err, services.MsgNotAnImage)

	err = services.ValidateDoctorImage("image/png", services.MaxDoctorImageSize+1)
	assert.ErrorContains(t, err, services.MsgImageTooLarge)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}
