package patient

import (
	"context"
	"errors"

	patientRepo "clinicore/database/repository/patient"
	"clinicore/models"
)

var ErrNotFound = errors.New("patient not found")

// PatientService manages patient records and their push device tokens.
type PatientService interface {
	Create(ctx context.Context, req models.CreatePatientRequest) (*models.Patient, error)
	GetByID(ctx context.Context, id int64) (*models.Patient, error)
	List(ctx context.Context, search string, limit int64) ([]models.Patient, error)
	Update(ctx context.Context, id int64, req models.UpdatePatientRequest) (*models.Patient, error)
	RegisterDeviceToken(ctx context.Context, id int64, token string) error
	Delete(ctx context.Context, id int64) error
}

// DefaultPatientService is the production implementation.
type DefaultPatientService struct {
	Repo patientRepo.PatientRepository
}

func (s *DefaultPatientService) Create(ctx context.Context, req models.CreatePatientRequest) (*models.Patient, error) {
	p := &models.Patient{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *DefaultPatientService) GetByID(ctx context.Context, id int64) (*models.Patient, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *DefaultPatientService) List(ctx context.Context, search string, limit int64) ([]models.Patient, error) {
	return s.Repo.List(ctx, search, limit)
}

func (s *DefaultPatientService) Update(ctx context.Context, id int64, req models.UpdatePatientRequest) (*models.Patient, error) {
	p, err := s.Repo.Update(ctx, id, req)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *DefaultPatientService) RegisterDeviceToken(ctx context.Context, id int64, token string) error {
	if err := s.Repo.AddDeviceToken(ctx, id, token); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *DefaultPatientService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}
