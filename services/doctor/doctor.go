package doctor

import (
	"context"
	"errors"

	doctorRepo "clinicore/database/repository/doctor"
	"clinicore/models"
)

var (
	ErrNotFound       = errors.New("doctor not found")
	ErrInvalidWorkday = errors.New("workday end must be after workday start")
)

// DoctorService manages doctor profiles, including the per-doctor workday
// window the slot suggester honours.
type DoctorService interface {
	Create(ctx context.Context, req models.CreateDoctorRequest) (*models.Doctor, error)
	GetByID(ctx context.Context, id int64) (*models.Doctor, error)
	List(ctx context.Context, activeOnly bool) ([]models.Doctor, error)
	Update(ctx context.Context, id int64, req models.UpdateDoctorRequest) (*models.Doctor, error)
	Deactivate(ctx context.Context, id int64) (*models.Doctor, error)
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo doctorRepo.DoctorRepository
}

func validWorkday(start, end int) bool {
	if start == 0 && end == 0 {
		return true
	}
	return start >= 0 && end <= 24*60 && start < end
}

func (s *DefaultDoctorService) Create(ctx context.Context, req models.CreateDoctorRequest) (*models.Doctor, error) {
	if !validWorkday(req.WorkdayStartMinute, req.WorkdayEndMinute) {
		return nil, ErrInvalidWorkday
	}
	doc := &models.Doctor{
		Name:               req.Name,
		Specialty:          req.Specialty,
		Email:              req.Email,
		WorkdayStartMinute: req.WorkdayStartMinute,
		WorkdayEndMinute:   req.WorkdayEndMinute,
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DefaultDoctorService) GetByID(ctx context.Context, id int64) (*models.Doctor, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *DefaultDoctorService) List(ctx context.Context, activeOnly bool) ([]models.Doctor, error) {
	return s.Repo.List(ctx, activeOnly)
}

func (s *DefaultDoctorService) Update(ctx context.Context, id int64, req models.UpdateDoctorRequest) (*models.Doctor, error) {
	if req.WorkdayStartMinute != nil && req.WorkdayEndMinute != nil {
		if !validWorkday(*req.WorkdayStartMinute, *req.WorkdayEndMinute) {
			return nil, ErrInvalidWorkday
		}
	}
	doc, err := s.Repo.Update(ctx, id, req)
	if err != nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Deactivate marks a doctor inactive so they stop appearing in pickers.
// Existing appointments stay untouched.
func (s *DefaultDoctorService) Deactivate(ctx context.Context, id int64) (*models.Doctor, error) {
	inactive := false
	doc, err := s.Repo.Update(ctx, id, models.UpdateDoctorRequest{Active: &inactive})
	if err != nil {
		return nil, ErrNotFound
	}
	return doc, nil
}
