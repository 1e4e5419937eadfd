package staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	staffRepo "clinicore/database/repository/staff"
	"clinicore/models"
	"clinicore/utils"
)

var (
	ErrNotFound           = errors.New("staff account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("unknown staff role")
)

const tokenLifetime = 24 * time.Hour

// StaffService handles staff account registration and login.
type StaffService interface {
	Register(ctx context.Context, req models.RegisterStaffRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	RegisterDeviceToken(ctx context.Context, id string, token string) error
}

// DefaultStaffService is the production implementation.
type DefaultStaffService struct {
	Repo staffRepo.StaffRepository
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleReceptionist, models.RoleDoctor:
		return true
	}
	return false
}

// Register creates a staff account with a bcrypt-hashed password and returns
// a signed token so the client is logged in immediately.
func (s *DefaultStaffService) Register(ctx context.Context, req models.RegisterStaffRequest) (*models.AuthResponse, error) {
	if !validRole(req.Role) {
		return nil, ErrInvalidRole
	}
	if existing, _ := s.Repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	member := &models.Staff{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		DoctorID:     req.DoctorID,
	}
	if err := s.Repo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create staff: %w", err)
	}

	token, err := utils.GenerateToken(member.ID, member.Email, member.Role, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &models.AuthResponse{Token: token, Staff: *member}, nil
}

// Login verifies credentials and issues a fresh token. Unknown email and
// wrong password report the same error.
func (s *DefaultStaffService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	member, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(member.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(member.ID, member.Email, member.Role, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &models.AuthResponse{Token: token, Staff: *member}, nil
}

func (s *DefaultStaffService) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	member, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return member, nil
}

func (s *DefaultStaffService) RegisterDeviceToken(ctx context.Context, id string, token string) error {
	if err := s.Repo.AddDeviceToken(ctx, id, token); err != nil {
		return ErrNotFound
	}
	return nil
}
