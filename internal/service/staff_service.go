package service

import (
	"context"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
)

// StaffService handles staff account management.
type StaffService struct {
	staffRepo *repository.StaffRepository
	auth      *AuthService
}

// NewStaffService creates a new StaffService.
func NewStaffService(staffRepo *repository.StaffRepository, auth *AuthService) *StaffService {
	return &StaffService{staffRepo: staffRepo, auth: auth}
}

// GetByID retrieves a staff account.
func (s *StaffService) GetByID(ctx context.Context, id int) (*model.Staff, error) {
	return s.staffRepo.GetByID(ctx, id)
}

// List retrieves all staff accounts.
func (s *StaffService) List(ctx context.Context) ([]model.Staff, error) {
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		staff = []model.Staff{}
	}
	return staff, nil
}

// Create creates a staff account with a hashed password.
func (s *StaffService) Create(ctx context.Context, req *model.CreateStaffRequest) (*model.Staff, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	staff := &model.Staff{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		RoleID:       req.RoleID,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Update modifies a staff account. An empty password keeps the current one.
func (s *StaffService) Update(ctx context.Context, id int, req *model.UpdateStaffRequest) (*model.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	staff.Email = req.Email
	staff.Name = req.Name
	staff.RoleID = req.RoleID
	staff.PasswordHash = ""
	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		staff.PasswordHash = hash
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return s.staffRepo.GetByID(ctx, id)
}

// Delete removes a staff account and invalidates its session.
func (s *StaffService) Delete(ctx context.Context, id int) error {
	if _, err := s.staffRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.auth.Logout(ctx, id)
}

// Login authenticates a staff account and issues a session token.
func (s *StaffService) Login(ctx context.Context, req *model.StaffLoginRequest) (*model.StaffLoginResponse, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.auth.CheckPassword(staff.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	perms, err := s.staffRepo.Permissions(ctx, staff.ID)
	if err != nil {
		return nil, err
	}
	token, err := s.auth.GenerateStaffToken(ctx, staff.ID, staff.RoleID, perms)
	if err != nil {
		return nil, err
	}

	return &model.StaffLoginResponse{Token: token, Staff: *staff}, nil
}
