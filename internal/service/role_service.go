package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
)

// ErrUnknownPermission rejects role payloads carrying an unrecognized code.
var ErrUnknownPermission = errors.New("unknown permission code")

// RoleService handles role management.
type RoleService struct {
	roleRepo *repository.RoleRepository
}

// NewRoleService creates a new RoleService.
func NewRoleService(roleRepo *repository.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// GetByID retrieves a role.
func (s *RoleService) GetByID(ctx context.Context, id int) (*model.Role, error) {
	return s.roleRepo.GetByID(ctx, id)
}

// List retrieves all roles.
func (s *RoleService) List(ctx context.Context) ([]model.Role, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []model.Role{}
	}
	return roles, nil
}

// Permissions lists every assignable permission code.
func (s *RoleService) Permissions() []model.StaffPermission {
	return model.AllPermissions
}

func validatePermissions(codes []string) error {
	known := make(map[string]struct{}, len(model.AllPermissions))
	for _, p := range model.AllPermissions {
		known[string(p)] = struct{}{}
	}
	for _, c := range codes {
		if _, ok := known[c]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPermission, c)
		}
	}
	return nil
}

// Create creates a role with its permission set.
func (s *RoleService) Create(ctx context.Context, req *model.CreateRoleRequest) (*model.Role, error) {
	if err := validatePermissions(req.Permissions); err != nil {
		return nil, err
	}
	role := &model.Role{Name: req.Name, Permissions: req.Permissions}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Update replaces a role's name and permission set.
func (s *RoleService) Update(ctx context.Context, id int, req *model.CreateRoleRequest) (*model.Role, error) {
	if err := validatePermissions(req.Permissions); err != nil {
		return nil, err
	}
	if _, err := s.roleRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	role := &model.Role{ID: id, Name: req.Name, Permissions: req.Permissions}
	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	return s.roleRepo.GetByID(ctx, id)
}

// Delete removes a role.
func (s *RoleService) Delete(ctx context.Context, id int) error {
	return s.roleRepo.Delete(ctx, id)
}
