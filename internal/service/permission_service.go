package service

import (
	"context"
	"errors"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
)

// ErrDirectionRequired rejects transport consents without a leg.
var ErrDirectionRequired = errors.New("transport consent requires a direction")

// PermissionService handles parent consent records.
type PermissionService struct {
	permissionRepo *repository.PermissionRepository
}

// NewPermissionService creates a new PermissionService.
func NewPermissionService(permissionRepo *repository.PermissionRepository) *PermissionService {
	return &PermissionService{permissionRepo: permissionRepo}
}

// ListByActivityGroup retrieves the consents recorded against a group.
func (s *PermissionService) ListByActivityGroup(ctx context.Context, groupID int) ([]model.ParentPermission, error) {
	perms, err := s.permissionRepo.ListByActivityGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if perms == nil {
		perms = []model.ParentPermission{}
	}
	return perms, nil
}

// ListByLearner retrieves the consents recorded for a learner.
func (s *PermissionService) ListByLearner(ctx context.Context, learnerID int) ([]model.ParentPermission, error) {
	perms, err := s.permissionRepo.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if perms == nil {
		perms = []model.ParentPermission{}
	}
	return perms, nil
}

// Create records a consent. Transport consents must carry a direction;
// attendance consents must not.
func (s *PermissionService) Create(ctx context.Context, req *model.CreatePermissionRequest) (*model.ParentPermission, error) {
	perm := &model.ParentPermission{
		ParentID:        req.ParentID,
		LearnerID:       req.LearnerID,
		ActivityGroupID: req.ActivityGroupID,
		Type:            req.Type,
		Direction:       req.Direction,
	}
	if perm.Type == model.ConsentTransport && perm.Direction == "" {
		return nil, ErrDirectionRequired
	}
	if perm.Type == model.ConsentAttendance {
		perm.Direction = ""
	}
	if err := s.permissionRepo.Create(ctx, perm); err != nil {
		return nil, err
	}
	return perm, nil
}

// Delete removes a consent.
func (s *PermissionService) Delete(ctx context.Context, id int) error {
	return s.permissionRepo.Delete(ctx, id)
}
