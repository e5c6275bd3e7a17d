package service

import (
	"context"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
)

// LearnerService handles learner CRUD.
type LearnerService struct {
	learnerRepo *repository.LearnerRepository
}

// NewLearnerService creates a new LearnerService.
func NewLearnerService(learnerRepo *repository.LearnerRepository) *LearnerService {
	return &LearnerService{learnerRepo: learnerRepo}
}

// GetByID retrieves a learner together with the linked parents.
func (s *LearnerService) GetByID(ctx context.Context, id int) (*model.LearnerWithParents, error) {
	learner, err := s.learnerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	parents, err := s.learnerRepo.Parents(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.LearnerWithParents{Learner: *learner, Parents: parents}, nil
}

// List retrieves learners, optionally filtered to one class, paginated.
func (s *LearnerService) List(ctx context.Context, classID *int, limit, offset int) ([]model.Learner, int, error) {
	learners, total, err := s.learnerRepo.ListPaginated(ctx, classID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if learners == nil {
		learners = []model.Learner{}
	}
	return learners, total, nil
}

// Create creates a learner.
func (s *LearnerService) Create(ctx context.Context, req *model.CreateLearnerRequest) (*model.Learner, error) {
	learner := &model.Learner{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IDNumber:  req.IDNumber,
		ClassID:   req.ClassID,
		GradeID:   req.GradeID,
		Emails:    req.Emails,
	}
	if err := s.learnerRepo.Create(ctx, learner); err != nil {
		return nil, err
	}
	return learner, nil
}

// Update modifies a learner.
func (s *LearnerService) Update(ctx context.Context, id int, req *model.UpdateLearnerRequest) (*model.Learner, error) {
	learner, err := s.learnerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	learner.FirstName = req.FirstName
	learner.LastName = req.LastName
	learner.IDNumber = req.IDNumber
	learner.ClassID = req.ClassID
	learner.GradeID = req.GradeID
	learner.Emails = req.Emails

	if err := s.learnerRepo.Update(ctx, learner); err != nil {
		return nil, err
	}
	return learner, nil
}

// Delete removes a learner.
func (s *LearnerService) Delete(ctx context.Context, id int) error {
	if _, err := s.learnerRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.learnerRepo.Delete(ctx, id)
}
