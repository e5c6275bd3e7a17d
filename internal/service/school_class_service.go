package service

import (
	"context"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
)

// SchoolClassService handles grade and class management.
type SchoolClassService struct {
	classRepo *repository.SchoolClassRepository
}

// NewSchoolClassService creates a new SchoolClassService.
func NewSchoolClassService(classRepo *repository.SchoolClassRepository) *SchoolClassService {
	return &SchoolClassService{classRepo: classRepo}
}

// ListGrades retrieves all grades.
func (s *SchoolClassService) ListGrades(ctx context.Context) ([]model.SchoolGrade, error) {
	grades, err := s.classRepo.ListGrades(ctx)
	if err != nil {
		return nil, err
	}
	if grades == nil {
		grades = []model.SchoolGrade{}
	}
	return grades, nil
}

// CreateGrade creates a grade.
func (s *SchoolClassService) CreateGrade(ctx context.Context, req *model.CreateGradeRequest) (*model.SchoolGrade, error) {
	grade := &model.SchoolGrade{Name: req.Name}
	if err := s.classRepo.CreateGrade(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// UpdateGrade renames a grade.
func (s *SchoolClassService) UpdateGrade(ctx context.Context, id int, req *model.CreateGradeRequest) (*model.SchoolGrade, error) {
	grade := &model.SchoolGrade{ID: id, Name: req.Name}
	if err := s.classRepo.UpdateGrade(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// DeleteGrade removes a grade.
func (s *SchoolClassService) DeleteGrade(ctx context.Context, id int) error {
	return s.classRepo.DeleteGrade(ctx, id)
}

// ListClasses retrieves all classes.
func (s *SchoolClassService) ListClasses(ctx context.Context) ([]model.SchoolClass, error) {
	classes, err := s.classRepo.ListClasses(ctx)
	if err != nil {
		return nil, err
	}
	if classes == nil {
		classes = []model.SchoolClass{}
	}
	return classes, nil
}

// CreateClass creates a class under a grade.
func (s *SchoolClassService) CreateClass(ctx context.Context, req *model.CreateClassRequest) (*model.SchoolClass, error) {
	class := &model.SchoolClass{Name: req.Name, GradeID: req.GradeID}
	if err := s.classRepo.CreateClass(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// UpdateClass modifies a class.
func (s *SchoolClassService) UpdateClass(ctx context.Context, id int, req *model.CreateClassRequest) (*model.SchoolClass, error) {
	class, err := s.classRepo.GetClass(ctx, id)
	if err != nil {
		return nil, err
	}
	class.Name = req.Name
	class.GradeID = req.GradeID
	if err := s.classRepo.UpdateClass(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// DeleteClass removes a class.
func (s *SchoolClassService) DeleteClass(ctx context.Context, id int) error {
	if _, err := s.classRepo.GetClass(ctx, id); err != nil {
		return err
	}
	return s.classRepo.DeleteClass(ctx, id)
}
