package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrImportAborted signals that a batch contained at least one bad row and
// the whole import was rolled back. The returned summary carries the row
// errors for the caller to report.
var ErrImportAborted = errors.New("import aborted, no rows were applied")

// ImportStore runs a batch of import operations inside one transaction.
type ImportStore interface {
	RunInTx(ctx context.Context, fn func(repository.ImportOps) error) error
}

// LearnerImportService performs bulk learner/parent imports and grade
// reassignments. A batch either applies completely or not at all: row errors
// are accumulated across the whole batch, then the transaction is rolled
// back if any occurred, so every error is reported in a single pass.
type LearnerImportService struct {
	store ImportStore
	log   zerolog.Logger
}

// NewLearnerImportService creates a new LearnerImportService.
func NewLearnerImportService(store ImportStore, log zerolog.Logger) *LearnerImportService {
	return &LearnerImportService{
		store: store,
		log:   log.With().Str("component", "learner_import_service").Logger(),
	}
}

// ImportLearnersAndParents imports a batch of learners with their parents.
// Learners whose id-number already exists are skipped, not treated as
// errors. Parents are matched by id-number and created when missing; each
// learner is linked to every parent on its row.
func (s *LearnerImportService) ImportLearnersAndParents(ctx context.Context, rows []model.LearnerImportRow) (*model.ImportSummary, error) {
	summary := &model.ImportSummary{}

	err := s.store.RunInTx(ctx, func(ops repository.ImportOps) error {
		grades, err := ops.GradeIDsByName(ctx)
		if err != nil {
			return err
		}
		classes, err := ops.ClassIDsByName(ctx)
		if err != nil {
			return err
		}

		for i, row := range rows {
			if err := s.importRow(ctx, ops, i, row, grades, classes, summary); err != nil {
				return err
			}
		}

		if len(summary.Errors) > 0 {
			return ErrImportAborted
		}
		return nil
	})

	if errors.Is(err, ErrImportAborted) {
		s.log.Warn().Int("rows", len(rows)).Int("errors", len(summary.Errors)).Msg("Learner import rolled back")
		summary.Created = 0
		summary.Linked = 0
		summary.Skipped = 0
		return summary, ErrImportAborted
	}
	if err != nil {
		return nil, fmt.Errorf("import learners: %w", err)
	}

	s.log.Info().
		Int("created", summary.Created).
		Int("linked", summary.Linked).
		Int("skipped", summary.Skipped).
		Msg("Learner import committed")
	return summary, nil
}

func (s *LearnerImportService) importRow(
	ctx context.Context,
	ops repository.ImportOps,
	idx int,
	row model.LearnerImportRow,
	grades, classes map[string]int,
	summary *model.ImportSummary,
) error {
	_, err := ops.LearnerIDByIDNumber(ctx, row.IDNumber)
	if err == nil {
		summary.Skipped++
		return nil
	}
	if !errors.Is(err, repository.ErrRowNotFound) {
		return err
	}

	gradeID, classID, ok := resolvePlacement(row.GradeName, row.ClassName, grades, classes, idx, summary)
	if !ok {
		return nil
	}

	learner := &model.Learner{
		FirstName: row.FirstName,
		LastName:  row.LastName,
		IDNumber:  row.IDNumber,
		GradeID:   gradeID,
		ClassID:   classID,
		Emails:    row.Emails,
	}
	if err := ops.CreateLearner(ctx, learner); err != nil {
		return err
	}
	summary.Created++

	for _, pr := range row.Parents {
		ref, err := ops.ParentByIDNumber(ctx, pr.IDNumber)
		if errors.Is(err, repository.ErrRowNotFound) {
			parent := &model.Parent{
				FirstName:            pr.FirstName,
				LastName:             pr.LastName,
				IDNumber:             pr.IDNumber,
				ContactNumbers:       pr.ContactNumbers,
				Emails:               pr.Emails,
				ReceiveNotifications: true,
				ReceiveEmails:        true,
			}
			if err := ops.CreateParent(ctx, parent); err != nil {
				return err
			}
			ref = repository.ParentRef{ID: parent.ID, RequireConsent: parent.RequireConsent}
		} else if err != nil {
			return err
		}

		// The link inherits the parent's consent flag so existing
		// consent-requiring parents stay in sync.
		if err := ops.LinkLearnerParent(ctx, learner.ID, ref.ID, ref.RequireConsent); err != nil {
			return err
		}
		summary.Linked++
	}
	return nil
}

// resolvePlacement maps grade/class names to ids. Empty names resolve to no
// placement; unknown names record a row error.
func resolvePlacement(gradeName, className string, grades, classes map[string]int, idx int, summary *model.ImportSummary) (gradeID, classID *int, ok bool) {
	ok = true
	if gradeName != "" {
		id, found := grades[normalizeName(gradeName)]
		if !found {
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: unknown grade %q", idx+1, gradeName))
			ok = false
		} else {
			gradeID = &id
		}
	}
	if className != "" {
		id, found := classes[normalizeName(className)]
		if !found {
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: unknown class %q", idx+1, className))
			ok = false
		} else {
			classID = &id
		}
	}
	return gradeID, classID, ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ReassignGradesByID moves learners, looked up by id-number, to new grades
// and classes. The batch is atomic: an unknown learner, grade, or class
// anywhere in it rolls back every reassignment. Created in the returned
// summary counts reassigned learners.
func (s *LearnerImportService) ReassignGradesByID(ctx context.Context, rows []model.GradeReassignmentRow) (*model.ImportSummary, error) {
	summary := &model.ImportSummary{}

	err := s.store.RunInTx(ctx, func(ops repository.ImportOps) error {
		grades, err := ops.GradeIDsByName(ctx)
		if err != nil {
			return err
		}
		classes, err := ops.ClassIDsByName(ctx)
		if err != nil {
			return err
		}

		for i, row := range rows {
			learnerID, err := ops.LearnerIDByIDNumber(ctx, row.IDNumber)
			if errors.Is(err, repository.ErrRowNotFound) {
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: unknown learner id-number %q", i+1, row.IDNumber))
				continue
			}
			if err != nil {
				return err
			}

			gradeID, classID, ok := resolvePlacement(row.GradeName, row.ClassName, grades, classes, i, summary)
			if !ok {
				continue
			}
			if err := ops.UpdateLearnerPlacement(ctx, learnerID, gradeID, classID); err != nil {
				return err
			}
			summary.Created++
		}

		if len(summary.Errors) > 0 {
			return ErrImportAborted
		}
		return nil
	})

	if errors.Is(err, ErrImportAborted) {
		s.log.Warn().Int("rows", len(rows)).Int("errors", len(summary.Errors)).Msg("Grade reassignment rolled back")
		summary.Created = 0
		return summary, ErrImportAborted
	}
	if err != nil {
		return nil, fmt.Errorf("reassign grades: %w", err)
	}
	return summary, nil
}
