package service

import (
	"context"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/rs/zerolog"
)

// RecipientStore supplies flat recipient projections per relationship path.
type RecipientStore interface {
	ClassLearners(ctx context.Context, classID int) ([]model.Recipient, error)
	ClassLearnerParents(ctx context.Context, classID int) ([]model.Recipient, error)
	ClassTeachers(ctx context.Context, classID int) ([]model.Recipient, error)
	AllTeachers(ctx context.Context) ([]model.Recipient, error)
	AllParents(ctx context.Context) ([]model.Recipient, error)
	AllLearners(ctx context.Context) ([]model.Recipient, error)
	ParentSelf(ctx context.Context, parentID int) (*model.Recipient, error)
	LearnersOfParent(ctx context.Context, parentID int) ([]model.Recipient, error)
}

// RecipientService assembles de-duplicated notification recipient lists by
// walking relationship paths and merging their projections. A recipient
// reachable through several paths appears exactly once, keeping the first
// occurrence; relative order within each path is preserved.
type RecipientService struct {
	store RecipientStore
	log   zerolog.Logger
}

// NewRecipientService creates a new RecipientService.
func NewRecipientService(store RecipientStore, log zerolog.Logger) *RecipientService {
	return &RecipientService{
		store: store,
		log:   log.With().Str("component", "recipient_service").Logger(),
	}
}

// appendUnique merges src into dst, skipping entries whose kind+id key was
// already seen. seen is shared across calls so paths de-duplicate against
// each other.
func appendUnique(dst []model.Recipient, src []model.Recipient, seen map[string]struct{}) []model.Recipient {
	for _, r := range src {
		key := r.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dst = append(dst, r)
	}
	return dst
}

// ClassNotificationList builds the recipients of a class notification: the
// class's learners, their parents, and the class's teachers.
func (s *RecipientService) ClassNotificationList(ctx context.Context, classID int) ([]model.Recipient, error) {
	seen := make(map[string]struct{})
	out := []model.Recipient{}

	learners, err := s.store.ClassLearners(ctx, classID)
	if err != nil {
		return nil, err
	}
	out = appendUnique(out, learners, seen)

	parents, err := s.store.ClassLearnerParents(ctx, classID)
	if err != nil {
		return nil, err
	}
	out = appendUnique(out, parents, seen)

	teachers, err := s.store.ClassTeachers(ctx, classID)
	if err != nil {
		return nil, err
	}
	out = appendUnique(out, teachers, seen)

	return out, nil
}

// TeachersNotificationList builds the all-teachers recipient list.
func (s *RecipientService) TeachersNotificationList(ctx context.Context) ([]model.Recipient, error) {
	seen := make(map[string]struct{})
	teachers, err := s.store.AllTeachers(ctx)
	if err != nil {
		return nil, err
	}
	return appendUnique([]model.Recipient{}, teachers, seen), nil
}

// ParentNotificationList builds the recipients of a parent-scoped
// notification: the parent followed by their learners.
func (s *RecipientService) ParentNotificationList(ctx context.Context, parentID int) ([]model.Recipient, error) {
	seen := make(map[string]struct{})
	out := []model.Recipient{}

	parent, err := s.store.ParentSelf(ctx, parentID)
	if err != nil {
		return nil, err
	}
	out = appendUnique(out, []model.Recipient{*parent}, seen)

	learners, err := s.store.LearnersOfParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	out = appendUnique(out, learners, seen)

	return out, nil
}

// GlobalMailRecipientList builds the whole-school mail list: every parent,
// teacher, and learner.
func (s *RecipientService) GlobalMailRecipientList(ctx context.Context) ([]model.Recipient, error) {
	seen := make(map[string]struct{})
	out := []model.Recipient{}

	parents, err := s.store.AllParents(ctx)
	if err != nil {
		return nil, err
	}
	out = appendUnique(out, parents, seen)

	teachers, err := s.store.AllTeachers(ctx)
	if err != nil {
		return nil, err
	}
	out = appendUnique(out, teachers, seen)

	learners, err := s.store.AllLearners(ctx)
	if err != nil {
		return nil, err
	}
	out = appendUnique(out, learners, seen)

	return out, nil
}
