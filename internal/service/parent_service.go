package service

import (
	"context"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/rs/zerolog"
)

// ParentStore is the persistence surface the parent service needs.
type ParentStore interface {
	GetByID(ctx context.Context, id int) (*model.Parent, error)
	ListPaginated(ctx context.Context, limit, offset int) ([]model.Parent, int, error)
	Create(ctx context.Context, p *model.Parent) error
	UpdateWithLinks(ctx context.Context, p *model.Parent, addLinks, removeLinks []int) error
	Delete(ctx context.Context, id int) error
	LearnerIDs(ctx context.Context, parentID int) ([]int, error)
}

// ParentService handles parent CRUD and the update orchestration: an update
// carries the full desired learner-link set, and the service diffs it against
// the stored links so only actual changes touch the link table.
type ParentService struct {
	store ParentStore
	log   zerolog.Logger
}

// NewParentService creates a new ParentService.
func NewParentService(store ParentStore, log zerolog.Logger) *ParentService {
	return &ParentService{
		store: store,
		log:   log.With().Str("component", "parent_service").Logger(),
	}
}

// GetByID retrieves a parent with their linked learner ids.
func (s *ParentService) GetByID(ctx context.Context, id int) (*model.Parent, []int, error) {
	parent, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	learnerIDs, err := s.store.LearnerIDs(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return parent, learnerIDs, nil
}

// List retrieves parents, paginated.
func (s *ParentService) List(ctx context.Context, limit, offset int) ([]model.Parent, int, error) {
	parents, total, err := s.store.ListPaginated(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if parents == nil {
		parents = []model.Parent{}
	}
	return parents, total, nil
}

// Create creates a parent and links the requested learners.
func (s *ParentService) Create(ctx context.Context, req *model.CreateParentRequest) (*model.Parent, error) {
	parent := &model.Parent{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		IDNumber:             req.IDNumber,
		ContactNumbers:       req.ContactNumbers,
		Emails:               req.Emails,
		ReceiveNotifications: boolOrDefault(req.ReceiveNotifications, true),
		ReceiveEmails:        boolOrDefault(req.ReceiveEmails, true),
		RequireConsent:       boolOrDefault(req.RequireConsent, false),
	}
	if err := s.store.Create(ctx, parent); err != nil {
		return nil, err
	}
	if len(req.LearnerIDs) > 0 {
		if err := s.store.UpdateWithLinks(ctx, parent, req.LearnerIDs, nil); err != nil {
			return nil, err
		}
	}
	return parent, nil
}

// Update applies a parent update. Scalars are replaced, the learner links
// are diffed against the desired set, and the consent requirement propagates
// to every link row, all in one transaction.
func (s *ParentService) Update(ctx context.Context, id int, req *model.UpdateParentRequest) (*model.Parent, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.LearnerIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	add, remove := diffLinks(existing, req.LearnerIDs)

	parent := &model.Parent{
		ID:                   id,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		IDNumber:             req.IDNumber,
		ContactNumbers:       req.ContactNumbers,
		Emails:               req.Emails,
		ReceiveNotifications: boolOrDefault(req.ReceiveNotifications, current.ReceiveNotifications),
		ReceiveEmails:        boolOrDefault(req.ReceiveEmails, current.ReceiveEmails),
		RequireConsent:       boolOrDefault(req.RequireConsent, current.RequireConsent),
		CreatedAt:            current.CreatedAt,
	}

	if err := s.store.UpdateWithLinks(ctx, parent, add, remove); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("parent_id", id).
		Int("links_added", len(add)).
		Int("links_removed", len(remove)).
		Msg("Parent updated")
	return parent, nil
}

// Delete removes a parent. Links and consents cascade in the database.
func (s *ParentService) Delete(ctx context.Context, id int) error {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// diffLinks compares the stored link set with the desired one and returns
// the additions and removals. Order follows the input slices.
func diffLinks(existing, desired []int) (add, remove []int) {
	have := make(map[int]struct{}, len(existing))
	for _, id := range existing {
		have[id] = struct{}{}
	}
	want := make(map[int]struct{}, len(desired))
	for _, id := range desired {
		if _, dup := want[id]; dup {
			continue
		}
		want[id] = struct{}{}
		if _, ok := have[id]; !ok {
			add = append(add, id)
		}
	}
	for _, id := range existing {
		if _, ok := want[id]; !ok {
			remove = append(remove, id)
		}
	}
	return add, remove
}

func boolOrDefault(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
