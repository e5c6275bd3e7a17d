package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/rs/zerolog"
)

type fakeParentStore struct {
	parent     *model.Parent
	learnerIDs []int

	updated       *model.Parent
	addedLinks    []int
	removedLinks  []int
	updateCalled  bool
	updateWithErr error
}

func (f *fakeParentStore) GetByID(_ context.Context, id int) (*model.Parent, error) {
	if f.parent == nil || f.parent.ID != id {
		return nil, errors.New("no rows")
	}
	p := *f.parent
	return &p, nil
}

func (f *fakeParentStore) ListPaginated(_ context.Context, _, _ int) ([]model.Parent, int, error) {
	if f.parent == nil {
		return nil, 0, nil
	}
	return []model.Parent{*f.parent}, 1, nil
}

func (f *fakeParentStore) Create(_ context.Context, p *model.Parent) error {
	p.ID = 10
	f.parent = p
	return nil
}

func (f *fakeParentStore) UpdateWithLinks(_ context.Context, p *model.Parent, addLinks, removeLinks []int) error {
	if f.updateWithErr != nil {
		return f.updateWithErr
	}
	f.updateCalled = true
	f.updated = p
	f.addedLinks = addLinks
	f.removedLinks = removeLinks
	return nil
}

func (f *fakeParentStore) Delete(_ context.Context, _ int) error {
	f.parent = nil
	return nil
}

func (f *fakeParentStore) LearnerIDs(_ context.Context, _ int) ([]int, error) {
	return f.learnerIDs, nil
}

func boolPtr(b bool) *bool { return &b }

func TestDiffLinks(t *testing.T) {
	tests := []struct {
		name       string
		existing   []int
		desired    []int
		wantAdd    []int
		wantRemove []int
	}{
		{"no change", []int{1, 2}, []int{1, 2}, nil, nil},
		{"add only", []int{1}, []int{1, 2, 3}, []int{2, 3}, nil},
		{"remove only", []int{1, 2, 3}, []int{2}, nil, []int{1, 3}},
		{"replace", []int{1}, []int{2}, []int{2}, []int{1}},
		{"empty desired removes all", []int{1, 2}, nil, nil, []int{1, 2}},
		{"duplicate desired collapses", []int{}, []int{5, 5}, []int{5}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			add, remove := diffLinks(tt.existing, tt.desired)
			if !equalInts(add, tt.wantAdd) {
				t.Errorf("add = %v, want %v", add, tt.wantAdd)
			}
			if !equalInts(remove, tt.wantRemove) {
				t.Errorf("remove = %v, want %v", remove, tt.wantRemove)
			}
		})
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParentUpdateDiffsLinks(t *testing.T) {
	store := &fakeParentStore{
		parent:     &model.Parent{ID: 10, FirstName: "Mary", RequireConsent: false},
		learnerIDs: []int{1, 2},
	}
	svc := NewParentService(store, zerolog.Nop())

	_, err := svc.Update(context.Background(), 10, &model.UpdateParentRequest{
		FirstName:      "Mary",
		LastName:       "Nkosi",
		IDNumber:       "P001",
		LearnerIDs:     []int{2, 3},
		RequireConsent: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if !equalInts(store.addedLinks, []int{3}) {
		t.Errorf("added = %v, want [3]", store.addedLinks)
	}
	if !equalInts(store.removedLinks, []int{1}) {
		t.Errorf("removed = %v, want [1]", store.removedLinks)
	}
	if store.updated == nil || !store.updated.RequireConsent {
		t.Error("consent flag not carried into the update")
	}
}

func TestParentUpdateKeepsUnsetFlags(t *testing.T) {
	store := &fakeParentStore{
		parent: &model.Parent{ID: 10, ReceiveNotifications: true, ReceiveEmails: false, RequireConsent: true},
	}
	svc := NewParentService(store, zerolog.Nop())

	updated, err := svc.Update(context.Background(), 10, &model.UpdateParentRequest{
		FirstName: "Mary",
		LastName:  "Nkosi",
		IDNumber:  "P001",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.ReceiveNotifications || updated.ReceiveEmails || !updated.RequireConsent {
		t.Errorf("flags changed without being requested: %+v", updated)
	}
}

func TestParentUpdateUnknownParent(t *testing.T) {
	svc := NewParentService(&fakeParentStore{}, zerolog.Nop())

	if _, err := svc.Update(context.Background(), 99, &model.UpdateParentRequest{
		FirstName: "x", LastName: "y", IDNumber: "P999",
	}); err == nil {
		t.Fatal("expected error for unknown parent")
	}
}

func TestParentCreateDefaultsAndLinks(t *testing.T) {
	store := &fakeParentStore{}
	svc := NewParentService(store, zerolog.Nop())

	parent, err := svc.Create(context.Background(), &model.CreateParentRequest{
		FirstName:  "Mary",
		LastName:   "Nkosi",
		IDNumber:   "P001",
		LearnerIDs: []int{1, 2},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !parent.ReceiveNotifications || !parent.ReceiveEmails || parent.RequireConsent {
		t.Errorf("defaults wrong: %+v", parent)
	}
	if !equalInts(store.addedLinks, []int{1, 2}) {
		t.Errorf("links = %v, want [1 2]", store.addedLinks)
	}
}
