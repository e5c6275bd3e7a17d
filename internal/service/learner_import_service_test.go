package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
	"github.com/rs/zerolog"
)

// fakeImportStore mimics transactional semantics: operations apply to a
// staging copy that only replaces the committed state when the callback
// returns nil.
type fakeImportStore struct {
	grades  map[string]int
	classes map[string]int

	committed *importState
}

type importState struct {
	nextID     int
	learners   map[string]*model.Learner // by id-number, lowercased
	parents    map[string]*model.Parent
	links      map[[2]int]bool
	placements map[int][2]*int
}

func newImportState() *importState {
	return &importState{
		nextID:     1,
		learners:   make(map[string]*model.Learner),
		parents:    make(map[string]*model.Parent),
		links:      make(map[[2]int]bool),
		placements: make(map[int][2]*int),
	}
}

func (s *importState) clone() *importState {
	c := newImportState()
	c.nextID = s.nextID
	for k, v := range s.learners {
		l := *v
		c.learners[k] = &l
	}
	for k, v := range s.parents {
		p := *v
		c.parents[k] = &p
	}
	for k, v := range s.links {
		c.links[k] = v
	}
	for k, v := range s.placements {
		c.placements[k] = v
	}
	return c
}

func newFakeImportStore() *fakeImportStore {
	return &fakeImportStore{
		grades:    map[string]int{"grade 7": 70, "grade 8": 80},
		classes:   map[string]int{"7a": 71, "8b": 81},
		committed: newImportState(),
	}
}

func (f *fakeImportStore) RunInTx(_ context.Context, fn func(repository.ImportOps) error) error {
	staging := f.committed.clone()
	ops := &fakeImportOps{store: f, state: staging}
	if err := fn(ops); err != nil {
		return err
	}
	f.committed = staging
	return nil
}

type fakeImportOps struct {
	store *fakeImportStore
	state *importState
}

func (o *fakeImportOps) GradeIDsByName(_ context.Context) (map[string]int, error) {
	return o.store.grades, nil
}

func (o *fakeImportOps) ClassIDsByName(_ context.Context) (map[string]int, error) {
	return o.store.classes, nil
}

func (o *fakeImportOps) LearnerIDByIDNumber(_ context.Context, idNumber string) (int, error) {
	if l, ok := o.state.learners[strings.ToLower(idNumber)]; ok {
		return l.ID, nil
	}
	return 0, repository.ErrRowNotFound
}

func (o *fakeImportOps) CreateLearner(_ context.Context, l *model.Learner) error {
	l.ID = o.state.nextID
	o.state.nextID++
	o.state.learners[strings.ToLower(l.IDNumber)] = l
	return nil
}

func (o *fakeImportOps) ParentByIDNumber(_ context.Context, idNumber string) (repository.ParentRef, error) {
	if p, ok := o.state.parents[strings.ToLower(idNumber)]; ok {
		return repository.ParentRef{ID: p.ID, RequireConsent: p.RequireConsent}, nil
	}
	return repository.ParentRef{}, repository.ErrRowNotFound
}

func (o *fakeImportOps) CreateParent(_ context.Context, p *model.Parent) error {
	p.ID = o.state.nextID
	o.state.nextID++
	o.state.parents[strings.ToLower(p.IDNumber)] = p
	return nil
}

func (o *fakeImportOps) LinkLearnerParent(_ context.Context, learnerID, parentID int, consentRequired bool) error {
	o.state.links[[2]int{learnerID, parentID}] = consentRequired
	return nil
}

func (o *fakeImportOps) UpdateLearnerPlacement(_ context.Context, learnerID int, gradeID, classID *int) error {
	o.state.placements[learnerID] = [2]*int{gradeID, classID}
	return nil
}

func importRow(idNumber, grade, class string, parents ...model.ParentImportRow) model.LearnerImportRow {
	return model.LearnerImportRow{
		FirstName: "Thabo",
		LastName:  "Nkosi",
		IDNumber:  idNumber,
		GradeName: grade,
		ClassName: class,
		Parents:   parents,
	}
}

func TestImportCreatesLearnersAndLinksParents(t *testing.T) {
	store := newFakeImportStore()
	svc := NewLearnerImportService(store, zerolog.Nop())

	summary, err := svc.ImportLearnersAndParents(context.Background(), []model.LearnerImportRow{
		importRow("L001", "Grade 7", "7A",
			model.ParentImportRow{FirstName: "Mary", LastName: "Nkosi", IDNumber: "P001"}),
		importRow("L002", "Grade 8", "8B",
			model.ParentImportRow{FirstName: "Mary", LastName: "Nkosi", IDNumber: "P001"},
			model.ParentImportRow{FirstName: "John", LastName: "Nkosi", IDNumber: "P002"}),
	})
	if err != nil {
		t.Fatalf("ImportLearnersAndParents: %v", err)
	}

	if summary.Created != 2 || summary.Linked != 3 || summary.Skipped != 0 {
		t.Errorf("summary = %+v, want 2 created, 3 linked", summary)
	}
	// P001 appears on both rows but must be created exactly once.
	if len(store.committed.parents) != 2 {
		t.Errorf("got %d parents, want P001 reused and P002 created", len(store.committed.parents))
	}
	if len(store.committed.links) != 3 {
		t.Errorf("got %d links, want 3", len(store.committed.links))
	}
	l1 := store.committed.learners["l001"]
	if l1 == nil || l1.GradeID == nil || *l1.GradeID != 70 || l1.ClassID == nil || *l1.ClassID != 71 {
		t.Errorf("learner L001 placement wrong: %+v", l1)
	}
}

func TestImportLinkInheritsParentConsentFlag(t *testing.T) {
	store := newFakeImportStore()
	store.committed.parents["p001"] = &model.Parent{
		ID:             99,
		FirstName:      "Mary",
		LastName:       "Nkosi",
		IDNumber:       "P001",
		RequireConsent: true,
	}
	store.committed.nextID = 100
	svc := NewLearnerImportService(store, zerolog.Nop())

	_, err := svc.ImportLearnersAndParents(context.Background(), []model.LearnerImportRow{
		importRow("L001", "", "",
			model.ParentImportRow{FirstName: "Mary", LastName: "Nkosi", IDNumber: "P001"},
			model.ParentImportRow{FirstName: "John", LastName: "Nkosi", IDNumber: "P002"}),
	})
	if err != nil {
		t.Fatalf("ImportLearnersAndParents: %v", err)
	}

	learnerID := store.committed.learners["l001"].ID
	if got, ok := store.committed.links[[2]int{learnerID, 99}]; !ok || !got {
		t.Errorf("link to consent-requiring parent: consent=%t, want true", got)
	}
	newParent := store.committed.parents["p002"]
	if newParent == nil {
		t.Fatal("parent P002 not created")
	}
	if got := store.committed.links[[2]int{learnerID, newParent.ID}]; got {
		t.Error("link to freshly created parent should not require consent")
	}
}

func TestImportSkipsExistingLearners(t *testing.T) {
	store := newFakeImportStore()
	svc := NewLearnerImportService(store, zerolog.Nop())

	if _, err := svc.ImportLearnersAndParents(context.Background(), []model.LearnerImportRow{
		importRow("L001", "", ""),
	}); err != nil {
		t.Fatalf("first import: %v", err)
	}

	summary, err := svc.ImportLearnersAndParents(context.Background(), []model.LearnerImportRow{
		importRow("l001", "", ""), // same id-number, different case
		importRow("L002", "", ""),
	})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if summary.Created != 1 || summary.Skipped != 1 {
		t.Errorf("summary = %+v, want 1 created, 1 skipped", summary)
	}
}

func TestImportUnknownGradeRollsBackWholeBatch(t *testing.T) {
	store := newFakeImportStore()
	svc := NewLearnerImportService(store, zerolog.Nop())

	summary, err := svc.ImportLearnersAndParents(context.Background(), []model.LearnerImportRow{
		importRow("L001", "Grade 7", "7A"),
		importRow("L002", "Grade 13", ""), // unknown grade
		importRow("L003", "", "9z"),       // unknown class
	})
	if !errors.Is(err, ErrImportAborted) {
		t.Fatalf("got %v, want ErrImportAborted", err)
	}
	if len(summary.Errors) != 2 {
		t.Errorf("errors = %v, want both bad rows reported", summary.Errors)
	}
	if summary.Created != 0 {
		t.Errorf("rolled-back summary reports %d created", summary.Created)
	}
	if len(store.committed.learners) != 0 {
		t.Errorf("rollback left %d learners committed", len(store.committed.learners))
	}
}

func TestReassignGradesByID(t *testing.T) {
	store := newFakeImportStore()
	svc := NewLearnerImportService(store, zerolog.Nop())

	if _, err := svc.ImportLearnersAndParents(context.Background(), []model.LearnerImportRow{
		importRow("L001", "Grade 7", "7A"),
	}); err != nil {
		t.Fatalf("seed import: %v", err)
	}

	summary, err := svc.ReassignGradesByID(context.Background(), []model.GradeReassignmentRow{
		{IDNumber: "L001", GradeName: "Grade 8", ClassName: "8B"},
	})
	if err != nil {
		t.Fatalf("ReassignGradesByID: %v", err)
	}
	if summary.Created != 1 {
		t.Errorf("summary = %+v, want 1 reassigned", summary)
	}

	learnerID := store.committed.learners["l001"].ID
	placement := store.committed.placements[learnerID]
	if placement[0] == nil || *placement[0] != 80 || placement[1] == nil || *placement[1] != 81 {
		t.Errorf("placement = %v, want grade 80 class 81", placement)
	}
}

func TestReassignUnknownLearnerRollsBack(t *testing.T) {
	store := newFakeImportStore()
	svc := NewLearnerImportService(store, zerolog.Nop())

	if _, err := svc.ImportLearnersAndParents(context.Background(), []model.LearnerImportRow{
		importRow("L001", "", ""),
	}); err != nil {
		t.Fatalf("seed import: %v", err)
	}

	summary, err := svc.ReassignGradesByID(context.Background(), []model.GradeReassignmentRow{
		{IDNumber: "L001", GradeName: "Grade 8"},
		{IDNumber: "MISSING", GradeName: "Grade 8"},
	})
	if !errors.Is(err, ErrImportAborted) {
		t.Fatalf("got %v, want ErrImportAborted", err)
	}
	if len(summary.Errors) != 1 {
		t.Errorf("errors = %v", summary.Errors)
	}
	if len(store.committed.placements) != 0 {
		t.Errorf("rollback left %d placements committed", len(store.committed.placements))
	}
}
