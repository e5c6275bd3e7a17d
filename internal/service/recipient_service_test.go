package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/rs/zerolog"
)

type fakeRecipientStore struct {
	classLearners       map[int][]model.Recipient
	classLearnerParents map[int][]model.Recipient
	classTeachers       map[int][]model.Recipient
	allTeachers         []model.Recipient
	allParents          []model.Recipient
	allLearners         []model.Recipient
	parents             map[int]model.Recipient
	learnersOfParent    map[int][]model.Recipient
}

func (f *fakeRecipientStore) ClassLearners(_ context.Context, classID int) ([]model.Recipient, error) {
	return f.classLearners[classID], nil
}

func (f *fakeRecipientStore) ClassLearnerParents(_ context.Context, classID int) ([]model.Recipient, error) {
	return f.classLearnerParents[classID], nil
}

func (f *fakeRecipientStore) ClassTeachers(_ context.Context, classID int) ([]model.Recipient, error) {
	return f.classTeachers[classID], nil
}

func (f *fakeRecipientStore) AllTeachers(_ context.Context) ([]model.Recipient, error) {
	return f.allTeachers, nil
}

func (f *fakeRecipientStore) AllParents(_ context.Context) ([]model.Recipient, error) {
	return f.allParents, nil
}

func (f *fakeRecipientStore) AllLearners(_ context.Context) ([]model.Recipient, error) {
	return f.allLearners, nil
}

func (f *fakeRecipientStore) ParentSelf(_ context.Context, parentID int) (*model.Recipient, error) {
	p, ok := f.parents[parentID]
	if !ok {
		return nil, errors.New("no rows")
	}
	return &p, nil
}

func (f *fakeRecipientStore) LearnersOfParent(_ context.Context, parentID int) ([]model.Recipient, error) {
	return f.learnersOfParent[parentID], nil
}

func learnerRecipient(id int) model.Recipient {
	return model.Recipient{Kind: model.RecipientLearner, ID: id}
}

func parentRecipient(id int) model.Recipient {
	return model.Recipient{Kind: model.RecipientParent, ID: id, ReceiveNotifications: true}
}

func teacherRecipient(id int) model.Recipient {
	return model.Recipient{Kind: model.RecipientTeacher, ID: id}
}

func keys(recipients []model.Recipient) []string {
	out := make([]string, 0, len(recipients))
	for _, r := range recipients {
		out = append(out, r.Key())
	}
	return out
}

func assertKeys(t *testing.T, got []model.Recipient, want ...string) {
	t.Helper()
	gotKeys := keys(got)
	if len(gotKeys) != len(want) {
		t.Fatalf("got %v, want %v", gotKeys, want)
	}
	for i := range want {
		if gotKeys[i] != want[i] {
			t.Fatalf("got %v, want %v", gotKeys, want)
		}
	}
}

func TestClassNotificationListMergesPaths(t *testing.T) {
	store := &fakeRecipientStore{
		classLearners:       map[int][]model.Recipient{5: {learnerRecipient(1), learnerRecipient(2)}},
		classLearnerParents: map[int][]model.Recipient{5: {parentRecipient(10), parentRecipient(11)}},
		classTeachers:       map[int][]model.Recipient{5: {teacherRecipient(100)}},
	}
	svc := NewRecipientService(store, zerolog.Nop())

	got, err := svc.ClassNotificationList(context.Background(), 5)
	if err != nil {
		t.Fatalf("ClassNotificationList: %v", err)
	}
	assertKeys(t, got, "learner:1", "learner:2", "parent:10", "parent:11", "teacher:100")
}

func TestClassNotificationListDeduplicatesSharedParent(t *testing.T) {
	// Parent 10 has two children in the class, so the join returns them twice.
	store := &fakeRecipientStore{
		classLearners: map[int][]model.Recipient{5: {learnerRecipient(1), learnerRecipient(2)}},
		classLearnerParents: map[int][]model.Recipient{5: {
			parentRecipient(10), parentRecipient(10), parentRecipient(11),
		}},
		classTeachers: map[int][]model.Recipient{5: {teacherRecipient(100)}},
	}
	svc := NewRecipientService(store, zerolog.Nop())

	got, err := svc.ClassNotificationList(context.Background(), 5)
	if err != nil {
		t.Fatalf("ClassNotificationList: %v", err)
	}
	assertKeys(t, got, "learner:1", "learner:2", "parent:10", "parent:11", "teacher:100")
}

func TestClassNotificationListKindsDoNotCollide(t *testing.T) {
	// A learner and a parent sharing numeric id 7 are distinct recipients.
	store := &fakeRecipientStore{
		classLearners:       map[int][]model.Recipient{5: {learnerRecipient(7)}},
		classLearnerParents: map[int][]model.Recipient{5: {parentRecipient(7)}},
	}
	svc := NewRecipientService(store, zerolog.Nop())

	got, err := svc.ClassNotificationList(context.Background(), 5)
	if err != nil {
		t.Fatalf("ClassNotificationList: %v", err)
	}
	assertKeys(t, got, "learner:7", "parent:7")
}

func TestClassNotificationListEmptyClass(t *testing.T) {
	svc := NewRecipientService(&fakeRecipientStore{}, zerolog.Nop())

	got, err := svc.ClassNotificationList(context.Background(), 99)
	if err != nil {
		t.Fatalf("ClassNotificationList: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil list", got)
	}
}

func TestParentNotificationListParentFirst(t *testing.T) {
	store := &fakeRecipientStore{
		parents:          map[int]model.Recipient{10: parentRecipient(10)},
		learnersOfParent: map[int][]model.Recipient{10: {learnerRecipient(1), learnerRecipient(2)}},
	}
	svc := NewRecipientService(store, zerolog.Nop())

	got, err := svc.ParentNotificationList(context.Background(), 10)
	if err != nil {
		t.Fatalf("ParentNotificationList: %v", err)
	}
	assertKeys(t, got, "parent:10", "learner:1", "learner:2")
}

func TestGlobalMailRecipientListCoversEveryone(t *testing.T) {
	store := &fakeRecipientStore{
		allParents:  []model.Recipient{parentRecipient(10)},
		allTeachers: []model.Recipient{teacherRecipient(100), teacherRecipient(101)},
		allLearners: []model.Recipient{learnerRecipient(1)},
	}
	svc := NewRecipientService(store, zerolog.Nop())

	got, err := svc.GlobalMailRecipientList(context.Background())
	if err != nil {
		t.Fatalf("GlobalMailRecipientList: %v", err)
	}
	assertKeys(t, got, "parent:10", "teacher:100", "teacher:101", "learner:1")
}

func TestRecipientListsKeepEmaillessEntries(t *testing.T) {
	noEmail := model.Recipient{Kind: model.RecipientParent, ID: 10, Emails: nil}
	store := &fakeRecipientStore{allParents: []model.Recipient{noEmail}}
	svc := NewRecipientService(store, zerolog.Nop())

	got, err := svc.GlobalMailRecipientList(context.Background())
	if err != nil {
		t.Fatalf("GlobalMailRecipientList: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("recipient without email was dropped: %v", got)
	}
}
