package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/queue"
	"github.com/rs/zerolog"
)

type fakeAttendanceStore struct {
	classRosters    map[int][]model.RosterMember
	activityRosters map[int][]model.RosterMember
	teamRosters     map[int][]model.RosterMember
	transportCalls  []model.ConsentDirection
	transportRoster []model.RosterMember

	createdGroup   *model.AttendanceGroup
	createdRecords []model.AttendanceRecord
	createErr      error
	getGroupErr    error

	learners map[int]*model.LearnerWithParents
}

func (f *fakeAttendanceStore) ClassRoster(_ context.Context, classID int) ([]model.RosterMember, error) {
	return f.classRosters[classID], nil
}

func (f *fakeAttendanceStore) ActivityGroupRoster(_ context.Context, groupID int) ([]model.RosterMember, error) {
	return f.activityRosters[groupID], nil
}

func (f *fakeAttendanceStore) EventTeamRoster(_ context.Context, teamID int) ([]model.RosterMember, error) {
	return f.teamRosters[teamID], nil
}

func (f *fakeAttendanceStore) TransportRoster(_ context.Context, _ int, leg model.ConsentDirection) ([]model.RosterMember, error) {
	f.transportCalls = append(f.transportCalls, leg)
	return f.transportRoster, nil
}

func (f *fakeAttendanceStore) CreateGroup(_ context.Context, group *model.AttendanceGroup, records []model.AttendanceRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdGroup = group
	f.createdRecords = records
	return nil
}

func (f *fakeAttendanceStore) GetGroup(_ context.Context, id uuid.UUID) (*model.AttendanceGroup, error) {
	if f.getGroupErr != nil {
		return nil, f.getGroupErr
	}
	if f.createdGroup != nil && f.createdGroup.ID == id {
		return f.createdGroup, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAttendanceStore) GroupRecords(_ context.Context, _ uuid.UUID) ([]model.AttendanceRecordDetail, error) {
	var details []model.AttendanceRecordDetail
	for _, rec := range f.createdRecords {
		details = append(details, model.AttendanceRecordDetail{AttendanceRecord: rec})
	}
	return details, nil
}

func (f *fakeAttendanceStore) LearnerWithParents(_ context.Context, learnerID int) (*model.LearnerWithParents, error) {
	lw, ok := f.learners[learnerID]
	if !ok {
		return nil, errors.New("no rows")
	}
	return lw, nil
}

type fakeSettings struct {
	values map[string]string
}

func (f *fakeSettings) Get(_ context.Context, key, fallback string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return fallback, nil
}

type fakeExporter struct {
	sheetName string
	headers   []string
	rows      [][]interface{}
}

func (f *fakeExporter) Export(sheetName string, headers []string, rows [][]interface{}) (string, error) {
	f.sheetName = sheetName
	f.headers = headers
	f.rows = rows
	return "out.xlsx", nil
}

func newTestAttendanceService(store *fakeAttendanceStore, settings *fakeSettings, outbox queue.Queue) *AttendanceService {
	if settings == nil {
		settings = &fakeSettings{}
	}
	if outbox == nil {
		outbox = queue.NewInMemory(16)
	}
	return NewAttendanceService(store, settings, outbox, &fakeExporter{}, nil, zerolog.Nop())
}

func roster(ids ...int) []model.RosterMember {
	var out []model.RosterMember
	for _, id := range ids {
		out = append(out, model.RosterMember{LearnerID: id, FirstName: "F", LastName: "L"})
	}
	return out
}

func TestBuildChecklistPerType(t *testing.T) {
	store := &fakeAttendanceStore{
		classRosters:    map[int][]model.RosterMember{7: roster(1, 2, 3)},
		activityRosters: map[int][]model.RosterMember{8: roster(4)},
		teamRosters:     map[int][]model.RosterMember{9: roster(5, 6)},
		transportRoster: roster(10),
	}
	svc := newTestAttendanceService(store, nil, nil)

	tests := []struct {
		name  string
		typ   model.AttendanceType
		ref   int
		count int
	}{
		{"class", model.AttendanceTypeClass, 7, 3},
		{"activity group", model.AttendanceTypeActivityGroup, 8, 1},
		{"event team", model.AttendanceTypeEventTeam, 9, 2},
		{"transport to", model.AttendanceTypeEventTransportTo, 8, 1},
		{"transport from", model.AttendanceTypeEventTransportFrom, 8, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, msg, err := svc.BuildChecklist(context.Background(), tt.typ, tt.ref)
			if err != nil {
				t.Fatalf("BuildChecklist: %v", err)
			}
			if msg != "" {
				t.Errorf("unexpected message %q", msg)
			}
			if len(entries) != tt.count {
				t.Fatalf("got %d entries, want %d", len(entries), tt.count)
			}
			for _, e := range entries {
				if e.Status != model.AttendanceStatusPresent {
					t.Errorf("learner %d prefilled as %q, want present", e.LearnerID, e.Status)
				}
			}
		})
	}
}

func TestBuildChecklistTransportLegs(t *testing.T) {
	store := &fakeAttendanceStore{transportRoster: roster(1)}
	svc := newTestAttendanceService(store, nil, nil)

	if _, _, err := svc.BuildChecklist(context.Background(), model.AttendanceTypeEventTransportTo, 3); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.BuildChecklist(context.Background(), model.AttendanceTypeEventTransportFrom, 3); err != nil {
		t.Fatal(err)
	}

	want := []model.ConsentDirection{model.DirectionTo, model.DirectionFrom}
	if len(store.transportCalls) != 2 || store.transportCalls[0] != want[0] || store.transportCalls[1] != want[1] {
		t.Errorf("transport legs queried = %v, want %v", store.transportCalls, want)
	}
}

func TestBuildChecklistUnknownTypeYieldsEmptyList(t *testing.T) {
	svc := newTestAttendanceService(&fakeAttendanceStore{}, nil, nil)

	entries, msg, err := svc.BuildChecklist(context.Background(), model.AttendanceType("holiday"), 1)
	if err != nil {
		t.Fatalf("unknown type must not error, got %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("got %v, want empty non-nil checklist", entries)
	}
	if msg == "" {
		t.Error("expected an explanatory message for the unknown type")
	}
}

func captureRequest(entries ...model.CaptureEntry) *model.CaptureAttendanceRequest {
	return &model.CaptureAttendanceRequest{
		Name:        "Gr 7 Register",
		Date:        time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
		Type:        model.AttendanceTypeClass,
		ReferenceID: 7,
		Entries:     entries,
	}
}

func learnerWithParents(id int, parents ...model.Parent) *model.LearnerWithParents {
	lw := &model.LearnerWithParents{}
	lw.ID = id
	lw.FirstName = "Thabo"
	lw.LastName = "Nkosi"
	lw.Parents = parents
	return lw
}

func drain(t *testing.T, q queue.Queue) [][]byte {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	ch, err := q.Consume(ctx)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	var out [][]byte
	for {
		select {
		case payload, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, payload)
		case <-ctx.Done():
			return out
		}
	}
}

func TestCaptureAttendanceEnqueuesNoticesForNonPresent(t *testing.T) {
	store := &fakeAttendanceStore{
		learners: map[int]*model.LearnerWithParents{
			2: learnerWithParents(2, model.Parent{ID: 20, FirstName: "Mary", LastName: "Nkosi", ReceiveNotifications: true, ReceiveEmails: true, Emails: []string{"mary@example.com"}}),
			3: learnerWithParents(3, model.Parent{ID: 30, ReceiveNotifications: true}),
		},
	}
	outbox := queue.NewInMemory(16)
	svc := newTestAttendanceService(store, nil, outbox)

	group, err := svc.CaptureAttendance(context.Background(), captureRequest(
		model.CaptureEntry{LearnerID: 1, Status: model.AttendanceStatusPresent},
		model.CaptureEntry{LearnerID: 2, Status: model.AttendanceStatusAbsent, Notes: "sick"},
		model.CaptureEntry{LearnerID: 3, Status: model.AttendanceStatusLate},
	))
	if err != nil {
		t.Fatalf("CaptureAttendance: %v", err)
	}
	if store.createdGroup == nil || len(store.createdRecords) != 3 {
		t.Fatalf("expected 3 persisted records, got %d", len(store.createdRecords))
	}

	payloads := drain(t, outbox)
	if len(payloads) != 2 {
		t.Fatalf("got %d notices, want 2 (absent and late)", len(payloads))
	}

	var notice model.AbsenceNotice
	if err := json.Unmarshal(payloads[0], &notice); err != nil {
		t.Fatalf("unmarshal notice: %v", err)
	}
	if notice.GroupID != group.ID || notice.LearnerID != 2 || notice.Status != model.AttendanceStatusAbsent {
		t.Errorf("unexpected notice: %+v", notice)
	}
	if len(notice.Parents) != 1 || notice.Parents[0].ParentID != 20 {
		t.Errorf("notice parents = %+v, want parent 20", notice.Parents)
	}
}

func TestCaptureAttendanceAllPresentEnqueuesNothing(t *testing.T) {
	store := &fakeAttendanceStore{}
	outbox := queue.NewInMemory(16)
	svc := newTestAttendanceService(store, nil, outbox)

	if _, err := svc.CaptureAttendance(context.Background(), captureRequest(
		model.CaptureEntry{LearnerID: 1, Status: model.AttendanceStatusPresent},
		model.CaptureEntry{LearnerID: 2, Status: model.AttendanceStatusPresent},
	)); err != nil {
		t.Fatalf("CaptureAttendance: %v", err)
	}
	if outbox.Len() != 0 {
		t.Errorf("outbox has %d notices, want 0", outbox.Len())
	}
}

func TestCaptureAttendanceRespectsNotificationToggle(t *testing.T) {
	store := &fakeAttendanceStore{
		learners: map[int]*model.LearnerWithParents{
			1: learnerWithParents(1, model.Parent{ID: 10, ReceiveNotifications: true}),
		},
	}
	settings := &fakeSettings{values: map[string]string{model.SettingAbsenceNotificationsEnable: "false"}}
	outbox := queue.NewInMemory(16)
	svc := newTestAttendanceService(store, settings, outbox)

	if _, err := svc.CaptureAttendance(context.Background(), captureRequest(
		model.CaptureEntry{LearnerID: 1, Status: model.AttendanceStatusAbsent},
	)); err != nil {
		t.Fatalf("CaptureAttendance: %v", err)
	}
	if outbox.Len() != 0 {
		t.Errorf("notifications disabled but %d notices enqueued", outbox.Len())
	}
}

func TestCaptureAttendanceSkipsOptedOutParents(t *testing.T) {
	store := &fakeAttendanceStore{
		learners: map[int]*model.LearnerWithParents{
			1: learnerWithParents(1, model.Parent{ID: 10, ReceiveNotifications: false}),
		},
	}
	outbox := queue.NewInMemory(16)
	svc := newTestAttendanceService(store, nil, outbox)

	if _, err := svc.CaptureAttendance(context.Background(), captureRequest(
		model.CaptureEntry{LearnerID: 1, Status: model.AttendanceStatusAbsent},
	)); err != nil {
		t.Fatalf("CaptureAttendance: %v", err)
	}
	if outbox.Len() != 0 {
		t.Errorf("all parents opted out but %d notices enqueued", outbox.Len())
	}
}

func TestCaptureAttendanceStoreFailureEnqueuesNothing(t *testing.T) {
	store := &fakeAttendanceStore{
		createErr: errors.New("boom"),
		learners: map[int]*model.LearnerWithParents{
			1: learnerWithParents(1, model.Parent{ID: 10, ReceiveNotifications: true}),
		},
	}
	outbox := queue.NewInMemory(16)
	svc := newTestAttendanceService(store, nil, outbox)

	if _, err := svc.CaptureAttendance(context.Background(), captureRequest(
		model.CaptureEntry{LearnerID: 1, Status: model.AttendanceStatusAbsent},
	)); err == nil {
		t.Fatal("expected error from failing store")
	}
	if outbox.Len() != 0 {
		t.Errorf("capture failed but %d notices enqueued", outbox.Len())
	}
}

func TestCaptureAttendanceRejectsUnknownType(t *testing.T) {
	svc := newTestAttendanceService(&fakeAttendanceStore{}, nil, nil)

	req := captureRequest(model.CaptureEntry{LearnerID: 1, Status: model.AttendanceStatusPresent})
	req.Type = model.AttendanceType("holiday")

	if _, err := svc.CaptureAttendance(context.Background(), req); !errors.Is(err, ErrUnknownAttendanceType) {
		t.Errorf("got %v, want ErrUnknownAttendanceType", err)
	}
}

func TestExportGroupSheetNaming(t *testing.T) {
	store := &fakeAttendanceStore{}
	exporter := &fakeExporter{}
	svc := NewAttendanceService(store, &fakeSettings{}, queue.NewInMemory(1), exporter, nil, zerolog.Nop())

	group, err := svc.CaptureAttendance(context.Background(), captureRequest(
		model.CaptureEntry{LearnerID: 1, Status: model.AttendanceStatusPresent},
	))
	if err != nil {
		t.Fatalf("CaptureAttendance: %v", err)
	}

	file, err := svc.ExportGroup(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("ExportGroup: %v", err)
	}
	if file != "out.xlsx" {
		t.Errorf("file = %q", file)
	}
	if exporter.sheetName != "Gr 7 Register -- 2026-05-12" {
		t.Errorf("sheet name = %q, want %q", exporter.sheetName, "Gr 7 Register -- 2026-05-12")
	}
	if len(exporter.rows) != 1 {
		t.Errorf("exported %d rows, want 1", len(exporter.rows))
	}
}

func TestGroupDistinguishesMissingFromStoreFailure(t *testing.T) {
	store := &fakeAttendanceStore{}
	svc := newTestAttendanceService(store, nil, nil)

	if _, _, err := svc.Group(context.Background(), uuid.New()); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("missing group: got %v, want ErrGroupNotFound", err)
	}

	dbErr := errors.New("connection refused")
	store.getGroupErr = dbErr
	_, _, err := svc.Group(context.Background(), uuid.New())
	if errors.Is(err, ErrGroupNotFound) {
		t.Error("store failure reported as not-found")
	}
	if !errors.Is(err, dbErr) {
		t.Errorf("got %v, want wrapped store error", err)
	}
}
