package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lumela/schoolsync-backend/internal/metrics"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/queue"
	"github.com/rs/zerolog"
)

// Domain Errors
var (
	ErrUnknownAttendanceType = errors.New("unknown attendance type")
	ErrInvalidStatus         = errors.New("invalid attendance status")
	ErrGroupNotFound         = errors.New("attendance group not found")
)

// checklistEmptyMessage is returned alongside an empty checklist when the
// requested type has no membership source. Mirrors the capture UI contract:
// the caller renders an empty list instead of failing.
const checklistEmptyMessage = "No membership list is available for this attendance type."

// AttendanceStore is the persistence surface the attendance service needs.
type AttendanceStore interface {
	ClassRoster(ctx context.Context, classID int) ([]model.RosterMember, error)
	ActivityGroupRoster(ctx context.Context, groupID int) ([]model.RosterMember, error)
	EventTeamRoster(ctx context.Context, teamID int) ([]model.RosterMember, error)
	TransportRoster(ctx context.Context, groupID int, leg model.ConsentDirection) ([]model.RosterMember, error)
	CreateGroup(ctx context.Context, group *model.AttendanceGroup, records []model.AttendanceRecord) error
	GetGroup(ctx context.Context, id uuid.UUID) (*model.AttendanceGroup, error)
	GroupRecords(ctx context.Context, groupID uuid.UUID) ([]model.AttendanceRecordDetail, error)
	LearnerWithParents(ctx context.Context, learnerID int) (*model.LearnerWithParents, error)
}

// SettingsReader resolves application settings with a fallback value.
type SettingsReader interface {
	Get(ctx context.Context, key, fallback string) (string, error)
}

// Exporter writes a tabular export and returns the generated file name.
type Exporter interface {
	Export(sheetName string, headers []string, rows [][]interface{}) (string, error)
}

// CaptureAnnouncer broadcasts a capture to live monitor subscribers.
// Implementations must not block; announcement failures are their own to log.
type CaptureAnnouncer interface {
	AnnounceCapture(ctx context.Context, group *model.AttendanceGroup, absences int)
}

// AttendanceService builds checklists, captures sessions, and exports them.
type AttendanceService struct {
	store    AttendanceStore
	settings SettingsReader
	outbox   queue.Queue
	exporter Exporter
	announce CaptureAnnouncer
	log      zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService. announce may be nil
// when no live monitor is wired.
func NewAttendanceService(
	store AttendanceStore,
	settings SettingsReader,
	outbox queue.Queue,
	exporter Exporter,
	announce CaptureAnnouncer,
	log zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		store:    store,
		settings: settings,
		outbox:   outbox,
		exporter: exporter,
		announce: announce,
		log:      log.With().Str("component", "attendance_service").Logger(),
	}
}

// BuildChecklist prefills an attendance checklist from the membership source
// selected by typ. Every entry starts as present. An unrecognized type is not
// an error: it yields an empty checklist and an explanatory message, so a
// capture screen can always render.
func (s *AttendanceService) BuildChecklist(ctx context.Context, typ model.AttendanceType, referenceID int) ([]model.ChecklistEntry, string, error) {
	var (
		roster []model.RosterMember
		err    error
	)

	switch typ {
	case model.AttendanceTypeClass:
		roster, err = s.store.ClassRoster(ctx, referenceID)
	case model.AttendanceTypeActivityGroup:
		roster, err = s.store.ActivityGroupRoster(ctx, referenceID)
	case model.AttendanceTypeEventTeam:
		roster, err = s.store.EventTeamRoster(ctx, referenceID)
	case model.AttendanceTypeEventTransportTo:
		roster, err = s.store.TransportRoster(ctx, referenceID, model.DirectionTo)
	case model.AttendanceTypeEventTransportFrom:
		roster, err = s.store.TransportRoster(ctx, referenceID, model.DirectionFrom)
	default:
		return []model.ChecklistEntry{}, checklistEmptyMessage, nil
	}
	if err != nil {
		return nil, "", err
	}

	entries := make([]model.ChecklistEntry, 0, len(roster))
	for _, m := range roster {
		entries = append(entries, model.ChecklistEntry{
			LearnerID: m.LearnerID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Status:    model.AttendanceStatusPresent,
		})
	}
	return entries, "", nil
}

// CaptureAttendance persists a taken session atomically, then enqueues
// best-effort absence notices for every non-present learner. Notice failures
// never fail the capture.
func (s *AttendanceService) CaptureAttendance(ctx context.Context, req *model.CaptureAttendanceRequest) (*model.AttendanceGroup, error) {
	if !req.Type.Valid() {
		return nil, ErrUnknownAttendanceType
	}
	for _, e := range req.Entries {
		if !e.Status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	group := &model.AttendanceGroup{
		ID:          uuid.New(),
		Name:        req.Name,
		Date:        req.Date,
		Type:        req.Type,
		ReferenceID: req.ReferenceID,
	}

	records := make([]model.AttendanceRecord, 0, len(req.Entries))
	for _, e := range req.Entries {
		records = append(records, model.AttendanceRecord{
			LearnerID: e.LearnerID,
			Status:    e.Status,
			Notes:     e.Notes,
		})
	}

	if err := s.store.CreateGroup(ctx, group, records); err != nil {
		return nil, fmt.Errorf("capture attendance: %w", err)
	}
	metrics.AttendanceCaptured.Inc()

	absences := 0
	for _, e := range req.Entries {
		if e.Status == model.AttendanceStatusPresent {
			continue
		}
		absences++
		s.enqueueNotice(ctx, group, e)
	}

	if s.announce != nil {
		s.announce.AnnounceCapture(ctx, group, absences)
	}

	s.log.Info().
		Str("group_id", group.ID.String()).
		Str("type", string(group.Type)).
		Int("records", len(records)).
		Int("absences", absences).
		Msg("Attendance captured")

	return group, nil
}

func (s *AttendanceService) enqueueNotice(ctx context.Context, group *model.AttendanceGroup, entry model.CaptureEntry) {
	enabled, err := s.settings.Get(ctx, model.SettingAbsenceNotificationsEnable, "true")
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to read notification setting, skipping notice")
		return
	}
	if enabled != "true" {
		return
	}

	lw, err := s.store.LearnerWithParents(ctx, entry.LearnerID)
	if err != nil {
		s.log.Warn().Err(err).Int("learner_id", entry.LearnerID).Msg("Failed to load learner for absence notice")
		return
	}

	notice := model.AbsenceNotice{
		GroupID:     group.ID,
		GroupName:   group.Name,
		Date:        group.Date,
		LearnerID:   lw.ID,
		LearnerName: lw.FirstName + " " + lw.LastName,
		Status:      entry.Status,
		Notes:       entry.Notes,
	}
	for _, p := range lw.Parents {
		if !p.ReceiveNotifications {
			continue
		}
		notice.Parents = append(notice.Parents, model.NoticeParent{
			ParentID:      p.ID,
			Name:          p.FirstName + " " + p.LastName,
			Emails:        p.Emails,
			ReceiveEmails: p.ReceiveEmails,
		})
	}
	if len(notice.Parents) == 0 {
		return
	}

	payload, err := json.Marshal(notice)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to marshal absence notice")
		return
	}
	if err := s.outbox.Publish(ctx, payload); err != nil {
		s.log.Warn().Err(err).Int("learner_id", lw.ID).Msg("Failed to enqueue absence notice")
		return
	}
	metrics.NoticesEnqueued.Inc()
}

// Group retrieves one captured session together with its records.
func (s *AttendanceService) Group(ctx context.Context, id uuid.UUID) (*model.AttendanceGroup, []model.AttendanceRecordDetail, error) {
	group, err := s.store.GetGroup(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get attendance group: %w", err)
	}
	records, err := s.store.GroupRecords(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return group, records, nil
}

// ExportGroup writes one captured session to a spreadsheet and returns the
// generated file name. The sheet is named "{group name} -- {date}", sanitized
// to spreadsheet constraints.
func (s *AttendanceService) ExportGroup(ctx context.Context, id uuid.UUID) (string, error) {
	group, records, err := s.Group(ctx, id)
	if err != nil {
		return "", err
	}

	sheet := fmt.Sprintf("%s -- %s", group.Name, group.Date.Format("2006-01-02"))
	headers := []string{"Learner ID", "First Name", "Last Name", "Status", "Notes"}
	rows := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []interface{}{rec.LearnerID, rec.FirstName, rec.LastName, string(rec.Status), rec.Notes})
	}

	file, err := s.exporter.Export(sheet, headers, rows)
	if err != nil {
		return "", fmt.Errorf("export group %s: %w", id, err)
	}
	return file, nil
}
