package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumela/schoolsync-backend/internal/model"
)

// AttendanceRepository handles attendance sessions and the membership
// queries that prefill checklists. Membership traversal is done with
// explicit joins returning flat projections; nothing is lazy-loaded.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// ClassRoster lists the learners of a register class.
func (r *AttendanceRepository) ClassRoster(ctx context.Context, classID int) ([]model.RosterMember, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, first_name, last_name FROM learners WHERE class_id = $1 ORDER BY last_name, first_name`,
		classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoster(rows)
}

// ActivityGroupRoster lists the learners belonging to an activity group.
func (r *AttendanceRepository) ActivityGroupRoster(ctx context.Context, groupID int) ([]model.RosterMember, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT l.id, l.first_name, l.last_name
		 FROM learners l
		 JOIN activity_group_members m ON m.learner_id = l.id
		 WHERE m.activity_group_id = $1
		 ORDER BY l.last_name, l.first_name`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoster(rows)
}

// EventTeamRoster lists the learners belonging to an event team.
func (r *AttendanceRepository) EventTeamRoster(ctx context.Context, teamID int) ([]model.RosterMember, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT l.id, l.first_name, l.last_name
		 FROM learners l
		 JOIN event_team_members m ON m.learner_id = l.id
		 WHERE m.event_team_id = $1
		 ORDER BY l.last_name, l.first_name`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoster(rows)
}

// TransportRoster lists the learners with a transport consent covering the
// requested leg for an activity group. ToAndFrom consents cover both legs.
func (r *AttendanceRepository) TransportRoster(ctx context.Context, groupID int, leg model.ConsentDirection) ([]model.RosterMember, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT l.id, l.first_name, l.last_name
		 FROM learners l
		 JOIN parent_permissions pp ON pp.learner_id = l.id
		 WHERE pp.activity_group_id = $1
		   AND pp.consent_type = $2
		   AND (pp.direction = $3 OR pp.direction = $4)
		 ORDER BY l.last_name, l.first_name`,
		groupID, model.ConsentTransport, leg, model.DirectionToAndFrom)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoster(rows)
}

func scanRoster(rows pgx.Rows) ([]model.RosterMember, error) {
	var members []model.RosterMember
	for rows.Next() {
		var m model.RosterMember
		if err := rows.Scan(&m.LearnerID, &m.FirstName, &m.LastName); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// CreateGroup persists one attendance group and all of its records in a
// single transaction. A mid-sequence failure leaves no partial state.
func (r *AttendanceRepository) CreateGroup(ctx context.Context, group *model.AttendanceGroup, records []model.AttendanceRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO attendance_groups (id, name, date, group_type, reference_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		group.ID, group.Name, group.Date, group.Type, group.ReferenceID,
	).Scan(&group.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}

	for i := range records {
		rec := &records[i]
		err = tx.QueryRow(ctx,
			`INSERT INTO attendance_records (group_id, learner_id, status, notes)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at`,
			group.ID, rec.LearnerID, rec.Status, rec.Notes,
		).Scan(&rec.ID, &rec.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert record for learner %d: %w", rec.LearnerID, err)
		}
		rec.GroupID = group.ID
	}

	return tx.Commit(ctx)
}

// GetGroup retrieves an attendance group by ID.
func (r *AttendanceRepository) GetGroup(ctx context.Context, id uuid.UUID) (*model.AttendanceGroup, error) {
	g := &model.AttendanceGroup{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, date, group_type, reference_id, created_at FROM attendance_groups WHERE id = $1`, id,
	).Scan(&g.ID, &g.Name, &g.Date, &g.Type, &g.ReferenceID, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GroupRecords lists a group's records joined with learner names.
func (r *AttendanceRepository) GroupRecords(ctx context.Context, groupID uuid.UUID) ([]model.AttendanceRecordDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT ar.id, ar.group_id, ar.learner_id, ar.status, ar.notes, ar.created_at,
		        l.first_name, l.last_name
		 FROM attendance_records ar
		 JOIN learners l ON l.id = ar.learner_id
		 WHERE ar.group_id = $1
		 ORDER BY l.last_name, l.first_name`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AttendanceRecordDetail
	for rows.Next() {
		var d model.AttendanceRecordDetail
		if err := rows.Scan(&d.ID, &d.GroupID, &d.LearnerID, &d.Status, &d.Notes, &d.CreatedAt,
			&d.FirstName, &d.LastName); err != nil {
			return nil, err
		}
		records = append(records, d)
	}
	return records, rows.Err()
}

// LearnerWithParents loads one learner with every linked parent, used to
// address absence notices.
func (r *AttendanceRepository) LearnerWithParents(ctx context.Context, learnerID int) (*model.LearnerWithParents, error) {
	lw := &model.LearnerWithParents{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+learnerColumns+` FROM learners WHERE id = $1`, learnerID,
	).Scan(&lw.ID, &lw.FirstName, &lw.LastName, &lw.IDNumber, &lw.ClassID, &lw.GradeID, &lw.Emails,
		&lw.CreatedAt, &lw.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.first_name, p.last_name, p.id_number, p.contact_numbers, p.emails,
		        p.receive_notifications, p.receive_emails, p.require_consent, p.created_at, p.updated_at
		 FROM parents p
		 JOIN learner_parents lp ON lp.parent_id = p.id
		 WHERE lp.learner_id = $1`, learnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Parent
		if err := scanParent(rows, &p); err != nil {
			return nil, err
		}
		lw.Parents = append(lw.Parents, p)
	}
	return lw, rows.Err()
}
