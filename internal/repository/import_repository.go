package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumela/schoolsync-backend/internal/model"
)

// ImportOps is the set of row-level operations available inside a bulk
// import transaction. Returning an error from the RunInTx callback rolls
// back every operation performed through it.
type ImportOps interface {
	GradeIDsByName(ctx context.Context) (map[string]int, error)
	ClassIDsByName(ctx context.Context) (map[string]int, error)
	LearnerIDByIDNumber(ctx context.Context, idNumber string) (int, error)
	CreateLearner(ctx context.Context, l *model.Learner) error
	ParentByIDNumber(ctx context.Context, idNumber string) (ParentRef, error)
	CreateParent(ctx context.Context, p *model.Parent) error
	LinkLearnerParent(ctx context.Context, learnerID, parentID int, consentRequired bool) error
	UpdateLearnerPlacement(ctx context.Context, learnerID int, gradeID, classID *int) error
}

// ParentRef identifies an existing parent together with the consent flag
// new learner links must inherit.
type ParentRef struct {
	ID             int
	RequireConsent bool
}

// ErrRowNotFound signals a lookup miss inside an import transaction.
var ErrRowNotFound = errors.New("row not found")

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ImportRepository runs bulk learner imports inside a single transaction.
type ImportRepository struct {
	pool *pgxpool.Pool
}

// NewImportRepository creates a new ImportRepository.
func NewImportRepository(pool *pgxpool.Pool) *ImportRepository {
	return &ImportRepository{pool: pool}
}

// RunInTx executes fn against a transaction-scoped ImportOps. The
// transaction commits only when fn returns nil.
func (r *ImportRepository) RunInTx(ctx context.Context, fn func(ImportOps) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&importOps{q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type importOps struct {
	q querier
}

func (o *importOps) nameIDMap(ctx context.Context, sql string) (map[string]int, error) {
	rows, err := o.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(map[string]int)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		m[strings.ToLower(strings.TrimSpace(name))] = id
	}
	return m, rows.Err()
}

// GradeIDsByName maps lowercased grade names to ids.
func (o *importOps) GradeIDsByName(ctx context.Context) (map[string]int, error) {
	return o.nameIDMap(ctx, `SELECT id, name FROM school_grades`)
}

// ClassIDsByName maps lowercased class names to ids.
func (o *importOps) ClassIDsByName(ctx context.Context) (map[string]int, error) {
	return o.nameIDMap(ctx, `SELECT id, name FROM school_classes`)
}

// LearnerIDByIDNumber resolves a learner by national id-number, case
// insensitively. Returns ErrRowNotFound when no learner matches.
func (o *importOps) LearnerIDByIDNumber(ctx context.Context, idNumber string) (int, error) {
	var id int
	err := o.q.QueryRow(ctx,
		`SELECT id FROM learners WHERE LOWER(id_number) = LOWER($1)`, idNumber,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrRowNotFound
	}
	return id, err
}

func (o *importOps) CreateLearner(ctx context.Context, l *model.Learner) error {
	return o.q.QueryRow(ctx,
		`INSERT INTO learners (first_name, last_name, id_number, class_id, grade_id, emails)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		l.FirstName, l.LastName, l.IDNumber, l.ClassID, l.GradeID, l.Emails,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

// ParentByIDNumber resolves a parent by national id-number, case
// insensitively. Returns ErrRowNotFound when no parent matches.
func (o *importOps) ParentByIDNumber(ctx context.Context, idNumber string) (ParentRef, error) {
	var ref ParentRef
	err := o.q.QueryRow(ctx,
		`SELECT id, require_consent FROM parents WHERE LOWER(id_number) = LOWER($1)`, idNumber,
	).Scan(&ref.ID, &ref.RequireConsent)
	if errors.Is(err, pgx.ErrNoRows) {
		return ParentRef{}, ErrRowNotFound
	}
	return ref, err
}

func (o *importOps) CreateParent(ctx context.Context, p *model.Parent) error {
	return o.q.QueryRow(ctx,
		`INSERT INTO parents (first_name, last_name, id_number, contact_numbers, emails,
		                      receive_notifications, receive_emails, require_consent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		p.FirstName, p.LastName, p.IDNumber, p.ContactNumbers, p.Emails,
		p.ReceiveNotifications, p.ReceiveEmails, p.RequireConsent,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (o *importOps) LinkLearnerParent(ctx context.Context, learnerID, parentID int, consentRequired bool) error {
	_, err := o.q.Exec(ctx,
		`INSERT INTO learner_parents (learner_id, parent_id, parent_consent_required)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (learner_id, parent_id) DO NOTHING`,
		learnerID, parentID, consentRequired)
	return err
}

func (o *importOps) UpdateLearnerPlacement(ctx context.Context, learnerID int, gradeID, classID *int) error {
	_, err := o.q.Exec(ctx,
		`UPDATE learners SET grade_id = $1, class_id = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		gradeID, classID, learnerID)
	return err
}
