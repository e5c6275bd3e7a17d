package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumela/schoolsync-backend/internal/model"
)

// ParentRepository handles parent data access.
type ParentRepository struct {
	pool *pgxpool.Pool
}

// NewParentRepository creates a new ParentRepository.
func NewParentRepository(pool *pgxpool.Pool) *ParentRepository {
	return &ParentRepository{pool: pool}
}

const parentColumns = `id, first_name, last_name, id_number, contact_numbers, emails,
	receive_notifications, receive_emails, require_consent, created_at, updated_at`

func scanParent(row interface{ Scan(...any) error }, p *model.Parent) error {
	return row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.IDNumber, &p.ContactNumbers, &p.Emails,
		&p.ReceiveNotifications, &p.ReceiveEmails, &p.RequireConsent, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID retrieves a parent by ID.
func (r *ParentRepository) GetByID(ctx context.Context, id int) (*model.Parent, error) {
	p := &model.Parent{}
	row := r.pool.QueryRow(ctx, `SELECT `+parentColumns+` FROM parents WHERE id = $1`, id)
	if err := scanParent(row, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPaginated retrieves parents ordered by name.
func (r *ParentRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Parent, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM parents`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+parentColumns+` FROM parents ORDER BY last_name, first_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var parents []model.Parent
	for rows.Next() {
		var p model.Parent
		if err := scanParent(rows, &p); err != nil {
			return nil, 0, err
		}
		parents = append(parents, p)
	}
	return parents, total, rows.Err()
}

// Create inserts a new parent.
func (r *ParentRepository) Create(ctx context.Context, p *model.Parent) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO parents (first_name, last_name, id_number, contact_numbers, emails,
		                      receive_notifications, receive_emails, require_consent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		p.FirstName, p.LastName, p.IDNumber, p.ContactNumbers, p.Emails,
		p.ReceiveNotifications, p.ReceiveEmails, p.RequireConsent,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateIDNumber
		}
		return err
	}
	return nil
}

// Delete removes a parent by ID. Links and permissions cascade.
func (r *ParentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM parents WHERE id = $1`, id)
	return err
}

// UpdateWithLinks applies a full parent update in one transaction: the
// scalar fields, the link additions and removals computed by the caller, and
// the consent flag mirrored onto every remaining link row.
func (r *ParentRepository) UpdateWithLinks(ctx context.Context, p *model.Parent, addLinks, removeLinks []int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE parents
		 SET first_name = $1, last_name = $2, id_number = $3, contact_numbers = $4, emails = $5,
		     receive_notifications = $6, receive_emails = $7, require_consent = $8,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $9`,
		p.FirstName, p.LastName, p.IDNumber, p.ContactNumbers, p.Emails,
		p.ReceiveNotifications, p.ReceiveEmails, p.RequireConsent, p.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateIDNumber
		}
		return err
	}

	for _, learnerID := range removeLinks {
		if _, err := tx.Exec(ctx,
			`DELETE FROM learner_parents WHERE parent_id = $1 AND learner_id = $2`,
			p.ID, learnerID); err != nil {
			return err
		}
	}
	for _, learnerID := range addLinks {
		if _, err := tx.Exec(ctx,
			`INSERT INTO learner_parents (learner_id, parent_id, parent_consent_required)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (learner_id, parent_id) DO NOTHING`,
			learnerID, p.ID, p.RequireConsent); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE learner_parents SET parent_consent_required = $1 WHERE parent_id = $2`,
		p.RequireConsent, p.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// LearnerIDs returns the IDs of learners currently linked to the parent.
func (r *ParentRepository) LearnerIDs(ctx context.Context, parentID int) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT learner_id FROM learner_parents WHERE parent_id = $1 ORDER BY learner_id`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
