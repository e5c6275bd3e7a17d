package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumela/schoolsync-backend/internal/model"
)

var ErrDuplicatePermission = errors.New("an equivalent permission already exists for this learner and group")

// PermissionRepository handles parent permission (consent) data access.
type PermissionRepository struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository creates a new PermissionRepository.
func NewPermissionRepository(pool *pgxpool.Pool) *PermissionRepository {
	return &PermissionRepository{pool: pool}
}

const permissionColumns = `id, parent_id, learner_id, activity_group_id, consent_type, direction, created_at, updated_at`

// ListByActivityGroup retrieves all permissions recorded against a group.
func (r *PermissionRepository) ListByActivityGroup(ctx context.Context, groupID int) ([]model.ParentPermission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+permissionColumns+` FROM parent_permissions WHERE activity_group_id = $1 ORDER BY id`,
		groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPermissions(rows)
}

// ListByLearner retrieves all permissions recorded for a learner.
func (r *PermissionRepository) ListByLearner(ctx context.Context, learnerID int) ([]model.ParentPermission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+permissionColumns+` FROM parent_permissions WHERE learner_id = $1 ORDER BY id`,
		learnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPermissions(rows)
}

func scanPermissions(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]model.ParentPermission, error) {
	var perms []model.ParentPermission
	for rows.Next() {
		var p model.ParentPermission
		var direction *string
		if err := rows.Scan(&p.ID, &p.ParentID, &p.LearnerID, &p.ActivityGroupID, &p.Type, &direction,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if direction != nil {
			p.Direction = model.ConsentDirection(*direction)
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// Create records a new permission.
func (r *PermissionRepository) Create(ctx context.Context, p *model.ParentPermission) error {
	var direction *string
	if p.Direction != "" {
		d := string(p.Direction)
		direction = &d
	}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO parent_permissions (parent_id, learner_id, activity_group_id, consent_type, direction)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		p.ParentID, p.LearnerID, p.ActivityGroupID, p.Type, direction,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePermission
		}
		return err
	}
	return nil
}

// Delete removes a permission by ID.
func (r *PermissionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM parent_permissions WHERE id = $1`, id)
	return err
}
