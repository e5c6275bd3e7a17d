package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumela/schoolsync-backend/internal/model"
)

var ErrDuplicateStaffEmail = errors.New("a staff account with this email already exists")

// StaffRepository handles staff account data access.
type StaffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository creates a new StaffRepository.
func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

// GetByID retrieves a staff account by ID, with the role name joined.
func (r *StaffRepository) GetByID(ctx context.Context, id int) (*model.Staff, error) {
	s := &model.Staff{}
	err := r.pool.QueryRow(ctx,
		`SELECT s.id, s.email, s.name, s.password_hash, s.role_id, ro.name, s.created_at, s.updated_at
		 FROM staff s
		 JOIN roles ro ON ro.id = s.role_id
		 WHERE s.id = $1`, id,
	).Scan(&s.ID, &s.Email, &s.Name, &s.PasswordHash, &s.RoleID, &s.RoleName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByEmail retrieves a staff account by email for authentication.
func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	s := &model.Staff{}
	err := r.pool.QueryRow(ctx,
		`SELECT s.id, s.email, s.name, s.password_hash, s.role_id, ro.name, s.created_at, s.updated_at
		 FROM staff s
		 JOIN roles ro ON ro.id = s.role_id
		 WHERE LOWER(s.email) = LOWER($1)`, email,
	).Scan(&s.ID, &s.Email, &s.Name, &s.PasswordHash, &s.RoleID, &s.RoleName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves all staff accounts.
func (r *StaffRepository) List(ctx context.Context) ([]model.Staff, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.email, s.name, s.password_hash, s.role_id, ro.name, s.created_at, s.updated_at
		 FROM staff s
		 JOIN roles ro ON ro.id = s.role_id
		 ORDER BY s.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []model.Staff
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.PasswordHash, &s.RoleID, &s.RoleName,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// Create inserts a new staff account.
func (r *StaffRepository) Create(ctx context.Context, s *model.Staff) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO staff (email, name, password_hash, role_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.Email, s.Name, s.PasswordHash, s.RoleID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateStaffEmail
		}
		return err
	}
	return nil
}

// Update modifies a staff account. An empty passwordHash keeps the stored one.
func (r *StaffRepository) Update(ctx context.Context, s *model.Staff) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE staff
		 SET email = $1, name = $2, role_id = $3,
		     password_hash = CASE WHEN $4 = '' THEN password_hash ELSE $4 END,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		s.Email, s.Name, s.RoleID, s.PasswordHash, s.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateStaffEmail
		}
	}
	return err
}

// Delete removes a staff account by ID.
func (r *StaffRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	return err
}

// Permissions resolves the permission codes of a staff account's role.
func (r *StaffRepository) Permissions(ctx context.Context, staffID int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT rp.permission
		 FROM role_permissions rp
		 JOIN staff s ON s.role_id = rp.role_id
		 WHERE s.id = $1
		 ORDER BY rp.permission`, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}
