package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumela/schoolsync-backend/internal/model"
)

var ErrDuplicateIDNumber = errors.New("a record with this id-number already exists")

// LearnerRepository handles learner data access.
type LearnerRepository struct {
	pool *pgxpool.Pool
}

// NewLearnerRepository creates a new LearnerRepository.
func NewLearnerRepository(pool *pgxpool.Pool) *LearnerRepository {
	return &LearnerRepository{pool: pool}
}

const learnerColumns = `id, first_name, last_name, id_number, class_id, grade_id, emails, created_at, updated_at`

func scanLearner(row interface{ Scan(...any) error }, l *model.Learner) error {
	return row.Scan(&l.ID, &l.FirstName, &l.LastName, &l.IDNumber, &l.ClassID, &l.GradeID, &l.Emails, &l.CreatedAt, &l.UpdatedAt)
}

// GetByID retrieves a learner by ID.
func (r *LearnerRepository) GetByID(ctx context.Context, id int) (*model.Learner, error) {
	l := &model.Learner{}
	row := r.pool.QueryRow(ctx,
		`SELECT `+learnerColumns+` FROM learners WHERE id = $1`, id)
	if err := scanLearner(row, l); err != nil {
		return nil, err
	}
	return l, nil
}

// GetByIDNumber retrieves a learner by their unique id-number.
func (r *LearnerRepository) GetByIDNumber(ctx context.Context, idNumber string) (*model.Learner, error) {
	l := &model.Learner{}
	row := r.pool.QueryRow(ctx,
		`SELECT `+learnerColumns+` FROM learners WHERE LOWER(id_number) = LOWER($1)`, idNumber)
	if err := scanLearner(row, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ListPaginated retrieves learners with pagination and optional class filter.
func (r *LearnerRepository) ListPaginated(ctx context.Context, classID *int, limit, offset int) ([]model.Learner, int, error) {
	countQuery := `SELECT COUNT(*) FROM learners`
	var countArgs []interface{}
	if classID != nil {
		countQuery += ` WHERE class_id = $1`
		countArgs = append(countArgs, *classID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + learnerColumns + ` FROM learners`
	var args []interface{}
	argIdx := 1

	if classID != nil {
		query += ` WHERE class_id = $1`
		args = append(args, *classID)
		argIdx++
	}

	query += ` ORDER BY last_name, first_name LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var learners []model.Learner
	for rows.Next() {
		var l model.Learner
		if err := scanLearner(rows, &l); err != nil {
			return nil, 0, err
		}
		learners = append(learners, l)
	}
	return learners, total, rows.Err()
}

// Create inserts a new learner.
func (r *LearnerRepository) Create(ctx context.Context, l *model.Learner) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO learners (first_name, last_name, id_number, class_id, grade_id, emails)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		l.FirstName, l.LastName, l.IDNumber, l.ClassID, l.GradeID, l.Emails,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateIDNumber
		}
		return err
	}
	return nil
}

// Update modifies a learner's details.
func (r *LearnerRepository) Update(ctx context.Context, l *model.Learner) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE learners
		 SET first_name = $1, last_name = $2, id_number = $3, class_id = $4, grade_id = $5, emails = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		l.FirstName, l.LastName, l.IDNumber, l.ClassID, l.GradeID, l.Emails, l.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateIDNumber
		}
		return err
	}
	return nil
}

// Delete removes a learner by ID.
func (r *LearnerRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM learners WHERE id = $1`, id)
	return err
}

// Parents retrieves every parent linked to the learner.
func (r *LearnerRepository) Parents(ctx context.Context, learnerID int) ([]model.Parent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.first_name, p.last_name, p.id_number, p.contact_numbers, p.emails,
		        p.receive_notifications, p.receive_emails, p.require_consent, p.created_at, p.updated_at
		 FROM parents p
		 JOIN learner_parents lp ON lp.parent_id = p.id
		 WHERE lp.learner_id = $1
		 ORDER BY p.last_name, p.first_name`, learnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parents []model.Parent
	for rows.Next() {
		var p model.Parent
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.IDNumber, &p.ContactNumbers, &p.Emails,
			&p.ReceiveNotifications, &p.ReceiveEmails, &p.RequireConsent, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		parents = append(parents, p)
	}
	return parents, rows.Err()
}
