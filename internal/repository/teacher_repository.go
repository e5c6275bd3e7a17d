package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumela/schoolsync-backend/internal/model"
)

// TeacherRepository handles teacher data access.
type TeacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

const teacherColumns = `id, first_name, last_name, emails, class_id, grade_id, created_at, updated_at`

func scanTeacher(row interface{ Scan(...any) error }, t *model.Teacher) error {
	return row.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Emails, &t.ClassID, &t.GradeID, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID retrieves a teacher by ID.
func (r *TeacherRepository) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	t := &model.Teacher{}
	row := r.pool.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id)
	if err := scanTeacher(row, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List retrieves all teachers.
func (r *TeacherRepository) List(ctx context.Context) ([]model.Teacher, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+teacherColumns+` FROM teachers ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []model.Teacher
	for rows.Next() {
		var t model.Teacher
		if err := scanTeacher(rows, &t); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

// Create inserts a new teacher.
func (r *TeacherRepository) Create(ctx context.Context, t *model.Teacher) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO teachers (first_name, last_name, emails, class_id, grade_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		t.FirstName, t.LastName, t.Emails, t.ClassID, t.GradeID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update modifies a teacher's details.
func (r *TeacherRepository) Update(ctx context.Context, t *model.Teacher) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE teachers
		 SET first_name = $1, last_name = $2, emails = $3, class_id = $4, grade_id = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		t.FirstName, t.LastName, t.Emails, t.ClassID, t.GradeID, t.ID,
	)
	return err
}

// Delete removes a teacher by ID.
func (r *TeacherRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	return err
}
