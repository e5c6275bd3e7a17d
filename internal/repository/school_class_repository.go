package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumela/schoolsync-backend/internal/model"
)

// SchoolClassRepository handles grade and class data access.
type SchoolClassRepository struct {
	pool *pgxpool.Pool
}

// NewSchoolClassRepository creates a new SchoolClassRepository.
func NewSchoolClassRepository(pool *pgxpool.Pool) *SchoolClassRepository {
	return &SchoolClassRepository{pool: pool}
}

// ListGrades retrieves all grades.
func (r *SchoolClassRepository) ListGrades(ctx context.Context) ([]model.SchoolGrade, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM school_grades ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []model.SchoolGrade
	for rows.Next() {
		var g model.SchoolGrade
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// CreateGrade inserts a new grade.
func (r *SchoolClassRepository) CreateGrade(ctx context.Context, g *model.SchoolGrade) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO school_grades (name) VALUES ($1) RETURNING id, created_at, updated_at`,
		g.Name,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

// UpdateGrade renames a grade.
func (r *SchoolClassRepository) UpdateGrade(ctx context.Context, g *model.SchoolGrade) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE school_grades SET name = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		g.Name, g.ID)
	return err
}

// DeleteGrade removes a grade by ID.
func (r *SchoolClassRepository) DeleteGrade(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM school_grades WHERE id = $1`, id)
	return err
}

// GetClass retrieves a class by its ID.
func (r *SchoolClassRepository) GetClass(ctx context.Context, id int) (*model.SchoolClass, error) {
	c := &model.SchoolClass{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, grade_id, created_at, updated_at FROM school_classes WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.GradeID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListClasses retrieves all classes.
func (r *SchoolClassRepository) ListClasses(ctx context.Context) ([]model.SchoolClass, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, grade_id, created_at, updated_at FROM school_classes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.SchoolClass
	for rows.Next() {
		var c model.SchoolClass
		if err := rows.Scan(&c.ID, &c.Name, &c.GradeID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// CreateClass inserts a new class.
func (r *SchoolClassRepository) CreateClass(ctx context.Context, c *model.SchoolClass) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO school_classes (name, grade_id) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		c.Name, c.GradeID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// UpdateClass modifies an existing class.
func (r *SchoolClassRepository) UpdateClass(ctx context.Context, c *model.SchoolClass) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE school_classes SET name = $1, grade_id = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		c.Name, c.GradeID, c.ID)
	return err
}

// DeleteClass removes a class by ID. Fails while learners are assigned.
func (r *SchoolClassRepository) DeleteClass(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM school_classes WHERE id = $1`, id)
	return err
}
