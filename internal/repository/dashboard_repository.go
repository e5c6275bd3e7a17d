package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumela/schoolsync-backend/internal/model"
)

// DashboardRepository aggregates headline counts for the admin dashboard.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// Counts gathers the dashboard numbers in one round trip.
func (r *DashboardRepository) Counts(ctx context.Context) (*model.DashboardData, error) {
	d := &model.DashboardData{}
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM learners),
			(SELECT COUNT(*) FROM parents),
			(SELECT COUNT(*) FROM teachers),
			(SELECT COUNT(*) FROM school_classes),
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM attendance_records ar
			 JOIN attendance_groups ag ON ag.id = ar.group_id
			 WHERE ag.date = CURRENT_DATE AND ar.status = 'absent'),
			(SELECT COUNT(*) FROM attendance_groups WHERE date = CURRENT_DATE)
	`).Scan(&d.LearnerCount, &d.ParentCount, &d.TeacherCount, &d.ClassCount,
		&d.EventCount, &d.TodayAbsences, &d.TodaySessions)
	if err != nil {
		return nil, err
	}
	return d, nil
}
