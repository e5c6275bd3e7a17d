package service

import (
	"context"

	"github.com/lumela/schoolsync-backend/internal/config"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DashboardService aggregates headline numbers for the admin dashboard.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	rdb           *redis.Client
	log           zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository, rdb *redis.Client, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		rdb:           rdb,
		log:           log.With().Str("component", "dashboard_service").Logger(),
	}
}

// Data gathers the dashboard counts. The pending-notice count comes from the
// outbox queue length; a Redis failure there degrades to zero rather than
// failing the dashboard.
func (s *DashboardService) Data(ctx context.Context) (*model.DashboardData, error) {
	data, err := s.dashboardRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.rdb.LLen(ctx, config.WorkerKey.AbsenceNoticeQueue).Result()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to read outbox length")
	} else {
		data.PendingNotices = int(pending)
	}
	return data, nil
}
