package websocket

import (
	"context"
	"encoding/json"

	"github.com/lumela/schoolsync-backend/internal/config"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// MonitorAnnouncer publishes capture events to the Redis monitor channel so
// every server instance can fan them out to its WebSocket subscribers.
type MonitorAnnouncer struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewMonitorAnnouncer creates a new MonitorAnnouncer.
func NewMonitorAnnouncer(rdb *redis.Client, log zerolog.Logger) *MonitorAnnouncer {
	return &MonitorAnnouncer{
		rdb: rdb,
		log: log.With().Str("component", "monitor_announcer").Logger(),
	}
}

// AnnounceCapture broadcasts a capture event. Failures are logged, never
// surfaced: the monitor is an observer, not part of the capture operation.
func (a *MonitorAnnouncer) AnnounceCapture(ctx context.Context, group *model.AttendanceGroup, absences int) {
	ev := CaptureEvent{
		Event:     EventCaptured,
		GroupID:   group.ID,
		GroupName: group.Name,
		Date:      group.Date,
		GroupType: string(group.Type),
		Absences:  absences,
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		a.log.Error().Err(err).Msg("Failed to marshal capture event")
		return
	}
	if err := a.rdb.Publish(ctx, config.CacheKey.AttendanceMonitorChannel(), payload).Err(); err != nil {
		a.log.Warn().Err(err).Msg("Failed to publish capture event")
	}
}
