package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumela/schoolsync-backend/internal/model"
)

// EventRepository handles events, event teams and activity groups.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// GetEvent retrieves an event by ID.
func (r *EventRepository) GetEvent(ctx context.Context, id int) (*model.Event, error) {
	e := &model.Event{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, starts_at, ends_at, created_at, updated_at FROM events WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.StartsAt, &e.EndsAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListEvents retrieves all events, newest first.
func (r *EventRepository) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, starts_at, ends_at, created_at, updated_at FROM events ORDER BY starts_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.StartsAt, &e.EndsAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CreateEvent inserts a new event.
func (r *EventRepository) CreateEvent(ctx context.Context, e *model.Event) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO events (name, starts_at, ends_at) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
		e.Name, e.StartsAt, e.EndsAt,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// UpdateEvent modifies an existing event.
func (r *EventRepository) UpdateEvent(ctx context.Context, e *model.Event) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE events SET name = $1, starts_at = $2, ends_at = $3, updated_at = CURRENT_TIMESTAMP WHERE id = $4`,
		e.Name, e.StartsAt, e.EndsAt, e.ID)
	return err
}

// DeleteEvent removes an event by ID.
func (r *EventRepository) DeleteEvent(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}

// ListTeams retrieves the teams of one event.
func (r *EventRepository) ListTeams(ctx context.Context, eventID int) ([]model.EventTeam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, event_id, name, created_at, updated_at FROM event_teams WHERE event_id = $1 ORDER BY name`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []model.EventTeam
	for rows.Next() {
		var t model.EventTeam
		if err := rows.Scan(&t.ID, &t.EventID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// CreateTeam inserts a team under an event.
func (r *EventRepository) CreateTeam(ctx context.Context, t *model.EventTeam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO event_teams (event_id, name) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		t.EventID, t.Name,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// DeleteTeam removes a team by ID.
func (r *EventRepository) DeleteTeam(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM event_teams WHERE id = $1`, id)
	return err
}

// AddTeamMember links a learner to a team. Duplicate links are ignored.
func (r *EventRepository) AddTeamMember(ctx context.Context, teamID, learnerID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO event_team_members (event_team_id, learner_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		teamID, learnerID)
	return err
}

// RemoveTeamMember unlinks a learner from a team.
func (r *EventRepository) RemoveTeamMember(ctx context.Context, teamID, learnerID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM event_team_members WHERE event_team_id = $1 AND learner_id = $2`,
		teamID, learnerID)
	return err
}

// ListActivityGroups retrieves all activity groups.
func (r *EventRepository) ListActivityGroups(ctx context.Context) ([]model.ActivityGroup, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, event_id, created_at, updated_at FROM activity_groups ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []model.ActivityGroup
	for rows.Next() {
		var g model.ActivityGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.EventID, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// CreateActivityGroup inserts a new activity group.
func (r *EventRepository) CreateActivityGroup(ctx context.Context, g *model.ActivityGroup) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO activity_groups (name, event_id) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		g.Name, g.EventID,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

// DeleteActivityGroup removes an activity group by ID.
func (r *EventRepository) DeleteActivityGroup(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM activity_groups WHERE id = $1`, id)
	return err
}

// AddActivityGroupMember links a learner to an activity group.
func (r *EventRepository) AddActivityGroupMember(ctx context.Context, groupID, learnerID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO activity_group_members (activity_group_id, learner_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		groupID, learnerID)
	return err
}

// RemoveActivityGroupMember unlinks a learner from an activity group.
func (r *EventRepository) RemoveActivityGroupMember(ctx context.Context, groupID, learnerID int) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM activity_group_members WHERE activity_group_id = $1 AND learner_id = $2`,
		groupID, learnerID)
	return err
}
