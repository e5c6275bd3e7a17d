package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lumela/schoolsync-backend/internal/model"
)

// RecipientRepository projects learners, parents and teachers into the flat
// recipient shape the list builders work with. Each query returns rows for
// exactly one relationship path; combining and de-duplicating paths is the
// service's job.
type RecipientRepository struct {
	pool *pgxpool.Pool
}

// NewRecipientRepository creates a new RecipientRepository.
func NewRecipientRepository(pool *pgxpool.Pool) *RecipientRepository {
	return &RecipientRepository{pool: pool}
}

func (r *RecipientRepository) queryRecipients(ctx context.Context, kind model.RecipientKind, sql string, args ...any) ([]model.Recipient, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecipients(rows, kind)
}

func scanRecipients(rows pgx.Rows, kind model.RecipientKind) ([]model.Recipient, error) {
	var out []model.Recipient
	for rows.Next() {
		rec := model.Recipient{Kind: kind}
		if err := rows.Scan(&rec.ID, &rec.FirstName, &rec.LastName, &rec.Emails,
			&rec.ReceiveNotifications, &rec.ReceiveEmails); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ClassLearners lists the learners of a class as recipients. Learners carry
// no opt-out flags; they always count as reachable.
func (r *RecipientRepository) ClassLearners(ctx context.Context, classID int) ([]model.Recipient, error) {
	return r.queryRecipients(ctx, model.RecipientLearner,
		`SELECT id, first_name, last_name, emails, TRUE, TRUE
		 FROM learners WHERE class_id = $1 ORDER BY last_name, first_name`, classID)
}

// ClassLearnerParents lists the parents linked to any learner of a class.
// A parent with children in the same class appears once per child here.
func (r *RecipientRepository) ClassLearnerParents(ctx context.Context, classID int) ([]model.Recipient, error) {
	return r.queryRecipients(ctx, model.RecipientParent,
		`SELECT p.id, p.first_name, p.last_name, p.emails, p.receive_notifications, p.receive_emails
		 FROM parents p
		 JOIN learner_parents lp ON lp.parent_id = p.id
		 JOIN learners l ON l.id = lp.learner_id
		 WHERE l.class_id = $1
		 ORDER BY p.last_name, p.first_name`, classID)
}

// ClassTeachers lists the teachers assigned to a class.
func (r *RecipientRepository) ClassTeachers(ctx context.Context, classID int) ([]model.Recipient, error) {
	return r.queryRecipients(ctx, model.RecipientTeacher,
		`SELECT id, first_name, last_name, emails, TRUE, TRUE
		 FROM teachers WHERE class_id = $1 ORDER BY last_name, first_name`, classID)
}

// AllTeachers lists every teacher.
func (r *RecipientRepository) AllTeachers(ctx context.Context) ([]model.Recipient, error) {
	return r.queryRecipients(ctx, model.RecipientTeacher,
		`SELECT id, first_name, last_name, emails, TRUE, TRUE
		 FROM teachers ORDER BY last_name, first_name`)
}

// AllParents lists every parent.
func (r *RecipientRepository) AllParents(ctx context.Context) ([]model.Recipient, error) {
	return r.queryRecipients(ctx, model.RecipientParent,
		`SELECT id, first_name, last_name, emails, receive_notifications, receive_emails
		 FROM parents ORDER BY last_name, first_name`)
}

// AllLearners lists every learner.
func (r *RecipientRepository) AllLearners(ctx context.Context) ([]model.Recipient, error) {
	return r.queryRecipients(ctx, model.RecipientLearner,
		`SELECT id, first_name, last_name, emails, TRUE, TRUE
		 FROM learners ORDER BY last_name, first_name`)
}

// ParentSelf projects one parent into recipient shape.
func (r *RecipientRepository) ParentSelf(ctx context.Context, parentID int) (*model.Recipient, error) {
	rec := &model.Recipient{Kind: model.RecipientParent}
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, emails, receive_notifications, receive_emails
		 FROM parents WHERE id = $1`, parentID,
	).Scan(&rec.ID, &rec.FirstName, &rec.LastName, &rec.Emails,
		&rec.ReceiveNotifications, &rec.ReceiveEmails)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// LearnersOfParent lists the learners linked to a parent as recipients.
func (r *RecipientRepository) LearnersOfParent(ctx context.Context, parentID int) ([]model.Recipient, error) {
	return r.queryRecipients(ctx, model.RecipientLearner,
		`SELECT l.id, l.first_name, l.last_name, l.emails, TRUE, TRUE
		 FROM learners l
		 JOIN learner_parents lp ON lp.learner_id = l.id
		 WHERE lp.parent_id = $1
		 ORDER BY l.last_name, l.first_name`, parentID)
}
