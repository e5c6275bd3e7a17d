package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lumela/schoolsync-backend/internal/email"
	"github.com/lumela/schoolsync-backend/internal/metrics"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/queue"
	"github.com/rs/zerolog"
)

// NotificationWorker drains the absence-notice outbox and emails parents.
// Delivery is at-least-once: a failed notice goes back on the queue with its
// attempt counter bumped, and is dropped once the cap is reached.
type NotificationWorker struct {
	outbox      queue.Queue
	sender      email.Sender
	schoolName  string
	maxAttempts int
	log         zerolog.Logger
}

// NewNotificationWorker creates a new NotificationWorker.
func NewNotificationWorker(outbox queue.Queue, sender email.Sender, schoolName string, maxAttempts int, log zerolog.Logger) *NotificationWorker {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &NotificationWorker{
		outbox:      outbox,
		sender:      sender,
		schoolName:  schoolName,
		maxAttempts: maxAttempts,
		log:         log.With().Str("component", "notification_worker").Logger(),
	}
}

// Start consumes the outbox until the context is cancelled.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("NotificationWorker started")

	ch, err := w.outbox.Consume(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to start outbox consumer")
		return
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("NotificationWorker stopped")
			return
		case payload, ok := <-ch:
			if !ok {
				w.log.Info().Msg("Outbox closed, NotificationWorker stopped")
				return
			}
			w.handle(ctx, payload)
		}
	}
}

func (w *NotificationWorker) handle(ctx context.Context, payload []byte) {
	var notice model.AbsenceNotice
	if err := json.Unmarshal(payload, &notice); err != nil {
		w.log.Error().Err(err).Msg("Invalid notice payload, dropping")
		metrics.NoticesDropped.Inc()
		return
	}

	if err := w.deliver(ctx, &notice); err != nil {
		w.log.Warn().Err(err).
			Int("learner_id", notice.LearnerID).
			Int("attempts", notice.Attempts+1).
			Msg("Notice delivery failed")
		w.requeue(ctx, notice)
		return
	}

	metrics.NoticesSent.Inc()
	w.log.Info().
		Int("learner_id", notice.LearnerID).
		Int("parents", len(notice.Parents)).
		Msg("Absence notice delivered")
}

func (w *NotificationWorker) deliver(ctx context.Context, notice *model.AbsenceNotice) error {
	msg := w.composeMessage(notice)
	if !msg.HasRecipients() {
		// Nothing addressable; treat as delivered rather than retrying forever.
		return nil
	}
	return w.sender.Send(ctx, msg)
}

func (w *NotificationWorker) requeue(ctx context.Context, notice model.AbsenceNotice) {
	metrics.NoticesFailed.Inc()

	notice.Attempts++
	if notice.Attempts >= w.maxAttempts {
		w.log.Error().
			Int("learner_id", notice.LearnerID).
			Int("attempts", notice.Attempts).
			Msg("Notice dropped after max attempts")
		metrics.NoticesDropped.Inc()
		return
	}

	raw, err := json.Marshal(notice)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to marshal notice for requeue")
		metrics.NoticesDropped.Inc()
		return
	}
	if err := w.outbox.Publish(ctx, raw); err != nil {
		w.log.Error().Err(err).Msg("Failed to requeue notice")
		metrics.NoticesDropped.Inc()
	}
}

func (w *NotificationWorker) composeMessage(notice *model.AbsenceNotice) email.Message {
	var to []email.Address
	for _, p := range notice.Parents {
		if !p.ReceiveEmails {
			continue
		}
		for _, addr := range p.Emails {
			to = append(to, email.Address{Name: p.Name, Email: addr})
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear Parent/Guardian,\n\n")
	fmt.Fprintf(&b, "%s was marked %s for %s on %s.\n",
		notice.LearnerName, notice.Status, notice.GroupName, notice.Date.Format("2 January 2006"))
	if notice.Notes != "" {
		fmt.Fprintf(&b, "\nNote from the register: %s\n", notice.Notes)
	}
	fmt.Fprintf(&b, "\nPlease contact the school office if this is unexpected.\n\n%s", w.schoolName)

	return email.Message{
		To:       to,
		Subject:  fmt.Sprintf("%s: attendance notice for %s", w.schoolName, notice.LearnerName),
		TextBody: b.String(),
	}
}
