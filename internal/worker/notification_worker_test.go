package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lumela/schoolsync-backend/internal/email"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/queue"
	"github.com/rs/zerolog"
)

type fakeSender struct {
	mu       sync.Mutex
	sent     []email.Message
	failures int
}

func (f *fakeSender) Send(_ context.Context, msg email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeSender) lastMessage() email.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

func testNotice(parents ...model.NoticeParent) model.AbsenceNotice {
	return model.AbsenceNotice{
		GroupName:   "Gr 7 Register",
		Date:        time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
		LearnerID:   1,
		LearnerName: "Thabo Nkosi",
		Status:      model.AttendanceStatusAbsent,
		Parents:     parents,
	}
}

func publishNotice(t *testing.T, q queue.Queue, notice model.AbsenceNotice) {
	t.Helper()
	raw, err := json.Marshal(notice)
	if err != nil {
		t.Fatal(err)
	}
	if err := q.Publish(context.Background(), raw); err != nil {
		t.Fatal(err)
	}
}

func runWorker(t *testing.T, q queue.Queue, sender email.Sender, maxAttempts int, wait time.Duration) {
	t.Helper()
	w := NewNotificationWorker(q, sender, "Testhaven Primary", maxAttempts, zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	<-done
}

func TestWorkerDeliversNoticeToOptedInParents(t *testing.T) {
	q := queue.NewInMemory(8)
	sender := &fakeSender{}

	publishNotice(t, q, testNotice(
		model.NoticeParent{ParentID: 10, Name: "Mary Nkosi", Emails: []string{"mary@example.com"}, ReceiveEmails: true},
		model.NoticeParent{ParentID: 11, Name: "John Nkosi", Emails: []string{"john@example.com"}, ReceiveEmails: false},
	))
	runWorker(t, q, sender, 3, 200*time.Millisecond)

	if sender.sentCount() != 1 {
		t.Fatalf("sent %d messages, want 1", sender.sentCount())
	}
	msg := sender.lastMessage()
	if len(msg.To) != 1 || msg.To[0].Email != "mary@example.com" {
		t.Errorf("recipients = %+v, want only the opted-in parent", msg.To)
	}
	if msg.Subject == "" || msg.TextBody == "" {
		t.Error("empty subject or body")
	}
}

func TestWorkerRetriesThenDelivers(t *testing.T) {
	q := queue.NewInMemory(8)
	sender := &fakeSender{failures: 2}

	publishNotice(t, q, testNotice(
		model.NoticeParent{ParentID: 10, Name: "Mary", Emails: []string{"mary@example.com"}, ReceiveEmails: true},
	))
	runWorker(t, q, sender, 5, 500*time.Millisecond)

	if sender.sentCount() != 1 {
		t.Fatalf("sent %d messages after retries, want 1", sender.sentCount())
	}
	if q.Len() != 0 {
		t.Errorf("queue still holds %d payloads", q.Len())
	}
}

func TestWorkerDropsNoticeAfterMaxAttempts(t *testing.T) {
	q := queue.NewInMemory(8)
	sender := &fakeSender{failures: 100}

	publishNotice(t, q, testNotice(
		model.NoticeParent{ParentID: 10, Name: "Mary", Emails: []string{"mary@example.com"}, ReceiveEmails: true},
	))
	runWorker(t, q, sender, 2, 500*time.Millisecond)

	if sender.sentCount() != 0 {
		t.Fatalf("sent %d messages, want 0", sender.sentCount())
	}
	if q.Len() != 0 {
		t.Errorf("dropped notice still queued, len = %d", q.Len())
	}
}

func TestWorkerSkipsUnaddressableNotice(t *testing.T) {
	q := queue.NewInMemory(8)
	sender := &fakeSender{}

	publishNotice(t, q, testNotice(
		model.NoticeParent{ParentID: 10, Name: "Mary", Emails: nil, ReceiveEmails: true},
	))
	runWorker(t, q, sender, 3, 200*time.Millisecond)

	if sender.sentCount() != 0 {
		t.Fatalf("sent %d messages, want 0", sender.sentCount())
	}
	if q.Len() != 0 {
		t.Errorf("unaddressable notice requeued, len = %d", q.Len())
	}
}

func TestWorkerDropsMalformedPayload(t *testing.T) {
	q := queue.NewInMemory(8)
	sender := &fakeSender{}

	if err := q.Publish(context.Background(), []byte("not-json")); err != nil {
		t.Fatal(err)
	}
	runWorker(t, q, sender, 3, 200*time.Millisecond)

	if sender.sentCount() != 0 || q.Len() != 0 {
		t.Errorf("malformed payload mishandled: sent=%d queued=%d", sender.sentCount(), q.Len())
	}
}
