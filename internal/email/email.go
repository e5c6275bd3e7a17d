package email

import "context"

// Address pairs a display name with an email address.
type Address struct {
	Name  string
	Email string
}

// Message is a single outbound email.
type Message struct {
	To       []Address
	Subject  string
	TextBody string
}

// HasRecipients reports whether the message has at least one destination.
func (m Message) HasRecipients() bool {
	return len(m.To) > 0
}

// Sender delivers email messages. Implementations must be safe for
// concurrent use; the notification worker is the only producer in practice.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
