package service

import "context"

// Email is a single outbound message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers mail out-of-band. Delivery is a blocking call with no retry;
// callers roll back any pending state when it fails.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}
