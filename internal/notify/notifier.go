// Package notify delivers fire-and-forget messages to lead and team
// contact channels. Delivery failures are logged by callers and never
// fail the operation that triggered them.
package notify

import (
	"context"
	"log"
)

// Notifier sends a message to a contact channel (phone number, email).
type Notifier interface {
	Notify(ctx context.Context, contact, message string) error
}

// LogNotifier writes notifications to the process log. It is the default
// when no message broker is configured and the implementation used in
// tests.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, contact, message string) error {
	log.Printf("notify: to=%s msg=%q", contact, message)
	return nil
}
