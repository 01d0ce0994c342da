// Package queue defines message payloads exchanged over the message broker.
package queue

// NotificationQueueName is the durable queue notifications travel on.
const NotificationQueueName = "plot.notifications"

// NotificationEvent is published whenever the lifecycle engines or the
// expiry sweeper need to reach a contact. Downstream consumers deliver it
// over WhatsApp/SMS/email without querying the primary database.
type NotificationEvent struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	SentAt    string `json:"sent_at"`
}
