package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/landsuite/plot-erp/internal/queue"
)

// AMQPNotifier publishes notification events to RabbitMQ. It dials per
// message so a broker restart never leaves the service holding a dead
// connection; any error is logged and returned so callers can choose to
// ignore it. Messages are marked persistent.
type AMQPNotifier struct {
	URL string
}

// NewAMQPNotifier returns a notifier that publishes to the broker at url.
func NewAMQPNotifier(url string) *AMQPNotifier {
	return &AMQPNotifier{URL: url}
}

func (n *AMQPNotifier) Notify(ctx context.Context, contact, message string) error {
	conn, err := amqp.Dial(n.URL)
	if err != nil {
		log.Printf("amqp: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("amqp: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable declare is idempotent; messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.NotificationQueueName, true, false, false, false, nil); err != nil {
		log.Printf("amqp: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(q.NotificationEvent{
		Recipient: contact,
		Message:   message,
		SentAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("amqp: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.NotificationQueueName, false, false, pub); err != nil {
		log.Printf("amqp: publish failed: %v", err)
		return err
	}
	return nil
}
