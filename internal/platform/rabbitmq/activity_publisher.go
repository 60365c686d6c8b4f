package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"showcase/internal/model"
)

// ActivityPublisher sends activity events to a durable queue over one shared
// channel, reopened when the broker closes it.
type ActivityPublisher struct {
	conn  *amqp.Connection
	queue string

	mu sync.Mutex
	ch *amqp.Channel
}

func NewActivityPublisher(conn *amqp.Connection, queue string) *ActivityPublisher {
	return &ActivityPublisher{conn: conn, queue: queue}
}

func (p *ActivityPublisher) Publish(ctx context.Context, event model.ActivityEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal activity event failed: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         event.Kind,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish %s event failed: %w", event.Kind, err)
	}
	return nil
}

// Close releases the shared channel; the connection belongs to the caller.
func (p *ActivityPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil || p.ch.IsClosed() {
		return nil
	}
	return p.ch.Close()
}

func (p *ActivityPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open publisher channel failed: %w", err)
	}
	p.ch = ch
	return ch, nil
}
