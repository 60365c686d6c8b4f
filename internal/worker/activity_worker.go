package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"showcase/internal/model"
	"showcase/internal/platform/rabbitmq"
)

const activityPrefetch = 16

var errMalformedEvent = errors.New("malformed activity event")

type ActivitySink interface {
	Create(ctx context.Context, event *model.ActivityEvent) error
}

// ActivityWorker stores the activity events it consumes. Malformed messages
// are dropped; a failed insert is retried once through redelivery.
type ActivityWorker struct {
	conn   *amqp.Connection
	sink   ActivitySink
	queue  string
	logger *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewActivityWorker(conn *amqp.Connection, sink ActivitySink, queue string, logger *zap.Logger) *ActivityWorker {
	return &ActivityWorker{
		conn:   conn,
		sink:   sink,
		queue:  queue,
		logger: logger.Named("activity_worker"),
	}
}

func (w *ActivityWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	ch, err := w.conn.Channel()
	if err != nil {
		return fmt.Errorf("open worker channel failed: %w", err)
	}
	deliveries, err := w.subscribe(ch)
	if err != nil {
		_ = ch.Close()
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()
		w.run(runCtx, deliveries)
	}()

	w.logger.Info("consuming activity events", zap.String("queue", w.queue))
	return nil
}

func (w *ActivityWorker) subscribe(ch *amqp.Channel) (<-chan amqp.Delivery, error) {
	if err := rabbitmq.DeclareQueue(ch, w.queue); err != nil {
		return nil, err
	}
	if err := ch.Qos(activityPrefetch, 0, false); err != nil {
		return nil, fmt.Errorf("set worker prefetch failed: %w", err)
	}
	deliveries, err := ch.Consume(w.queue, "showcase-activity", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %s failed: %w", w.queue, err)
	}
	return deliveries, nil
}

func (w *ActivityWorker) run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				w.logger.Warn("activity deliveries closed")
				return
			}
			w.settle(d, w.handle(ctx, d.Body))
		}
	}
}

func (w *ActivityWorker) settle(d amqp.Delivery, err error) {
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, errMalformedEvent):
		w.logger.Warn("drop malformed activity event", zap.Error(err))
		_ = d.Nack(false, false)
	default:
		requeue := !d.Redelivered
		w.logger.Error("store activity event failed", zap.Error(err), zap.Bool("requeue", requeue))
		_ = d.Nack(false, requeue)
	}
}

func (w *ActivityWorker) handle(ctx context.Context, body []byte) error {
	var event model.ActivityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %w", errMalformedEvent, err)
	}
	if event.Kind == "" {
		return fmt.Errorf("%w: missing kind", errMalformedEvent)
	}
	event.ID = 0
	return w.sink.Create(ctx, &event)
}

func (w *ActivityWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
