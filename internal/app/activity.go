package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"showcase/internal/model"
)

type ActivityPublisher interface {
	Publish(ctx context.Context, event model.ActivityEvent) error
}

// NopActivityPublisher drops every event.
type NopActivityPublisher struct{}

func (NopActivityPublisher) Publish(context.Context, model.ActivityEvent) error { return nil }

// ActivityRecorder publishes activity events on a best-effort basis: a failed
// publish is logged and never fails the caller.
type ActivityRecorder struct {
	publisher ActivityPublisher
	logger    *zap.Logger
}

func NewActivityRecorder(publisher ActivityPublisher, logger *zap.Logger) *ActivityRecorder {
	if publisher == nil {
		publisher = NopActivityPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityRecorder{publisher: publisher, logger: logger}
}

func (r *ActivityRecorder) Record(ctx context.Context, kind string, accountID uint, subject string) {
	if r == nil {
		return
	}
	event := model.ActivityEvent{
		Kind:       kind,
		AccountID:  accountID,
		Subject:    subject,
		OccurredAt: time.Now().UTC(),
	}
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.logger.Warn("publish activity event failed",
			zap.String("kind", kind),
			zap.Uint("account_id", accountID),
			zap.Error(err),
		)
	}
}
