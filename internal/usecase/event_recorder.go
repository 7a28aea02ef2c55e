package usecase

import (
	"context"
	"fmt"
	"time"

	"ecogrid/internal/domain/models"
	drepo "ecogrid/internal/domain/repository"
	xlogger "ecogrid/pkg/logger"
	"ecogrid/pkg/util"
)

// EventRecorder persists executed DR events and forwards them to the
// downstream sink. Persistence is authoritative; the publish leg is
// best-effort and never fails the recording.
type EventRecorder struct {
	store     drepo.EventStore
	publisher drepo.EventPublisher
	logger    *xlogger.Logger
}

// NewEventRecorder creates an event recorder. The publisher may be nil when
// no sink is configured.
func NewEventRecorder(store drepo.EventStore, publisher drepo.EventPublisher, logger *xlogger.Logger) *EventRecorder {
	return &EventRecorder{store: store, publisher: publisher, logger: logger}
}

// Record persists the event and forwards it to the sink. The returned event
// carries the assigned ID and creation time.
func (r *EventRecorder) Record(ctx context.Context, ev *models.DrEvent) (*models.DrEvent, error) {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if ev.OperatorName == "" {
		ev.OperatorName = "Anonymous"
	}
	if normalized, ok := util.NormalizeStartTime(ev.StartTime); ok {
		ev.StartTime = normalized
	}

	id, err := r.store.Create(ctx, ev)
	if err != nil {
		return nil, fmt.Errorf("persist dr event: %w", err)
	}
	ev.ID = id

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, ev); err != nil {
			r.logger.Warn("dr event publish failed",
				xlogger.Int("eventID", int(id)),
				xlogger.Error(err))
		}
	}

	return ev, nil
}

// List returns the most recent events, newest first.
func (r *EventRecorder) List(ctx context.Context, limit int) ([]*models.DrEvent, error) {
	events, err := r.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list dr events: %w", err)
	}
	return events, nil
}
