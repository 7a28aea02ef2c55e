package repository

import (
	"context"

	"ecogrid/internal/domain/models"
)

// SnapshotCache stores grid snapshots with their fetch time. Entries are
// replaced wholesale; last writer wins per key.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (*models.CacheEntry, bool)
	Put(ctx context.Context, key string, snap *models.GridSnapshot) error
}

// GridSource fetches the three daily upstream resources as one group. A
// timeout or non-2xx on any of the three fails the whole call. The fallback
// variant reissues the identical group through the proxy transport.
type GridSource interface {
	FetchDaily(ctx context.Context) (*DailyPayloads, error)
	FetchDailyFallback(ctx context.Context) (*DailyPayloads, error)
	HasFallback() bool
}

// DailyPayloads carries the raw upstream records, already unwrapped from
// their envelope. Nil maps mean the upstream omitted the payload entirely.
type DailyPayloads struct {
	Consumption map[string]any
	Production  map[string]any
	Prices      map[string]any
}

// EventStore persists DR-event records for the history view.
type EventStore interface {
	Create(ctx context.Context, ev *models.DrEvent) (int64, error)
	List(ctx context.Context, limit int) ([]*models.DrEvent, error)
	Health(ctx context.Context) error
	Close() error
}

// EventPublisher forwards DR-event records to the downstream sink.
type EventPublisher interface {
	Publish(ctx context.Context, ev *models.DrEvent) error
	Close() error
}

// Metrics abstracts operational metric recording.
type Metrics interface {
	RecordSnapshotFetch(source string)
	RecordTransportFailure(transport string)
	RecordCacheHit(key string)
	RecordSimulation(valid bool)
	RecordLatency(op string, seconds float64)
}
