package usecase

import (
	"context"
	"time"

	"ecogrid/internal/domain/models"
	drepo "ecogrid/internal/domain/repository"
	xlogger "ecogrid/pkg/logger"
)

// GridAcquisition resolves the current grid snapshot through an ordered
// provider chain: fresh cache, primary transport, fallback transport, then
// local synthesis. The chain never fails; synthesis is total.
type GridAcquisition struct {
	source       drepo.GridSource
	cache        drepo.SnapshotCache
	metrics      drepo.Metrics
	logger       *xlogger.Logger
	region       string
	cacheKey     string
	liveTTL      time.Duration
	syntheticTTL time.Duration
}

// GridAcquisitionOption configures GridAcquisition.
type GridAcquisitionOption func(*GridAcquisition)

// NewGridAcquisition creates the snapshot acquisition usecase.
func NewGridAcquisition(source drepo.GridSource, cache drepo.SnapshotCache, metrics drepo.Metrics, logger *xlogger.Logger, opts ...GridAcquisitionOption) *GridAcquisition {
	a := &GridAcquisition{
		source:       source,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
		region:       "Portugal (Mainland)",
		cacheKey:     "grid_daily",
		liveTTL:      30 * time.Minute,
		syntheticTTL: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithRegion sets the region label stamped on every snapshot.
func WithRegion(region string) GridAcquisitionOption {
	return func(a *GridAcquisition) { a.region = region }
}

// WithCacheKey sets the cache key the acquisition chain reads and writes.
func WithCacheKey(key string) GridAcquisitionOption {
	return func(a *GridAcquisition) { a.cacheKey = key }
}

// WithTTLs sets the freshness windows per provenance.
func WithTTLs(live, synthetic time.Duration) GridAcquisitionOption {
	return func(a *GridAcquisition) {
		a.liveTTL = live
		a.syntheticTTL = synthetic
	}
}

// Snapshot returns the current snapshot, consulting providers in order until
// one yields. Synthesis is last and always succeeds, so the returned snapshot
// is never nil.
func (a *GridAcquisition) Snapshot(ctx context.Context) *models.GridSnapshot {
	start := time.Now()
	defer func() {
		a.metrics.RecordLatency("snapshot_acquire", time.Since(start).Seconds())
	}()

	if snap, ok := a.fromCache(ctx); ok {
		return snap
	}
	if snap, ok := a.fromLive(ctx); ok {
		return snap
	}
	return a.fromSynthesis(ctx)
}

// Refresh bypasses the cache and re-runs the live chain, falling back to
// synthesis. Used by the poller so the cache is rewritten every cycle.
func (a *GridAcquisition) Refresh(ctx context.Context) *models.GridSnapshot {
	if snap, ok := a.fromLive(ctx); ok {
		return snap
	}
	return a.fromSynthesis(ctx)
}

func (a *GridAcquisition) fromCache(ctx context.Context) (*models.GridSnapshot, bool) {
	entry, ok := a.cache.Get(ctx, a.cacheKey)
	if !ok {
		return nil, false
	}

	age := time.Since(time.UnixMilli(entry.FetchedAt))
	if age >= a.ttlFor(entry.Snapshot.DataSource) {
		return nil, false
	}

	// The entry is returned as stored; a cache hit does not rewrite the
	// provenance of the snapshot it serves.
	a.metrics.RecordCacheHit(a.cacheKey)
	a.logger.Debug("snapshot served from cache",
		xlogger.String("source", string(entry.Snapshot.DataSource)),
		xlogger.Duration("age", age))
	return entry.Snapshot, true
}

func (a *GridAcquisition) fromLive(ctx context.Context) (*models.GridSnapshot, bool) {
	payloads, err := a.source.FetchDaily(ctx)
	if err == nil {
		return a.store(ctx, transformUpstream(payloads, models.SourceLivePrimary, a.region, time.Now())), true
	}
	a.metrics.RecordTransportFailure("primary")
	a.logger.Warn("primary transport failed", xlogger.Error(err))

	if !a.source.HasFallback() {
		return nil, false
	}

	payloads, err = a.source.FetchDailyFallback(ctx)
	if err == nil {
		return a.store(ctx, transformUpstream(payloads, models.SourceLiveFallback, a.region, time.Now())), true
	}
	a.metrics.RecordTransportFailure("fallback")
	a.logger.Warn("fallback transport failed", xlogger.Error(err))
	return nil, false
}

// fromSynthesis builds a deterministic snapshot locally. The result is cached
// under the same key as live data, with the shorter TTL, so a recovered
// upstream replaces it within minutes.
func (a *GridAcquisition) fromSynthesis(ctx context.Context) *models.GridSnapshot {
	a.logger.Warn("both transports down, synthesizing snapshot")
	return a.store(ctx, synthesizeSnapshot(a.region, time.Now()))
}

func (a *GridAcquisition) store(ctx context.Context, snap *models.GridSnapshot) *models.GridSnapshot {
	a.metrics.RecordSnapshotFetch(string(snap.DataSource))
	if err := a.cache.Put(ctx, a.cacheKey, snap); err != nil {
		// A cache write failure degrades to re-fetching next call.
		a.logger.Warn("snapshot cache write failed", xlogger.Error(err))
	}
	return snap
}

func (a *GridAcquisition) ttlFor(source models.DataSource) time.Duration {
	if source == models.SourceSynthetic {
		return a.syntheticTTL
	}
	return a.liveTTL
}
