package cache

import (
	"context"
	"testing"
	"time"

	"ecogrid/internal/domain/models"
	pkgcache "ecogrid/pkg/cache"
)

func TestSnapshotStoreRoundTrip(t *testing.T) {
	backend := pkgcache.NewMemoryCache()
	defer backend.Close()
	store := NewSnapshotStore(backend, 30*time.Minute, 5*time.Minute)
	ctx := context.Background()

	snap := &models.GridSnapshot{
		Region:        "Portugal (Mainland)",
		DataSource:    models.SourceLivePrimary,
		TotalDemandMW: 4200,
	}
	if err := store.Put(ctx, "grid_daily", snap); err != nil {
		t.Fatalf("put: %v", err)
	}

	entry, ok := store.Get(ctx, "grid_daily")
	if !ok {
		t.Fatalf("expected hit")
	}
	if entry.Snapshot.DataSource != models.SourceLivePrimary {
		t.Fatalf("provenance lost: %s", entry.Snapshot.DataSource)
	}
	if entry.FetchedAt == 0 {
		t.Fatalf("fetch time not recorded")
	}
}

func TestSnapshotStoreMiss(t *testing.T) {
	backend := pkgcache.NewMemoryCache()
	defer backend.Close()
	store := NewSnapshotStore(backend, 30*time.Minute, 5*time.Minute)

	if _, ok := store.Get(context.Background(), "absent"); ok {
		t.Fatalf("expected miss")
	}
}

func TestSnapshotStoreTTLBySource(t *testing.T) {
	store := NewSnapshotStore(nil, 30*time.Minute, 5*time.Minute)

	if got := store.TTLFor(models.SourceSynthetic); got != 5*time.Minute {
		t.Fatalf("synthetic ttl = %v", got)
	}
	if got := store.TTLFor(models.SourceLivePrimary); got != 30*time.Minute {
		t.Fatalf("live ttl = %v", got)
	}
	if got := store.TTLFor(models.SourceLiveFallback); got != 30*time.Minute {
		t.Fatalf("fallback ttl = %v", got)
	}
}
