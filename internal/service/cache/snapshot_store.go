package cache

import (
	"context"
	"time"

	"ecogrid/internal/domain/models"
	drepo "ecogrid/internal/domain/repository"
	pkgcache "ecogrid/pkg/cache"
)

// SnapshotStore implements the SnapshotCache over a pkg/cache backend.
// Entries are replaced wholesale; the backend's own expiration is set from
// the same TTL pair the acquisition layer uses for freshness, so expired
// entries age out even if nobody re-reads them.
type SnapshotStore struct {
	backend      pkgcache.Service
	liveTTL      time.Duration
	syntheticTTL time.Duration
}

// NewSnapshotStore creates a snapshot store with per-provenance TTLs.
func NewSnapshotStore(backend pkgcache.Service, liveTTL, syntheticTTL time.Duration) *SnapshotStore {
	return &SnapshotStore{
		backend:      backend,
		liveTTL:      liveTTL,
		syntheticTTL: syntheticTTL,
	}
}

func (s *SnapshotStore) Get(ctx context.Context, key string) (*models.CacheEntry, bool) {
	var entry models.CacheEntry
	if err := s.backend.Get(ctx, wrap(key), &entry); err != nil {
		return nil, false
	}
	if entry.Snapshot == nil {
		return nil, false
	}
	return &entry, true
}

func (s *SnapshotStore) Put(ctx context.Context, key string, snap *models.GridSnapshot) error {
	entry := models.CacheEntry{
		Key:       key,
		Snapshot:  snap,
		FetchedAt: time.Now().UnixMilli(),
	}
	return s.backend.Set(ctx, wrap(key), &entry, s.ttlFor(snap.DataSource))
}

// TTLFor returns the freshness window for a given provenance. Synthetic data
// refreshes eagerly so a recovered upstream is picked up quickly.
func (s *SnapshotStore) TTLFor(source models.DataSource) time.Duration {
	return s.ttlFor(source)
}

func (s *SnapshotStore) ttlFor(source models.DataSource) time.Duration {
	if source == models.SourceSynthetic {
		return s.syntheticTTL
	}
	return s.liveTTL
}

func wrap(key string) string {
	return pkgcache.GenerateKey("snapshot", key)
}

var _ drepo.SnapshotCache = (*SnapshotStore)(nil)
