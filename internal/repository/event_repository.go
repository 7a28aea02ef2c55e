package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"ecogrid/internal/domain/models"
	domrepo "ecogrid/internal/domain/repository"
	pkgch "ecogrid/pkg/clickhouse"
	applogger "ecogrid/pkg/logger"
)

// CHEventStore implements EventStore backed by ClickHouse.
type CHEventStore struct {
	ch *pkgch.Client
	db *sql.DB
	l  *applogger.Logger

	mu     sync.Mutex
	nextID int64
}

var eventSchema = []string{
	`CREATE DATABASE IF NOT EXISTS ecogrid`,
	`CREATE TABLE IF NOT EXISTS ecogrid.dr_events (
        id               Int64,
        created_at       DateTime64(3),
        operator_name    String,
        target_mw        Float64,
        achieved_mw      Int32,
        duration_hours   Float64,
        start_time       String,
        cost_saved_eur   Int64,
        co2_avoided_tons Float64
    ) ENGINE = MergeTree()
    ORDER BY (created_at, id)`,
}

// NewCHEventStore creates the store and ensures the schema exists.
func NewCHEventStore(ctx context.Context, ch *pkgch.Client, l *applogger.Logger) (*CHEventStore, error) {
	if err := ch.InitSchema(ctx, eventSchema); err != nil {
		return nil, fmt.Errorf("dr_events schema: %w", err)
	}
	return &CHEventStore{
		ch:     ch,
		db:     ch.DB(),
		l:      l,
		nextID: time.Now().UnixMilli(),
	}, nil
}

func (s *CHEventStore) Create(ctx context.Context, ev *models.DrEvent) (int64, error) {
	// ClickHouse has no auto-increment; IDs are allocated client-side from a
	// millisecond-seeded counter, unique within this process.
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.mu.Unlock()

	const q = `
        INSERT INTO ecogrid.dr_events
            (id, created_at, operator_name, target_mw, achieved_mw,
             duration_hours, start_time, cost_saved_eur, co2_avoided_tons)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.ExecContext(ctx, q,
		id, ev.CreatedAt, ev.OperatorName, ev.TargetMW, ev.AchievedMW,
		ev.DurationHours, ev.StartTime, ev.CostSavedEUR, ev.CO2AvoidedTons)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse dr_events insert error", applogger.Error(err))
		}
		return 0, fmt.Errorf("insert dr event: %w", err)
	}
	return id, nil
}

func (s *CHEventStore) List(ctx context.Context, limit int) ([]*models.DrEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `
        SELECT id, created_at, operator_name, target_mw, achieved_mw,
               duration_hours, start_time, cost_saved_eur, co2_avoided_tons
        FROM ecogrid.dr_events
        ORDER BY created_at DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse dr_events query error", applogger.Error(err))
		}
		return nil, fmt.Errorf("list dr events: %w", err)
	}
	defer rows.Close()

	out := make([]*models.DrEvent, 0, limit)
	for rows.Next() {
		var ev models.DrEvent
		if err := rows.Scan(&ev.ID, &ev.CreatedAt, &ev.OperatorName, &ev.TargetMW,
			&ev.AchievedMW, &ev.DurationHours, &ev.StartTime,
			&ev.CostSavedEUR, &ev.CO2AvoidedTons); err != nil {
			return nil, fmt.Errorf("scan dr event: %w", err)
		}
		out = append(out, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *CHEventStore) Health(ctx context.Context) error {
	return s.ch.Health(ctx)
}

func (s *CHEventStore) Close() error {
	return s.ch.Close()
}

var _ domrepo.EventStore = (*CHEventStore)(nil)

// MemoryEventStore is an in-process EventStore used when no ClickHouse
// backend is configured. History does not survive a restart.
type MemoryEventStore struct {
	mu     sync.RWMutex
	events []*models.DrEvent
	nextID int64
}

// NewMemoryEventStore creates an empty in-memory store.
func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{}
}

func (s *MemoryEventStore) Create(_ context.Context, ev *models.DrEvent) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	stored := *ev
	stored.ID = s.nextID
	s.events = append(s.events, &stored)
	return stored.ID, nil
}

func (s *MemoryEventStore) List(_ context.Context, limit int) ([]*models.DrEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.DrEvent, len(s.events))
	copy(out, s.events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryEventStore) Health(context.Context) error { return nil }

func (s *MemoryEventStore) Close() error { return nil }

var _ domrepo.EventStore = (*MemoryEventStore)(nil)
