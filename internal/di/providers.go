package di

import (
	"context"
	"fmt"
	"time"

	"ecogrid/internal/domain/models"
	drepo "ecogrid/internal/domain/repository"
	"ecogrid/internal/handler/api"
	internalrepo "ecogrid/internal/repository"
	icache "ecogrid/internal/service/cache"
	"ecogrid/internal/service/ren"
	"ecogrid/internal/services/dr"
	"ecogrid/internal/services/forecast"
	"ecogrid/internal/usecase"
	pkgcache "ecogrid/pkg/cache"
	pkgch "ecogrid/pkg/clickhouse"
	"ecogrid/pkg/config"
	pkgkafka "ecogrid/pkg/kafka"
	applogger "ecogrid/pkg/logger"
	"ecogrid/pkg/metrics"
	"ecogrid/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideCacheService selects the snapshot cache backend. With Redis enabled
// the cache is layered (memory in front of Redis); otherwise memory only.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, error) {
	memOpts := []pkgcache.MemoryOption{}
	if cfg.Cache.MemoryMaxSize > 0 {
		memOpts = append(memOpts, pkgcache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize))
	}

	if !cfg.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache(memOpts...), nil
	}

	redisCache, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
		pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(redisCache, memOpts...), nil
}

// ProvideSnapshotCache wraps the cache backend with snapshot semantics.
func ProvideSnapshotCache(svc pkgcache.Service, cfg *config.Config) drepo.SnapshotCache {
	return icache.NewSnapshotStore(svc, cfg.Grid.LiveTTL, cfg.Grid.SyntheticTTL)
}

// ProvideGridSource creates the upstream client.
func ProvideGridSource(cfg *config.Config, l *applogger.Logger) drepo.GridSource {
	return ren.New(cfg.Grid.BaseURL, cfg.Grid.ProxyURL, cfg.Grid.FetchTimeout, l)
}

// ProvideGridAcquisition creates the snapshot acquisition chain.
func ProvideGridAcquisition(source drepo.GridSource, cache drepo.SnapshotCache, m drepo.Metrics, l *applogger.Logger, cfg *config.Config) *usecase.GridAcquisition {
	return usecase.NewGridAcquisition(source, cache, m, l,
		usecase.WithRegion(cfg.Grid.Region),
		usecase.WithCacheKey(cfg.Grid.CacheKey),
		usecase.WithTTLs(cfg.Grid.LiveTTL, cfg.Grid.SyntheticTTL),
	)
}

// ProvideEventStore selects the DR-event history backend.
func ProvideEventStore(cfg *config.Config, l *applogger.Logger) (drepo.EventStore, error) {
	if cfg.Events.Backend != "clickhouse" {
		return internalrepo.NewMemoryEventStore(), nil
	}

	ch := cfg.Events.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithHTTP(ch.UseHTTP),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := internalrepo.NewCHEventStore(ctx, client, l)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return store, nil
}

// ProvideEventPublisher creates the Kafka sink when enabled; nil otherwise.
func ProvideEventPublisher(cfg *config.Config) (drepo.EventPublisher, error) {
	k := cfg.Events.Kafka
	if !k.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(k.Brokers),
		pkgkafka.WithCompression(k.Compression),
		pkgkafka.WithRequiredAcks(k.RequiredAcks),
		pkgkafka.WithBatchTimeout(k.Linger),
		pkgkafka.WithTimeouts(k.WriteTimeout, k.ReadTimeout),
		pkgkafka.WithMaxAttempts(k.MaxAttempts),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaEventPublisher(producer, k.Topic), nil
}

// ProvideScorer creates the risk scorer.
func ProvideScorer() *forecast.Scorer { return forecast.NewScorer() }

// ProvideSimulator creates the DR simulator.
func ProvideSimulator() *dr.Simulator { return dr.NewSimulator() }

// ProvideEventRecorder creates the event recorder use case.
func ProvideEventRecorder(store drepo.EventStore, pub drepo.EventPublisher, l *applogger.Logger) *usecase.EventRecorder {
	return usecase.NewEventRecorder(store, pub, l)
}

// ProvideStreamHandler creates the websocket stream handler.
func ProvideStreamHandler(l *applogger.Logger) *api.StreamHandler {
	return api.NewStreamHandler(l)
}

// ProvidePoller creates the polling loop and fans refreshed snapshots out to
// websocket subscribers with a freshly computed forecast attached.
func ProvidePoller(acq *usecase.GridAcquisition, scorer *forecast.Scorer, stream *api.StreamHandler, cfg *config.Config, l *applogger.Logger) *usecase.Poller {
	p := usecase.NewPoller(acq, cfg.Grid.PollingInterval, l)
	p.Subscribe(func(snap *models.GridSnapshot) {
		stream.Push(snap, scorer.ComputeRisk(snap))
	})
	return p
}

// ProvideGridHandler creates the HTTP handler.
func ProvideGridHandler(l *applogger.Logger, acq *usecase.GridAcquisition, scorer *forecast.Scorer, sim *dr.Simulator, rec *usecase.EventRecorder, stream *api.StreamHandler, m drepo.Metrics) *api.GridEchoHandler {
	return api.NewGridEchoHandler(l, acq, scorer, sim, rec, stream, m)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	poller *usecase.Poller,
	handler *api.GridEchoHandler,
	stream *api.StreamHandler,
	store drepo.EventStore,
	pub drepo.EventPublisher,
	cacheSvc pkgcache.Service,
) *server.App {
	return server.New(cfg, l, poller, handler, stream, store, pub, cacheSvc)
}
