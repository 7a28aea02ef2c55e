package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "ecogrid/internal/domain/repository"
	"ecogrid/internal/handler/api"
	svcmetrics "ecogrid/internal/service/metrics"
	"ecogrid/internal/usecase"
	pkgcache "ecogrid/pkg/cache"
	"ecogrid/pkg/config"
	xhttp "ecogrid/pkg/http"
	applogger "ecogrid/pkg/logger"
)

// App encapsulates the application lifecycle: the polling loop, the HTTP
// server, and orderly teardown of every infrastructure client.
type App struct {
	cfg       *config.Config
	logger    *applogger.Logger
	poller    *usecase.Poller
	handler   xhttp.Handler
	stream    *api.StreamHandler
	store     drepo.EventStore
	publisher drepo.EventPublisher
	cacheSvc  pkgcache.Service

	httpServer *xhttp.Server
}

// New creates a new App instance. Publisher may be nil when no Kafka sink is
// configured.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	poller *usecase.Poller,
	handler xhttp.Handler,
	stream *api.StreamHandler,
	store drepo.EventStore,
	publisher drepo.EventPublisher,
	cacheSvc pkgcache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		poller:    poller,
		handler:   handler,
		stream:    stream,
		store:     store,
		publisher: publisher,
		cacheSvc:  cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svcmetrics.Register()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	a.poller.Start(ctx)
	a.logger.Info("poller started",
		applogger.Duration("interval_ms", a.cfg.Grid.PollingInterval),
		applogger.String("region", a.cfg.Grid.Region))

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown stops intake first, then the server, then infrastructure clients.
func (a *App) shutdown(ctx context.Context) error {
	a.poller.Stop()

	if a.stream != nil {
		a.stream.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("event store close error", applogger.Error(err))
		}
	}
	if a.cacheSvc != nil {
		if err := a.cacheSvc.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
