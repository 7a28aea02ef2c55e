//go:build wireinject
// +build wireinject

package di

import (
	"ecogrid/pkg/config"
	"ecogrid/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCacheService,
		ProvideEventStore,
		ProvideEventPublisher,

		// Repositories
		ProvideSnapshotCache,
		ProvideGridSource,

		// Core services
		ProvideScorer,
		ProvideSimulator,

		// Use cases
		ProvideGridAcquisition,
		ProvideEventRecorder,
		ProvidePoller,

		// HTTP surface
		ProvideStreamHandler,
		ProvideGridHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
