//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/psm5556/Crisis-Alert/pkg/config"
	"github.com/psm5556/Crisis-Alert/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCacheStore,
		ProvideFREDClient,
		ProvideActivityResolver,
		ProvideSeriesCache,

		// Domain services and use cases
		ProvideClassifier,
		ProvideSignalAggregator,
		ProvideDashboardUseCase,
		ProvideRefreshScheduler,

		// Transport
		ProvideRefreshLimiter,
		ProvideDashboardHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
