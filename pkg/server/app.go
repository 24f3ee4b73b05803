package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/psm5556/Crisis-Alert/internal/usecase"
	"github.com/psm5556/Crisis-Alert/pkg/config"
	xhttp "github.com/psm5556/Crisis-Alert/pkg/http"
	applogger "github.com/psm5556/Crisis-Alert/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
	scheduler  *usecase.RefreshScheduler
	dashboard  *usecase.DashboardUseCase
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	scheduler *usecase.RefreshScheduler,
	dashboard *usecase.DashboardUseCase,
) *App {
	return &App{
		cfg:        cfg,
		log:        l,
		httpServer: httpServer,
		scheduler:  scheduler,
		dashboard:  dashboard,
	}
}

// Dashboard returns the evaluation use case for one-shot commands.
func (a *App) Dashboard() *usecase.DashboardUseCase { return a.dashboard }

// Run starts the HTTP server and the optional refresh scheduler, then blocks
// until ctx is done or an interrupt arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.Scheduler.Enabled && a.scheduler != nil {
		if err := a.scheduler.Start(a.cfg.Scheduler.Schedule); err != nil {
			return err
		}
		// warm the cache before the first request
		a.scheduler.Warm()
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.Shutdown()
}

// Shutdown gracefully stops all services.
func (a *App) Shutdown() error {
	a.log.Info("shutting down...")

	if a.cfg.Scheduler.Enabled && a.scheduler != nil {
		a.scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	a.log.Info("shutdown complete")
	return nil
}
