package di

import (
	"fmt"

	"github.com/psm5556/Crisis-Alert/internal/domain/repository"
	"github.com/psm5556/Crisis-Alert/internal/handler/api"
	"github.com/psm5556/Crisis-Alert/internal/service/activity"
	icache "github.com/psm5556/Crisis-Alert/internal/service/cache"
	"github.com/psm5556/Crisis-Alert/internal/service/fred"
	"github.com/psm5556/Crisis-Alert/internal/service/ratelimit"
	"github.com/psm5556/Crisis-Alert/internal/services/signals"
	"github.com/psm5556/Crisis-Alert/internal/usecase"
	pcache "github.com/psm5556/Crisis-Alert/pkg/cache"
	"github.com/psm5556/Crisis-Alert/pkg/config"
	xhttp "github.com/psm5556/Crisis-Alert/pkg/http"
	"github.com/psm5556/Crisis-Alert/pkg/logger"
	"github.com/psm5556/Crisis-Alert/pkg/metrics"
	"github.com/psm5556/Crisis-Alert/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCacheStore creates the series cache backend selected by cache.backend.
func ProvideCacheStore(cfg *config.Config, l *logger.Logger) (pcache.Service, func(), error) {
	memOpts := []pcache.MemoryOption{pcache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize)}

	var store pcache.Service
	switch cfg.Cache.Backend {
	case "memory":
		store = pcache.NewMemoryCache(memOpts...)
	case "redis", "layered":
		rc, err := pcache.NewRedisCache(pcache.RedisConfig{
			Host:     cfg.Cache.Redis.Host,
			Port:     cfg.Cache.Redis.Port,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("redis cache: %w", err)
		}
		store = rc
		if cfg.Cache.Backend == "layered" {
			store = pcache.NewLayeredCache(rc, memOpts...)
		}
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	l.Info("series cache ready", logger.String("backend", cfg.Cache.Backend))
	cleanup := func() {
		if err := store.Close(); err != nil {
			l.Warn("cache close error", logger.Error(err))
		}
	}
	return store, cleanup, nil
}

// ProvideFREDClient creates the upstream series fetcher.
func ProvideFREDClient(cfg *config.Config, l *logger.Logger, m repository.Metrics) *fred.Client {
	if cfg.FRED.APIKey == "" {
		l.Warn("FRED api key not configured; rate and spread will be unavailable")
	}
	return fred.New(cfg.FRED.APIKey,
		fred.WithBaseURL(cfg.FRED.BaseURL),
		fred.WithTimeout(cfg.FRED.Timeout),
		fred.WithRateLimit(cfg.FRED.RateLimit),
		fred.WithLogger(l),
		fred.WithMetrics(m),
	)
}

// ProvideActivityResolver builds the primary, scrape and backup chain.
func ProvideActivityResolver(cfg *config.Config, fc *fred.Client, l *logger.Logger, m repository.Metrics) *activity.Resolver {
	a := cfg.Activity
	page := xhttp.NewClient(
		xhttp.WithTimeout(cfg.FRED.Timeout),
		xhttp.WithUserAgent(a.UserAgent),
		xhttp.WithMaxBodySize(a.MaxPageBytes),
	)
	strategies := []activity.Strategy{
		activity.NewPrimaryStrategy(fc, a.PrimarySeries, a.BackupSeries),
		activity.NewScrapeStrategy(page, a.ScrapeURL, a.Selectors, a.TrendTemplate),
		activity.NewBackupStrategy(a.BackupSeries),
	}
	return activity.NewResolver(strategies,
		activity.WithLogger(l.With(logger.String("component", "activity"))),
		activity.WithMetrics(m),
	)
}

// ProvideSeriesCache wraps the fetcher and resolver with per-indicator TTLs.
func ProvideSeriesCache(cfg *config.Config, store pcache.Service, fc *fred.Client, r *activity.Resolver, l *logger.Logger, m repository.Metrics) *icache.SeriesCache {
	ttl := icache.TTLs{
		Rate:     cfg.Cache.TTL.Rate,
		Activity: cfg.Cache.TTL.Activity,
		Spread:   cfg.Cache.TTL.Spread,
	}
	return icache.NewSeriesCache(store, fc, r, ttl, l, m)
}

// ProvideClassifier creates the classifier with configured thresholds.
func ProvideClassifier(cfg *config.Config) *signals.Classifier {
	return signals.NewClassifier(cfg.Thresholds)
}

// ProvideSignalAggregator reads every indicator through the series cache.
func ProvideSignalAggregator(cfg *config.Config, sc *icache.SeriesCache, c *signals.Classifier) (*usecase.SignalAggregator, error) {
	start, err := cfg.StartDate()
	if err != nil {
		return nil, err
	}
	ids := usecase.SeriesIDs{
		Rate:        cfg.Series.Rate,
		SpreadLong:  cfg.Series.SpreadLong,
		SpreadShort: cfg.Series.SpreadShort,
	}
	return usecase.NewSignalAggregator(sc, sc, sc, c, ids, start), nil
}

// ProvideDashboardUseCase creates the evaluation use case.
func ProvideDashboardUseCase(agg *usecase.SignalAggregator, sc *icache.SeriesCache, m repository.Metrics, l *logger.Logger) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(agg, sc, m, l)
}

// ProvideRefreshScheduler creates the cron cache warmer.
func ProvideRefreshScheduler(uc *usecase.DashboardUseCase, l *logger.Logger) *usecase.RefreshScheduler {
	return usecase.NewRefreshScheduler(uc, l.With(logger.String("component", "scheduler")))
}

// ProvideRefreshLimiter limits POST /api/refresh per client.
func ProvideRefreshLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Refresh.PerMinute, cfg.Refresh.Burst)
}

// ProvideDashboardHandler creates the Echo handler.
func ProvideDashboardHandler(l *logger.Logger, uc *usecase.DashboardUseCase, rl *ratelimit.Limiter) *api.DashboardEchoHandler {
	return api.NewDashboardEchoHandler(l, uc, rl)
}

// ProvideHTTPServer creates the Echo server with every handler registered.
func ProvideHTTPServer(cfg *config.Config, l *logger.Logger, h *api.DashboardEchoHandler) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(l, []xhttp.RouteRegistrar{h},
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowRequest(cfg.Server.SlowRequest),
		xhttp.WithMetricsPath(metricsPath),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	srv *xhttp.Server,
	sched *usecase.RefreshScheduler,
	uc *usecase.DashboardUseCase,
) *server.App {
	return server.New(cfg, l, srv, sched, uc)
}
