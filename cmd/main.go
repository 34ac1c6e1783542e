package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/adapters/http/api"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/adapters/http/swagger"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/adapters/repository"
	service "github.com/dagoperezh-lgtm/athlos-360-app/internal/app"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/config"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
	"github.com/dagoperezh-lgtm/athlos-360-app/pkg/logger"
	"github.com/dagoperezh-lgtm/athlos-360-app/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Close() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if cfg.LogFile != "" {
		if err := logger.Init(logger.WithFile(cfg.LogFile, cfg.LogMaxSizeMB)); err != nil {
			os.Stderr.WriteString("failed to open log file: " + err.Error() + "\n")
			return
		}
	}
	loggerInstance := logger.Get()

	// Validate already rejected unknown levels.
	_ = logger.SetLevelString(cfg.LogLevel)

	svc, err := newService(cfg, loggerInstance)
	if err != nil {
		loggerInstance.Error(ctx, "failed to configure service", logger.Error(err))
		return
	}
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// newService builds the report service from cfg. Workbook files are loaded
// only when both paths are configured.
func newService(cfg *config.Config, log logger.Logger) (*service.Service, error) {
	table, err := cfg.MetricTable()
	if err != nil {
		return nil, err
	}

	store := repository.NewMemoryStore()
	opts := []service.Option{
		service.WithLogger(log),
		service.WithStore(store),
		service.WithMetricTable(table),
		service.WithResolver(workbook.NewResolver(cfg.ResolverOptions()...)),
		service.WithCacheSize(cfg.CacheSizeBytes()),
		service.WithCacheTTL(cfg.CacheTTL()),
	}
	if cfg.CurrentPath != "" && cfg.HistoryPath != "" {
		loader := repository.NewFileLoader(store, cfg.CurrentPath, cfg.HistoryPath,
			repository.WithRefreshInterval(cfg.RefreshInterval()))
		opts = append(opts, service.WithFileLoader(loader))
	}
	return service.New(opts...), nil
}

// newRouter registers the API and its reference docs.
func newRouter(ctx context.Context, cfg *config.Config, svc *service.Service) *mux.Router {
	router := mux.NewRouter()
	swagger.Register(ctx, router)
	api.NewServer(svc, api.WithMaxUploadBytes(cfg.MaxUploadBytes)).Register(ctx, router)
	return router
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
