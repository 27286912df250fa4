package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/portalrank/internal/adapters/http/api"
	"github.com/okian/portalrank/internal/adapters/http/site"
	"github.com/okian/portalrank/internal/adapters/http/swagger"
	app "github.com/okian/portalrank/internal/app"
	"github.com/okian/portalrank/internal/config"
	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/internal/roster"
	"github.com/okian/portalrank/internal/sample"
	"github.com/okian/portalrank/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWithWriter(os.Stdout, logger.Format(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal(ctx, "portal rankings server failed", logger.Error(err))
	}
}

// run serves the API until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	teams, source, err := loadLeague(cfg)
	if err != nil {
		return err
	}
	log.Info(ctx, "league loaded", logger.String("source", source), logger.Int("teams", len(teams)))

	svc, err := newService(cfg, teams, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// loadLeague reads the configured roster file, falls back to generated sample
// data, or starts empty. It also names the source for logging.
func loadLeague(cfg *config.Config) ([]model.Team, string, error) {
	switch {
	case cfg.RosterFile != "":
		teams, err := roster.ReadFile(cfg.RosterFile)
		if err != nil {
			return nil, "", fmt.Errorf("load roster: %w", err)
		}
		return teams, cfg.RosterFile, nil
	case cfg.SampleData:
		return sample.New(sample.WithSeed(cfg.SampleSeed)).League(), "sample", nil
	default:
		return nil, "empty", nil
	}
}

func newService(cfg *config.Config, teams []model.Team, log logger.Logger) (*app.Service, error) {
	curve, err := cfg.Curve()
	if err != nil {
		return nil, err
	}
	return app.New(
		app.WithLogger(log.Named("service")),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithCacheSize(cfg.CacheSize),
		app.WithParallelism(cfg.StandingsParallelism),
		app.WithCurve(curve),
		app.WithLeague(teams),
	), nil
}

// newHandler registers docs, landing page and business routes on one mux.
func newHandler(ctx context.Context, cfg *config.Config, svc *app.Service) http.Handler {
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(svc, api.WithMaxRankingsLimit(cfg.MaxRankingsLimit)).Register(ctx, mux)
	return mux
}
