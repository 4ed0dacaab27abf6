package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/menuboard/pkg/api"
	"github.com/platinummonkey/menuboard/pkg/auth"
	"github.com/platinummonkey/menuboard/pkg/config"
	"github.com/platinummonkey/menuboard/pkg/menus"
	"github.com/platinummonkey/menuboard/pkg/observability"
	"github.com/platinummonkey/menuboard/pkg/storage/postgres"
	"github.com/platinummonkey/menuboard/pkg/tasks"
	"github.com/platinummonkey/menuboard/pkg/users"
)

var version = "dev"

var (
	envFile         = flag.String("env-file", ".env", "dotenv file applied before the process environment (optional)")
	dbStatsSchedule = flag.String("db-stats-schedule", "@every 15s", "Cron schedule for sampling connection pool metrics")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout).
		WithField("version", version)

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("menuboard stopped with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *observability.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout)

	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
		SampleRatio:    cfg.Observability.OTelSampleRatio,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	shutdown.Register("otel", func(ctx context.Context) error {
		return observability.ShutdownOTel(ctx, providers)
	})

	db, err := postgres.Open(ctx, postgres.ConnectionConfig{
		URL:         cfg.Database.URL,
		MaxConns:    cfg.Database.MaxConns,
		MinConns:    cfg.Database.MinConns,
		Timeout:     cfg.Database.Timeout,
		MaxLifetime: cfg.Database.MaxLifetime,
		MaxIdleTime: cfg.Database.MaxIdleTime,
	})
	if err != nil {
		_ = shutdown.Shutdown(context.Background())
		return err
	}
	shutdown.Register("database", func(context.Context) error {
		return db.Close()
	})
	logger.Info("Connected to PostgreSQL")

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(ctx, db, logger); err != nil {
			_ = shutdown.Shutdown(context.Background())
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(registry)

		scheduler := cron.New()
		if _, err := scheduler.AddFunc(*dbStatsSchedule, func() {
			defer observability.RecoverPanic(logger, "db stats sampler")
			metrics.ObserveDBStats(db.Stats())
		}); err != nil {
			_ = shutdown.Shutdown(context.Background())
			return fmt.Errorf("invalid db stats schedule %q: %w", *dbStatsSchedule, err)
		}
		scheduler.Start()
		shutdown.Register("scheduler", func(ctx context.Context) error {
			select {
			case <-scheduler.Stop().Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	menuService := menus.NewPostgresService(db)
	if metrics != nil {
		menuService.WithMetrics(metrics)
	}

	handler := api.NewServer(api.Dependencies{
		Users:        users.NewPostgresService(db),
		Menus:        menuService,
		Tasks:        tasks.NewPostgresService(db),
		Tokens:       auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL),
		Logger:       logger,
		Metrics:      metrics,
		PublicUserID: cfg.PublicUserID,
		CORSOrigins:  cfg.Server.CORSOrigins,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	opsMux := http.NewServeMux()
	observability.NewHealthChecker(db, version).RegisterHealthEndpoints(opsMux)
	if metrics != nil {
		observability.RegisterMetricsEndpoint(opsMux, registry)
	}
	opsServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.OpsPort),
		Handler:           opsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// servers drain before the pool and exporters close
	shutdown.Register("ops server", opsServer.Shutdown)
	shutdown.Register("api server", apiServer.Shutdown)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serve(apiServer, logger.WithField("server", "api"))
	})
	g.Go(func() error {
		return serve(opsServer, logger.WithField("server", "ops"))
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down gracefully...")
		return shutdown.Shutdown(context.Background())
	})

	return g.Wait()
}

// serve runs srv until it is shut down
func serve(srv *http.Server, logger *observability.Logger) (err error) {
	defer observability.RecoverToError(logger, "http server", &err)

	logger.Infof("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server on %s failed: %w", srv.Addr, err)
	}
	return nil
}
