package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/clock"
	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/appointment-scheduler/internal/db"
	"github.com/BruksfildServices01/appointment-scheduler/internal/events"
	"github.com/BruksfildServices01/appointment-scheduler/internal/logging"
	"github.com/BruksfildServices01/appointment-scheduler/internal/otelx"
	"github.com/BruksfildServices01/appointment-scheduler/internal/routes"
)

const serviceName = "appointment-scheduler"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otelx.Setup(ctx, otelx.Config{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  serviceName,
		OTLPEndpoint: cfg.OTelEndpoint,
		SampleRatio:  cfg.OTelSamplingRatio,
	})
	if err != nil {
		return err
	}

	// NewDB also runs the migrations
	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		return err
	}

	// ------------------------------
	// Redis (opcional)
	// ------------------------------
	var rdb redis.UniversalClient
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable at startup", "addr", cfg.RedisAddr, "err", err)
		}
		defer rdb.Close()
	} else {
		logger.Info("redis disabled, using in-process locks")
	}

	// ------------------------------
	// Eventos (opcional)
	// ------------------------------
	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info("kafka publisher enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	auditLogs := audit.New(db)
	dispatcher := audit.NewDispatcher(auditLogs, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	workers := routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Redis:     rdb,
		Config:    cfg,
		Logger:    logger,
		Clock:     clock.NewSystem(),
		Audit:     dispatcher,
		AuditLogs: auditLogs,
		Events:    publisher,
	})

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	var bg errgroup.Group
	if workers.AutoCompleter != nil {
		bg.Go(func() error { workers.AutoCompleter.Run(workerCtx); return nil })
	}
	if workers.Reminder != nil {
		bg.Go(func() error { workers.Reminder.Run(workerCtx); return nil })
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, "http.server"),
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	logger.Info("server running", "addr", cfg.Addr())
	runErr := serveUntilDone(ctx, srv.ListenAndServe, logger)

	// ------------------------------
	// Graceful shutdown
	// ------------------------------
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}

	cancelWorkers()
	_ = bg.Wait()

	// handlers still running after a failed Shutdown may audit; their events
	// are dropped by the closed dispatcher
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("audit queue not drained", "err", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Warn("event publisher close", "err", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown", "err", err)
	}

	logger.Info("bye")
	return runErr
}

// serveUntilDone runs serve until it fails or ctx ends. A serve failure is
// returned so the process exits non-zero; a clean close is not an error.
func serveUntilDone(ctx context.Context, serve func() error, logger *slog.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return nil
	case err := <-serveErr:
		if err != nil {
			logger.Error("server failed", "err", err)
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}
