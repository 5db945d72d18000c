package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pnwcoord/repeater-qa/internal/adapter/extract"
	httpadapter "github.com/pnwcoord/repeater-qa/internal/adapter/http"
	kafkaadapter "github.com/pnwcoord/repeater-qa/internal/adapter/kafka"
	"github.com/pnwcoord/repeater-qa/internal/bandplan"
	"github.com/pnwcoord/repeater-qa/internal/config"
	"github.com/pnwcoord/repeater-qa/internal/monitor"
	"github.com/pnwcoord/repeater-qa/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	fetcher := extract.NewClient(cfg.ExtractURL, 2*time.Minute, logger)
	notifier := kafkaadapter.NewNotifier(cfg, logger)

	validator := bandplan.NewValidator(bandplan.DefaultSegments(), bandplan.DefaultRules(), bandplan.DefaultExceptions())
	enumerator := bandplan.NewEnumerator(bandplan.DefaultRules())

	m := monitor.New(fetcher, notifier, validator, enumerator,
		logger, metrics, clockwork.NewRealClock(), cfg.FetchInterval)

	srv := httpadapter.NewServer(cfg.HTTPAddr, m, m, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the change monitor.
	go func() {
		if err := m.Run(ctx); err != nil {
			logger.Error("monitor error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := notifier.Close(); err != nil {
		logger.Error("kafka notifier close error", "error", err)
	}

	logger.Info("shutdown complete")
}
