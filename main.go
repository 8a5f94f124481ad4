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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/adapter/events"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/adapter/retriever"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/adapter/tracking"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/config"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/logger"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/metrics"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/policy"
	store "github.com/Kailramiya/AI4Chat-ai-assistant/internal/repository"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/service"
	handler "github.com/Kailramiya/AI4Chat-ai-assistant/internal/transport/http"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/transport/ws"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		Production: cfg.IsProduction(),
	})
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("support assistant exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting support assistant",
		zap.Int("port", cfg.HTTPPort),
		zap.String("session_backend", cfg.SessionBackend),
		zap.String("retriever_mode", cfg.RetrieverMode))

	// Initialize store
	db, err := store.Open(ctx, store.OpenOptions{
		Backend:       cfg.SessionBackend,
		TTL:           cfg.SessionTTL,
		SweepInterval: cfg.SessionSweepInterval,
		DatabaseURL:   cfg.DatabaseURL,
		RedisURL:      cfg.RedisURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	// Initialize retriever
	r, err := retriever.New(retriever.Options{
		Mode:          cfg.RetrieverMode,
		Command:       cfg.RetrieverCommand,
		Args:          cfg.RetrieverArgs,
		Timeout:       cfg.RetrieverTimeout,
		KnowledgeFile: cfg.KnowledgeFile,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize retriever: %w", err)
	}

	// Initialize policy engine
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		return fmt.Errorf("failed to initialize policy engine: %w", err)
	}

	publisher, err := events.New(cfg.NATSURL)
	if err != nil {
		return fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	defer publisher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	// Initialize service
	svc := service.New(db, r, tracking.NewMockTracker(nil), policyEngine, publisher, m, cfg, log.Named("service"))

	hub := ws.NewHub(log.Named("hub"))
	wsServer := ws.NewServer(ws.DefaultOptions(), hub, svc, cfg.CORSOrigins, log.Named("ws"))
	server := handler.NewServer(svc, cfg, reg, wsServer, log.Named("http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		svc.RunSessionExpiryMonitor(gctx)
		return nil
	})
	g.Go(func() error {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		log.Info("http server listening", zap.String("addr", addr))
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down support assistant")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("support assistant stopped")
	return nil
}
