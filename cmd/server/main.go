package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/content-studio-agent/internal/config"
	"github.com/BerylCAtieno/content-studio-agent/internal/generator"
	"github.com/BerylCAtieno/content-studio-agent/internal/logger"
	"github.com/BerylCAtieno/content-studio-agent/internal/metrics"
	"github.com/BerylCAtieno/content-studio-agent/internal/store"
	"github.com/BerylCAtieno/content-studio-agent/internal/studio"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Logger())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("Server stopped with error", zap.Error(err))
	}
	zlog.Info("Server exiting")
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Store(), zlog)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			zlog.Error("Failed to close store", zap.Error(err))
		}
	}()

	recorder := metrics.New()
	gen := generator.New(generator.WithDelay(cfg.GeneratorMinDelay, cfg.GeneratorMaxDelay))

	s, err := studio.New(st, gen, zlog,
		studio.WithRuleTestDelay(cfg.RuleTestDelay),
		studio.WithRecorder(recorder),
	)
	if err != nil {
		return fmt.Errorf("failed to create studio: %w", err)
	}
	if err := s.Init(ctx); err != nil {
		return fmt.Errorf("failed to load studio data: %w", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg.GinMode, s, recorder, zlog),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Info("Content Studio Agent starting",
			zap.String("port", cfg.Port),
			zap.String("store", cfg.StoreDriver),
		)
		zlog.Info("Agent card available", zap.String("url", "http://localhost:"+cfg.Port+"/.well-known/agent.json"))
		zlog.Info("A2A endpoint available", zap.String("url", "http://localhost:"+cfg.Port+"/a2a/content"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zlog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
