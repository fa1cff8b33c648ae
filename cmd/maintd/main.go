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

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mill-maintenance-backend/config"
	"mill-maintenance-backend/internal/api"
	"mill-maintenance-backend/internal/auth"
	"mill-maintenance-backend/internal/db"
	"mill-maintenance-backend/internal/model"
	"mill-maintenance-backend/internal/notification"
	"mill-maintenance-backend/internal/store"
)

// configDefaults are written once on first start and never overwritten.
var configDefaults = map[string]string{
	model.ConfigMachineStatus:     "RUNNING",
	model.ConfigLowStockThreshold: "100",
}

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	logger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("configuration loaded", zap.String("path", configPath))

	gormDB, err := db.Init(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	logger.Info("database initialized", zap.String("driver", cfg.Database.Driver))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	if err := appStore.SeedConfig(ctx, configDefaults); err != nil {
		logger.Fatal("failed to seed system config", zap.Error(err))
	}

	authenticator, err := auth.New(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to initialize auth", zap.Error(err))
	}

	opts := []api.Option{api.WithLogger(logger)}
	var pool *notification.WorkerPool
	if cfg.Push.Enabled() {
		pool = notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}, logger)
		pool.Start(ctx)
		opts = append(opts, api.WithPush(pool, cfg.Push.PublicKey))
		logger.Info("push worker pool started", zap.Int("size", cfg.WorkerPool.Size))
	} else {
		logger.Warn("VAPID keys are not configured; browser push is disabled")
	}

	handler := api.NewHandler(appStore, authenticator, opts...)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
		CacheTTL:        cfg.Server.CacheTTL(),
		AuthRequired:    cfg.Auth.Required,
	}, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown", zap.Error(err))
	}

	cancel()
	if pool != nil {
		pool.Wait()
	}
	logger.Info("server gracefully stopped")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return zapCfg.Build()
}
