package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/hydrowatch/hydrowatch/internal/accounts"
	"github.com/hydrowatch/hydrowatch/internal/app"
	"github.com/hydrowatch/hydrowatch/internal/catalog"
	"github.com/hydrowatch/hydrowatch/internal/observability"
	"github.com/hydrowatch/hydrowatch/internal/platform/cache"
	"github.com/hydrowatch/hydrowatch/internal/platform/db"
	"github.com/hydrowatch/hydrowatch/internal/quality"
	"github.com/hydrowatch/hydrowatch/internal/reports"
	"github.com/hydrowatch/hydrowatch/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	userRepo := accounts.NewRepository(pool, accounts.RoleUser)
	userService := accounts.NewService(userRepo, accounts.TokenConfig{
		Secret: []byte(cfg.JWTUserSecret),
		TTL:    cfg.TokenTTL,
		Role:   accounts.RoleUser,
	})
	userHandler := accounts.NewHandler(logger, userService, accounts.RoleUser)

	adminRepo := accounts.NewRepository(pool, accounts.RoleAdmin)
	adminService := accounts.NewService(adminRepo, accounts.TokenConfig{
		Secret: []byte(cfg.JWTAdminSecret),
		TTL:    cfg.TokenTTL,
		Role:   accounts.RoleAdmin,
	})
	adminHandler := accounts.NewHandler(logger, adminService, accounts.RoleAdmin)

	catalogRepo := catalog.NewRepository(pool)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	inferenceClient := quality.NewClient(cfg.InferenceURL, cfg.InferenceTimeout, metrics)
	qualityCache := quality.NewCache(redisClient, cfg.QualityCacheTTL)
	qualityService := quality.NewService(catalogService, inferenceClient, qualityCache, logger)
	qualityHandler := quality.NewHandler(logger, qualityService)

	reportsRepo := reports.NewRepository(pool)
	reportsService := reports.NewService(reportsRepo)
	reportsHandler := reports.NewHandler(logger, reportsService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		UserHandler:    userHandler,
		AdminHandler:   adminHandler,
		UserService:    userService,
		AdminService:   adminService,
		CatalogHandler: catalogHandler,
		QualityHandler: qualityHandler,
		ReportsHandler: reportsHandler,
		JobHandler:     jobHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
