package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formpilot/internal/api/handlers"
	"github.com/linskybing/formpilot/internal/api/middleware"
	"github.com/linskybing/formpilot/internal/api/routes"
	"github.com/linskybing/formpilot/internal/application"
	"github.com/linskybing/formpilot/internal/config"
	"github.com/linskybing/formpilot/internal/config/db"
	"github.com/linskybing/formpilot/internal/cron"
	"github.com/linskybing/formpilot/internal/domain/template"
	"github.com/linskybing/formpilot/internal/llm"
	"github.com/linskybing/formpilot/internal/repository"
	"github.com/linskybing/formpilot/internal/storage"
	"github.com/linskybing/formpilot/pkg/logger"
	"go.uber.org/zap"
)

// @title FormPilot API
// @version 1.0
// @description AI-assisted form builder with analytics, optimization and A/B testing.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	log := logger.Must(config.LogLevel, config.LogFormat)
	defer func() { _ = log.Sync() }()

	// Initialize JWT signing key
	middleware.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Init(); err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	if err := db.Migrate(db.DB); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	catalog, err := template.Builtin()
	if err != nil {
		log.Fatal("failed to load template catalog", zap.Error(err))
	}

	svc := application.New(repository.NewRepositories(db.DB), application.Deps{
		LLM:          newLLM(ctx, log),
		Presigner:    newPresigner(ctx, log),
		Catalog:      catalog,
		IPHashSalt:   config.IPHashSalt,
		UploadExpiry: config.UploadURLExpiry,
		Logger:       log,
	})
	h := handlers.New(svc, config.LiveAnalyticsInterval, config.AllowedOrigins, log)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(config.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware(log))

	routes.RegisterRoutes(router, h)

	retention := cron.StartRetentionTask(ctx, svc.Analytics, config.AnalyticsRetentionDays, 24*time.Hour, log)

	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("starting API server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	<-retention
}

func newLLM(ctx context.Context, log *zap.Logger) llm.Client {
	completer, err := llm.NewGenAICompleter(ctx, config.GenAIAPIKey, config.GenAIModel)
	if err != nil {
		log.Warn("AI generation disabled", zap.Error(err))
		return llm.Disabled{}
	}
	return llm.NewService(completer, llm.Options{
		GenerateTemperature: float32(config.GenerateTemperature),
		OptimizeTemperature: float32(config.OptimizeTemperature),
		MaxOutputTokens:     int32(config.MaxOutputTokens),
	})
}

// newPresigner returns nil when object storage is unreachable so uploads
// report unavailable instead of failing startup.
func newPresigner(ctx context.Context, log *zap.Logger) storage.Presigner {
	store, err := storage.NewMinioStorage(config.MinioEndpoint, config.MinioAccessKey,
		config.MinioSecretKey, config.MinioUseSSL, config.MinioBucket)
	if err != nil {
		log.Warn("file uploads disabled", zap.Error(err))
		return nil
	}
	bucketCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := store.EnsureBucket(bucketCtx); err != nil {
		log.Warn("file uploads disabled", zap.String("bucket", config.MinioBucket), zap.Error(err))
		return nil
	}
	return store
}
