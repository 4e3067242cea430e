package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/legalmind/docs"
	pkgvalidator "github.com/johnquangdev/legalmind/pkg/validator"

	"github.com/johnquangdev/legalmind/internal/adapter/handler"
	"github.com/johnquangdev/legalmind/internal/adapter/repository"
	"github.com/johnquangdev/legalmind/internal/infrastructure/cache"
	"github.com/johnquangdev/legalmind/internal/infrastructure/external/oauth"
	"github.com/johnquangdev/legalmind/internal/infrastructure/storage"
	"github.com/johnquangdev/legalmind/internal/usecase/auth"
	"github.com/johnquangdev/legalmind/internal/usecase/legal"
	pkgai "github.com/johnquangdev/legalmind/pkg/ai"
	"github.com/johnquangdev/legalmind/pkg/config"
	"github.com/johnquangdev/legalmind/pkg/meetstream"
	"github.com/johnquangdev/legalmind/pkg/metrics"
)

const zoomTokenTTL = 7 * 24 * time.Hour

// @title           LegalMind Meeting Assistant API
// @version         1.0
// @description     Analyzes legal team meetings across five legal domains and tracks the resulting actions and insights

// @host      localhost:8080
// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	logger.Info("🔧 Initializing dependencies...")
	m := metrics.Default()

	ctx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelInit()

	// Cache store: Redis when enabled, in-process otherwise
	var (
		store     pkgai.Store
		cachePing handler.Pinger
	)
	if cfg.Redis.Enabled {
		logger.Info("📦 Connecting to Redis...", zap.String("addr", cfg.GetRedisAddr()))
		redisClient, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		redisStore := cache.NewRedisStore(redisClient, "legalmind:", logger)
		store = redisStore
		cachePing = redisStore
	} else {
		logger.Info("📦 Using in-memory cache store")
		store = cache.NewMemoryStore(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	// Completion client chain
	logger.Info("🤖 Initializing AI components...", zap.String("model", cfg.OpenAI.Model))
	openAIClient, err := pkgai.NewOpenAIClient(&cfg.OpenAI, m, logger)
	if err != nil {
		logger.Fatal("Failed to initialize OpenAI client", zap.Error(err))
	}
	var completer pkgai.Completer = pkgai.NewRetryCompleter(openAIClient, cfg.OpenAI.MaxRetries, logger)
	if cfg.Cache.Enabled {
		completer = pkgai.NewCachedCompleter(completer, store, cfg.Cache.TTL, m, logger)
	}

	repo := repository.NewTaskRepository()
	pipeline := legal.NewPipeline(completer, cfg.Pipeline.Parallel, m, logger)
	materializer := legal.NewMaterializer(repo, m, logger)

	deps := legal.ServiceDeps{
		Repo:         repo,
		Pipeline:     pipeline,
		Materializer: materializer,
		Bots:         meetstream.NewClient(&cfg.MeetStream, m, logger),
		Logger:       logger,
	}

	if cfg.Assembly.APIKey != "" {
		logger.Info("🎙️ AssemblyAI transcription enabled")
		deps.Transcriber = pkgai.NewAssemblyAITranscriber(&cfg.Assembly, logger)
	}

	var (
		archive handler.ArchiveLinker
		bucket  handler.BucketInspector
	)
	if cfg.Storage.Enabled {
		logger.Info("🗄️ Connecting to object storage...", zap.String("endpoint", cfg.Storage.Endpoint))
		minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage, logger)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
		deps.Archiver = minioClient
		archive = minioClient
		bucket = minioClient
	}

	legalService := legal.NewService(deps)
	legalHandler := handler.NewLegalHandler(legalService, archive, logger)

	// Zoom OAuth
	var zoomHandler *handler.Zoom
	zoomProvider := oauth.NewZoomProvider(&cfg.Zoom)
	if zoomProvider.Configured() {
		logger.Info("🔐 Initializing Zoom OAuth...")
		zoomService := auth.NewZoomService(
			zoomProvider,
			oauth.NewStateManager(store, oauth.ProviderZoom),
			oauth.NewTokenStore(store, oauth.ProviderZoom, zoomTokenTTL),
			logger,
		)
		zoomHandler = handler.NewZoomHandler(zoomService, !cfg.IsDevelopment(), logger)
	} else {
		logger.Warn("⚠️ Zoom OAuth not configured; /v1/auth/zoom routes disabled")
	}

	logger.Info("🛣️ Setting up routes...")
	router := handler.NewRouter(cfg, handler.RouterDeps{
		Legal:  legalHandler,
		Zoom:   zoomHandler,
		Cache:  cachePing,
		Bucket: bucket,
		Logger: logger,
	})
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.Bool("parallel_pipeline", cfg.Pipeline.Parallel),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
