package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/skill-test-service/internal/cache"
	"github.com/SAP-F-2025/skill-test-service/internal/config"
	"github.com/SAP-F-2025/skill-test-service/internal/handlers"
	"github.com/SAP-F-2025/skill-test-service/internal/questionbank"
	"github.com/SAP-F-2025/skill-test-service/internal/repositories"
	"github.com/SAP-F-2025/skill-test-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/skill-test-service/internal/services"
	"github.com/SAP-F-2025/skill-test-service/internal/session"
	"github.com/SAP-F-2025/skill-test-service/internal/skillmap"
	"github.com/SAP-F-2025/skill-test-service/internal/utils"
	"github.com/SAP-F-2025/skill-test-service/internal/validator"
	"github.com/SAP-F-2025/skill-test-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewLogger("development").LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := logger.Slog()

	questionBank := questionbank.NewClient(questionbank.Config{
		BaseURL: cfg.QuestionBankURL,
		Timeout: cfg.HTTPTimeout,
		Logger:  slogger,
	})
	lookup := skillmap.NewSource(cfg.SkillMapSource, &http.Client{Timeout: cfg.HTTPTimeout})

	var cacheService cache.CacheService
	if cfg.RedisURL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, using in-memory question cache", "error", err)
			cacheService = cache.NewMemoryCache()
		} else {
			defer redisClient.Close()
			cacheService = cache.NewRedisCache(redisClient, slogger)
		}
	} else {
		cacheService = cache.NewMemoryCache()
	}

	var submissions repositories.SubmissionRepository
	if cfg.DatabaseURL != "" {
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			logger.LogError(err, "Failed to connect to database")
			os.Exit(1)
		}
		if err := postgres.AutoMigrate(db); err != nil {
			logger.LogError(err, "Failed to migrate database")
			os.Exit(1)
		}
		submissions = postgres.NewSubmissionPostgreSQL(db)
	} else {
		logger.Info("DATABASE_URL not set, submission audit log disabled")
	}

	eventPublisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.LogError(err, "Failed to create event publisher")
		os.Exit(1)
	}
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			logger.LogError(err, "Error closing event publisher")
		}
	}()

	sessionService := services.NewSessionService(services.SessionServiceDeps{
		Lookup:         lookup,
		Loader:         session.NewQuestionLoader(questionBank, cacheService, cfg.QuestionCacheTTL, slogger),
		Submitter:      questionBank,
		EventPublisher: eventPublisher,
		Submissions:    submissions,
		Logger:         slogger,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(logger), utils.ContextLogger(logger))
	handlers.NewHandlerManager(sessionService, validator.New(), logger).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepIdleSessions(sweepCtx, sessionService, cfg.SessionSweepInterval, cfg.SessionMaxAge)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "Error starting server")
			os.Exit(1)
		}
	}()

	<-shutdownChan
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.LogError(err, "Error shutting down HTTP server")
	}
}

func sweepIdleSessions(ctx context.Context, svc services.SessionService, interval, maxAge time.Duration) {
	if interval <= 0 || maxAge <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.PruneIdle(ctx, maxAge)
		}
	}
}
