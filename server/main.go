package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"letsparkit/api/routes"
	"letsparkit/internal/bookings"
	"letsparkit/internal/notifications"
	"letsparkit/internal/parking"
	"letsparkit/internal/realtime"
	"letsparkit/internal/shared/config"
	"letsparkit/internal/shared/database"
	"letsparkit/internal/slots"
	"letsparkit/internal/users"
	"letsparkit/pkg/logger"
	"letsparkit/pkg/metrics"
	"letsparkit/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)
	appLogger = logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)

	db, err := database.InitDB(cfg)
	if err != nil {
		// Redis is optional; run on the in-memory fallbacks
		appLogger.Error("Failed to connect to Redis, continuing without it", slog.Any("error", err))
		db = &database.DB{}
	}
	defer db.Close()

	if db.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := slots.NewAtomicRedisHolds(db.Redis).PreloadScripts(ctx); err != nil {
			appLogger.Error("Failed to preload Redis Lua scripts", slog.Any("error", err))
		} else {
			appLogger.Info("Redis Lua scripts preloaded for atomic slot holds")
		}
		cancel()
	}

	store, userRepo, err := initDomain(cfg)
	if err != nil {
		appLogger.Error("Failed to initialize domain data", slog.Any("error", err))
		os.Exit(1)
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Event sinks
	appMetrics := metrics.New()
	if err := appMetrics.RegisterAvailability(store); err != nil {
		appLogger.Error("Failed to register availability metrics", slog.Any("error", err))
	}
	store.Subscribe(appMetrics)

	hub := realtime.NewHub(store)
	go hub.Run(appCtx)
	store.Subscribe(hub)

	publisher, consumer := initNotifications(appCtx, cfg)
	store.Subscribe(notifications.Sink(publisher))

	var rateLimiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.New(db.GetRedis(), cfg.RateLimit)
		appLogger.Info("Rate limiter initialized",
			slog.Bool("redis", db.Redis != nil),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	appRouter := routes.NewRouter(cfg, db, store, userRepo, appMetrics, hub)
	router := setupRouter(appRouter, rateLimiter, appMetrics)

	scheduler := bookings.NewCompletionScheduler(appRouter.BookingService(), cfg.Booking.CompletionSchedule)
	if err := scheduler.Start(); err != nil {
		appLogger.Error("Failed to start booking completion job", slog.Any("error", err))
	}

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("built", BuildTime),
			slog.Bool("redis", db.Redis != nil),
			slog.Bool("kafka", cfg.Kafka.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	scheduler.Stop()
	appCancel()
	if consumer != nil {
		if err := consumer.Stop(); err != nil {
			appLogger.Error("Error stopping notification consumer", slog.Any("error", err))
		}
	}
	if err := publisher.Close(); err != nil {
		appLogger.Error("Error closing event publisher", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

// initDomain builds the in-memory store and identity directory
func initDomain(cfg *config.Config) (*parking.Store, users.Repository, error) {
	if !cfg.Seed.Enabled {
		return parking.New(), users.NewRepository(), nil
	}
	userRepo, err := users.NewSeededRepository(cfg.Seed.BcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("seed users: %w", err)
	}
	return parking.NewSeeded(), userRepo, nil
}

// initNotifications publishes to Kafka when enabled and renders notices
// in-process otherwise. The consumer is nil without Kafka.
func initNotifications(ctx context.Context, cfg *config.Config) (notifications.Publisher, *notifications.KafkaConsumer) {
	appLogger := logger.GetDefault()
	processor := notifications.NewProcessor(notifications.NewLogDeliverer(), 3, time.Second)

	if !cfg.Kafka.Enabled {
		appLogger.Info("Kafka disabled, notifications are rendered in-process")
		return notifications.NewInlinePublisher(processor), nil
	}

	publisher, err := notifications.NewKafkaPublisher(notifications.DefaultKafkaProducerConfig(cfg.Kafka))
	if err != nil {
		appLogger.Error("Failed to create Kafka publisher, falling back to in-process notifications", slog.Any("error", err))
		return notifications.NewInlinePublisher(processor), nil
	}

	consumer, err := notifications.NewKafkaConsumer(notifications.DefaultConsumerConfig(cfg.Kafka), processor)
	if err != nil {
		appLogger.Error("Failed to create Kafka consumer, notices will not be delivered", slog.Any("error", err))
		return publisher, nil
	}
	consumer.StartConsumers(ctx, cfg.Kafka.NumConsumerWorkers)
	appLogger.Info("Kafka notification pipeline started", slog.String("topic", cfg.Kafka.EventsTopic))
	return publisher, consumer
}

func setupRouter(appRouter *routes.Router, rateLimiter ratelimit.Limiter, appMetrics *metrics.Metrics) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery(), appMetrics.Middleware())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter.SetupRoutes(engine)
	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}
