package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/staticWagomU/slack-remind-generator/api/openapi"
	"github.com/staticWagomU/slack-remind-generator/internal/businessday"
	"github.com/staticWagomU/slack-remind-generator/internal/config"
	"github.com/staticWagomU/slack-remind-generator/internal/handlers"
	"github.com/staticWagomU/slack-remind-generator/internal/keystore"
	"github.com/staticWagomU/slack-remind-generator/internal/logger"
	"github.com/staticWagomU/slack-remind-generator/internal/middleware"
	"github.com/staticWagomU/slack-remind-generator/internal/queue"
	"github.com/staticWagomU/slack-remind-generator/internal/results"
	"github.com/staticWagomU/slack-remind-generator/internal/services/ai"
	"github.com/staticWagomU/slack-remind-generator/internal/telemetry"
	"github.com/staticWagomU/slack-remind-generator/internal/timeconv"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug mode for LLM API logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync(zapLogger) }()

	zapLogger.Info("starting_server",
		zap.String("version", version),
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("ai_provider", cfg.AIProvider),
		zap.String("ai_model", cfg.AIModel),
		zap.String("key_store", cfg.KeyStore),
		zap.Bool("async_enabled", cfg.AsyncEnabled()),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	ctx := context.Background()

	shutdownTracing := telemetry.Setup(ctx, cfg.OTELEnabled, telemetry.Options{
		ServiceName:    telemetry.ServerServiceName,
		ServiceVersion: version,
		Endpoint:       cfg.OTELEndpoint,
	}, zapLogger)
	defer shutdownTracing()

	keys, err := keystore.Open(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed_to_open_key_store", zap.Error(err))
	}
	defer func() {
		if err := keys.Close(); err != nil {
			zapLogger.Warn("failed_to_close_key_store", zap.Error(err))
		}
	}()
	zapLogger.Info("key_store_ready", zap.String("kind", keys.Kind))

	aiService, err := ai.NewServiceFromSettings(cfg.AISettings(), keys.Keys(), zapLogger, debugMode)
	if err != nil {
		zapLogger.Fatal("failed_to_create_ai_service", zap.Error(err))
	}

	calendar, err := businessday.NewCalendar(cfg.HolidaysFile)
	if err != nil {
		zapLogger.Fatal("failed_to_load_holiday_calendar",
			zap.String("path", logger.SanitizePath(cfg.HolidaysFile)),
			zap.Error(err),
		)
	}
	zapLogger.Info("holiday_calendar_loaded",
		zap.Int("extra_days", calendar.ExtraDays()),
		zap.Int("first_year", businessday.MinYear),
		zap.Int("last_year", businessday.MaxYear),
	)

	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		loc = time.Local
	}

	healthChecker := handlers.NewHealthChecker(version).AddCheck("key_store", keys.HealthCheck)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("failed_to_parse_redis_url", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
			}
		}()
		healthChecker.AddCheck("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		zapLogger.Info("connected_to_redis")
	}

	var limiterClient redis.UniversalClient
	if redisClient != nil {
		limiterClient = redisClient
	}
	rateLimitMW, err := middleware.RateLimit(cfg.RateLimit, limiterClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.String("rate", cfg.RateLimit), zap.Error(err))
	}

	aiHandler := handlers.NewAIHandler(keys.Store, aiService, zapLogger)

	gcCtx, gcCancel := context.WithCancel(ctx)
	defer gcCancel()

	if cfg.AsyncEnabled() {
		jobQueue, err := queue.ConnectWithRetry(ctx, cfg.RabbitMQURL, queue.DefaultConnectAttempts, queue.DefaultConnectDelay, zapLogger)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_rabbitmq_after_retries", zap.Error(err))
		}
		defer func() {
			if err := jobQueue.Close(); err != nil {
				zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
			}
		}()
		healthChecker.AddCheck("queue", jobQueue.HealthCheck)

		aiHandler.WithJobs(jobQueue, results.NewRedisStore(redisClient, cfg.ResultTTL), cfg.ResultTTL)

		dlqGC := queue.NewGarbageCollector(jobQueue, cfg.DLQGCInterval, cfg.DLQRetention, zapLogger)
		go func() {
			if err := dlqGC.Start(gcCtx); err != nil && !errors.Is(err, context.Canceled) {
				zapLogger.Error("dlq_garbage_collector_stopped_with_error", zap.Error(err))
			}
		}()
		zapLogger.Info("started_dlq_garbage_collector",
			zap.Duration("interval", cfg.DLQGCInterval),
			zap.Duration("retention", cfg.DLQRetention),
		)
	} else {
		zapLogger.Info("async_jobs_disabled")
	}

	r := newRouter(routerDeps{
		logger:         zapLogger,
		allowedOrigins: cfg.AllowedOrigins(),
		enableHSTS:     cfg.EnableHSTS,
		tracing:        cfg.OTELEnabled && cfg.OTELEndpoint != "",
		health:         healthChecker,
		openAPI:        handlers.NewOpenAPIHandler(openapi.Spec),
		time:           handlers.NewTimeHandler(timeconv.New(), businessday.NewCalculator(calendar), loc),
		commands:       handlers.NewCommandHandler(),
		ai:             aiHandler,
		rateLimit:      rateLimitMW,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   middleware.DefaultRequestTimeout + 10*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")
	gcCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server_forced_to_shutdown", zap.Error(err))
	}
	zapLogger.Info("server_exited")
}
