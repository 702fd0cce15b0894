package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/staticWagomU/slack-remind-generator/internal/config"
	"github.com/staticWagomU/slack-remind-generator/internal/keystore"
	"github.com/staticWagomU/slack-remind-generator/internal/logger"
	"github.com/staticWagomU/slack-remind-generator/internal/queue"
	"github.com/staticWagomU/slack-remind-generator/internal/results"
	"github.com/staticWagomU/slack-remind-generator/internal/services/ai"
	"github.com/staticWagomU/slack-remind-generator/internal/telemetry"
	"github.com/staticWagomU/slack-remind-generator/internal/workers"
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
	if err := cfg.ValidateWorker(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	debugMode := cfg.WorkerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync(zapLogger) }()

	zapLogger.Info("starting_worker",
		zap.String("version", version),
		zap.Bool("debug_mode", debugMode),
		zap.String("ai_provider", cfg.AIProvider),
		zap.String("ai_model", cfg.AIModel),
		zap.String("key_store", cfg.KeyStore),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, cfg.OTELEnabled, telemetry.Options{
		ServiceName:    telemetry.WorkerServiceName,
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
	if cfg.KeyStore == config.KeyStoreMemory && cfg.OpenAIKey == "" {
		zapLogger.Warn("memory_key_store_without_env_key",
			zap.String("hint", "set OPENAI_API_KEY or share a persistent KEY_STORE with the server"),
		)
	}

	aiService, err := ai.NewServiceFromSettings(cfg.AISettings(), keys.Keys(), zapLogger, debugMode)
	if err != nil {
		zapLogger.Fatal("failed_to_create_ai_service", zap.Error(err))
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("failed_to_parse_redis_url", zap.Error(err))
	}
	redisClient := redis.NewClient(opts)
	defer func() {
		if err := redisClient.Close(); err != nil {
			zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
		}
	}()
	resultStore := results.NewRedisStore(redisClient, cfg.ResultTTL)
	if err := resultStore.HealthCheck(ctx); err != nil {
		zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
	}
	zapLogger.Info("connected_to_redis")

	jobQueue, err := queue.ConnectWithRetry(ctx, cfg.RabbitMQURL, queue.DefaultConnectAttempts, queue.DefaultConnectDelay, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_rabbitmq_after_retries", zap.Error(err))
	}
	defer func() {
		if err := jobQueue.Close(); err != nil {
			zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
		}
	}()

	dlqGC := queue.NewGarbageCollector(jobQueue, cfg.DLQGCInterval, cfg.DLQRetention, zapLogger)
	go func() {
		if err := dlqGC.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zapLogger.Error("dlq_garbage_collector_stopped_with_error", zap.Error(err))
		}
	}()

	msgChan, errChan, err := jobQueue.Consume(ctx, cfg.RabbitMQPrefetch)
	if err != nil {
		zapLogger.Fatal("failed_to_start_consuming_messages", zap.Error(err))
	}
	zapLogger.Info("worker_started", zap.Int("prefetch", cfg.RabbitMQPrefetch))

	worker := workers.NewConversionWorker(aiService, resultStore, jobQueue, zapLogger)
	if err := worker.Run(ctx, msgChan, errChan); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Error("worker_stopped_with_error", zap.Error(err))
	}

	zapLogger.Info("worker_stopped")
}
