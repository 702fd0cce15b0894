package queue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultConnectAttempts covers a broker that starts after the service
	DefaultConnectAttempts = 10
	// DefaultConnectDelay is the wait after the first failed attempt
	DefaultConnectDelay = 2 * time.Second

	maxConnectDelay = 30 * time.Second
)

// ConnectWithRetry dials RabbitMQ, doubling the wait between attempts up to 30s
func ConnectWithRetry(ctx context.Context, amqpURL string, attempts int, initialDelay time.Duration, logger *zap.Logger) (*RabbitMQQueue, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		q, err := NewRabbitMQQueue(amqpURL, logger)
		if err == nil {
			logger.Info("connected_to_rabbitmq", zap.Int("attempt", attempt+1))
			return q, nil
		}
		lastErr = err
		if attempt == attempts-1 {
			break
		}

		delay := initialDelay * time.Duration(1<<uint(min(attempt, 10)))
		if delay > maxConnectDelay {
			delay = maxConnectDelay
		}
		logger.Warn("failed_to_connect_to_rabbitmq_retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", attempts),
			zap.Duration("retry_delay", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, fmt.Errorf("rabbitmq unreachable after %d attempts: %w", attempts, lastErr)
}
