package keystore

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/staticWagomU/slack-remind-generator/internal/config"
	"github.com/staticWagomU/slack-remind-generator/internal/database"
	"github.com/staticWagomU/slack-remind-generator/internal/services/ai"
	"go.uber.org/zap"
)

// Backend is an opened Store plus whatever must be closed with it
type Backend struct {
	Store Store
	Kind  string
	// EnvKey is OPENAI_API_KEY. It is never written to Store.
	EnvKey string
	ping   func(ctx context.Context) error
	close  func() error
}

// Keys is the key source for the AI pipeline: the stored key, or EnvKey
// when the slot is empty
func (b *Backend) Keys() ai.KeySource {
	return WithFallback(b.Store, b.EnvKey)
}

// HealthCheck verifies the backing service is reachable
func (b *Backend) HealthCheck(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

// Close releases the backend's connections
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open builds the store selected by cfg.KeyStore
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	var b *Backend
	switch cfg.KeyStore {
	case config.KeyStoreMemory:
		b = &Backend{Store: NewMemoryStore()}
	case config.KeyStoreSQLite, config.KeyStorePostgres:
		driver, dsn := database.DriverSQLite, cfg.SQLitePath
		if cfg.KeyStore == config.KeyStorePostgres {
			driver, dsn = database.DriverPostgres, cfg.DatabaseURL
		}
		db, err := database.Open(ctx, driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("open %s key store: %w", cfg.KeyStore, err)
		}
		b = &Backend{Store: NewSQLStore(db), ping: db.HealthCheck, close: db.Close}
	case config.KeyStoreRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect to redis key store: %w", err)
		}
		b = &Backend{
			Store: NewRedisStore(client),
			ping:  func(ctx context.Context) error { return client.Ping(ctx).Err() },
			close: client.Close,
		}
	default:
		return nil, fmt.Errorf("unknown key store %q", cfg.KeyStore)
	}
	b.Kind = cfg.KeyStore
	b.EnvKey = strings.TrimSpace(cfg.OpenAIKey)
	if b.EnvKey != "" && logger != nil {
		logger.Info("api_key_env_fallback_enabled", zap.String("key_store", b.Kind))
	}
	return b, nil
}

// FallbackSource reads Store and falls back to Key when the slot is empty
type FallbackSource struct {
	Store Store
	Key   string
}

// WithFallback returns store itself when key is empty
func WithFallback(store Store, key string) ai.KeySource {
	if key == "" {
		return store
	}
	return &FallbackSource{Store: store, Key: key}
}

// Read implements ai.KeySource
func (f *FallbackSource) Read(ctx context.Context) (string, bool, error) {
	key, ok, err := f.Store.Read(ctx)
	if err != nil || ok {
		return key, ok, err
	}
	return f.Key, true, nil
}
