package middleware

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/staticWagomU/slack-remind-generator/internal/request"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

const (
	// DefaultRateLimit is applied when no rate is configured
	DefaultRateLimit = "5-S"

	rateLimitPrefix = "slack-remind:ratelimit"
)

// RateLimit returns middleware limiting each client IP to rate (ulule
// format, e.g. "5-S" or "100-M"). Counters live in redis when client is
// non-nil, otherwise in process memory. Store errors fail open.
func RateLimit(rate string, client redis.UniversalClient, logger *zap.Logger) (func(http.Handler) http.Handler, error) {
	if rate == "" {
		rate = DefaultRateLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	storeOptions := limiter.StoreOptions{Prefix: rateLimitPrefix}
	var store limiter.Store
	if client != nil {
		store, err = redisstore.NewStoreWithOptions(client, storeOptions)
		if err != nil {
			return nil, fmt.Errorf("create redis rate limit store: %w", err)
		}
	} else {
		store = memorystore.NewStoreWithOptions(storeOptions)
	}

	instance := limiter.New(store, parsed)
	mw := stdlibmw.NewMiddleware(instance,
		stdlibmw.WithKeyGetter(request.ClientIP),
		stdlibmw.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			respondErrorJSON(w, r, http.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded, try again later", logger)
		}),
		stdlibmw.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Warn("rate_limit_store_error", zap.Error(err))
		}),
	)

	return func(next http.Handler) http.Handler {
		limited := mw.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The stdlib driver stops the chain after ErrorHandler; serve anyway
			fw := &failOpenWriter{ResponseWriter: w}
			limited.ServeHTTP(fw, r)
			if !fw.served {
				next.ServeHTTP(w, r)
			}
		})
	}, nil
}

// failOpenWriter notes whether anything was written downstream
type failOpenWriter struct {
	http.ResponseWriter
	served bool
}

func (f *failOpenWriter) WriteHeader(code int) {
	f.served = true
	f.ResponseWriter.WriteHeader(code)
}

func (f *failOpenWriter) Write(b []byte) (int, error) {
	f.served = true
	return f.ResponseWriter.Write(b)
}
