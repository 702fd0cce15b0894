package middleware

import (
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

// DefaultAllowedOrigin is used when no origin is configured
const DefaultAllowedOrigin = "http://localhost:3000"

// CORS wraps rs/cors for the browser front-end. Preflight requests are
// answered here and never reach the router.
func CORS(allowedOrigins []string, logger *zap.Logger) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{DefaultAllowedOrigin}
	}
	if logger != nil {
		logger.Info("cors_configured", zap.Strings("allowed_origins", allowedOrigins))
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{
			RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset",
		},
		MaxAge: 86400,
	})
	return c.Handler
}
