package middleware

import (
	"net/http"
	"strings"

	logpkg "github.com/staticWagomU/slack-remind-generator/internal/logger"
	"github.com/staticWagomU/slack-remind-generator/internal/request"
	"go.uber.org/zap"
)

// KeyPath is the API key management route; changes to it are audited
const KeyPath = "/api/v1/ai/key"

// Audit logs security-relevant events: API key changes and rate limit violations
func Audit(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			statusCode := wrapped.statusCode
			ip := logpkg.SanitizeString(request.ClientIP(r), logpkg.MaxGeneralStringLength)

			if strings.TrimSuffix(r.URL.Path, "/") == KeyPath && (r.Method == http.MethodPut || r.Method == http.MethodDelete) {
				logger.Warn("api_key_changed",
					zap.String("method", r.Method),
					zap.Int("status_code", statusCode),
					zap.String("ip", ip),
				)
			}

			if statusCode == http.StatusTooManyRequests {
				logger.Warn("rate_limit_violation",
					zap.String("method", r.Method),
					zap.String("path", logpkg.SanitizePath(r.URL.Path)),
					zap.String("ip", ip),
				)
			}
		})
	}
}
