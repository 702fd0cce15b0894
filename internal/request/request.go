package request

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the client IP from the request, respecting X-Forwarded-For and X-Real-IP.
// The port is dropped from RemoteAddr so one client maps to one rate-limit key.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
