package ai

import (
	"errors"
	"net"
	"net/url"
)

// isTransportError reports whether err happened before any HTTP response
// was received: dial failures, DNS errors, resets, timeouts.
func isTransportError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
