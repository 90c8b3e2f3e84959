package ratelimit

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Quota is a fixed-window budget: at most MaxRequests per Window, with the
// count resetting at the window boundary rather than sliding.
type Quota struct {
	MaxRequests int
	Window      time.Duration
}

// Predefined quotas. Auth endpoints get the tightest budget to slow down
// credential stuffing; form submissions and general API traffic are looser.
var (
	Auth = Quota{MaxRequests: 5, Window: 15 * time.Minute}
	Form = Quota{MaxRequests: 10, Window: time.Minute}
	API  = Quota{MaxRequests: 100, Window: time.Minute}
)

type Result struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// Store counts requests per identifier. The in-memory implementation is
// enough for a single instance; a shared deployment swaps in the redis
// implementation without touching callers.
type Store interface {
	Allow(ctx context.Context, key string, quota Quota) (Result, error)
}

// ClientIP derives the caller identifier from forwarded headers, falling
// back to loopback so local development is never keyed on an empty string.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0]); ip != "" {
			return ip
		}
	}
	if realIP := r.Header.Get("X-Real-Ip"); realIP != "" {
		return realIP
	}
	return "127.0.0.1"
}
