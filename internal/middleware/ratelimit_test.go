package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cleanproservices/cleanpro-api/internal/middleware"
	"github.com/cleanproservices/cleanpro-api/internal/ratelimit"
)

func TestRateLimitMiddlewareDeniesSixthAuthAttempt(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/auth/login", middleware.RateLimit(ratelimit.NewMemoryStore(), ratelimit.Auth),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	var last *httptest.ResponseRecorder
	for i := 1; i <= 6; i++ {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
		last = httptest.NewRecorder()
		r.ServeHTTP(last, req)

		if i <= 5 && last.Code != http.StatusOK {
			t.Fatalf("attempt %d: got %d, want 200", i, last.Code)
		}
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("6th attempt: got %d, want 429", last.Code)
	}
	if last.Header().Get("Retry-After") == "" {
		t.Fatal("429 response should carry a Retry-After header")
	}

	var body struct {
		Error      string `json:"error"`
		RetryAfter int    `json:"retry_after"`
	}
	if err := json.Unmarshal(last.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "too_many_requests" {
		t.Fatalf("error = %q, want too_many_requests", body.Error)
	}
	if body.RetryAfter <= 0 {
		t.Fatalf("retry_after = %d, want positive", body.RetryAfter)
	}
}

func TestRateLimitMiddlewareKeysByClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/submit", middleware.RateLimit(ratelimit.NewMemoryStore(), ratelimit.Quota{MaxRequests: 1, Window: ratelimit.Form.Window}),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest("POST", "/submit", nil)
		req.Header.Set("X-Forwarded-For", ip)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("10.0.0.1"); code != http.StatusOK {
		t.Fatalf("first request: got %d", code)
	}
	if code := send("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("second request same ip: got %d, want 429", code)
	}
	if code := send("10.0.0.2"); code != http.StatusOK {
		t.Fatalf("other ip: got %d, want 200", code)
	}
}
