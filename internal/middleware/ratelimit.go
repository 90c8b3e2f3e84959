package middleware

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cleanproservices/cleanpro-api/internal/ratelimit"
)

// RateLimit guards a route group with a fixed-window quota keyed by client
// IP. Denials are always recoverable by waiting; the retry hint goes in both
// the body and the Retry-After header.
func RateLimit(store ratelimit.Store, quota ratelimit.Quota) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ratelimit.ClientIP(c.Request)

		result, err := store.Allow(c.Request.Context(), key, quota)
		if err != nil {
			// a broken limiter store must never take the API down
			log.Printf("rate limit store error: %v", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := int(math.Ceil(result.ResetIn.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.Header("X-RateLimit-Reset", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "too_many_requests",
				"message":     "Please try again later",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
