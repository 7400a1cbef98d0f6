package middleware

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit bounds the request rate on the inference endpoints, which are far
// more expensive than the catalog CRUD. Rejected requests get a Retry-After
// hint instead of queueing behind the model.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		reservation := limiter.Reserve()
		if !reservation.OK() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too Many Requests."})
			c.Abort()
			return
		}

		delay := reservation.Delay()
		if delay > 0 {
			reservation.Cancel()
			retryAfter := int(math.Ceil(delay.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Too Many Requests. Retry after %d seconds.", retryAfter),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
