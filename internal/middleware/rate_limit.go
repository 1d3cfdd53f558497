package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit applies a fixed-window per-IP limit backed by Redis. It guards
// the auth endpoints against credential stuffing. Redis errors fail open so
// a cache outage does not take login down with it.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "rate_limit:" + c.ClientIP()

		current, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Println("[RATELIMIT] [ERROR] redis incr failed:", err)
			c.Next()
			return
		}

		if current == 1 {
			rdb.Expire(ctx, key, window)
		}

		if current > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "too many requests"})
			return
		}

		c.Next()
	}
}
