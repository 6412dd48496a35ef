package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meanstack/userapi/handlers"
	"github.com/meanstack/userapi/internal/config"
	"github.com/meanstack/userapi/internal/users/handler"
	"github.com/meanstack/userapi/pkg/logger"
	"github.com/meanstack/userapi/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// UserService is the users service plus the readiness probe used by /ready.
type UserService interface {
	handler.UserService
	Ready(ctx context.Context) error
}

// Options tunes the router's middleware stack.
type Options struct {
	AllowOrigin string
	RateLimit   config.RateLimitConfig
	// Redis backs the rate limiter when RateLimit.UseRedis is set.
	Redis *redis.Client
}

var startTime = time.Now()

// NewRouter builds the gin engine: global middleware, operational endpoints and the
// /users routes backed by svc.
func NewRouter(svc UserService, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.Metrics(), middleware.CORS(opts.AllowOrigin))

	if opts.RateLimit.Enabled {
		if opts.RateLimit.UseRedis && opts.Redis != nil {
			win := time.Duration(opts.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(opts.Redis, opts.RateLimit.RPS, opts.RateLimit.Burst, win))
			logger.Infof("rate limiter enabled (redis, rps=%v burst=%d)", opts.RateLimit.RPS, opts.RateLimit.Burst)
		} else {
			r.Use(middleware.RateLimitMiddleware(opts.RateLimit.RPS, opts.RateLimit.Burst))
			logger.Infof("rate limiter enabled (memory, rps=%v burst=%d)", opts.RateLimit.RPS, opts.RateLimit.Burst)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		uptime := time.Since(startTime).Round(time.Second).String()
		if err := svc.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": gin.H{"users": false}, "error": err.Error(), "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": gin.H{"users": true}, "uptime": uptime})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)

	handler.RegisterUserRoutes(r.Group("/users"), svc)
	return r
}
