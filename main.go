package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meanstack/userapi/internal/config"
	"github.com/meanstack/userapi/internal/database"
	"github.com/meanstack/userapi/internal/server"
	"github.com/meanstack/userapi/internal/users/repository"
	"github.com/meanstack/userapi/internal/users/service"
	"github.com/meanstack/userapi/pkg/logger"
	"github.com/meanstack/userapi/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	// LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if errors.Is(err, config.ErrMissingURI) {
		logger.Fatalf("No connection string found. Set ATLAS_URI in the environment or in .env")
	}
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Bootstrap(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("database bootstrap failed: %v", err)
	}
	logger.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)

	var rdb *redis.Client
	if cfg.UsesRedis() {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			_ = rdb.Close()
			rdb = nil
		} else {
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	var hasher service.PasswordHasher
	if cfg.Users.HashPasswords {
		hasher = service.BcryptHasher{}
		logger.Infof("password hashing enabled (bcrypt)")
	}
	svc := service.New(repository.NewMongoRepo(store.Users), hasher)

	r := server.NewRouter(svc, server.Options{
		AllowOrigin: cfg.CORS.AllowOrigin,
		RateLimit:   cfg.RateLimit,
		Redis:       rdb,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Server running at http://%s...", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Infof("shutting down")
	case err := <-errCh:
		logger.Errorf("server failed: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Warnf("mongo disconnect: %v", err)
	}
}
