package main

import (
	"context"   // context package is needed for Redis operations and shutdown
	"errors"    // Error classification
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal handling
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"news_portal/internal/api"        // Custom package for API handlers
	"news_portal/internal/config"     // Custom package for configuration
	"news_portal/internal/db"         // Database connector
	"news_portal/internal/middleware" // Custom package for middleware
	"news_portal/internal/utils"      // Token codec and logger

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	utils.SetupLogger(cfg.LogLevel, cfg.IsProd)

	// Database handle is opened on first use and shared afterwards
	connector := db.NewConnector(cfg)
	defer func() {
		if err := connector.Close(); err != nil {
			logrus.Warnf("failed to close database: %v", err)
		}
	}()
	go func() {
		// Warm up so the first request does not pay for the connection
		if _, err := connector.Get(context.Background()); err != nil {
			logrus.Warnf("database not reachable yet: %v", err)
		}
	}()

	// Setup Redis client for the public news cache
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logrus.Warnf("Redis unavailable, public cache disabled: %v", err)
			_ = redisClient.Close()
			redisClient = nil
		}
		cancel()
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.NewRouter(api.RouterConfig{
		DB:             connector,
		Tokens:         utils.NewTokenCodec(cfg.JWTSecret, cfg.JWTTTL),
		Redis:          redisClient,
		CacheTTL:       cfg.CacheTTL,
		CORSOrigins:    cfg.CORSOrigins,
		LoginLimiter:   middleware.NewLoginLimiter(cfg.LoginRate, cfg.LoginBurst),
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	logrus.Info("Server stopped")
}
