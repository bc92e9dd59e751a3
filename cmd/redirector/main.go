// cmd/redirector/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"redirector/internal/config"
	"redirector/internal/handler"
	"redirector/internal/metrics"
	"redirector/internal/service"
	"redirector/internal/store"
	customLogger "redirector/pkg/logger"
)

func main() {
	// Container health check: query the running server's /health
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		os.Exit(healthcheck(os.Getenv("PORT"), "3000"))
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appLogger := customLogger.NewLogger("redirector")
	defer appLogger.Sync()
	appLogger.Infow("Starting redirector", "log_level", appLogger.Level())

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatalw("Failed to load configuration", "error", err)
	}

	redis.SetLogger(appLogger.NewRedisWriter())

	// No degraded mode: without the store there is nothing to serve.
	linkStore, err := store.NewRedisStore(context.Background(), store.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		KeyPrefix:    cfg.RedisKeyPrefix,
		DialTimeout:  cfg.RedisDialTimeout,
		ReadTimeout:  cfg.RedisReadTimeout,
		WriteTimeout: cfg.RedisWriteTimeout,
		PoolSize:     cfg.RedisPoolSize,
	})
	if err != nil {
		appLogger.Fatalw("Failed to connect to Redis", "error", err)
	}
	appLogger.Infow("Connected to Redis", "addr", cfg.RedisAddr())

	registry := metrics.NewRegistry()
	redirectMetrics := metrics.NewRedirectMetrics(registry)

	linkService := service.NewLinkService(linkStore, nil, service.Options{
		LookupTimeout: cfg.LookupTimeout,
	}, appLogger)

	router := handler.NewRedirectRouter(
		handler.NewRedirectHandler(linkService, redirectMetrics, appLogger),
		handler.NewHealthHandler(linkStore, appLogger),
		metrics.Handler(registry),
		cfg,
		appLogger,
	)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		appLogger.Infow("Redirector listening", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Infow("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("Server forced to shutdown", "error", err)
	}

	if err := linkStore.Close(); err != nil {
		appLogger.Errorw("Error closing Redis connection", "error", err)
	}

	appLogger.Infow("Server exited successfully")
}

// healthcheck returns the process exit code for the healthcheck sub-command
func healthcheck(port, fallback string) int {
	if port == "" {
		port = fallback
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://localhost:%s/health", port))
	if err != nil {
		return 1
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 1
	}
	return 0
}
