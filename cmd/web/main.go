package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sweetshop-web/internal/api"
	"sweetshop-web/internal/config"
	"sweetshop-web/internal/session"
	"sweetshop-web/internal/views"
	"sweetshop-web/internal/web"
	"sweetshop-web/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🍬 Starting Sweet Shop Web",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	appLogger.Info("🔗 Sweets API Configuration",
		zap.String("base_url", cfg.SweetsAPIURL),
		zap.Int("timeout_seconds", cfg.APITimeoutSeconds),
	)

	if cfg.UseRedis {
		appLogger.Info("💾 Session Store Configuration",
			zap.String("backend", "redis"),
			zap.String("redis_host", cfg.RedisHost),
			zap.String("redis_port", cfg.RedisPort),
			zap.Int("session_ttl", cfg.SessionTTLSeconds),
		)
	} else {
		appLogger.Info("💾 Session Store Configuration",
			zap.String("backend", "memory"),
			zap.Int("session_ttl", cfg.SessionTTLSeconds),
			zap.String("note", "Sessions are lost on restart (USE_REDIS=false)"),
		)
	}

	// Initialize sweets API client
	appLogger.Info("🔧 Initializing sweets API client...")
	client := api.NewHTTPClient(cfg, appLogger)
	appLogger.Info("✅ Sweets API client initialized successfully")

	// Initialize session store and manager
	appLogger.Info("🔧 Initializing session manager...")
	sessionTTL := time.Duration(cfg.SessionTTLSeconds) * time.Second
	store := session.NewStore(cfg, appLogger)
	sessions := session.NewManager(store, client, appLogger, sessionTTL)
	appLogger.Info("✅ Session manager initialized successfully")

	// Initialize per-session view registry
	appLogger.Info("🔧 Initializing view registry...")
	registry := views.NewRegistry(client, appLogger, sessionTTL)
	appLogger.Info("✅ View registry initialized successfully")

	// Build router
	router := web.NewRouter(cfg, appLogger, sessions, registry)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("🌐 Starting HTTP server",
			zap.String("address", ":"+cfg.Port),
			zap.String("url", "http://localhost:"+cfg.Port+"/"),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}
