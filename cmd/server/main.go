// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/phonemarket/backend/internal/config"
	"github.com/phonemarket/backend/internal/database"
	"github.com/phonemarket/backend/internal/i18n"
	"github.com/phonemarket/backend/internal/router"
	"github.com/phonemarket/backend/internal/session"
)

const sessionSweepInterval = 5 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	setupLogging(cfg)

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db)

	// Run database migrations
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			logrus.WithError(err).Fatal("Failed to run migrations")
		}
	}
	if err := database.SeedDefaults(db, cfg.Markup); err != nil {
		logrus.WithError(err).Fatal("Failed to seed default settings")
	}

	// Initialize i18n
	if err := i18n.Initialize(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	sessions, closeSessions := openSessions(ctx, cfg.Redis)
	defer closeSessions()

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r, err := router.Initialize(router.Dependencies{
		DB:       db,
		Config:   cfg,
		Sessions: sessions,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize router")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":   cfg.Server.Port,
			"policy": cfg.Markup.Policy,
			"db":     cfg.Database.Driver,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")
	stop()

	// Create a deadline for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// openSessions uses Redis when REDIS_ADDR is set and falls back to process memory.
func openSessions(ctx context.Context, cfg config.RedisConfig) (session.Store, func()) {
	ttl := time.Duration(cfg.SessionTTL) * time.Minute

	if cfg.Addr != "" {
		client, err := session.Connect(ctx, cfg.Addr, cfg.Password, cfg.DB)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to Redis")
		}
		logrus.WithField("addr", cfg.Addr).Info("Using Redis session store")
		return session.NewRedisStore(client, ttl), func() { _ = client.Close() }
	}

	store := session.NewMemoryStore(ttl)
	go func() {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := store.Sweep(); n > 0 {
					logrus.WithField("expired", n).Debug("Swept sessions")
				}
			}
		}
	}()
	logrus.Info("Using in-memory session store")
	return store, func() {}
}
