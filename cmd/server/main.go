// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"

	"github.com/tahcohcat/daily-mystery/config"
	"github.com/tahcohcat/daily-mystery/internal/api"
	"github.com/tahcohcat/daily-mystery/internal/auth"
	"github.com/tahcohcat/daily-mystery/internal/database"
	"github.com/tahcohcat/daily-mystery/internal/logger"
	"github.com/tahcohcat/daily-mystery/internal/metrics"
	"github.com/tahcohcat/daily-mystery/internal/services"
	"github.com/tahcohcat/daily-mystery/internal/store"
	"github.com/tahcohcat/daily-mystery/internal/websocket"
)

const purgeInterval = time.Hour

// openStore builds the configured key-value backend.
func openStore(ctx context.Context, cfg *config.Config) (store.KeyValueStore, error) {
	switch cfg.Store.Driver {
	case "", "memory":
		kv := store.NewMemoryStore()
		go purgeLoop(ctx, kv)
		return kv, nil

	case "redis":
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

	case "sqlite":
		db, err := database.NewDB(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		kv := store.NewSQLiteStore(db)
		go purgeLoop(ctx, kv)
		return kv, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// expiringStore is a backend that has to drop expired keys itself.
type expiringStore interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func purgeLoop(ctx context.Context, kv expiringStore) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			n, err := kv.PurgeExpired(ctx)
			if err != nil {
				logger.New().WithError(err).Warn("failed to purge expired keys")
				continue
			}
			if n > 0 {
				logger.New().WithField("keys", n).Elapsed(start, "purged expired keys")
			}
		}
	}
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New().WithError(err).Error("failed to load config")
		os.Exit(1)
	}
	logger.Configure(logger.LogLevel(cfg.Log.Level), cfg.Log.Format, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := openStore(ctx, cfg)
	if err != nil {
		logger.New().WithError(err).WithField("driver", cfg.Store.Driver).Error("failed to open store")
		os.Exit(1)
	}
	defer kv.Close()

	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		logger.New().WithError(err).Error("failed to register metrics")
		os.Exit(1)
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	realm := services.NewRealmService(kv, services.RealmOptions{
		Publisher:          hub,
		AtomicGuessCounter: cfg.Game.AtomicGuessCounter,
	})
	authn := auth.New(cfg.Auth.SessionSecret, cfg.Auth.CookieName)

	r := mux.NewRouter()
	r.Use(api.Instrument)
	r.HandleFunc("/ping", api.Ping).Methods("GET")
	r.Handle("/metrics", metrics.Handler(reg)).Methods("GET")

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	api.RegisterRoutes(apiRouter, realm, hub, authn)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", auth.HeaderUserID, auth.HeaderUsername},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      c.Handler(r),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.New().WithField("port", cfg.Server.Port).WithField("store", cfg.Store.Driver).
			WithField("atomic_guess_counter", cfg.Game.AtomicGuessCounter).
			Info("🔍 Daily Mystery server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.New().WithError(err).Error("server failed")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.New().WithError(err).Warn("graceful shutdown failed")
	}
	logger.New().Info("server stopped")
}
