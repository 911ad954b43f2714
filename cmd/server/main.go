package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/colin-rod/tripthreads/internal/api"
	"github.com/colin-rod/tripthreads/internal/auth"
	"github.com/colin-rod/tripthreads/internal/config"
	"github.com/colin-rod/tripthreads/internal/service"
	"github.com/colin-rod/tripthreads/internal/storage"
	"github.com/colin-rod/tripthreads/internal/storage/postgres"
	"github.com/colin-rod/tripthreads/internal/storage/sqlite"
	"github.com/colin-rod/tripthreads/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var store storage.Store
	switch cfg.DBDriver {
	case "postgres":
		store, err = postgres.New(cfg.DatabaseURL)
	default:
		store, err = sqlite.New(cfg.DBPath)
	}
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, tokenDuration)
	svc := service.NewSettlementService(store, nil)
	router := api.NewRouter(svc, jwtManager)

	// h2c allows HTTP/2 without TLS for callers behind the app's ingress.
	handler := h2c.NewHandler(router, &http2.Server{})

	slog.Info("Settlement server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
