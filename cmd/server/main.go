package main

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kmalov/cashlogger/internal/auth"
	"github.com/kmalov/cashlogger/internal/config"
	"github.com/kmalov/cashlogger/internal/ledger"
	"github.com/kmalov/cashlogger/internal/session"
	"github.com/kmalov/cashlogger/internal/storage/sqlite"
	"github.com/kmalov/cashlogger/internal/web"
	"github.com/kmalov/cashlogger/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// Wire services: everything is constructed here and injected; no globals.
	authenticator := auth.NewPasswordAuthenticator(store)
	sessions := session.NewManager(auth.NewJWTManager(cfg.SecretKey, cfg.SessionTTL), cfg.SessionTTL)
	ledgerSvc := ledger.NewService(store, slog.Default())

	handler := web.New(authenticator, store, sessions, ledgerSvc, slog.Default())

	// Wrap with h2c for HTTP/2 without TLS
	h2cHandler := h2c.NewHandler(handler.Routes(), &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
