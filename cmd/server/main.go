package main

import (
	"log/slog"
	"os"

	"github.com/homefin/hearth/internal/auth"
	"github.com/homefin/hearth/internal/config"
	"github.com/homefin/hearth/internal/service"
	"github.com/homefin/hearth/internal/storage/sqlite"
	"github.com/homefin/hearth/internal/webapi"
	"github.com/homefin/hearth/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.SQLiteDBPath)

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)

	app := webapi.New(jwtManager, webapi.Services{
		Auth:     service.NewAuthService(authenticator, jwtManager, store, slog.Default()),
		Home:     service.NewHomeService(store),
		Ledger:   service.NewLedgerService(store),
		Transfer: service.NewTransferService(store),
	})

	slog.Info("Starting server", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
