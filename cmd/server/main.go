package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"github.com/dealpick/backend/internal/api"
	"github.com/dealpick/backend/internal/auth"
	"github.com/dealpick/backend/internal/config"
	"github.com/dealpick/backend/internal/notifier"
	"github.com/dealpick/backend/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	slog.Info("Starting DealPick backend...")
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		slog.Error("Critical error initializing Firebase app", "error", err)
		os.Exit(1)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		slog.Error("Critical error initializing Firestore client", "error", err)
		os.Exit(1)
	}
	store := storage.NewWithFirestore(fsClient)
	defer store.Close()

	// Auth init failure degrades to public-read mode rather than aborting:
	// the gateway reports unavailable and admin routes answer 503.
	authClient, err := app.Auth(ctx)
	if err != nil {
		slog.Error("Failed to initialize auth client, admin routes unavailable", "error", err)
		authClient = nil
	}
	gateway := auth.New(authClient, cfg.AdminEmail)
	sessions := auth.NewRESTClient(cfg.WebAPIKey)
	announcer := notifier.New(cfg.DealWebhookURL)

	handler := api.New(cfg, store, gateway, sessions, announcer)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		sig := <-sigCh
		slog.Info("Received signal, shutting down gracefully...", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}()

	slog.Info("Listening on port", "port", cfg.Port, "env", cfg.AppEnv)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Failed to listen and serve", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped.")
}
