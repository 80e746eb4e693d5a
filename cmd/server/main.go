// DraftLab - AI Floor Plan Studio Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/ashureev/draftlab/internal/api"
	"github.com/ashureev/draftlab/internal/config"
	"github.com/ashureev/draftlab/internal/gemini"
	"github.com/ashureev/draftlab/internal/middleware"
	"github.com/ashureev/draftlab/internal/store"
	"github.com/ashureev/draftlab/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "model", cfg.GeminiModel, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	generator, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
	if err != nil {
		slog.Error("Failed to initialize Gemini client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := generator.Close(); closeErr != nil {
			slog.Error("Failed to close Gemini client", "error", closeErr)
		}
	}()

	// Sessions live in memory only: history grows for the lifetime of the
	// process (unless SESSION_HISTORY_LIMIT is set) and is lost on restart.
	sessions := store.NewSessionStore(cfg.SessionHistoryLimit)
	if cfg.SessionHistoryLimit > 0 {
		slog.Info("Session history limit enabled", "limit", cfg.SessionHistoryLimit)
	}

	// Initialize handlers.
	baseHandler := api.NewHandler(sessions, generator)
	blueprintHandler := api.NewBlueprintHandler(baseHandler)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	blueprintHandler.RegisterRoutes(r)

	// Serve the embedded viewer page.
	r.Handle("/*", web.ViewerHandler())

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		// Generation responses wait on the model round trip, so the write
		// timeout must cover the full Gemini timeout.
		WriteTimeout: cfg.GeminiTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
