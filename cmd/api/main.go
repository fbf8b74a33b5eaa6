// Package main wires the trip planner together and serves it.
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

	_ "TravelPlanner_WebProject/docs"
	"TravelPlanner_WebProject/internal/auth"
	"TravelPlanner_WebProject/internal/config"
	"TravelPlanner_WebProject/internal/handler"
	"TravelPlanner_WebProject/internal/llm"
	"TravelPlanner_WebProject/internal/logging"
	"TravelPlanner_WebProject/internal/metrics"
	"TravelPlanner_WebProject/internal/planner"
	"TravelPlanner_WebProject/internal/session"
	"TravelPlanner_WebProject/internal/storage"
	"TravelPlanner_WebProject/internal/weather"
	"TravelPlanner_WebProject/web"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title        Trip Planner
// @version      1.0
// @description  Weather-aware travel itinerary planner.
// @BasePath     /
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration error", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	db, err := storage.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("Database ready", "dialect", db.Dialect())

	chat, err := llm.NewClient(cfg.OpenAIKey, llm.WithBaseURL(cfg.OpenAIBaseURL), llm.WithModel(cfg.OpenAIModel))
	if err != nil {
		logger.Error("Failed to create itinerary client", "error", err)
		os.Exit(1)
	}
	wx, err := weather.NewClient(cfg.WeatherKey, weather.WithBaseURL(cfg.WeatherBaseURL))
	if err != nil {
		logger.Error("Failed to create weather client", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	orchestrator := planner.New(wx, llm.NewGenerator(chat, logger), logger, planner.WithRecorder(m))
	sessions := session.NewStore(cfg.SecretKey,
		session.WithMaxAge(cfg.SessionMaxAge),
		session.WithSecure(cfg.CookieSecure),
	)

	templates, err := web.Templates()
	if err != nil {
		logger.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}

	h := handler.New(handler.Deps{
		Credentials:    auth.NewCredentialStore(db),
		Planner:        orchestrator,
		DB:             db,
		Sessions:       sessions,
		Metrics:        m,
		Logger:         logger,
		AllowedOrigins: cfg.CORSOrigins,
	})

	// No WriteTimeout: itinerary generation and the plan socket can run long.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.NewRouter(h, templates, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", "addr", srv.Addr, "model", chat.Model())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
