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

	"github.com/emicklei/go-restful/v3"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/merlin-analytics/chatbot-backend/internal/api"
	"github.com/merlin-analytics/chatbot-backend/internal/api/middleware"
	"github.com/merlin-analytics/chatbot-backend/internal/setup"
	"github.com/merlin-analytics/chatbot-backend/internal/setup/logger"
)

func main() {
	// Setup logging
	log := logger.NewConsole(os.Getenv("LOG_LEVEL"))

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load Config
	cfg := setup.LoadConfig()

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// API
	handler := api.NewHandler(deps.Pipeline, &log)
	container := restful.NewContainer()
	container.Filter(middleware.Logger(&log))
	container.Filter(middleware.RecoverPanic(&log))
	api.RegisterRoutes(container, handler)

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	// Server
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("address", addr).Int("chunks", deps.Store.Size()).Msg("Starting chatbot backend")

	server := http.Server{
		Addr:    addr,
		Handler: corsHandler.Handler(container),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Chatbot backend stopped")
}
