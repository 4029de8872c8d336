package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/merlin-analytics/chatbot-backend/internal/setup"
	"github.com/merlin-analytics/chatbot-backend/internal/setup/logger"
	"github.com/merlin-analytics/chatbot-backend/internal/stream"
	"github.com/merlin-analytics/chatbot-backend/internal/stream/redis"
)

func main() {
	// Setup logging
	log := logger.New(os.Getenv("LOG_LEVEL"))

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load Config
	cfg := setup.LoadConfig()

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// Stream consumer
	streamCfg := &stream.StreamConfig{
		Provider: os.Getenv("STREAM_PROVIDER"),
		RedisConfig: redis.NewRedisStreamConfig(
			getEnv("REDIS_ADDR", "localhost:6379"),
			os.Getenv("REDIS_PASSWORD"),
			getEnv("QUESTION_STREAM", "chat-questions"),
			getEnv("ANSWER_STREAM", "chat-answers"),
			getEnv("CONSUMER_GROUP", "chatbot-group"),
			getEnv("HOSTNAME", "chatbot-worker"),
		),
	}

	consumer, err := stream.NewStreamConsumer(ctx, streamCfg, deps.Pipeline, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	// Setup consumer
	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	// Start consumer
	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Consumer stopped with error")
		}
	}()

	// Wait for context to be done
	<-ctx.Done()
	log.Info().Msg("Shutting down...")

	if err := consumer.Stop(); err != nil {
		log.Error().Err(err).Msg("Failed to stop consumer")
	}

	log.Info().Msg("Chatbot worker stopped")
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}
