package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/merlin-analytics/chatbot-backend/internal/models"
	red "github.com/merlin-analytics/chatbot-backend/internal/redis"
	"github.com/merlin-analytics/chatbot-backend/internal/setup/logger"
)

// Small helper to push a question onto the stream the worker consumes.
func main() {
	eventID := flag.String("id", "", "Event identifier")
	question := flag.String("q", "", "Question to publish")
	stream := flag.String("stream", "chat-questions", "Stream name")
	flag.Parse()

	if *question == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -q '<question>' [-id <event-id>] [-stream <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log := logger.NewConsole(os.Getenv("LOG_LEVEL"))

	if err := run(*eventID, *question, *stream); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(eventID, question, stream string) error {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	log := logger.NewConsole(os.Getenv("LOG_LEVEL"))

	ctx := context.Background()
	client, err := red.ConnectRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3, &log)
	if err != nil {
		return err
	}
	defer client.Close()

	payload, err := json.Marshal(models.QuestionEvent{EventID: eventID, Question: question})
	if err != nil {
		return err
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": string(payload)},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Str("event_id", eventID).Msg("Published successfully!")
	return nil
}
