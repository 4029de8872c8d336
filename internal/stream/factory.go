package stream

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/merlin-analytics/chatbot-backend/internal/pipeline"
	redisconn "github.com/merlin-analytics/chatbot-backend/internal/redis"
	"github.com/merlin-analytics/chatbot-backend/internal/stream/redis"
)

type StreamConfig struct {
	Provider    string // redis, kafka, sqs, etc
	RedisConfig *redis.RedisStreamConfig
}

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	pipe *pipeline.Pipeline,
	logger *zerolog.Logger,
) (StreamConsumer, error) {

	// If provider is empty, fallback to the default configuration.
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := redisconn.ConnectRedis(
			ctx,
			cfg.RedisConfig.RedisAddr,
			cfg.RedisConfig.RedisPassword,
			5,
			logger,
		)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(client, cfg.RedisConfig, pipe, logger), nil

	// Future providers:
	// case "kafka":
	//     return kafka.NewConsumer(...)

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
