package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/merlin-analytics/chatbot-backend/internal/models"
	"github.com/merlin-analytics/chatbot-backend/internal/pipeline"
)

// Consumer reads QuestionEvents from one stream, answers them through
// the pipeline and publishes AnswerEvents to another. Every message is
// acknowledged exactly once, including undecodable ones, so a poison
// message cannot block the group.
type Consumer struct {
	client       *redis.Client
	inStream     string
	outStream    string
	groupID      string
	consumerName string
	pipeline     *pipeline.Pipeline
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *RedisStreamConfig, pipe *pipeline.Pipeline, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		inStream:     cfg.InStream,
		outStream:    cfg.OutStream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		pipeline:     pipe,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.inStream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("in_stream", c.inStream).
		Str("out_stream", c.outStream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.inStream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var event models.QuestionEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message — ACK to skip it
		return
	}

	answer, err := c.pipeline.AnswerQuestion(ctx, event.Question)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyQuestion) {
			c.logger.Warn().Str("id", msg.ID).Str("event_id", event.EventID).Msg("Empty question, skipping")
			c.ack(ctx, msg.ID)
			return
		}
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to answer question")
		c.ack(ctx, msg.ID)
		return
	}

	c.publish(ctx, msg.ID, models.AnswerEvent{
		EventID:   event.EventID,
		Question:  answer.Question,
		Answer:    answer.Answer,
		Succeeded: answer.Succeeded,
	})

	c.logger.Info().
		Str("id", msg.ID).
		Str("event_id", event.EventID).
		Bool("success", answer.Succeeded).
		Msg("Question answered")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) publish(ctx context.Context, msgID string, event models.AnswerEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to encode answer event")
		return
	}

	err = c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.outStream,
		Values: map[string]any{"payload": string(payload)},
	}).Err()
	if err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to publish answer event")
	}
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.inStream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
