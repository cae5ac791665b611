package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/rivalbet/settlement-service/internal/models"
)

//go:generate mockgen -source=kafka_consumer.go -destination=../mocks/mock_messaging.go -package=mocks

// GameSettler applies game result messages to stored games and bets.
type GameSettler interface {
	ApplyGameResult(ctx context.Context, msg *models.GameResultMessage) error
}

// FightIngester records fight results and re-evaluates event triggers.
type FightIngester interface {
	IngestFightResult(ctx context.Context, result *models.FightResult) error
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "game-results"
	GroupID string   // e.g., "settlement-service"
}

func newReader(config KafkaConsumerConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 1000, // Commit every 1 second
	})
}

// GameResultConsumer consumes game result messages and settles bets when
// games go final.
type GameResultConsumer struct {
	reader  *kafka.Reader
	settler GameSettler
	logger  zerolog.Logger
}

// NewGameResultConsumer creates a new game result consumer
func NewGameResultConsumer(config KafkaConsumerConfig, settler GameSettler, logger zerolog.Logger) *GameResultConsumer {
	return &GameResultConsumer{
		reader:  newReader(config),
		settler: settler,
		logger:  logger.With().Str("component", "game_result_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *GameResultConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping game result consumer")
			return c.reader.Close()

		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if err == context.Canceled {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage processes a single Kafka message
func (c *GameResultConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var gameMsg models.GameResultMessage
	if err := json.Unmarshal(msg.Value, &gameMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	if gameMsg.GameID == "" {
		return fmt.Errorf("message missing game_id")
	}

	c.logger.Debug().
		Str("game_id", gameMsg.GameID).
		Str("status", string(gameMsg.Status)).
		Msg("processing game result")

	if err := c.settler.ApplyGameResult(ctx, &gameMsg); err != nil {
		return fmt.Errorf("failed to apply game result: %w", err)
	}
	return nil
}

// Close closes the Kafka reader
func (c *GameResultConsumer) Close() error {
	return c.reader.Close()
}

// FightResultConsumer consumes fight result messages for combat events.
type FightResultConsumer struct {
	reader   *kafka.Reader
	ingester FightIngester
	logger   zerolog.Logger
}

// NewFightResultConsumer creates a new fight result consumer
func NewFightResultConsumer(config KafkaConsumerConfig, ingester FightIngester, logger zerolog.Logger) *FightResultConsumer {
	return &FightResultConsumer{
		reader:   newReader(config),
		ingester: ingester,
		logger:   logger.With().Str("component", "fight_result_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *FightResultConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping fight result consumer")
			return c.reader.Close()

		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if err == context.Canceled {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage processes a single Kafka message
func (c *FightResultConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var fightMsg models.FightResultMessage
	if err := json.Unmarshal(msg.Value, &fightMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	if fightMsg.Result.FightID == "" || fightMsg.Result.EventID == "" {
		return fmt.Errorf("message missing fight_id or event_id")
	}

	c.logger.Debug().
		Str("fight_id", fightMsg.Result.FightID).
		Str("event_id", fightMsg.Result.EventID).
		Msg("processing fight result")

	if err := c.ingester.IngestFightResult(ctx, &fightMsg.Result); err != nil {
		return fmt.Errorf("failed to ingest fight result: %w", err)
	}
	return nil
}

// Close closes the Kafka reader
func (c *FightResultConsumer) Close() error {
	return c.reader.Close()
}
