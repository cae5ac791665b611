// Package store persists all settlement documents in Redis.
//
// Every record is a JSON document under a collection-style key prefix.
// Secondary access paths (pending bets per game, pools per event, settled
// bets by time) are maintained as sets and sorted sets alongside the
// documents.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rivalbet/settlement-service/internal/apperr"
	"github.com/rivalbet/settlement-service/internal/models"
)

// Store is a Redis-backed document store for the settlement domain.
type Store struct {
	client *redis.Client
	logger zerolog.Logger
}

// Config holds Redis connection configuration.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// New creates a store connected to Redis.
func New(config Config, logger zerolog.Logger) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &Store{
		client: client,
		logger: logger.With().Str("component", "store").Logger(),
	}
}

// Ping checks the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func betKey(id string) string          { return "bet:" + id }
func gameKey(id string) string         { return "game:" + id }
func poolKey(id string) string         { return "pool:" + id }
func eventKey(id string) string        { return "event:" + id }
func pendingBetsKey(gameID string) string { return "bets:pending:game:" + gameID }
func eventPoolsKey(eventID string) string { return "pools:event:" + eventID }

const settledBetsKey = "bets:settled"

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Store) getJSON(ctx context.Context, key string, v any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return apperr.Newf(apperr.NotFound, "%s not found", key)
	} else if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

// SaveGame upserts a game document.
func (s *Store) SaveGame(ctx context.Context, game *models.Game) error {
	return s.setJSON(ctx, gameKey(game.ID), game)
}

// GetGame fetches a game by ID.
func (s *Store) GetGame(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	if err := s.getJSON(ctx, gameKey(id), &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// SaveBet upserts a bet document and keeps the per-game pending index and the
// settled-time index in sync with the bet's status.
func (s *Store) SaveBet(ctx context.Context, bet *models.Bet) error {
	data, err := json.Marshal(bet)
	if err != nil {
		return fmt.Errorf("failed to marshal bet: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, betKey(bet.ID.String()), data, 0)

	if bet.Status == models.BetStatusPending {
		pipe.SAdd(ctx, pendingBetsKey(bet.GameID), bet.ID.String())
	} else {
		pipe.SRem(ctx, pendingBetsKey(bet.GameID), bet.ID.String())
	}

	if bet.Status.Settled() && bet.SettledAt != nil {
		pipe.ZAdd(ctx, settledBetsKey, redis.Z{
			Score:  float64(bet.SettledAt.Unix()),
			Member: bet.ID.String(),
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save bet %s: %w", bet.ID, err)
	}
	return nil
}

// GetBet fetches a bet by ID.
func (s *Store) GetBet(ctx context.Context, id string) (*models.Bet, error) {
	var bet models.Bet
	if err := s.getJSON(ctx, betKey(id), &bet); err != nil {
		return nil, err
	}
	return &bet, nil
}

// PendingBetsByGame returns every pending bet placed on a game.
func (s *Store) PendingBetsByGame(ctx context.Context, gameID string) ([]*models.Bet, error) {
	ids, err := s.client.SMembers(ctx, pendingBetsKey(gameID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending bets for game %s: %w", gameID, err)
	}
	return s.betsByIDs(ctx, ids)
}

// SettledBetsBetween returns every settled bet with a settled time inside
// [start, end], used by the leaderboard aggregation.
func (s *Store) SettledBetsBetween(ctx context.Context, start, end time.Time) ([]*models.Bet, error) {
	ids, err := s.client.ZRangeByScore(ctx, settledBetsKey, &redis.ZRangeBy{
		Min: fmt.Sprintf("%d", start.Unix()),
		Max: fmt.Sprintf("%d", end.Unix()),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to range settled bets: %w", err)
	}
	return s.betsByIDs(ctx, ids)
}

func (s *Store) betsByIDs(ctx context.Context, ids []string) ([]*models.Bet, error) {
	bets := make([]*models.Bet, 0, len(ids))
	for _, id := range ids {
		var bet models.Bet
		if err := s.getJSON(ctx, betKey(id), &bet); err != nil {
			s.logger.Warn().Err(err).Str("bet_id", id).Msg("skipping unreadable bet")
			continue
		}
		bets = append(bets, &bet)
	}
	return bets, nil
}

// SavePool upserts a pool document and indexes it under its event.
func (s *Store) SavePool(ctx context.Context, pool *models.Pool) error {
	data, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("failed to marshal pool: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, poolKey(pool.ID), data, 0)
	pipe.SAdd(ctx, eventPoolsKey(pool.EventID), pool.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save pool %s: %w", pool.ID, err)
	}
	return nil
}

// GetPool fetches a pool by ID.
func (s *Store) GetPool(ctx context.Context, id string) (*models.Pool, error) {
	var pool models.Pool
	if err := s.getJSON(ctx, poolKey(id), &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

// PoolsByEvent returns every pool attached to a combat event.
func (s *Store) PoolsByEvent(ctx context.Context, eventID string) ([]*models.Pool, error) {
	ids, err := s.client.SMembers(ctx, eventPoolsKey(eventID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list pools for event %s: %w", eventID, err)
	}

	pools := make([]*models.Pool, 0, len(ids))
	for _, id := range ids {
		var pool models.Pool
		if err := s.getJSON(ctx, poolKey(id), &pool); err != nil {
			s.logger.Warn().Err(err).Str("pool_id", id).Msg("skipping unreadable pool")
			continue
		}
		pools = append(pools, &pool)
	}
	return pools, nil
}

// SaveRunSummary persists a batch-job summary. An unset ID is assigned here
// so every run gets its own record.
func (s *Store) SaveRunSummary(ctx context.Context, summary *models.RunSummary) error {
	if summary.ID == uuid.Nil {
		summary.ID = uuid.New()
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, "runsummary:"+summary.ID.String(), data, 0)
	pipe.LPush(ctx, "runsummaries:"+summary.JobType, summary.ID.String())
	pipe.LTrim(ctx, "runsummaries:"+summary.JobType, 0, 199)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save run summary: %w", err)
	}
	return nil
}
