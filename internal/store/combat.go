package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rivalbet/settlement-service/internal/models"
)

func fightResultKey(eventID, fightID string) string {
	return "fightresult:" + eventID + ":" + fightID
}
func eventResultsKey(eventID string) string     { return "fightresults:" + eventID }
func pickSheetKey(poolID, userID string) string { return "picksheet:" + poolID + ":" + userID }
func poolPicksKey(poolID string) string         { return "picks:" + poolID }
func poolScoresKey(poolID string) string        { return "scores:" + poolID }
func poolPayoutsKey(poolID string) string       { return "payouts:" + poolID }

const unsettledEventsKey = "events:unsettled"

// SaveEvent upserts a combat event document and maintains the unsettled-event
// index the periodic trigger recheck scans.
func (s *Store) SaveEvent(ctx context.Context, event *models.CombatEvent) error {
	pipe := s.client.Pipeline()
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	pipe.Set(ctx, eventKey(event.ID), data, 0)
	if event.SettlementStatus == models.EventSettled {
		pipe.SRem(ctx, unsettledEventsKey, event.ID)
	} else {
		pipe.SAdd(ctx, unsettledEventsKey, event.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save event %s: %w", event.ID, err)
	}
	return nil
}

// UnsettledEventIDs lists events that still await settlement.
func (s *Store) UnsettledEventIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, unsettledEventsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list unsettled events: %w", err)
	}
	return ids, nil
}

// GetEvent fetches a combat event by ID.
func (s *Store) GetEvent(ctx context.Context, id string) (*models.CombatEvent, error) {
	var event models.CombatEvent
	if err := s.getJSON(ctx, eventKey(id), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// SaveFightResult stores a fight result if none exists yet and reports
// whether it was new. Results are never overwritten, which keeps repeated
// ingestion of the same feed idempotent.
func (s *Store) SaveFightResult(ctx context.Context, result *models.FightResult) (bool, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return false, fmt.Errorf("failed to marshal fight result: %w", err)
	}

	created, err := s.client.SetNX(ctx, fightResultKey(result.EventID, result.FightID), data, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to save fight result %s: %w", result.FightID, err)
	}
	if created {
		if err := s.client.SAdd(ctx, eventResultsKey(result.EventID), result.FightID).Err(); err != nil {
			return false, fmt.Errorf("failed to index fight result %s: %w", result.FightID, err)
		}
	}
	return created, nil
}

// FightResultsByEvent returns all recorded results for an event keyed by
// fight ID.
func (s *Store) FightResultsByEvent(ctx context.Context, eventID string) (map[string]models.FightResult, error) {
	ids, err := s.client.SMembers(ctx, eventResultsKey(eventID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list fight results for event %s: %w", eventID, err)
	}

	results := make(map[string]models.FightResult, len(ids))
	for _, id := range ids {
		var result models.FightResult
		if err := s.getJSON(ctx, fightResultKey(eventID, id), &result); err != nil {
			s.logger.Warn().Err(err).Str("fight_id", id).Msg("skipping unreadable fight result")
			continue
		}
		results[result.FightID] = result
	}
	return results, nil
}

// SavePickSheet upserts a user's picks for a pool.
func (s *Store) SavePickSheet(ctx context.Context, sheet *models.PickSheet) error {
	data, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("failed to marshal pick sheet: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, pickSheetKey(sheet.PoolID, sheet.UserID), data, 0)
	pipe.SAdd(ctx, poolPicksKey(sheet.PoolID), sheet.UserID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save pick sheet for %s: %w", sheet.UserID, err)
	}
	return nil
}

// PickSheetsByPool returns every entrant's pick sheet for a pool.
func (s *Store) PickSheetsByPool(ctx context.Context, poolID string) ([]*models.PickSheet, error) {
	userIDs, err := s.client.SMembers(ctx, poolPicksKey(poolID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list pick sheets for pool %s: %w", poolID, err)
	}

	sheets := make([]*models.PickSheet, 0, len(userIDs))
	for _, userID := range userIDs {
		var sheet models.PickSheet
		if err := s.getJSON(ctx, pickSheetKey(poolID, userID), &sheet); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("skipping unreadable pick sheet")
			continue
		}
		sheets = append(sheets, &sheet)
	}
	return sheets, nil
}

// SavePoolScores persists the full ranked score list for a settled pool.
func (s *Store) SavePoolScores(ctx context.Context, poolID string, scores []models.UserScore) error {
	return s.setJSON(ctx, poolScoresKey(poolID), scores)
}

// PoolScores returns the ranked score list for a pool.
func (s *Store) PoolScores(ctx context.Context, poolID string) ([]models.UserScore, error) {
	var scores []models.UserScore
	if err := s.getJSON(ctx, poolScoresKey(poolID), &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// SavePayoutSummary persists a pool's distribution record.
func (s *Store) SavePayoutSummary(ctx context.Context, summary *models.PoolPayoutSummary) error {
	return s.setJSON(ctx, poolPayoutsKey(summary.PoolID), summary)
}

// PayoutSummary returns the distribution record for a settled pool.
func (s *Store) PayoutSummary(ctx context.Context, poolID string) (*models.PoolPayoutSummary, error) {
	var summary models.PoolPayoutSummary
	if err := s.getJSON(ctx, poolPayoutsKey(poolID), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
