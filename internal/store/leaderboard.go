package store

import (
	"context"

	"github.com/rivalbet/settlement-service/internal/models"
)

func leaderboardKey(lbType models.LeaderboardType) string {
	return "leaderboard:" + string(lbType)
}

// SaveSnapshot persists a leaderboard snapshot, replacing the previous one.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot *models.LeaderboardSnapshot) error {
	return s.setJSON(ctx, leaderboardKey(snapshot.Type), snapshot)
}

// GetSnapshot returns the cached snapshot for a leaderboard type.
func (s *Store) GetSnapshot(ctx context.Context, lbType models.LeaderboardType) (*models.LeaderboardSnapshot, error) {
	var snapshot models.LeaderboardSnapshot
	if err := s.getJSON(ctx, leaderboardKey(lbType), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
