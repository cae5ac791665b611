package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rivalbet/settlement-service/internal/apperr"
	"github.com/rivalbet/settlement-service/internal/models"
	"github.com/rivalbet/settlement-service/pkg/leaderboard"
)

// LeaderboardService maintains the cached ranking snapshots. Snapshots are
// read models rebuilt from settled bets; they are never written back into
// bet or wallet state.
type LeaderboardService struct {
	store         Store
	dailyMaxAge   time.Duration
	defaultMaxAge time.Duration
	logger        zerolog.Logger

	mu         sync.Mutex
	refreshing map[models.LeaderboardType]bool
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(store Store, dailyMaxAge, defaultMaxAge time.Duration, logger zerolog.Logger) *LeaderboardService {
	if dailyMaxAge <= 0 {
		dailyMaxAge = time.Hour
	}
	if defaultMaxAge <= 0 {
		defaultMaxAge = 6 * time.Hour
	}
	return &LeaderboardService{
		store:         store,
		dailyMaxAge:   dailyMaxAge,
		defaultMaxAge: defaultMaxAge,
		logger:        logger.With().Str("component", "leaderboard_service").Logger(),
		refreshing:    make(map[models.LeaderboardType]bool),
	}
}

// Get returns the snapshot for a window, rebuilding it synchronously if none
// exists yet. A stale snapshot is returned as-is while a rebuild is kicked
// off in the background.
func (s *LeaderboardService) Get(ctx context.Context, lbType models.LeaderboardType) (*models.LeaderboardSnapshot, error) {
	snapshot, err := s.store.GetSnapshot(ctx, lbType)
	if err != nil {
		if !apperr.IsKind(err, apperr.NotFound) {
			return nil, err
		}
		return s.Refresh(ctx, lbType, time.Now().UTC())
	}

	if time.Since(snapshot.LastUpdated) > s.maxAge(lbType) {
		s.refreshAsync(lbType)
	}
	return snapshot, nil
}

// Refresh rebuilds one window's snapshot from settled bets and persists it.
func (s *LeaderboardService) Refresh(ctx context.Context, lbType models.LeaderboardType, now time.Time) (*models.LeaderboardSnapshot, error) {
	windowStart := leaderboard.WindowStart(lbType, now)
	bets, err := s.store.SettledBetsBetween(ctx, windowStart, now)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]models.Bet)
	for _, bet := range bets {
		byUser[bet.UserID] = append(byUser[bet.UserID], *bet)
	}

	stats := make([]models.UserStats, 0, len(byUser))
	for userID, userBets := range byUser {
		stats = append(stats, leaderboard.AggregateUser(userID, userBets))
	}

	snapshot := leaderboard.BuildSnapshot(lbType, stats, windowStart, now)
	if err := s.store.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("type", string(lbType)).
		Int("players", snapshot.TotalPlayers).
		Int("settled_bets", len(bets)).
		Msg("Leaderboard refreshed")

	return snapshot, nil
}

// RefreshAll rebuilds every window, used by the periodic refresher.
func (s *LeaderboardService) RefreshAll(ctx context.Context, now time.Time) {
	for _, lbType := range models.AllLeaderboardTypes {
		if _, err := s.Refresh(ctx, lbType, now); err != nil {
			s.logger.Error().Err(err).Str("type", string(lbType)).Msg("Leaderboard refresh failed")
		}
	}
}

// UserStats computes one user's stats for a window directly, bypassing the
// top-N snapshot so unranked users still see their numbers.
func (s *LeaderboardService) UserStats(ctx context.Context, userID string, lbType models.LeaderboardType) (*models.UserStats, error) {
	now := time.Now().UTC()
	bets, err := s.store.SettledBetsBetween(ctx, leaderboard.WindowStart(lbType, now), now)
	if err != nil {
		return nil, err
	}

	var userBets []models.Bet
	for _, bet := range bets {
		if bet.UserID == userID {
			userBets = append(userBets, *bet)
		}
	}
	stats := leaderboard.AggregateUser(userID, userBets)
	return &stats, nil
}

func (s *LeaderboardService) maxAge(lbType models.LeaderboardType) time.Duration {
	if lbType == models.LeaderboardDaily {
		return s.dailyMaxAge
	}
	return s.defaultMaxAge
}

// refreshAsync starts a background rebuild unless one is already running for
// the window.
func (s *LeaderboardService) refreshAsync(lbType models.LeaderboardType) {
	s.mu.Lock()
	if s.refreshing[lbType] {
		s.mu.Unlock()
		return
	}
	s.refreshing[lbType] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.refreshing[lbType] = false
			s.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := s.Refresh(ctx, lbType, time.Now().UTC()); err != nil {
			s.logger.Error().Err(err).Str("type", string(lbType)).Msg("Background leaderboard refresh failed")
		}
	}()
}
