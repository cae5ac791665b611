package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaderboardType selects the aggregation window.
type LeaderboardType string

const (
	LeaderboardDaily   LeaderboardType = "daily"
	LeaderboardWeekly  LeaderboardType = "weekly"
	LeaderboardMonthly LeaderboardType = "monthly"
	LeaderboardAllTime LeaderboardType = "all_time"
)

// AllLeaderboardTypes lists every window in refresh order.
var AllLeaderboardTypes = []LeaderboardType{
	LeaderboardDaily,
	LeaderboardWeekly,
	LeaderboardMonthly,
	LeaderboardAllTime,
}

// RankingMetric selects which stat a leaderboard is ordered by.
type RankingMetric string

const (
	MetricProfit    RankingMetric = "profit"
	MetricWinRate   RankingMetric = "winRate"
	MetricTotalWins RankingMetric = "totalWins"
	MetricWinStreak RankingMetric = "winStreak"
)

// AllRankingMetrics lists every supported metric.
var AllRankingMetrics = []RankingMetric{
	MetricProfit,
	MetricWinRate,
	MetricTotalWins,
	MetricWinStreak,
}

// UserStats are cumulative betting stats for one user inside a window.
type UserStats struct {
	UserID        string          `json:"user_id"`
	TotalBets     int             `json:"total_bets"`
	Wins          int             `json:"wins"`
	Losses        int             `json:"losses"`
	WinRate       float64         `json:"win_rate"` // percent, 1-decimal
	TotalWagered  decimal.Decimal `json:"total_wagered"`
	TotalWinnings decimal.Decimal `json:"total_winnings"`
	Profit        decimal.Decimal `json:"profit"`
	ROI           float64         `json:"roi"` // percent, 1-decimal
	CurrentStreak int             `json:"current_streak"`
	BestStreak    int             `json:"best_streak"`
}

// LeaderboardEntry is one ranked row of a snapshot.
type LeaderboardEntry struct {
	Rank  int       `json:"rank"`
	Value float64   `json:"value"` // the ranked metric's value
	Stats UserStats `json:"stats"`
}

// LeaderboardSnapshot is a cached, periodically recomputed read model.
// It is advisory, never a source of truth.
type LeaderboardSnapshot struct {
	Type         LeaderboardType                      `json:"type"`
	Rankings     map[RankingMetric][]LeaderboardEntry `json:"rankings"`
	TotalPlayers int                                  `json:"total_players"`
	WindowStart  time.Time                            `json:"window_start"`
	WindowEnd    time.Time                            `json:"window_end"`
	LastUpdated  time.Time                            `json:"last_updated"`
}
