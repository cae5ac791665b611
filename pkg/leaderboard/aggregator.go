// Package leaderboard aggregates settled bets into ranked per-user stats.
package leaderboard

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rivalbet/settlement-service/internal/models"
)

// allTimeEpoch is the fixed lower bound of the all-time window.
var allTimeEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// TopN is how many entries a snapshot keeps per metric.
const TopN = 100

// WindowStart returns the inclusive start boundary for a leaderboard type:
// midnight for daily, the most recent Monday midnight for weekly, the first
// of the month for monthly, and a fixed epoch for all-time.
func WindowStart(lbType models.LeaderboardType, now time.Time) time.Time {
	switch lbType {
	case models.LeaderboardDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case models.LeaderboardWeekly:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		daysToMonday := int(now.Weekday()) - int(time.Monday)
		if daysToMonday < 0 {
			daysToMonday += 7
		}
		return midnight.AddDate(0, 0, -daysToMonday)
	case models.LeaderboardMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return allTimeEpoch
	}
}

// AggregateUser computes cumulative stats from one user's settled bets.
// Bets are ordered chronologically ascending by settled time before streaks
// are computed; only won/lost bets contribute.
func AggregateUser(userID string, bets []models.Bet) models.UserStats {
	settled := make([]models.Bet, 0, len(bets))
	for _, b := range bets {
		if b.Status.Settled() && b.SettledAt != nil {
			settled = append(settled, b)
		}
	}
	sort.SliceStable(settled, func(i, j int) bool {
		return settled[i].SettledAt.Before(*settled[j].SettledAt)
	})

	stats := models.UserStats{
		UserID:        userID,
		TotalWagered:  decimal.Zero,
		TotalWinnings: decimal.Zero,
		Profit:        decimal.Zero,
	}

	streak := 0
	for _, b := range settled {
		stats.TotalWagered = stats.TotalWagered.Add(b.WagerAmount)

		if b.Status == models.BetStatusWon {
			stats.Wins++
			stats.TotalWinnings = stats.TotalWinnings.Add(b.WinAmount)
			streak++
			if streak > stats.BestStreak {
				stats.BestStreak = streak
			}
		} else {
			stats.Losses++
			streak = 0
		}
	}

	stats.CurrentStreak = streak
	stats.TotalBets = stats.Wins + stats.Losses
	if stats.TotalBets > 0 {
		stats.WinRate = round1(float64(stats.Wins) / float64(stats.TotalBets) * 100)
	}

	stats.Profit = stats.TotalWinnings.Sub(stats.TotalWagered)
	if stats.TotalWagered.IsPositive() {
		roi, _ := stats.Profit.Div(stats.TotalWagered).Mul(decimal.NewFromInt(100)).Float64()
		stats.ROI = round1(roi)
	}

	return stats
}

// Rank orders users by the given metric descending and returns the top n as
// ranked entries. Users with zero settled bets are excluded.
func Rank(stats []models.UserStats, metric models.RankingMetric, n int) []models.LeaderboardEntry {
	active := make([]models.UserStats, 0, len(stats))
	for _, s := range stats {
		if s.TotalBets > 0 {
			active = append(active, s)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return metricValue(active[i], metric) > metricValue(active[j], metric)
	})

	if n > 0 && len(active) > n {
		active = active[:n]
	}

	entries := make([]models.LeaderboardEntry, len(active))
	for i, s := range active {
		entries[i] = models.LeaderboardEntry{
			Rank:  i + 1,
			Value: metricValue(s, metric),
			Stats: s,
		}
	}
	return entries
}

// BuildSnapshot ranks every metric and assembles a snapshot for the window.
func BuildSnapshot(lbType models.LeaderboardType, stats []models.UserStats, windowStart, now time.Time) *models.LeaderboardSnapshot {
	rankings := make(map[models.RankingMetric][]models.LeaderboardEntry, len(models.AllRankingMetrics))
	totalPlayers := 0
	for _, metric := range models.AllRankingMetrics {
		rankings[metric] = Rank(stats, metric, TopN)
		if len(rankings[metric]) > totalPlayers {
			totalPlayers = len(rankings[metric])
		}
	}

	return &models.LeaderboardSnapshot{
		Type:         lbType,
		Rankings:     rankings,
		TotalPlayers: totalPlayers,
		WindowStart:  windowStart,
		WindowEnd:    now,
		LastUpdated:  now,
	}
}

func metricValue(s models.UserStats, metric models.RankingMetric) float64 {
	switch metric {
	case models.MetricProfit:
		v, _ := s.Profit.Float64()
		return v
	case models.MetricWinRate:
		return s.WinRate
	case models.MetricTotalWins:
		return float64(s.Wins)
	case models.MetricWinStreak:
		return float64(s.CurrentStreak)
	default:
		return 0
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
