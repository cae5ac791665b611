// Package outcome grades bets against final game results.
package outcome

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rivalbet/settlement-service/internal/models"
	"github.com/rivalbet/settlement-service/pkg/odds"
)

// Result is the graded outcome of a single bet.
type Result struct {
	Status    models.BetStatus
	WinAmount decimal.Decimal
	Note      string
}

// Resolve grades a bet against the game's final result. It is pure and
// deterministic: callers guard against re-settling by only passing bets that
// are still pending.
func Resolve(bet *models.Bet, result *models.GameResult) Result {
	if result == nil || result.Winner == "" {
		// No result means the game never finished: the stake comes back.
		return Result{
			Status:    models.BetStatusCancelled,
			WinAmount: bet.WagerAmount,
			Note:      "game cancelled or no result available",
		}
	}

	switch bet.BetType {
	case models.BetTypeMoneyline:
		return resolveMoneyline(bet, result)
	case models.BetTypeSpread:
		return resolveSpread(bet, result)
	case models.BetTypeTotal:
		return resolveTotal(bet, result)
	case models.BetTypeProp:
		return Result{
			Status:    models.BetStatusPendingReview,
			WinAmount: decimal.Zero,
			Note:      "prop bet requires manual review",
		}
	default:
		return Result{
			Status:    models.BetStatusError,
			WinAmount: decimal.Zero,
			Note:      fmt.Sprintf("unknown bet type: %s", bet.BetType),
		}
	}
}

func resolveMoneyline(bet *models.Bet, result *models.GameResult) Result {
	won := bet.Selection == result.Winner
	note := fmt.Sprintf("selected %s, winner was %s", bet.Selection, result.Winner)
	return settle(bet, won, note)
}

func resolveSpread(bet *models.Bet, result *models.GameResult) Result {
	line := 0.0
	if bet.Line != nil {
		line = *bet.Line
	}
	adjustedHome := float64(result.HomeScore) + line
	away := float64(result.AwayScore)

	// An exact tie after adjustment grades as a loss for both sides.
	var won bool
	if bet.Selection == "home" {
		won = adjustedHome > away
	} else {
		won = away > adjustedHome
	}

	note := fmt.Sprintf("spread %+.1f, final %d-%d", line, result.HomeScore, result.AwayScore)
	return settle(bet, won, note)
}

func resolveTotal(bet *models.Bet, result *models.GameResult) Result {
	line := 0.0
	if bet.Line != nil {
		line = *bet.Line
	}
	total := float64(result.HomeScore + result.AwayScore)

	// Landing exactly on the line is a push: stake returned, no profit.
	if total == line {
		return Result{
			Status:    models.BetStatusPush,
			WinAmount: bet.WagerAmount,
			Note:      fmt.Sprintf("total %.0f equals line %.1f", total, line),
		}
	}

	var won bool
	if bet.Selection == "over" {
		won = total > line
	} else {
		won = total < line
	}

	note := fmt.Sprintf("total %.0f vs line %.1f", total, line)
	return settle(bet, won, note)
}

func settle(bet *models.Bet, won bool, note string) Result {
	if !won {
		return Result{
			Status:    models.BetStatusLost,
			WinAmount: decimal.Zero,
			Note:      note + " - lost",
		}
	}

	winAmount, err := odds.Payout(bet.WagerAmount, bet.Odds)
	if err != nil {
		// A bet with invalid odds or wager should never have been accepted.
		return Result{
			Status:    models.BetStatusError,
			WinAmount: decimal.Zero,
			Note:      fmt.Sprintf("payout failed: %v", err),
		}
	}

	return Result{
		Status:    models.BetStatusWon,
		WinAmount: winAmount,
		Note:      fmt.Sprintf("%s - won %s BR", note, winAmount),
	}
}
