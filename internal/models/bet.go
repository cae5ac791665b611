package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetType identifies how a bet is graded against the final result.
type BetType string

const (
	BetTypeMoneyline BetType = "moneyline"
	BetTypeSpread    BetType = "spread"
	BetTypeTotal     BetType = "total"
	BetTypeProp      BetType = "prop"
)

// BetStatus is the lifecycle state of a bet. A bet is created pending and is
// moved exactly once to a terminal status when its game goes final.
type BetStatus string

const (
	BetStatusPending       BetStatus = "pending"
	BetStatusWon           BetStatus = "won"
	BetStatusLost          BetStatus = "lost"
	BetStatusPush          BetStatus = "push"
	BetStatusCancelled     BetStatus = "cancelled"
	BetStatusPendingReview BetStatus = "pending_review"
	BetStatusError         BetStatus = "error"
)

// Settled reports whether the status is terminal for leaderboard purposes.
func (s BetStatus) Settled() bool {
	return s == BetStatusWon || s == BetStatusLost
}

// Bet represents a single wager placed by a user on a game.
// WinAmount is zero unless status is won or push.
type Bet struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"user_id"`
	GameID      string          `json:"game_id"`
	BetType     BetType         `json:"bet_type"`
	Selection   string          `json:"selection"` // home/away, over/under, or prop selection
	Line        *float64        `json:"line,omitempty"`
	Odds        int             `json:"odds"` // American odds, signed, never zero
	WagerAmount decimal.Decimal `json:"wager_amount"`
	Status      BetStatus       `json:"status"`
	WinAmount   decimal.Decimal `json:"win_amount"`
	Note        string          `json:"note,omitempty"`
	PlacedAt    time.Time       `json:"placed_at"`
	SettledAt   *time.Time      `json:"settled_at,omitempty"`
}
