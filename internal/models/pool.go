package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PoolStatus is the settlement lifecycle of a pool. Each pool transitions
// independently; a failure in one pool never blocks its siblings.
type PoolStatus string

const (
	PoolStatusOpen            PoolStatus = "open"
	PoolStatusSettling        PoolStatus = "settling"
	PoolStatusSettled         PoolStatus = "settled"
	PoolStatusCancelled       PoolStatus = "cancelled"
	PoolStatusSettlementError PoolStatus = "settlement_error"
)

// Pool is a group wagering contest tied to a combat event.
type Pool struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	EventID         string          `json:"event_id"`
	CreatorID       string          `json:"creator_id"`
	EntryFee        decimal.Decimal `json:"entry_fee"`
	Participants    []string        `json:"participants"` // user IDs, join order
	PayoutStructure string          `json:"payout_structure"`
	Status          PoolStatus      `json:"status"`
	SettlementError string          `json:"settlement_error,omitempty"`
	SettledAt       *time.Time      `json:"settled_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TotalEntries is the participant count; the pot is derived from it rather
// than stored independently.
func (p *Pool) TotalEntries() int { return len(p.Participants) }

// TotalPot derives the pot from entry fee and entry count.
func (p *Pool) TotalPot() decimal.Decimal {
	return p.EntryFee.Mul(decimal.NewFromInt(int64(p.TotalEntries())))
}

// PoolPayout is one recipient's share of a settled pool.
type PoolPayout struct {
	UserID   string          `json:"user_id"`
	Position int             `json:"position"`
	Score    float64         `json:"score"`
	Amount   decimal.Decimal `json:"amount"`
	Profit   decimal.Decimal `json:"profit"` // amount - entry fee
}

// PoolPayoutSummary is the persisted record of a pool's distribution.
type PoolPayoutSummary struct {
	PoolID       string          `json:"pool_id"`
	Structure    string          `json:"structure"`
	TotalPot     decimal.Decimal `json:"total_pot"`
	TotalEntries int             `json:"total_entries"`
	WinnersCount int             `json:"winners_count"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Payouts      []PoolPayout    `json:"payouts"`
	Timestamp    time.Time       `json:"timestamp"`
}
