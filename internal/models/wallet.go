package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType categorizes ledger entries.
type TransactionType string

const (
	TransactionPayout    TransactionType = "payout"
	TransactionRefund    TransactionType = "refund"
	TransactionAllowance TransactionType = "allowance"
	TransactionBonus     TransactionType = "bonus"
	TransactionPromo     TransactionType = "promotion"
	TransactionWager     TransactionType = "wager"
)

// Wallet is a user's BR balance document.
type Wallet struct {
	UserID      string          `json:"user_id"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"last_updated"`
}

// Transaction is one append-only ledger entry. For every entry
// BalanceAfter == BalanceBefore + Amount (Amount is signed).
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	UserID        string          `json:"user_id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Description   string          `json:"description"`
	RelatedID     string          `json:"related_id,omitempty"` // bet, pool or event ID
	Timestamp     time.Time       `json:"timestamp"`
}
