package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RunSummary is the persisted outcome of a batch job (settlement run,
// allowance sweep, leaderboard rebuild, event refund). Batch jobs report
// counts here instead of surfacing per-entity failures to callers.
type RunSummary struct {
	ID           uuid.UUID       `json:"id"`
	JobType      string          `json:"job_type"`
	RelatedID    string          `json:"related_id,omitempty"` // game, event or leaderboard type
	SuccessCount int             `json:"success_count"`
	ErrorCount   int             `json:"error_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Errors       []string        `json:"errors,omitempty"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   time.Time       `json:"finished_at"`
}
