package models

import "time"

// EventSettlementStatus is the settlement state machine of a combat event.
type EventSettlementStatus string

const (
	EventUnsettled EventSettlementStatus = "unsettled"
	EventSettling  EventSettlementStatus = "settling"
	EventSettled   EventSettlementStatus = "settled"
	// EventSettledWithErrors marks an event whose trigger fired and some
	// pools paid out, but at least one pool is stuck in SETTLEMENT_ERROR.
	// The event stays in the unsettled index until every pool resolves.
	EventSettledWithErrors EventSettlementStatus = "settled_with_errors"
	EventError             EventSettlementStatus = "error"
)

// SettlementReason records which trigger fired for an event.
type SettlementReason string

const (
	ReasonAllFightsComplete SettlementReason = "ALL_FIGHTS_COMPLETE"
	ReasonMainEventComplete SettlementReason = "MAIN_EVENT_COMPLETE"
	ReasonTimeoutReached    SettlementReason = "TIMEOUT_REACHED"
)

// CombatEvent is a fight card (MMA or boxing) that pools are built on.
type CombatEvent struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Sport            string                `json:"sport"` // MMA or BOXING
	TotalFights      int                   `json:"total_fights"`
	StartTime        time.Time             `json:"start_time"`
	ScheduledEndTime time.Time             `json:"scheduled_end_time"`
	SettlementStatus EventSettlementStatus `json:"settlement_status"`
	SettlementReason SettlementReason      `json:"settlement_reason,omitempty"`
	SettlementError  string                `json:"settlement_error,omitempty"`
	LastChecked      time.Time             `json:"last_checked"`
}

// FightResult is the completed outcome of a single fight.
type FightResult struct {
	FightID    string    `json:"fight_id"`
	EventID    string    `json:"event_id"`
	FightOrder int       `json:"fight_order"` // 1 = main event
	Completed  bool      `json:"completed"`
	WinnerID   string    `json:"winner_id"`
	WinnerName string    `json:"winner_name,omitempty"`
	Method     string    `json:"method"` // KO, TKO, SUBMISSION, DECISION_*, DRAW, NO_CONTEST, DQ
	Round      int       `json:"round,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// FightPick is a single prediction within a user's card entry.
type FightPick struct {
	WinnerID   string `json:"winner_id"`
	Method     string `json:"method,omitempty"` // ko/tko, submission, decision, draw
	Round      int    `json:"round,omitempty"`
	Confidence int    `json:"confidence,omitempty"` // 1-5 stars, 0 means unset
}

// PickSheet holds one user's picks for a pool, keyed by fight ID.
type PickSheet struct {
	UserID    string               `json:"user_id"`
	PoolID    string               `json:"pool_id"`
	Picks     map[string]FightPick `json:"picks"`
	CreatedAt time.Time            `json:"created_at"`
}

// FightScore is the per-fight breakdown behind a user's score.
type FightScore struct {
	FightID              string  `json:"fight_id"`
	WinnerPoints         float64 `json:"winner_points"`
	MethodBonus          float64 `json:"method_bonus"`
	RoundBonus           float64 `json:"round_bonus"`
	ConfidenceMultiplier float64 `json:"confidence_multiplier"`
	Total                float64 `json:"total"`
}

// UserScore is a user's accumulated score for a pool, ranked after scoring.
type UserScore struct {
	UserID         string       `json:"user_id"`
	PoolID         string       `json:"pool_id"`
	TotalScore     float64      `json:"total_score"` // completion-normalized
	RawScore       float64      `json:"raw_score"`
	CorrectWinners int          `json:"correct_winners"`
	CorrectMethods int          `json:"correct_methods"`
	CorrectRounds  int          `json:"correct_rounds"`
	FightsScored   int          `json:"fights_scored"`
	CompletionRate float64      `json:"completion_rate"`
	Rank           int          `json:"rank"` // 1-based, assigned after sort
	Breakdown      []FightScore `json:"breakdown"`
}
