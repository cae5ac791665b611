package models

import "time"

// GameStatus mirrors the upstream feed's game lifecycle.
type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusLive      GameStatus = "live"
	GameStatusFinal     GameStatus = "final"
	GameStatusPostponed GameStatus = "postponed"
	GameStatusCanceled  GameStatus = "canceled"
)

// GameResult is the final outcome of a game as reported by the data feed.
type GameResult struct {
	Winner    string `json:"winner"` // "home" or "away"
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

// Game is a scheduled contest owned by the data-ingestion side.
// The settlement path consumes it read-only.
type Game struct {
	ID        string      `json:"id"`
	Sport     string      `json:"sport"`
	HomeTeam  string      `json:"home_team"`
	AwayTeam  string      `json:"away_team"`
	StartTime time.Time   `json:"start_time"`
	Status    GameStatus  `json:"status"`
	Result    *GameResult `json:"result,omitempty"`
	UpdatedAt time.Time   `json:"updated_at"`
}
