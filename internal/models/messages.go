package models

import "time"

// GameResultMessage is the Kafka payload published by the data-ingestion side
// when a game's status changes.
type GameResultMessage struct {
	GameID    string      `json:"game_id"`
	Sport     string      `json:"sport"`
	Status    GameStatus  `json:"status"`
	Result    *GameResult `json:"result,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// FightResultMessage is the Kafka payload for a single fight outcome.
type FightResultMessage struct {
	Result    FightResult `json:"result"`
	Timestamp time.Time   `json:"timestamp"`
}
