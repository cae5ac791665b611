package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rivalbet/settlement-service/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_service.go -package=mocks

// Store is an interface that abstracts persistence operations
// This allows for easier testing and mocking
type Store interface {
	// Games and bets
	SaveGame(ctx context.Context, game *models.Game) error
	GetGame(ctx context.Context, id string) (*models.Game, error)
	SaveBet(ctx context.Context, bet *models.Bet) error
	GetBet(ctx context.Context, id string) (*models.Bet, error)
	PendingBetsByGame(ctx context.Context, gameID string) ([]*models.Bet, error)
	SettledBetsBetween(ctx context.Context, start, end time.Time) ([]*models.Bet, error)

	// Pools and combat events
	SavePool(ctx context.Context, pool *models.Pool) error
	GetPool(ctx context.Context, id string) (*models.Pool, error)
	PoolsByEvent(ctx context.Context, eventID string) ([]*models.Pool, error)
	SaveEvent(ctx context.Context, event *models.CombatEvent) error
	GetEvent(ctx context.Context, id string) (*models.CombatEvent, error)
	UnsettledEventIDs(ctx context.Context) ([]string, error)
	SaveFightResult(ctx context.Context, result *models.FightResult) (bool, error)
	FightResultsByEvent(ctx context.Context, eventID string) (map[string]models.FightResult, error)
	PickSheetsByPool(ctx context.Context, poolID string) ([]*models.PickSheet, error)
	SavePoolScores(ctx context.Context, poolID string, scores []models.UserScore) error
	SavePayoutSummary(ctx context.Context, summary *models.PoolPayoutSummary) error

	// Leaderboards
	SaveSnapshot(ctx context.Context, snapshot *models.LeaderboardSnapshot) error
	GetSnapshot(ctx context.Context, lbType models.LeaderboardType) (*models.LeaderboardSnapshot, error)

	// Wallets
	EnsureWallet(ctx context.Context, userID string) (*models.Wallet, error)
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)
	AllUserIDs(ctx context.Context) ([]string, error)
	Credit(ctx context.Context, userID string, amount decimal.Decimal, txType models.TransactionType, description, relatedID string) (*models.Transaction, error)
	CreditOnce(ctx context.Context, userID string, amount decimal.Decimal, txType models.TransactionType, description, relatedID string) (*models.Transaction, bool, error)
	Transactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
	LastAllowanceAt(ctx context.Context, userID string) (time.Time, bool, error)
	SetLastAllowanceAt(ctx context.Context, userID string, t time.Time) error

	// Batch job records
	SaveRunSummary(ctx context.Context, summary *models.RunSummary) error
}
