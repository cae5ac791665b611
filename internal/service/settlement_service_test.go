package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rivalbet/settlement-service/internal/apperr"
	"github.com/rivalbet/settlement-service/internal/mocks"
	"github.com/rivalbet/settlement-service/internal/models"
)

type settlementTestSetup struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	notifier *mocks.MockNotifier
	service  *SettlementService
}

func setupSettlementTest(t *testing.T) *settlementTestSetup {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	return &settlementTestSetup{
		ctrl:     ctrl,
		store:    store,
		notifier: notifier,
		service:  NewSettlementService(store, notifier, zerolog.Nop()),
	}
}

func finalGame(id, winner string, home, away int) *models.Game {
	return &models.Game{
		ID:     id,
		Sport:  "nba",
		Status: models.GameStatusFinal,
		Result: &models.GameResult{Winner: winner, HomeScore: home, AwayScore: away},
	}
}

func pendingMoneyline(gameID, userID, selection string, odds int, wager int64) *models.Bet {
	return &models.Bet{
		ID:          uuid.New(),
		UserID:      userID,
		GameID:      gameID,
		BetType:     models.BetTypeMoneyline,
		Selection:   selection,
		Odds:        odds,
		WagerAmount: decimal.NewFromInt(wager),
		Status:      models.BetStatusPending,
		PlacedAt:    time.Now().UTC().Add(-time.Hour),
	}
}

// TestSettleGame_WinningBet tests that a winning bet is credited and marked won
func TestSettleGame_WinningBet(t *testing.T) {
	setup := setupSettlementTest(t)
	ctx := context.Background()

	bet := pendingMoneyline("game-1", "user-1", "home", -110, 100)
	setup.store.EXPECT().GetGame(ctx, "game-1").Return(finalGame("game-1", "home", 110, 102), nil)
	setup.store.EXPECT().PendingBetsByGame(ctx, "game-1").Return([]*models.Bet{bet}, nil)

	var credited decimal.Decimal
	setup.store.EXPECT().
		CreditOnce(ctx, "user-1", gomock.Any(), models.TransactionPayout, gomock.Any(), bet.ID.String()).
		DoAndReturn(func(_ context.Context, _ string, amount decimal.Decimal, _ models.TransactionType, _, _ string) (*models.Transaction, bool, error) {
			credited = amount
			return &models.Transaction{}, true, nil
		})

	var saved *models.Bet
	setup.store.EXPECT().SaveBet(ctx, bet).DoAndReturn(func(_ context.Context, b *models.Bet) error {
		saved = b
		return nil
	})
	setup.notifier.EXPECT().Send(ctx, gomock.Any()).Return(nil)
	setup.store.EXPECT().SaveRunSummary(ctx, gomock.Any()).Return(nil)

	summary, err := setup.service.SettleGame(ctx, "game-1")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, 0, summary.ErrorCount)
	assert.Equal(t, "190.91", credited.StringFixed(2))
	assert.Equal(t, models.BetStatusWon, saved.Status)
	assert.NotNil(t, saved.SettledAt)
}

// TestSettleGame_LosingBetNoCredit tests that a losing bet gets no credit
func TestSettleGame_LosingBetNoCredit(t *testing.T) {
	setup := setupSettlementTest(t)
	ctx := context.Background()

	bet := pendingMoneyline("game-1", "user-1", "away", 150, 50)
	setup.store.EXPECT().GetGame(ctx, "game-1").Return(finalGame("game-1", "home", 110, 102), nil)
	setup.store.EXPECT().PendingBetsByGame(ctx, "game-1").Return([]*models.Bet{bet}, nil)
	setup.store.EXPECT().SaveBet(ctx, bet).Return(nil)
	setup.notifier.EXPECT().Send(ctx, gomock.Any()).Return(nil)
	setup.store.EXPECT().SaveRunSummary(ctx, gomock.Any()).Return(nil)

	summary, err := setup.service.SettleGame(ctx, "game-1")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, models.BetStatusLost, bet.Status)
	assert.True(t, bet.WinAmount.IsZero())
}

// TestSettleGame_NotFinal tests that a live game cannot be settled
func TestSettleGame_NotFinal(t *testing.T) {
	setup := setupSettlementTest(t)
	ctx := context.Background()

	setup.store.EXPECT().GetGame(ctx, "game-1").Return(&models.Game{
		ID:     "game-1",
		Status: models.GameStatusLive,
	}, nil)

	_, err := setup.service.SettleGame(ctx, "game-1")
	assert.True(t, apperr.IsKind(err, apperr.FailedPrecondition))
}

// TestSettleGame_BetIsolation tests that one failing bet does not block the rest
func TestSettleGame_BetIsolation(t *testing.T) {
	setup := setupSettlementTest(t)
	ctx := context.Background()

	failing := pendingMoneyline("game-1", "user-1", "home", -110, 100)
	healthy := pendingMoneyline("game-1", "user-2", "home", 200, 25)

	setup.store.EXPECT().GetGame(ctx, "game-1").Return(finalGame("game-1", "home", 110, 102), nil)
	setup.store.EXPECT().PendingBetsByGame(ctx, "game-1").Return([]*models.Bet{failing, healthy}, nil)

	setup.store.EXPECT().
		CreditOnce(ctx, "user-1", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, false, errors.New("wallet unavailable"))
	setup.store.EXPECT().
		CreditOnce(ctx, "user-2", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.Transaction{}, true, nil)
	setup.store.EXPECT().SaveBet(ctx, healthy).Return(nil)
	setup.notifier.EXPECT().Send(ctx, gomock.Any()).Return(nil)
	setup.store.EXPECT().SaveRunSummary(ctx, gomock.Any()).Return(nil)

	summary, err := setup.service.SettleGame(ctx, "game-1")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], failing.ID.String())
	// the failed bet stays pending for the next attempt
	assert.Equal(t, models.BetStatusPending, failing.Status)
}

// TestSettleGame_ReplayAfterSaveFailure tests that re-running settlement after
// a credit landed but the status write failed does not pay the bet again
func TestSettleGame_ReplayAfterSaveFailure(t *testing.T) {
	setup := setupSettlementTest(t)
	ctx := context.Background()

	bet := pendingMoneyline("game-1", "user-1", "home", -110, 100)
	creditCalls := 0

	// First run: the credit lands, the status write fails, the bet stays
	// pending.
	setup.store.EXPECT().GetGame(ctx, "game-1").Return(finalGame("game-1", "home", 110, 102), nil)
	setup.store.EXPECT().PendingBetsByGame(ctx, "game-1").Return([]*models.Bet{bet}, nil)
	setup.store.EXPECT().
		CreditOnce(ctx, "user-1", gomock.Any(), models.TransactionPayout, gomock.Any(), bet.ID.String()).
		DoAndReturn(func(_ context.Context, _ string, _ decimal.Decimal, _ models.TransactionType, _, _ string) (*models.Transaction, bool, error) {
			creditCalls++
			return &models.Transaction{}, true, nil
		})
	setup.store.EXPECT().SaveBet(ctx, bet).Return(errors.New("redis connection lost"))
	setup.store.EXPECT().SaveRunSummary(ctx, gomock.Any()).Return(nil)

	summary, err := setup.service.SettleGame(ctx, "game-1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ErrorCount)

	// Second run: the persisted doc still says pending, and the store
	// reports the credit as already applied, so the replay only writes the
	// final status.
	bet.Status = models.BetStatusPending
	setup.store.EXPECT().GetGame(ctx, "game-1").Return(finalGame("game-1", "home", 110, 102), nil)
	setup.store.EXPECT().PendingBetsByGame(ctx, "game-1").Return([]*models.Bet{bet}, nil)
	setup.store.EXPECT().
		CreditOnce(ctx, "user-1", gomock.Any(), models.TransactionPayout, gomock.Any(), bet.ID.String()).
		Return(nil, false, nil)
	setup.store.EXPECT().SaveBet(ctx, bet).Return(nil)
	setup.notifier.EXPECT().Send(ctx, gomock.Any()).Return(nil)
	setup.store.EXPECT().SaveRunSummary(ctx, gomock.Any()).Return(nil)

	summary, err = setup.service.SettleGame(ctx, "game-1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, models.BetStatusWon, bet.Status)
	assert.Equal(t, 1, creditCalls, "the wallet must only ever be credited once")
	assert.True(t, summary.TotalAmount.IsZero(), "replayed credit must not be re-counted")
}

// TestSettleGame_CancelledGameRefunds tests that a cancelled game refunds stakes
func TestSettleGame_CancelledGameRefunds(t *testing.T) {
	setup := setupSettlementTest(t)
	ctx := context.Background()

	bet := pendingMoneyline("game-1", "user-1", "home", -110, 100)
	setup.store.EXPECT().GetGame(ctx, "game-1").Return(&models.Game{
		ID:     "game-1",
		Status: models.GameStatusCanceled,
	}, nil)
	setup.store.EXPECT().PendingBetsByGame(ctx, "game-1").Return([]*models.Bet{bet}, nil)

	var credited decimal.Decimal
	setup.store.EXPECT().
		CreditOnce(ctx, "user-1", gomock.Any(), models.TransactionRefund, gomock.Any(), bet.ID.String()).
		DoAndReturn(func(_ context.Context, _ string, amount decimal.Decimal, _ models.TransactionType, _, _ string) (*models.Transaction, bool, error) {
			credited = amount
			return &models.Transaction{}, true, nil
		})
	setup.store.EXPECT().SaveBet(ctx, bet).Return(nil)
	setup.store.EXPECT().SaveRunSummary(ctx, gomock.Any()).Return(nil)

	_, err := setup.service.SettleGame(ctx, "game-1")
	require.NoError(t, err)

	assert.Equal(t, models.BetStatusCancelled, bet.Status)
	assert.True(t, credited.Equal(decimal.NewFromInt(100)), "stake should come back in full")
}

// TestApplyGameResult_FinalIsTerminal tests that final games ignore later updates
func TestApplyGameResult_FinalIsTerminal(t *testing.T) {
	setup := setupSettlementTest(t)
	ctx := context.Background()

	setup.store.EXPECT().GetGame(ctx, "game-1").Return(finalGame("game-1", "home", 1, 0), nil)

	err := setup.service.ApplyGameResult(ctx, &models.GameResultMessage{
		GameID: "game-1",
		Status: models.GameStatusLive,
	})
	require.NoError(t, err)
}

// TestApplyGameResult_FinalTriggersSettlement tests the final transition path
func TestApplyGameResult_FinalTriggersSettlement(t *testing.T) {
	setup := setupSettlementTest(t)
	ctx := context.Background()

	game := &models.Game{ID: "game-1", Status: models.GameStatusLive}
	setup.store.EXPECT().GetGame(ctx, "game-1").Return(game, nil)
	setup.store.EXPECT().SaveGame(ctx, game).Return(nil)

	// SettleGame re-reads the game
	setup.store.EXPECT().GetGame(ctx, "game-1").Return(finalGame("game-1", "home", 2, 1), nil)
	setup.store.EXPECT().PendingBetsByGame(ctx, "game-1").Return(nil, nil)
	setup.store.EXPECT().SaveRunSummary(ctx, gomock.Any()).Return(nil)

	err := setup.service.ApplyGameResult(ctx, &models.GameResultMessage{
		GameID: "game-1",
		Status: models.GameStatusFinal,
		Result: &models.GameResult{Winner: "home", HomeScore: 2, AwayScore: 1},
	})
	require.NoError(t, err)
}

// TestCancelBet_RefundsStake tests the happy cancellation path
func TestCancelBet_RefundsStake(t *testing.T) {
	setup := setupSettlementTest(t)
	ctx := context.Background()

	bet := pendingMoneyline("game-1", "user-1", "home", -110, 100)
	setup.store.EXPECT().GetBet(ctx, bet.ID.String()).Return(bet, nil)
	setup.store.EXPECT().GetGame(ctx, "game-1").Return(&models.Game{
		ID:        "game-1",
		Status:    models.GameStatusScheduled,
		StartTime: time.Now().Add(time.Hour),
	}, nil)
	setup.store.EXPECT().
		CreditOnce(ctx, "user-1", gomock.Any(), models.TransactionRefund, gomock.Any(), bet.ID.String()).
		Return(&models.Transaction{}, true, nil)
	setup.store.EXPECT().SaveBet(ctx, bet).Return(nil)

	got, err := setup.service.CancelBet(ctx, "user-1", bet.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.BetStatusCancelled, got.Status)
}

// TestCancelBet_WrongUser tests ownership enforcement
func TestCancelBet_WrongUser(t *testing.T) {
	setup := setupSettlementTest(t)
	ctx := context.Background()

	bet := pendingMoneyline("game-1", "user-1", "home", -110, 100)
	setup.store.EXPECT().GetBet(ctx, bet.ID.String()).Return(bet, nil)

	_, err := setup.service.CancelBet(ctx, "user-2", bet.ID.String())
	assert.True(t, apperr.IsKind(err, apperr.PermissionDenied))
}

// TestCancelBet_GameStarted tests that cancellation closes at game start
func TestCancelBet_GameStarted(t *testing.T) {
	setup := setupSettlementTest(t)
	ctx := context.Background()

	bet := pendingMoneyline("game-1", "user-1", "home", -110, 100)
	setup.store.EXPECT().GetBet(ctx, bet.ID.String()).Return(bet, nil)
	setup.store.EXPECT().GetGame(ctx, "game-1").Return(&models.Game{
		ID:        "game-1",
		Status:    models.GameStatusLive,
		StartTime: time.Now().Add(-time.Minute),
	}, nil)

	_, err := setup.service.CancelBet(ctx, "user-1", bet.ID.String())
	assert.True(t, apperr.IsKind(err, apperr.FailedPrecondition))
}

// TestCancelBet_NotPending tests that settled bets cannot be cancelled
func TestCancelBet_NotPending(t *testing.T) {
	setup := setupSettlementTest(t)
	ctx := context.Background()

	bet := pendingMoneyline("game-1", "user-1", "home", -110, 100)
	bet.Status = models.BetStatusWon
	setup.store.EXPECT().GetBet(ctx, bet.ID.String()).Return(bet, nil)

	_, err := setup.service.CancelBet(ctx, "user-1", bet.ID.String())
	assert.True(t, apperr.IsKind(err, apperr.FailedPrecondition))
}
