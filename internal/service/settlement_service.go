package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rivalbet/settlement-service/internal/apperr"
	"github.com/rivalbet/settlement-service/internal/models"
	"github.com/rivalbet/settlement-service/internal/notify"
	"github.com/rivalbet/settlement-service/pkg/outcome"
)

var (
	betsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_bets_settled_total",
		Help: "Bets moved to a terminal status, by outcome",
	}, []string{"status"})
	betsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_bets_failed_total",
		Help: "Bets that could not be settled and were left pending",
	})
	payoutsCredited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_payouts_credited_total",
		Help: "Wallet credits issued by bet settlement",
	})
)

// SettlementService settles bets when their game goes final.
type SettlementService struct {
	store    Store
	notifier notify.Notifier
	logger   zerolog.Logger
}

// NewSettlementService creates a new settlement service
func NewSettlementService(store Store, notifier notify.Notifier, logger zerolog.Logger) *SettlementService {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &SettlementService{
		store:    store,
		notifier: notifier,
		logger:   logger.With().Str("component", "settlement_service").Logger(),
	}
}

// ApplyGameResult persists a game status update and, when the game has gone
// final, settles its pending bets. Non-final updates only refresh the stored
// game document.
func (s *SettlementService) ApplyGameResult(ctx context.Context, msg *models.GameResultMessage) error {
	game, err := s.store.GetGame(ctx, msg.GameID)
	if err != nil {
		if !apperr.IsKind(err, apperr.NotFound) {
			return err
		}
		game = &models.Game{ID: msg.GameID, Sport: msg.Sport}
	}

	// Final is terminal: a later message can never reopen a settled game.
	if game.Status == models.GameStatusFinal {
		s.logger.Debug().Str("game_id", msg.GameID).Msg("ignoring update for final game")
		return nil
	}

	game.Status = msg.Status
	game.Result = msg.Result
	game.UpdatedAt = time.Now().UTC()
	if err := s.store.SaveGame(ctx, game); err != nil {
		return err
	}

	switch msg.Status {
	case models.GameStatusFinal, models.GameStatusCanceled, models.GameStatusPostponed:
		_, err := s.SettleGame(ctx, msg.GameID)
		return err
	}
	return nil
}

// SettleGame grades every pending bet on the game and credits winnings.
// Each bet settles independently: a failure on one is recorded in the run
// summary and leaves that bet pending for a later retry, without blocking
// the rest.
func (s *SettlementService) SettleGame(ctx context.Context, gameID string) (*models.RunSummary, error) {
	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	switch game.Status {
	case models.GameStatusFinal, models.GameStatusCanceled, models.GameStatusPostponed:
	default:
		return nil, apperr.Newf(apperr.FailedPrecondition, "game %s is %s, not settleable", gameID, game.Status)
	}

	bets, err := s.store.PendingBetsByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	summary := &models.RunSummary{
		JobType:     "bet_settlement",
		RelatedID:   gameID,
		TotalAmount: decimal.Zero,
		StartedAt:   time.Now().UTC(),
	}

	var result *models.GameResult
	if game.Status == models.GameStatusFinal {
		result = game.Result
	}
	// Cancelled and postponed games settle with no result, which refunds
	// every bet.

	for _, bet := range bets {
		if err := s.settleBet(ctx, bet, result, summary); err != nil {
			summary.ErrorCount++
			summary.Errors = append(summary.Errors, fmt.Sprintf("bet %s: %v", bet.ID, err))
			betsFailed.Inc()
			s.logger.Error().Err(err).
				Str("bet_id", bet.ID.String()).
				Str("game_id", gameID).
				Msg("Failed to settle bet, leaving pending")
			continue
		}
		summary.SuccessCount++
	}

	summary.FinishedAt = time.Now().UTC()
	if err := s.store.SaveRunSummary(ctx, summary); err != nil {
		s.logger.Warn().Err(err).Str("game_id", gameID).Msg("Failed to save run summary")
	}

	s.logger.Info().
		Str("game_id", gameID).
		Int("settled", summary.SuccessCount).
		Int("failed", summary.ErrorCount).
		Str("total_paid", summary.TotalAmount.String()).
		Msg("Game settlement complete")

	return summary, nil
}

func (s *SettlementService) settleBet(ctx context.Context, bet *models.Bet, result *models.GameResult, summary *models.RunSummary) error {
	graded := outcome.Resolve(bet, result)

	// Credit before persisting the status change: if the credit fails the
	// bet stays pending and the whole step retries later. The credit is
	// keyed on the bet ID, so a replay after a failed status write finds
	// it already applied and pays nothing twice.
	if graded.WinAmount.IsPositive() {
		txType := models.TransactionPayout
		description := fmt.Sprintf("Payout for bet on game %s", bet.GameID)
		if graded.Status == models.BetStatusPush || graded.Status == models.BetStatusCancelled {
			txType = models.TransactionRefund
			description = fmt.Sprintf("Refund for bet on game %s", bet.GameID)
		}
		_, applied, err := s.store.CreditOnce(ctx, bet.UserID, graded.WinAmount, txType, description, bet.ID.String())
		if err != nil {
			return err
		}
		if applied {
			payoutsCredited.Inc()
			summary.TotalAmount = summary.TotalAmount.Add(graded.WinAmount)
		} else {
			s.logger.Info().Str("bet_id", bet.ID.String()).Msg("Credit already applied on an earlier run")
		}
	}

	now := time.Now().UTC()
	bet.Status = graded.Status
	bet.WinAmount = graded.WinAmount
	bet.Note = graded.Note
	bet.SettledAt = &now
	if err := s.store.SaveBet(ctx, bet); err != nil {
		return err
	}
	betsSettled.WithLabelValues(string(graded.Status)).Inc()

	var n *notify.Notification
	switch graded.Status {
	case models.BetStatusWon:
		n = &notify.Notification{
			UserID: bet.UserID,
			Title:  "You won!",
			Body:   fmt.Sprintf("Your bet paid out %s BR", graded.WinAmount.StringFixed(2)),
			Data:   map[string]string{"betId": bet.ID.String(), "gameId": bet.GameID},
		}
	case models.BetStatusLost:
		n = &notify.Notification{
			UserID: bet.UserID,
			Title:  "Bet settled",
			Body:   "Your bet didn't hit this time",
			Data:   map[string]string{"betId": bet.ID.String(), "gameId": bet.GameID},
		}
	}
	if n != nil {
		if err := s.notifier.Send(ctx, *n); err != nil {
			s.logger.Warn().Err(err).Str("bet_id", bet.ID.String()).Msg("Failed to send settlement notification")
		}
	}
	return nil
}

// CancelBet lets a user cancel their own pending bet before the game starts,
// refunding the stake.
func (s *SettlementService) CancelBet(ctx context.Context, userID, betID string) (*models.Bet, error) {
	bet, err := s.store.GetBet(ctx, betID)
	if err != nil {
		return nil, err
	}
	if bet.UserID != userID {
		return nil, apperr.New(apperr.PermissionDenied, "bet belongs to another user")
	}
	if bet.Status != models.BetStatusPending {
		return nil, apperr.Newf(apperr.FailedPrecondition, "bet is %s, only pending bets can be cancelled", bet.Status)
	}

	game, err := s.store.GetGame(ctx, bet.GameID)
	if err != nil {
		return nil, err
	}
	if game.Status != models.GameStatusScheduled || !time.Now().Before(game.StartTime) {
		return nil, apperr.New(apperr.FailedPrecondition, "game has already started")
	}

	description := fmt.Sprintf("Cancelled bet on game %s", bet.GameID)
	if _, _, err := s.store.CreditOnce(ctx, userID, bet.WagerAmount, models.TransactionRefund, description, bet.ID.String()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bet.Status = models.BetStatusCancelled
	bet.WinAmount = bet.WagerAmount
	bet.Note = "cancelled by user before game start"
	bet.SettledAt = &now
	if err := s.store.SaveBet(ctx, bet); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("bet_id", betID).
		Str("user_id", userID).
		Str("refunded", bet.WagerAmount.String()).
		Msg("Bet cancelled by user")

	return bet, nil
}
