package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rivalbet/settlement-service/internal/apperr"
	"github.com/rivalbet/settlement-service/internal/models"
	"github.com/rivalbet/settlement-service/internal/notify"
)

// WalletService handles administrative balance grants and the weekly
// allowance sweep.
type WalletService struct {
	store             Store
	notifier          notify.Notifier
	allowanceAmount   decimal.Decimal
	allowanceInterval time.Duration
	logger            zerolog.Logger
}

// NewWalletService creates a new wallet service
func NewWalletService(store Store, notifier notify.Notifier, allowanceAmount float64, allowanceInterval time.Duration, logger zerolog.Logger) *WalletService {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	if allowanceInterval <= 0 {
		allowanceInterval = 7 * 24 * time.Hour
	}
	return &WalletService{
		store:             store,
		notifier:          notifier,
		allowanceAmount:   decimal.NewFromFloat(allowanceAmount),
		allowanceInterval: allowanceInterval,
		logger:            logger.With().Str("component", "wallet_service").Logger(),
	}
}

// Wallet returns the user's balance document, creating it on first access.
func (s *WalletService) Wallet(ctx context.Context, userID string) (*models.Wallet, error) {
	return s.store.EnsureWallet(ctx, userID)
}

// History returns the user's most recent ledger entries, newest first.
func (s *WalletService) History(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return s.store.Transactions(ctx, userID, limit)
}

// Grant credits a user with a bonus or promotion amount.
func (s *WalletService) Grant(ctx context.Context, userID string, amount decimal.Decimal, txType models.TransactionType, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperr.New(apperr.InvalidArgument, "grant amount must be positive")
	}
	if txType != models.TransactionBonus && txType != models.TransactionPromo {
		return nil, apperr.Newf(apperr.InvalidArgument, "grant type must be bonus or promotion, got %s", txType)
	}
	if description == "" {
		description = fmt.Sprintf("Admin %s grant", txType)
	}

	if _, err := s.store.EnsureWallet(ctx, userID); err != nil {
		return nil, err
	}
	entry, err := s.store.Credit(ctx, userID, amount, txType, description, "")
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("type", string(txType)).
		Str("amount", amount.String()).
		Msg("Grant applied")

	n := notify.Notification{
		UserID: userID,
		Title:  "Bonus received!",
		Body:   fmt.Sprintf("%s BR has been added to your balance", amount.StringFixed(0)),
	}
	if err := s.notifier.Send(ctx, n); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to send grant notification")
	}

	return entry, nil
}

// SweepAllowances grants the weekly allowance to every user whose last grant
// is older than the interval. Users who claimed recently are skipped, so the
// sweep can run on any cadence without double-paying.
func (s *WalletService) SweepAllowances(ctx context.Context, now time.Time) (*models.RunSummary, error) {
	userIDs, err := s.store.AllUserIDs(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.RunSummary{
		JobType:     "allowance_sweep",
		TotalAmount: decimal.Zero,
		StartedAt:   now,
	}

	for _, userID := range userIDs {
		granted, err := s.sweepUser(ctx, userID, now)
		if err != nil {
			summary.ErrorCount++
			summary.Errors = append(summary.Errors, fmt.Sprintf("user %s: %v", userID, err))
			s.logger.Error().Err(err).Str("user_id", userID).Msg("Allowance grant failed")
			continue
		}
		if granted {
			summary.SuccessCount++
			summary.TotalAmount = summary.TotalAmount.Add(s.allowanceAmount)
		}
	}

	summary.FinishedAt = time.Now().UTC()
	if err := s.store.SaveRunSummary(ctx, summary); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to save run summary")
	}

	s.logger.Info().
		Int("granted", summary.SuccessCount).
		Int("failed", summary.ErrorCount).
		Str("total", summary.TotalAmount.String()).
		Msg("Allowance sweep complete")

	return summary, nil
}

func (s *WalletService) sweepUser(ctx context.Context, userID string, now time.Time) (bool, error) {
	last, ok, err := s.store.LastAllowanceAt(ctx, userID)
	if err != nil {
		return false, err
	}
	if ok && now.Sub(last) < s.allowanceInterval {
		return false, nil
	}

	if _, err := s.store.Credit(ctx, userID, s.allowanceAmount, models.TransactionAllowance, "Weekly allowance", ""); err != nil {
		return false, err
	}
	if err := s.store.SetLastAllowanceAt(ctx, userID, now); err != nil {
		return false, err
	}

	n := notify.Notification{
		UserID: userID,
		Title:  "Weekly allowance",
		Body:   fmt.Sprintf("Your %s BR weekly allowance has arrived", s.allowanceAmount.StringFixed(0)),
	}
	if err := s.notifier.Send(ctx, n); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to send allowance notification")
	}
	return true, nil
}
