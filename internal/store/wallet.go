package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rivalbet/settlement-service/internal/models"
)

func walletKey(userID string) string    { return "wallet:" + userID }
func ledgerKey(userID string) string    { return "ledger:" + userID }
func allowanceKey(userID string) string { return "allowance:last:" + userID }

func creditMarkerKey(userID, relatedID string) string {
	return "credit:applied:" + userID + ":" + relatedID
}

const usersKey = "users"

// maxCreditRetries bounds optimistic-lock retries on a contended wallet.
const maxCreditRetries = 5

// EnsureWallet creates a zero-balance wallet for the user if none exists and
// registers the user for batch sweeps.
func (s *Store) EnsureWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err == nil {
		return wallet, nil
	}

	wallet = &models.Wallet{
		UserID:      userID,
		Balance:     decimal.Zero,
		LastUpdated: time.Now().UTC(),
	}
	data, err := json.Marshal(wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.SetNX(ctx, walletKey(userID), data, 0)
	pipe.SAdd(ctx, usersKey, userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create wallet for %s: %w", userID, err)
	}

	return s.GetWallet(ctx, userID)
}

// GetWallet fetches a user's wallet.
func (s *Store) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.getJSON(ctx, walletKey(userID), &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// AllUserIDs returns every user with a wallet, for batch sweeps.
func (s *Store) AllUserIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return ids, nil
}

// Credit atomically applies a signed amount to the user's balance and appends
// a ledger entry recording the before/after balances. The update and the
// append happen in one transaction, so the ledger invariant
// balanceAfter == balanceBefore + amount holds for every entry. A missing
// wallet is created on first credit.
func (s *Store) Credit(ctx context.Context, userID string, amount decimal.Decimal, txType models.TransactionType, description, relatedID string) (*models.Transaction, error) {
	entry, _, err := s.credit(ctx, userID, amount, txType, description, relatedID, "")
	return entry, err
}

// CreditOnce is Credit with an idempotency guard keyed on (user, relatedID):
// if a credit for that pair was already applied, nothing is written and the
// second return is false. Replays of settlement work rely on this to never
// pay the same bet or pool position twice.
func (s *Store) CreditOnce(ctx context.Context, userID string, amount decimal.Decimal, txType models.TransactionType, description, relatedID string) (*models.Transaction, bool, error) {
	if relatedID == "" {
		return nil, false, fmt.Errorf("idempotent credit for %s requires a related ID", userID)
	}
	return s.credit(ctx, userID, amount, txType, description, relatedID, creditMarkerKey(userID, relatedID))
}

func (s *Store) credit(ctx context.Context, userID string, amount decimal.Decimal, txType models.TransactionType, description, relatedID, marker string) (*models.Transaction, bool, error) {
	var entry *models.Transaction
	applied := false

	txf := func(tx *redis.Tx) error {
		entry = nil
		applied = false

		if marker != "" {
			n, err := tx.Exists(ctx, marker).Result()
			if err != nil {
				return err
			}
			if n > 0 {
				return nil // already applied on an earlier run
			}
		}

		before := decimal.Zero
		data, err := tx.Get(ctx, walletKey(userID)).Bytes()
		if err == nil {
			var wallet models.Wallet
			if err := json.Unmarshal(data, &wallet); err != nil {
				return fmt.Errorf("failed to unmarshal wallet: %w", err)
			}
			before = wallet.Balance
		} else if err != redis.Nil {
			return err
		}

		now := time.Now().UTC()
		after := before.Add(amount)

		entry = &models.Transaction{
			ID:            uuid.New(),
			UserID:        userID,
			Type:          txType,
			Amount:        amount,
			BalanceBefore: before,
			BalanceAfter:  after,
			Description:   description,
			RelatedID:     relatedID,
			Timestamp:     now,
		}

		walletData, err := json.Marshal(&models.Wallet{
			UserID:      userID,
			Balance:     after,
			LastUpdated: now,
		})
		if err != nil {
			return err
		}
		entryData, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, walletKey(userID), walletData, 0)
			pipe.LPush(ctx, ledgerKey(userID), entryData)
			pipe.SAdd(ctx, usersKey, userID)
			if marker != "" {
				pipe.Set(ctx, marker, entry.ID.String(), 0)
			}
			return nil
		})
		if err == nil {
			applied = true
		}
		return err
	}

	watched := []string{walletKey(userID)}
	if marker != "" {
		watched = append(watched, marker)
	}

	for i := 0; i < maxCreditRetries; i++ {
		err := s.client.Watch(ctx, txf, watched...)
		if err == nil {
			if !applied {
				s.logger.Debug().
					Str("user_id", userID).
					Str("related_id", relatedID).
					Msg("credit already applied, skipping")
				return nil, false, nil
			}
			s.logger.Debug().
				Str("user_id", userID).
				Str("amount", amount.String()).
				Str("type", string(txType)).
				Msg("applied wallet credit")
			return entry, true, nil
		}
		if err == redis.TxFailedErr {
			continue // concurrent update, retry
		}
		return nil, false, fmt.Errorf("failed to credit wallet for %s: %w", userID, err)
	}

	return nil, false, fmt.Errorf("failed to credit wallet for %s: too many conflicts", userID)
}

// Transactions returns the most recent ledger entries for a user, newest
// first.
func (s *Store) Transactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	raw, err := s.client.LRange(ctx, ledgerKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for %s: %w", userID, err)
	}

	entries := make([]models.Transaction, 0, len(raw))
	for _, item := range raw {
		var entry models.Transaction
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("skipping unreadable ledger entry")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LastAllowanceAt returns when the user last received the weekly allowance.
// The second return is false if the user has never been granted one.
func (s *Store) LastAllowanceAt(ctx context.Context, userID string) (time.Time, bool, error) {
	raw, err := s.client.Get(ctx, allowanceKey(userID)).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	} else if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read allowance marker for %s: %w", userID, err)
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse allowance marker for %s: %w", userID, err)
	}
	return t, true, nil
}

// SetLastAllowanceAt records the allowance grant time used by the sweep's
// once-per-interval guard.
func (s *Store) SetLastAllowanceAt(ctx context.Context, userID string, t time.Time) error {
	if err := s.client.Set(ctx, allowanceKey(userID), t.UTC().Format(time.RFC3339Nano), 0).Err(); err != nil {
		return fmt.Errorf("failed to set allowance marker for %s: %w", userID, err)
	}
	return nil
}
