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
	"github.com/rivalbet/settlement-service/pkg/combat"
	"github.com/rivalbet/settlement-service/pkg/pool"
)

var (
	eventsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_events_settled_total",
		Help: "Combat events settled, by trigger reason",
	}, []string{"reason"})
	poolsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_pools_settled_total",
		Help: "Pools settled, by outcome",
	}, []string{"status"})
)

// CombatService settles combat-event pools: it ingests fight results,
// evaluates settlement triggers and distributes pool payouts.
type CombatService struct {
	store    Store
	scorer   *combat.Scorer
	notifier notify.Notifier
	logger   zerolog.Logger
}

// NewCombatService creates a new combat settlement service
func NewCombatService(store Store, notifier notify.Notifier, logger zerolog.Logger) *CombatService {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &CombatService{
		store:    store,
		scorer:   combat.NewScorer(logger),
		notifier: notifier,
		logger:   logger.With().Str("component", "combat_service").Logger(),
	}
}

// IngestFightResult records a fight outcome and re-evaluates the event's
// settlement trigger. Results are idempotent: a duplicate fight ID is
// ignored, never overwritten.
func (s *CombatService) IngestFightResult(ctx context.Context, result *models.FightResult) error {
	created, err := s.store.SaveFightResult(ctx, result)
	if err != nil {
		return err
	}
	if !created {
		s.logger.Debug().
			Str("fight_id", result.FightID).
			Str("event_id", result.EventID).
			Msg("Duplicate fight result ignored")
		return nil
	}

	s.logger.Info().
		Str("fight_id", result.FightID).
		Str("event_id", result.EventID).
		Int("fight_order", result.FightOrder).
		Str("method", result.Method).
		Msg("Fight result recorded")

	return s.CheckEvent(ctx, result.EventID, time.Now().UTC())
}

// CheckEvent evaluates the settlement trigger for an event and settles it if
// a trigger fires. Safe to call repeatedly; already-settled events are a
// no-op.
func (s *CombatService) CheckEvent(ctx context.Context, eventID string, now time.Time) error {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.SettlementStatus == models.EventSettled || event.SettlementStatus == models.EventSettling {
		return nil
	}

	resultsByFight, err := s.store.FightResultsByEvent(ctx, eventID)
	if err != nil {
		return err
	}
	results := make([]models.FightResult, 0, len(resultsByFight))
	for _, r := range resultsByFight {
		results = append(results, r)
	}

	// A partially settled event already had its trigger fire: skip
	// re-evaluation and retry just the errored pools.
	if event.SettlementStatus == models.EventSettledWithErrors {
		return s.settleEvent(ctx, event, resultsByFight, event.SettlementReason)
	}

	reason, fire := combat.EvaluateTrigger(event, results, now)
	event.LastChecked = now
	if !fire {
		return s.store.SaveEvent(ctx, event)
	}

	return s.settleEvent(ctx, event, resultsByFight, reason)
}

func (s *CombatService) settleEvent(ctx context.Context, event *models.CombatEvent, results map[string]models.FightResult, reason models.SettlementReason) error {
	event.SettlementStatus = models.EventSettling
	event.SettlementReason = reason
	if err := s.store.SaveEvent(ctx, event); err != nil {
		return err
	}

	s.logger.Info().
		Str("event_id", event.ID).
		Str("reason", string(reason)).
		Int("results", len(results)).
		Msg("Event settlement triggered")

	pools, err := s.store.PoolsByEvent(ctx, event.ID)
	if err != nil {
		event.SettlementStatus = models.EventError
		event.SettlementError = err.Error()
		if saveErr := s.store.SaveEvent(ctx, event); saveErr != nil {
			s.logger.Error().Err(saveErr).Str("event_id", event.ID).Msg("Failed to record event error")
		}
		return err
	}

	summary := &models.RunSummary{
		JobType:     "pool_settlement",
		RelatedID:   event.ID,
		TotalAmount: decimal.Zero,
		StartedAt:   time.Now().UTC(),
	}

	// Pools settle independently: one pool's failure marks that pool only
	// and never blocks its siblings.
	for _, p := range pools {
		if p.Status != models.PoolStatusOpen && p.Status != models.PoolStatusSettlementError {
			continue
		}
		paid, err := s.settlePool(ctx, p, event, results)
		if err != nil {
			summary.ErrorCount++
			summary.Errors = append(summary.Errors, fmt.Sprintf("pool %s: %v", p.ID, err))
			poolsSettled.WithLabelValues("error").Inc()

			p.Status = models.PoolStatusSettlementError
			p.SettlementError = err.Error()
			if saveErr := s.store.SavePool(ctx, p); saveErr != nil {
				s.logger.Error().Err(saveErr).Str("pool_id", p.ID).Msg("Failed to record pool error")
			}
			s.logger.Error().Err(err).Str("pool_id", p.ID).Str("event_id", event.ID).Msg("Pool settlement failed")
			continue
		}
		summary.SuccessCount++
		summary.TotalAmount = summary.TotalAmount.Add(paid)
		poolsSettled.WithLabelValues("settled").Inc()
	}

	summary.FinishedAt = time.Now().UTC()
	if err := s.store.SaveRunSummary(ctx, summary); err != nil {
		s.logger.Warn().Err(err).Str("event_id", event.ID).Msg("Failed to save run summary")
	}

	// The event's final state follows its pools: fully settled only when
	// every pool resolved. Anything still in SETTLEMENT_ERROR keeps the
	// event in the unsettled index so the periodic recheck retries it.
	var errored, resolved int
	for _, p := range pools {
		switch p.Status {
		case models.PoolStatusSettlementError:
			errored++
		case models.PoolStatusSettled, models.PoolStatusCancelled:
			resolved++
		}
	}
	switch {
	case errored > 0 && resolved == 0 && len(pools) > 0:
		event.SettlementStatus = models.EventError
		event.SettlementError = fmt.Sprintf("all %d pools failed to settle", errored)
	case errored > 0:
		event.SettlementStatus = models.EventSettledWithErrors
		event.SettlementError = fmt.Sprintf("%d pools awaiting settlement retry", errored)
	default:
		event.SettlementStatus = models.EventSettled
		event.SettlementError = ""
	}
	if err := s.store.SaveEvent(ctx, event); err != nil {
		return err
	}

	eventsSettled.WithLabelValues(string(reason)).Inc()
	s.logger.Info().
		Str("event_id", event.ID).
		Int("pools_settled", summary.SuccessCount).
		Int("pools_failed", summary.ErrorCount).
		Str("total_paid", summary.TotalAmount.String()).
		Msg("Event settlement complete")

	return nil
}

func (s *CombatService) settlePool(ctx context.Context, p *models.Pool, event *models.CombatEvent, results map[string]models.FightResult) (decimal.Decimal, error) {
	p.Status = models.PoolStatusSettling
	if err := s.store.SavePool(ctx, p); err != nil {
		return decimal.Zero, err
	}

	sheets, err := s.store.PickSheetsByPool(ctx, p.ID)
	if err != nil {
		return decimal.Zero, err
	}

	scores := s.scorer.ScorePool(sheets, results, event.TotalFights)
	if err := s.store.SavePoolScores(ctx, p.ID, scores); err != nil {
		return decimal.Zero, err
	}

	summary, err := pool.Distribute(p, scores)
	if err != nil {
		return decimal.Zero, err
	}

	for _, payout := range summary.Payouts {
		if !payout.Amount.IsPositive() {
			continue
		}
		description := fmt.Sprintf("Pool payout: %s (position %d)", p.Name, payout.Position)
		_, applied, err := s.store.CreditOnce(ctx, payout.UserID, payout.Amount, models.TransactionPayout, description, p.ID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to pay position %d: %w", payout.Position, err)
		}
		if !applied {
			// Paid on an earlier attempt that failed later in the pool.
			continue
		}

		n := notify.Notification{
			UserID: payout.UserID,
			Title:  "Pool winnings!",
			Body:   fmt.Sprintf("You finished #%d in %s and won %s BR", payout.Position, p.Name, payout.Amount.StringFixed(0)),
			Data:   map[string]string{"poolId": p.ID, "eventId": event.ID},
		}
		if err := s.notifier.Send(ctx, n); err != nil {
			s.logger.Warn().Err(err).Str("user_id", payout.UserID).Str("pool_id", p.ID).Msg("Failed to send payout notification")
		}
	}

	if err := s.store.SavePayoutSummary(ctx, summary); err != nil {
		return decimal.Zero, err
	}

	now := time.Now().UTC()
	p.Status = models.PoolStatusSettled
	p.SettlementError = ""
	p.SettledAt = &now
	if err := s.store.SavePool(ctx, p); err != nil {
		return decimal.Zero, err
	}

	s.logger.Info().
		Str("pool_id", p.ID).
		Int("winners", summary.WinnersCount).
		Str("total_paid", summary.TotalPaid.String()).
		Msg("Pool settled")

	return summary.TotalPaid, nil
}

// RefundEvent cancels every pool on an event and refunds entry fees, used
// when a card is scrapped. Already-settled pools are skipped.
func (s *CombatService) RefundEvent(ctx context.Context, eventID string) (*models.RunSummary, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.SettlementStatus == models.EventSettled {
		return nil, apperr.New(apperr.FailedPrecondition, "event is already settled")
	}

	pools, err := s.store.PoolsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	summary := &models.RunSummary{
		JobType:     "event_refund",
		RelatedID:   eventID,
		TotalAmount: decimal.Zero,
		StartedAt:   time.Now().UTC(),
	}

	for _, p := range pools {
		if p.Status == models.PoolStatusSettled || p.Status == models.PoolStatusCancelled {
			continue
		}
		if err := s.refundPool(ctx, p, summary); err != nil {
			summary.ErrorCount++
			summary.Errors = append(summary.Errors, fmt.Sprintf("pool %s: %v", p.ID, err))
			s.logger.Error().Err(err).Str("pool_id", p.ID).Msg("Pool refund failed")
		}
	}

	event.SettlementStatus = models.EventSettled
	event.SettlementReason = ""
	event.SettlementError = ""
	if err := s.store.SaveEvent(ctx, event); err != nil {
		return nil, err
	}

	summary.FinishedAt = time.Now().UTC()
	if err := s.store.SaveRunSummary(ctx, summary); err != nil {
		s.logger.Warn().Err(err).Str("event_id", eventID).Msg("Failed to save run summary")
	}

	s.logger.Info().
		Str("event_id", eventID).
		Int("refunded_pools", summary.SuccessCount).
		Str("total_refunded", summary.TotalAmount.String()).
		Msg("Event refunded")

	return summary, nil
}

func (s *CombatService) refundPool(ctx context.Context, p *models.Pool, summary *models.RunSummary) error {
	description := fmt.Sprintf("Refund: pool %s cancelled", p.Name)
	for _, userID := range p.Participants {
		_, applied, err := s.store.CreditOnce(ctx, userID, p.EntryFee, models.TransactionRefund, description, p.ID)
		if err != nil {
			return fmt.Errorf("failed to refund %s: %w", userID, err)
		}
		if applied {
			summary.TotalAmount = summary.TotalAmount.Add(p.EntryFee)
		}
	}

	p.Status = models.PoolStatusCancelled
	p.SettlementError = ""
	if err := s.store.SavePool(ctx, p); err != nil {
		return err
	}
	summary.SuccessCount++
	return nil
}

// RecheckUnsettled re-evaluates the trigger for every unsettled event. The
// periodic sweep relies on it to catch the timeout trigger for cards whose
// feed went quiet.
func (s *CombatService) RecheckUnsettled(ctx context.Context, now time.Time) {
	ids, err := s.store.UnsettledEventIDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list unsettled events")
		return
	}
	for _, id := range ids {
		if err := s.CheckEvent(ctx, id, now); err != nil {
			s.logger.Error().Err(err).Str("event_id", id).Msg("Event recheck failed")
		}
	}
}
