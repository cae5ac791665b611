// Package pool computes ranked payout distributions for wagering pools.
package pool

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rivalbet/settlement-service/internal/apperr"
	"github.com/rivalbet/settlement-service/internal/models"
)

// Structure is a named payout table mapping finishing position to a fraction
// of the pot. Fractions for the listed positions need not sum to 1: any
// unallocated remainder stays in the house and is never redistributed.
type Structure struct {
	Name          string
	PayoutPercent float64         // fraction of entries that finish in the money
	Payouts       map[int]float64 // 1-based position -> fraction of pot
}

// Predefined structures. Positions inside the winners count but outside the
// table intentionally pay zero.
var Structures = map[string]Structure{
	"QUICK_PLAY": {
		Name:          "Quick Play",
		PayoutPercent: 0.40,
		Payouts: map[int]float64{
			1: 0.30, 2: 0.20, 3: 0.15, 4: 0.12,
			5: 0.08, 6: 0.06, 7: 0.05, 8: 0.04,
		},
	},
	"TOURNAMENT": {
		Name:          "Tournament",
		PayoutPercent: 0.25,
		Payouts: map[int]float64{
			1: 0.40, 2: 0.25, 3: 0.15, 4: 0.10, 5: 0.10,
		},
	},
	"WINNER_TAKE_ALL": {
		Name:          "Winner Take All",
		PayoutPercent: 0.05,
		Payouts:       map[int]float64{1: 1.00},
	},
	"TOP_3": {
		Name:          "Top 3",
		PayoutPercent: 0.15,
		Payouts:       map[int]float64{1: 0.50, 2: 0.30, 3: 0.20},
	},
}

// Distribute computes per-position payouts for a pool given its rankings,
// already sorted by descending score. It performs no side effects; applying
// payouts to wallets is the caller's responsibility.
func Distribute(p *models.Pool, rankings []models.UserScore) (*models.PoolPayoutSummary, error) {
	structure, ok := Structures[p.PayoutStructure]
	if !ok {
		return nil, apperr.Newf(apperr.InvalidArgument, "unknown payout structure %q", p.PayoutStructure)
	}

	totalEntries := p.TotalEntries()
	totalPot := p.TotalPot()

	winnersCount := int(math.Ceil(float64(totalEntries) * structure.PayoutPercent))
	if winnersCount > len(rankings) {
		winnersCount = len(rankings)
	}

	payouts := make([]models.PoolPayout, 0, winnersCount)
	totalPaid := decimal.Zero

	for position := 1; position <= winnersCount; position++ {
		fraction, listed := structure.Payouts[position]
		if !listed || fraction <= 0 {
			continue
		}

		// Pool payouts are whole BR, half rounded away from zero.
		amount := totalPot.Mul(decimal.NewFromFloat(fraction)).Round(0)
		user := rankings[position-1]

		payouts = append(payouts, models.PoolPayout{
			UserID:   user.UserID,
			Position: position,
			Score:    user.TotalScore,
			Amount:   amount,
			Profit:   amount.Sub(p.EntryFee),
		})
		totalPaid = totalPaid.Add(amount)
	}

	return &models.PoolPayoutSummary{
		PoolID:       p.ID,
		Structure:    p.PayoutStructure,
		TotalPot:     totalPot,
		TotalEntries: totalEntries,
		WinnersCount: winnersCount,
		TotalPaid:    totalPaid,
		Payouts:      payouts,
		Timestamp:    time.Now().UTC(),
	}, nil
}
