package outcome

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rivalbet/settlement-service/internal/models"
)

func makeBet(betType models.BetType, selection string, line *float64, americanOdds int, wager int64) *models.Bet {
	return &models.Bet{
		ID:          uuid.New(),
		UserID:      "user-1",
		GameID:      "game-1",
		BetType:     betType,
		Selection:   selection,
		Line:        line,
		Odds:        americanOdds,
		WagerAmount: decimal.NewFromInt(wager),
		Status:      models.BetStatusPending,
		PlacedAt:    time.Now(),
	}
}

func floatPtr(f float64) *float64 { return &f }

// TestResolve_NoResult tests that bets on games without a result are
// cancelled with the stake refunded
func TestResolve_NoResult(t *testing.T) {
	bet := makeBet(models.BetTypeMoneyline, "home", nil, -110, 100)

	got := Resolve(bet, nil)
	assert.Equal(t, models.BetStatusCancelled, got.Status)
	assert.True(t, got.WinAmount.Equal(bet.WagerAmount))

	got = Resolve(bet, &models.GameResult{Winner: ""})
	assert.Equal(t, models.BetStatusCancelled, got.Status)
	assert.True(t, got.WinAmount.Equal(bet.WagerAmount))
}

// TestResolve_MoneylineWin tests a winning home moneyline bet
func TestResolve_MoneylineWin(t *testing.T) {
	bet := makeBet(models.BetTypeMoneyline, "home", nil, -110, 100)
	result := &models.GameResult{Winner: "home", HomeScore: 24, AwayScore: 17}

	got := Resolve(bet, result)

	assert.Equal(t, models.BetStatusWon, got.Status)
	assert.True(t, decimal.NewFromFloat(190.91).Equal(got.WinAmount),
		"expected 190.91, got %s", got.WinAmount)
}

// TestResolve_MoneylineLoss tests a losing moneyline bet
func TestResolve_MoneylineLoss(t *testing.T) {
	bet := makeBet(models.BetTypeMoneyline, "home", nil, -110, 100)
	result := &models.GameResult{Winner: "away", HomeScore: 17, AwayScore: 24}

	got := Resolve(bet, result)

	assert.Equal(t, models.BetStatusLost, got.Status)
	assert.True(t, got.WinAmount.IsZero())
}

// TestResolve_SpreadCover tests a home spread bet that covers
func TestResolve_SpreadCover(t *testing.T) {
	// Home +3.5: 20 + 3.5 > 23 covers
	bet := makeBet(models.BetTypeSpread, "home", floatPtr(3.5), -110, 50)
	result := &models.GameResult{Winner: "away", HomeScore: 20, AwayScore: 23}

	got := Resolve(bet, result)
	assert.Equal(t, models.BetStatusWon, got.Status)
}

// TestResolve_SpreadMiss tests an away spread bet that misses
func TestResolve_SpreadMiss(t *testing.T) {
	// Away needs 23 > 20 + 3.5 = 23.5, fails
	bet := makeBet(models.BetTypeSpread, "away", floatPtr(3.5), -110, 50)
	result := &models.GameResult{Winner: "away", HomeScore: 20, AwayScore: 23}

	got := Resolve(bet, result)
	assert.Equal(t, models.BetStatusLost, got.Status)
}

// TestResolve_SpreadExactTie tests that an exact tie after line adjustment
// grades as a loss for both sides
func TestResolve_SpreadExactTie(t *testing.T) {
	// Home +3: 20 + 3 == 23 exactly
	result := &models.GameResult{Winner: "away", HomeScore: 20, AwayScore: 23}

	home := Resolve(makeBet(models.BetTypeSpread, "home", floatPtr(3), -110, 50), result)
	away := Resolve(makeBet(models.BetTypeSpread, "away", floatPtr(3), -110, 50), result)

	assert.Equal(t, models.BetStatusLost, home.Status)
	assert.Equal(t, models.BetStatusLost, away.Status)
}

// TestResolve_TotalOverWin tests a winning over bet
func TestResolve_TotalOverWin(t *testing.T) {
	bet := makeBet(models.BetTypeTotal, "over", floatPtr(44.5), -105, 100)
	result := &models.GameResult{Winner: "home", HomeScore: 27, AwayScore: 21}

	got := Resolve(bet, result)
	assert.Equal(t, models.BetStatusWon, got.Status)
}

// TestResolve_TotalUnderWin tests a winning under bet
func TestResolve_TotalUnderWin(t *testing.T) {
	bet := makeBet(models.BetTypeTotal, "under", floatPtr(44.5), -105, 100)
	result := &models.GameResult{Winner: "home", HomeScore: 20, AwayScore: 17}

	got := Resolve(bet, result)
	assert.Equal(t, models.BetStatusWon, got.Status)
}

// TestResolve_TotalPush tests that a total landing on the line pushes with the
// stake returned exactly, regardless of selection
func TestResolve_TotalPush(t *testing.T) {
	result := &models.GameResult{Winner: "home", HomeScore: 24, AwayScore: 20}

	for _, selection := range []string{"over", "under"} {
		bet := makeBet(models.BetTypeTotal, selection, floatPtr(44), -110, 75)
		got := Resolve(bet, result)

		assert.Equal(t, models.BetStatusPush, got.Status)
		assert.True(t, bet.WagerAmount.Equal(got.WinAmount),
			"push must return the stake exactly, got %s", got.WinAmount)
	}
}

// TestResolve_PropPendingReview tests that prop bets always go to manual review
func TestResolve_PropPendingReview(t *testing.T) {
	bet := makeBet(models.BetTypeProp, "first-td-scorer", nil, 300, 25)
	result := &models.GameResult{Winner: "home", HomeScore: 24, AwayScore: 20}

	got := Resolve(bet, result)
	assert.Equal(t, models.BetStatusPendingReview, got.Status)
	assert.True(t, got.WinAmount.IsZero())
}

// TestResolve_UnknownBetType tests that unknown bet types grade as error
func TestResolve_UnknownBetType(t *testing.T) {
	bet := makeBet(models.BetType("parlay"), "home", nil, -110, 100)
	result := &models.GameResult{Winner: "home", HomeScore: 24, AwayScore: 20}

	got := Resolve(bet, result)
	assert.Equal(t, models.BetStatusError, got.Status)
}
