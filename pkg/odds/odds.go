// Package odds implements American-odds payout math.
package odds

import (
	"github.com/shopspring/decimal"

	"github.com/rivalbet/settlement-service/internal/apperr"
)

var hundred = decimal.NewFromInt(100)

// Payout returns the total amount returned to the bettor (stake plus profit)
// for a winning wager at the given American odds. Results are rounded to two
// decimal places. Payout(w, o) >= w for every valid input.
//
// Positive odds are profit per 100 staked: wager + wager*odds/100.
// Negative odds are stake required to profit 100: wager + wager*100/|odds|.
func Payout(wager decimal.Decimal, americanOdds int) (decimal.Decimal, error) {
	if wager.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, apperr.Newf(apperr.InvalidArgument, "wager must be positive, got %s", wager)
	}
	if americanOdds == 0 {
		return decimal.Zero, apperr.New(apperr.InvalidArgument, "american odds of zero have no defined sign")
	}

	var profit decimal.Decimal
	if americanOdds > 0 {
		profit = wager.Mul(decimal.NewFromInt(int64(americanOdds))).Div(hundred)
	} else {
		profit = wager.Mul(hundred).Div(decimal.NewFromInt(int64(-americanOdds)))
	}

	return wager.Add(profit).Round(2), nil
}
