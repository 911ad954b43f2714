// Package calculator implements the settlement engine: currency
// normalization, balance aggregation, transfer optimization, and
// reconciliation against recorded settlement history.
//
// Every function in this package is pure and synchronous. Inputs are treated
// as immutable snapshots, so concurrent callers need no coordination. All
// money arithmetic happens on integer minor units; the only place a float
// appears is the exchange rate attached to an expense, and it is funneled
// through shopspring/decimal before it can touch an amount.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/colin-rod/tripthreads/internal/models"
)

// Normalize converts an expense's amount into the trip's base currency.
//
// A same-currency expense passes through unchanged and is never excluded,
// even when a stray exchange rate is attached: currency equality alone
// decides inclusion. A foreign-currency expense with a rate is converted
// with half-away-from-zero rounding to the nearest minor unit. A
// foreign-currency expense without a rate is excluded and contributes
// nothing to balances.
func Normalize(expense models.Expense, baseCurrency string) models.NormalizedExpense {
	if expense.Currency == baseCurrency {
		return models.NormalizedExpense{
			ExpenseID: expense.ID,
			Amount:    expense.Amount,
			Currency:  baseCurrency,
		}
	}

	if expense.ExchangeRate == nil {
		return models.NormalizedExpense{
			ExpenseID: expense.ID,
			Currency:  baseCurrency,
			Excluded:  true,
		}
	}

	converted := decimal.NewFromInt(int64(expense.Amount)).
		Mul(decimal.NewFromFloat(*expense.ExchangeRate)).
		Round(0). // half away from zero
		IntPart()

	return models.NormalizedExpense{
		ExpenseID: expense.ID,
		Amount:    models.MinorUnits(converted),
		Currency:  baseCurrency,
	}
}

// rescaleShare converts a participant's share from the expense's own
// currency into the normalized total: round(normalized * share / total),
// half away from zero. Rescaling the original minor-unit share keeps the
// per-expense debits within one minor unit of the normalized credit.
func rescaleShare(normalized, share, total models.MinorUnits) models.MinorUnits {
	if total == 0 {
		return 0
	}
	scaled := decimal.NewFromInt(int64(normalized)).
		Mul(decimal.NewFromInt(int64(share))).
		DivRound(decimal.NewFromInt(int64(total)), 0).
		IntPart()
	return models.MinorUnits(scaled)
}
