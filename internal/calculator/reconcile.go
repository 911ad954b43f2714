package calculator

import "github.com/colin-rod/tripthreads/internal/models"

// Reconcile splits settlement history by lifecycle status. Pending records
// are outstanding obligations a caller may prefer to show instead of fresh
// suggestions for the same pair; settled records are completed transfers
// that ComputeBalances nets into the balances.
func Reconcile(history []models.SettlementRecord) (pending, settled []models.SettlementRecord) {
	for _, record := range history {
		switch record.Status {
		case models.SettlementSettled:
			settled = append(settled, record)
		default:
			pending = append(pending, record)
		}
	}
	return pending, settled
}

// Summarize runs the full pipeline: normalize and aggregate expenses, net in
// settled history, optimize the remaining balances into suggestions, and
// assemble everything into the Summary returned to the caller.
//
// All slices in the result are non-nil so the JSON encoding is always an
// array, never null.
func Summarize(expenses []models.Expense, history []models.SettlementRecord, baseCurrency string) models.Summary {
	pending, settled := Reconcile(history)

	balances, excludedIDs := ComputeBalances(expenses, settled, baseCurrency)
	suggested := Optimize(balances)

	summary := models.Summary{
		Balances:           balances,
		ExcludedExpenseIDs: excludedIDs,
		Suggested:          suggested,
		Pending:            pending,
		Settled:            settled,
		TotalExpenses:      len(expenses),
		BaseCurrency:       baseCurrency,
	}

	if summary.Balances == nil {
		summary.Balances = []models.UserBalance{}
	}
	if summary.ExcludedExpenseIDs == nil {
		summary.ExcludedExpenseIDs = []string{}
	}
	if summary.Suggested == nil {
		summary.Suggested = []models.SuggestedSettlement{}
	}
	if summary.Pending == nil {
		summary.Pending = []models.SettlementRecord{}
	}
	if summary.Settled == nil {
		summary.Settled = []models.SettlementRecord{}
	}

	return summary
}
