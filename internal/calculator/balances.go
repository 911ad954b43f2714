package calculator

import "github.com/colin-rod/tripthreads/internal/models"

// ComputeBalances folds expenses and settled settlement records into one net
// balance per participant, in base-currency minor units.
//
// For each includable expense the payer is credited the full normalized
// amount and every participant is debited their proportionally rescaled
// share. Expenses that cannot be normalized (foreign currency, no rate) are
// skipped and their ids returned so the caller can prompt for a manual rate.
//
// Settled settlement records are applied as completed transfers: the payer
// (FromUserID) is credited, the receiver (ToUserID) is debited. This is how
// a confirmed payment removes a debt from future suggestions — the history
// is netted directly into the balances rather than rewriting any expense.
// Pending records are ignored here; they surface separately in the Summary.
//
// Participants with no involvement at all get no entry. Output order is the
// order each participant was first encountered, which downstream tie-breaking
// relies on, but callers should not depend on it.
//
// Conservation: for a fixed set of included expenses the balances sum to
// zero within one minor unit per participant (share rounding drift).
func ComputeBalances(expenses []models.Expense, settled []models.SettlementRecord, baseCurrency string) ([]models.UserBalance, []string) {
	type entry struct {
		name    string
		balance models.MinorUnits
	}

	entries := make(map[string]*entry)
	var order []string
	touch := func(userID, name string) *entry {
		e, ok := entries[userID]
		if !ok {
			e = &entry{}
			entries[userID] = e
			order = append(order, userID)
		}
		if e.name == "" && name != "" {
			e.name = name
		}
		return e
	}

	var excludedIDs []string

	for _, expense := range expenses {
		normalized := Normalize(expense, baseCurrency)
		if normalized.Excluded {
			// Collected even when the payer is missing, so the UI can
			// still prompt for a manual rate on the bad record.
			excludedIDs = append(excludedIDs, expense.ID)
			continue
		}

		// An expense without a payer cannot move money around.
		if expense.PaidBy == "" {
			continue
		}

		touch(expense.PaidBy, "").balance += normalized.Amount

		for _, p := range expense.Participants {
			share := rescaleShare(normalized.Amount, p.ShareAmount, expense.Amount)
			touch(p.UserID, p.Name).balance -= share
		}
	}

	for _, record := range settled {
		if record.Status != models.SettlementSettled {
			continue
		}
		touch(record.FromUserID, "").balance += record.Amount
		touch(record.ToUserID, "").balance -= record.Amount
	}

	balances := make([]models.UserBalance, 0, len(order))
	for _, userID := range order {
		e := entries[userID]
		name := e.name
		if name == "" {
			name = userID
		}
		balances = append(balances, models.UserBalance{
			UserID:     userID,
			Name:       name,
			NetBalance: e.balance,
			Currency:   baseCurrency,
		})
	}

	return balances, excludedIDs
}
