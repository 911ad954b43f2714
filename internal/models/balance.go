package models

// NormalizedExpense is an expense amount converted into the trip's base
// currency. Derived and ephemeral; never stored.
type NormalizedExpense struct {
	// ExpenseID links back to the source expense.
	ExpenseID string `json:"expenseId"`

	// Amount is the converted amount in minor units of Currency.
	// Zero when Excluded is true.
	Amount MinorUnits `json:"amount"`

	// Currency is the base currency the amount was converted into.
	Currency string `json:"currency"`

	// Excluded marks a foreign-currency expense with no usable exchange
	// rate. An excluded expense contributes nothing to balances.
	Excluded bool `json:"excluded"`
}

// UserBalance is one participant's net position in the trip's base currency.
type UserBalance struct {
	// UserID identifies the participant.
	UserID string `json:"userId"`

	// Name is the display name when one was supplied, else the user ID.
	Name string `json:"name"`

	// NetBalance is signed: positive = owed money, negative = owes money.
	NetBalance MinorUnits `json:"netBalance"`

	// Currency is the trip's base currency.
	Currency string `json:"currency"`
}

// SuggestedSettlement is a freshly computed transfer proposed to zero out
// balances. It is not persisted; accepting one creates a SettlementRecord.
type SuggestedSettlement struct {
	// FromUserID is the debtor (who should pay).
	FromUserID string `json:"fromUserId"`

	// ToUserID is the creditor (who should be paid).
	ToUserID string `json:"toUserId"`

	// Amount is always positive, in minor units of Currency.
	Amount MinorUnits `json:"amount"`

	// Currency is the trip's base currency.
	Currency string `json:"currency"`
}

// Summary is the full settlement picture returned to the caller.
type Summary struct {
	// Balances holds one net position per participant with any expense or
	// settled-settlement involvement. Order is not significant.
	Balances []UserBalance `json:"balances"`

	// ExcludedExpenseIDs lists expenses skipped for lack of an exchange
	// rate, so the UI can prompt for a manual rate.
	ExcludedExpenseIDs []string `json:"excludedExpenseIds"`

	// Suggested are freshly computed transfers that would clear Balances.
	Suggested []SuggestedSettlement `json:"suggestedSettlements"`

	// Pending are previously accepted but unpaid settlement records.
	Pending []SettlementRecord `json:"pendingSettlements"`

	// Settled are confirmed settlement records, already netted into Balances.
	Settled []SettlementRecord `json:"settledSettlements"`

	// TotalExpenses is the number of expenses considered, excluded ones included.
	TotalExpenses int `json:"totalExpenses"`

	// BaseCurrency echoes the requested base currency.
	BaseCurrency string `json:"baseCurrency"`
}
