package models

// Expense represents a shared expense within a trip.
//
// Expenses are created and stored by the trip application; the settlement
// engine treats them as read-only input that has already been authorized and
// filtered for the caller.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// TripID is the trip this expense belongs to.
	TripID string `json:"tripId,omitempty"`

	// Description is a human-readable label (e.g. "Dinner at the harbor").
	Description string `json:"description,omitempty"`

	// Amount is the full expense amount in minor units of Currency.
	Amount MinorUnits `json:"amount"`

	// Currency is the ISO 4217 code the expense was paid in.
	Currency string `json:"currency"`

	// ExchangeRate converts Currency into the trip's base currency. It is
	// attached by the trip application at creation time; nil means no rate
	// was available, in which case a foreign-currency expense is excluded
	// from balance computation.
	ExchangeRate *float64 `json:"exchangeRate,omitempty"`

	// PaidBy is the participant who paid the full amount.
	PaidBy string `json:"paidBy"`

	// Participants are the people splitting this expense. The sum of their
	// share amounts is expected to equal Amount within one minor unit; that
	// invariant is enforced where expenses are created, not here.
	Participants []ExpenseParticipant `json:"participants"`

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64 `json:"createdAt,omitempty"`
}

// ExpenseParticipant is one person's share of an expense.
type ExpenseParticipant struct {
	// UserID identifies the participant.
	UserID string `json:"userId"`

	// Name is an optional display name. Balances echo it back when present.
	Name string `json:"name,omitempty"`

	// ShareAmount is this participant's share in minor units of the
	// expense's own currency (not the trip base currency).
	ShareAmount MinorUnits `json:"shareAmount"`
}
