package models

// SettlementStatus is the lifecycle state of a settlement record.
type SettlementStatus string

const (
	// SettlementPending means the transfer was accepted but not yet paid.
	SettlementPending SettlementStatus = "pending"

	// SettlementSettled means payment was confirmed. The transition from
	// pending is one-directional; a settled record never changes again.
	SettlementSettled SettlementStatus = "settled"
)

// SettlementRecord represents a persisted transfer between trip members.
//
// A record is created when a user accepts a suggested settlement and moves
// to settled exactly once, when a user confirms the payment happened.
type SettlementRecord struct {
	// ID is the unique identifier for the record (UUID format).
	ID string `json:"id"`

	// TripID is the trip this settlement belongs to.
	TripID string `json:"tripId"`

	// FromUserID is the debtor (who pays).
	FromUserID string `json:"fromUserId"`

	// ToUserID is the creditor (who is paid).
	ToUserID string `json:"toUserId"`

	// Amount is the transfer amount in minor units of Currency.
	Amount MinorUnits `json:"amount"`

	// Currency is the ISO 4217 code, normally the trip's base currency.
	Currency string `json:"currency"`

	// Status is pending or settled.
	Status SettlementStatus `json:"status"`

	// Note is an optional free-text description.
	Note string `json:"note,omitempty"`

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64 `json:"createdAt"`

	// CreatedBy is the user who accepted the suggestion.
	CreatedBy string `json:"createdBy"`

	// SettledAt is the Unix timestamp of the settle confirmation,
	// zero while the record is pending.
	SettledAt int64 `json:"settledAt,omitempty"`

	// SettledBy is the user who confirmed the payment, empty while pending.
	SettledBy string `json:"settledBy,omitempty"`
}
