// Package service orchestrates the settlement engine and the settlement
// record store behind one API-facing surface.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/colin-rod/tripthreads/internal/calculator"
	"github.com/colin-rod/tripthreads/internal/metrics"
	"github.com/colin-rod/tripthreads/internal/models"
	"github.com/colin-rod/tripthreads/internal/storage"
)

var (
	// ErrAccessRevoked is returned when a settle is attempted on a record
	// whose debtor or creditor no longer has access to the trip.
	ErrAccessRevoked = errors.New("participant no longer has trip access")

	// ErrInvalidRecord is returned for settlement records that fail basic
	// shape validation before reaching storage.
	ErrInvalidRecord = errors.New("invalid settlement record")

	// ErrInvalidCurrency is returned when the base currency is not a
	// three-letter ISO 4217 code.
	ErrInvalidCurrency = errors.New("base currency must be a 3-letter ISO 4217 code")
)

// AccessChecker answers whether a user currently has access to a trip.
// Authorization policy lives in the trip application; the settlement service
// only consults it before the settle transition.
type AccessChecker interface {
	HasTripAccess(ctx context.Context, tripID, userID string) (bool, error)
}

// AllowAll is the default AccessChecker for deployments where the caller
// has already authorized the request end to end.
type AllowAll struct{}

// HasTripAccess always grants access.
func (AllowAll) HasTripAccess(context.Context, string, string) (bool, error) { return true, nil }

// SettlementService computes settlement summaries and manages the lifecycle
// of persisted settlement records.
type SettlementService struct {
	store  storage.Store
	access AccessChecker
}

// NewSettlementService creates a SettlementService. A nil access checker
// defaults to AllowAll; a nil store is allowed for pure-computation use, in
// which case history must arrive inline with each request.
func NewSettlementService(store storage.Store, access AccessChecker) *SettlementService {
	if access == nil {
		access = AllowAll{}
	}
	return &SettlementService{store: store, access: access}
}

// ComputeSummary runs the settlement pipeline over the given expenses.
//
// When tripID is set and a store is configured, the trip's recorded
// settlement history is loaded and merged in; otherwise the inline history
// is used as-is. The computation itself is pure; this method only gathers
// inputs and counts metrics.
func (s *SettlementService) ComputeSummary(ctx context.Context, baseCurrency string, expenses []models.Expense, tripID string, history []models.SettlementRecord) (models.Summary, error) {
	if !validCurrencyCode(baseCurrency) {
		return models.Summary{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, baseCurrency)
	}

	if tripID != "" && s.store != nil {
		records, err := s.store.ListSettlementsByTrip(ctx, tripID)
		if err != nil {
			return models.Summary{}, fmt.Errorf("failed to load settlement history: %w", err)
		}
		history = history[:len(history):len(history)]
		for _, r := range records {
			history = append(history, *r)
		}
	}

	summary := calculator.Summarize(expenses, history, baseCurrency)

	metrics.ComputationsTotal.Inc()
	metrics.ExcludedExpenses.Add(float64(len(summary.ExcludedExpenseIDs)))
	if len(summary.ExcludedExpenseIDs) > 0 {
		slog.Debug("Expenses excluded from balances",
			"trip_id", tripID,
			"excluded_ids", summary.ExcludedExpenseIDs,
		)
	}

	return summary, nil
}

// RecordSettlement persists an accepted suggestion as a pending record.
func (s *SettlementService) RecordSettlement(ctx context.Context, record *models.SettlementRecord) error {
	if record.TripID == "" {
		return fmt.Errorf("%w: trip id required", ErrInvalidRecord)
	}
	if record.FromUserID == "" || record.ToUserID == "" {
		return fmt.Errorf("%w: from and to required", ErrInvalidRecord)
	}
	if record.FromUserID == record.ToUserID {
		return fmt.Errorf("%w: from and to must differ", ErrInvalidRecord)
	}
	if record.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRecord)
	}
	if !validCurrencyCode(record.Currency) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, record.Currency)
	}

	if err := s.store.CreateSettlement(ctx, record); err != nil {
		return err
	}

	slog.Info("Settlement recorded",
		"settlement_id", record.ID,
		"trip_id", record.TripID,
		"from", record.FromUserID,
		"to", record.ToUserID,
		"amount", int64(record.Amount),
		"currency", record.Currency,
	)
	return nil
}

// Settle confirms payment of a pending record.
//
// Both parties must still have trip access; the transition itself is the
// store's atomic conditional update, so a rejected call leaves the record
// exactly as it was.
func (s *SettlementService) Settle(ctx context.Context, id, actor, note string) (*models.SettlementRecord, error) {
	record, err := s.store.GetSettlement(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, userID := range []string{record.FromUserID, record.ToUserID} {
		ok, err := s.access.HasTripAccess(ctx, record.TripID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check trip access: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAccessRevoked, userID)
		}
	}

	settled, err := s.store.SettleSettlement(ctx, id, actor, note)
	if errors.Is(err, storage.ErrAlreadySettled) {
		metrics.SettleConflicts.Inc()
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	slog.Info("Settlement settled",
		"settlement_id", settled.ID,
		"trip_id", settled.TripID,
		"settled_by", actor,
	)
	return settled, nil
}

// ListSettlements returns a trip's settlement records, newest first.
func (s *SettlementService) ListSettlements(ctx context.Context, tripID string) ([]*models.SettlementRecord, error) {
	return s.store.ListSettlementsByTrip(ctx, tripID)
}

// DeleteSettlement removes a pending record. Settled records are immutable.
func (s *SettlementService) DeleteSettlement(ctx context.Context, id string) error {
	if err := s.store.DeleteSettlement(ctx, id); err != nil {
		return err
	}
	slog.Info("Settlement deleted", "settlement_id", id)
	return nil
}

func validCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
