package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colin-rod/tripthreads/internal/models"
	"github.com/colin-rod/tripthreads/internal/storage"
	"github.com/colin-rod/tripthreads/internal/storage/sqlite"
)

// denyUsers is an AccessChecker that revokes access for specific users.
type denyUsers map[string]bool

func (d denyUsers) HasTripAccess(_ context.Context, _, userID string) (bool, error) {
	return !d[userID], nil
}

func newTestService(t *testing.T, access AccessChecker) *SettlementService {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewSettlementService(store, access)
}

func tripExpenses() []models.Expense {
	return []models.Expense{
		{
			ID: "e1", TripID: "trip-1", Amount: 9000, Currency: "EUR", PaidBy: "alice",
			Participants: []models.ExpenseParticipant{
				{UserID: "alice", Name: "Alice", ShareAmount: 3000},
				{UserID: "bob", Name: "Bob", ShareAmount: 3000},
				{UserID: "charlie", Name: "Charlie", ShareAmount: 3000},
			},
		},
	}
}

func TestComputeSummaryMergesStoredHistory(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	record := &models.SettlementRecord{
		TripID:     "trip-1",
		FromUserID: "bob",
		ToUserID:   "alice",
		Amount:     3000,
		Currency:   "EUR",
		CreatedBy:  "bob",
	}
	require.NoError(t, svc.RecordSettlement(ctx, record))
	_, err := svc.Settle(ctx, record.ID, "alice", "")
	require.NoError(t, err)

	summary, err := svc.ComputeSummary(ctx, "EUR", tripExpenses(), "trip-1", nil)
	require.NoError(t, err)

	require.Len(t, summary.Settled, 1)
	assert.Empty(t, summary.Pending)

	// Bob settled up, so only Charlie still owes Alice.
	require.Len(t, summary.Suggested, 1)
	assert.Equal(t, "charlie", summary.Suggested[0].FromUserID)
	assert.Equal(t, "alice", summary.Suggested[0].ToUserID)
	assert.Equal(t, models.MinorUnits(3000), summary.Suggested[0].Amount)
}

func TestComputeSummaryWithoutTrip(t *testing.T) {
	svc := newTestService(t, nil)

	summary, err := svc.ComputeSummary(context.Background(), "EUR", tripExpenses(), "", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalExpenses)
	assert.Len(t, summary.Suggested, 2)
}

func TestComputeSummaryRejectsBadCurrency(t *testing.T) {
	svc := newTestService(t, nil)

	for _, code := range []string{"", "EU", "EURO", "eur", "E1R"} {
		_, err := svc.ComputeSummary(context.Background(), code, nil, "", nil)
		assert.ErrorIs(t, err, ErrInvalidCurrency, "code %q", code)
	}
}

func TestRecordSettlementValidation(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		record models.SettlementRecord
	}{
		{"missing trip", models.SettlementRecord{FromUserID: "a", ToUserID: "b", Amount: 1, Currency: "EUR"}},
		{"missing parties", models.SettlementRecord{TripID: "t", Amount: 1, Currency: "EUR"}},
		{"self transfer", models.SettlementRecord{TripID: "t", FromUserID: "a", ToUserID: "a", Amount: 1, Currency: "EUR"}},
		{"zero amount", models.SettlementRecord{TripID: "t", FromUserID: "a", ToUserID: "b", Amount: 0, Currency: "EUR"}},
		{"negative amount", models.SettlementRecord{TripID: "t", FromUserID: "a", ToUserID: "b", Amount: -5, Currency: "EUR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := tt.record
			err := svc.RecordSettlement(ctx, &record)
			assert.Error(t, err)
		})
	}
}

func TestSettleDeniedWhenAccessRevoked(t *testing.T) {
	svc := newTestService(t, denyUsers{"bob": true})
	ctx := context.Background()

	record := &models.SettlementRecord{
		TripID:     "trip-1",
		FromUserID: "bob",
		ToUserID:   "alice",
		Amount:     3000,
		Currency:   "EUR",
		CreatedBy:  "bob",
	}
	require.NoError(t, svc.RecordSettlement(ctx, record))

	_, err := svc.Settle(ctx, record.ID, "alice", "")
	require.ErrorIs(t, err, ErrAccessRevoked)

	// Rejected operation must not have touched the record.
	records, err := svc.ListSettlements(ctx, "trip-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.SettlementPending, records[0].Status)
	assert.Empty(t, records[0].SettledBy)
}

func TestSettleTwiceRejectedOnce(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	record := &models.SettlementRecord{
		TripID:     "trip-1",
		FromUserID: "bob",
		ToUserID:   "alice",
		Amount:     3000,
		Currency:   "EUR",
		CreatedBy:  "bob",
	}
	require.NoError(t, svc.RecordSettlement(ctx, record))

	settled, err := svc.Settle(ctx, record.ID, "alice", "venmo")
	require.NoError(t, err)
	assert.Equal(t, models.SettlementSettled, settled.Status)

	_, err = svc.Settle(ctx, record.ID, "bob", "again")
	assert.ErrorIs(t, err, storage.ErrAlreadySettled)
}
