package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colin-rod/tripthreads/internal/auth"
	"github.com/colin-rod/tripthreads/internal/models"
	"github.com/colin-rod/tripthreads/internal/service"
	"github.com/colin-rod/tripthreads/internal/storage/sqlite"
)

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	svc := service.NewSettlementService(store, nil)

	server := httptest.NewServer(NewRouter(svc, jwtManager))
	t.Cleanup(server.Close)

	token, err := jwtManager.Generate("alice")
	require.NoError(t, err)

	return server, token
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestComputeRequiresAuth(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/settlements/compute", "", map[string]string{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthzIsPublic(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestComputeSettlements(t *testing.T) {
	server, token := setupTestServer(t)

	body := map[string]interface{}{
		"baseCurrency": "EUR",
		"expenses": []models.Expense{
			{
				ID: "e1", Amount: 9000, Currency: "EUR", PaidBy: "alice",
				Participants: []models.ExpenseParticipant{
					{UserID: "alice", Name: "Alice", ShareAmount: 3000},
					{UserID: "bob", Name: "Bob", ShareAmount: 3000},
					{UserID: "charlie", Name: "Charlie", ShareAmount: 3000},
				},
			},
			{ID: "e2", Amount: 6000, Currency: "USD", PaidBy: "bob",
				Participants: []models.ExpenseParticipant{
					{UserID: "bob", ShareAmount: 6000},
				},
			},
		},
	}

	resp := doJSON(t, http.MethodPost, server.URL+"/api/settlements/compute", token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary models.Summary
	decodeBody(t, resp, &summary)

	assert.Equal(t, "EUR", summary.BaseCurrency)
	assert.Equal(t, 2, summary.TotalExpenses)
	assert.Equal(t, []string{"e2"}, summary.ExcludedExpenseIDs)
	require.Len(t, summary.Suggested, 2)
	for _, s := range summary.Suggested {
		assert.Equal(t, "alice", s.ToUserID)
		assert.Equal(t, models.MinorUnits(3000), s.Amount)
	}
}

func TestComputeRejectsBadCurrency(t *testing.T) {
	server, token := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/settlements/compute", token,
		map[string]interface{}{"baseCurrency": "EURO"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSettlementLifecycle(t *testing.T) {
	server, token := setupTestServer(t)

	// Record a pending settlement.
	resp := doJSON(t, http.MethodPost, server.URL+"/api/settlements", token, map[string]interface{}{
		"tripId":     "trip-1",
		"fromUserId": "bob",
		"toUserId":   "alice",
		"amount":     3000,
		"currency":   "EUR",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var record models.SettlementRecord
	decodeBody(t, resp, &record)
	require.NotEmpty(t, record.ID)
	assert.Equal(t, models.SettlementPending, record.Status)
	assert.Equal(t, "alice", record.CreatedBy, "actor comes from the token")

	// Settle it.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/settlements/"+record.ID+"/settle", token,
		map[string]string{"note": "paid in cash"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var settled models.SettlementRecord
	decodeBody(t, resp, &settled)
	assert.Equal(t, models.SettlementSettled, settled.Status)
	assert.Equal(t, "alice", settled.SettledBy)
	assert.Equal(t, "paid in cash", settled.Note)

	// Settling again conflicts.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/settlements/"+record.ID+"/settle", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Deleting a settled record conflicts too.
	resp = doJSON(t, http.MethodDelete, server.URL+"/api/settlements/"+record.ID, token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The record is listed for its trip.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/settlements?trip_id=trip-1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var records []models.SettlementRecord
	decodeBody(t, resp, &records)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
}

func TestSettleUnknownRecord(t *testing.T) {
	server, token := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/settlements/missing/settle", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecordSettlementValidation(t *testing.T) {
	server, token := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/settlements", token, map[string]interface{}{
		"tripId":     "trip-1",
		"fromUserId": "bob",
		"toUserId":   "bob",
		"amount":     3000,
		"currency":   "EUR",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
