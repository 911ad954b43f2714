// Package api exposes the settlement service over HTTP with JSON bodies.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/colin-rod/tripthreads/internal/models"
	"github.com/colin-rod/tripthreads/internal/service"
	"github.com/colin-rod/tripthreads/internal/storage"
)

// Handler holds the dependencies for the HTTP handlers.
type Handler struct {
	svc *service.SettlementService
}

// NewHandler creates a Handler backed by the given settlement service.
func NewHandler(svc *service.SettlementService) *Handler {
	return &Handler{svc: svc}
}

type computeRequest struct {
	BaseCurrency string                    `json:"baseCurrency"`
	TripID       string                    `json:"tripId,omitempty"`
	Expenses     []models.Expense          `json:"expenses"`
	Settlements  []models.SettlementRecord `json:"settlements,omitempty"`
}

// ComputeSettlements handles POST /api/settlements/compute.
func (h *Handler) ComputeSettlements(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.svc.ComputeSummary(r.Context(), req.BaseCurrency, req.Expenses, req.TripID, req.Settlements)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCurrency) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

type recordRequest struct {
	TripID     string            `json:"tripId"`
	FromUserID string            `json:"fromUserId"`
	ToUserID   string            `json:"toUserId"`
	Amount     models.MinorUnits `json:"amount"`
	Currency   string            `json:"currency"`
	Note       string            `json:"note,omitempty"`
}

// RecordSettlement handles POST /api/settlements.
func (h *Handler) RecordSettlement(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record := &models.SettlementRecord{
		TripID:     req.TripID,
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Note:       req.Note,
		CreatedBy:  GetUserID(r.Context()),
	}

	if err := h.svc.RecordSettlement(r.Context(), record); err != nil {
		if errors.Is(err, service.ErrInvalidRecord) || errors.Is(err, service.ErrInvalidCurrency) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

type settleRequest struct {
	Note string `json:"note,omitempty"`
}

// SettleSettlement handles POST /api/settlements/{id}/settle.
func (h *Handler) SettleSettlement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req settleRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	record, err := h.svc.Settle(r.Context(), id, GetUserID(r.Context()), req.Note)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrAlreadySettled):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAccessRevoked):
		writeError(w, http.StatusForbidden, err.Error())
	case err != nil:
		writeInternalError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, record)
	}
}

// ListSettlements handles GET /api/settlements?trip_id=...
func (h *Handler) ListSettlements(w http.ResponseWriter, r *http.Request) {
	tripID := r.URL.Query().Get("trip_id")
	if tripID == "" {
		writeError(w, http.StatusBadRequest, "trip_id query parameter required")
		return
	}

	records, err := h.svc.ListSettlements(r.Context(), tripID)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	if records == nil {
		records = []*models.SettlementRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

// DeleteSettlement handles DELETE /api/settlements/{id}.
func (h *Handler) DeleteSettlement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.svc.DeleteSettlement(r.Context(), id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrSettledImmutable):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeInternalError(w, r, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// Healthz handles GET /healthz.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("Request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}
