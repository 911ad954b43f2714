// Package storage provides abstractions for settlement record persistence.
package storage

import (
	"context"
	"errors"

	"github.com/colin-rod/tripthreads/internal/models"
)

var (
	// ErrNotFound is returned when no settlement record has the given ID.
	ErrNotFound = errors.New("settlement not found")

	// ErrAlreadySettled is returned when a settle transition targets a
	// record that is no longer pending. The record is left untouched.
	ErrAlreadySettled = errors.New("settlement already settled")

	// ErrSettledImmutable is returned when a mutation other than the settle
	// transition targets a settled record.
	ErrSettledImmutable = errors.New("settled settlement is immutable")
)

// Store defines the interface for settlement record storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateSettlement persists a new pending settlement record.
	// The record's ID and CreatedAt fields are populated when empty.
	CreateSettlement(ctx context.Context, record *models.SettlementRecord) error

	// GetSettlement retrieves a settlement record by its ID.
	// Returns ErrNotFound if no record exists.
	GetSettlement(ctx context.Context, id string) (*models.SettlementRecord, error)

	// ListSettlementsByTrip retrieves all settlement records for a trip,
	// newest first.
	ListSettlementsByTrip(ctx context.Context, tripID string) ([]*models.SettlementRecord, error)

	// SettleSettlement transitions a record from pending to settled as a
	// single atomic conditional update. Two concurrent calls on the same
	// record cannot both succeed; the loser gets ErrAlreadySettled and the
	// record keeps its state. Returns ErrNotFound for unknown IDs.
	SettleSettlement(ctx context.Context, id, settledBy, note string) (*models.SettlementRecord, error)

	// DeleteSettlement removes a pending record. Settled records are
	// immutable; deleting one returns ErrSettledImmutable.
	DeleteSettlement(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
