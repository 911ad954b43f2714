package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/colin-rod/tripthreads/internal/models"
	"github.com/colin-rod/tripthreads/internal/storage"
)

// CreateSettlement persists a new settlement record to the database.
// New records always start pending; the settle transition is the only way
// to reach the settled status.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, record *models.SettlementRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt == 0 {
		record.CreatedAt = time.Now().Unix()
	}
	record.Status = models.SettlementPending

	var note interface{}
	if record.Note != "" {
		note = record.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, trip_id, from_user_id, to_user_id, amount, currency, status, note, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.TripID, record.FromUserID, record.ToUserID,
		int64(record.Amount), record.Currency, string(record.Status), note,
		record.CreatedAt, record.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// GetSettlement retrieves a settlement record by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, id string) (*models.SettlementRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, from_user_id, to_user_id, amount, currency, status, note, created_at, created_by, settled_at, settled_by
		 FROM settlements WHERE id = ?`,
		id,
	)

	record, err := scanSettlement(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return record, nil
}

// ListSettlementsByTrip retrieves all settlement records for a trip.
func (s *SQLiteStore) ListSettlementsByTrip(ctx context.Context, tripID string) ([]*models.SettlementRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, from_user_id, to_user_id, amount, currency, status, note, created_at, created_by, settled_at, settled_by
		 FROM settlements WHERE trip_id = ? ORDER BY created_at DESC`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by trip: %w", err)
	}
	defer rows.Close()

	var records []*models.SettlementRecord
	for rows.Next() {
		record, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return records, nil
}

// SettleSettlement transitions a record from pending to settled.
//
// The transition is a single conditional UPDATE guarded by the current
// status, so two concurrent calls on the same record cannot both succeed:
// whichever commits first wins and the other sees zero rows affected.
func (s *SQLiteStore) SettleSettlement(ctx context.Context, id, settledBy, note string) (*models.SettlementRecord, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE settlements
		 SET status = ?, settled_by = ?, settled_at = ?,
		     note = CASE WHEN ? != '' THEN ? ELSE note END
		 WHERE id = ? AND status = ?`,
		string(models.SettlementSettled), settledBy, time.Now().Unix(),
		note, note,
		id, string(models.SettlementPending),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to settle settlement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		// Either the record doesn't exist or it was already settled.
		if _, err := s.GetSettlement(ctx, id); err != nil {
			return nil, err
		}
		return nil, storage.ErrAlreadySettled
	}

	return s.GetSettlement(ctx, id)
}

// DeleteSettlement removes a pending settlement record.
func (s *SQLiteStore) DeleteSettlement(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM settlements WHERE id = ? AND status = ?",
		id, string(models.SettlementPending),
	)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		if _, err := s.GetSettlement(ctx, id); err != nil {
			return err
		}
		return storage.ErrSettledImmutable
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSettlement(row scanner) (*models.SettlementRecord, error) {
	record := &models.SettlementRecord{}
	var (
		amount    int64
		status    string
		note      sql.NullString
		settledAt sql.NullInt64
		settledBy sql.NullString
	)

	err := row.Scan(&record.ID, &record.TripID, &record.FromUserID, &record.ToUserID,
		&amount, &record.Currency, &status, &note, &record.CreatedAt, &record.CreatedBy,
		&settledAt, &settledBy)
	if err != nil {
		return nil, err
	}

	record.Amount = models.MinorUnits(amount)
	record.Status = models.SettlementStatus(status)
	if note.Valid {
		record.Note = note.String
	}
	if settledAt.Valid {
		record.SettledAt = settledAt.Int64
	}
	if settledBy.Valid {
		record.SettledBy = settledBy.String
	}

	return record, nil
}
