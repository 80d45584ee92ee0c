package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/database"
	"github.com/prohmpiriya/hotel-booking-saga/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PostgresLedgerRepository implements LedgerRepository using PostgreSQL
type PostgresLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLedgerRepository creates a new PostgresLedgerRepository
func NewPostgresLedgerRepository(pool *pgxpool.Pool) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{pool: pool}
}

// WithinTx runs fn in a read-committed transaction
func (r *PostgresLedgerRepository) WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.ledger.within_tx")
	defer span.End()

	err := database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&postgresLedgerTx{tx: tx})
	})
	if err != nil {
		telemetry.SetSpanError(span, err)
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

type postgresLedgerTx struct {
	tx pgx.Tx
}

// InsertRequest relies on ON CONFLICT so a duplicate does not abort the transaction
func (t *postgresLedgerTx) InsertRequest(ctx context.Context, record *domain.IdempotencyRecord) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.ledger.insert_request")
	defer span.End()

	span.SetAttributes(
		attribute.String("request_id", record.RequestID),
		attribute.String("room_id", record.RoomID),
	)

	query := `
		INSERT INTO idempotency_requests (request_id, room_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (request_id) DO NOTHING
	`
	tag, err := t.tx.Exec(ctx, query, record.RequestID, record.RoomID, record.CreatedAt)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return false, fmt.Errorf("failed to insert idempotency record: %w", err)
	}

	inserted := tag.RowsAffected() == 1
	span.SetAttributes(attribute.Bool("inserted", inserted))
	span.SetStatus(codes.Ok, "")
	return inserted, nil
}

func (t *postgresLedgerTx) FindRequestForUpdate(ctx context.Context, requestID string) (*domain.IdempotencyRecord, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.ledger.find_request_for_update")
	defer span.End()

	span.SetAttributes(attribute.String("request_id", requestID))

	query := `
		SELECT request_id, room_id, created_at
		FROM idempotency_requests
		WHERE request_id = $1
		FOR UPDATE
	`
	record := &domain.IdempotencyRecord{}
	err := t.tx.QueryRow(ctx, query, requestID).Scan(&record.RequestID, &record.RoomID, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Ok, "not found")
			return nil, nil
		}
		telemetry.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to lock idempotency record: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return record, nil
}

func (t *postgresLedgerTx) DeleteRequest(ctx context.Context, requestID string) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.ledger.delete_request")
	defer span.End()

	span.SetAttributes(attribute.String("request_id", requestID))

	if _, err := t.tx.Exec(ctx, `DELETE FROM idempotency_requests WHERE request_id = $1`, requestID); err != nil {
		telemetry.SetSpanError(span, err)
		return fmt.Errorf("failed to delete idempotency record: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func (t *postgresLedgerTx) GetRoomForUpdate(ctx context.Context, roomID string) (*domain.Room, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.ledger.get_room_for_update")
	defer span.End()

	span.SetAttributes(attribute.String("room_id", roomID))

	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 FOR UPDATE`
	room, err := scanRoom(t.tx.QueryRow(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Ok, "not found")
			return nil, nil
		}
		telemetry.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to lock room: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return room, nil
}

func (t *postgresLedgerTx) UpdateTimesBooked(ctx context.Context, roomID string, timesBooked int) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.ledger.update_times_booked")
	defer span.End()

	span.SetAttributes(
		attribute.String("room_id", roomID),
		attribute.Int("times_booked", timesBooked),
	)

	tag, err := t.tx.Exec(ctx, `UPDATE rooms SET times_booked = $2 WHERE id = $1`, roomID, timesBooked)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return fmt.Errorf("failed to update times_booked: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "room not found")
		return domain.ErrRoomNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
