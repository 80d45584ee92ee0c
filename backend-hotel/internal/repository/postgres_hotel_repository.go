package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/domain"
)

// PostgresHotelRepository implements HotelRepository using PostgreSQL
type PostgresHotelRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresHotelRepository creates a new PostgresHotelRepository
func NewPostgresHotelRepository(pool *pgxpool.Pool) *PostgresHotelRepository {
	return &PostgresHotelRepository{pool: pool}
}

// Create inserts a new hotel
func (r *PostgresHotelRepository) Create(ctx context.Context, hotel *domain.Hotel) error {
	query := `
		INSERT INTO hotels (id, name, address, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, hotel.ID, hotel.Name, hotel.Address, hotel.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert hotel: %w", err)
	}
	return nil
}

// GetByID retrieves a hotel by ID
func (r *PostgresHotelRepository) GetByID(ctx context.Context, id string) (*domain.Hotel, error) {
	query := `
		SELECT id, name, address, created_at
		FROM hotels
		WHERE id = $1
	`
	hotel := &domain.Hotel{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&hotel.ID, &hotel.Name, &hotel.Address, &hotel.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return hotel, nil
}

// List returns all hotels
func (r *PostgresHotelRepository) List(ctx context.Context) ([]*domain.Hotel, error) {
	query := `
		SELECT id, name, address, created_at
		FROM hotels
		ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []*domain.Hotel
	for rows.Next() {
		hotel := &domain.Hotel{}
		if err := rows.Scan(&hotel.ID, &hotel.Name, &hotel.Address, &hotel.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, hotel)
	}
	return hotels, rows.Err()
}

// Count returns the number of hotels
func (r *PostgresHotelRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM hotels`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count hotels: %w", err)
	}
	return count, nil
}
