package repository

import (
	"context"

	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/domain"
)

// HotelRepository defines the interface for hotel data access
type HotelRepository interface {
	// Create inserts a new hotel
	Create(ctx context.Context, hotel *domain.Hotel) error
	// GetByID retrieves a hotel by ID, nil when absent
	GetByID(ctx context.Context, id string) (*domain.Hotel, error)
	// List returns all hotels ordered by name
	List(ctx context.Context) ([]*domain.Hotel, error)
	// Count returns the number of hotels
	Count(ctx context.Context) (int, error)
}

// RoomRepository defines the interface for room data access
type RoomRepository interface {
	// Create inserts a new room
	Create(ctx context.Context, room *domain.Room) error
	// CreateBatch inserts multiple rooms at once
	CreateBatch(ctx context.Context, rooms []*domain.Room) error
	// GetByID retrieves a room by ID, nil when absent
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	// ListAvailable returns rooms with available = true ordered by ID
	ListAvailable(ctx context.Context) ([]*domain.Room, error)
	// Count returns the number of rooms
	Count(ctx context.Context) (int, error)
}

// LedgerRepository runs room ledger mutations inside a single transaction
type LedgerRepository interface {
	// WithinTx commits when fn returns nil and rolls back otherwise
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx is the set of primitives available inside a ledger transaction
type LedgerTx interface {
	// InsertRequest stores the record and reports false if its requestId was already seen
	InsertRequest(ctx context.Context, record *domain.IdempotencyRecord) (bool, error)
	// FindRequestForUpdate locks the record for requestID, nil when absent
	FindRequestForUpdate(ctx context.Context, requestID string) (*domain.IdempotencyRecord, error)
	// DeleteRequest removes the record for requestID
	DeleteRequest(ctx context.Context, requestID string) error
	// GetRoomForUpdate locks the room row, nil when absent
	GetRoomForUpdate(ctx context.Context, roomID string) (*domain.Room, error)
	// UpdateTimesBooked writes the room's counter
	UpdateTimesBooked(ctx context.Context, roomID string, timesBooked int) error
}
