package service

import (
	"context"

	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/dto"
)

// RoomService is the room ledger: room inventory plus idempotent confirm/release
type RoomService interface {
	// CreateRoom adds a room to an existing hotel
	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*domain.Room, error)
	// ListAvailable returns the available rooms ordered by ID
	ListAvailable(ctx context.Context) ([]*domain.Room, error)
	// ListRecommended returns the available rooms in recommendation order
	ListRecommended(ctx context.Context) ([]*domain.Room, error)
	// Confirm applies the booking side effect at most once per requestID
	Confirm(ctx context.Context, roomID, requestID string, stay domain.DateRange) error
	// Release undoes a confirm for requestID, no-op when nothing was confirmed
	Release(ctx context.Context, roomID, requestID string) error
}

// HotelService defines the interface for hotel business logic
type HotelService interface {
	// CreateHotel creates a new hotel
	CreateHotel(ctx context.Context, req *dto.CreateHotelRequest) (*domain.Hotel, error)
	// ListHotels returns all hotels
	ListHotels(ctx context.Context) ([]*domain.Hotel, error)
}
