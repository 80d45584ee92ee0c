package service

import (
	"context"

	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/domain"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/dto"
)

// BookingService drives bookings through the confirmation saga
type BookingService interface {
	// Create persists a PENDING booking, confirms it with the room ledger and
	// returns it CONFIRMED, or CANCELLED when confirmation never succeeded.
	Create(ctx context.Context, username string, req *domain.BookingRequest) (*domain.Booking, error)

	// Cancel cancels a CONFIRMED booking owned by username and releases its room
	Cancel(ctx context.Context, username, bookingID string) error

	// FindAll returns the user's bookings, newest first
	FindAll(ctx context.Context, username string) ([]*domain.Booking, error)

	// FindByID returns a booking owned by username
	FindByID(ctx context.Context, username, bookingID string) (*domain.Booking, error)
}

// UserService handles registration, login and user administration
type UserService interface {
	Register(ctx context.Context, req *dto.AuthRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.AuthRequest) (*dto.TokenResponse, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, req *dto.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
