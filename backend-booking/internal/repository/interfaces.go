package repository

import (
	"context"

	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/domain"
)

// BookingRepository persists bookings
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	// Update persists the booking's current status
	Update(ctx context.Context, booking *domain.Booking) error
	// GetByID returns nil, nil when the booking does not exist
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// ListByUser returns the user's bookings, newest first
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
}

// UserRepository persists users
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// GetByUsername and GetByID return nil, nil when the user does not exist
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// Delete reports whether a row was removed
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}
