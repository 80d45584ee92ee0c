package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// DateLayout is the wire format of stay dates
const DateLayout = "2006-01-02"

// Booking is a user's reservation of a room for an inclusive date range.
// RequestID is generated once and keys every call to the room ledger for this booking.
type Booking struct {
	ID        string        `json:"id"`
	RequestID string        `json:"request_id"`
	UserID    string        `json:"user_id"`
	Username  string        `json:"username"`
	RoomID    string        `json:"room_id"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewPendingBooking creates a booking with fresh identifiers
func NewPendingBooking(user *User, roomID string, start, end time.Time, now time.Time) *Booking {
	return &Booking{
		ID:        uuid.New().String(),
		RequestID: uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
		Status:    BookingStatusPending,
		CreatedAt: now,
	}
}

// ValidateStay checks that both dates are set and start is not after end
func ValidateStay(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || start.After(end) {
		return ErrInvalidInput
	}
	return nil
}

// Confirm moves a pending booking to CONFIRMED
func (b *Booking) Confirm() error {
	if b.Status != BookingStatusPending {
		return ErrIllegalTransition
	}
	b.Status = BookingStatusConfirmed
	return nil
}

// Reject cancels a pending booking whose room could not be confirmed
func (b *Booking) Reject() error {
	if b.Status != BookingStatusPending {
		return ErrIllegalTransition
	}
	b.Status = BookingStatusCancelled
	return nil
}

// Cancel is the user-initiated cancellation, allowed only from CONFIRMED
func (b *Booking) Cancel() error {
	if b.Status != BookingStatusConfirmed {
		return ErrInvalidBookingState
	}
	b.Status = BookingStatusCancelled
	return nil
}

// IsOwnedBy reports whether the booking belongs to username
func (b *Booking) IsOwnedBy(username string) bool {
	return b.Username == username
}

// IsTerminal reports whether no further transition is possible
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled
}

// RoomSnapshot is the hotel service's view of a room at read time
type RoomSnapshot struct {
	ID          string `json:"id"`
	HotelID     string `json:"hotelId"`
	Number      string `json:"number"`
	Available   bool   `json:"available"`
	TimesBooked int    `json:"timesBooked"`
}

// BookingRequest is a validated-by-the-saga request to book a room.
// RoomID is ignored when AutoSelect is set.
type BookingRequest struct {
	RoomID     string
	AutoSelect bool
	StartDate  time.Time
	EndDate    time.Time
}
