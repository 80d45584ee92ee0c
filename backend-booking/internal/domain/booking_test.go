package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking() *Booking {
	user := &User{ID: "u-1", Username: "alex.petrov"}
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return NewPendingBooking(user, "room-1", start, start.AddDate(0, 0, 2), time.Now())
}

func TestNewPendingBooking(t *testing.T) {
	b := newTestBooking()
	other := newTestBooking()

	assert.Equal(t, BookingStatusPending, b.Status)
	assert.NotEmpty(t, b.ID)
	assert.NotEmpty(t, b.RequestID)
	assert.NotEqual(t, b.ID, b.RequestID)
	assert.NotEqual(t, b.RequestID, other.RequestID)
	assert.Equal(t, "alex.petrov", b.Username)
}

func TestBooking_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		apply   func(b *Booking) error
		want    BookingStatus
		wantErr error
	}{
		{"confirm pending", BookingStatusPending, (*Booking).Confirm, BookingStatusConfirmed, nil},
		{"reject pending", BookingStatusPending, (*Booking).Reject, BookingStatusCancelled, nil},
		{"cancel confirmed", BookingStatusConfirmed, (*Booking).Cancel, BookingStatusCancelled, nil},
		{"cancel pending", BookingStatusPending, (*Booking).Cancel, BookingStatusPending, ErrInvalidBookingState},
		{"cancel cancelled", BookingStatusCancelled, (*Booking).Cancel, BookingStatusCancelled, ErrInvalidBookingState},
		{"confirm cancelled", BookingStatusCancelled, (*Booking).Confirm, BookingStatusCancelled, ErrIllegalTransition},
		{"confirm confirmed", BookingStatusConfirmed, (*Booking).Confirm, BookingStatusConfirmed, ErrIllegalTransition},
		{"reject confirmed", BookingStatusConfirmed, (*Booking).Reject, BookingStatusConfirmed, ErrIllegalTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBooking()
			b.Status = tt.from
			err := tt.apply(b)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, b.Status)
		})
	}
}

func TestValidateStay(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateStay(day, day))
	assert.NoError(t, ValidateStay(day, day.AddDate(0, 0, 1)))
	assert.ErrorIs(t, ValidateStay(day.AddDate(0, 0, 1), day), ErrInvalidInput)
	assert.ErrorIs(t, ValidateStay(time.Time{}, day), ErrInvalidInput)
	assert.ErrorIs(t, ValidateStay(day, time.Time{}), ErrInvalidInput)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)

	role, err = ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("root")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestNewBookingEvent(t *testing.T) {
	b := newTestBooking()
	require.NoError(t, b.Confirm())

	event := NewBookingEvent(BookingEventConfirmed, b, "evt-1", "")
	assert.Equal(t, "2025-06-01", event.StartDate)
	assert.Equal(t, "2025-06-03", event.EndDate)
	assert.Equal(t, BookingStatusConfirmed, event.Status)
	assert.Equal(t, "room-1", event.Key())
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrNoRoomsAvailable))
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsForbiddenError(ErrAccessDenied))
	assert.True(t, IsConflictError(ErrInvalidBookingState))
	assert.True(t, IsConflictError(ErrUserAlreadyExists))
	assert.True(t, IsValidationError(ErrInvalidInput))
	assert.False(t, IsConflictError(ErrAccessDenied))
}
