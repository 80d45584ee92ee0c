package domain

import "time"

// BookingEventType is the kind of lifecycle event published for a booking
type BookingEventType string

const (
	BookingEventConfirmed BookingEventType = "booking.confirmed"
	BookingEventCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent is the payload published after a booking state change is persisted
type BookingEvent struct {
	EventID    string           `json:"event_id"`
	EventType  BookingEventType `json:"event_type"`
	OccurredAt time.Time        `json:"occurred_at"`
	BookingID  string           `json:"booking_id"`
	RequestID  string           `json:"request_id"`
	UserID     string           `json:"user_id"`
	RoomID     string           `json:"room_id"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Status     BookingStatus    `json:"status"`
	Reason     string           `json:"reason,omitempty"`
}

// NewBookingEvent builds an event from the booking's current state
func NewBookingEvent(eventType BookingEventType, booking *Booking, eventID, reason string) *BookingEvent {
	return &BookingEvent{
		EventID:    eventID,
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		BookingID:  booking.ID,
		RequestID:  booking.RequestID,
		UserID:     booking.UserID,
		RoomID:     booking.RoomID,
		StartDate:  booking.StartDate.Format(DateLayout),
		EndDate:    booking.EndDate.Format(DateLayout),
		Status:     booking.Status,
		Reason:     reason,
	}
}

// Key partitions events by room so a room's history stays ordered
func (e *BookingEvent) Key() string {
	return e.RoomID
}
