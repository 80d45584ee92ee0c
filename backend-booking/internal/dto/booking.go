package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/prohmpiriya/hotel-booking-saga/backend-booking/internal/domain"
)

// CreateBookingRequest represents the request to book a room
type CreateBookingRequest struct {
	RoomID     *string `json:"roomId,omitempty"`
	AutoSelect bool    `json:"autoSelect"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
}

// ToBookingRequest parses the wire format. Missing dates come back as zero
// times and are rejected by the saga; malformed values are rejected here.
func (r *CreateBookingRequest) ToBookingRequest() (*domain.BookingRequest, bool, string) {
	req := &domain.BookingRequest{AutoSelect: r.AutoSelect}

	if r.RoomID != nil && *r.RoomID != "" {
		if _, err := uuid.Parse(*r.RoomID); err != nil {
			return nil, false, "roomId must be a valid UUID"
		}
		req.RoomID = *r.RoomID
	}

	var err error
	if r.StartDate != "" {
		if req.StartDate, err = time.Parse(domain.DateLayout, r.StartDate); err != nil {
			return nil, false, "startDate must be YYYY-MM-DD"
		}
	}
	if r.EndDate != "" {
		if req.EndDate, err = time.Parse(domain.DateLayout, r.EndDate); err != nil {
			return nil, false, "endDate must be YYYY-MM-DD"
		}
	}
	return req, true, ""
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	RoomID    string    `json:"roomId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToBookingResponse converts a domain booking
func ToBookingResponse(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		Username:  b.Username,
		RoomID:    b.RoomID,
		StartDate: b.StartDate.Format(domain.DateLayout),
		EndDate:   b.EndDate.Format(domain.DateLayout),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

// ToBookingResponses converts a list, never returning nil
func ToBookingResponses(bookings []*domain.Booking) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, ToBookingResponse(b))
	}
	return out
}
