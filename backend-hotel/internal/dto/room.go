package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/domain"
)

// DateLayout is the wire format of stay dates
const DateLayout = "2006-01-02"

// CreateRoomRequest represents the request to create a room
type CreateRoomRequest struct {
	HotelID   string `json:"hotelId"`
	Number    string `json:"number"`
	Available *bool  `json:"available,omitempty"`
}

// Validate validates the create room request
func (r *CreateRoomRequest) Validate() (bool, string) {
	if _, err := uuid.Parse(r.HotelID); err != nil {
		return false, "hotelId must be a valid UUID"
	}
	if r.Number == "" {
		return false, "number is required"
	}
	return true, ""
}

// IsAvailable returns the requested availability, true when omitted
func (r *CreateRoomRequest) IsAvailable() bool {
	return r.Available == nil || *r.Available
}

// ConfirmAvailabilityRequest is sent by the booking saga for each confirm attempt
type ConfirmAvailabilityRequest struct {
	RequestID string `json:"requestId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Validate parses the request into a DateRange
func (r *ConfirmAvailabilityRequest) Validate() (domain.DateRange, bool, string) {
	var stay domain.DateRange
	if _, err := uuid.Parse(r.RequestID); err != nil {
		return stay, false, "requestId must be a valid UUID"
	}
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return stay, false, "startDate must be YYYY-MM-DD"
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return stay, false, "endDate must be YYYY-MM-DD"
	}
	stay = domain.DateRange{Start: start, End: end}
	if !stay.Valid() {
		return stay, false, "startDate must not be after endDate"
	}
	return stay, true, ""
}

// RoomResponse is the public room representation
type RoomResponse struct {
	ID          string `json:"id"`
	HotelID     string `json:"hotelId"`
	Number      string `json:"number"`
	Available   bool   `json:"available"`
	TimesBooked int    `json:"timesBooked"`
}

// ToRoomResponse converts a domain room
func ToRoomResponse(room *domain.Room) *RoomResponse {
	return &RoomResponse{
		ID:          room.ID,
		HotelID:     room.HotelID,
		Number:      room.Number,
		Available:   room.Available,
		TimesBooked: room.TimesBooked,
	}
}

// ToRoomResponses converts a slice of domain rooms, never returning nil
func ToRoomResponses(rooms []*domain.Room) []*RoomResponse {
	out := make([]*RoomResponse, len(rooms))
	for i, room := range rooms {
		out[i] = ToRoomResponse(room)
	}
	return out
}
