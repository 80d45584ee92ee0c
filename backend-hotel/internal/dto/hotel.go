package dto

import "github.com/prohmpiriya/hotel-booking-saga/backend-hotel/internal/domain"

// CreateHotelRequest represents the request to create a hotel
type CreateHotelRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Validate validates the create hotel request
func (r *CreateHotelRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "name is required"
	}
	if len(r.Name) > 255 {
		return false, "name must be at most 255 characters"
	}
	return true, ""
}

// HotelResponse is the public hotel representation
type HotelResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ToHotelResponse converts a domain hotel
func ToHotelResponse(hotel *domain.Hotel) *HotelResponse {
	return &HotelResponse{ID: hotel.ID, Name: hotel.Name, Address: hotel.Address}
}
