package domain

import (
	"strings"
	"time"
)

// Hotel is a property that owns rooms
type Hotel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the hotel's required fields
func (h *Hotel) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return ErrInvalidHotel
	}
	return nil
}
