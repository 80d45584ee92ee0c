package domain

import (
	"sort"
	"strings"
	"time"
)

// Room is a bookable unit of a hotel.
// TimesBooked is only changed through the ledger's Confirm and Release.
type Room struct {
	ID          string    `json:"id"`
	HotelID     string    `json:"hotel_id"`
	Number      string    `json:"number"`
	Available   bool      `json:"available"`
	TimesBooked int       `json:"times_booked"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the room's required fields
func (r *Room) Validate() error {
	if r.HotelID == "" || strings.TrimSpace(r.Number) == "" {
		return ErrInvalidRoom
	}
	if r.TimesBooked < 0 {
		return ErrInvalidRoom
	}
	return nil
}

// RecommendRooms returns the available rooms ordered by TimesBooked ascending,
// ties broken by ID ascending. The input slice is not modified.
func RecommendRooms(rooms []*Room) []*Room {
	out := make([]*Room, 0, len(rooms))
	for _, r := range rooms {
		if r != nil && r.Available {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TimesBooked != out[j].TimesBooked {
			return out[i].TimesBooked < out[j].TimesBooked
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Recommend returns the head of RecommendRooms, or nil when nothing is available
func Recommend(rooms []*Room) *Room {
	ordered := RecommendRooms(rooms)
	if len(ordered) == 0 {
		return nil
	}
	return ordered[0]
}

// IdempotencyRecord marks a requestId whose confirm side effect has been applied.
// It is removed by Release or when Confirm rejects an unavailable room.
type IdempotencyRecord struct {
	RequestID string    `json:"request_id"`
	RoomID    string    `json:"room_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DateRange is an inclusive, date-only stay window
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether both ends are set and Start is not after End
func (d DateRange) Valid() bool {
	return !d.Start.IsZero() && !d.End.IsZero() && !d.Start.After(d.End)
}
