package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecommendRooms(t *testing.T) {
	rooms := []*Room{
		{ID: "c", Available: true, TimesBooked: 2},
		{ID: "b", Available: true, TimesBooked: 0},
		{ID: "a", Available: true, TimesBooked: 2},
		{ID: "d", Available: false, TimesBooked: 0},
		nil,
	}

	ordered := RecommendRooms(rooms)

	ids := make([]string, len(ordered))
	for i, r := range ordered {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
	// input order preserved
	assert.Equal(t, "c", rooms[0].ID)
}

func TestRecommend(t *testing.T) {
	assert.Nil(t, Recommend(nil))
	assert.Nil(t, Recommend([]*Room{{ID: "x", Available: false}}))

	got := Recommend([]*Room{
		{ID: "r2", Available: true, TimesBooked: 1},
		{ID: "r1", Available: true, TimesBooked: 1},
	})
	assert.Equal(t, "r1", got.ID)
}

func TestRoom_Validate(t *testing.T) {
	assert.NoError(t, (&Room{HotelID: "h", Number: "101"}).Validate())
	assert.ErrorIs(t, (&Room{Number: "101"}).Validate(), ErrInvalidRoom)
	assert.ErrorIs(t, (&Room{HotelID: "h", Number: " "}).Validate(), ErrInvalidRoom)
	assert.ErrorIs(t, (&Room{HotelID: "h", Number: "101", TimesBooked: -1}).Validate(), ErrInvalidRoom)
}

func TestDateRange_Valid(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, DateRange{Start: day, End: day}.Valid())
	assert.True(t, DateRange{Start: day, End: day.AddDate(0, 0, 2)}.Valid())
	assert.False(t, DateRange{Start: day.AddDate(0, 0, 1), End: day}.Valid())
	assert.False(t, DateRange{End: day}.Valid())
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrRoomNotFound))
	assert.True(t, IsNotFoundError(ErrHotelNotFound))
	assert.True(t, IsConflictError(ErrRoomUnavailable))
	assert.True(t, IsValidationError(ErrInvalidHotel))
	assert.False(t, IsNotFoundError(ErrRoomUnavailable))
}
